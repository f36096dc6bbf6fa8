// Package logging provides structured logging for lightssdp.
//
// This package wraps a zap logger with convenience functions for the logging
// patterns used by the discovery engine and the CLI.
//
// # Log Levels
//
//   - Debug: Datagram dumps, state transitions, duplicate devices
//   - Info: Search start and completion, newly discovered devices
//   - Warn: Non-fatal transport issues (short writes, failed group joins)
//   - Error: Search failures
//
// # Silent By Default
//
// The CLI prints its own output, so logging stays silent unless a level is
// requested with --log-level or the LIGHTSSDP_LOG_LEVEL environment variable:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Domain Logging
//
//	logging.LogDatagram("10.0.0.5:1900", "response", 212, data)
//	logging.LogDevice("device_discovered", "IPC", "AA:BB:CC:DD:EE:FF", "10.0.0.5")
//	logging.LogStateChange("query_sent", "collecting")
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
