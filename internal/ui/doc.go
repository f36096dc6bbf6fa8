// Package ui provides terminal output for the lightssdp CLI.
//
// Output follows a "run once and exit" pattern: a header naming the search,
// a spinner while the collection window is open, then either the device list
// or an error box with troubleshooting tips.
//
// # Components
//
//   - Header: command banner showing the search parameters
//   - RunSearch: Bubble Tea program that animates a spinner until the search returns
//   - RenderDevices: device list in detailed or compact layout
//   - Result: success, failure and warning boxes
//
// When stdout is not a terminal RunSearch calls the search directly and no
// escape sequences are written, so output can be piped.
//
// # Logging Integration
//
// Logging is controlled by the LIGHTSSDP_LOG_LEVEL environment variable.
// When unset zap is silent and only the curated UI output is shown.
package ui
