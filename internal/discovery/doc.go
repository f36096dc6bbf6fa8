// Package discovery runs SSDP device searches for lightssdp.
//
// A search multicasts a discovery query, collects responses and NOTIFY
// announcements until a deadline, keeps the devices that match a type filter
// and returns them as an immutable Result.
//
// # Search Lifecycle
//
// Every search moves through the same states:
//
//	init -> socket_ready -> query_sent -> collecting -> snapshot_ready -> done
//	init -> failed (the transport could not be opened)
//
// The query is sent Retransmits times (two by default) because multicast has
// no acknowledgement. Once the query is out the search runs to its deadline;
// silence on the network is not an error. A transport read failure ends
// collection early and the devices gathered so far are still returned.
//
// # Usage Example
//
//	result, err := discovery.Search(device.TypeAll, 3*time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer result.Release()
//
//	for _, dev := range result.Devices() {
//	    fmt.Println(dev)
//	}
//
// # Deduplication
//
// Devices are keyed by MAC address, compared case-insensitively. The first
// message seen for a MAC wins and later ones are discarded, so a device that
// both answers the query and announces itself appears once, in the order it
// was first heard.
//
// # Thread Safety
//
// A Session serializes every insert behind one mutex and may be fed from
// several goroutines. A Searcher may run several searches at once. A Result
// is immutable until it is released.
package discovery
