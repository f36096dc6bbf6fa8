// Package ssdp implements the wire side of lightssdp discovery: the multicast
// transport, the bounded receive loop and the SSDP message parser.
//
// # Protocol
//
// Discovery uses the SSDP multicast group 239.255.255.250 on UDP port 1900.
// A client multicasts an M-SEARCH query; devices answer with an HTTP-style
// response and also multicast NOTIFY announcements on their own schedule.
// Devices describe themselves with these headers:
//
//	DEVICE-TYPE: IPC
//	DNAME:       Front Door
//	IPADDR:      10.0.0.5
//	MAC:         AA:BB:CC:DD:EE:FF
//	RTSP-PORT:   554   (cameras only)
//
// Header lookup is case-insensitive and every header is optional.
//
// # Receiving
//
// ReceiveUntil reads datagrams until a single deadline elapses, parsing each
// one and handing it to a Handler. Datagrams that do not parse are skipped.
//
//	conn, err := ssdp.Open(ssdp.Options{TTL: 2})
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//
//	err = ssdp.ReceiveUntil(conn, func(msg *ssdp.Message) {
//	    fmt.Println(msg.Kind, msg.Get(ssdp.HeaderMAC))
//	}, 3*time.Second)
package ssdp
