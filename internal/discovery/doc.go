// Package discovery provides mDNS-based discovery of voice assistants on the
// local network.
//
// Assistants advertise the "_vass._tcp" service. Older installations only
// announce a generic "_http._tcp" service; those entries are accepted when
// they advertise the API port (1507).
//
// # Discovery Process
//
//  1. Browses both service types concurrently
//  2. Converts each service entry into a Device (IPv4 preferred)
//  3. Drops duplicates announced under both service types
//  4. Returns the list once the timeout elapses
//
// # Usage Example
//
//	devices, err := discovery.ScanForDevices(ctx, 5*time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, device := range devices {
//	    fmt.Printf("Found: %s at %s\n", device.Name, device.Address())
//	}
//
// # Network Requirements
//
// mDNS relies on multicast UDP on port 5353; the scanning host must be on the
// same layer-2 segment as the assistant.
package discovery
