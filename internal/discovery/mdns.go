package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/vassapi/assistant"
	"github.com/muurk/vassapi/internal/logging"
)

const (
	// ServiceType is the mDNS service type assistants advertise
	ServiceType = "_vass._tcp"

	// FallbackServiceType is browsed as well; only entries on the API port are kept
	FallbackServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for device discovery
	DefaultScanTimeout = 5 * time.Second
)

// Scanner handles mDNS device discovery
type Scanner struct {
	// Timeout is the maximum time to wait for device discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan browses for assistants until the timeout elapses or ctx is done.
// Devices advertised under both service types are reported once.
func (s *Scanner) Scan(ctx context.Context) ([]*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		seen    = make(map[string]bool)
		devices = make([]*Device, 0)
	)

	err := s.browse(ctx, func(device *Device) bool {
		mu.Lock()
		defer mu.Unlock()
		if seen[device.Address()] {
			return false
		}
		seen[device.Address()] = true
		devices = append(devices, device)
		logging.LogDiscovery(device.Name, device.IP, device.Port, device.Metadata)
		return false
	})
	if err != nil {
		return nil, err
	}

	return devices, nil
}

// WaitFor browses until an assistant whose instance name or hostname matches
// name is found.
func (s *Scanner) WaitFor(ctx context.Context, name string) (*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var (
		once  sync.Once
		found *Device
	)
	err := s.browse(ctx, func(device *Device) bool {
		if !device.matches(name) {
			return false
		}
		once.Do(func() { found = device })
		return true
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("assistant %q not found within %s", name, s.Timeout)
	}
	return found, nil
}

// browse runs one resolver per service type and hands every parsed device to
// visit. Returning true from visit stops the scan.
func (s *Scanner) browse(ctx context.Context, visit func(*Device) bool) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	for _, service := range []string{ServiceType, FallbackServiceType} {
		resolver, err := zeroconf.NewResolver(nil)
		if err != nil {
			return fmt.Errorf("failed to create mDNS resolver: %w", err)
		}

		entries := make(chan *zeroconf.ServiceEntry)
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case entry, ok := <-entries:
					if !ok {
						return nil
					}
					device := parseServiceEntry(entry, service)
					if device != nil && visit(device) {
						stop()
					}
				}
			}
		})

		if err := resolver.Browse(gctx, service, ServiceDomain, entries); err != nil {
			stop()
			_ = g.Wait()
			return fmt.Errorf("failed to browse for %s: %w", service, err)
		}
	}

	<-gctx.Done()
	return g.Wait()
}

// parseServiceEntry converts a zeroconf service entry to a Device.
// Returns nil if the entry is not an assistant.
func parseServiceEntry(entry *zeroconf.ServiceEntry, service string) *Device {
	if entry == nil {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = assistant.DefaultPort
	}
	// Generic HTTP services are only assistants when they sit on the API port
	if service != ServiceType && port != assistant.DefaultPort {
		return nil
	}

	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	name := entry.Instance
	if name == "" {
		name = strings.TrimSuffix(entry.HostName, ".")
	}

	return &Device{
		Name:         name,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

func (d *Device) matches(name string) bool {
	name = strings.TrimSuffix(strings.ToLower(name), ".")
	host := strings.TrimSuffix(strings.ToLower(d.Hostname), ".")
	return strings.ToLower(d.Name) == name || host == name || strings.TrimSuffix(host, ".local") == name || d.IP == name
}

// ScanForDevices is a convenience function to scan for devices with a custom timeout
func ScanForDevices(ctx context.Context, timeout time.Duration) ([]*Device, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.Scan(ctx)
}
