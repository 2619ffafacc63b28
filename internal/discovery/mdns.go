// Package discovery advertises the server on the local network over mDNS
// so clients on the same LAN can find it without configuration.
package discovery

import (
	"fmt"
	"os"

	"github.com/hashicorp/mdns"
)

const serviceType = "_drawdeck._tcp"

// Advertiser keeps the mDNS service registration alive until Shutdown.
type Advertiser struct {
	server *mdns.Server
}

// Advertise registers the service on the LAN under the given instance
// name and port.
func Advertise(instance string, port int) (*Advertiser, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("resolve hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(
		instance,
		serviceType,
		"", // default domain
		"",
		port,
		nil,
		[]string{"collaborative whiteboard"},
	)
	if err != nil {
		return nil, fmt.Errorf("create mdns service for %q: %w", host, err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("start mdns server: %w", err)
	}

	return &Advertiser{server: server}, nil
}

// Shutdown withdraws the registration.
func (a *Advertiser) Shutdown() error {
	return a.server.Shutdown()
}

// Peer is one discovered server on the LAN.
type Peer struct {
	Name string
	Host string
	Addr string
	Port int
}

// Browse collects the servers currently advertising on the LAN.
func Browse() ([]Peer, error) {
	entries := make(chan *mdns.ServiceEntry, 16)
	done := make(chan []Peer, 1)

	go func() {
		var peers []Peer
		for e := range entries {
			p := Peer{Name: e.Name, Host: e.Host, Port: e.Port}
			if e.AddrV4 != nil {
				p.Addr = e.AddrV4.String()
			} else if e.AddrV6 != nil {
				p.Addr = e.AddrV6.String()
			}
			peers = append(peers, p)
		}
		done <- peers
	}()

	err := mdns.Lookup(serviceType, entries)
	close(entries)
	if err != nil {
		return nil, fmt.Errorf("mdns lookup: %w", err)
	}
	return <-done, nil
}
