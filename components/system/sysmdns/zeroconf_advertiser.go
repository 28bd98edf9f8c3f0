package sysmdns

import (
	"github.com/open-control-systems/zeroconf"

	"github.com/open-control-systems/time-anchor/components/core"
)

// ZeroconfAdvertiserParams represents various options for zeroconf mDNS advertiser.
type ZeroconfAdvertiserParams struct {
	// Instance is a mDNS service instance name, e.g. "Time Anchor".
	Instance string

	// Service is a mDNS service to announce.
	//
	// Examples:
	//  - HTTP service over TCP protocol: "_http._tcp".
	Service string

	// Domain is a mDNS domain.
	//
	// Examples:
	//  - Local domain: "local".
	Domain string

	// Port is a service port.
	Port int

	// TxtRecords are announced with the service, e.g. ["api_base_path=/api/"].
	TxtRecords []string
}

// ZeroconfAdvertiser announces the service on the local network.
//
// References:
//   - https://github.com/grandcat/zeroconf
type ZeroconfAdvertiser struct {
	params ZeroconfAdvertiserParams
	server *zeroconf.Server
}

// NewZeroconfAdvertiser registers the service and starts responding to mDNS queries.
func NewZeroconfAdvertiser(params ZeroconfAdvertiserParams) (*ZeroconfAdvertiser, error) {
	server, err := zeroconf.Register(
		params.Instance,
		params.Service,
		params.Domain,
		params.Port,
		params.TxtRecords,
		nil,
	)
	if err != nil {
		return nil, err
	}

	core.LogInf.Printf("mdns-zeroconf-advertiser: service registered: instance=%s"+
		" service=%s domain=%s port=%d\n",
		params.Instance, params.Service, params.Domain, params.Port)

	return &ZeroconfAdvertiser{
		params: params,
		server: server,
	}, nil
}

// Close stops announcing the service.
func (a *ZeroconfAdvertiser) Close() error {
	a.server.Shutdown()

	core.LogInf.Printf("mdns-zeroconf-advertiser: service unregistered: instance=%s\n",
		a.params.Instance)

	return nil
}
