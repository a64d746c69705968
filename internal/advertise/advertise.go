// Package advertise publishes a running receiver over mDNS so a LAN status
// client can discover it without being told an address, supplementing the
// reference decoder (which has no discovery mechanism of its own).
package advertise

import (
	"context"

	"github.com/brutella/dnssd"
)

// Responder advertises the receiver's control/status endpoint.
type Responder struct {
	responder dnssd.Responder
	cancel    func()
}

// Start advertises a service named name of type _fmradion._tcp on port,
// with the given mode recorded in a TXT record.
func Start(ctx context.Context, name string, port int, mode string) (*Responder, error) {
	cfg := dnssd.Config{
		Name: name,
		Type: "_fmradion._tcp",
		Port: port,
		Text: map[string]string{"mode": mode},
	}
	svc, err := dnssd.NewService(cfg)
	if err != nil {
		return nil, err
	}

	responder, err := dnssd.NewResponder()
	if err != nil {
		return nil, err
	}
	if _, err := responder.Add(svc); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	go responder.Respond(runCtx) //nolint:errcheck

	return &Responder{responder: responder, cancel: cancel}, nil
}

// Stop withdraws the advertisement.
func (r *Responder) Stop() {
	r.cancel()
}
