// Package netguard makes outbound connections fail fast for a bounded region.
//
// The guard is process-wide. While it is held, every dial that goes through
// DialContext, http.DefaultTransport or net.DefaultResolver returns a
// *NetworkBlockedError immediately, whatever the target, loopback included.
// Listening and socket construction are left alone: only the connect step is
// refused.
//
// Block is not reentrant. Each release restores exactly the values captured
// by its own Block call, so guards must be released in reverse order of
// acquisition. Overlapping use from several goroutines is unsupported.
package netguard

import (
	"context"
	"net"
	"net/http"
	"sync"
)

// DialFunc has the signature of net.Dialer.DialContext.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

var (
	mu     sync.Mutex
	dial   DialFunc = defaultDial
	active bool
)

func defaultDial(ctx context.Context, network, address string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, network, address)
}

func blockedDial(_ context.Context, network, address string) (net.Conn, error) {
	return nil, &NetworkBlockedError{Network: network, Address: address}
}

// DialContext connects using the current process-wide policy.
func DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	mu.Lock()
	d := dial
	mu.Unlock()
	return d(ctx, network, address)
}

// Active reports whether a guard is currently held.
func Active() bool {
	mu.Lock()
	defer mu.Unlock()
	return active
}

// state is every value Block substitutes.
type state struct {
	dial   DialFunc
	active bool

	transport        *http.Transport
	transportDial    func(ctx context.Context, network, addr string) (net.Conn, error)
	transportDialTLS func(ctx context.Context, network, addr string) (net.Conn, error)

	resolverPreferGo bool
	resolverDial     func(ctx context.Context, network, address string) (net.Conn, error)
}

// capture must be called with mu held.
func capture() state {
	s := state{
		dial:             dial,
		active:           active,
		resolverPreferGo: net.DefaultResolver.PreferGo,
		resolverDial:     net.DefaultResolver.Dial,
	}
	if t, ok := http.DefaultTransport.(*http.Transport); ok {
		s.transport = t
		s.transportDial = t.DialContext
		s.transportDialTLS = t.DialTLSContext
	}
	return s
}

// restore must be called with mu held.
func (s state) restore() {
	dial = s.dial
	active = s.active
	net.DefaultResolver.PreferGo = s.resolverPreferGo
	net.DefaultResolver.Dial = s.resolverDial
	if s.transport != nil {
		s.transport.DialContext = s.transportDial
		s.transport.DialTLSContext = s.transportDialTLS
	}
}

// install must be called with mu held.
func install(d DialFunc) {
	dial = d
	active = true
	// PreferGo routes lookups through Dial instead of the cgo resolver.
	net.DefaultResolver.PreferGo = true
	net.DefaultResolver.Dial = d
	if t, ok := http.DefaultTransport.(*http.Transport); ok {
		t.CloseIdleConnections()
		t.DialContext = d
		t.DialTLSContext = d
	}
}

// Block installs the guard and returns the function that removes it.
// Calling release more than once has no further effect.
func Block() (release func()) {
	mu.Lock()
	defer mu.Unlock()

	prev := capture()
	install(blockedDial)

	var once sync.Once
	return func() {
		once.Do(func() {
			mu.Lock()
			defer mu.Unlock()
			prev.restore()
		})
	}
}

// Scoped runs fn with the guard held. The guard is released on every exit
// path, including a panic, before control returns to the caller.
func Scoped(fn func() error) error {
	release := Block()
	defer release()
	return fn()
}
