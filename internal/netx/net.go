// Package netx provides the reachability check the remote client runs before
// attempting any transport call.
package netx

import (
	"context"
	"net"
	"net/url"
	"time"
)

// Checker reports whether the remote endpoint is currently reachable.
type Checker interface {
	IsReachable(ctx context.Context) bool
}

// DialChecker probes reachability with a plain TCP dial to the API host.
// It deliberately ignores the HTTP layer: the point is to distinguish
// "no network at all" from failures of the actual request.
type DialChecker struct {
	addr    string
	timeout time.Duration
}

// NewDialChecker builds a checker for the given API base URL. The probe
// dials host:port; the port defaults from the URL scheme.
func NewDialChecker(baseURL string, timeout time.Duration) (*DialChecker, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		if u.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}
	return &DialChecker{addr: net.JoinHostPort(host, port), timeout: timeout}, nil
}

func (c *DialChecker) IsReachable(ctx context.Context) bool {
	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context) bool

func (f CheckerFunc) IsReachable(ctx context.Context) bool { return f(ctx) }

// Always returns a checker with a fixed answer. Useful in tests and for
// callers that want to disable the pre-flight probe.
func Always(reachable bool) Checker {
	return CheckerFunc(func(context.Context) bool { return reachable })
}
