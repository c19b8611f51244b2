package harness

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/net"
	log "github.com/sirupsen/logrus"
)

const listenStatus = "LISTEN"

// IsListening reports whether some local TCP socket listens on port.
func IsListening(ctx context.Context, port int) (bool, error) {
	conns, err := net.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return false, errors.Wrap(err, "cannot list tcp connections")
	}
	for _, c := range conns {
		if c.Status == listenStatus && c.Laddr.Port == uint32(port) {
			return true, nil
		}
	}
	return false, nil
}

// Backoff is a doubling poll interval bounded by Max.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration
}

func (b Backoff) next(cur time.Duration) time.Duration {
	if cur <= 0 {
		return b.Initial
	}
	cur *= 2
	if cur > b.Max {
		cur = b.Max
	}
	return cur
}

// Poll calls cond until it returns true, an error, or ctx is done, sleeping
// between calls according to b.
func Poll(ctx context.Context, b Backoff, cond func(ctx context.Context) (bool, error)) error {
	var wait time.Duration
	for {
		ok, err := cond(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		wait = b.next(wait)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// WaitPortFree blocks until nothing listens on port any more.
func WaitPortFree(ctx context.Context, b Backoff, port int) error {
	err := Poll(ctx, b, func(ctx context.Context) (bool, error) {
		listening, err := IsListening(ctx, port)
		if listening {
			log.Infof("Waiting for port %v to be unbound", port)
		}
		return !listening, err
	})
	return errors.Wrapf(err, "port %v still in use", port)
}

// WaitListening blocks until a socket listens on port.
func WaitListening(ctx context.Context, b Backoff, port int) error {
	err := Poll(ctx, b, func(ctx context.Context) (bool, error) {
		return IsListening(ctx, port)
	})
	return errors.Wrapf(err, "nothing listens on port %v", port)
}
