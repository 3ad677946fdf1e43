// Package camera owns the lifecycle of the local capture device and exposes
// single-frame JPEG snapshots to the portal workflows.
package camera

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrDeviceNotOpen is returned by Snapshot when the device is closed.
var ErrDeviceNotOpen = errors.New("camera device is not open")

// Source produces JPEG frames from a capture device.
//
// Implementations must guarantee:
//   - Start is safe to call once per Stop cycle
//   - Stop is idempotent
//   - Frame blocks until a frame is available or ctx is done
type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Frame(ctx context.Context) ([]byte, error)
}

// Controller wraps a Source with the idempotent open/close semantics the
// portal screens need for toggle-style camera buttons. At most one screen
// owns the controller at a time; screens must close it when navigating away.
type Controller struct {
	src  Source
	mu   sync.Mutex
	open bool
}

// NewController creates a controller for the given frame source.
func NewController(src Source) *Controller {
	return &Controller{src: src}
}

// Open activates the capture device. Opening an already-open device is a
// no-op, not an error.
func (c *Controller) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open {
		return nil
	}
	if err := c.src.Start(ctx); err != nil {
		return fmt.Errorf("could not start capture device: %w", err)
	}
	c.open = true
	return nil
}

// Close deactivates the capture device. Closing an already-closed device is
// a no-op.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil
	}
	if err := c.src.Stop(); err != nil {
		return fmt.Errorf("could not stop capture device: %w", err)
	}
	c.open = false
	return nil
}

// IsOpen reports whether the device is currently open.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Snapshot returns a single still image as JPEG bytes. Fails with
// ErrDeviceNotOpen if the device is closed.
func (c *Controller) Snapshot(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	open := c.open
	c.mu.Unlock()

	if !open {
		return nil, ErrDeviceNotOpen
	}

	frame, err := c.src.Frame(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not read frame: %w", err)
	}
	return frame, nil
}
