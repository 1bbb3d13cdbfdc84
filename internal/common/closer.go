package common

import (
	"context"
	"errors"
)

// CloseFunc releases a resource created at startup.
type CloseFunc func(context.Context) error

// Closers runs registered CloseFunc in reverse order of registration.
type Closers []CloseFunc

func (c *Closers) Add(f CloseFunc) {
	if f == nil {
		return
	}

	*c = append(*c, f)
}

func (c Closers) Close(ctx context.Context) error {
	errs := make([]error, 0)

	for i := len(c) - 1; i >= 0; i-- {
		err := c[i](ctx)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
