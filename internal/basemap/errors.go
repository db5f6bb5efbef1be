package basemap

import (
	"errors"
	"fmt"
)

// ErrAlreadyRendered is returned by a second Render call on one Composer.
var ErrAlreadyRendered = errors.New("basemap: composer already rendered")

// LayerError aborts a render: a declared layer could not be opened or read.
type LayerError struct {
	Layer string
	Path  string
	Err   error
}

func (e *LayerError) Error() string {
	return fmt.Sprintf("basemap: layer %s (%s): %v", e.Layer, e.Path, e.Err)
}

func (e *LayerError) Unwrap() error { return e.Err }
