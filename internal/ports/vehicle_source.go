package ports

import (
	"context"
	"io"
)

// Port: a boundary for opening the binary vehicle position stream.
type VehicleSource interface {
	// Open the stream at location (a path or URI understood by the adapter).
	// The caller closes the returned reader.
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}
