package source

import (
	"context"
	"fmt"
	"io"
	"strings"
	"vehicle-proximity-service/internal/ports"
)

// Router picks a source by URI scheme and transparently decompresses
// the stream based on its extension.
type Router struct {
	File  ports.VehicleSource
	S3    ports.VehicleSource
	Minio ports.VehicleSource
}

func NewRouter(s3, minio ports.VehicleSource) *Router {
	return &Router{File: FileSource{}, S3: s3, Minio: minio}
}

func (r *Router) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	var (
		src    ports.VehicleSource
		scheme = "file"
	)

	switch {
	case strings.HasPrefix(location, "s3://"):
		src, scheme = r.S3, "s3"
	case strings.HasPrefix(location, "minio://"):
		src, scheme = r.Minio, "minio"
	default:
		src = r.File
	}
	if src == nil {
		return nil, fmt.Errorf("open source %q: no %s source configured", location, scheme)
	}

	rc, err := src.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	return Decompress(location, rc)
}
