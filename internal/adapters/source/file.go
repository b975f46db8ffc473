package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileSource opens vehicle position files from the local file system.
type FileSource struct{}

func (FileSource) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := strings.TrimPrefix(location, "file://")
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("open file source: empty path")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file source %q: %w", path, err)
	}
	return f, nil
}
