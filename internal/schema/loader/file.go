package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

func loadFile(ctx context.Context, path string) (payload, error) {
	if path == "" {
		return payload{}, errors.New("schema loader: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return payload{}, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return payload{}, fmt.Errorf("schema loader: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return payload{}, fmt.Errorf("schema loader: %w", err)
	}
	return payload{data: data}, nil
}
