package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

func loadFromFS(ctx context.Context, files fs.FS, name string) (payload, error) {
	if name == "" {
		return payload{}, errors.New("schema loader: fs path is required")
	}
	if err := ctx.Err(); err != nil {
		return payload{}, err
	}
	data, err := fs.ReadFile(files, name)
	if err != nil {
		return payload{}, fmt.Errorf("schema loader: %w", err)
	}
	return payload{data: data}, nil
}
