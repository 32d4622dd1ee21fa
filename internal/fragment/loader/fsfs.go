package loader

import (
	"context"
	"errors"
	"io/fs"

	"github.com/goliatone/go-fragments/pkg/fragment"
)

func loadFromFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("fragment loader: fs path is required")
	}
	if files == nil {
		return nil, errors.New("fragment loader: fs is nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := fs.ReadFile(files, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fragment.NotFound(name)
		}
		return nil, err
	}
	return data, nil
}
