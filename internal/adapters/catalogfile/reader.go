package catalogfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Reader loads the catalog document from the local filesystem.
type Reader struct{ path string }

func New(path string) *Reader { return &Reader{path: path} }

func (r *Reader) GetCatalog(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", r.path, err)
	}
	return out, nil
}
