package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/verdantworks/growline/internal/storage"
)

// LoadActive loads and validates the active pack from storage. When no pack
// has been seeded it falls back to the embedded default; the returned bool
// reports whether the pack came from storage.
func LoadActive(ctx context.Context, store storage.ContentStore) (*Index, bool, error) {
	seeded := true
	raw, err := store.GetContentPack(ctx, ActivePackName)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		raw = DefaultRaw()
		seeded = false
	case err != nil:
		return nil, false, fmt.Errorf("load content pack: %w", err)
	}

	pack, err := Parse(raw)
	if err != nil {
		return nil, false, fmt.Errorf("parse content pack: %w", err)
	}
	if err := pack.Validate(); err != nil {
		return nil, false, fmt.Errorf("validate content pack: %w", err)
	}
	return NewIndex(pack), seeded, nil
}
