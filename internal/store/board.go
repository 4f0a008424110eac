package store

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/StinkyLord/boardcfg/internal/model"
)

// Restore applies the stored config of b through LoadConfig. With nothing
// stored the board is reset to its defaults. A stored config the board rejects
// is logged, the board is reset, and the rejecting result is returned.
func Restore(ctx context.Context, st Store, b *model.Board, logger *log.Logger) (model.BoardConfigResult, error) {
	cfg, _, err := st.Get(ctx, b.Key())
	if err != nil {
		return "", fmt.Errorf("get stored config for %s: %w", b.Key(), err)
	}

	r := b.LoadConfig(cfg)
	if !r.OK() {
		if logger != nil {
			logger.Warn("stored configuration rejected, using defaults",
				"board", b.Key(), "config", cfg, "result", r)
		}
		b.ResetConfig()
	}
	return r, nil
}

// Save stores the current custom config of b, or removes the entry when the
// board has no configuration axes.
func Save(ctx context.Context, st Store, b *model.Board) error {
	cfg, ok := b.CustomConfig()
	if !ok {
		return st.Delete(ctx, b.Key())
	}
	if err := st.Set(ctx, b.Key(), cfg); err != nil {
		return fmt.Errorf("store config for %s: %w", b.Key(), err)
	}
	return nil
}
