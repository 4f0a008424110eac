package descriptor

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/StinkyLord/boardcfg/internal/model"
)

// ParseFile reads the descriptor at path and parses it for plat.
// Axes whose menu title was declared after first use are logged as warnings.
func ParseFile(path string, plat model.Platform, logger *log.Logger) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor %q: %w", path, err)
	}

	res := Parse(string(data), plat)
	Report(res, path, logger)
	return res, nil
}

// Report logs a summary of res at debug level and any unresolved menu titles as warnings.
func Report(res *Result, path string, logger *log.Logger) {
	if logger == nil {
		return
	}
	logger.Debug("parsed descriptor", "path", path, "boards", len(res.Boards), "menus", len(res.Menus))
	for _, axis := range res.Unresolved {
		logger.Warn("menu title not declared before first use", "path", path, "axis", axis)
	}
}
