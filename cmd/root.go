package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/StinkyLord/boardcfg/internal/config"
	"github.com/StinkyLord/boardcfg/internal/scanner"
	"github.com/StinkyLord/boardcfg/internal/store"
)

const toolVersion = "1.0.0"

var (
	flagManifest   string
	flagDescriptor string
	flagPackage    string
	flagArch       string
	flagStore      string
	flagStorePath  string
	flagRedisAddr  string
	flagVerbose    bool
)

// NewRootCommand builds the boardcfg command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "boardcfg",
		Short: "Board descriptor and board configuration tool",
		Long: `boardcfg reads board descriptor files (boards.txt) and manages the
configuration selected for each board (CPU variant, clock speed, ...).

Descriptors are listed in a TOML manifest (boardcfg.toml):

  [[platform]]
  package      = "arduino"
  architecture = "avr"
  descriptor   = "hardware/arduino/avr/boards.txt"

or given directly with --descriptor, --package and --arch.

Selected configurations are stored per board key and applied on every run.`,
		Version:       toolVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if flagVerbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flagManifest, "manifest", "m", "", "Path to the TOML manifest (default $BOARDCFG_MANIFEST or boardcfg.toml)")
	pf.StringVarP(&flagDescriptor, "descriptor", "d", "", "Board descriptor file to load instead of the manifest")
	pf.StringVar(&flagPackage, "package", "", "Package name for --descriptor (inferred when omitted)")
	pf.StringVar(&flagArch, "arch", "", "Architecture for --descriptor (inferred from the path when omitted)")
	pf.StringVar(&flagStore, "store", "", "Selection store: file, redis or none (default $BOARDCFG_STORE or file)")
	pf.StringVar(&flagStorePath, "store-path", "", "Selection file for --store=file")
	pf.StringVar(&flagRedisAddr, "redis-addr", "", "Redis address for --store=redis")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output")

	root.AddCommand(newBoardsCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newExportCmd())
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, "%s", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if flagDescriptor != "" && flagManifest == "" {
		cfg = config.FromEnv()
	} else {
		var err error
		if cfg, err = config.Load(flagManifest); err != nil {
			return nil, err
		}
	}

	if flagDescriptor != "" {
		cfg.Platforms = []config.PlatformConfig{{
			Package:      flagPackage,
			Architecture: flagArch,
			Descriptor:   flagDescriptor,
		}}
	}
	if flagStore != "" {
		cfg.Store.Kind = flagStore
	}
	if flagStorePath != "" {
		cfg.Store.Path = flagStorePath
	}
	if flagRedisAddr != "" {
		cfg.Store.RedisAddr = flagRedisAddr
	}
	return cfg, nil
}

// session is everything a command needs: the scanned catalog and an open store.
type session struct {
	cfg    *config.Config
	result *scanner.Result
	store  store.Store
	logger *charmlog.Logger
}

func openSession(cmd *cobra.Command) (*session, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if len(cfg.Platforms) == 0 {
		return nil, fmt.Errorf("no descriptors configured: pass --descriptor or create %s", cfg.Manifest)
	}

	sources := make([]scanner.Source, 0, len(cfg.Platforms))
	for _, p := range cfg.Platforms {
		plat := p.Platform()
		if plat.Architecture == "" {
			return nil, fmt.Errorf("cannot determine architecture for %q: set --arch or architecture in the manifest", p.Descriptor)
		}
		if plat.ResolvedPackage() == "" {
			return nil, fmt.Errorf("cannot determine package for %q: set --package or package in the manifest", p.Descriptor)
		}
		sources = append(sources, scanner.Source{Path: p.Descriptor, Platform: plat})
	}

	prog := newProgress(logger)
	result, err := scanner.New(sources, logger).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	prog.done(fmt.Sprintf("Loaded %d board(s) from %d descriptor(s)", len(result.Catalog.All), len(result.SourcesUsed)))

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened selection store", "kind", cfg.Store.Kind)

	return &session{cfg: cfg, result: result, store: st, logger: logger}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}
