// Package config loads the run configuration: .env, environment variables and the
// TOML manifest listing the board descriptors to load.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/StinkyLord/boardcfg/internal/model"
	"github.com/StinkyLord/boardcfg/internal/platforms"
)

// Store kinds.
const (
	StoreFile  = "file"
	StoreRedis = "redis"
	StoreNone  = "none"
)

const defaultManifest = "boardcfg.toml"

type Config struct {
	Manifest string
	Store    StoreConfig

	// Platforms lists the descriptors to load, with paths resolved against the manifest.
	Platforms []PlatformConfig
}

type StoreConfig struct {
	Kind        string
	Path        string
	RedisAddr   string
	RedisPrefix string
}

// PlatformConfig is one [[platform]] entry of the manifest.
type PlatformConfig struct {
	Package      string `toml:"package"`
	Architecture string `toml:"architecture"`
	Descriptor   string `toml:"descriptor"`
}

// Platform returns the model platform for p. A missing package or architecture is
// taken from the descriptor path, then from the known platform table.
func (p PlatformConfig) Platform() model.Platform {
	pkg, arch := p.Package, p.Architecture
	if pkg == "" || arch == "" {
		if fromPath, ok := platforms.FromPath(p.Descriptor); ok {
			pkg = firstNonEmpty(pkg, fromPath.PackageName)
			arch = firstNonEmpty(arch, fromPath.Architecture)
		}
	}
	return platforms.Resolve(pkg, arch)
}

type manifestFile struct {
	Platform []PlatformConfig `toml:"platform"`
}

// Load reads .env and the environment, then the manifest at manifestPath
// (BOARDCFG_MANIFEST or boardcfg.toml when empty). A missing manifest is only
// an error when it was named explicitly.
func Load(manifestPath string) (*Config, error) {
	cfg := FromEnv()

	explicit := manifestPath != ""
	if !explicit {
		manifestPath = strings.TrimSpace(os.Getenv("BOARDCFG_MANIFEST"))
		explicit = manifestPath != ""
	}
	if manifestPath == "" {
		manifestPath = defaultManifest
	}

	cfg.Manifest = manifestPath

	entries, err := LoadManifest(manifestPath)
	switch {
	case err == nil:
		cfg.Platforms = entries
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, err
	}
	return cfg, nil
}

// FromEnv reads .env and the environment only; no platforms are configured.
func FromEnv() *Config {
	_ = godotenv.Load()
	return &Config{
		Manifest: defaultManifest,
		Store:    loadStoreConfig(),
	}
}

// LoadManifest decodes a manifest file. Relative descriptor paths are resolved
// against the manifest's directory.
func LoadManifest(path string) ([]PlatformConfig, error) {
	var mf manifestFile
	if _, err := toml.DecodeFile(path, &mf); err != nil {
		return nil, fmt.Errorf("load manifest %q: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range mf.Platform {
		p := &mf.Platform[i]
		if p.Descriptor == "" {
			return nil, fmt.Errorf("manifest %q: platform %d has no descriptor", path, i)
		}
		if !filepath.IsAbs(p.Descriptor) {
			p.Descriptor = filepath.Join(dir, p.Descriptor)
		}
	}
	return mf.Platform, nil
}

func loadStoreConfig() StoreConfig {
	return StoreConfig{
		Kind:        strings.ToLower(firstNonEmpty(strings.TrimSpace(os.Getenv("BOARDCFG_STORE")), StoreFile)),
		Path:        firstNonEmpty(strings.TrimSpace(os.Getenv("BOARDCFG_STORE_PATH")), defaultStorePath()),
		RedisAddr:   firstNonEmpty(strings.TrimSpace(os.Getenv("BOARDCFG_REDIS_ADDR")), "localhost:6379"),
		RedisPrefix: firstNonEmpty(os.Getenv("BOARDCFG_REDIS_PREFIX"), "boardcfg:"),
	}
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".boardcfg", "selections.json")
	}
	return filepath.Join(dir, "boardcfg", "selections.json")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
