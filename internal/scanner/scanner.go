// Package scanner loads every configured board descriptor and merges the boards
// into a single catalog.
package scanner

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/StinkyLord/boardcfg/internal/descriptor"
	"github.com/StinkyLord/boardcfg/internal/model"
)

const defaultCacheSize = 64

// Source is one descriptor file together with the platform its boards belong to.
type Source struct {
	Path     string
	Platform model.Platform
}

// Result holds the merged catalog and metadata about which sources produced boards.
type Result struct {
	Catalog        *model.Catalog
	SourcesUsed    []string
	SourcesSkipped []string

	// Duplicates lists board keys defined by more than one source. The first
	// source in configuration order wins.
	Duplicates []string
}

// Scanner parses descriptor sources. Descriptor text is kept in an LRU keyed by
// path, size and modification time. Concurrent reads of one file are collapsed,
// so a descriptor listed by several sources (one core shipped under two package
// names) is read once and parsed once per source.
type Scanner struct {
	Sources []Source
	Logger  *log.Logger

	texts    *lru.Cache[textKey, string]
	reads    singleflight.Group
	readFile func(string) ([]byte, error)
}

type textKey struct {
	path    string
	size    int64
	modTime int64
}

// New creates a Scanner. A nil logger discards output.
func New(sources []Source, logger *log.Logger) *Scanner {
	texts, err := lru.New[textKey, string](defaultCacheSize)
	if err != nil {
		panic(err)
	}
	return &Scanner{Sources: sources, Logger: logger, texts: texts, readFile: os.ReadFile}
}

// Scan parses all sources concurrently and merges their boards in source order.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	type sourceResult struct {
		index  int
		parsed *descriptor.Result
		err    error
	}

	resultCh := make(chan sourceResult, len(s.Sources))
	var wg sync.WaitGroup

	for i, src := range s.Sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				resultCh <- sourceResult{index: i, err: err}
				return
			}
			text, err := s.readText(src.Path)
			if err != nil {
				resultCh <- sourceResult{index: i, err: err}
				return
			}
			resultCh <- sourceResult{index: i, parsed: descriptor.Parse(text, src.Platform)}
		}(i, src)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	parsed := make([]*descriptor.Result, len(s.Sources))
	errs := make([]error, len(s.Sources))
	for r := range resultCh {
		parsed[r.index] = r.parsed
		errs[r.index] = r.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		boards []*model.Board
		used   []string
		skip   []string
		dups   []string
	)
	owner := map[string]string{}

	for i, src := range s.Sources {
		if errs[i] != nil {
			s.logger().Warn("skipping descriptor", "path", src.Path, "err", errs[i])
			skip = append(skip, src.Path)
			continue
		}
		res := parsed[i]
		descriptor.Report(res, src.Path, s.Logger)
		if len(res.Boards) == 0 {
			skip = append(skip, src.Path)
			continue
		}
		used = append(used, src.Path)

		for _, b := range res.Ordered() {
			key := b.Key()
			if first, ok := owner[key]; ok {
				s.logger().Warn("duplicate board key", "key", key, "kept", first, "ignored", src.Path)
				dups = append(dups, key)
				continue
			}
			owner[key] = src.Path
			boards = append(boards, b)
		}
	}

	return &Result{
		Catalog:        model.BuildCatalog(boards),
		SourcesUsed:    used,
		SourcesSkipped: skip,
		Duplicates:     dups,
	}, nil
}

func (s *Scanner) readText(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat descriptor %q: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("descriptor %q is a directory", path)
	}

	key := textKey{path: path, size: info.Size(), modTime: info.ModTime().UnixNano()}
	if text, ok := s.texts.Get(key); ok {
		s.logger().Debug("descriptor cache hit", "path", path)
		return text, nil
	}

	v, err, _ := s.reads.Do(fmt.Sprintf("%s\x00%d\x00%d", key.path, key.size, key.modTime), func() (any, error) {
		// A read that finished between the Get above and Do already filled the cache.
		if text, ok := s.texts.Get(key); ok {
			return text, nil
		}
		data, err := s.readFile(path)
		if err != nil {
			return "", fmt.Errorf("read descriptor %q: %w", path, err)
		}
		text := string(data)
		s.texts.Add(key, text)
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// logger never returns nil so call sites need no checks.
func (s *Scanner) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return discard
}

var discard = log.NewWithOptions(io.Discard, log.Options{})
