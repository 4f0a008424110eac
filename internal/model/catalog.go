package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownBoard is returned when a board reference matches no board.
	ErrUnknownBoard = errors.New("unknown board")

	// ErrAmbiguousBoard is returned when a bare board id exists on several platforms.
	ErrAmbiguousBoard = errors.New("ambiguous board id")

	// ErrInvalidBuildConfig is returned for strings that are not pkg:arch:board[:config].
	ErrInvalidBuildConfig = errors.New("invalid build config")
)

// BoardNode is the JSON view of a board with its current selections.
type BoardNode struct {
	ID          string       `json:"id"`
	Key         string       `json:"key"`
	Name        string       `json:"name,omitempty"`
	BuildConfig string       `json:"buildConfig"`
	ConfigItems []ConfigItem `json:"configItems,omitempty"`
}

// PlatformNode groups the boards of one package/architecture pair.
type PlatformNode struct {
	Package      string       `json:"package"`
	Architecture string       `json:"architecture"`
	Boards       []*BoardNode `json:"boards"`
}

// Catalog indexes boards from any number of descriptors.
type Catalog struct {
	// All holds every board sorted by key. Duplicate keys keep the first board seen.
	All []*Board

	// ByKey provides lookup by "package:architecture:board".
	ByKey map[string]*Board

	byID map[string][]*Board
}

// BuildCatalog indexes boards. Input order decides which board wins a duplicate key.
func BuildCatalog(boards []*Board) *Catalog {
	c := &Catalog{
		ByKey: make(map[string]*Board, len(boards)),
		byID:  make(map[string][]*Board, len(boards)),
	}

	for _, b := range boards {
		key := b.Key()
		if _, dup := c.ByKey[key]; dup {
			continue
		}
		c.ByKey[key] = b
		c.byID[b.ID] = append(c.byID[b.ID], b)
		c.All = append(c.All, b)
	}

	sort.Slice(c.All, func(i, j int) bool {
		return c.All[i].Key() < c.All[j].Key()
	})
	return c
}

// Tree returns the boards grouped by platform, in key order. The nodes are a
// snapshot of the current selections.
func (c *Catalog) Tree() []*PlatformNode {
	var roots []*PlatformNode
	byPlatform := map[string]*PlatformNode{}

	for _, b := range c.All {
		pk := b.Platform.Key()
		node, ok := byPlatform[pk]
		if !ok {
			node = &PlatformNode{
				Package:      b.Platform.ResolvedPackage(),
				Architecture: b.Platform.Architecture,
			}
			byPlatform[pk] = node
			roots = append(roots, node)
		}
		node.Boards = append(node.Boards, newBoardNode(b))
	}
	return roots
}

func newBoardNode(b *Board) *BoardNode {
	n := &BoardNode{
		ID:          b.ID,
		Key:         b.Key(),
		Name:        b.Name,
		BuildConfig: b.BuildConfig(),
	}
	for _, item := range b.ConfigItems() {
		n.ConfigItems = append(n.ConfigItems, *item)
	}
	return n
}

// Resolve finds the board named by ref. ref is a board key, a build config
// string (the config suffix is returned) or a board id that is unique in the catalog.
func (c *Catalog) Resolve(ref string) (board *Board, config string, err error) {
	if strings.Contains(ref, ":") {
		key, config, err := SplitBuildConfig(ref)
		if err != nil {
			return nil, "", err
		}
		b, ok := c.ByKey[key]
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", ErrUnknownBoard, key)
		}
		return b, config, nil
	}

	switch matches := c.byID[ref]; len(matches) {
	case 0:
		return nil, "", fmt.Errorf("%w: %s", ErrUnknownBoard, ref)
	case 1:
		return matches[0], "", nil
	default:
		keys := make([]string, 0, len(matches))
		for _, b := range matches {
			keys = append(keys, b.Key())
		}
		sort.Strings(keys)
		return nil, "", fmt.Errorf("%w: %s matches %s", ErrAmbiguousBoard, ref, strings.Join(keys, ", "))
	}
}

// SplitBuildConfig splits "pkg:arch:board[:config]" into the board key and the config suffix.
func SplitBuildConfig(s string) (key, config string, err error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidBuildConfig, s)
	}
	key = strings.Join(parts[:3], ":")
	if len(parts) == 4 {
		config = parts[3]
	}
	return key, config, nil
}
