// Package model defines the board records produced from board descriptors and the
// API used to read and change a board's configuration.
package model

import (
	"regexp"
	"strings"
)

// Package is a reference to the hardware package a platform was installed from.
type Package struct {
	Name string
}

// Platform identifies the hardware package (vendor + architecture) a board belongs to.
// Either PackageName or Package is set; PackageName wins when both are.
type Platform struct {
	PackageName  string
	Package      *Package
	Architecture string // e.g. "avr", "samd"
}

// ResolvedPackage returns the package name used in board keys.
func (p Platform) ResolvedPackage() string {
	if p.PackageName != "" {
		return p.PackageName
	}
	if p.Package != nil {
		return p.Package.Name
	}
	return ""
}

// Key returns "package:architecture".
func (p Platform) Key() string {
	return p.ResolvedPackage() + ":" + p.Architecture
}

// MenuMap maps a menu axis id to its display name. One MenuMap is built per
// descriptor parse and shared by every board that parse produced.
type MenuMap map[string]string

// ConfigOption is one selectable value of a configuration menu.
type ConfigOption struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// ConfigItem is one configuration axis of a board (e.g. "cpu", "speed").
// SelectedOption always names the ID of an entry in Options.
type ConfigItem struct {
	ID             string         `json:"id"`
	DisplayName    string         `json:"displayName,omitempty"` // empty while the menu title is undeclared
	SelectedOption string         `json:"selectedOption"`
	Options        []ConfigOption `json:"options"`
}

// option returns the option with the given id, or nil.
func (c *ConfigItem) option(id string) *ConfigOption {
	for i := range c.Options {
		if c.Options[i].ID == id {
			return &c.Options[i]
		}
	}
	return nil
}

// Board is one buildable hardware target parsed from a descriptor.
//
// A Board is not safe for concurrent mutation; callers serialize access per instance.
type Board struct {
	ID       string
	Name     string
	Platform Platform

	menus       MenuMap
	configItems []*ConfigItem
}

// NewBoard creates an empty board. menus is the MenuMap of the parse the board
// belongs to; it is read when a configuration axis is first seen.
func NewBoard(id string, plat Platform, menus MenuMap) *Board {
	if menus == nil {
		menus = MenuMap{}
	}
	return &Board{ID: id, Platform: plat, menus: menus}
}

// reMenuKey matches menu.<axis>.<option> with an optional trailing qualifier,
// e.g. "menu.cpu.atmega328.upload.speed".
var reMenuKey = regexp.MustCompile(`menu\.([^.]+)\.([^.]+)(\.?(\S+)?)`)

// AddParameter records one "<key>=<value>" property of the board. Only menu keys
// contribute; anything else is ignored.
//
// The first option seen for an axis becomes its default selection.
func (b *Board) AddParameter(key, value string) {
	m := reMenuKey.FindStringSubmatch(key)
	if m == nil {
		return
	}
	axisID, optionID := m[1], m[2]

	item := b.configItem(axisID)
	if item == nil {
		b.configItems = append(b.configItems, &ConfigItem{
			ID:             axisID,
			DisplayName:    b.menus[axisID],
			SelectedOption: optionID,
			Options:        []ConfigOption{{ID: optionID, DisplayName: value}},
		})
		return
	}

	if item.SelectedOption == "" {
		item.SelectedOption = optionID
	}
	if item.option(optionID) == nil {
		item.Options = append(item.Options, ConfigOption{ID: optionID, DisplayName: value})
	}
}

// ConfigItems returns the board's configuration axes in declaration order.
// Axes created before their menu title was declared pick the title up here
// once the shared MenuMap has it.
func (b *Board) ConfigItems() []*ConfigItem {
	for _, c := range b.configItems {
		if c.DisplayName == "" {
			c.DisplayName = b.menus[c.ID]
		}
	}
	return b.configItems
}

func (b *Board) configItem(id string) *ConfigItem {
	for _, c := range b.configItems {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Key returns "package:architecture:board". It never includes configuration.
func (b *Board) Key() string {
	return b.Platform.ResolvedPackage() + ":" + b.Platform.Architecture + ":" + b.ID
}

// CustomConfig returns the current selections as "id=option" pairs joined by ",".
// ok is false when the board has no configuration axes at all.
func (b *Board) CustomConfig() (config string, ok bool) {
	if len(b.configItems) == 0 {
		return "", false
	}
	pairs := make([]string, 0, len(b.configItems))
	for _, c := range b.configItems {
		pairs = append(pairs, c.ID+"="+c.SelectedOption)
	}
	return strings.Join(pairs, ","), true
}

// BuildConfig returns the key followed by ":" and the custom config, if any.
func (b *Board) BuildConfig() string {
	if cfg, ok := b.CustomConfig(); ok && cfg != "" {
		return b.Key() + ":" + cfg
	}
	return b.Key()
}

// reConfigSection matches one "<id>=<value>" section of a config string.
var reConfigSection = regexp.MustCompile(`(\S+)=(\S+)`)

// LoadConfig applies a config string as produced by CustomConfig.
//
// An empty string resets every axis to its default. Sections are applied in
// order and the first failing section aborts the load; sections applied before
// it stay applied. Otherwise the outcome of the last section is returned.
func (b *Board) LoadConfig(config string) BoardConfigResult {
	if config == "" {
		b.ResetConfig()
		return Success
	}

	result := Success
	for _, section := range strings.Split(config, ",") {
		m := reConfigSection.FindStringSubmatch(section)
		if m == nil {
			return InvalidFormat
		}
		switch r := b.UpdateConfig(m[1], m[2]); r {
		case Success, SuccessNoChange:
			result = r
		default:
			return r
		}
	}
	return result
}

// UpdateConfig selects optionID on the axis configID.
func (b *Board) UpdateConfig(configID, optionID string) BoardConfigResult {
	item := b.configItem(configID)
	if item == nil {
		return InvalidConfigID
	}
	if item.option(optionID) == nil {
		return InvalidOptionID
	}
	if item.SelectedOption == optionID {
		return SuccessNoChange
	}
	item.SelectedOption = optionID
	return Success
}

// ResetConfig selects the first discovered option on every axis.
func (b *Board) ResetConfig() {
	for _, c := range b.configItems {
		c.SelectedOption = c.Options[0].ID
	}
}

// BoardEqual reports whether a and b are the same kind of board, i.e. share a key.
// Two nil boards are equal; a nil and a non-nil board are not.
func BoardEqual(a, b *Board) bool {
	switch {
	case a != nil && b != nil:
		return a.Key() == b.Key()
	case a != nil || b != nil:
		return false
	}
	return true
}
