// Package descriptor parses board descriptor files (boards.txt) into board records.
//
// The format is line oriented:
//
//	# comment
//	menu.cpu=Processor
//	uno.name=Arduino Uno
//	uno.menu.cpu.atmega328=ATmega328P
//
// Lines that do not look like "<id>.<key>=<value>" are ignored; parsing never fails.
package descriptor

import (
	"regexp"
	"strings"

	"github.com/StinkyLord/boardcfg/internal/model"
)

// reBoardLine matches "<board>.<dotted.key>=<value>".
var reBoardLine = regexp.MustCompile(`([^.]+)\.(\S+)=(.+)`)

// reLineBreak splits on \r\n, \r and \n.
var reLineBreak = regexp.MustCompile(`\r\n|\r|\n`)

// Result holds everything produced by one parse.
type Result struct {
	// Boards maps a board id to its record.
	Boards map[string]*model.Board

	// Order lists board ids in the order they were first seen.
	Order []string

	// Menus is the MenuMap shared by every board of this parse.
	Menus model.MenuMap

	// Unresolved lists "<board>.<axis>" pairs whose ConfigItem was created before
	// the matching menu title line, leaving its display name empty.
	Unresolved []string
}

// Ordered returns the boards in discovery order.
func (r *Result) Ordered() []*model.Board {
	out := make([]*model.Board, 0, len(r.Order))
	for _, id := range r.Order {
		out = append(out, r.Boards[id])
	}
	return out
}

// ParseBoardDescriptor parses text into a map of board id to board.
func ParseBoardDescriptor(text string, plat model.Platform) map[string]*model.Board {
	return Parse(text, plat).Boards
}

// Parse scans text once, in order. Menu titles are looked up when an axis is
// first seen; an axis whose title only appears later is listed in Unresolved
// and gets its title from the shared MenuMap when its items are read.
func Parse(text string, plat model.Platform) *Result {
	res := &Result{
		Boards: map[string]*model.Board{},
		Menus:  model.MenuMap{},
	}

	for _, line := range reLineBreak.Split(text, -1) {
		if strings.HasPrefix(line, "#") {
			continue
		}
		m := reBoardLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if strings.HasPrefix(line, "menu.") {
			res.Menus[m[2]] = m[3]
			continue
		}

		id, key, value := m[1], m[2], m[3]
		board, ok := res.Boards[id]
		if !ok {
			board = model.NewBoard(id, plat, res.Menus)
			res.Boards[id] = board
			res.Order = append(res.Order, id)
		}

		if key == "name" {
			board.Name = strings.TrimSpace(value)
			continue
		}

		before := len(board.ConfigItems())
		board.AddParameter(key, value)
		if items := board.ConfigItems(); len(items) > before {
			if item := items[len(items)-1]; item.DisplayName == "" {
				res.Unresolved = append(res.Unresolved, id+"."+item.ID)
			}
		}
	}

	return res
}
