package descriptor

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/StinkyLord/boardcfg/internal/model"
)

var avr = model.Platform{PackageName: "arduino", Architecture: "avr"}

// testdataDir returns the absolute path to this package's testdata directory.
func testdataDir() string {
	_, file, _, _ := runtime.Caller(0)
	// file = .../internal/descriptor/parser_test.go
	return filepath.Join(filepath.Dir(file), "testdata")
}

func parseTestdata(t *testing.T) *Result {
	t.Helper()
	res, err := ParseFile(filepath.Join(testdataDir(), "boards.txt"), avr, nil)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	return res
}

func optionIDs(item *model.ConfigItem) []string {
	ids := make([]string, 0, len(item.Options))
	for _, o := range item.Options {
		ids = append(ids, o.ID)
	}
	return ids
}

// ============================================================
// boards.txt
// ============================================================

func TestParseFile_BoardsInOrder(t *testing.T) {
	res := parseTestdata(t)

	want := []string{"yun", "uno", "diecimila", "nano", "pro"}
	if len(res.Boards) != len(want) {
		t.Fatalf("len(Boards) = %d, want %d", len(res.Boards), len(want))
	}
	for i, b := range res.Ordered() {
		if b.ID != want[i] {
			t.Errorf("Ordered()[%d] = %q, want %q", i, b.ID, want[i])
		}
	}

	names := map[string]string{
		"yun":       "Arduino Yún",
		"uno":       "Arduino Uno",
		"diecimila": "Arduino Duemilanove or Diecimila",
		"nano":      "Arduino Nano",
		"pro":       "Arduino Pro or Pro Mini",
	}
	for id, name := range names {
		if got := res.Boards[id].Name; got != name {
			t.Errorf("%s.Name = %q, want %q", id, got, name)
		}
	}
}

func TestParseFile_MenusAreNotBoards(t *testing.T) {
	res := parseTestdata(t)

	if _, ok := res.Boards["menu"]; ok {
		t.Error("menu title lines produced a board named \"menu\"")
	}
	if got := res.Menus["cpu"]; got != "Processor" {
		t.Errorf("Menus[cpu] = %q, want %q", got, "Processor")
	}
	if got := res.Menus["speed"]; got != "Clock" {
		t.Errorf("Menus[speed] = %q, want %q", got, "Clock")
	}
}

func TestParseFile_BoardsWithoutMenus(t *testing.T) {
	res := parseTestdata(t)

	for _, id := range []string{"yun", "uno"} {
		b := res.Boards[id]
		if n := len(b.ConfigItems()); n != 0 {
			t.Errorf("%s: len(ConfigItems) = %d, want 0", id, n)
		}
		if got, want := b.BuildConfig(), "arduino:avr:"+id; got != want {
			t.Errorf("%s.BuildConfig() = %q, want %q", id, got, want)
		}
	}
}

func TestParseFile_NanoOptions(t *testing.T) {
	res := parseTestdata(t)
	nano := res.Boards["nano"]

	items := nano.ConfigItems()
	if len(items) != 1 {
		t.Fatalf("nano: len(ConfigItems) = %d, want 1", len(items))
	}
	cpu := items[0]
	if cpu.ID != "cpu" || cpu.DisplayName != "Processor" {
		t.Errorf("nano cpu = {%q, %q}, want {cpu, Processor}", cpu.ID, cpu.DisplayName)
	}
	want := []string{"atmega328", "atmega328old", "atmega168"}
	if got := optionIDs(cpu); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("nano cpu options = %v, want %v", got, want)
	}
	if cpu.Options[1].DisplayName != "ATmega328P (Old Bootloader)" {
		t.Errorf("atmega328old DisplayName = %q", cpu.Options[1].DisplayName)
	}
	if got := nano.BuildConfig(); got != "arduino:avr:nano:cpu=atmega328" {
		t.Errorf("nano.BuildConfig() = %q", got)
	}
}

func TestParseFile_QualifierLinesDoNotAddOptions(t *testing.T) {
	res := parseTestdata(t)
	cpu := res.Boards["diecimila"].ConfigItems()[0]

	want := []string{"atmega328", "atmega168"}
	if got := optionIDs(cpu); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("diecimila cpu options = %v, want %v", got, want)
	}
}

// pro declares its speed options before "menu.speed=Clock".
func TestParseFile_LateMenuTitle(t *testing.T) {
	res := parseTestdata(t)

	if len(res.Unresolved) != 1 || res.Unresolved[0] != "pro.speed" {
		t.Errorf("Unresolved = %v, want [pro.speed]", res.Unresolved)
	}

	pro := res.Boards["pro"]
	items := pro.ConfigItems()
	if len(items) != 2 {
		t.Fatalf("pro: len(ConfigItems) = %d, want 2", len(items))
	}
	if items[1].ID != "speed" || items[1].DisplayName != "Clock" {
		t.Errorf("pro speed = {%q, %q}, want {speed, Clock}", items[1].ID, items[1].DisplayName)
	}
	if got := pro.BuildConfig(); got != "arduino:avr:pro:cpu=16MHzatmega328,speed=fast" {
		t.Errorf("pro.BuildConfig() = %q", got)
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "boards.txt"), avr, nil)
	if err == nil {
		t.Fatal("ParseFile on a missing file: expected error")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want a not-exist error", err)
	}
}

// ============================================================
// Parse on inline text
// ============================================================

func TestParse_TitleAfterUse(t *testing.T) {
	text := "uno.name=Arduino Uno\nuno.menu.cpu.atmega328=ATmega328P\nmenu.cpu=Processor"
	res := Parse(text, avr)

	uno := res.Boards["uno"]
	if uno == nil {
		t.Fatal("board uno not parsed")
	}
	if uno.Name != "Arduino Uno" {
		t.Errorf("Name = %q, want %q", uno.Name, "Arduino Uno")
	}
	items := uno.ConfigItems()
	if len(items) != 1 {
		t.Fatalf("len(ConfigItems) = %d, want 1", len(items))
	}
	cpu := items[0]
	if cpu.ID != "cpu" || cpu.DisplayName != "Processor" || cpu.SelectedOption != "atmega328" {
		t.Errorf("cpu = %+v", *cpu)
	}
	if len(cpu.Options) != 1 || cpu.Options[0] != (model.ConfigOption{ID: "atmega328", DisplayName: "ATmega328P"}) {
		t.Errorf("cpu.Options = %+v", cpu.Options)
	}
	if len(res.Unresolved) != 1 || res.Unresolved[0] != "uno.cpu" {
		t.Errorf("Unresolved = %v, want [uno.cpu]", res.Unresolved)
	}
}

func TestParse_TitleNeverDeclared(t *testing.T) {
	res := Parse("mini.menu.cpu.atmega328=ATmega328P\n", avr)

	cpu := res.Boards["mini"].ConfigItems()[0]
	if cpu.DisplayName != "" {
		t.Errorf("DisplayName = %q, want empty", cpu.DisplayName)
	}
	if res.Boards["mini"].Name != "" {
		t.Errorf("Name = %q, want empty (no name line)", res.Boards["mini"].Name)
	}
}

func TestParse_LineEndings(t *testing.T) {
	lines := []string{
		"menu.cpu=Processor",
		"nano.name=Arduino Nano",
		"nano.menu.cpu.atmega328=ATmega328P",
		"nano.menu.cpu.atmega168=ATmega168",
	}
	for name, sep := range map[string]string{"LF": "\n", "CRLF": "\r\n", "CR": "\r"} {
		t.Run(name, func(t *testing.T) {
			res := Parse(strings.Join(lines, sep), avr)
			nano := res.Boards["nano"]
			if nano == nil {
				t.Fatal("board nano not parsed")
			}
			if nano.Name != "Arduino Nano" {
				t.Errorf("Name = %q, want %q", nano.Name, "Arduino Nano")
			}
			cpu := nano.ConfigItems()[0]
			if got := optionIDs(cpu); len(got) != 2 || got[1] != "atmega168" {
				t.Errorf("cpu options = %v", got)
			}
			if cpu.Options[1].DisplayName != "ATmega168" {
				t.Errorf("DisplayName = %q, want no trailing CR", cpu.Options[1].DisplayName)
			}
		})
	}
}

func TestParse_IgnoresCommentsAndMalformedLines(t *testing.T) {
	text := strings.Join([]string{
		"# ghost.name=Commented Out",
		"",
		"   ",
		"no equals sign here",
		"nodot=value",
		"uno.empty=",
		"uno.name=Arduino Uno",
	}, "\n")
	res := Parse(text, avr)

	if len(res.Boards) != 1 {
		ids := make([]string, 0, len(res.Boards))
		for id := range res.Boards {
			ids = append(ids, id)
		}
		t.Fatalf("boards = %v, want only uno", ids)
	}
	if res.Boards["uno"].Name != "Arduino Uno" {
		t.Errorf("Name = %q", res.Boards["uno"].Name)
	}
}

func TestParse_EmptyText(t *testing.T) {
	res := Parse("", avr)
	if len(res.Boards) != 0 || len(res.Order) != 0 {
		t.Errorf("Parse(\"\") = %d boards, want 0", len(res.Boards))
	}
	if got := ParseBoardDescriptor("", avr); len(got) != 0 {
		t.Errorf("ParseBoardDescriptor(\"\") = %d boards, want 0", len(got))
	}
}

func TestParse_SharedMenuMap(t *testing.T) {
	text := "menu.cpu=Processor\na.menu.cpu.x=X\nb.menu.cpu.y=Y\n"
	boards := ParseBoardDescriptor(text, avr)

	for _, id := range []string{"a", "b"} {
		if got := boards[id].ConfigItems()[0].DisplayName; got != "Processor" {
			t.Errorf("%s cpu DisplayName = %q, want %q", id, got, "Processor")
		}
	}
	if boards["a"].Platform != avr {
		t.Errorf("Platform = %+v, want %+v", boards["a"].Platform, avr)
	}
}

func TestParse_Deterministic(t *testing.T) {
	data, err := os.ReadFile(filepath.Join(testdataDir(), "boards.txt"))
	if err != nil {
		t.Fatal(err)
	}
	first := Parse(string(data), avr)
	second := Parse(string(data), avr)

	if strings.Join(first.Order, ",") != strings.Join(second.Order, ",") {
		t.Errorf("Order differs: %v vs %v", first.Order, second.Order)
	}
	for _, id := range first.Order {
		a, b := first.Boards[id], second.Boards[id]
		if a.BuildConfig() != b.BuildConfig() {
			t.Errorf("%s: BuildConfig %q vs %q", id, a.BuildConfig(), b.BuildConfig())
		}
		if len(a.ConfigItems()) != len(b.ConfigItems()) {
			t.Errorf("%s: ConfigItems %d vs %d", id, len(a.ConfigItems()), len(b.ConfigItems()))
		}
	}
}
