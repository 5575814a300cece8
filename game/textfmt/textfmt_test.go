package textfmt

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/wricardo/hexoban/game/engine"
	"github.com/wricardo/hexoban/game/hex"
)

const sample = `
 # # # #
# - $ . #
 # @ # #
  # #
`

func sorted(cs []hex.Coord) []hex.Coord {
	out := append([]hex.Coord(nil), cs...)
	sort.Slice(out, func(a, b int) bool {
		if out[a].I != out[b].I {
			return out[a].I < out[b].I
		}
		return out[a].J < out[b].J
	})
	return out
}

func equalSets(a, b []hex.Coord) bool {
	a, b = sorted(a), sorted(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParse(t *testing.T) {
	def, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// The worker is the origin. The crate is one row up and to the right,
	// the floor is up-left and the goal is beside the crate.
	wantTerrain := []hex.Coord{hex.C(-1, -1), hex.C(-1, 0), hex.C(-1, 1), hex.C(0, 0)}
	if !equalSets(def.Terrain, wantTerrain) {
		t.Errorf("terrain = %v, want %v", sorted(def.Terrain), wantTerrain)
	}
	if !equalSets(def.Init.Crates, []hex.Coord{hex.C(-1, 0)}) {
		t.Errorf("crates = %v", def.Init.Crates)
	}
	if !equalSets(def.Init.Goals, []hex.Coord{hex.C(-1, 1)}) {
		t.Errorf("goals = %v", def.Init.Goals)
	}
	if def.Init.Worker == nil || *def.Init.Worker != hex.C(0, 0) {
		t.Errorf("worker = %v", def.Init.Worker)
	}

	e, err := engine.NewEngine(def)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if err := e.Move("up"); !errors.Is(err, engine.ErrOffTerrain) {
		t.Fatalf("Move(up) = %v, want the crate blocked by the wall", err)
	}
	if err := e.Move("backward"); err != nil {
		t.Fatalf("Move(backward) failed: %v", err)
	}
	if err := e.Move("right"); err != nil {
		t.Fatalf("Move(right) failed: %v", err)
	}
	if !e.IsSolved() {
		t.Error("expected the crate on the goal")
	}
}

func TestParse_NeighborDirections(t *testing.T) {
	// The worker is surrounded by one goal in every direction.
	text := `
 . .
. @ .
 . .
`
	def, err := Parse([]byte(text))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []hex.Coord{hex.C(0, 0)}
	for _, d := range hex.Directions {
		want = append(want, hex.C(0, 0).Step(d))
	}
	if !equalSets(def.Terrain, want) {
		t.Errorf("terrain = %v, want the six neighbors and the origin %v", sorted(def.Terrain), sorted(want))
	}
}

func TestParse_SpacesBetweenWallsAreFloor(t *testing.T) {
	text := "# @   $ . #\n"
	def, err := Parse([]byte(text))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []hex.Coord{hex.C(0, 0), hex.C(0, 1), hex.C(0, 2), hex.C(0, 3)}
	if !equalSets(def.Terrain, want) {
		t.Errorf("terrain = %v, want %v", sorted(def.Terrain), want)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "\n\n", ErrEmpty},
		{"no worker", "# - $ . #\n", ErrNoWorker},
		{"two workers", "# @ @ #\n", ErrManyWorkers},
		{"unknown glyph", "# @ x #\n", ErrUnknownGlyph},
		{"misaligned", "# @ #\n # -#\n", ErrMisaligned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.text)); !errors.Is(err, tt.want) {
				t.Errorf("Parse error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	def, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	text := Format(def)
	back, err := Parse(text)
	if err != nil {
		t.Fatalf("re-Parse failed: %v\n%s", err, text)
	}
	if !equalSets(back.Terrain, def.Terrain) {
		t.Errorf("terrain = %v, want %v", sorted(back.Terrain), sorted(def.Terrain))
	}
	if !equalSets(back.Init.Goals, def.Init.Goals) || !equalSets(back.Init.Crates, def.Init.Crates) {
		t.Errorf("placement changed:\n%s", text)
	}
}

func TestFormat_Glyphs(t *testing.T) {
	origin := hex.C(0, 0)
	def := &engine.Definition{
		Terrain: []hex.Coord{hex.C(0, 0), hex.C(0, 1), hex.C(0, 2)},
		Init: engine.Init{
			Goals:  []hex.Coord{hex.C(0, 0), hex.C(0, 1)},
			Crates: []hex.Coord{hex.C(0, 1), hex.C(0, 2)},
			Worker: &origin,
		},
	}
	got := string(Format(def))
	if !strings.Contains(got, "# + * $ #") {
		t.Errorf("Format =\n%s", got)
	}
	if n := strings.Count(got, "\n"); n != 3 {
		t.Errorf("Format produced %d lines, want 3:\n%s", n, got)
	}
}

func TestFormatState(t *testing.T) {
	def, err := Parse([]byte("# @ $ - . #\n"))
	if err != nil {
		t.Fatal(err)
	}
	s, err := engine.NewStateFromDefinition(def)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Push(hex.Right); err != nil {
		t.Fatal(err)
	}
	if got := string(FormatState(s)); !strings.Contains(got, "# - @ $ . #") {
		t.Errorf("FormatState =\n%s", got)
	}
}
