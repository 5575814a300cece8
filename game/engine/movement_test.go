package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/wricardo/hexoban/game/hex"
)

func coordPtr(i, j int) *hex.Coord {
	c := hex.C(i, j)
	return &c
}

// lineDefinition is a 1x4 strip: worker, crate, floor, goal.
func lineDefinition() *Definition {
	return &Definition{
		ID:      "line",
		Name:    "Line",
		Terrain: []hex.Coord{hex.C(0, 0), hex.C(0, 1), hex.C(0, 2), hex.C(0, 3)},
		Init: Init{
			Goals:  []hex.Coord{hex.C(0, 3)},
			Crates: []hex.Coord{hex.C(0, 1)},
			Worker: coordPtr(0, 0),
		},
	}
}

func createTestState(t *testing.T, def *Definition) *State {
	t.Helper()
	s, err := NewStateFromDefinition(def)
	if err != nil {
		t.Fatalf("NewStateFromDefinition failed: %v", err)
	}
	return s
}

func workerCoord(t *testing.T, s *State) hex.Coord {
	t.Helper()
	c, ok := s.Grid().Coord(s.Worker())
	if !ok {
		t.Fatal("worker is not placed")
	}
	return c
}

func crateCoords(s *State) []hex.Coord {
	return coordsOf(s.Grid(), s.Crates())
}

func TestPush_LineScenario(t *testing.T) {
	s := createTestState(t, lineDefinition())
	g := s.Grid()

	if s.Solved() {
		t.Fatal("should not start solved")
	}

	if err := s.Push(hex.Right); err != nil {
		t.Fatalf("first push failed: %v", err)
	}
	if got := workerCoord(t, s); got != hex.C(0, 1) {
		t.Errorf("worker after first push = %v, want [0, 1]", got)
	}
	if got := crateCoords(s); !reflect.DeepEqual(got, []hex.Coord{hex.C(0, 2)}) {
		t.Errorf("crates after first push = %v", got)
	}

	if err := s.Push(hex.Right); err != nil {
		t.Fatalf("second push failed: %v", err)
	}
	if got := workerCoord(t, s); got != hex.C(0, 2) {
		t.Errorf("worker after second push = %v, want [0, 2]", got)
	}
	if !s.Solved() {
		t.Error("expected solved after two pushes")
	}

	want := []Push{
		{Crate: g.Index(hex.C(0, 1)), Direction: hex.Right},
		{Crate: g.Index(hex.C(0, 2)), Direction: hex.Right},
	}
	if got := s.Pushes(); !reflect.DeepEqual(got, want) {
		t.Errorf("pushes = %+v, want %+v", got, want)
	}
	if s.Steps() != 2 {
		t.Errorf("Steps = %d, want 2", s.Steps())
	}
}

func TestPush_RejectedLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		def     func() *Definition
		setup   []hex.Direction
		push    hex.Direction
		wantErr error
	}{
		{
			name:    "no crate on the neighbor",
			def:     lineDefinition,
			push:    hex.Left,
			wantErr: ErrNoCrate,
		},
		{
			name:    "neighbor is floor",
			def:     lineDefinition,
			push:    hex.Down,
			wantErr: ErrNoCrate,
		},
		{
			name:    "destination off terrain",
			def:     lineDefinition,
			setup:   []hex.Direction{hex.Right, hex.Right},
			push:    hex.Right,
			wantErr: ErrOffTerrain,
		},
		{
			name: "destination holds a crate",
			def: func() *Definition {
				def := lineDefinition()
				def.Init.Crates = []hex.Coord{hex.C(0, 1), hex.C(0, 2)}
				def.Init.Goals = []hex.Coord{hex.C(0, 3), hex.C(0, 2)}
				return def
			},
			push:    hex.Right,
			wantErr: ErrBlocked,
		},
		{
			name:    "invalid direction",
			def:     lineDefinition,
			push:    hex.Direction(6),
			wantErr: ErrInvalidDirection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := createTestState(t, tt.def())
			for _, d := range tt.setup {
				if err := s.Push(d); err != nil {
					t.Fatalf("setup push %s failed: %v", d, err)
				}
			}
			before := s.Snapshot()

			err := s.Push(tt.push)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Push(%s) error = %v, want %v", tt.push, err, tt.wantErr)
			}
			if after := s.Snapshot(); !reflect.DeepEqual(before, after) {
				t.Errorf("state changed after rejected push:\nbefore %+v\nafter  %+v", before, after)
			}
		})
	}
}

func TestPush_NoWorker(t *testing.T) {
	def := lineDefinition()
	def.Init.Worker = nil
	def.Terrain = def.Terrain[1:]
	s := createTestState(t, def)

	if s.Worker() != hex.None {
		t.Fatalf("worker = %d, want unplaced", s.Worker())
	}
	if err := s.Push(hex.Right); !errors.Is(err, ErrNoWorker) {
		t.Errorf("Push error = %v, want ErrNoWorker", err)
	}
	if err := s.Walk(hex.Right); !errors.Is(err, ErrNoWorker) {
		t.Errorf("Walk error = %v, want ErrNoWorker", err)
	}

	// Crate-identified pushes still work without a worker.
	if err := s.PushCrate(s.Grid().Index(hex.C(0, 1)), hex.Right); err != ErrNoFooting {
		t.Errorf("PushCrate from the edge = %v, want ErrNoFooting", err)
	}
	def.Init.Crates = []hex.Coord{hex.C(0, 2)}
	s = createTestState(t, def)
	if err := s.PushCrate(s.Grid().Index(hex.C(0, 2)), hex.Right); err != nil {
		t.Fatalf("PushCrate failed: %v", err)
	}
	if !s.Solved() {
		t.Error("expected solved")
	}
}

func TestPushCrate(t *testing.T) {
	tests := []struct {
		name    string
		crate   hex.Coord
		dir     hex.Direction
		wantErr error
	}{
		{"push along the line", hex.C(0, 1), hex.Right, nil},
		{"push back toward the worker start", hex.C(0, 1), hex.Left, nil},
		{"no footing behind", hex.C(0, 1), hex.Down, ErrNoFooting},
		{"not a crate", hex.C(0, 2), hex.Right, ErrNoCrate},
		{"unregistered cell", hex.C(7, 7), hex.Right, ErrNoCrate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := createTestState(t, lineDefinition())
			err := s.PushCrate(s.Grid().Index(tt.crate), tt.dir)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("PushCrate error = %v, want %v", err, tt.wantErr)
			}
			if err == nil {
				if got := workerCoord(t, s); got != tt.crate {
					t.Errorf("worker = %v, want the crate's old cell %v", got, tt.crate)
				}
				if len(s.Pushes()) != 1 {
					t.Errorf("history length = %d, want 1", len(s.Pushes()))
				}
			}
		})
	}
}

func TestWalkAndMove(t *testing.T) {
	s := createTestState(t, lineDefinition())

	if err := s.Walk(hex.Right); !errors.Is(err, ErrBlocked) {
		t.Errorf("Walk into crate = %v, want ErrBlocked", err)
	}
	if err := s.Walk(hex.Up); !errors.Is(err, ErrOffTerrain) {
		t.Errorf("Walk off terrain = %v, want ErrOffTerrain", err)
	}

	pushed, err := s.Move(hex.Right)
	if err != nil || !pushed {
		t.Fatalf("Move(right) = %v, %v; want a push", pushed, err)
	}
	pushed, err = s.Move(hex.Left)
	if err != nil || pushed {
		t.Fatalf("Move(left) = %v, %v; want a walk", pushed, err)
	}
	if got := workerCoord(t, s); got != hex.C(0, 0) {
		t.Errorf("worker = %v, want [0, 0]", got)
	}
	if len(s.Pushes()) != 1 {
		t.Errorf("walks should not be recorded, history = %v", s.Pushes())
	}
	if s.Steps() != 2 {
		t.Errorf("Steps = %d, want 2", s.Steps())
	}
}

func TestCanMove(t *testing.T) {
	s := createTestState(t, lineDefinition())

	for _, d := range hex.Directions {
		want := d == hex.Right
		if got := s.CanMove(d); got != want {
			t.Errorf("CanMove(%s) = %v, want %v", d, got, want)
		}
	}
	if s.CanMove(hex.Direction(-1)) {
		t.Error("CanMove(invalid) should be false")
	}
}

func TestSolved_IsSetEquality(t *testing.T) {
	def := &Definition{
		Terrain: []hex.Coord{hex.C(0, 0), hex.C(0, 1), hex.C(0, 2), hex.C(1, 1)},
		Init: Init{
			Goals:  []hex.Coord{hex.C(0, 2), hex.C(1, 1)},
			Crates: []hex.Coord{hex.C(1, 1), hex.C(0, 2)},
		},
	}
	s := createTestState(t, def)
	if !s.Solved() {
		t.Error("crates in a different order than goals should still be solved")
	}

	def.Init.Crates = []hex.Coord{hex.C(1, 1)}
	s = createTestState(t, def)
	if s.Solved() {
		t.Error("fewer crates than goals cannot be solved")
	}
}

func TestReplay(t *testing.T) {
	def := &Definition{
		Terrain: []hex.Coord{
			hex.C(0, 0), hex.C(0, 1), hex.C(0, 2),
			hex.C(1, 1), hex.C(1, 2), hex.C(2, 2),
		},
		Init: Init{
			Goals:  []hex.Coord{hex.C(2, 2)},
			Crates: []hex.Coord{hex.C(0, 1)},
		},
	}
	s := createTestState(t, def)
	if err := s.Push(hex.Right); err != nil {
		t.Fatalf("Push(right) failed: %v", err)
	}
	for _, d := range []hex.Direction{hex.Down, hex.Up, hex.Left} {
		if err := s.Walk(d); err != nil {
			t.Fatalf("Walk(%s) failed: %v", d, err)
		}
	}

	replayed, err := Replay(def, s.PushRecords())
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if !reflect.DeepEqual(crateCoords(replayed), crateCoords(s)) {
		t.Errorf("replayed crates = %v, want %v", crateCoords(replayed), crateCoords(s))
	}
	if !reflect.DeepEqual(replayed.PushRecords(), s.PushRecords()) {
		t.Errorf("replayed history = %v, want %v", replayed.PushRecords(), s.PushRecords())
	}
	if got := workerCoord(t, replayed); got != hex.C(0, 1) {
		t.Errorf("replayed worker = %v, want the last pushed-from cell [0, 1]", got)
	}

	_, err = Replay(def, []PushRecord{{From: hex.C(5, 5), Direction: hex.Right}})
	if !errors.Is(err, ErrNotTerrain) {
		t.Errorf("Replay from an unknown cell = %v, want ErrNotTerrain", err)
	}
	_, err = Replay(def, []PushRecord{{From: hex.C(0, 2), Direction: hex.Right}})
	if !errors.Is(err, ErrNoCrate) {
		t.Errorf("Replay of a push without a crate = %v, want ErrNoCrate", err)
	}
}

func TestState_Editing(t *testing.T) {
	g := hex.NewGrid()
	a := g.Register(hex.C(0, 0))
	b := g.Register(hex.C(0, 1))
	c := g.Register(hex.C(0, 2))
	s := NewState(g)

	if err := s.AddCrate(99); !errors.Is(err, ErrNotTerrain) {
		t.Errorf("AddCrate on unregistered index = %v", err)
	}
	if err := s.SetWorker(a); err != nil {
		t.Fatalf("SetWorker failed: %v", err)
	}
	if err := s.AddCrate(a); !errors.Is(err, ErrWorkerOnCrate) {
		t.Errorf("AddCrate under the worker = %v", err)
	}
	if err := s.AddCrate(b); err != nil {
		t.Fatalf("AddCrate failed: %v", err)
	}
	if err := s.AddCrate(c); err != nil {
		t.Fatalf("AddCrate failed: %v", err)
	}
	if err := s.AddCrate(b); !errors.Is(err, ErrCellOccupied) {
		t.Errorf("second crate on a cell = %v", err)
	}
	if err := s.AddGoal(c); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}

	if freed := s.RemoveCell(hex.C(0, 1)); freed != b {
		t.Errorf("RemoveCell freed %d, want %d", freed, b)
	}
	if s.HasCrate(b) {
		t.Error("crate survived cell removal")
	}
	if !s.HasCrate(c) {
		t.Error("unrelated crate was lost")
	}
	if !s.Solved() {
		t.Error("remaining crate sits on the only goal")
	}

	s.RemoveCell(hex.C(0, 0))
	if s.Worker() != hex.None {
		t.Error("worker should be unplaced after its cell is removed")
	}
	if s.RemoveCell(hex.C(9, 9)) != hex.None {
		t.Error("removing a non-terrain cell should return 0")
	}
}

func TestSnapshot(t *testing.T) {
	s := createTestState(t, lineDefinition())
	if err := s.Push(hex.Right); err != nil {
		t.Fatal(err)
	}

	v := s.Snapshot()
	if len(v.Cells) != 4 {
		t.Errorf("cells = %d, want 4", len(v.Cells))
	}
	if v.WorkerCoord == nil || *v.WorkerCoord != hex.C(0, 1) {
		t.Errorf("worker coord = %v", v.WorkerCoord)
	}
	if c, ok := v.CoordOf(v.Crates[0]); !ok || c != hex.C(0, 2) {
		t.Errorf("crate coord = %v, %v", c, ok)
	}
	want := []PushRecord{{From: hex.C(0, 1), Direction: hex.Right}}
	if !reflect.DeepEqual(v.Pushes, want) {
		t.Errorf("pushes = %v, want %v", v.Pushes, want)
	}
	if v.Solved {
		t.Error("should not be solved yet")
	}
}
