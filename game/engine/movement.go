package engine

import (
	"errors"
	"fmt"

	"github.com/wricardo/hexoban/game/hex"
)

var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrNoWorker         = errors.New("worker is not on the board")
	ErrNoCrate          = errors.New("no crate to push")
	ErrOffTerrain       = errors.New("destination is not terrain")
	ErrBlocked          = errors.New("destination holds another crate")
	ErrNoFooting        = errors.New("no free cell behind the crate for the worker")
)

// Push moves the crate adjacent to the worker in direction d one cell
// further, and the worker into the crate's old cell. On failure the state is
// left untouched.
func (s *State) Push(d hex.Direction) error {
	if !d.Valid() {
		return ErrInvalidDirection
	}
	from, ok := s.grid.Coord(s.worker)
	if !ok {
		return ErrNoWorker
	}
	crate := s.grid.Neighbor(from, d)
	if crate == hex.None || !s.HasCrate(crate) {
		return ErrNoCrate
	}
	return s.commitPush(crate, d)
}

// PushCrate pushes the crate on cell crate in direction d, with the worker
// assumed to have walked to the cell behind it. That cell must be terrain
// without a crate; whether the worker could actually reach it is not checked.
func (s *State) PushCrate(crate hex.Index, d hex.Direction) error {
	if !d.Valid() {
		return ErrInvalidDirection
	}
	if !s.HasCrate(crate) {
		return ErrNoCrate
	}
	at, _ := s.grid.Coord(crate)
	behind := s.grid.Neighbor(at, d.Opposite())
	if behind == hex.None || s.HasCrate(behind) {
		return ErrNoFooting
	}
	return s.commitPush(crate, d)
}

// commitPush validates the destination and only then mutates.
func (s *State) commitPush(crate hex.Index, d hex.Direction) error {
	at, _ := s.grid.Coord(crate)
	dest := s.grid.Neighbor(at, d)
	if dest == hex.None {
		return ErrOffTerrain
	}
	if s.HasCrate(dest) {
		return ErrBlocked
	}

	pos := s.slot[crate]
	delete(s.slot, crate)
	s.slot[dest] = pos
	s.crates[pos] = dest
	s.worker = crate
	s.pushes = append(s.pushes, Push{Crate: crate, Direction: d})
	return nil
}

// Walk moves the worker one cell without pushing. Walks are counted but not
// recorded in the push history.
func (s *State) Walk(d hex.Direction) error {
	if !d.Valid() {
		return ErrInvalidDirection
	}
	from, ok := s.grid.Coord(s.worker)
	if !ok {
		return ErrNoWorker
	}
	dest := s.grid.Neighbor(from, d)
	if dest == hex.None {
		return ErrOffTerrain
	}
	if s.HasCrate(dest) {
		return ErrBlocked
	}
	s.worker = dest
	s.walks++
	return nil
}

// Move walks in direction d, or pushes when a crate is in the way. It reports
// whether a push happened.
func (s *State) Move(d hex.Direction) (bool, error) {
	if !d.Valid() {
		return false, ErrInvalidDirection
	}
	from, ok := s.grid.Coord(s.worker)
	if !ok {
		return false, ErrNoWorker
	}
	if next := s.grid.Neighbor(from, d); next != hex.None && s.HasCrate(next) {
		if err := s.Push(d); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, s.Walk(d)
}

// CanMove reports whether Move(d) would succeed, without mutating.
func (s *State) CanMove(d hex.Direction) bool {
	if !d.Valid() {
		return false
	}
	from, ok := s.grid.Coord(s.worker)
	if !ok {
		return false
	}
	next := s.grid.Neighbor(from, d)
	if next == hex.None {
		return false
	}
	if !s.HasCrate(next) {
		return true
	}
	at, _ := s.grid.Coord(next)
	dest := s.grid.Neighbor(at, d)
	return dest != hex.None && !s.HasCrate(dest)
}

// Replay rebuilds the state reached by applying pushes to def's initial
// placement. The worker ends on the cell of the last pushed crate.
func Replay(def *Definition, pushes []PushRecord) (*State, error) {
	s, err := NewStateFromDefinition(def)
	if err != nil {
		return nil, err
	}
	for i, p := range pushes {
		k := s.grid.Index(p.From)
		if k == hex.None {
			return nil, fmt.Errorf("push %d from %v: %w", i+1, p.From, ErrNotTerrain)
		}
		if err := s.PushCrate(k, p.Direction); err != nil {
			return nil, fmt.Errorf("push %d from %v %s: %w", i+1, p.From, p.Direction, err)
		}
	}
	return s, nil
}
