package hex

import (
	"encoding/json"
	"fmt"
)

// Coord is an axial hex coordinate. I grows downward and J grows rightward;
// the remaining two neighbor directions are the (+1,+1) forward diagonal and
// its (-1,-1) backward opposite.
//
// A Coord is serialized into JSON as the two-element array [i, j].
type Coord struct {
	I int
	J int
}

// C is a convenience constructor for Coord.
func C(i, j int) Coord {
	return Coord{I: i, J: j}
}

func (c Coord) Up() Coord       { return Coord{c.I - 1, c.J} }
func (c Coord) Down() Coord     { return Coord{c.I + 1, c.J} }
func (c Coord) Left() Coord     { return Coord{c.I, c.J - 1} }
func (c Coord) Right() Coord    { return Coord{c.I, c.J + 1} }
func (c Coord) Forward() Coord  { return Coord{c.I + 1, c.J + 1} }
func (c Coord) Backward() Coord { return Coord{c.I - 1, c.J - 1} }

// Step returns the neighbor of c in direction d. An invalid direction
// returns c unchanged.
func (c Coord) Step(d Direction) Coord {
	switch d {
	case Up:
		return c.Up()
	case Backward:
		return c.Backward()
	case Left:
		return c.Left()
	case Down:
		return c.Down()
	case Forward:
		return c.Forward()
	case Right:
		return c.Right()
	}
	return c
}

// Sub returns the offset c - o.
func (c Coord) Sub(o Coord) Coord {
	return Coord{c.I - o.I, c.J - o.J}
}

// Add returns c translated by o.
func (c Coord) Add(o Coord) Coord {
	return Coord{c.I + o.I, c.J + o.J}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("[%d, %d]", c.I, c.J)
}

// MarshalJSON writes the coordinate as [i, j].
func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.I, c.J})
}

// UnmarshalJSON reads a coordinate from [i, j]. Anything other than an array
// of exactly two integers is rejected.
func (c *Coord) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinate must be an [i, j] array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate must have exactly 2 components, got %d", len(pair))
	}
	i, err := component(pair[0])
	if err != nil {
		return fmt.Errorf("coordinate i component: %w", err)
	}
	j, err := component(pair[1])
	if err != nil {
		return fmt.Errorf("coordinate j component: %w", err)
	}
	c.I, c.J = i, j
	return nil
}

func component(raw json.RawMessage) (int, error) {
	var n json.Number
	if len(raw) == 0 || raw[0] == '"' {
		return 0, fmt.Errorf("%s is not an integer", raw)
	}
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("%s is not an integer", raw)
	}
	v, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("%s is not an integer", raw)
	}
	return int(v), nil
}
