package hex

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Direction is one of the six hex neighbor directions.
//
// The numeric order is canonical: Grid.Neighbors reports indices in this
// order, and opposite directions are always three apart.
type Direction int

const (
	Up Direction = iota
	Backward
	Left
	Down
	Forward
	Right
)

// NumDirections is the number of neighbors of every hex.
const NumDirections = 6

// Directions lists every direction in canonical order.
var Directions = [NumDirections]Direction{Up, Backward, Left, Down, Forward, Right}

var directionNames = [NumDirections]string{"up", "backward", "left", "down", "forward", "right"}

var directionLetters = [NumDirections]byte{'U', 'B', 'L', 'D', 'F', 'R'}

// Valid reports whether d is one of the six directions.
func (d Direction) Valid() bool {
	return d >= 0 && d < NumDirections
}

// Opposite returns the direction pointing back the way d came.
func (d Direction) Opposite() Direction {
	return (d + 3) % NumDirections
}

// Letter returns the one-letter code (U, B, L, D, F, R).
func (d Direction) Letter() byte {
	if !d.Valid() {
		return '?'
	}
	return directionLetters[d]
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection accepts a long name ("forward"), a one-letter code ("F"),
// or the aliases "back" and "fwd"; matching is case-insensitive.
func ParseDirection(s string) (Direction, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "back":
		return Backward, nil
	case "fwd":
		return Forward, nil
	}
	for _, d := range Directions {
		if key == directionNames[d] || (len(key) == 1 && key[0] == directionLetters[d]+('a'-'A')) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// MarshalJSON writes the long direction name.
func (d Direction) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid %s", d)
	}
	return json.Marshal(directionNames[d])
}

// UnmarshalJSON reads any form accepted by ParseDirection.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
