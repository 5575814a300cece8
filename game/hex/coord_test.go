package hex

import (
	"encoding/json"
	"testing"
)

func TestCoord_Neighbors(t *testing.T) {
	c := C(4, 2)
	tests := []struct {
		name string
		got  Coord
		want Coord
	}{
		{"up", c.Up(), C(3, 2)},
		{"down", c.Down(), C(5, 2)},
		{"left", c.Left(), C(4, 1)},
		{"right", c.Right(), C(4, 3)},
		{"forward", c.Forward(), C(5, 3)},
		{"backward", c.Backward(), C(3, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestCoord_OffsetSymmetry(t *testing.T) {
	samples := []Coord{C(0, 0), C(-3, 7), C(12, -40), C(1<<30, -(1 << 30))}
	for _, c := range samples {
		if c.Up().Down() != c {
			t.Errorf("%v: up then down = %v", c, c.Up().Down())
		}
		if c.Left().Right() != c {
			t.Errorf("%v: left then right = %v", c, c.Left().Right())
		}
		if c.Forward().Backward() != c {
			t.Errorf("%v: forward then backward = %v", c, c.Forward().Backward())
		}
		for _, d := range Directions {
			if got := c.Step(d).Step(d.Opposite()); got != c {
				t.Errorf("%v: step %s then %s = %v", c, d, d.Opposite(), got)
			}
		}
	}
}

func TestCoord_StepMatchesNamedOffsets(t *testing.T) {
	c := C(2, -1)
	named := map[Direction]Coord{
		Up:       c.Up(),
		Backward: c.Backward(),
		Left:     c.Left(),
		Down:     c.Down(),
		Forward:  c.Forward(),
		Right:    c.Right(),
	}
	for d, want := range named {
		if got := c.Step(d); got != want {
			t.Errorf("Step(%s) = %v, want %v", d, got, want)
		}
	}
	if got := c.Step(Direction(9)); got != c {
		t.Errorf("Step(invalid) = %v, want unchanged %v", got, c)
	}
}

func TestCoord_JSON(t *testing.T) {
	data, err := json.Marshal(C(-2, 5))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "[-2,5]" {
		t.Errorf("Marshal = %s, want [-2,5]", data)
	}

	var c Coord
	if err := json.Unmarshal([]byte("[3, -4]"), &c); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if c != C(3, -4) {
		t.Errorf("Unmarshal = %v, want [3, -4]", c)
	}
}

func TestCoord_UnmarshalRejectsMalformed(t *testing.T) {
	inputs := []string{
		`[1]`,
		`[1, 2, 3]`,
		`[1.5, 2]`,
		`["1", 2]`,
		`{"i": 1, "j": 2}`,
		`[null, 2]`,
		`null`,
		`"1,2"`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			var c Coord
			if err := json.Unmarshal([]byte(in), &c); err == nil {
				t.Errorf("expected error for %s, got %v", in, c)
			}
		})
	}
}

func TestDirection_Parse(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"up", Up},
		{"U", Up},
		{"b", Backward},
		{"back", Backward},
		{"Backward", Backward},
		{"left", Left},
		{"d", Down},
		{"FORWARD", Forward},
		{"fwd", Forward},
		{" right ", Right},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if err != nil {
			t.Errorf("ParseDirection(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseDirection("north"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestDirection_Opposite(t *testing.T) {
	pairs := map[Direction]Direction{
		Up:       Down,
		Backward: Forward,
		Left:     Right,
		Down:     Up,
		Forward:  Backward,
		Right:    Left,
	}
	for d, want := range pairs {
		if got := d.Opposite(); got != want {
			t.Errorf("%s.Opposite() = %s, want %s", d, got, want)
		}
	}
}

func TestDirection_JSON(t *testing.T) {
	data, err := json.Marshal(Forward)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"forward"` {
		t.Errorf("Marshal = %s", data)
	}

	var d Direction
	if err := json.Unmarshal([]byte(`"L"`), &d); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if d != Left {
		t.Errorf("Unmarshal = %s, want left", d)
	}

	if _, err := json.Marshal(Direction(7)); err == nil {
		t.Error("expected error marshaling invalid direction")
	}
}
