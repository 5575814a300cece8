// Package textfmt reads and writes the text layout commonly used to share
// hexagonal Sokoban levels.
//
// Each cell is one glyph. Cells of the same board row sit two characters
// apart on a line; neighboring rows are staggered one character across
// consecutive lines:
//
//	 # # #
//	# - . #
//	 # $ @ #
//	  # # #
//
// From a cell, Left and Right are on the same line, Up is one line up and
// one character right, Backward is one line up and one character left, and
// Down and Forward mirror them below.
//
// Glyphs:
//
//	#       wall
//	- _     floor (a space is floor too when it lies between walls)
//	.       goal
//	$       crate
//	*       crate on a goal
//	@       worker
//	+       worker on a goal
package textfmt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/wricardo/hexoban/game/engine"
	"github.com/wricardo/hexoban/game/hex"
)

var (
	ErrUnknownGlyph = errors.New("unknown glyph")
	ErrMisaligned   = errors.New("glyph is not aligned with the board")
	ErrNoWorker     = errors.New("level has no worker")
	ErrManyWorkers  = errors.New("level has more than one worker")
	ErrEmpty        = errors.New("level is empty")
)

type point struct{ x, y int }

// Parse reads a single level and returns a definition whose coordinates are
// centered on the worker.
func Parse(text []byte) (*engine.Definition, error) {
	return parseLines(splitLines(text))
}

func splitLines(text []byte) []string {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(text))
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func parseLines(lines []string) (*engine.Definition, error) {
	parity := -1
	cells := make(map[point]byte)
	var worker *point

	for y, line := range lines {
		first := strings.IndexByte(line, '#')
		last := strings.LastIndexByte(line, '#')
		for x := 0; x < len(line); x++ {
			ch := line[x]
			if ch == ' ' {
				between := first >= 0 && x > first && x < last
				if !between || parity < 0 || (x+y)%2 != parity {
					continue
				}
			}
			if ch == '\t' {
				return nil, fmt.Errorf("line %d, col %d: %w: tab", y+1, x+1, ErrUnknownGlyph)
			}
			if !strings.ContainsRune("#-_ .$*@+", rune(ch)) {
				return nil, fmt.Errorf("line %d, col %d: %w %q", y+1, x+1, ErrUnknownGlyph, ch)
			}
			if parity < 0 {
				parity = (x + y) % 2
			} else if (x+y)%2 != parity {
				return nil, fmt.Errorf("line %d, col %d: %w", y+1, x+1, ErrMisaligned)
			}
			p := point{x, y}
			cells[p] = ch
			if ch == '@' || ch == '+' {
				if worker != nil {
					return nil, fmt.Errorf("line %d, col %d: %w", y+1, x+1, ErrManyWorkers)
				}
				worker = &p
			}
		}
	}

	if len(cells) == 0 {
		return nil, ErrEmpty
	}
	if worker == nil {
		return nil, ErrNoWorker
	}

	// Scan order keeps terrain stable for identical text.
	points := make([]point, 0, len(cells))
	for p := range cells {
		points = append(points, p)
	}
	sort.Slice(points, func(a, b int) bool {
		if points[a].y != points[b].y {
			return points[a].y < points[b].y
		}
		return points[a].x < points[b].x
	})

	def := &engine.Definition{}
	for _, p := range points {
		ch := cells[p]
		if ch == '#' {
			continue
		}
		c := toHex(p, *worker)
		def.Terrain = append(def.Terrain, c)
		switch ch {
		case '.', '+':
			def.Init.Goals = append(def.Init.Goals, c)
		case '$':
			def.Init.Crates = append(def.Init.Crates, c)
		case '*':
			def.Init.Goals = append(def.Init.Goals, c)
			def.Init.Crates = append(def.Init.Crates, c)
		}
	}
	origin := hex.C(0, 0)
	def.Init.Worker = &origin

	if err := engine.ValidateDefinition(def); err != nil {
		return nil, err
	}
	return def, nil
}

// toHex converts a text position to a coordinate relative to origin. Both
// points share the board's parity, so the column sum is even.
func toHex(p, origin point) hex.Coord {
	i := p.y - origin.y
	j := (p.x - origin.x + i) / 2
	return hex.C(i, j)
}

func toText(c hex.Coord) point {
	return point{x: 2*c.J - c.I, y: c.I}
}

// Format renders def as text. Walls are drawn around the terrain and floor
// is drawn as '-'.
func Format(def *engine.Definition) []byte {
	glyphs := make(map[point]byte)
	for _, c := range engine.Walls(def) {
		glyphs[toText(c)] = '#'
	}
	for _, c := range def.Terrain {
		glyphs[toText(c)] = '-'
	}
	for _, c := range def.Init.Goals {
		glyphs[toText(c)] = '.'
	}
	for _, c := range def.Init.Crates {
		p := toText(c)
		if glyphs[p] == '.' {
			glyphs[p] = '*'
		} else {
			glyphs[p] = '$'
		}
	}
	w := toText(def.Init.WorkerStart())
	switch glyphs[w] {
	case '-':
		glyphs[w] = '@'
	case '.':
		glyphs[w] = '+'
	}

	if len(glyphs) == 0 {
		return nil
	}

	minX, minY, maxX, maxY := bounds(glyphs)
	rows := make([][]byte, maxY-minY+1)
	for y := range rows {
		rows[y] = bytes.Repeat([]byte{' '}, maxX-minX+1)
	}
	var parity int
	for p, ch := range glyphs {
		rows[p.y-minY][p.x-minX] = ch
		parity = (p.x - minX + p.y - minY) % 2
	}

	var buf bytes.Buffer
	for y, row := range rows {
		// A blank cell between walls would read back as floor.
		first := bytes.IndexByte(row, '#')
		last := bytes.LastIndexByte(row, '#')
		for x := first + 1; first >= 0 && x < last; x++ {
			if row[x] == ' ' && (x+y)%2 == parity {
				row[x] = '#'
			}
		}

		buf.Write(bytes.TrimRight(row, " "))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func bounds(glyphs map[point]byte) (minX, minY, maxX, maxY int) {
	first := true
	for p := range glyphs {
		if first {
			minX, maxX, minY, maxY = p.x, p.x, p.y, p.y
			first = false
			continue
		}
		minX = min(minX, p.x)
		maxX = max(maxX, p.x)
		minY = min(minY, p.y)
		maxY = max(maxY, p.y)
	}
	return minX, minY, maxX, maxY
}

// FormatState renders the current placement of a running puzzle.
func FormatState(s *engine.State) []byte {
	return Format(engine.DefinitionFromState(s, nil))
}
