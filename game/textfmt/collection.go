package textfmt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wricardo/hexoban/game/engine"
)

var propertyLine = regexp.MustCompile(`^([A-Za-z]+):\s*(.*?)\s*$`)

// ParseCollection reads a file of levels separated by blank lines. Lines
// starting with ';' are comments. "Title:", "Author:", "Source:" and "Id:"
// lines set metadata for the level in the same section, or for the previous
// level when a section has no board. A line holding only a quoted string
// names the level's id.
func ParseCollection(text []byte) ([]*engine.Definition, error) {
	var (
		defs    []*engine.Definition
		section []string
		start   int
	)

	flush := func() error {
		defer func() { section = section[:0] }()
		if len(section) == 0 {
			return nil
		}
		def, err := parseSection(section, defs)
		if err != nil {
			return fmt.Errorf("level starting at line %d: %w", start+1, err)
		}
		if def != nil {
			defs = append(defs, def)
		}
		return nil
	}

	for n, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if len(section) == 0 {
			start = n
		}
		section = append(section, line)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return defs, nil
}

// parseSection returns nil when the section only carries metadata, which is
// then applied to the last parsed level.
func parseSection(lines []string, prev []*engine.Definition) (*engine.Definition, error) {
	var board []string
	meta := map[string]string{}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, ";"):
			continue
		case len(trimmed) > 1 && trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"':
			meta["id"] = trimmed[1 : len(trimmed)-1]
		case propertyLine.MatchString(trimmed):
			m := propertyLine.FindStringSubmatch(trimmed)
			meta[strings.ToLower(m[1])] = m[2]
		default:
			board = append(board, line)
		}
	}

	if len(board) == 0 {
		if len(prev) > 0 {
			applyMeta(prev[len(prev)-1], meta)
		}
		return nil, nil
	}

	def, err := parseLines(board)
	if err != nil {
		return nil, err
	}
	applyMeta(def, meta)
	return def, nil
}

func applyMeta(def *engine.Definition, meta map[string]string) {
	for k, v := range meta {
		switch k {
		case "id":
			def.ID = v
		case "title", "name":
			def.Name = v
		case "author":
			def.Author = v
		case "source":
			def.Source = v
		}
	}
}
