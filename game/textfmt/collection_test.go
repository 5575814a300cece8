package textfmt

import (
	"errors"
	"testing"
)

const collection = `; Sample hexoban collection

"first"
# @ $ . #
Title: First Steps
Author: Someone

 # # #
# @ $ . #
 # - #
Title: Second

Source: http://example.com/levels
`

func TestParseCollection(t *testing.T) {
	defs, err := ParseCollection([]byte(collection))
	if err != nil {
		t.Fatalf("ParseCollection failed: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("got %d levels, want 2", len(defs))
	}

	if defs[0].ID != "first" || defs[0].Name != "First Steps" || defs[0].Author != "Someone" {
		t.Errorf("first level metadata = %q %q %q", defs[0].ID, defs[0].Name, defs[0].Author)
	}
	if len(defs[0].Terrain) != 3 {
		t.Errorf("first level terrain = %v", defs[0].Terrain)
	}

	if defs[1].Name != "Second" {
		t.Errorf("second level name = %q", defs[1].Name)
	}
	if defs[1].Source != "http://example.com/levels" {
		t.Errorf("trailing metadata section not applied, source = %q", defs[1].Source)
	}
	if len(defs[1].Terrain) != 4 {
		t.Errorf("second level terrain = %v", defs[1].Terrain)
	}
}

func TestParseCollection_ReportsLine(t *testing.T) {
	_, err := ParseCollection([]byte("# @ $ . #\n\n# - $ #\n"))
	if !errors.Is(err, ErrNoWorker) {
		t.Fatalf("error = %v, want ErrNoWorker", err)
	}
	if got := err.Error(); got[:len("level starting at line 3")] != "level starting at line 3" {
		t.Errorf("error = %q", got)
	}
}
