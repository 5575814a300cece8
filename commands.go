package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/hexoban/game/engine"
	"github.com/wricardo/hexoban/game/levels"
	"github.com/wricardo/hexoban/game/textfmt"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Convert text level collections into puzzle definitions in the library",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "collection",
				Usage: "Library sub-directory to store the levels in (default: the file name)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Parse and report without writing anything",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd)
			if cmd.NArg() == 0 {
				return fmt.Errorf("import: at least one file is required")
			}
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			return runImport(os.Stdout, cfg.Levels.Dir, cmd.Args().Slice(), cmd.String("collection"), cmd.Bool("dry-run"))
		},
	}
}

// runImport parses each file as a level collection and saves every level
// into the library at levelsDir.
func runImport(w io.Writer, levelsDir string, files []string, collection string, dryRun bool) error {
	var lib *levels.Manager
	if !dryRun {
		if err := os.MkdirAll(levelsDir, 0755); err != nil {
			return err
		}
		var err error
		if lib, err = levels.NewManager(levelsDir); err != nil {
			return err
		}
	}

	total := 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		defs, err := textfmt.ParseCollection(data)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		target := collection
		if target == "" {
			target = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		}

		for i, def := range defs {
			if def.ID == "" {
				def.ID = fmt.Sprintf("%s-%03d", target, i+1)
			}
			if !dryRun {
				if err := lib.Save(target, def); err != nil {
					return fmt.Errorf("%s: level %d: %w", file, i+1, err)
				}
			}
			stats := engine.Stats(def)
			fmt.Fprintf(w, "%s/%s: %d cells, %d crates\n", target, def.ID, stats.Cells, stats.Crates)
			for _, issue := range engine.Lint(def) {
				fmt.Fprintf(w, "  warning: %s\n", issue)
			}
		}
		total += len(defs)
	}

	verb := "Imported"
	if dryRun {
		verb = "Parsed"
	}
	fmt.Fprintf(w, "%s %d levels\n", verb, total)
	return nil
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print a puzzle as a text board, or a text level as JSON",
		ArgsUsage: "PUZZLE_ID|FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the definition record instead of the board",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd)
			if cmd.NArg() != 1 {
				return fmt.Errorf("show: exactly one puzzle id or file is required")
			}
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			return runShow(os.Stdout, cfg.Levels.Dir, cmd.Args().First(), cmd.Bool("json"))
		},
	}
}

// loadAny reads arg as a definition file, a text level file, or a library id.
func loadAny(levelsDir, arg string) (*engine.Definition, error) {
	if _, err := os.Stat(arg); err == nil {
		if strings.EqualFold(filepath.Ext(arg), ".json") {
			return engine.LoadDefinition(arg)
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
		return textfmt.Parse(data)
	}

	lib, err := levels.NewManager(levelsDir)
	if err != nil {
		return nil, err
	}
	return lib.LoadPuzzle(arg)
}

func runShow(w io.Writer, levelsDir, arg string, asJSON bool) error {
	def, err := loadAny(levelsDir, arg)
	if err != nil {
		if errors.Is(err, levels.ErrPuzzleNotFound) {
			return fmt.Errorf("no puzzle or file named %q", arg)
		}
		return err
	}

	if asJSON {
		data, err := engine.Encode(def)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", data)
		return nil
	}

	if def.Name != "" {
		fmt.Fprintf(w, "%s\n", def.Name)
	}
	w.Write(textfmt.Format(def))
	stats := engine.Stats(def)
	fmt.Fprintf(w, "\ncells=%d walls=%d goals=%d crates=%d on_goal=%d\n",
		stats.Cells, stats.Walls, stats.Goals, stats.Crates, stats.CratesOnGoal)
	for _, issue := range engine.Lint(def) {
		fmt.Fprintf(w, "warning: %s\n", issue)
	}
	return nil
}

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON Schema of puzzle definitions",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			data, err := engine.SchemaJSON()
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s\n", data)
			return nil
		},
	}
}
