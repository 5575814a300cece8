// Command hexoban runs the Hexoban server and its puzzle tools.
//
// Commands:
//  1. "serve" (default) – HTTP server with the REST API, WebSocket updates and an /mcp endpoint
//  2. "mcp" – MCP stdio server; reuses a running API or starts an internal one
//  3. "import", "show", "schema" – puzzle library utilities
//
// Settings come from an optional YAML file (--config) and are overridden by
// flags and their environment variables.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/hexoban/internal/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Hexoban Server"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML settings file",
			Sources: cli.EnvVars("HEXOBAN_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "HTTP server host",
			Sources: cli.EnvVars("HOST"),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "HTTP server port",
			Sources: cli.EnvVars("PORT"),
		},
		&cli.StringFlag{
			Name:    "levels-dir",
			Value:   "levels",
			Usage:   "Directory containing puzzle definitions",
			Sources: cli.EnvVars("LEVELS_DIR"),
		},
		&cli.StringFlag{
			Name:    "sessions-dir",
			Value:   "sessions",
			Usage:   "Directory for persisted sessions (file backend)",
			Sources: cli.EnvVars("SESSIONS_DIR"),
		},
		&cli.StringFlag{
			Name:    "session-backend",
			Value:   config.BackendFile,
			Usage:   "Session storage: file, redis, postgres or memory",
			Sources: cli.EnvVars("SESSION_BACKEND"),
		},
		&cli.StringFlag{
			Name:    "redis-addr",
			Usage:   "Redis address for the redis session backend",
			Sources: cli.EnvVars("REDIS_ADDR"),
		},
		&cli.StringFlag{
			Name:    "database-url",
			Usage:   "PostgreSQL URL for the postgres session backend",
			Sources: cli.EnvVars("DATABASE_URL"),
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:     "hexoban",
		Usage:    "Hexagonal Sokoban server",
		Version:  Version,
		Flags:    append(globalFlags(), serveFlags()...),
		Action:   serveAction,
		Commands: []*cli.Command{serveCommand(), mcpCommand(), importCommand(), showCommand(), schemaCommand()},
	}
}

// loadSettings reads the settings file, if any, and applies the flags that
// were set explicitly.
func loadSettings(cmd *cli.Command) (*config.Config, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.IsSet("host") {
		cfg.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Server.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("levels-dir") {
		cfg.Levels.Dir = cmd.String("levels-dir")
	}
	if cmd.IsSet("sessions-dir") {
		cfg.Sessions.Dir = cmd.String("sessions-dir")
	}
	if cmd.IsSet("session-backend") {
		cfg.Sessions.Backend = cmd.String("session-backend")
	}
	if cmd.IsSet("redis-addr") {
		cfg.Redis.Address = cmd.String("redis-addr")
	}
	if cmd.IsSet("database-url") {
		cfg.Postgres.URL = cmd.String("database-url")
	}
	return cfg, cfg.Validate()
}

func setupLogging(cmd *cli.Command) {
	if cmd.Bool("debug") {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
