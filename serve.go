package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/hexoban/api"
	"github.com/wricardo/hexoban/game/levels"
	"github.com/wricardo/hexoban/game/service"
	"github.com/wricardo/hexoban/game/session"
	"github.com/wricardo/hexoban/internal/config"
	"github.com/wricardo/hexoban/transport/mcp"
	"github.com/wricardo/hexoban/transport/websocket"
)

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "ngrok",
			Usage:   "Enable ngrok tunnel",
			Sources: cli.EnvVars("NGROK_ENABLED"),
		},
		&cli.StringFlag{
			Name:    "ngrok-auth",
			Usage:   "Ngrok auth token",
			Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
		},
		&cli.StringFlag{
			Name:    "ngrok-domain",
			Usage:   "Custom ngrok domain (optional)",
			Sources: cli.EnvVars("NGROK_DOMAIN"),
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP server with REST API, WebSocket, and MCP endpoint",
		Action: serveAction,
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("ngrok") {
		cfg.Ngrok.Enabled = cmd.Bool("ngrok")
	}
	if cmd.IsSet("ngrok-domain") {
		cfg.Ngrok.Domain = cmd.String("ngrok-domain")
	}

	log.Printf("Starting %s v%s", AppName, Version)

	svc, err := initializeServices(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer svc.Close()

	return runHTTPServer(ctx, cfg, svc, cmd.String("ngrok-auth"))
}

// services bundles what the transports need.
type services struct {
	game        service.GameService
	sessions    *session.Manager
	puzzles     *levels.Manager
	persistence session.SessionPersistence

	cancel context.CancelFunc
	redis  *redis.Client
	pool   *pgxpool.Pool
}

// Close stops background routines and flushes sessions.
func (s *services) Close() {
	s.cancel()
	if s.persistence != nil {
		if err := s.sessions.SaveAllSessions(); err != nil {
			log.Printf("Warning: Failed to save sessions: %v", err)
		}
	}
	if s.redis != nil {
		s.redis.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

// initializeServices wires the puzzle library, session storage and the game
// service, and starts the background cleanup routines.
func initializeServices(ctx context.Context, cfg *config.Config) (*services, error) {
	puzzles, err := levels.NewManager(cfg.Levels.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create puzzle library: %w", err)
	}
	if cfg.Levels.Default != "" {
		if err := puzzles.SetDefault(cfg.Levels.Default); err != nil {
			return nil, fmt.Errorf("default puzzle: %w", err)
		}
	}
	log.Printf("Loaded %d puzzles from %s", puzzles.Count(), cfg.Levels.Dir)

	svc := &services{puzzles: puzzles}

	switch cfg.Sessions.Backend {
	case config.BackendFile:
		svc.persistence, err = session.NewFilePersistence(cfg.Sessions.Dir, puzzles)
		if err != nil {
			return nil, fmt.Errorf("failed to create session persistence: %w", err)
		}
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rp := session.NewRedisPersistence(client, cfg.Redis.Prefix, cfg.Redis.TTL, puzzles)
		if err := rp.Ping(ctx); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis %s: %w", cfg.Redis.Address, err)
		}
		svc.persistence, svc.redis = rp, client
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		pp, err := session.NewPostgresPersistence(pool, cfg.Postgres.Table, puzzles)
		if err == nil {
			err = pp.EnsureSchema(ctx)
		}
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres: %w", err)
		}
		svc.persistence, svc.pool = pp, pool
	}

	if svc.persistence != nil {
		svc.sessions = session.NewManagerWithPersistence(svc.persistence)
		if err := svc.sessions.LoadPersistedSessions(); err != nil {
			log.Printf("Warning: Failed to load persisted sessions: %v", err)
		}
	} else {
		svc.sessions = session.NewManager()
	}
	log.Printf("Session backend: %s (%d sessions loaded)", cfg.Sessions.Backend, svc.sessions.Count())

	svc.game = service.NewGameService(svc.sessions, puzzles)

	bg, cancel := context.WithCancel(context.Background())
	svc.cancel = cancel
	go svc.sessions.RunCleanup(bg, cfg.Sessions.CleanupInterval, cfg.Sessions.MaxAge)
	if cfg.Sessions.Backend == config.BackendFile {
		go persistenceSyncRoutine(bg, svc.sessions, svc.persistence, 5*time.Second)
	}

	return svc, nil
}

// persistenceSyncRoutine drops sessions from memory once their persisted copy
// has been deleted out from under the server.
func persistenceSyncRoutine(ctx context.Context, manager *session.Manager, persistence session.SessionPersistence, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := pruneOrphanedSessions(manager, persistence); n > 0 {
				log.Printf("Persistence sync: pruned %d orphaned sessions from memory", n)
			}
		}
	}
}

func pruneOrphanedSessions(manager *session.Manager, persistence session.SessionPersistence) int {
	pruned := 0
	for _, s := range manager.List() {
		if persistence.Exists(s.ID) {
			continue
		}
		if err := manager.DeleteFromMemory(s.ID); err == nil {
			pruned++
			log.Printf("Pruned session %s from memory (persisted copy deleted)", s.ID)
		}
	}
	return pruned
}

// newRouter mounts the API at the root and the MCP JSON-RPC endpoint at /mcp.
func newRouter(apiServer http.Handler, mcpClient *mcp.Client) *http.ServeMux {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})
	return mainRouter
}

// runHTTPServer serves until SIGINT/SIGTERM. When ngrok is enabled it also
// serves through a public tunnel.
func runHTTPServer(ctx context.Context, cfg *config.Config, svc *services, ngrokAuth string) error {
	hub := websocket.NewHub()
	go hub.Run()

	apiServer := api.NewServer(svc.game, hub)

	addr := cfg.Server.Addr()
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))
	mainRouter := newRouter(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	if cfg.Ngrok.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, cfg.Ngrok.Domain, ngrokAuth, mainRouter)
		}()
	}

	var err error
	select {
	case sig := <-stop:
		log.Printf("Received signal: %v. Shutting down...", sig)
	case err = <-serveErr:
		log.Printf("HTTP server failed: %v", err)
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
	return err
}

func runNgrokTunnel(ctx context.Context, domain, authToken string, handler http.Handler) {
	if authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}
