// Package server implements the reference 2048 board service: the
// authoritative game rules behind a small JSON-over-HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Config holds configuration for the board service.
type Config struct {
	// Address is the host:port to listen on (e.g., "localhost:8080").
	Address string

	// Size is the board edge length.
	Size int

	// Spawn4 is the probability that a spawned tile is a 4.
	Spawn4 float64

	// Seed seeds tile spawning. Zero picks a time-based seed.
	Seed int64

	// DBPath is the board database. storage.MemoryPath keeps it in-process.
	DBPath string

	// Legacy omits the score from responses.
	Legacy bool
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address: "localhost:8080",
		Size:    4,
		Spawn4:  0.10,
		DBPath:  storage.MemoryPath,
	}
}

// Server owns the game and serves it over HTTP.
type Server struct {
	config Config
	logger *log.Logger
	store  *storage.Store
	http   *http.Server

	mu    sync.Mutex
	game  *Game
	moves int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New opens the board store and restores the saved board, or deals a
// fresh one if nothing was saved.
func New(cfg Config, opts ...Option) (*Server, error) {
	if cfg.Size < 2 {
		return nil, fmt.Errorf("server: board size must be at least 2, got %d", cfg.Size)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Server{
		config: cfg,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	s.store = store
	s.game = NewGame(cfg.Size, cfg.Spawn4, seed)

	rec, found, err := store.LoadBoard()
	switch {
	case err != nil:
		s.logger.Warn("could not load saved board, starting fresh", "error", err)
	case found && len(rec.Rows) != cfg.Size:
		s.logger.Warn("saved board has a different size, starting fresh",
			"saved", len(rec.Rows), "size", cfg.Size)
	case found:
		s.game.Restore(rec.Rows, rec.Score, rec.Over)
		s.moves = rec.Moves
		s.logger.Info("restored board", "score", rec.Score, "moves", rec.Moves)
	}

	if err := s.saveLocked(); err != nil {
		store.Close()
		return nil, err
	}

	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

func (s *Server) snapshot() (Grid, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Rows(), s.game.Score()
}

func (s *Server) move(dir core.Direction) (Grid, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.Move(dir) {
		s.moves++
		if err := s.saveLocked(); err != nil {
			return nil, 0, err
		}
		if s.game.Over() {
			s.logger.Info("game over", "score", s.game.Score(), "moves", s.moves)
		}
	}
	return s.game.Rows(), s.game.Score(), nil
}

func (s *Server) reset() (Grid, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.game.Reset()
	s.moves = 0
	if err := s.saveLocked(); err != nil {
		return nil, 0, err
	}
	return s.game.Rows(), s.game.Score(), nil
}

func (s *Server) saveLocked() error {
	return s.store.SaveBoard(storage.BoardRecord{
		Rows:  s.game.Rows(),
		Score: s.game.Score(),
		Over:  s.game.Over(),
		Moves: s.moves,
	})
}

// Serve accepts connections on l until Shutdown.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("serving board", "address", l.Addr().String(),
		"size", s.config.Size, "legacy", s.config.Legacy)
	if err := s.http.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe starts the server and blocks until SIGINT or SIGTERM.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("server: cannot listen on %s: %w", s.config.Address, err)
	}

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	errc := make(chan error, 1)
	go func() { errc <- s.Serve(l) }()

	select {
	case err := <-errc:
		s.store.Close()
		return err
	case <-done:
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server and closes the store.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.http.Shutdown(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if cerr := s.store.Close(); err == nil {
		err = cerr
	}
	return err
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.config.Address
}
