package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-survivor/internal/config"
	"github.com/vovakirdan/tui-survivor/internal/core"
	"github.com/vovakirdan/tui-survivor/internal/games/survivor"
	"github.com/vovakirdan/tui-survivor/internal/games/survivor/sim"
	"github.com/vovakirdan/tui-survivor/internal/storage"
)

// Config controls the spectator server.
type Config struct {
	Address      string        // HTTP listen address
	FPS          int           // simulation and broadcast rate
	Mode         string        // survivor.GameID or survivor.BossRushID
	Seed         int64         // 0 picks a fresh seed per run
	RestartDelay time.Duration // pause on the outcome before the next run
	MaxRuns      int           // 0 runs forever
}

// DefaultConfig returns the settings used by the spectate command.
func DefaultConfig() Config {
	return Config{
		Address:      ":8080",
		FPS:          30,
		Mode:         survivor.GameID,
		RestartDelay: 5 * time.Second,
	}
}

// Server runs autopilot sessions back to back and streams them.
type Server struct {
	cfg    Config
	hub    *Hub
	store  *storage.Store
	logger *log.Logger
}

// NewServer creates a spectator server. store may be nil.
func NewServer(cfg Config, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if cfg.Mode == "" {
		cfg.Mode = survivor.GameID
	}
	return &Server{cfg: cfg, hub: NewHub(logger), store: store, logger: logger}
}

// Hub exposes the broadcast hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Routes returns the HTTP handler: /ws for spectators and /healthz.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", NewHandler(s.hub))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok %d spectators\n", s.hub.Count())
	})
	return mux
}

// ListenAndServe serves spectators and runs sessions until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("stream: listen %s: %w", s.cfg.Address, err)
	}
	srv := &http.Server{Handler: s.Routes(), ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()
	s.logger.Info("spectator server listening", "address", ln.Addr().String(), "mode", s.cfg.Mode)

	loopErr := make(chan error, 1)
	go func() { loopErr <- s.RunSessions(ctx) }()

	select {
	case err = <-errc:
		err = fmt.Errorf("stream: http server: %w", err)
	case err = <-loopErr:
	case <-ctx.Done():
		err = nil
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil && err == nil {
		err = fmt.Errorf("stream: shutdown: %w", shutdownErr)
	}
	return err
}

// RunSessions plays runs one after another on a real-time ticker.
func (s *Server) RunSessions(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.FPS))
	defer ticker.Stop()

	for n := 0; s.cfg.MaxRuns == 0 || n < s.cfg.MaxRuns; n++ {
		if err := s.runOnce(ctx, ticker.C); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.cfg.RestartDelay):
		}
	}
	return nil
}

func (s *Server) runOnce(ctx context.Context, ticks <-chan time.Time) error {
	tuning := survivor.LoadTuning()
	run := config.RunConfig{}
	if s.cfg.Mode == survivor.BossRushID {
		run = config.BossRushRun()
	}
	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session := survivor.NewSession(sim.NewEngine(tuning), run, seed, survivor.SystemClock{})
	pilot := survivor.NewAutopilot(tuning.World)
	runID := uuid.NewString()
	s.logger.Info("run started", "run", runID, "seed", seed)

	var seq uint64
	err := session.Run(ctx, ticks, pilot, func(st sim.State) {
		seq++
		if err := s.hub.Publish(NewFrame(seq, runID, s.cfg.Mode, st)); err != nil {
			s.logger.Warn("could not publish frame", "error", err)
		}
	})
	if err != nil {
		return err
	}

	out, ok := session.Outcome()
	if !ok {
		return nil
	}
	st := session.State()
	s.logger.Info("run finished",
		"run", runID,
		"outcome", out.Status,
		"time", sim.Clock(out.GameTime),
		"level", st.Player.Level,
		"kills", st.Kills,
	)
	if s.store != nil {
		sum := core.RunSummary{
			Outcome:  out.Status.String(),
			GameTime: out.GameTime,
			Level:    st.Player.Level,
			Kills:    st.Kills,
			Seed:     seed,
		}
		if _, err := s.store.SaveRun(s.cfg.Mode, "autopilot", sum); err != nil {
			s.logger.Warn("could not save run", "error", err)
		}
	}
	return nil
}
