package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/database"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/repository"
	"github.com/vancomm/minesweeper/internal/session"
)

type App struct {
	logger     *slog.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool
	games      *session.Manager
	gameCfg    *config.Game
	cookies    *config.Cookies
	ws         *config.WebSocket
	migrations fs.FS
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	router := http.NewServeMux()

	app := &App{
		logger:     logger,
		router:     router,
		migrations: migrations,
	}

	return app
}

func (a *App) configure() error {
	gameCfg, err := config.NewGame()
	if err != nil {
		return fmt.Errorf("failed to read game config: %w", err)
	}
	a.gameCfg = gameCfg

	jwt, err := config.NewJWT()
	if err != nil {
		return fmt.Errorf("failed to read jwt config: %w", err)
	}

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		return fmt.Errorf("failed to read cookies config: %w", err)
	}
	a.cookies = cookies

	ws, err := config.NewWebSocket()
	if err != nil {
		return fmt.Errorf("failed to read ws config: %w", err)
	}
	a.ws = ws

	return nil
}

// Start connects to the database, serves the API and sweeps idle games until
// ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if err := a.configure(); err != nil {
		return err
	}

	db, version, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	defer db.Close()
	a.logger.Info("database ready", slog.Uint64("schemaVersion", uint64(version)))

	a.db = db
	a.games = session.NewManager(a.logger, createRand(), repository.New(db))

	a.loadRoutes()

	var handler http.Handler = middleware.Wrap(
		a.router,
		middleware.Logging(a.logger),
		middleware.Cors(),
		middleware.Auth(a.logger, a.cookies),
	)
	if base := config.BasePath(); base != "" {
		handler = http.StripPrefix(base, handler)
	}

	port := config.Port()
	server := &http.Server{
		Addr:        port,
		ReadTimeout: time.Second * 15,
		IdleTimeout: time.Second * 60,
		Handler:     handler,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info(fmt.Sprintf("minesweeper server listening at http://localhost%s", port))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		return server.Shutdown(sctx)
	})
	g.Go(func() error {
		return a.games.RunSweeper(gctx, a.gameCfg.SweepInterval, a.gameCfg.IdleTTL)
	})

	return g.Wait()
}
