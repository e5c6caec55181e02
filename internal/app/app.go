package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-core/internal/config"
	"github.com/vancomm/minesweeper-core/internal/middleware"
	"github.com/vancomm/minesweeper-core/internal/mines"
	"github.com/vancomm/minesweeper-core/internal/store"
)

const sweepInterval = time.Minute

type App struct {
	log      logrus.FieldLogger
	router   *http.ServeMux
	basePath string
	addr     string
	game     *config.Game
	cookies  *config.Cookies
	ws       *config.WebSocket
	store    *store.Store
	rnd      *rand.Rand
}

func New(log logrus.FieldLogger) *App {
	app := &App{
		log:      log,
		router:   http.NewServeMux(),
		basePath: config.BasePath(),
		addr:     config.Port(),
		rnd:      mines.NewRand(),
	}

	return app
}

// setup reads configuration and builds everything the routes need.
func (a *App) setup() error {
	game, err := config.NewGame()
	if err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}
	a.game = game
	a.log.WithFields(game.Fields()).Debug("game config")

	jwt, err := config.NewJWT(game.SessionTTL)
	if err != nil {
		return err
	}

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		return err
	}
	a.cookies = cookies

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	a.store = store.New(a.log)

	return a.loadRoutes()
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.log, a.cookies),
		middleware.Cors(),
		middleware.Logging(a.log),
	)
}

func (a *App) Start(ctx context.Context) error {
	if err := a.setup(); err != nil {
		return err
	}

	server := &http.Server{
		Addr:    a.addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.Infof("ready to serve @ %s%s", a.addr, a.basePath)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		return a.store.Run(gCtx, sweepInterval, a.game.SessionTTL)
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
