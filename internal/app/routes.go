package app

import (
	"github.com/vancomm/minesweeper-core/internal/handlers"
)

func (a *App) loadRoutes() error {
	base := a.basePath

	game, err := handlers.NewGameHandler(
		a.log, a.store, a.cookies, a.ws, a.game, a.rnd,
	)
	if err != nil {
		return err
	}
	status := handlers.NewStatusHandler(a.log, a.store, a.cookies)

	a.router.HandleFunc("POST "+base+"/game", game.NewGame)
	a.router.HandleFunc("GET "+base+"/game/{id}", game.Fetch)
	a.router.HandleFunc("POST "+base+"/game/{id}/reveal", game.Reveal)
	a.router.HandleFunc("POST "+base+"/game/{id}/open", game.Open)
	a.router.HandleFunc("GET "+base+"/game/{id}/board", game.Board)
	a.router.HandleFunc("GET "+base+"/game/{id}/connect", game.ConnectWS)
	a.router.HandleFunc("GET "+base+"/status", status.Status)
	a.router.HandleFunc("POST "+base+"/leave", status.Leave)

	return nil
}
