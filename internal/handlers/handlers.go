package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper-core/internal/mines"
	"github.com/vancomm/minesweeper-core/internal/store"
)

var (
	decoder = schema.NewDecoder()

	ErrForbidden = errors.New("token missing or issued for another session")
	ErrNotOver   = errors.New("session is still in progress")
)

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Add("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, log logrus.FieldLogger, v any) {
	_, err := SendJSON(w, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).WithField("response", v).Error("unable to send response")
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, mines.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, mines.ErrGameOver), errors.Is(err, ErrNotOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// sendError maps err to a status code and writes it as {"error": ...}.
// Unexpected errors are logged and not shown to the client.
func sendError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
		err = errors.New("internal error")
	}
	w.WriteHeader(status)
	sendJSONOrLog(w, log, wrapError(err))
}
