package feed

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scoreboard/go/internal/models"
)

// maxEventBody bounds POSTed event payloads
const maxEventBody = 4096

// Handler serves the scoreboard's JSON endpoints and the live channel upgrade
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes builds the feed's router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/sports", h.listSports)
	r.Get("/sports/{sportId}/games", h.listGames)
	r.Get("/games/{gameId}", h.getGame)
	r.Post("/games/{gameId}/events", h.publishEvent)
	r.Get("/ws/games/{gameId}", h.connect)
	r.Get("/ws/stats", h.stats)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Debug().Err(err).Msg("failed to write health check response")
		}
	})

	return r
}

func (h *Handler) listSports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Store().Sports())
}

func (h *Handler) listGames(w http.ResponseWriter, r *http.Request) {
	sportID := models.ID(chi.URLParam(r, "sportId"))
	games, err := h.service.Store().Games(sportID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *Handler) getGame(w http.ResponseWriter, r *http.Request) {
	gameID := models.ID(chi.URLParam(r, "gameId"))
	game, err := h.service.Store().Game(gameID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (h *Handler) publishEvent(w http.ResponseWriter, r *http.Request) {
	gameID := models.ID(chi.URLParam(r, "gameId"))

	var event models.Event
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBody)).Decode(&event); err != nil {
		http.Error(w, "invalid event body", http.StatusBadRequest)
		return
	}

	if err := h.service.Publish(gameID, event, SourceHTTP); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) connect(w http.ResponseWriter, r *http.Request) {
	gameID := models.ID(chi.URLParam(r, "gameId"))
	if _, err := h.service.Store().Game(gameID); err != nil {
		writeError(w, err)
		return
	}

	// On failure the upgrader has already written the HTTP error.
	if err := h.service.Connections().UpgradeConnection(w, r, gameID); err != nil {
		log.Error().
			Err(err).
			Str("game_id", gameID.String()).
			Msg("failed to upgrade live connection")
	}
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.GetStats())
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSportNotFound), errors.Is(err, ErrGameNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidEvent):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error().Err(err).Msg("request failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
