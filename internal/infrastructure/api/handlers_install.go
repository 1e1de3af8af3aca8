package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"joke-demo/internal/domain/entities"
)

type installOfferRequest struct {
	Platforms []string `json:"platforms"`
}

type installOutcomeRequest struct {
	Outcome entities.InstallOutcome `json:"outcome"`
}

// HandleInstallOffer records that the browser offered to install the app.
func (h *JokeHandler) HandleInstallOffer(w http.ResponseWriter, r *http.Request) {
	id := h.session(w, r)

	var req installOfferRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
			h.sendError(w, "invalid install offer", http.StatusBadRequest)
			return
		}
	}

	output, err := h.installUseCase.Offer(r.Context(), id, req.Platforms)
	if err != nil {
		log.Printf("[install] offer failed: %v", err)
		h.sendError(w, "failed to record install offer", http.StatusInternalServerError)
		return
	}
	h.sendState(w, output, http.StatusOK)
}

// HandleInstallOutcome consumes the offer with the user's answer.
func (h *JokeHandler) HandleInstallOutcome(w http.ResponseWriter, r *http.Request) {
	id := h.session(w, r)

	var req installOutcomeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		h.sendError(w, "invalid install outcome", http.StatusBadRequest)
		return
	}

	if err := h.installUseCase.Answer(r.Context(), id, req.Outcome); err != nil {
		if errors.Is(err, entities.ErrNoInstallPrompt) {
			h.sendError(w, "no install prompt available", http.StatusConflict)
			return
		}
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

const manifest = `{
  "name": "Image Joke Generator",
  "short_name": "Image Jokes",
  "start_url": "/",
  "display": "standalone",
  "background_color": "#111827",
  "theme_color": "#4f46e5",
  "icons": []
}`

func (h *JokeHandler) HandleManifest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/manifest+json")
	w.Write([]byte(manifest))
}
