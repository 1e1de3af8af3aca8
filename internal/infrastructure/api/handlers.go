package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"joke-demo/internal/application/services"
	"joke-demo/internal/application/usecases"
	"joke-demo/internal/domain/entities"
	"joke-demo/internal/domain/repositories"
	"joke-demo/internal/domain/valueobjects"
)

const sessionCookie = "joke_session"

type JokeHandler struct {
	jokeUseCase    *usecases.JokeUseCase
	installUseCase *usecases.InstallUseCase
	uploadService  *services.UploadService
	model          string // shown on the page
}

type stateResponse struct {
	State       entities.RequestStateKind `json:"state"`
	Loading     bool                      `json:"loading"`
	Joke        string                    `json:"joke,omitempty"`
	Error       string                    `json:"error,omitempty"`
	HasImage    bool                      `json:"hasImage"`
	ImageName   string                    `json:"imageName,omitempty"`
	PreviewURL  string                    `json:"previewUrl,omitempty"`
	Installable bool                      `json:"installable"`
}

func NewJokeHandler(
	jokeUseCase *usecases.JokeUseCase,
	installUseCase *usecases.InstallUseCase,
	uploadService *services.UploadService,
	model string,
) *JokeHandler {
	return &JokeHandler{
		jokeUseCase:    jokeUseCase,
		installUseCase: installUseCase,
		uploadService:  uploadService,
		model:          model,
	}
}

func (h *JokeHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	id := h.session(w, r)

	input, err := h.uploadService.ParseFromRequest(w, r)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUploadTooLarge):
			h.sendError(w, fmt.Sprintf("The image is too large (up to %dMB).", h.uploadService.MaxBytes()>>20), http.StatusRequestEntityTooLarge)
		case errors.Is(err, services.ErrMissingImage):
			h.sendError(w, "Please choose an image to upload.", http.StatusBadRequest)
		default:
			log.Printf("[upload] failed to read upload: %v", err)
			h.sendError(w, "Failed to read the uploaded image.", http.StatusBadRequest)
		}
		return
	}

	output, err := h.jokeUseCase.Upload(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, valueobjects.ErrUnsupportedImage) || errors.Is(err, valueobjects.ErrEmptyImage) {
			h.sendError(w, entities.MsgUnsupportedImage, http.StatusUnsupportedMediaType)
			return
		}
		log.Printf("[upload] failed: %v", err)
		h.sendError(w, "Failed to store the uploaded image.", http.StatusInternalServerError)
		return
	}

	h.sendState(w, output, http.StatusOK)
}

func (h *JokeHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	id := h.session(w, r)

	output, err := h.jokeUseCase.Generate(r.Context(), id)
	switch {
	case err == nil:
		h.sendState(w, output, http.StatusOK)
	case errors.Is(err, entities.ErrNoImage):
		h.sendState(w, output, http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrRequestInFlight):
		h.sendState(w, output, http.StatusConflict)
	case errors.Is(err, entities.ErrGenerationFailed):
		h.sendState(w, output, http.StatusBadGateway)
	default:
		log.Printf("[generate] unexpected error: %v", err)
		if output != nil {
			h.sendState(w, output, http.StatusInternalServerError)
			return
		}
		h.sendError(w, entities.MsgGenerationFailed, http.StatusInternalServerError)
	}
}

func (h *JokeHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	id := h.session(w, r)

	output, err := h.jokeUseCase.State(r.Context(), id)
	if err != nil {
		h.sendError(w, "Failed to load state.", http.StatusInternalServerError)
		return
	}
	h.sendState(w, output, http.StatusOK)
}

func (h *JokeHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	ref := valueobjects.PreviewRef(mux.Vars(r)["id"])
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	rc, mimeType, err := h.jokeUseCase.OpenPreview(r.Context(), entities.SessionID(cookie.Value), ref)
	if err != nil {
		if !errors.Is(err, repositories.ErrPreviewNotFound) {
			log.Printf("[preview] failed to open %s: %v", ref, err)
		}
		http.NotFound(w, r)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	if _, err := io.Copy(w, rc); err != nil {
		log.Printf("[preview] failed to copy %s: %v", ref, err)
	}
}

// HandleClose ends the session; the page calls it when it goes away.
func (h *JokeHandler) HandleClose(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err == nil && cookie.Value != "" {
		if err := h.jokeUseCase.Close(r.Context(), entities.SessionID(cookie.Value)); err != nil {
			log.Printf("[session] failed to close: %v", err)
		}
	}

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	w.WriteHeader(http.StatusNoContent)
}

func (h *JokeHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// session returns the caller's session id, issuing a new cookie if needed.
func (h *JokeHandler) session(w http.ResponseWriter, r *http.Request) entities.SessionID {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return entities.SessionID(cookie.Value)
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return entities.SessionID(id)
}

func toStateResponse(output *usecases.StateOutput) stateResponse {
	return stateResponse{
		State:       output.State.Kind(),
		Loading:     output.State.Kind() == entities.StateLoading,
		Joke:        entities.JokeText(output.State),
		Error:       entities.ErrorMessage(output.State),
		HasImage:    output.HasImage,
		ImageName:   output.ImageName,
		PreviewURL:  output.Preview.URL(),
		Installable: output.Installable,
	}
}

func (h *JokeHandler) sendState(w http.ResponseWriter, output *usecases.StateOutput, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(toStateResponse(output)); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}

func (h *JokeHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
