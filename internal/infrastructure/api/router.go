package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(handler *JokeHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", handler.HandleIndex).Methods(http.MethodGet)
	r.HandleFunc("/healthz", handler.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/manifest.webmanifest", handler.HandleManifest).Methods(http.MethodGet)
	r.HandleFunc("/preview/{id}", handler.HandlePreview).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", handler.HandleState).Methods(http.MethodGet)
	api.HandleFunc("/upload", handler.HandleUpload).Methods(http.MethodPost)
	api.HandleFunc("/joke", handler.HandleGenerate).Methods(http.MethodPost)
	api.HandleFunc("/session", handler.HandleClose).Methods(http.MethodDelete)
	api.HandleFunc("/install/offer", handler.HandleInstallOffer).Methods(http.MethodPost)
	api.HandleFunc("/install/outcome", handler.HandleInstallOutcome).Methods(http.MethodPost)

	return r
}
