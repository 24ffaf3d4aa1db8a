package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"hexfief/internal/save"
)

// ListSaves exposes the saved games over plain HTTP so a menu screen can
// show them without opening a websocket.
func ListSaves(store save.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		infos, err := store.List(r.Context())
		if err != nil {
			log.Error("list saves", zap.Error(err))
			http.Error(w, "could not list saves", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Saves []save.Info `json:"saves"`
		}{Saves: infos})
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
