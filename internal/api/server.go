package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/screenglance/screenglance/internal/ratelimit"
)

// SetupRoutes configures all HTTP routes
func (h *Handler) SetupRoutes(limiter *ratelimit.Limiter) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/verify", h.Verify).Methods("POST")

	// Analyze is the expensive path (OCR + model round trip)
	analyze := http.Handler(http.HandlerFunc(h.Analyze))
	if limiter != nil {
		analyze = RateLimitMiddleware(limiter)(analyze)
	}
	r.Handle("/analyze", analyze).Methods("POST")

	if h.hub != nil {
		r.HandleFunc("/events", h.hub.HandleEvents).Methods("GET")
	}

	return r
}
