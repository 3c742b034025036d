package api

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/screenglance/screenglance/internal/answer"
	"github.com/screenglance/screenglance/internal/license"
	"github.com/screenglance/screenglance/internal/ocr"
	"github.com/screenglance/screenglance/pkg/models"
)

// Fixed diagnostic answers. Business-logic failures are encoded in the
// answer payload with a success status; clients and tests rely on these
// exact strings.
const (
	AnswerUnauthorized = "Unauthorized device"
	AnswerNoText       = "No readable text found"
)

const maxUploadBytes = 32 << 20

// Handler holds dependencies for HTTP handlers
type Handler struct {
	store     *license.Store
	extractor ocr.Extractor
	synth     *answer.Service
	hub       *Hub
}

// NewHandler creates a new HTTP handler. hub may be nil to disable the
// event broadcast.
func NewHandler(store *license.Store, extractor ocr.Extractor, synth *answer.Service, hub *Hub) *Handler {
	return &Handler{
		store:     store,
		extractor: extractor,
		synth:     synth,
		hub:       hub,
	}
}

// Verify handles POST /verify. Pure membership test over the allow-set;
// always answers with a structurally valid verdict.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req.MachineID = ""
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.VerifyResponse{Allowed: h.store.Allowed(req.MachineID)})
}

// Analyze handles POST /analyze: license check, decode, binarize, OCR,
// then answer synthesis. Every business-logic failure is returned as an
// answer string with HTTP 200; only a malformed multipart envelope gets
// a client-error status.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	machineID := r.FormValue("machine_id")
	if !h.store.Allowed(machineID) {
		h.respond(w, machineID, AnswerUnauthorized)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		h.respond(w, machineID, fmt.Sprintf("Image decode error: %v", err))
		return
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		h.respond(w, machineID, fmt.Sprintf("Image decode error: %v", err))
		return
	}

	text, err := h.extractor.ExtractText(r.Context(), ocr.Binarize(img))
	if err != nil {
		h.respond(w, machineID, fmt.Sprintf("OCR error: %v", err))
		return
	}
	if strings.TrimSpace(text) == "" {
		h.respond(w, machineID, AnswerNoText)
		return
	}

	h.respond(w, machineID, h.synth.Synthesize(r.Context(), text))
}

// respond writes the answer payload and broadcasts it to event listeners
func (h *Handler) respond(w http.ResponseWriter, machineID, answerText string) {
	if h.hub != nil {
		h.hub.Broadcast(models.AnswerEvent{
			ID:        uuid.NewString(),
			MachineID: idPrefix(machineID),
			Answer:    answerText,
			At:        time.Now().UTC(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(models.AnalyzeResponse{Answer: answerText}); err != nil {
		log.Printf("write analyze response: %v", err)
	}
}

// idPrefix truncates a device identifier for event payloads so the full
// authorization token never leaves the verify/analyze path.
func idPrefix(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
