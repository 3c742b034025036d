package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/screenglance/screenglance/internal/answer"
	"github.com/screenglance/screenglance/internal/api"
	"github.com/screenglance/screenglance/internal/license"
	"github.com/screenglance/screenglance/internal/ocr"
	"github.com/screenglance/screenglance/internal/ratelimit"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	log.Println("Starting ScreenGlance server...")

	store, err := loadAllowSet()
	if err != nil {
		log.Fatalf("Failed to load allow-set: %v", err)
	}
	log.Printf("✓ License store loaded (%d devices)", store.Len())

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatalf("OPENAI_API_KEY is required")
	}
	completer := answer.NewOpenAICompleter(apiKey, os.Getenv("ANSWER_MODEL"))
	synth := answer.NewService(completer)
	log.Println("✓ Answer synthesis initialized")

	extractor := ocr.NewTesseractEngine()
	log.Println("✓ Tesseract extractor initialized")

	hub := api.NewHub()
	log.Println("✓ Event hub initialized")

	// Generous per-client budget; analyze stays cheap to poll but hard to flood
	limiter := ratelimit.NewLimiter(30, 10)
	log.Println("✓ Rate limiter initialized (30 req/min per client)")

	handler := api.NewHandler(store, extractor, synth, hub)
	router := handler.SetupRoutes(limiter)
	log.Println("✓ HTTP routes configured")

	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8000"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// Analyze holds the connection for OCR plus the model round trip
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server listening on %s", addr)
		log.Println("📍 POST /verify   license check")
		log.Println("📍 POST /analyze  screenshot to answer")
		log.Println("📍 GET  /events   answer event stream")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("\n⏳ Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}

// loadAllowSet reads authorized device ids from ALLOWED_DEVICES_FILE
// (one per line) or the ALLOWED_DEVICES comma list. The set is static;
// edits require a restart.
func loadAllowSet() (*license.Store, error) {
	if path := os.Getenv("ALLOWED_DEVICES_FILE"); path != "" {
		ids, err := license.LoadFile(path)
		if err != nil {
			return nil, err
		}
		return license.NewStore(ids), nil
	}
	return license.NewStore(license.ParseList(os.Getenv("ALLOWED_DEVICES"))), nil
}
