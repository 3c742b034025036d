package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"

	"github.com/screenglance/screenglance/internal/capture"
	"github.com/screenglance/screenglance/internal/device"
	"github.com/screenglance/screenglance/internal/license"
	"github.com/screenglance/screenglance/internal/overlay"
	"github.com/screenglance/screenglance/internal/pipeline"
	"github.com/screenglance/screenglance/internal/uistate"
)

func main() {
	// Hotkey registration and the UI tick both need the OS main thread
	mainthread.Init(run)
}

func run() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		backendURL = "http://127.0.0.1:8000"
	}

	machineID := device.ComputeID()
	log.Printf("device id: %s", machineID)

	// License gate: fails closed, fatal before any capture/UI setup
	gate := license.NewClient(backendURL)
	if !gate.Authorized(context.Background(), machineID) {
		log.Fatalf("Machine not authorized")
	}
	log.Println("✓ Device authorized")

	queue := uistate.NewQueue()
	slot := uistate.NewAnswerSlot()
	orch := pipeline.New(
		capture.NewScreenProvider(),
		pipeline.NewBackendClient(backendURL),
		slot,
		machineID,
		os.Getenv("SNAPSHOT_DIR"),
	)
	ctrl := overlay.NewController(overlay.NewConsoleSurface(os.Stdout), queue, slot)

	// ctrl+shift+z: capture and analyze
	captureHK := hotkey.New([]hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}, hotkey.KeyZ)
	if err := captureHK.Register(); err != nil {
		log.Fatalf("Failed to register capture hotkey: %v", err)
	}
	defer captureHK.Unregister()

	// m: toggle overlay visibility
	toggleHK := hotkey.New([]hotkey.Modifier{}, hotkey.KeyM)
	if err := toggleHK.Register(); err != nil {
		log.Fatalf("Failed to register toggle hotkey: %v", err)
	}
	defer toggleHK.Unregister()

	log.Println("✓ Hotkeys registered (ctrl+shift+z capture, m toggle)")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Hotkey callbacks run off the UI tick; the queue and the answer slot
	// are the only state they share with it.
	go func() {
		for range captureHK.Keydown() {
			go orch.Run(ctx)
		}
	}()
	go func() {
		for range toggleHK.Keydown() {
			queue.Push(uistate.EventToggle)
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	// This goroutine is the UI-rendering context
	ctrl.Run(ctx, overlay.DefaultTickPeriod)

	log.Println("✅ Overlay stopped")
}
