package pipeline

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/screenglance/screenglance/internal/capture"
	"github.com/screenglance/screenglance/internal/uistate"
)

// Orchestrator sequences capture, upload, and answer delivery for one
// hotkey press. Runs entirely off the UI tick goroutine. Every failure
// terminates as a displayable answer string written to the shared slot;
// nothing in the pipeline panics or aborts silently.
type Orchestrator struct {
	provider    capture.Provider
	analyzer    Analyzer
	slot        *uistate.AnswerSlot
	machineID   string
	snapshotDir string
	group       singleflight.Group
}

// New creates a pipeline orchestrator. snapshotDir may be empty to skip
// persisting capture files.
func New(provider capture.Provider, analyzer Analyzer, slot *uistate.AnswerSlot, machineID, snapshotDir string) *Orchestrator {
	return &Orchestrator{
		provider:    provider,
		analyzer:    analyzer,
		slot:        slot,
		machineID:   machineID,
		snapshotDir: snapshotDir,
	}
}

// Run executes one capture-to-answer pipeline and returns the answer it
// wrote to the slot. Concurrent calls share a single in-flight run
// (drop-new policy): a second hotkey press while a round trip is pending
// joins the pending run instead of racing it.
func (o *Orchestrator) Run(ctx context.Context) string {
	v, _, _ := o.group.Do("run", func() (interface{}, error) {
		return o.run(ctx), nil
	})
	return v.(string)
}

func (o *Orchestrator) run(ctx context.Context) string {
	img, err := o.provider.Capture()
	if err != nil {
		return o.finish(fmt.Sprintf("Capture error: %v", err))
	}

	data, err := capture.EncodePNG(img)
	if err != nil {
		return o.finish(fmt.Sprintf("Capture error: %v", err))
	}

	if o.snapshotDir != "" {
		if _, err := capture.SaveSnapshot(o.snapshotDir, data); err != nil {
			log.Printf("snapshot not saved: %v", err)
		}
	}

	answer, err := o.analyzer.Analyze(ctx, data, o.machineID)
	if err != nil {
		return o.finish(fmt.Sprintf("Backend error: %v", err))
	}
	return o.finish(answer)
}

func (o *Orchestrator) finish(answer string) string {
	o.slot.Set(answer)
	return answer
}
