package overlay

import (
	"context"
	"time"

	"github.com/screenglance/screenglance/internal/uistate"
)

// DefaultTickPeriod bounds toggle-to-visible latency
const DefaultTickPeriod = 100 * time.Millisecond

// Placeholder is shown when no pipeline run has produced an answer yet
const Placeholder = "No answer yet"

// Controller owns overlay visibility and content. Toggle decisions
// originate on hotkey goroutines, but the surface is mutated only from
// the goroutine running Tick.
type Controller struct {
	surface Surface
	queue   *uistate.Queue
	slot    *uistate.AnswerSlot
	visible bool
}

// NewController creates an overlay controller; the overlay starts hidden
func NewController(surface Surface, queue *uistate.Queue, slot *uistate.AnswerSlot) *Controller {
	return &Controller{surface: surface, queue: queue, slot: slot}
}

// Tick drains pending UI events and applies each toggle in FIFO order.
// Must always be called from the same goroutine.
func (c *Controller) Tick() {
	for _, event := range c.queue.Drain() {
		if event != uistate.EventToggle {
			continue
		}
		if c.visible {
			c.surface.Hide()
		} else {
			text := c.slot.Get()
			if text == "" {
				text = Placeholder
			}
			c.surface.Show(text)
		}
		c.visible = !c.visible
	}
}

// Visible reports the current overlay state
func (c *Controller) Visible() bool {
	return c.visible
}

// Run ticks on a fixed period until the context is canceled. The calling
// goroutine becomes the UI-rendering context.
func (c *Controller) Run(ctx context.Context, period time.Duration) {
	if period <= 0 {
		period = DefaultTickPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}
