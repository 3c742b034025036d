package overlay

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/screenglance/screenglance/internal/uistate"
)

type fakeSurface struct {
	shown []string
	hides int
}

func (f *fakeSurface) Show(text string) { f.shown = append(f.shown, text) }
func (f *fakeSurface) Hide()            { f.hides++ }

func newTestController() (*Controller, *fakeSurface, *uistate.Queue, *uistate.AnswerSlot) {
	surface := &fakeSurface{}
	queue := uistate.NewQueue()
	slot := uistate.NewAnswerSlot()
	return NewController(surface, queue, slot), surface, queue, slot
}

func TestToggleParity(t *testing.T) {
	cases := []struct {
		toggles     int
		wantVisible bool
	}{
		{0, false},
		{1, true},
		{2, false},
		{3, true},
		{8, false},
	}
	for _, tc := range cases {
		ctrl, _, queue, _ := newTestController()
		for i := 0; i < tc.toggles; i++ {
			queue.Push(uistate.EventToggle)
		}
		ctrl.Tick()
		if ctrl.Visible() != tc.wantVisible {
			t.Errorf("%d toggles: visible = %v, want %v", tc.toggles, ctrl.Visible(), tc.wantVisible)
		}
	}
}

func TestEachToggleFlipsExactlyOnce(t *testing.T) {
	ctrl, surface, queue, _ := newTestController()
	for i := 0; i < 4; i++ {
		queue.Push(uistate.EventToggle)
	}
	ctrl.Tick()

	if len(surface.shown) != 2 || surface.hides != 2 {
		t.Fatalf("expected 2 shows and 2 hides, got %d and %d", len(surface.shown), surface.hides)
	}
}

func TestShowsPlaceholderWhenNoAnswer(t *testing.T) {
	ctrl, surface, queue, _ := newTestController()
	queue.Push(uistate.EventToggle)
	ctrl.Tick()

	if len(surface.shown) != 1 || surface.shown[0] != Placeholder {
		t.Fatalf("expected placeholder, got %v", surface.shown)
	}
}

func TestShowsLastAnswer(t *testing.T) {
	ctrl, surface, queue, slot := newTestController()
	slot.Set("Paris")
	queue.Push(uistate.EventToggle)
	ctrl.Tick()

	if len(surface.shown) != 1 || surface.shown[0] != "Paris" {
		t.Fatalf("expected last answer, got %v", surface.shown)
	}
}

func TestAnswerReadAtDisplayTime(t *testing.T) {
	ctrl, surface, queue, slot := newTestController()

	slot.Set("stale")
	queue.Push(uistate.EventToggle) // show
	queue.Push(uistate.EventToggle) // hide
	ctrl.Tick()

	slot.Set("fresh")
	queue.Push(uistate.EventToggle)
	ctrl.Tick()

	if got := surface.shown[len(surface.shown)-1]; got != "fresh" {
		t.Fatalf("expected freshest answer at display time, got %q", got)
	}
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	long := strings.Repeat("日本語テキスト", 20)

	got := truncate(long, 46)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated text is not valid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}

	short := "2+2=4"
	if truncate(short, 46) != short {
		t.Fatal("short text must pass through unchanged")
	}
}

func TestConsoleSurfaceRendersMultibyteText(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSurface(&buf)

	s.Show(strings.Repeat("答えは四です。", 30))
	if !utf8.Valid(buf.Bytes()) {
		t.Fatalf("rendered panel contains invalid UTF-8: %q", buf.String())
	}
}

func TestConsoleSurfaceRendersText(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSurface(&buf)

	s.Show("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("rendered panel missing text: %q", buf.String())
	}

	buf.Reset()
	s.Hide()
	if !strings.Contains(buf.String(), "hidden") {
		t.Fatalf("hide marker missing: %q", buf.String())
	}
}
