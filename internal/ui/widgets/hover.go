package widgets

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"

	"github.com/piwi3910/TipPlace/internal/tooltip"
)

// Tracker receives pointer transitions between annotated targets.
// *tooltip.Controller satisfies it.
type Tracker interface {
	Enter(t tooltip.Target)
	Leave(next tooltip.Target)
	Move()
	Current() tooltip.Target
}

const hoverLeaveDelay = 150 * time.Millisecond

// Hover turns Fyne hover callbacks into tracker calls. Fyne reports MouseOut
// without saying where the pointer went, so a leave is held back briefly: if
// another annotated target reports MouseIn first, the tracker learns which
// element the pointer moved onto.
type Hover struct {
	tracker Tracker
	delay   time.Duration

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

// NewHover creates a Hover feeding t.
func NewHover(t Tracker) *Hover {
	return &Hover{tracker: t, delay: hoverLeaveDelay}
}

func (h *Hover) in(t tooltip.Target) {
	h.cancelLeave()

	if cur := h.tracker.Current(); cur != nil && cur.ID() != t.ID() {
		h.tracker.Leave(t)
		// A nested element with nothing to say keeps its parent's tooltip.
		if cur.Contains(t) && t.TooltipText() == "" {
			return
		}
	}
	h.tracker.Enter(t)
}

func (h *Hover) moved() {
	h.tracker.Move()
}

func (h *Hover) out() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.gen++
	gen := h.gen
	if h.timer != nil {
		h.timer.Stop()
	}
	h.timer = time.AfterFunc(h.delay, func() {
		fyne.Do(func() { h.flush(gen) })
	})
}

// flush completes a held-back leave unless a newer transition superseded it.
func (h *Hover) flush(gen uint64) {
	h.mu.Lock()
	if gen != h.gen {
		h.mu.Unlock()
		return
	}
	h.gen++
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.mu.Unlock()

	h.tracker.Leave(nil)
}

func (h *Hover) cancelLeave() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.gen++
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}
