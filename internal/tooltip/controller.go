package tooltip

import (
	"log/slog"
	"sync"

	"github.com/piwi3910/TipPlace/internal/engine"
	"github.com/piwi3910/TipPlace/internal/model"
)

// Controller owns the shared tooltip. It remembers which target the tooltip
// is currently shown for and the last layout it produced; a new target always
// supersedes the previous one.
type Controller struct {
	mu sync.Mutex

	eng      *engine.Engine
	viewport func() model.Size
	log      *slog.Logger
	debug    bool

	primary  strategy
	fallback strategy // nil when primary already uses explicit coordinates
	active   strategy // strategy that presented the current tooltip

	current Target
	last    model.Layout
	hasLast bool
}

// Option configures a Controller.
type Option func(*controllerOptions)

type controllerOptions struct {
	anchored AnchoredSurface
	logger   *slog.Logger
}

// WithAnchored offers a platform-anchored surface. It is only used when the
// configuration asks for native positioning and the surface reports support.
func WithAnchored(s AnchoredSurface) Option {
	return func(o *controllerOptions) {
		o.anchored = s
	}
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(o *controllerOptions) {
		o.logger = l
	}
}

// New builds a controller. The rendering strategy is chosen here, once:
// anchored when requested and supported, explicit coordinates otherwise.
func New(eng *engine.Engine, viewport func() model.Size, surface CoordinateSurface, opts ...Option) *Controller {
	o := controllerOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	coordinate := &coordinateStrategy{eng: eng, surf: surface, viewport: viewport}
	c := &Controller{
		eng:      eng,
		viewport: viewport,
		log:      o.logger,
		debug:    eng.Config().Debug,
		primary:  coordinate,
	}

	if eng.Config().UseNative && o.anchored != nil && o.anchored.Supported() {
		c.primary = &anchoredStrategy{eng: eng, surf: o.anchored, viewport: viewport}
		c.fallback = coordinate
	}
	c.active = c.primary

	c.log.Debug("tooltip controller ready", "mode", c.primary.mode().String())
	return c
}

// Mode returns the rendering mode selected at setup.
func (c *Controller) Mode() Mode {
	return c.primary.mode()
}

// SetDebug toggles debug mode. While on, leaving a target does not hide the tooltip.
func (c *Controller) SetDebug(debug bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.debug = debug
}

// Current returns the target the tooltip is shown for, or nil.
func (c *Controller) Current() Target {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// LastLayout returns the layout of the most recent positioning pass.
func (c *Controller) LastLayout() (model.Layout, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.hasLast
}

// Visible reports whether the tooltip is on screen.
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active.surface().Visible()
}

// Enter handles the pointer entering an annotated target. Re-entering the
// target that already owns the tooltip is a no-op.
func (c *Controller) Enter(t Target) {
	if t == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && c.current.ID() == t.ID() {
		return
	}
	c.current = t
	c.show(t)
}

// Leave handles the pointer leaving the current target. next is the element
// the pointer moved onto, or nil; moving onto a child of the current target
// keeps the tooltip.
func (c *Controller) Leave(next Target) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return
	}
	if next != nil && c.current.Contains(next) {
		return
	}
	c.hide()
	c.current = nil
}

// Move handles pointer motion over the current target. Only tooltips placed
// by explicit coordinates follow it; anchored tooltips are tracked by the platform.
func (c *Controller) Move() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || c.active.mode() != ModeCoordinate || !c.active.surface().Visible() {
		return
	}
	c.record(c.active.refresh(c.current, c.last))
}

// ViewportChanged handles scroll and resize. Anchored tooltips only need their
// arrow realigned; coordinate tooltips get a full positioning pass.
func (c *Controller) ViewportChanged() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || !c.hasLast {
		return
	}
	switch c.active.mode() {
	case ModeAnchored:
		c.record(c.active.refresh(c.current, c.last))
	default:
		if c.active.surface().Visible() {
			c.record(c.active.refresh(c.current, c.last))
		}
	}
}

// Hide hides the tooltip and forgets the current target.
func (c *Controller) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hide()
	c.current = nil
}

func (c *Controller) show(t Target) {
	text := t.TooltipText()
	if text == "" {
		// The target owns the tooltip now but has nothing to say;
		// whatever the previous target showed must go.
		c.active.surface().Hide()
		c.hasLast = false
		return
	}
	preferred, ok := t.Placement()
	if !ok || !preferred.Valid() {
		preferred = ""
	}

	layout, err := c.primary.present(t, text, preferred)
	presenter := c.primary
	if err != nil {
		if c.fallback == nil {
			c.log.Error("tooltip show failed", "target", t.ID(), "error", err)
			return
		}
		c.log.Warn("anchored tooltip unavailable, using coordinates", "target", t.ID(), "error", err)
		c.primary.surface().Hide()
		layout, _ = c.fallback.present(t, text, preferred)
		presenter = c.fallback
	}

	if presenter != c.active && c.active.surface().Visible() {
		c.active.surface().Hide()
	}
	c.active = presenter
	c.record(layout)

	c.log.Debug("tooltip shown",
		"target", t.ID(),
		"mode", presenter.mode().String(),
		"placement", string(layout.Placement),
		"x", layout.Position.X,
		"y", layout.Position.Y,
		"arrow", layout.ArrowOffset,
	)
}

func (c *Controller) hide() {
	if c.debug {
		return
	}
	c.active.surface().Hide()
	c.hasLast = false
	if c.current != nil {
		c.log.Debug("tooltip hidden", "target", c.current.ID())
	}
}

func (c *Controller) record(layout model.Layout) {
	c.last = layout
	c.hasLast = true
}
