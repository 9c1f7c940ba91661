package tooltip

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TipPlace/internal/engine"
	"github.com/piwi3910/TipPlace/internal/model"
)

type fakeTarget struct {
	id        string
	rect      model.Rect
	text      string
	placement model.Placement
	children  []string
}

func (f *fakeTarget) ID() string          { return f.id }
func (f *fakeTarget) Bounds() model.Rect  { return f.rect }
func (f *fakeTarget) TooltipText() string { return f.text }
func (f *fakeTarget) Placement() (model.Placement, bool) {
	return f.placement, f.placement != ""
}
func (f *fakeTarget) Contains(other Target) bool {
	if other.ID() == f.id {
		return true
	}
	for _, c := range f.children {
		if c == other.ID() {
			return true
		}
	}
	return false
}

type fakeSurface struct {
	text    string
	size    model.Size
	pos     model.Point
	visible bool
	side    model.Side
	arrow   float64
	shows   int
}

func (s *fakeSurface) SetText(text string)  { s.text = text }
func (s *fakeSurface) Measure() model.Size  { return s.size }
func (s *fakeSurface) Bounds() model.Rect   { return model.RectAt(s.pos, s.size) }
func (s *fakeSurface) Hide()                { s.visible = false }
func (s *fakeSurface) Visible() bool        { return s.visible }
func (s *fakeSurface) ShowAt(p model.Point) { s.pos, s.visible = p, true; s.shows++ }
func (s *fakeSurface) SetArrow(side model.Side, offset float64) {
	s.side, s.arrow = side, offset
}

// fakeAnchored positions itself the way a platform would: next to the
// target at the requested placement, without clamping.
type fakeAnchored struct {
	fakeSurface
	eng        *engine.Engine
	supported  bool
	fail       error
	anchoredTo string
	placement  model.Placement
}

func (s *fakeAnchored) Supported() bool { return s.supported }
func (s *fakeAnchored) ShowAnchored(target Target, p model.Placement) error {
	if s.fail != nil {
		return s.fail
	}
	s.anchoredTo, s.placement = target.ID(), p
	s.pos = s.eng.Position(p, target.Bounds(), s.size)
	s.visible = true
	s.shows++
	return nil
}

var tip80x30 = model.Size{Width: 80, Height: 30}

type fixture struct {
	ctrl     *Controller
	surface  *fakeSurface
	anchored *fakeAnchored
	viewport model.Size
}

func newFixture(t *testing.T, cfg model.Config, anchored *fakeAnchored) *fixture {
	t.Helper()
	eng := engine.New(cfg)
	f := &fixture{
		surface:  &fakeSurface{size: tip80x30},
		viewport: model.Size{Width: 1000, Height: 800},
	}
	opts := []Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}
	if anchored != nil {
		anchored.eng = eng
		anchored.size = tip80x30
		f.anchored = anchored
		opts = append(opts, WithAnchored(anchored))
	}
	f.ctrl = New(eng, func() model.Size { return f.viewport }, f.surface, opts...)
	return f
}

func coordinateConfig() model.Config {
	cfg := model.DefaultConfig()
	cfg.UseNative = false
	return cfg
}

func TestEnter_ShowsAtComputedPosition(t *testing.T) {
	f := newFixture(t, coordinateConfig(), nil)
	target := &fakeTarget{id: "a", rect: model.NewRect(100, 100, 50, 20), text: "Save"}

	f.ctrl.Enter(target)

	require.True(t, f.surface.visible)
	assert.Equal(t, "Save", f.surface.text)
	assert.Equal(t, model.Point{X: 85, Y: 62}, f.surface.pos)
	assert.Equal(t, model.SideTop, f.surface.side)
	assert.InDelta(t, 40.0, f.surface.arrow, 1e-9)

	layout, ok := f.ctrl.LastLayout()
	require.True(t, ok)
	assert.Equal(t, model.PlacementTop, layout.Placement)
	assert.Equal(t, ModeCoordinate, f.ctrl.Mode())
	assert.Same(t, target, f.ctrl.Current())
}

func TestEnter_SameTargetIsNoOp(t *testing.T) {
	f := newFixture(t, coordinateConfig(), nil)
	target := &fakeTarget{id: "a", rect: model.NewRect(100, 100, 50, 20), text: "Save"}

	f.ctrl.Enter(target)
	f.ctrl.Enter(target)
	assert.Equal(t, 1, f.surface.shows)
}

func TestEnter_NewTargetSupersedes(t *testing.T) {
	f := newFixture(t, coordinateConfig(), nil)
	a := &fakeTarget{id: "a", rect: model.NewRect(100, 100, 50, 20), text: "First"}
	b := &fakeTarget{id: "b", rect: model.NewRect(0, 0, 20, 20), text: "Second"}

	f.ctrl.Enter(a)
	f.ctrl.Enter(b)

	assert.Same(t, b, f.ctrl.Current())
	assert.Equal(t, "Second", f.surface.text)
	layout, _ := f.ctrl.LastLayout()
	assert.Equal(t, model.PlacementBottomEnd, layout.Placement)
}

func TestEnter_EmptyTextHidesPrevious(t *testing.T) {
	f := newFixture(t, coordinateConfig(), nil)
	a := &fakeTarget{id: "a", rect: model.NewRect(100, 100, 50, 20), text: "First"}
	blank := &fakeTarget{id: "blank", rect: model.NewRect(300, 300, 50, 20)}

	f.ctrl.Enter(a)
	f.ctrl.Enter(blank)

	assert.False(t, f.surface.visible)
	assert.Same(t, blank, f.ctrl.Current())
	_, ok := f.ctrl.LastLayout()
	assert.False(t, ok)
}

func TestEnter_PreferredPlacementHonored(t *testing.T) {
	f := newFixture(t, coordinateConfig(), nil)
	target := &fakeTarget{id: "a", rect: model.NewRect(400, 400, 50, 20), text: "Below", placement: model.PlacementBottom}

	f.ctrl.Enter(target)

	layout, _ := f.ctrl.LastLayout()
	assert.Equal(t, model.PlacementBottom, layout.Placement)
	assert.Equal(t, model.SideBottom, f.surface.side)
	assert.InDelta(t, 428.0, f.surface.pos.Y, 1e-9)
}

func TestLeave_HidesUnlessMovingIntoChild(t *testing.T) {
	f := newFixture(t, coordinateConfig(), nil)
	parent := &fakeTarget{id: "parent", rect: model.NewRect(100, 100, 200, 50), text: "Toolbar", children: []string{"icon"}}
	child := &fakeTarget{id: "icon", rect: model.NewRect(110, 110, 16, 16)}

	f.ctrl.Enter(parent)
	f.ctrl.Leave(child)
	assert.True(t, f.surface.visible, "moving into a child keeps the tooltip")
	assert.Same(t, parent, f.ctrl.Current())

	f.ctrl.Leave(nil)
	assert.False(t, f.surface.visible)
	assert.Nil(t, f.ctrl.Current())

	assert.NotPanics(t, func() { f.ctrl.Leave(nil) })
}

func TestLeave_DebugKeepsTooltip(t *testing.T) {
	f := newFixture(t, coordinateConfig(), nil)
	f.ctrl.SetDebug(true)
	target := &fakeTarget{id: "a", rect: model.NewRect(100, 100, 50, 20), text: "Sticky"}

	f.ctrl.Enter(target)
	f.ctrl.Leave(nil)

	assert.True(t, f.surface.visible)
	assert.Nil(t, f.ctrl.Current())
}

func TestMove_RepositionsVisibleTooltip(t *testing.T) {
	f := newFixture(t, coordinateConfig(), nil)
	target := &fakeTarget{id: "a", rect: model.NewRect(100, 100, 50, 20), text: "Follow"}

	f.ctrl.Enter(target)
	target.rect = model.NewRect(200, 300, 50, 20)
	f.ctrl.Move()

	assert.Equal(t, model.Point{X: 185, Y: 262}, f.surface.pos)
	assert.Equal(t, 2, f.surface.shows)
}

func TestMove_IgnoredWhenHidden(t *testing.T) {
	f := newFixture(t, coordinateConfig(), nil)
	f.ctrl.Move()
	assert.Equal(t, 0, f.surface.shows)

	target := &fakeTarget{id: "a", rect: model.NewRect(100, 100, 50, 20)}
	f.ctrl.Enter(target)
	f.ctrl.Move()
	assert.Equal(t, 0, f.surface.shows)
}

func TestViewportChanged_RechoosesPlacement(t *testing.T) {
	f := newFixture(t, coordinateConfig(), nil)
	target := &fakeTarget{id: "a", rect: model.NewRect(100, 100, 50, 20), text: "Scroll"}

	f.ctrl.Enter(target)
	// The page scrolled so the target is now pinned to the top edge.
	target.rect = model.NewRect(100, 0, 50, 20)
	f.ctrl.ViewportChanged()

	layout, _ := f.ctrl.LastLayout()
	assert.NotEqual(t, model.PlacementTop, layout.Placement)
	assert.GreaterOrEqual(t, f.surface.pos.Y, 4.0)
}

func TestViewportChanged_Idempotent(t *testing.T) {
	f := newFixture(t, coordinateConfig(), nil)
	target := &fakeTarget{id: "a", rect: model.NewRect(990, 10, 10, 10), text: "Edge"}

	f.ctrl.Enter(target)
	first, _ := f.ctrl.LastLayout()
	f.ctrl.ViewportChanged()
	f.ctrl.ViewportChanged()
	second, _ := f.ctrl.LastLayout()

	assert.Equal(t, first, second)
}

func TestNew_SelectsAnchoredWhenSupported(t *testing.T) {
	f := newFixture(t, model.DefaultConfig(), &fakeAnchored{supported: true})
	target := &fakeTarget{id: "a", rect: model.NewRect(100, 100, 50, 20), text: "Native"}

	require.Equal(t, ModeAnchored, f.ctrl.Mode())
	f.ctrl.Enter(target)

	assert.Equal(t, "a", f.anchored.anchoredTo)
	assert.Equal(t, model.PlacementTop, f.anchored.placement)
	assert.True(t, f.anchored.visible)
	assert.False(t, f.surface.visible, "coordinate surface stays unused")
	assert.InDelta(t, 40.0, f.anchored.arrow, 1e-9)
}

func TestNew_UnsupportedAnchoredFallsBackAtSetup(t *testing.T) {
	f := newFixture(t, model.DefaultConfig(), &fakeAnchored{supported: false})
	assert.Equal(t, ModeCoordinate, f.ctrl.Mode())

	native := coordinateConfig()
	g := newFixture(t, native, &fakeAnchored{supported: true})
	assert.Equal(t, ModeCoordinate, g.ctrl.Mode(), "UseNative=false must win over support")
}

func TestEnter_AnchoredFailureFallsBackToCoordinates(t *testing.T) {
	f := newFixture(t, model.DefaultConfig(), &fakeAnchored{supported: true, fail: errors.New("no canvas")})
	target := &fakeTarget{id: "a", rect: model.NewRect(100, 100, 50, 20), text: "Fallback"}

	f.ctrl.Enter(target)

	assert.False(t, f.anchored.visible)
	assert.True(t, f.surface.visible)
	assert.Equal(t, model.Point{X: 85, Y: 62}, f.surface.pos)

	// Motion now follows the coordinate path.
	target.rect = model.NewRect(300, 300, 50, 20)
	f.ctrl.Move()
	assert.Equal(t, model.Point{X: 285, Y: 262}, f.surface.pos)
}

func TestViewportChanged_AnchoredOnlyRealignsArrow(t *testing.T) {
	f := newFixture(t, model.DefaultConfig(), &fakeAnchored{supported: true})
	target := &fakeTarget{id: "a", rect: model.NewRect(100, 100, 50, 20), text: "Native"}

	f.ctrl.Enter(target)
	shows := f.anchored.shows

	// The platform moved the tooltip; the target itself shifted right.
	target.rect = model.NewRect(110, 100, 50, 20)
	f.ctrl.ViewportChanged()

	assert.Equal(t, shows, f.anchored.shows, "anchored tooltips are not re-shown")
	layout, _ := f.ctrl.LastLayout()
	assert.Equal(t, model.PlacementTop, layout.Placement)
	assert.InDelta(t, 50.0, f.anchored.arrow, 1e-9)
}

func TestHide_ForgetsTarget(t *testing.T) {
	f := newFixture(t, coordinateConfig(), nil)
	target := &fakeTarget{id: "a", rect: model.NewRect(100, 100, 50, 20), text: "Bye"}

	f.ctrl.Enter(target)
	require.True(t, f.ctrl.Visible())
	f.ctrl.Hide()

	assert.False(t, f.ctrl.Visible())
	assert.Nil(t, f.ctrl.Current())
}
