package infer

import (
	"math"
	"testing"

	"github.com/reframe-dev/reframe/pkg/capture"
)

func rn(id string, x, y, w, h float64) *capture.RenderNode {
	return &capture.RenderNode{ID: id, Rect: capture.Rect{X: x, Y: y, Width: w, Height: h}}
}

func TestContainmentEpsilon(t *testing.T) {
	e := New()

	tests := []struct {
		name   string
		parent capture.Rect
		child  capture.Rect
		want   float64
	}{
		{"small rects use base", capture.Rect{Width: 100, Height: 100}, capture.Rect{Width: 50, Height: 50}, 2},
		{"large rects scale up", capture.Rect{Width: 5000, Height: 100}, capture.Rect{Width: 50, Height: 50}, 5},
		{"huge rects clamp at max", capture.Rect{Width: 20000, Height: 100}, capture.Rect{Width: 50, Height: 50}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.containmentEpsilon(tt.parent, tt.child); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("containmentEpsilon() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContainmentEpsilonViewportScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ViewportScale = 0.5
	e := New(WithConfig(cfg))

	// base/scale = 2/0.5 = 4 dominates for small rects.
	got := e.containmentEpsilon(capture.Rect{Width: 100, Height: 100}, capture.Rect{Width: 10, Height: 10})
	if got != 4 {
		t.Errorf("containmentEpsilon() = %v, want 4 at half viewport scale", got)
	}
}

func TestScoreContainmentGate(t *testing.T) {
	e := New()
	parent := rn("p", 0, 0, 100, 100)

	inside := rn("c", 10, 10, 50, 50)
	if s := e.scoreContainment(parent, inside); s.Rejected() {
		t.Error("scoreContainment() rejected a fully contained child")
	}

	outside := rn("c", 90, 90, 50, 50)
	if s := e.scoreContainment(parent, outside); !s.Rejected() {
		t.Errorf("scoreContainment() = %+v, want rejection for overhanging child", s)
	}
}

func TestScoreContainmentIdenticalRects(t *testing.T) {
	e := New()
	parent := rn("p", 0, 0, 200, 200)
	child := rn("c", 0, 0, 200, 200)

	s := e.scoreContainment(parent, child)
	if s.Rejected() {
		t.Fatal("identical rects should pass the containment gate")
	}
	if s.Tightness != 1 {
		t.Errorf("Tightness = %v, want 1 for a perfect fit", s.Tightness)
	}
	if s.AreaRatio != 1 {
		t.Errorf("AreaRatio = %v, want 1 (clamped)", s.AreaRatio)
	}
	// 4*1 + 2*1 with no style signals.
	if math.Abs(s.Total-6) > 1e-9 {
		t.Errorf("Total = %v, want 6", s.Total)
	}
}

func TestScoreContainmentStyleBonuses(t *testing.T) {
	e := New()
	child := rn("c", 10, 10, 80, 80)

	plain := rn("p", 0, 0, 100, 100)
	base := e.scoreContainment(plain, child).Total

	styled := rn("p", 0, 0, 100, 100)
	styled.Style = capture.Style{HasBackground: true, BorderRadius: 8, HasShadow: true}
	s := e.scoreContainment(styled, child)

	// background 0.3 + radius 0.2 + shadow 0.2, weighted by 1.5.
	if math.Abs(s.Total-base-1.5*0.7) > 1e-9 {
		t.Errorf("styled total = %v, plain = %v, want +%v", s.Total, base, 1.5*0.7)
	}
}

func TestScoreContainmentLayoutAndClip(t *testing.T) {
	e := New()
	child := rn("c", 10, 10, 80, 80)

	flex := rn("p", 0, 0, 100, 100)
	flex.Style.FlexContainer = true
	if s := e.scoreContainment(flex, child); s.Layout != 1 {
		t.Errorf("Layout = %v, want 1 for flex container", s.Layout)
	}

	clip := rn("p", 0, 0, 100, 100)
	clip.Style.ClipsOverflow = true
	if s := e.scoreContainment(clip, child); s.Clip != 1 {
		t.Errorf("Clip = %v, want 1 for clipping container", s.Clip)
	}
}

func TestScoreContainmentDecorationPenalties(t *testing.T) {
	e := New()

	// A 9x9 dot still geometrically contains a smaller child.
	dot := rn("p", 0, 0, 9, 9)
	child := rn("c", 1, 1, 5, 5)
	if s := e.scoreContainment(dot, child); s.Decoration != penaltyTinyParent {
		t.Errorf("Decoration = %v, want %v for tiny parent", s.Decoration, penaltyTinyParent)
	}

	// A 900x1 divider rule: area below sliver cutoff, extreme aspect.
	rule := rn("p", 0, 0, 900, 1)
	thin := rn("c", 10, 0, 100, 1)
	if s := e.scoreContainment(rule, thin); s.Decoration != penaltySliver {
		t.Errorf("Decoration = %v, want %v for sliver parent", s.Decoration, penaltySliver)
	}

	normal := rn("p", 0, 0, 500, 400)
	if s := e.scoreContainment(normal, child); s.Decoration != 0 {
		t.Errorf("Decoration = %v, want 0 for normal parent", s.Decoration)
	}
}

func TestScoreContainmentOverlayPenalty(t *testing.T) {
	e := New()
	parent := rn("p", 0, 0, 100, 100)
	child := rn("c", 10, 10, 50, 50)
	child.Style.Overlay = true

	s := e.scoreContainment(parent, child)
	if s.Overlay != 1 {
		t.Errorf("Overlay = %v, want 1 for overlay child under flow parent", s.Overlay)
	}

	// An overlay parent is a plausible home for an overlay child.
	parent.Style.Overlay = true
	if s := e.scoreContainment(parent, child); s.Overlay != 0 {
		t.Errorf("Overlay = %v, want 0 when both are overlays", s.Overlay)
	}
}

func TestScoreContainmentStackingPenalty(t *testing.T) {
	e := New()
	parent := rn("p", 0, 0, 100, 100)
	child := rn("c", 10, 10, 50, 50)
	child.Style.ZIndex = 20

	if s := e.scoreContainment(parent, child); s.Stacking != penaltyStacking {
		t.Errorf("Stacking = %v, want %v for distant z-index", s.Stacking, penaltyStacking)
	}

	child.Style.ZIndex = 5
	if s := e.scoreContainment(parent, child); s.Stacking != 0 {
		t.Errorf("Stacking = %v, want 0 within the z-index spread", s.Stacking)
	}
}
