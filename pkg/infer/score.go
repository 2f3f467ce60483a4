package infer

import (
	"math"

	"github.com/reframe-dev/reframe/pkg/capture"
)

// Weights applied to the containment sub-scores. The balance favors tight
// geometric fit, with style and layout signals as secondary evidence.
const (
	weightTightness  = 4.0
	weightAreaRatio  = 2.0
	weightStyle      = 1.5
	weightLayout     = 1.0
	weightClip       = 1.0
	weightDecoration = 2.5
	weightOverlay    = 2.0
	weightStacking   = 1.0

	// areaRatioFull is the child/parent area ratio treated as a full fit.
	areaRatioFull = 0.85

	// Sub-score values.
	bonusBackground   = 0.3
	bonusBorderRadius = 0.2
	bonusShadow       = 0.2
	penaltyTinyParent = 0.8
	penaltySliver     = 0.6
	penaltyStacking   = 0.5
)

// Score is the ephemeral record of one parent/child containment evaluation.
// It is produced and consumed per pair and never retained.
type Score struct {
	Tightness  float64
	AreaRatio  float64
	Style      float64
	Layout     float64
	Clip       float64
	Decoration float64
	Overlay    float64
	Stacking   float64
	Total      float64
}

// Rejected reports whether the pair failed the hard containment gate.
func (s Score) Rejected() bool {
	return math.IsInf(s.Total, -1)
}

// rejectedScore is the sentinel for pairs that fail containment.
var rejectedScore = Score{Total: math.Inf(-1)}

// containmentEpsilon computes the per-edge slack for the containment gate.
// The slack grows with element size (imprecise geometry scales with
// dimensions) and with downscaled viewports, clamped to a sane range.
func (e *Engine) containmentEpsilon(parent, child capture.Rect) float64 {
	maxDim := math.Max(parent.MaxDimension(), child.MaxDimension())
	eps := math.Max(e.cfg.BaseEpsilon, 0.001*maxDim)
	eps = math.Max(eps, e.cfg.BaseEpsilon/e.cfg.ViewportScale)
	return clamp(eps, e.cfg.EpsilonMin, e.cfg.EpsilonMax)
}

// scoreContainment evaluates parent as a candidate parent for child.
// A child that does not fit inside the parent within the dynamic epsilon is
// hard-rejected; everything else contributes to a finite weighted total.
func (e *Engine) scoreContainment(parent, child *capture.RenderNode) Score {
	eps := e.containmentEpsilon(parent.Rect, child.Rect)
	if !parent.Rect.ContainsWithin(child.Rect, eps) {
		return rejectedScore
	}

	var s Score

	areaRatio := 0.0
	if pa := parent.Rect.Area(); pa > 0 {
		areaRatio = child.Rect.Area() / pa
	}
	s.AreaRatio = clamp(areaRatio/areaRatioFull, 0, 1)

	gapLeft := child.Rect.X - parent.Rect.X
	gapTop := child.Rect.Y - parent.Rect.Y
	gapRight := parent.Rect.Right() - child.Rect.Right()
	gapBottom := parent.Rect.Bottom() - child.Rect.Bottom()
	avgGap := (gapLeft + gapTop + gapRight + gapBottom) / 4
	maxDim := parent.Rect.MaxDimension()
	tightness := 0.7 * areaRatio
	if maxDim > 0 {
		tightness += 0.3 * (1 - avgGap/maxDim)
	}
	s.Tightness = clamp(tightness, 0, 1)

	if parent.Style.HasBackground {
		s.Style += bonusBackground
	}
	if parent.Style.BorderRadius > 0 {
		s.Style += bonusBorderRadius
	}
	if parent.Style.HasShadow {
		s.Style += bonusShadow
	}
	s.Style = math.Min(s.Style, 1)

	if parent.Style.IsLayoutContainer() {
		s.Layout = 1
	}
	if parent.Style.ClipsOverflow {
		s.Clip = 1
	}

	// Tiny or sliver-shaped parents are usually decorations (divider rules,
	// dots) that happen to enclose content geometrically.
	area := parent.Rect.Area()
	aspect := parent.Rect.AspectRatio()
	switch {
	case area < e.cfg.DecorationMaxArea:
		s.Decoration = penaltyTinyParent
	case area < e.cfg.SliverMaxArea && aspect > 0 && (aspect > e.cfg.SliverAspect || aspect < 1/e.cfg.SliverAspect):
		s.Decoration = penaltySliver
	}

	if child.IsOverlay() && !parent.IsOverlay() {
		s.Overlay = 1
	}

	if dz := child.Style.ZIndex - parent.Style.ZIndex; dz > e.cfg.ZIndexSpread || dz < -e.cfg.ZIndexSpread {
		s.Stacking = penaltyStacking
	}

	s.Total = weightTightness*s.Tightness +
		weightAreaRatio*s.AreaRatio +
		weightStyle*s.Style +
		weightLayout*s.Layout +
		weightClip*s.Clip -
		weightDecoration*s.Decoration -
		weightOverlay*s.Overlay -
		weightStacking*s.Stacking
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
