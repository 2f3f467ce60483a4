package capture

// Style is the subset of computed style the inference engine consumes.
// Everything else an upstream extractor records about an element travels in
// [RenderNode.Meta] untouched.
type Style struct {
	// HasBackground is true when the element paints a non-transparent
	// background fill.
	HasBackground bool `json:"hasBackground,omitempty"`

	// Opacity is the element's own opacity. The zero value is treated as
	// fully opaque so that captures may omit the field.
	Opacity float64 `json:"opacity,omitempty"`

	// BorderRadius is the largest corner radius in pixels.
	BorderRadius float64 `json:"borderRadius,omitempty"`

	// HasShadow is true when the element carries a box shadow.
	HasShadow bool `json:"hasShadow,omitempty"`

	// ClipsOverflow is true when the element clips its overflowing content.
	ClipsOverflow bool `json:"clipsOverflow,omitempty"`

	// FlexContainer and GridContainer record the element's display mode.
	FlexContainer bool `json:"flexContainer,omitempty"`
	GridContainer bool `json:"gridContainer,omitempty"`

	// HasTransform is true when the element carries a 2-D transform.
	HasTransform bool `json:"hasTransform,omitempty"`

	// ZIndex is the element's stacking order.
	ZIndex int `json:"zIndex,omitempty"`

	// Overlay is true for out-of-flow elements (position absolute or fixed)
	// that paint above flow content.
	Overlay bool `json:"overlay,omitempty"`
}

// EffectiveOpacity returns the opacity, treating the zero value as 1.
func (s Style) EffectiveOpacity() float64 {
	if s.Opacity == 0 {
		return 1
	}
	return s.Opacity
}

// IsLayoutContainer reports whether the element declares itself a flex or
// grid container.
func (s Style) IsLayoutContainer() bool {
	return s.FlexContainer || s.GridContainer
}

// HasDecoration reports whether the element paints anything of its own:
// background, rounded corners, or a shadow.
func (s Style) HasDecoration() bool {
	return s.HasBackground || s.BorderRadius > 0 || s.HasShadow
}
