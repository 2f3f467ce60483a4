package infer

import (
	"github.com/BurntSushi/toml"

	"github.com/reframe-dev/reframe/pkg/errors"
)

// Config collects every numeric threshold the inference passes consult.
// All thresholds are explicit so tests and callers can vary them without
// global mutable state. [DefaultConfig] returns the tuned production values;
// [LoadConfig] overlays a TOML file on top of them.
type Config struct {
	// Containment scoring.

	// BaseEpsilon is the baseline containment slack in pixels.
	BaseEpsilon float64 `toml:"base_epsilon"`
	// EpsilonMin and EpsilonMax clamp the dynamic containment epsilon.
	EpsilonMin float64 `toml:"epsilon_min"`
	EpsilonMax float64 `toml:"epsilon_max"`
	// ViewportScale is the capture's device scale factor; the epsilon grows
	// on downscaled captures where geometry is coarser.
	ViewportScale float64 `toml:"viewport_scale"`
	// ConfidenceFloor is the minimum containment score for a parent link.
	ConfidenceFloor float64 `toml:"confidence_floor"`
	// DecorationMaxArea marks tiny elements (in square pixels) that are
	// decorations rather than plausible parents.
	DecorationMaxArea float64 `toml:"decoration_max_area"`
	// SliverMaxArea and SliverAspect mark thin rule-like elements.
	SliverMaxArea float64 `toml:"sliver_max_area"`
	SliverAspect  float64 `toml:"sliver_aspect"`
	// ZIndexSpread is the stacking-context distance beyond which a parent
	// link is penalized.
	ZIndexSpread int `toml:"z_index_spread"`

	// Wrapper elimination.

	// WrapperTolerance is the baseline per-edge slack in pixels when
	// comparing a node's rect to its children's bounding union.
	WrapperTolerance float64 `toml:"wrapper_tolerance"`
	// WrapperTolerancePct scales the slack with the node's smaller side.
	WrapperTolerancePct float64 `toml:"wrapper_tolerance_pct"`
	// AreaMatchMin is the minimum union/node area agreement.
	AreaMatchMin float64 `toml:"area_match_min"`
	// WrapperMaxSweeps caps the bottom-up fixed-point iteration.
	WrapperMaxSweeps int `toml:"wrapper_max_sweeps"`

	// Sibling grouping.

	// StackTolerance is the minimum cross-axis alignment slack in pixels;
	// StackTolerancePct scales it with the cross-axis size and
	// StackToleranceMax caps it.
	StackTolerance    float64 `toml:"stack_tolerance"`
	StackTolerancePct float64 `toml:"stack_tolerance_pct"`
	StackToleranceMax float64 `toml:"stack_tolerance_max"`
	// StackConfidenceMin gates stack acceptance (0..3 scale).
	StackConfidenceMin float64 `toml:"stack_confidence_min"`
	// StackMaxGap breaks a run when the flow-axis gap between consecutive
	// members exceeds it; far-apart elements are bands, not stack members.
	StackMaxGap float64 `toml:"stack_max_gap"`
	// GridColumnTolerance is the column x-alignment slack between rows.
	GridColumnTolerance float64 `toml:"grid_column_tolerance"`
	// GridConfidenceMin gates grid acceptance (0..3 scale).
	GridConfidenceMin float64 `toml:"grid_confidence_min"`
	// GridMinElements is the minimum total cell count for a grid.
	GridMinElements int `toml:"grid_min_elements"`

	// Sectionizing.

	// SectionGap is the vertical gap in pixels that starts a new band.
	SectionGap float64 `toml:"section_gap"`
	// HeaderMaxTop, HeroMinHeight and FooterMaxHeight drive band naming.
	HeaderMaxTop    float64 `toml:"header_max_top"`
	HeroMinHeight   float64 `toml:"hero_min_height"`
	FooterMaxHeight float64 `toml:"footer_max_height"`

	// Finalize and metrics.

	// RowTolerance treats y differences below it as the same visual row.
	RowTolerance float64 `toml:"row_tolerance"`
	// CandidateRatioMin is the union/area ratio above which a node is
	// reported as a wrapper candidate in diagnostics.
	CandidateRatioMin float64 `toml:"candidate_ratio_min"`
	// MaxWrapperCandidates bounds the diagnostic candidate list.
	MaxWrapperCandidates int `toml:"max_wrapper_candidates"`
}

// DefaultConfig returns the tuned production thresholds.
func DefaultConfig() Config {
	return Config{
		BaseEpsilon:     2,
		EpsilonMin:      0.5,
		EpsilonMax:      8,
		ViewportScale:   1,
		ConfidenceFloor: 3.0,

		DecorationMaxArea: 100,
		SliverMaxArea:     1000,
		SliverAspect:      50,
		ZIndexSpread:      10,

		WrapperTolerance:    5,
		WrapperTolerancePct: 0.02,
		AreaMatchMin:        0.95,
		WrapperMaxSweeps:    10,

		StackTolerance:      8,
		StackTolerancePct:   0.10,
		StackToleranceMax:   16,
		StackConfidenceMin:  2.5,
		StackMaxGap:         75,
		GridColumnTolerance: 12,
		GridConfidenceMin:   3.0,
		GridMinElements:     4,

		SectionGap:      75,
		HeaderMaxTop:    200,
		HeroMinHeight:   300,
		FooterMaxHeight: 100,

		RowTolerance:         10,
		CandidateRatioMin:    0.9,
		MaxWrapperCandidates: 50,
	}
}

// LoadConfig reads a TOML threshold file and overlays it on the defaults.
// Fields absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the thresholds are internally consistent.
func (c Config) Validate() error {
	switch {
	case c.EpsilonMin <= 0 || c.EpsilonMax < c.EpsilonMin:
		return errors.New(errors.ErrCodeInvalidConfig, "epsilon bounds must satisfy 0 < min <= max")
	case c.ViewportScale <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "viewport_scale must be positive")
	case c.AreaMatchMin <= 0 || c.AreaMatchMin > 1:
		return errors.New(errors.ErrCodeInvalidConfig, "area_match_min must be in (0, 1]")
	case c.WrapperMaxSweeps < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "wrapper_max_sweeps must be at least 1")
	case c.StackMaxGap <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "stack_max_gap must be positive")
	case c.GridMinElements < 2:
		return errors.New(errors.ErrCodeInvalidConfig, "grid_min_elements must be at least 2")
	case c.SectionGap <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "section_gap must be positive")
	case c.MaxWrapperCandidates < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "max_wrapper_candidates must not be negative")
	}
	return nil
}
