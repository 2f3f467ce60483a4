package infer

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/reframe-dev/reframe/pkg/capture"
)

// Engine runs the hierarchy inference pipeline. An Engine is stateless
// across runs - it holds only configuration and a logger - so one Engine
// can serve many captures sequentially. A single run owns its node graph
// exclusively; the input slice and nodes must not be shared with a
// concurrent run.
type Engine struct {
	cfg    Config
	logger *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces the default thresholds.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithLogger sets the engine's logger. Without it the engine is silent.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine with the default configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		cfg:    DefaultConfig(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine's threshold configuration.
func (e *Engine) Config() Config { return e.cfg }

// Stats records per-pass wall-clock durations for one run.
type Stats struct {
	AssignTime     time.Duration `json:"assignTime"`
	BuildTime      time.Duration `json:"buildTime"`
	EliminateTime  time.Duration `json:"eliminateTime"`
	GroupTime      time.Duration `json:"groupTime"`
	SectionizeTime time.Duration `json:"sectionizeTime"`
	FinalizeTime   time.Duration `json:"finalizeTime"`
	TotalTime      time.Duration `json:"totalTime"`
}

// Result is the output of one inference run.
type Result struct {
	Root    *Node   `json:"root"`
	Metrics Metrics `json:"metrics"`
	Stats   Stats   `json:"-"`
}

// Infer converts a flat capture into a nested semantic tree. The pipeline
// is fully synchronous and CPU-bound; heuristic passes fail soft, and the
// only returned errors are an empty capture and the missing-root contract
// guard.
func (e *Engine) Infer(nodes []*capture.RenderNode) (*Result, error) {
	start := time.Now()
	var stats Stats

	assignStart := time.Now()
	parents := e.assignParents(nodes)
	stats.AssignTime = time.Since(assignStart)

	buildStart := time.Now()
	root, err := buildTree(nodes, parents)
	if err != nil {
		return nil, err
	}
	stats.BuildTime = time.Since(buildStart)
	e.logger.Debug("built tree", "nodes", len(nodes), "rootChildren", len(root.Children))

	eliminateStart := time.Now()
	eliminated := e.eliminateWrappers(root)
	stats.EliminateTime = time.Since(eliminateStart)
	e.logger.Debug("eliminated wrappers", "count", eliminated)

	groupStart := time.Now()
	grouped := e.groupSiblings(root)
	e.separateOverlays(root)
	stats.GroupTime = time.Since(groupStart)
	e.logger.Debug("grouped siblings", "syntheticFrames", grouped)

	sectionStart := time.Now()
	sections := e.sectionize(root)
	retyped := e.inferAutoLayout(root)
	stats.SectionizeTime = time.Since(sectionStart)
	e.logger.Debug("sectionized", "sections", sections, "retypedStacks", retyped)

	finalizeStart := time.Now()
	e.finalize(root)
	metrics := e.computeMetrics(root, len(nodes), eliminated)
	stats.FinalizeTime = time.Since(finalizeStart)

	stats.TotalTime = time.Since(start)
	e.logger.Info("inference complete",
		"nodesBefore", metrics.NodesBefore,
		"nodesAfter", metrics.NodesAfter,
		"maxDepth", metrics.MaxDepth,
		"duration", stats.TotalTime)

	return &Result{Root: root, Metrics: metrics, Stats: stats}, nil
}
