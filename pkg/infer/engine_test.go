package infer

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/reframe-dev/reframe/pkg/capture"
	"github.com/reframe-dev/reframe/pkg/errors"
)

func TestInferEmptyCapture(t *testing.T) {
	_, err := New().Infer(nil)
	if err == nil {
		t.Fatal("Infer() error = nil, want invalid input")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestInferSingleNode(t *testing.T) {
	result, err := New().Infer([]*capture.RenderNode{rn("solo", 0, 0, 400, 300)})
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}
	if result.Root.ID != "solo" || len(result.Root.Children) != 0 {
		t.Errorf("root = %+v, want bare solo node", result.Root)
	}
	if result.Metrics.NodesBefore != 1 || result.Metrics.NodesAfter != 1 {
		t.Errorf("metrics = %+v, want 1 node in and out", result.Metrics)
	}
}

func TestInferStyledTwinSurvives(t *testing.T) {
	// Two identical rects form a containment cycle; the cycle breaks
	// toward the first node, and its background keeps it from being
	// eliminated as a wrapper.
	a := rn("a", 0, 0, 200, 200)
	a.Style.HasBackground = true
	b := rn("b", 0, 0, 200, 200)

	result, err := New().Infer([]*capture.RenderNode{a, b})
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}
	if result.Root.ID != "a" {
		t.Fatalf("root = %q, want a", result.Root.ID)
	}
	if len(result.Root.Children) != 1 || result.Root.Children[0].ID != "b" {
		t.Errorf("root children = %v, want [b]", ids(result.Root.Children))
	}
}

func TestInferEliminatesTiledWrapper(t *testing.T) {
	page := rn("page", 0, 0, 800, 600)
	page.Style.HasBackground = true
	wrapper := rn("w", 0, 0, 300, 100)
	c1 := rn("c1", 0, 0, 150, 100)
	c1.Style.HasBackground = true
	c2 := rn("c2", 150, 0, 150, 100)
	c2.Style.HasBackground = true

	result, err := New().Infer([]*capture.RenderNode{page, wrapper, c1, c2})
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}
	if result.Metrics.WrappersEliminated != 1 {
		t.Errorf("WrappersEliminated = %d, want 1", result.Metrics.WrappersEliminated)
	}
	result.Root.Walk(func(n *Node) {
		if n.ID == "w" {
			t.Error("wrapper w still present in output tree")
		}
	})

	var c1Node *Node
	result.Root.Walk(func(n *Node) {
		if n.ID == "c1" {
			c1Node = n
		}
	})
	if c1Node == nil {
		t.Fatal("c1 missing from output tree")
	}
}

func TestInferCardRowBecomesStack(t *testing.T) {
	nodes := []*capture.RenderNode{rn("page", 0, 0, 800, 400)}
	for i, x := range []float64{0, 110, 220, 330, 440} {
		card := rn(string(rune('a'+i)), x, 100, 100, 100)
		card.Style.HasBackground = true
		nodes = append(nodes, card)
	}

	result, err := New().Infer(nodes)
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}

	var stack *Node
	result.Root.Walk(func(n *Node) {
		if n.InferredType == TypeStack && n.Synthetic {
			stack = n
		}
	})
	if stack == nil {
		t.Fatal("no synthetic stack in output tree")
	}
	if len(stack.Children) != 5 {
		t.Errorf("stack children = %d, want 5", len(stack.Children))
	}
	if stack.AutoLayout == nil || stack.AutoLayout.Direction != DirectionHorizontal {
		t.Fatalf("stack layout = %+v, want horizontal", stack.AutoLayout)
	}
	if stack.AutoLayout.ItemSpacing != 10 {
		t.Errorf("ItemSpacing = %v, want 10", stack.AutoLayout.ItemSpacing)
	}
}

func TestInferSectionizesBands(t *testing.T) {
	nodes := []*capture.RenderNode{
		rn("page", 0, 0, 1200, 1000),
		rn("nav", 0, 0, 1200, 100),
		rn("body", 0, 250, 1200, 100),
		rn("legal", 0, 900, 1200, 50),
	}

	result, err := New().Infer(nodes)
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}

	if len(result.Root.Children) != 3 {
		t.Fatalf("root children = %v, want 3 sections", ids(result.Root.Children))
	}
	want := []string{"Header", "Section 2", "Footer"}
	for i, s := range result.Root.Children {
		if s.Name != want[i] {
			t.Errorf("section %d name = %q, want %q", i, s.Name, want[i])
		}
		if s.InferredType != TypeSection {
			t.Errorf("section %d type = %q, want section", i, s.InferredType)
		}
	}
}

func TestInferEveryNodeHasOneParent(t *testing.T) {
	nodes := []*capture.RenderNode{
		rn("page", 0, 0, 1200, 1000),
		rn("a", 0, 0, 600, 300),
		rn("b", 0, 400, 600, 300),
		rn("c", 10, 410, 580, 100),
		rn("d", 10, 520, 580, 100),
	}
	nodes[2].Style.HasBackground = true

	result, err := New().Infer(nodes)
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}

	seen := map[string]int{}
	result.Root.Walk(func(n *Node) { seen[n.ID]++ })
	for _, in := range nodes {
		if seen[in.ID] != 1 {
			t.Errorf("node %s appears %d times in output, want 1", in.ID, seen[in.ID])
		}
	}
}

func TestInferOverlaysOrderedLast(t *testing.T) {
	modal := rn("modal", 300, 200, 200, 150)
	modal.Style.Overlay = true
	modal.Style.ZIndex = 100
	nodes := []*capture.RenderNode{
		rn("page", 0, 0, 800, 600),
		modal,
		rn("content", 0, 0, 800, 550),
	}

	result, err := New().Infer(nodes)
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}

	last := result.Root.Children[len(result.Root.Children)-1]
	if last.ID != "modal" || last.InferredType != TypeOverlay {
		t.Errorf("last child = %+v, want the modal overlay", last)
	}
}

func TestInferOverlayPanelKeepsTagWhenChildrenStack(t *testing.T) {
	// The panel's children arrive bottom-first, so grouping declines the
	// run; overlay separation reorders them into a valid stack before
	// auto-layout inference sees the panel. The overlay tag must survive
	// that pass, keeping the panel ordered after its flow sibling.
	page := rn("page", 0, 0, 1000, 800)
	page.Style.HasBackground = true
	flow := rn("flow", 40, 400, 300, 200)
	flow.Style.HasBackground = true
	panel := rn("panel", 600, 100, 320, 240)
	panel.Style.HasBackground = true
	panel.Style.Overlay = true
	note := rn("note", 610, 230, 300, 100)
	note.Style.Overlay = true
	text := rn("text", 610, 110, 300, 100)

	result, err := New().Infer([]*capture.RenderNode{page, flow, panel, note, text})
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}

	last := result.Root.Children[len(result.Root.Children)-1]
	if last.ID != "panel" {
		t.Fatalf("last root child = %q, want panel after flow sibling", last.ID)
	}
	if last.InferredType != TypeOverlay {
		t.Errorf("panel type = %q, want overlay preserved", last.InferredType)
	}
	if result.Metrics.OverlayCount != 2 {
		t.Errorf("OverlayCount = %d, want 2", result.Metrics.OverlayCount)
	}
}

func TestInferLogsAndStats(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	e := New(WithLogger(logger))

	result, err := e.Infer([]*capture.RenderNode{
		rn("page", 0, 0, 800, 600),
		rn("block", 10, 10, 700, 500),
	})
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}
	if result.Stats.TotalTime <= 0 {
		t.Errorf("Stats.TotalTime = %v, want positive", result.Stats.TotalTime)
	}
	if buf.Len() == 0 {
		t.Error("debug logger produced no output")
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SectionGap = 99
	e := New(WithConfig(cfg))

	if got := e.Config().SectionGap; got != 99 {
		t.Errorf("Config().SectionGap = %v, want 99", got)
	}
}
