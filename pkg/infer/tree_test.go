package infer

import (
	"testing"

	"github.com/reframe-dev/reframe/pkg/capture"
	"github.com/reframe-dev/reframe/pkg/errors"
)

func TestBuildTree(t *testing.T) {
	nodes := []*capture.RenderNode{
		rn("root", 0, 0, 1000, 800),
		rn("a", 0, 0, 500, 400),
		rn("b", 10, 10, 100, 100),
	}
	parents := []int{-1, 0, 1}

	root, err := buildTree(nodes, parents)
	if err != nil {
		t.Fatalf("buildTree() error = %v", err)
	}
	if root.ID != "root" {
		t.Fatalf("root = %q, want root", root.ID)
	}
	if len(root.Children) != 1 || root.Children[0].ID != "a" {
		t.Fatalf("root children = %v, want [a]", ids(root.Children))
	}
	if len(root.Children[0].Children) != 1 || root.Children[0].Children[0].ID != "b" {
		t.Errorf("a children = %v, want [b]", ids(root.Children[0].Children))
	}
	if root.InferredType != TypeContent {
		t.Errorf("InferredType = %q, want content default", root.InferredType)
	}
}

func TestBuildTreeEmptyCapture(t *testing.T) {
	_, err := buildTree(nil, nil)
	if err == nil {
		t.Fatal("buildTree() error = nil, want invalid input")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestBuildTreeMissingRoot(t *testing.T) {
	// Unreachable through assignParents; exercised directly as the
	// contract guard.
	nodes := []*capture.RenderNode{
		rn("a", 0, 0, 100, 100),
		rn("b", 0, 0, 100, 100),
	}
	parents := []int{1, 0}

	_, err := buildTree(nodes, parents)
	if err == nil {
		t.Fatal("buildTree() error = nil, want missing root")
	}
	if !errors.Is(err, errors.ErrCodeMissingRoot) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeMissingRoot)
	}
}

func TestBuildTreeLargestParentlessWins(t *testing.T) {
	nodes := []*capture.RenderNode{
		rn("small", 0, 0, 100, 100),
		rn("large", 0, 0, 1000, 800),
	}
	parents := []int{-1, -1}

	root, err := buildTree(nodes, parents)
	if err != nil {
		t.Fatalf("buildTree() error = %v", err)
	}
	if root.ID != "large" {
		t.Errorf("root = %q, want large", root.ID)
	}
	if len(root.Children) != 1 || root.Children[0].ID != "small" {
		t.Errorf("root children = %v, want orphan [small]", ids(root.Children))
	}
}

func TestBuildTreeCopiesPayload(t *testing.T) {
	n := rn("root", 0, 0, 100, 100)
	n.Name = "Page"
	n.Type = "body"
	n.Meta = capture.Metadata{"url": "https://example.com"}

	root, err := buildTree([]*capture.RenderNode{n}, []int{-1})
	if err != nil {
		t.Fatalf("buildTree() error = %v", err)
	}
	if root.Name != "Page" || root.Type != "body" {
		t.Errorf("root = %+v, want name and type carried over", root)
	}
	if root.Meta["url"] != "https://example.com" {
		t.Errorf("root meta = %v, want payload forwarded", root.Meta)
	}
}

func TestWalkAndCount(t *testing.T) {
	root := &Node{ID: "r", Children: []*Node{
		{ID: "a", Children: []*Node{{ID: "a1"}}},
		{ID: "b"},
	}}

	var order []string
	root.Walk(func(n *Node) { order = append(order, n.ID) })

	want := []string{"r", "a", "a1", "b"}
	if len(order) != len(want) {
		t.Fatalf("Walk() visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Walk() visited %v, want depth-first %v", order, want)
		}
	}

	if got := root.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}

	var nilNode *Node
	nilNode.Walk(func(*Node) { t.Error("Walk() on nil node should not visit") })
}

// ids extracts child IDs for failure messages.
func ids(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}
