package infer

import (
	"testing"
)

func TestSectionizeBandsAndNames(t *testing.T) {
	e := New()
	root := tn("root", 0, 0, 1200, 1000,
		tn("nav", 0, 0, 1200, 100),
		tn("body", 0, 250, 1200, 100),
		tn("legal", 0, 900, 1200, 50),
	)

	created := e.sectionize(root)
	if created != 3 {
		t.Fatalf("sectionize() = %d sections, want 3", created)
	}

	names := make([]string, len(root.Children))
	for i, s := range root.Children {
		names[i] = s.Name
		if s.InferredType != TypeSection || !s.Synthetic {
			t.Errorf("section %d = %+v, want synthetic section", i, s)
		}
	}
	want := []string{"Header", "Section 2", "Footer"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("section names = %v, want %v", names, want)
		}
	}
}

func TestSectionizeHeroNaming(t *testing.T) {
	e := New()
	root := tn("root", 0, 0, 1200, 1400,
		tn("nav", 0, 0, 1200, 80),
		tn("splash", 0, 250, 1200, 500),
		tn("body", 0, 850, 1200, 400),
	)

	if created := e.sectionize(root); created != 3 {
		t.Fatalf("sectionize() = %d sections, want 3", created)
	}

	if got := root.Children[1].Name; got != "Hero" {
		t.Errorf("second band name = %q, want Hero", got)
	}
	// The last band is tall, so it is numbered rather than Footer.
	if got := root.Children[2].Name; got != "Section 3" {
		t.Errorf("last band name = %q, want Section 3", got)
	}
}

func TestSectionizeSingleBandNoOp(t *testing.T) {
	e := New()
	root := tn("root", 0, 0, 1200, 600,
		tn("a", 0, 0, 1200, 100),
		tn("b", 0, 140, 1200, 100), // gap 40 <= 75
		tn("c", 0, 260, 1200, 100),
	)

	if created := e.sectionize(root); created != 0 {
		t.Errorf("sectionize() = %d, want 0 for one band", created)
	}
	if len(root.Children) != 3 {
		t.Errorf("children = %v, want untouched", ids(root.Children))
	}
}

func TestSectionizeFewChildrenNoOp(t *testing.T) {
	e := New()
	root := tn("root", 0, 0, 1200, 600,
		tn("only", 0, 0, 1200, 100),
	)

	if created := e.sectionize(root); created != 0 {
		t.Errorf("sectionize() = %d, want 0 below two children", created)
	}
}

func TestSectionizeBandMembership(t *testing.T) {
	e := New()
	// Two elements share the first band; the gap is measured from the
	// band's running bottom.
	root := tn("root", 0, 0, 1200, 800,
		tn("logo", 0, 10, 200, 60),
		tn("menu", 300, 20, 600, 60),
		tn("content", 0, 300, 1200, 200),
	)

	if created := e.sectionize(root); created != 2 {
		t.Fatalf("sectionize() = %d sections, want 2", created)
	}

	first := root.Children[0]
	if got := ids(first.Children); len(got) != 2 {
		t.Errorf("first band children = %v, want logo and menu", got)
	}
	// Section rect covers its band.
	if first.Rect.Y != 10 || first.Rect.Bottom() != 80 {
		t.Errorf("first band rect = %+v, want y 10..80", first.Rect)
	}
}
