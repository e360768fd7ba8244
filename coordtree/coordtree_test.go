package coordtree_test

import (
	"testing"

	"github.com/Lexparency/lexref/coordtree"
	"github.com/Lexparency/lexref/token"
)

func TestAttachAndRootToLeaf(t *testing.T) {
	var a coordtree.Arena
	root := a.New(token.RefToken{}, token.RefToken{}, 1)
	mid := a.New(token.RefToken{}, token.RefToken{}, 2)
	leaf := a.New(token.RefToken{}, token.RefToken{}, 3)

	a.Attach(root, mid)
	a.Attach(mid, leaf)

	if !a.IsRoot(root) {
		t.Errorf("expected root to have no parent")
	}
	if a.IsRoot(mid) || a.IsRoot(leaf) {
		t.Errorf("expected mid/leaf to have a parent")
	}
	path := a.RootToLeaf(root)
	if len(path) != 3 || path[0] != root || path[2] != leaf {
		t.Fatalf("unexpected path: %+v", path)
	}
	if a.Root(leaf) != root {
		t.Errorf("Root(leaf) = %d, want %d", a.Root(leaf), root)
	}
}

func TestDetachRemovesFromParentChildren(t *testing.T) {
	var a coordtree.Arena
	parent := a.New(token.RefToken{}, token.RefToken{}, 1)
	child := a.New(token.RefToken{}, token.RefToken{}, 2)
	a.Attach(parent, child)
	a.Detach(child)

	if !a.IsRoot(child) {
		t.Errorf("expected child to be a root after Detach")
	}
	if len(a.Node(parent).Children) != 0 {
		t.Errorf("expected parent to have no children, got %+v", a.Node(parent).Children)
	}
}

func TestRoots(t *testing.T) {
	var a coordtree.Arena
	r1 := a.New(token.RefToken{}, token.RefToken{}, 1)
	r2 := a.New(token.RefToken{}, token.RefToken{}, 1)
	child := a.New(token.RefToken{}, token.RefToken{}, 2)
	a.Attach(r1, child)

	roots := a.Roots()
	if len(roots) != 2 || roots[0] != r1 || roots[1] != r2 {
		t.Fatalf("unexpected roots: %+v", roots)
	}
}
