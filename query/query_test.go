package query_test

import (
	"testing"

	"github.com/arloliu/meson/heap"
	"github.com/arloliu/meson/query"
)

func buildNested() heap.Value {
	root := heap.NewObject()
	obj, _ := root.Object()

	inner := heap.NewArray()
	arr, _ := inner.Array()

	leaf := heap.NewObject()
	leafObj, _ := leaf.Object()
	leafObj.Set("value", heap.NewInteger(99))

	arr.Append(leaf)
	obj.Set("items", inner)

	return root
}

func TestGetNestedHeap(t *testing.T) {
	root := buildNested()

	v, err := query.GetNestedHeap(root, query.KeyStep("items"), query.IndexStep(0), query.KeyStep("value"))
	if err != nil {
		t.Fatalf("GetNestedHeap: %v", err)
	}

	n, err := v.Integer()
	if err != nil || n != 99 {
		t.Fatalf("value = %d, %v", n, err)
	}
}

func TestGetNestedHeapMissingKey(t *testing.T) {
	root := buildNested()

	if _, err := query.GetNestedHeap(root, query.KeyStep("missing")); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestGetNestedHeapOutOfRange(t *testing.T) {
	root := buildNested()

	if _, err := query.GetNestedHeap(root, query.KeyStep("items"), query.IndexStep(5)); err == nil {
		t.Fatal("expected error for out-of-range index")
	}
}

func TestProjectAndInject(t *testing.T) {
	src := heap.NewObject()
	srcObj, _ := src.Object()
	srcObj.Set("a", heap.NewInteger(1))
	srcObj.Set("b", heap.NewInteger(2))
	srcObj.Set("c", heap.NewInteger(3))

	projected := query.Project(srcObj, []string{"a", "c", "missing"})
	if projected.Len() != 2 {
		t.Fatalf("Project Len() = %d, want 2", projected.Len())
	}

	patch := heap.NewObject()
	patchObj, _ := patch.Object()
	patchObj.Set("a", heap.NewInteger(100))
	patchObj.Set("d", heap.NewInteger(4))

	injected := query.Inject(projected, patchObj)
	if injected.Len() != 3 {
		t.Fatalf("Inject Len() = %d, want 3", injected.Len())
	}
	if projected.Len() != 2 {
		t.Fatalf("Inject mutated dst: Len() = %d, want 2", projected.Len())
	}

	a, _ := injected.Get("a")
	if a.IntegerOr(-1) != 100 {
		t.Fatalf("Inject did not overwrite existing key: got %v", a)
	}

	c, ok := injected.Get("c")
	if !ok || c.IntegerOr(-1) != 3 {
		t.Fatalf("Inject dropped a dst-only key: got %v, %v", c, ok)
	}
}

func TestGetNestedPath(t *testing.T) {
	root := heap.NewObject()
	obj, _ := root.Object()

	a := heap.NewObject()
	aObj, _ := a.Object()
	b := heap.NewObject()
	bObj, _ := b.Object()
	bObj.Set("c", heap.NewInteger(7))
	aObj.Set("b", b)
	obj.Set("a", a)

	v := query.GetNestedPath(root, "a.b.c", "")
	if n, err := v.Integer(); err != nil || n != 7 {
		t.Fatalf("GetNestedPath(a.b.c) = %v, %v", n, err)
	}

	miss := query.GetNestedPath(root, "a.x.c", "")
	if !miss.IsNull() {
		t.Fatalf("GetNestedPath(a.x.c) = %v, want null", miss)
	}

	if same := query.GetNestedPath(root, "", ""); !heap.Equal(same, root) {
		t.Fatal("GetNestedPath with an empty path did not return the receiver")
	}
}

func TestNormalizedLookup(t *testing.T) {
	root := heap.NewObject()
	obj, _ := root.Object()

	// "café" using a combining acute accent (NFD form).
	obj.Set("café", heap.NewInteger(1))

	// Look up using the precomposed (NFC) form.
	v, ok := query.NormalizedLookup(obj, "café")
	if !ok {
		t.Fatal("NormalizedLookup did not match differently-normalized key")
	}
	if v.IntegerOr(-1) != 1 {
		t.Fatalf("value = %v", v)
	}
}
