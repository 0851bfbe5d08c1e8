package document_test

import (
	"testing"

	"github.com/arloliu/meson/codec/json"
	"github.com/arloliu/meson/document"
	"github.com/arloliu/meson/heap"
	"github.com/arloliu/meson/wire"
)

func wireRootOf(buf wire.Buffer) (wire.Value, error) {
	return wire.Root(buf)
}

func TestParseFinalizeLiftRoundTrip(t *testing.T) {
	src := []byte(`{"a":1,"b":"hi","c":[1,2,3]}`)

	v, err := document.Parse(src, document.FormatJSON, json.Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	buf, err := document.Finalize(v)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	defer buf.Release()

	lifted, err := document.Lift(buf)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}

	if !heap.Equal(v, lifted) {
		t.Fatal("lifted tree is not equal to the original parsed tree")
	}
}

func TestObjectWrapperOverHeapAndWire(t *testing.T) {
	v := heap.NewObject()
	obj, _ := v.Object()
	obj.Set("a", heap.NewInteger(7))

	heapObj, err := document.AsObject(v)
	if err != nil {
		t.Fatal(err)
	}
	if heapObj.Len() != 1 {
		t.Fatalf("heap Object.Len() = %d, want 1", heapObj.Len())
	}
	got, ok := heapObj.Get("a")
	if !ok {
		t.Fatal("heap Object.Get did not find key")
	}
	num, err := document.AsNumber(got)
	if err != nil {
		t.Fatal(err)
	}
	if num.Float64() != 7 {
		t.Fatalf("Float64() = %v, want 7", num.Float64())
	}

	buf, err := document.Finalize(v)
	if err != nil {
		t.Fatal(err)
	}
	defer buf.Release()

	wireRoot, err := wireRootOf(buf)
	if err != nil {
		t.Fatal(err)
	}

	wireObj, err := document.AsObject(wireRoot)
	if err != nil {
		t.Fatal(err)
	}
	if wireObj.Len() != 1 {
		t.Fatalf("wire Object.Len() = %d, want 1", wireObj.Len())
	}
}

func TestAsObjectRejectsNonObject(t *testing.T) {
	if _, err := document.AsObject(heap.NewInteger(1)); err == nil {
		t.Fatal("expected error narrowing an integer to Object")
	}
}

func TestGetNestedAcrossRepresentations(t *testing.T) {
	src := []byte(`{"a":{"b":{"c":7}}}`)

	v, err := document.Parse(src, document.FormatJSON, json.Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := document.GetNested(v, "a.b.c", "")
	if n, err := got.Integer(); err != nil || n != 7 {
		t.Fatalf("GetNested(a.b.c) = %v, %v", n, err)
	}

	if miss := document.GetNested(v, "a.x.c", ""); !miss.IsNull() {
		t.Fatalf("GetNested(a.x.c) = %v, want null", miss)
	}

	buf, err := document.Finalize(v)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	defer buf.Release()

	wireRoot, err := wireRootOf(buf)
	if err != nil {
		t.Fatal(err)
	}

	wireGot := document.GetNestedWire(wireRoot, "a.b.c", "")
	if n, err := wireGot.Integer(); err != nil || n != 7 {
		t.Fatalf("GetNestedWire(a.b.c) = %v, %v", n, err)
	}

	if miss := document.GetNestedWire(wireRoot, "a.x.c", ""); !miss.IsNull() {
		t.Fatalf("GetNestedWire(a.x.c) = %v, want null", miss)
	}
}
