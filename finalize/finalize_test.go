package finalize

import (
	"testing"

	"github.com/arloliu/meson/definalize"
	"github.com/arloliu/meson/heap"
	"github.com/arloliu/meson/wire"
)

func buildSample() heap.Value {
	v := heap.NewObject()
	obj, _ := v.Object()
	obj.Set("name", heap.NewString("meson"))
	obj.Set("count", heap.NewInteger(42))
	obj.Set("ratio", heap.NewDecimal(1.5))
	obj.Set("active", heap.NewBoolean(true))
	obj.Set("nothing", heap.NewNull())

	arr := heap.NewArray()
	arrVal, _ := arr.Array()
	arrVal.Append(heap.NewInteger(1))
	arrVal.Append(heap.NewInteger(2))
	arrVal.Append(heap.NewString("three"))
	obj.Set("list", arr)

	nested := heap.NewObject()
	nestedObj, _ := nested.Object()
	nestedObj.Set("deep", heap.NewInteger(-7))
	obj.Set("nested", nested)

	return v
}

func TestFinalizeRejectsScalarRoot(t *testing.T) {
	if _, err := Finalize(heap.NewInteger(1)); err == nil {
		t.Fatal("expected error finalizing a scalar root")
	}
}

func TestFinalizeRejectsArrayRoot(t *testing.T) {
	if _, err := Finalize(heap.NewArray()); err == nil {
		t.Fatal("expected error finalizing an array root")
	}
}

func TestFinalizeAndLiftRoundTrip(t *testing.T) {
	original := buildSample()

	buf, err := Finalize(original)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	defer buf.Release()

	root, err := wire.Root(buf)
	if err != nil {
		t.Fatal(err)
	}

	obj, err := root.Object()
	if err != nil {
		t.Fatal(err)
	}
	if obj.Len() != 7 {
		t.Fatalf("Len() = %d, want 7", obj.Len())
	}

	name, ok := obj.Lookup("name")
	if !ok {
		t.Fatal("name not found")
	}
	if s, _ := name.Str(); s != "meson" {
		t.Fatalf("name = %q", s)
	}

	count, ok := obj.Lookup("count")
	if !ok {
		t.Fatal("count not found")
	}
	if n, _ := count.Integer(); n != 42 {
		t.Fatalf("count = %d", n)
	}

	ratio, ok := obj.Lookup("ratio")
	if !ok {
		t.Fatal("ratio not found")
	}
	if f, err := ratio.Decimal(); err != nil || f != 1.5 {
		t.Fatalf("ratio = %v, %v", f, err)
	}

	list, ok := obj.Lookup("list")
	if !ok {
		t.Fatal("list not found")
	}
	listArr, err := list.Array()
	if err != nil {
		t.Fatalf("list.Array(): %v", err)
	}
	if listArr.Len() != 3 {
		t.Fatalf("list.Len() = %d, want 3", listArr.Len())
	}
	if first, ferr := listArr.Index(0); ferr != nil || first.IntegerOr(-1) != 1 {
		t.Fatalf("list[0] = %v, %v", first, ferr)
	}

	lifted, err := definalize.Lift(buf)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}

	if !heap.Equal(original, lifted) {
		t.Fatal("lifted tree is not equal to the original heap tree")
	}
}

func TestFinalizeAllAndLiftAll(t *testing.T) {
	docs := []heap.Value{buildSample(), buildSample()}

	buffers, err := FinalizeAll(docs)
	if err != nil {
		t.Fatalf("FinalizeAll: %v", err)
	}

	lifted, err := definalize.LiftAll(buffers)
	if err != nil {
		t.Fatalf("LiftAll: %v", err)
	}

	for i := range docs {
		if !heap.Equal(docs[i], lifted[i]) {
			t.Fatalf("document %d did not round trip", i)
		}
		buffers[i].Release()
	}
}

func TestUpperBoundNeverUnderestimates(t *testing.T) {
	sample := buildSample()
	bound := UpperBound(sample)

	buf, err := Finalize(sample)
	if err != nil {
		t.Fatal(err)
	}
	defer buf.Release()

	if len(buf.Bytes()) > bound+8 {
		t.Fatalf("finalized size %d exceeds upper bound %d (+8 root padding)", len(buf.Bytes()), bound)
	}
}
