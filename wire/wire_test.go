package wire

import (
	"testing"

	"github.com/arloliu/meson/wire/layout"
)

// buildTestObject hand-assembles a minimal finalized root object region
// {"a": 1, "b": "hi"} for exercising Object/Array/Value without depending
// on the finalize package (which itself depends on this one).
func buildTestObject(t *testing.T) []byte {
	t.Helper()

	header := make([]byte, layout.AggregateHeaderSize)
	vtable := make([]byte, 2*layout.VTableEntrySize)
	bodyBase := layout.AggregateAlign + len(header) + len(vtable)

	var body []byte

	keyAOffset := uint32(bodyBase + len(body))
	body = AppendKeyRegion(body, "a")
	body = appendInteger(body, 1)

	keyBOffset := uint32(bodyBase + len(body))
	body = AppendKeyRegion(body, "b")
	body = appendString(body, "hi")

	entryA, err := layout.EncodeVTableEntry(layout.RawShortInteger, keyAOffset)
	if err != nil {
		t.Fatal(err)
	}
	entryB, err := layout.EncodeVTableEntry(layout.RawSmallString, keyBOffset)
	if err != nil {
		t.Fatal(err)
	}
	copy(vtable[0:4], entryA[:])
	copy(vtable[4:8], entryB[:])

	totalSize := len(header) + len(vtable) + len(body)
	le.PutUint32(header[0:4], uint32(totalSize))
	le.PutUint32(header[4:8], 2)

	buf := make([]byte, layout.AggregateAlign)
	buf[0] = byte(layout.RawObject)
	buf = append(buf, header...)
	buf = append(buf, vtable...)
	buf = append(buf, body...)

	return buf
}

func TestObjectLookup(t *testing.T) {
	raw := buildTestObject(t)
	buffer := New(raw)
	defer buffer.Release()

	root, err := Root(buffer)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}

	obj, err := root.Object()
	if err != nil {
		t.Fatalf("Object: %v", err)
	}

	if obj.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", obj.Len())
	}

	va, ok := obj.Lookup("a")
	if !ok {
		t.Fatal("Lookup(a) not found")
	}
	n, err := va.Integer()
	if err != nil || n != 1 {
		t.Fatalf("Lookup(a).Integer() = %d, %v, want 1, nil", n, err)
	}

	vb, ok := obj.Lookup("b")
	if !ok {
		t.Fatal("Lookup(b) not found")
	}
	s, err := vb.Str()
	if err != nil || s != "hi" {
		t.Fatalf("Lookup(b).Str() = %q, %v, want hi, nil", s, err)
	}

	if _, ok := obj.Lookup("missing"); ok {
		t.Fatal("Lookup(missing) unexpectedly found")
	}
}

func TestObjectKeysOrder(t *testing.T) {
	raw := buildTestObject(t)
	buffer := New(raw)
	defer buffer.Release()

	root, _ := Root(buffer)
	obj, _ := root.Object()

	keys := obj.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("Keys() = %v, want [a b]", keys)
	}
}

func TestValuePredicatesMutuallyExclusive(t *testing.T) {
	raw := buildTestObject(t)
	buffer := New(raw)
	defer buffer.Release()

	root, _ := Root(buffer)
	if !root.IsObject() || root.IsArray() || root.IsStr() || root.IsNumeric() {
		t.Fatal("root predicates not mutually exclusive")
	}
}

func TestAppendAndReadStringTiers(t *testing.T) {
	cases := []string{"", "short", string(make([]byte, 300)), string(make([]byte, 70000))}
	for _, s := range cases {
		b := appendString(nil, s)
		got := readStringAt(b, 0, mustTier(t, len(s)))
		if len(got) != len(s) {
			t.Errorf("round trip length = %d, want %d", len(got), len(s))
		}
	}
}

func mustTier(t *testing.T, n int) layout.RawType {
	t.Helper()
	tier, err := layout.StringTierFor(n)
	if err != nil {
		t.Fatal(err)
	}

	return tier
}

func TestAppendAndReadIntegerTiers(t *testing.T) {
	cases := []int64{0, 100, -100, 40000, -40000, 1 << 40, -(1 << 40)}
	for _, v := range cases {
		b := appendInteger(nil, v)
		tier := layout.IntegerTierFor(v)
		got := readIntegerAt(b, 0, tier)
		if got != v {
			t.Errorf("readIntegerAt round trip = %d, want %d", got, v)
		}
	}
}

func TestAppendAndReadDecimal(t *testing.T) {
	cases := []float64{1.5, 0.1, 3.14159265358979}
	for _, v := range cases {
		b := appendDecimal(nil, v)
		var tier layout.RawType
		if layout.DecimalFitsFloat32(v) {
			tier = layout.RawDecimal
		} else {
			tier = layout.RawLongDecimal
		}
		got := readDecimalAt(b, 0, tier)
		if got != v {
			t.Errorf("readDecimalAt(%v) round trip = %v", v, got)
		}
	}
}

func TestEqual(t *testing.T) {
	raw1 := buildTestObject(t)
	raw2 := buildTestObject(t)
	buf1 := New(raw1)
	buf2 := New(raw2)
	defer buf1.Release()
	defer buf2.Release()

	root1, _ := Root(buf1)
	root2, _ := Root(buf2)

	if !Equal(root1, root2) {
		t.Fatal("structurally identical objects should compare equal")
	}
}

func TestWrapBufferRejectsGarbage(t *testing.T) {
	if _, err := WrapBuffer([]byte{0, 0, 0, 0, 0, 0, 0, 0}); err == nil {
		t.Fatal("expected error wrapping buffer with invalid root tag")
	}
}
