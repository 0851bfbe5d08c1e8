// Package definalize converts an immutable finalized wire.Buffer back into
// a mutable heap.Value tree, the inverse of package finalize.
//
// Lift recursively decodes a wire region into the equivalent heap
// structure, the mirror image of finalize's recursive write.
package definalize

import (
	"github.com/arloliu/meson/errs"
	"github.com/arloliu/meson/heap"
	"github.com/arloliu/meson/wire"
	"golang.org/x/sync/errgroup"
)

// Lift reads buf's root aggregate and recursively rebuilds it as an
// independent, freely mutable heap.Value tree. No bytes are aliased: every
// string copied out of buf becomes its own Go string, and the wire buffer
// may be released once Lift returns.
func Lift(buf wire.Buffer) (heap.Value, error) {
	root, err := wire.Root(buf)
	if err != nil {
		return heap.Value{}, err
	}

	return liftValue(root)
}

// LiftAll lifts each of buffers concurrently, mirroring
// finalize.FinalizeAll's errgroup fan-out/collect shape. Results preserve
// input order.
func LiftAll(buffers []wire.Buffer) ([]heap.Value, error) {
	out := make([]heap.Value, len(buffers))

	var g errgroup.Group
	for i, buf := range buffers {
		i, buf := i, buf
		g.Go(func() error {
			v, err := Lift(buf)
			if err != nil {
				return err
			}
			out[i] = v

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func liftValue(v wire.Value) (heap.Value, error) {
	switch {
	case v.IsObject():
		return liftObject(v)
	case v.IsArray():
		return liftArray(v)
	case v.IsStr():
		s, err := v.Str()
		if err != nil {
			return heap.Value{}, err
		}

		return heap.NewString(s), nil
	case v.IsInteger():
		n, err := v.Integer()
		if err != nil {
			return heap.Value{}, err
		}

		return heap.NewInteger(n), nil
	case v.IsDecimal():
		f, err := v.Decimal()
		if err != nil {
			return heap.Value{}, err
		}

		return heap.NewDecimal(f), nil
	case v.IsBoolean():
		b, err := v.Boolean()
		if err != nil {
			return heap.Value{}, err
		}

		return heap.NewBoolean(b), nil
	case v.IsNull():
		return heap.NewNull(), nil
	default:
		return heap.Value{}, errs.Type("definalize.liftValue", "", -1, "unknown wire raw type")
	}
}

func liftObject(v wire.Value) (heap.Value, error) {
	wireObj, err := v.Object()
	if err != nil {
		return heap.Value{}, err
	}

	result := heap.NewObject()
	hobj, _ := result.Object()

	for i := 0; i < wireObj.Len(); i++ {
		key, child, err := wireObj.At(i)
		if err != nil {
			return heap.Value{}, err
		}

		hv, err := liftValue(child)
		if err != nil {
			return heap.Value{}, err
		}

		hobj.Set(key, hv)
	}

	return result, nil
}

func liftArray(v wire.Value) (heap.Value, error) {
	wireArr, err := v.Array()
	if err != nil {
		return heap.Value{}, err
	}

	result := heap.NewArray()
	harr, _ := result.Array()

	for i := 0; i < wireArr.Len(); i++ {
		child, err := wireArr.Index(i)
		if err != nil {
			return heap.Value{}, err
		}

		hv, err := liftValue(child)
		if err != nil {
			return heap.Value{}, err
		}

		harr.Append(hv)
	}

	return result, nil
}
