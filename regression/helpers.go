package regression

import (
	"errors"
	"fmt"

	"github.com/arloliu/meson/heap"
	"github.com/arloliu/meson/internal/options"
)

// GenerateSampleDocuments builds one heap.Value document per configured
// size, each with approximately that many recursive fields (counted the
// same way Analyze's internal field counter does), for feeding Analyze.
//
// Documents alternate scalar leaf kinds (string, integer, decimal, boolean,
// null) and, when cfg.ArrayRatio is positive, turn every third top-level
// field into a nested array of up to five elements instead of an entry
// directly on the object, so the fitted curve isn't biased toward one
// aggregate shape. Beyond being positive, the ArrayRatio value does not
// change how many fields go into arrays.
func GenerateSampleDocuments(opts ...SampleOption) ([]heap.Value, error) {
	cfg := defaultSampleConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, fmt.Errorf("applying sample config: %w", err)
	}

	if len(cfg.Sizes) == 0 {
		return nil, errors.New("no sample sizes configured")
	}

	docs := make([]heap.Value, 0, len(cfg.Sizes))
	for _, size := range cfg.Sizes {
		if size <= 0 {
			continue
		}

		docs = append(docs, buildSampleDocument(size, cfg))
	}

	if len(docs) == 0 {
		return nil, errors.New("no usable sample sizes (all were non-positive)")
	}

	return docs, nil
}

// buildSampleDocument constructs an object root and fills it with roughly
// target fields. When cfg.ArrayRatio and cfg.NestingDepth are both
// positive, every third top-level field becomes a nested array; with a
// positive cfg.NestingDepth, every seventh remaining one becomes a nested
// object; the rest are direct object entries. Nesting descends up to
// cfg.NestingDepth levels.
func buildSampleDocument(target int, cfg SampleConfig) heap.Value {
	root := heap.NewObject()
	obj, _ := root.Object()

	remaining := target
	i := 0
	for remaining > 0 {
		remaining--
		key := fmt.Sprintf("f%d", i)
		i++

		if cfg.ArrayRatio > 0 && cfg.NestingDepth > 0 && remaining > 0 && i%3 == 0 {
			n := remaining
			if n > 5 {
				n = 5
			}
			arr, consumed := buildSampleArray(n, cfg.NestingDepth)
			obj.Set(key, arr)
			remaining -= consumed

			continue
		}

		if cfg.NestingDepth > 0 && remaining > 0 && i%7 == 0 {
			n := remaining
			if n > 5 {
				n = 5
			}
			child, consumed := buildSampleObject(n, cfg.NestingDepth-1)
			obj.Set(key, child)
			remaining -= consumed

			continue
		}

		obj.Set(key, sampleScalar(i))
	}

	return root
}

func buildSampleObject(target, depth int) (heap.Value, int) {
	v := heap.NewObject()
	obj, _ := v.Object()

	consumed := 0
	for consumed < target {
		key := fmt.Sprintf("n%d", consumed)
		if depth > 0 && target-consumed > 2 && consumed%4 == 0 {
			n := target - consumed - 1
			if n > 3 {
				n = 3
			}
			child, used := buildSampleObject(n, depth-1)
			obj.Set(key, child)
			consumed += used + 1

			continue
		}

		obj.Set(key, sampleScalar(consumed))
		consumed++
	}

	return v, consumed
}

func buildSampleArray(target, depth int) (heap.Value, int) {
	v := heap.NewArray()
	arr, _ := v.Array()

	consumed := 0
	for consumed < target {
		if depth > 0 && target-consumed > 2 && consumed%4 == 0 {
			n := target - consumed - 1
			if n > 3 {
				n = 3
			}
			child, used := buildSampleObject(n, depth-1)
			arr.Append(child)
			consumed += used + 1

			continue
		}

		arr.Append(sampleScalar(consumed))
		consumed++
	}

	return v, consumed
}

func sampleScalar(i int) heap.Value {
	switch i % 5 {
	case 0:
		return heap.NewString(fmt.Sprintf("s%d", i))
	case 1:
		return heap.NewInteger(int64(i))
	case 2:
		return heap.NewDecimal(float64(i) + 0.5)
	case 3:
		return heap.NewBoolean(i%2 == 0)
	default:
		return heap.NewNull()
	}
}
