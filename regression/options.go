package regression

import "github.com/arloliu/meson/internal/options"

// SampleConfig holds configuration for GenerateSampleDocuments.
type SampleConfig struct {
	// Sizes lists the target field counts to generate one sample document
	// for. Each size produces a document whose recursive field count
	// (counted the same way countFields does) is approximately the
	// requested size.
	Sizes []int
	// ArrayRatio turns array fields on when positive: every third top-level
	// field then becomes a nested array, giving the sample set a mix of
	// both aggregate kinds instead of object-only trees. Only whether it is
	// positive matters; its value does not set the share of array fields.
	ArrayRatio float64
	// NestingDepth bounds how deep generated aggregates nest. 0 means flat
	// (no nested objects/arrays beyond the root).
	NestingDepth int
}

func defaultSampleConfig() SampleConfig {
	return SampleConfig{
		Sizes:        []int{1, 5, 20, 100, 500},
		ArrayRatio:   0.3,
		NestingDepth: 2,
	}
}

// SampleOption is a functional option for SampleConfig.
type SampleOption = options.Option[*SampleConfig]

// WithSizes sets the target field counts to sample.
func WithSizes(sizes ...int) SampleOption {
	return options.NoError(func(cfg *SampleConfig) {
		cfg.Sizes = sizes
	})
}

// WithArrayRatio sets ArrayRatio; any positive value turns on nested array
// fields, and the value does not change how many there are.
func WithArrayRatio(ratio float64) SampleOption {
	return options.NoError(func(cfg *SampleConfig) {
		cfg.ArrayRatio = ratio
	})
}

// WithNestingDepth sets how deep generated aggregates nest.
func WithNestingDepth(depth int) SampleOption {
	return options.NoError(func(cfg *SampleConfig) {
		cfg.NestingDepth = depth
	})
}
