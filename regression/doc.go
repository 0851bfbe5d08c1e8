// Package regression provides document-size estimation through regression
// analysis of the finalizer's allocation upper bound against actual
// finalized sizes.
//
// finalize.UpperBound computes a conservative pre-allocation size for
// finalize.Finalize before it walks the tree; this package measures how
// much slack that bound leaves over the real finalized size, as a function
// of document field count, and fits a curve so callers (for example
// package internal/pool, sizing scratch buffers) can predict the slack for
// a document of a given size without finalizing it first.
//
// # Key Features
//
//   - Multiple Model Types: hyperbolic, logarithmic, power, exponential,
//     and polynomial regression models
//   - Automatic Model Selection: chooses the best-fit model by R² coefficient
//   - Sample Generation: GenerateSampleDocuments builds representative
//     heap.Value trees across a range of field counts when no production
//     documents are on hand
//
// # Usage
//
//	docs, err := regression.GenerateSampleDocuments(
//	    regression.WithSizes(1, 5, 20, 100, 500),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := regression.Analyze(docs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	estimator := result.BestFit.Estimator
//	slackPerField := estimator.Estimate(250) // predict slack/field at 250 fields
//
// # Model Comparison
//
//	for _, model := range result.AllModels {
//	    fmt.Printf("%s: R²=%.4f, Formula=%s\n", model.Type, model.RSquared, model.Formula)
//	}
//
// # Model Types
//
//   - Hyperbolic: y = a + b / x
//   - Logarithmic: y = a + b * ln(x)
//   - Power: y = a * x^b
//   - Exponential: y = a * e^(b*x)
//   - Polynomial: y = a + b*x + c*x²
//
// where x is a document's recursive field count and y is
// finalize.UpperBound's per-field slack over the document's actual
// finalized size. The best-fit model is selected by the highest R².
//
// # Production Use
//
//   - Re-run against real production documents whenever UpperBound's
//     formula changes, to confirm the bound stays both sound (never
//     underestimates) and tight.
//   - Feed the fitted estimator's coefficients into buffer-growth sizing
//     so pre-allocation tracks real document shapes instead of a fixed
//     margin.
package regression
