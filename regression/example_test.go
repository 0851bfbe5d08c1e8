package regression_test

import (
	"fmt"
	"log"

	"github.com/arloliu/meson/regression"
)

// ExampleAnalyze demonstrates basic usage of the Analyze function.
func ExampleAnalyze() {
	docs, err := regression.GenerateSampleDocuments(regression.WithSizes(5, 20, 100, 500))
	if err != nil {
		log.Fatal(err)
	}

	result, err := regression.Analyze(docs)
	if err != nil {
		log.Fatal(err)
	}

	estimator := result.BestFit.Estimator
	_ = estimator.Estimate(250) // predicted slack/field at 250 fields

	fmt.Println("analysis complete")
	// Output:
	// analysis complete
}

// ExampleNewHyperbolicEstimator demonstrates how to use the Estimator interface.
func ExampleNewHyperbolicEstimator() {
	estimator := regression.NewHyperbolicEstimator(9.98, 23.50)

	fieldCounts := []float64{10, 50, 100, 200, 500}
	fmt.Println("fields -> predicted slack/field:")
	for _, x := range fieldCounts {
		y := estimator.Estimate(x)
		fmt.Printf("%3.0f -> %.2f\n", x, y)
	}

	fmt.Printf("Model type: %s\n", estimator.Type())
	fmt.Printf("Coefficients: %v\n", estimator.Coefficients())

	// Output:
	// fields -> predicted slack/field:
	//  10 -> 12.33
	//  50 -> 10.45
	// 100 -> 10.21
	// 200 -> 10.10
	// 500 -> 10.03
	// Model type: hyperbolic
	// Coefficients: [9.98 23.5]
}

// ExampleAnalyze_modelComparison demonstrates comparing different model types.
func ExampleAnalyze_modelComparison() {
	docs, err := regression.GenerateSampleDocuments(regression.WithSizes(5, 20, 100, 500))
	if err != nil {
		log.Fatal(err)
	}

	result, err := regression.Analyze(docs)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("fitted %d candidate models\n", len(result.AllModels))
	// Output:
	// fitted 5 candidate models
}
