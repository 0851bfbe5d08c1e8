package regression

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/meson/finalize"
	"github.com/arloliu/meson/heap"
)

// Analyze builds one regression model relating a document's field count (x)
// to finalize.UpperBound's per-field overestimate (y — the upper bound's
// slack above the actual finalized size, divided by field count), across
// the given sample documents. Shapes that vary (flat vs. nested, scalar mix)
// naturally move the fitted curve; this is meant to be rerun whenever
// UpperBound's formula changes, to confirm the slack stays both sound
// (never underestimates) and tight (package internal/pool can size its
// default scratch buffer growth increments off Estimator.Estimate for an
// expected document size instead of guessing).
//
// Example:
//
//	docs, err := GenerateSampleDocuments(WithSizes(1, 5, 20, 100, 500))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := regression.Analyze(docs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	slackPerField := result.BestFit.Estimator.Estimate(250) // predict slack/field for 250 fields
func Analyze(docs []heap.Value) (*Result, error) {
	if len(docs) == 0 {
		return nil, errors.New("no documents provided")
	}

	xValues, yValues, err := extractDataPoints(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to extract data points: %w", err)
	}

	if len(xValues) == 0 {
		return nil, errors.New("no data points found in documents")
	}

	result, err := performRegression(xValues, yValues)
	if err != nil {
		return nil, err
	}

	result.SampleSizes = make([]int, len(xValues))
	for i, x := range xValues {
		result.SampleSizes[i] = int(x)
	}

	return result, nil
}

// extractDataPoints finalizes each document, measures its field count (x)
// and finalize.UpperBound's per-field slack over the actual finalized size
// (y), and returns the resulting point sets.
func extractDataPoints(docs []heap.Value) (xValues, yValues []float64, err error) {
	for i, doc := range docs {
		fieldCount := countFields(doc)
		if fieldCount == 0 {
			continue
		}

		bound := finalize.UpperBound(doc)

		buf, finalizeErr := finalize.Finalize(doc)
		if finalizeErr != nil {
			return nil, nil, fmt.Errorf("failed to finalize document %d: %w", i, finalizeErr)
		}
		actual := len(buf.Bytes())
		buf.Release()

		slack := bound - actual
		if slack < 0 {
			return nil, nil, fmt.Errorf("document %d: upper bound %d underestimates actual size %d", i, bound, actual)
		}

		xValues = append(xValues, float64(fieldCount))
		yValues = append(yValues, float64(slack)/float64(fieldCount))
	}

	if len(xValues) == 0 {
		return nil, nil, errors.New("no usable documents (all were empty objects)")
	}

	return xValues, yValues, nil
}

// countFields counts a document's total object/array entries, recursing
// into nested aggregates, as the independent variable for the fit.
func countFields(v heap.Value) int {
	switch {
	case v.IsObject():
		obj, _ := v.Object()
		n := obj.Len()
		for i := 0; i < obj.Len(); i++ {
			_, val, err := obj.At(i)
			if err == nil {
				n += countFields(val)
			}
		}

		return n
	case v.IsArray():
		arr, _ := v.Array()
		n := arr.Len()
		for i := 0; i < arr.Len(); i++ {
			el, err := arr.Index(i)
			if err == nil {
				n += countFields(el)
			}
		}

		return n
	default:
		return 0
	}
}

// performRegression performs regression analysis on the given data points.
//
// This function fits five different regression models (hyperbolic, logarithmic,
// power, exponential and polynomial) to the provided x-y data and selects the best-fit model based
// on the highest R² value. The function returns both the best model and all
// candidate models for comparison.
//
// Parameters:
//   - xValues: document field counts (independent variable)
//   - yValues: finalizer per-field slack (dependent variable)
//
// Returns:
//   - *Result: Analysis result containing best-fit model and all candidates
//   - error: Error if regression analysis fails
//
// The function fits five models:
//   - Hyperbolic: y = a + b / x
//   - Logarithmic: y = a + b * ln(x)
//   - Power: y = a * x^b
//   - Exponential: y = a * e^(b * x)
//   - Polynomial: y = a + b*x + c*x²
//
// Models are ranked by R² (coefficient of determination) with the highest
// R² value selected as the best fit.
func performRegression(xValues, yValues []float64) (*Result, error) {
	if len(xValues) != len(yValues) {
		return nil, fmt.Errorf("mismatched data lengths: %d x vs %d y", len(xValues), len(yValues))
	}

	if len(xValues) < 2 {
		return nil, fmt.Errorf("insufficient data points for regression: %d", len(xValues))
	}

	// Fit all five models
	models := []*Model{
		fitHyperbolic(xValues, yValues),
		fitLogarithmic(xValues, yValues),
		fitPower(xValues, yValues),
		fitExponential(xValues, yValues),
		fitPolynomial(xValues, yValues),
	}

	// Sort models by R² (best first)
	slices.SortFunc(models, func(a, b *Model) int {
		if a.RSquared > b.RSquared {
			return -1
		}
		if a.RSquared < b.RSquared {
			return 1
		}

		return 0
	})

	return &Result{
		BestFit:   models[0],
		AllModels: models,
	}, nil
}

// fitHyperbolic fits the hyperbolic model: y = a + b / x
//
// This function performs linear regression on the transformed data where
// X' = 1/x and Y = y, fitting the model y = a + b * (1/x).
// The hyperbolic model is particularly effective for finalizer slack where
// efficiency improves non-linearly as document field count grows.
//
// Parameters:
//   - x: x values (independent variable samples)
//   - y: y values (dependent measurement)
//
// Returns:
//   - *Model: Fitted hyperbolic model with coefficients, R², RMSE, and estimator
//
// The model uses least squares regression on the transformed variables:
//   - X' = 1/x (inverse of x)
//   - Y = y (y values)
//   - Fits: Y = a + b*X'
func fitHyperbolic(x, y []float64) *Model {
	n := len(x)
	if n == 0 {
		return &Model{Type: ModelTypeHyperbolic, RSquared: 0, RMSE: 0, Formula: "y = 0 + 0 / x"}
	}

	// Transform: X' = 1/x, fit y = a + b*X'
	var sumX, sumY, sumXY, sumX2 float64
	for i := range n {
		xi := 1.0 / x[i]
		yi := y[i]
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)
	b := (sumXY - float64(n)*meanX*meanY) / (sumX2 - float64(n)*meanX*meanX)
	a := meanY - b*meanX

	// Calculate R² and RMSE
	predicted := make([]float64, n)
	for i := range n {
		predicted[i] = a + b/x[i]
	}
	r2 := calculateRSquared(y, predicted)
	rmse := calculateRMSE(y, predicted)

	formula := fmt.Sprintf("y = %.2f + %.2f / x", a, b)

	return &Model{
		Type:         ModelTypeHyperbolic,
		Coefficients: []float64{a, b},
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula,
		Estimator:    NewHyperbolicEstimator(a, b),
	}
}

// fitLogarithmic fits the logarithmic model: y = a + b * ln(x)
//
// This function performs linear regression on the transformed data where
// X' = ln(x) and Y = y, fitting the model y = a + b * ln(x).
// The logarithmic model captures diminishing returns in finalizer overestimate
// as the number of independent variable samples increases.
//
// Parameters:
//   - x: x values (independent variable samples)
//   - y: y values (dependent measurement)
//
// Returns:
//   - *Model: Fitted logarithmic model with coefficients, R², RMSE, and estimator
//
// The model uses least squares regression on the transformed variables:
//   - X' = ln(x) (natural logarithm of x)
//   - Y = y (y values)
//   - Fits: Y = a + b*X'
func fitLogarithmic(x, y []float64) *Model {
	n := len(x)
	if n == 0 {
		return &Model{Type: ModelTypeLogarithmic, RSquared: 0, RMSE: 0, Formula: "y = 0 + 0 * ln(x)"}
	}

	// Transform: X' = ln(x), fit y = a + b*X'
	var sumX, sumY, sumXY, sumX2 float64
	for i := range n {
		xi := math.Log(x[i])
		yi := y[i]
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
	}

	// Least squares solution
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)
	b := (sumXY - float64(n)*meanX*meanY) / (sumX2 - float64(n)*meanX*meanX)
	a := meanY - b*meanX

	// Calculate R² and RMSE
	predicted := make([]float64, n)
	for i := 0; i < n; i++ {
		predicted[i] = a + b*math.Log(x[i])
	}
	r2 := calculateRSquared(y, predicted)
	rmse := calculateRMSE(y, predicted)

	formula := fmt.Sprintf("y = %.2f + %.2f * ln(x)", a, b)

	return &Model{
		Type:         ModelTypeLogarithmic,
		Coefficients: []float64{a, b},
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula,
		Estimator:    NewLogarithmicEstimator(a, b),
	}
}

// fitPower fits the power model: y = a * x^b
//
// This function performs linear regression on the log-transformed data where
// X' = ln(x) and Y' = ln(y), fitting the model ln(y) = ln(a) + b * ln(x).
// The power model captures exponential relationships between finalizer slack
// and the number of independent variable samples.
//
// Parameters:
//   - x: x values (independent variable samples)
//   - y: y values (dependent measurement)
//
// Returns:
//   - *Model: Fitted power model with coefficients, R², RMSE, and estimator
//
// The model uses least squares regression on the log-transformed variables:
//   - X' = ln(x) (natural logarithm of x)
//   - Y' = ln(y) (natural logarithm of y)
//   - Fits: Y' = ln(a) + b*X'
//   - Transforms back to: y = a * x^b
func fitPower(x, y []float64) *Model {
	n := len(x)
	if n == 0 {
		return &Model{Type: ModelTypePower, RSquared: 0, RMSE: 0, Formula: "y = 0 * x^0"}
	}

	// Transform: ln(y) = ln(a) + b*ln(x)
	var sumX, sumY, sumXY, sumX2 float64
	for i := range n {
		xi := math.Log(x[i])
		yi := math.Log(y[i])
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)
	b := (sumXY - float64(n)*meanX*meanY) / (sumX2 - float64(n)*meanX*meanX)
	logA := meanY - b*meanX
	a := math.Exp(logA)

	// Calculate R² and RMSE
	predicted := make([]float64, n)
	for i := 0; i < n; i++ {
		predicted[i] = a * math.Pow(x[i], b)
	}
	r2 := calculateRSquared(y, predicted)
	rmse := calculateRMSE(y, predicted)

	formula := fmt.Sprintf("y = %.2f * x^%.3f", a, b)

	return &Model{
		Type:         ModelTypePower,
		Coefficients: []float64{a, b},
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula,
		Estimator:    NewPowerEstimator(a, b),
	}
}

// fitExponential fits the exponential model: y = a * e^(b * x)
//
// This function performs linear regression on the log-transformed data where
// X' = x and Y' = ln(y), fitting the model ln(y) = ln(a) + b * x.
// The exponential model captures exponential growth or decay in finalizer slack
// efficiency as the number of independent variable samples changes.
//
// Parameters:
//   - x: x values (independent variable samples)
//   - y: y values (dependent measurement)
//
// Returns:
//   - *Model: Fitted exponential model with coefficients, R², RMSE, and estimator
//
// The model uses least squares regression on the log-transformed variables:
//   - X' = x (x values)
//   - Y' = ln(y) (natural logarithm of y)
//   - Fits: Y' = ln(a) + b*X'
//   - Transforms back to: y = a * e^(b * x)
func fitExponential(x, y []float64) *Model {
	n := len(x)
	if n == 0 {
		return &Model{Type: ModelTypeExponential, RSquared: 0, RMSE: 0, Formula: "y = 0 * e^(0 * x)"}
	}

	// Transform: ln(y) = ln(a) + b*x
	var sumX, sumY, sumXY, sumX2 float64
	for i := range n {
		xi := x[i]
		yi := math.Log(y[i])
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)
	b := (sumXY - float64(n)*meanX*meanY) / (sumX2 - float64(n)*meanX*meanX)
	logA := meanY - b*meanX
	a := math.Exp(logA)

	// Calculate R² and RMSE
	predicted := make([]float64, n)
	for i := 0; i < n; i++ {
		predicted[i] = a * math.Exp(b*x[i])
	}
	r2 := calculateRSquared(y, predicted)
	rmse := calculateRMSE(y, predicted)

	formula := fmt.Sprintf("y = %.2f * e^(%.3f * x)", a, b)

	return &Model{
		Type:         ModelTypeExponential,
		Coefficients: []float64{a, b},
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula,
		Estimator:    NewExponentialEstimator(a, b),
	}
}

// fitPolynomial fits the polynomial model: y = a + b*x + c*x²
//
// This function performs polynomial regression using the normal equations
// to fit a quadratic polynomial. The polynomial model captures non-linear
// relationships with curvature between finalizer slack and document field count.
//
// Parameters:
//   - x: x values (independent variable samples)
//   - y: y values (dependent measurement)
//
// Returns:
//   - *Model: Fitted polynomial model with coefficients, R², RMSE, and estimator
//
// The model uses least squares regression on the polynomial variables:
//   - X₁ = x (x values)
//   - X₂ = x² (squared x values)
//   - Y = y (y values)
//   - Fits: Y = a + b*X₁ + c*X₂
func fitPolynomial(x, y []float64) *Model {
	n := len(x)
	if n == 0 {
		return &Model{
			Type:         ModelTypePolynomial,
			Coefficients: []float64{0, 0, 0},
			RSquared:     0,
			RMSE:         0,
			Formula:      "y = 0 + 0*x + 0*x²",
			Estimator:    NewPolynomialEstimator(0, 0, 0),
		}
	}

	// For polynomial regression, we need at least 3 points for a quadratic fit
	if n < 3 {
		// Fall back to linear regression if insufficient data
		return fitLinear(x, y)
	}

	// Build the normal equations for polynomial regression
	// We solve: [n    Σx   Σx²] [a]   [Σy]
	//          [Σx   Σx²  Σx³] [b] = [Σxy]
	//          [Σx²  Σx³  Σx⁴] [c]   [Σx²y]
	var sumX, sumX2, sumX3, sumX4, sumY, sumXY, sumX2Y float64
	for i := range n {
		xi := x[i]
		xi2 := xi * xi
		xi3 := xi2 * xi
		xi4 := xi3 * xi
		yi := y[i]

		sumX += xi
		sumX2 += xi2
		sumX3 += xi3
		sumX4 += xi4
		sumY += yi
		sumXY += xi * yi
		sumX2Y += xi2 * yi
	}

	// Solve the 3x3 system using Cramer's rule
	// Matrix: [n    sumX  sumX2]
	//         [sumX sumX2 sumX3]
	//         [sumX2 sumX3 sumX4]
	det := float64(n)*sumX2*sumX4 + sumX*sumX3*sumX2 + sumX2*sumX*sumX3 -
		(sumX2*sumX2*float64(n) + sumX*sumX*sumX4 + sumX3*sumX3*sumX2)

	if math.Abs(det) < 1e-10 {
		// Matrix is singular, fall back to linear regression
		return fitLinear(x, y)
	}

	// Calculate coefficients using Cramer's rule
	detA := sumY*sumX2*sumX4 + sumXY*sumX3*sumX2 + sumX2Y*sumX*sumX3 -
		(sumX2Y*sumX2*sumY + sumXY*sumX*sumX4 + sumY*sumX3*sumX3)
	a := detA / det

	detB := float64(n)*sumXY*sumX4 + sumY*sumX3*sumX2 + sumX2*sumX2Y*sumX -
		(sumX2*sumXY*float64(n) + sumY*sumX*sumX4 + sumX2Y*sumX3*sumX2)
	b := detB / det

	detC := float64(n)*sumX2*sumX2Y + sumX*sumXY*sumX2 + sumY*sumX*sumX3 -
		(sumX2*sumX2*sumY + sumX*sumXY*sumX2 + sumY*sumX3*sumX2)
	c := detC / det

	// Optimized R² and RMSE calculation in single pass
	r2, rmse := calculateStatsOptimized(x, y, a, b, c)

	formula := fmt.Sprintf("y = %.2f + %.2f*x + %.2f*x²", a, b, c)

	return &Model{
		Type:         ModelTypePolynomial,
		Coefficients: []float64{a, b, c},
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula,
		Estimator:    NewPolynomialEstimator(a, b, c),
	}
}

// fitLinear performs linear regression as a fallback for polynomial regression.
// This is used when there's insufficient data for polynomial fitting.
func fitLinear(x, y []float64) *Model {
	n := len(x)
	if n == 0 {
		return &Model{Type: ModelTypePolynomial, RSquared: 0, RMSE: 0, Formula: "y = 0 + 0*x"}
	}

	// Simple linear regression: y = a + b*x
	var sumX, sumY, sumXY, sumX2 float64
	for i := 0; i < n; i++ {
		xi := x[i]
		yi := y[i]
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumX2 += xi * xi
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)
	b := (sumXY - float64(n)*meanX*meanY) / (sumX2 - float64(n)*meanX*meanX)
	a := meanY - b*meanX

	// Calculate R² and RMSE
	predicted := make([]float64, n)
	for i := 0; i < n; i++ {
		predicted[i] = a + b*x[i]
	}
	r2 := calculateRSquared(y, predicted)
	rmse := calculateRMSE(y, predicted)

	formula := fmt.Sprintf("y = %.2f + %.2f*x", a, b)

	return &Model{
		Type:         ModelTypePolynomial,
		Coefficients: []float64{a, b, 0}, // c=0 for linear
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula,
		Estimator:    NewPolynomialEstimator(a, b, 0),
	}
}

// calculateRSquared calculates the coefficient of determination (R²).
//
// R² measures the proportion of variance in the dependent variable (y)
// that is predictable from the independent variable (x). Values range from
// 0 to 1, where 1 indicates perfect fit and 0 indicates no linear relationship.
//
// Formula: R² = 1 - (SS_res / SS_tot)
//   - SS_res: Sum of squares of residuals (observed - predicted)²
//   - SS_tot: Total sum of squares (observed - mean)²
//
// Parameters:
//   - observed: Actual y values from the data
//   - predicted: y values predicted by the model
//
// Returns:
//   - float64: R² value between 0 and 1 (higher is better)
func calculateRSquared(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	mean := calculateMean(observed)
	ssTot := 0.0 // Total sum of squares
	ssRes := 0.0 // Residual sum of squares

	for i := range observed {
		ssTot += (observed[i] - mean) * (observed[i] - mean)
		ssRes += (observed[i] - predicted[i]) * (observed[i] - predicted[i])
	}

	if ssTot == 0 {
		return 0
	}

	return 1.0 - (ssRes / ssTot)
}

// calculateRMSE calculates the root mean square error.
//
// RMSE measures the standard deviation of the residuals (prediction errors).
// It provides an estimate of how far the predicted values deviate from the
// observed values on average. Lower RMSE values indicate better model fit.
//
// Formula: RMSE = √(Σ(observed - predicted)² / n)
//
// Parameters:
//   - observed: Actual y values from the data
//   - predicted: y values predicted by the model
//
// Returns:
//   - float64: RMSE value (lower is better, same units as y)
func calculateRMSE(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	sumSq := 0.0
	for i := range observed {
		diff := observed[i] - predicted[i]
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(observed)))
}

// calculateMean calculates the arithmetic mean.
//
// This function computes the average value of a slice of floating-point numbers.
// It is used internally by other statistical functions for calculating R².
//
// Parameters:
//   - values: Slice of floating-point numbers
//
// Returns:
//   - float64: Arithmetic mean of the values (0 if slice is empty)
func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// calculateStatsOptimized calculates R² and RMSE in a single optimized pass.
//
// This function performs both R² and RMSE calculations in a single pass over the data,
// reducing memory allocations and improving performance for polynomial regression.
//
// Parameters:
//   - x: Input values (x)
//   - y: Observed values (y)
//   - a, b, c: Polynomial coefficients
//
// Returns:
//   - r2: Coefficient of determination
//   - rmse: Root mean square error
func calculateStatsOptimized(x, y []float64, a, b, c float64) (r2, rmse float64) {
	n := len(x)
	if n == 0 {
		return 0, 0
	}

	// Calculate mean of observed values
	meanY := 0.0
	for _, yi := range y {
		meanY += yi
	}
	meanY /= float64(n)

	// Single-pass calculation of R² and RMSE
	ssTot := 0.0 // Total sum of squares
	ssRes := 0.0 // Residual sum of squares
	sumSq := 0.0 // Sum of squared residuals for RMSE

	for i := 0; i < n; i++ {
		xi := x[i]
		yi := y[i]

		// Calculate predicted value: a + b*x + c*x²
		predicted := a + b*xi + c*xi*xi

		// Accumulate for R²
		ssTot += (yi - meanY) * (yi - meanY)
		residual := yi - predicted
		ssRes += residual * residual

		// Accumulate for RMSE
		sumSq += residual * residual
	}

	// Calculate R²
	if ssTot == 0 {
		r2 = 0
	} else {
		r2 = 1.0 - (ssRes / ssTot)
	}

	// Calculate RMSE
	rmse = math.Sqrt(sumSq / float64(n))

	return r2, rmse
}
