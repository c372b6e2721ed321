package forecast

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// fitOLS solves ordinary least squares with an intercept via QR. x holds
// one feature row per observation; the returned slice is the intercept
// followed by one coefficient per feature.
func fitOLS(x [][]float64, y []float64) ([]float64, error) {
	n := len(y)
	if n == 0 || len(x) != n {
		return nil, errors.New("empty or mismatched design matrix")
	}
	p := len(x[0]) + 1
	if n < p {
		return nil, fmt.Errorf("need at least %d observations to fit %d coefficients, have %d", p, p, n)
	}

	X := mat.NewDense(n, p, nil)
	for i, row := range x {
		X.Set(i, 0, 1)
		for j, v := range row {
			X.Set(i, j+1, v)
		}
	}

	var qr mat.QR
	qr.Factorize(X)
	b := mat.NewDense(n, 1, append([]float64(nil), y...))
	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, b); err != nil {
		return nil, fmt.Errorf("singular design matrix: %w", err)
	}

	coeffs := make([]float64, p)
	for i := range coeffs {
		coeffs[i] = beta.At(i, 0)
	}
	return coeffs, nil
}

func predict(coeffs []float64, row []float64) float64 {
	v := coeffs[0]
	for j, x := range row {
		v += coeffs[j+1] * x
	}
	return v
}

func meanAbsError(actual, predicted []float64) float64 {
	var sum float64
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual))
}

func rootMeanSqError(actual, predicted []float64) float64 {
	var sum float64
	for i := range actual {
		d := actual[i] - predicted[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(actual)))
}

// rSquared is 1 - SSres/SStot. A constant actual series is a special case:
// a perfect fit reports 1, anything else 0, so no NaN escapes.
func rSquared(actual, predicted []float64) float64 {
	var mean float64
	for _, v := range actual {
		mean += v
	}
	mean /= float64(len(actual))

	var ssRes, ssTot float64
	for i := range actual {
		dr := actual[i] - predicted[i]
		dt := actual[i] - mean
		ssRes += dr * dr
		ssTot += dt * dt
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}
