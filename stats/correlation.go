package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"mavenroasters/model"
)

// PearsonCorrelation reports the correlation coefficient as the statistic
// and a two-sided p-value for the null hypothesis of zero correlation.
// Zero variance in either variable is "undefined", not NaN.
func PearsonCorrelation(name string, x, y []float64) model.TestResult {
	if len(x) != len(y) {
		return undefined(name, fmt.Sprintf("length mismatch: %d vs %d", len(x), len(y)))
	}
	if len(x) < 3 {
		return insufficient(name, fmt.Sprintf("%d observations, need at least 3", len(x)))
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return undefined(name, "zero variance input")
	}

	r := stat.Correlation(x, y, nil)
	n := float64(len(x))
	df := n - 2

	var p float64
	if 1-r*r <= 0 {
		p = 0 // perfectly collinear
	} else {
		t := r * math.Sqrt(df/(1-r*r))
		p = 2 * distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.CDF(-math.Abs(t))
	}

	return model.TestResult{
		Name:             name,
		Statistic:        r,
		PValue:           p,
		DegreesOfFreedom: df,
		Status:           model.StatusOK,
	}
}
