package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"mavenroasters/model"
)

// WelchTTest compares two sample means without assuming equal variances.
// Degrees of freedom follow Welch-Satterthwaite; the p-value is two-sided.
func WelchTTest(name string, a, b []float64) model.TestResult {
	if len(a) < 2 || len(b) < 2 {
		return insufficient(name, fmt.Sprintf("samples of %d and %d observations", len(a), len(b)))
	}

	meanA, varA := stat.MeanVariance(a, nil)
	meanB, varB := stat.MeanVariance(b, nil)
	nA, nB := float64(len(a)), float64(len(b))

	se2 := varA/nA + varB/nB
	if se2 == 0 {
		return undefined(name, "zero variance in both samples")
	}

	t := (meanA - meanB) / math.Sqrt(se2)
	df := se2 * se2 / ((varA/nA)*(varA/nA)/(nA-1) + (varB/nB)*(varB/nB)/(nB-1))
	p := 2 * distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.CDF(-math.Abs(t))

	return model.TestResult{
		Name:             name,
		Statistic:        t,
		PValue:           p,
		DegreesOfFreedom: df,
		Status:           model.StatusOK,
		Detail:           fmt.Sprintf("mean %.2f vs %.2f", meanA, meanB),
	}
}
