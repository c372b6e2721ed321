package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"mavenroasters/model"
)

// Group is one sample in a between-groups comparison.
type Group struct {
	Name   string
	Values []float64
}

// OneWayANOVA tests the null hypothesis that all group means are equal.
// Any group with fewer than 2 observations makes the test
// "insufficient_data"; zero within-group variance makes it "undefined".
func OneWayANOVA(name string, groups []Group) model.TestResult {
	if len(groups) < 2 {
		return insufficient(name, fmt.Sprintf("need at least 2 groups, have %d", len(groups)))
	}
	for _, g := range groups {
		if len(g.Values) < 2 {
			return insufficient(name, fmt.Sprintf("group %q has %d observations", g.Name, len(g.Values)))
		}
	}

	var n int
	var grandSum float64
	for _, g := range groups {
		n += len(g.Values)
		for _, v := range g.Values {
			grandSum += v
		}
	}
	grandMean := grandSum / float64(n)

	var ssBetween, ssWithin float64
	for _, g := range groups {
		m := stat.Mean(g.Values, nil)
		d := m - grandMean
		ssBetween += float64(len(g.Values)) * d * d
		for _, v := range g.Values {
			ssWithin += (v - m) * (v - m)
		}
	}

	dfBetween := float64(len(groups) - 1)
	dfWithin := float64(n - len(groups))
	if ssWithin == 0 {
		return undefined(name, "zero within-group variance")
	}

	f := (ssBetween / dfBetween) / (ssWithin / dfWithin)
	p := distuv.F{D1: dfBetween, D2: dfWithin}.Survival(f)

	return model.TestResult{
		Name:             name,
		Statistic:        f,
		PValue:           p,
		DegreesOfFreedom: dfBetween,
		Status:           model.StatusOK,
		Detail:           fmt.Sprintf("df between=%.0f, df within=%.0f", dfBetween, dfWithin),
	}
}

func insufficient(name, detail string) model.TestResult {
	return model.TestResult{Name: name, Status: model.StatusInsufficientData, Detail: detail}
}

func undefined(name, detail string) model.TestResult {
	return model.TestResult{Name: name, Status: model.StatusUndefined, Detail: detail}
}
