package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"mavenroasters/dataset"
	"mavenroasters/model"
)

// CrossTabStoreCategory builds the store x category contingency table of
// transaction counts, rows in store order, columns in category order.
func CrossTabStoreCategory(t *dataset.Table) [][]float64 {
	storeIdx := make(map[string]int, len(t.StoreNames))
	for i, s := range t.StoreNames {
		storeIdx[s] = i
	}
	catIdx := make(map[string]int, len(t.CategoryNames))
	for i, c := range t.CategoryNames {
		catIdx[c] = i
	}

	table := make([][]float64, len(t.StoreNames))
	for i := range table {
		table[i] = make([]float64, len(t.CategoryNames))
	}
	for i := range t.Stores {
		table[storeIdx[t.Stores[i]]][catIdx[t.Categories[i]]]++
	}
	return table
}

// ChiSquareIndependence tests independence of the row and column factors
// of a contingency table of counts. Rows and columns with zero totals are
// dropped before computing expectations.
func ChiSquareIndependence(name string, table [][]float64) model.TestResult {
	table = dropEmpty(table)
	rows := len(table)
	if rows < 2 || len(table[0]) < 2 {
		return insufficient(name, "contingency table smaller than 2x2 after dropping empty rows/columns")
	}
	cols := len(table[0])

	rowTotals := make([]float64, rows)
	colTotals := make([]float64, cols)
	var grand float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			rowTotals[i] += table[i][j]
			colTotals[j] += table[i][j]
			grand += table[i][j]
		}
	}

	var chi2 float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			expected := rowTotals[i] * colTotals[j] / grand
			d := table[i][j] - expected
			chi2 += d * d / expected
		}
	}

	dof := float64((rows - 1) * (cols - 1))
	p := distuv.ChiSquared{K: dof}.Survival(chi2)

	return model.TestResult{
		Name:             name,
		Statistic:        chi2,
		PValue:           p,
		DegreesOfFreedom: dof,
		Status:           model.StatusOK,
		Detail:           fmt.Sprintf("%dx%d table, n=%.0f", rows, cols, grand),
	}
}

func dropEmpty(table [][]float64) [][]float64 {
	if len(table) == 0 {
		return table
	}
	cols := len(table[0])

	colKeep := make([]bool, cols)
	for j := 0; j < cols; j++ {
		for i := range table {
			if table[i][j] != 0 {
				colKeep[j] = true
				break
			}
		}
	}

	var out [][]float64
	for _, row := range table {
		var total float64
		for _, v := range row {
			total += v
		}
		if total == 0 {
			continue
		}
		var kept []float64
		for j, v := range row {
			if colKeep[j] {
				kept = append(kept, v)
			}
		}
		out = append(out, kept)
	}
	return out
}
