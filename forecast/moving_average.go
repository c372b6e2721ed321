package forecast

// TrailingMovingAverage returns the mean over the trailing window ending
// at each index k >= window-1. The result is aligned so result[i]
// corresponds to values[i+window-1]; it is nil when the series is shorter
// than the window.
func TrailingMovingAverage(values []float64, window int) []float64 {
	if window <= 0 || len(values) < window {
		return nil
	}
	out := make([]float64, 0, len(values)-window+1)
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}
