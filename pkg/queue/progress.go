package queue

import "math"

// Progress returns the completion percentage across records, summing their
// size and remaining size. It is false when the total size is unknown.
func Progress(records ...Record) (int, bool) {
	var total, left float64
	for _, r := range records {
		total += finite(r.Size)
		left += finite(r.Sizeleft)
	}

	if total <= 0 {
		return 0, false
	}

	completed := math.Max(0, total-left)
	pct := int(math.Round(completed / total * 100))
	if pct > 100 {
		pct = 100
	}
	return pct, true
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
