// Package anomaly flags labels whose counts sit significantly above the
// mean of their peers, using a z-score test. It is generic over any
// bucketed count sequence: time buckets, features, anything countable.
package anomaly

import "math"

// Count is one labeled bucket count. An ordered slice of Count stands in
// for an insertion-ordered mapping, so detection results keep the order
// the counts were produced in.
type Count struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Anomaly is a bucket whose z-score exceeded the detection threshold.
type Anomaly struct {
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	ZScore float64 `json:"z_score"`
}

// Detect returns the counts whose z-score exceeds threshold, in input
// order. Fewer than two data points have no meaningful dispersion and
// yield an empty result. A zero standard deviation maps every z to 0.
// Z-scores are rounded to two decimals.
func Detect(counts []Count, threshold float64) []Anomaly {
	if len(counts) < 2 {
		return nil
	}

	values := make([]float64, len(counts))
	for i, c := range counts {
		values[i] = float64(c.Value)
	}
	avg := mean(values)
	std := sampleStdDev(values, avg)

	var anomalies []Anomaly
	for _, c := range counts {
		z := 0.0
		if std > 0 {
			z = (float64(c.Value) - avg) / std
		}
		if z > threshold {
			anomalies = append(anomalies, Anomaly{
				Label:  c.Label,
				Count:  c.Value,
				ZScore: round2(z),
			})
		}
	}
	return anomalies
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev applies Bessel's correction (n-1 divisor); this matches
// statistics.stdev and matters at the threshold boundary.
func sampleStdDev(values []float64, avg float64) float64 {
	var sum float64
	for _, v := range values {
		d := v - avg
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
