// Package analytics computes descriptive statistics, trend detection
// and anomaly flagging over time-ordered metric samples.
package analytics

import (
	"math"
	"sort"
	"time"
)

// Point is one time-ordered sample
type Point struct {
	At    time.Time `json:"at"`
	Value float64   `json:"value"`
}

// Statistics holds descriptive statistics over a window
type Statistics struct {
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	StdDev       float64 `json:"std_dev"`        // population
	SampleStdDev float64 `json:"sample_std_dev"` // n-1
	Count        int     `json:"count"`
}

// Calculate computes descriptive statistics over values. It returns nil
// when fewer than 2 points are available.
func Calculate(values []float64) *Statistics {
	n := len(values)
	if n < 2 {
		return nil
	}

	s := &Statistics{
		Count: n,
		Min:   values[0],
		Max:   values[0],
	}

	var sum float64
	for _, v := range values {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = sum / float64(n)

	var ss float64
	for _, v := range values {
		d := v - s.Mean
		ss += d * d
	}
	s.StdDev = math.Sqrt(ss / float64(n))
	s.SampleStdDev = math.Sqrt(ss / float64(n-1))

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		s.Median = sorted[n/2]
	} else {
		s.Median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return s
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdDev(values []float64, m float64) float64 {
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}
