package regress

import (
	"math"
	"sort"
)

// Point is one (x, y) observation.
type Point struct {
	X float64
	Y float64
}

// LinearRegression computes an ordinary least squares fit y = slope*x + intercept.
// With fewer than 2 points it returns (0, 0): a degenerate fit the caller must
// treat as "no learnable trend", not an error.
func LinearRegression(points []Point) (slope, intercept float64) {
	n := float64(len(points))
	if n < 2 {
		return 0, 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
		sumXY += p.X * p.Y
		sumXX += p.X * p.X
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, 0
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// Bucket is the average of the dependent variable over one fixed-width bucket.
type Bucket struct {
	Value float64 // bucket center, a rounded multiple of the width
	Avg   float64
	Count int
}

// BucketAverage groups points into buckets of fixed width centered on rounded
// multiples of width and averages y per bucket. Buckets with zero samples are
// omitted: the result is sparse, not zero-filled, and sorted ascending.
func BucketAverage(points []Point, width float64) []Bucket {
	if width <= 0 || len(points) == 0 {
		return nil
	}
	sums := make(map[float64]*Bucket)
	for _, p := range points {
		key := math.Round(p.X/width) * width
		b, ok := sums[key]
		if !ok {
			b = &Bucket{Value: key}
			sums[key] = b
		}
		b.Avg += p.Y
		b.Count++
	}
	out := make([]Bucket, 0, len(sums))
	for _, b := range sums {
		b.Avg /= float64(b.Count)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the population standard deviation, or 0 for fewer than 2 values.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := Mean(xs)
	var sum2 float64
	for _, x := range xs {
		d := x - m
		sum2 += d * d
	}
	return math.Sqrt(sum2 / float64(len(xs)))
}
