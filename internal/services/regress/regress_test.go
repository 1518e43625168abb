package regress

import (
	"math"
	"testing"
)

func TestLinearRegressionDegenerate(t *testing.T) {
	for _, pts := range [][]Point{nil, {}, {{X: 1, Y: 2}}} {
		slope, intercept := LinearRegression(pts)
		if slope != 0 || intercept != 0 {
			t.Fatalf("expected (0,0) for %d points, got (%v,%v)", len(pts), slope, intercept)
		}
	}
}

func TestLinearRegressionExactLine(t *testing.T) {
	pts := []Point{{0, 1}, {1, 3}, {2, 5}, {3, 7}}
	slope, intercept := LinearRegression(pts)
	if math.Abs(slope-2) > 1e-9 || math.Abs(intercept-1) > 1e-9 {
		t.Fatalf("expected slope=2 intercept=1, got (%v,%v)", slope, intercept)
	}
}

func TestLinearRegressionVerticalInput(t *testing.T) {
	// identical x values have no defined slope
	slope, intercept := LinearRegression([]Point{{1, 1}, {1, 5}})
	if slope != 0 || intercept != 0 {
		t.Fatalf("expected (0,0) for vertical input, got (%v,%v)", slope, intercept)
	}
}

func TestBucketAverageSparseAndSorted(t *testing.T) {
	pts := []Point{
		{X: 21, Y: 1}, {X: 19, Y: 3}, // bucket 20
		{X: 4, Y: 10},                // bucket 5
		{X: 52, Y: 7},                // bucket 50, gap between 20 and 50 stays empty
	}
	got := BucketAverage(pts, 5)
	if len(got) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Value <= got[i-1].Value {
			t.Fatalf("buckets not strictly increasing: %+v", got)
		}
	}
	if got[0].Value != 5 || got[0].Avg != 10 {
		t.Fatalf("unexpected first bucket %+v", got[0])
	}
	if got[1].Value != 20 || got[1].Avg != 2 || got[1].Count != 2 {
		t.Fatalf("unexpected bucket 20 %+v", got[1])
	}
}

func TestBucketAverageDeterministic(t *testing.T) {
	pts := []Point{{1, 1}, {2, 2}, {6, 3}, {7, 4}, {11, 5}}
	a := BucketAverage(pts, 5)
	b := BucketAverage(pts, 5)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic length")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic bucket %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestMeanStdDev(t *testing.T) {
	if m := Mean(nil); m != 0 {
		t.Fatalf("mean of empty should be 0, got %v", m)
	}
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if m := Mean(xs); math.Abs(m-5) > 1e-9 {
		t.Fatalf("mean: got %v", m)
	}
	if sd := StdDev(xs); math.Abs(sd-2) > 1e-9 {
		t.Fatalf("stddev: got %v", sd)
	}
	if sd := StdDev([]float64{3}); sd != 0 {
		t.Fatalf("stddev of single value should be 0, got %v", sd)
	}
}
