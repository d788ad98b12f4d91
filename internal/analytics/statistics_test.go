package analytics

import (
	"math"
	"testing"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   *Statistics
	}{
		{
			name:   "nil for empty series",
			values: nil,
			want:   nil,
		},
		{
			name:   "nil for a single point",
			values: []float64{42},
			want:   nil,
		},
		{
			name:   "odd count median",
			values: []float64{30, 10, 20},
			want: &Statistics{
				Mean:   20,
				Median: 20,
				Min:    10,
				Max:    30,
				Count:  3,
			},
		},
		{
			name:   "even count averages middle pair",
			values: []float64{1, 2, 3, 4},
			want: &Statistics{
				Mean:   2.5,
				Median: 2.5,
				Min:    1,
				Max:    4,
				Count:  4,
			},
		},
		{
			name:   "constant series has zero spread",
			values: []float64{5, 5, 5, 5},
			want: &Statistics{
				Mean:   5,
				Median: 5,
				Min:    5,
				Max:    5,
				Count:  4,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.values)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("Calculate() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("Calculate() = nil, want statistics")
			}
			if got.Mean != tt.want.Mean || got.Median != tt.want.Median ||
				got.Min != tt.want.Min || got.Max != tt.want.Max || got.Count != tt.want.Count {
				t.Errorf("Calculate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculate_StdDev(t *testing.T) {
	// Population stddev of {2,4,4,4,5,5,7,9} is exactly 2
	s := Calculate([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s == nil {
		t.Fatal("Calculate() = nil")
	}
	if math.Abs(s.StdDev-2) > 1e-9 {
		t.Errorf("StdDev = %v, want 2", s.StdDev)
	}
	if s.SampleStdDev <= s.StdDev {
		t.Errorf("SampleStdDev %v should exceed population StdDev %v", s.SampleStdDev, s.StdDev)
	}
}
