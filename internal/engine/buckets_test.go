package engine

import (
	"testing"
)

func TestBucketBoundaries(t *testing.T) {
	bs := DefaultBuckets()

	// Lower bound is inclusive: exactly 1.0 belongs to 1-2, not 0-1.
	cases := []struct {
		years float64
		label string
	}{
		{0, "0-1 yrs"},
		{0.999, "0-1 yrs"},
		{1.0, "1-2 yrs"},
		{2.0, "2-5 yrs"},
		{4.999, "2-5 yrs"},
		{5.0, "5-10 yrs"},
		{10.0, "10-20 yrs"},
		{19.999, "10-20 yrs"},
		{20.0, "20+ yrs"},
		{45.5, "20+ yrs"},
	}

	for _, tc := range cases {
		i := bs.Locate(tc.years)
		if i < 0 {
			t.Fatalf("Locate(%g) returned -1", tc.years)
		}
		if bs[i].Label != tc.label {
			t.Errorf("Locate(%g): expected %s, got %s", tc.years, tc.label, bs[i].Label)
		}
	}
}

func TestBucketsPartitionIsTotal(t *testing.T) {
	bs := DefaultBuckets()

	// Every non-negative value maps to exactly one bucket, and Locate agrees
	// with Contains. Run twice to confirm the assignment is idempotent.
	samples := []float64{0, 0.001, 0.5, 1, 1.5, 2, 3.7, 5, 9.99, 10, 15, 20, 100}
	for _, y := range samples {
		first := bs.Locate(y)
		second := bs.Locate(y)
		if first != second {
			t.Fatalf("Locate(%g) not idempotent: %d vs %d", y, first, second)
		}

		matches := 0
		for _, b := range bs {
			if b.Contains(y) {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("%g matched %d buckets, want exactly 1", y, matches)
		}
	}

	if bs.Locate(-1) != -1 {
		t.Error("negative experience should not map to any bucket")
	}
}

func TestNewBucketSetValidation(t *testing.T) {
	tests := []struct {
		name    string
		edges   []float64
		wantErr bool
	}{
		{"default edges", []float64{0, 1, 2, 5, 10, 20}, false},
		{"single edge", []float64{0}, false},
		{"empty", nil, true},
		{"not starting at zero", []float64{1, 2, 5}, true},
		{"not increasing", []float64{0, 5, 5}, true},
		{"descending", []float64{0, 5, 2}, true},
	}

	for _, tt := range tests {
		_, err := NewBucketSet(tt.edges)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err=%v, wantErr=%v", tt.name, err, tt.wantErr)
		}
	}
}

func TestBucketLabels(t *testing.T) {
	bs, err := NewBucketSet([]float64{0, 2.5, 10})
	if err != nil {
		t.Fatal(err)
	}

	labels := bs.Labels()
	want := []string{"0-2.5 yrs", "2.5-10 yrs", "10+ yrs"}
	for i, l := range want {
		if labels[i] != l {
			t.Errorf("label %d: expected %q, got %q", i, l, labels[i])
		}
	}
}
