package registry

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		req, latest string
		want        Status
	}{
		{"1.0", "1.4.2", StatusCurrent},
		{"1", "1.4.2", StatusCurrent},
		{"^1.2.3", "1.9.0", StatusCurrent},
		{"1.0", "2.0.0", StatusOutdated},
		{"0.2", "0.2.9", StatusCurrent},
		{"0.2", "0.3.0", StatusOutdated},
		{"0", "0.7.0", StatusCurrent},
		{"0.0.3", "0.0.4", StatusOutdated},
		{"~1.2", "1.2.7", StatusCurrent},
		{"~1.2", "1.3.0", StatusOutdated},
		{"~1", "1.9.0", StatusCurrent},
		{"=1.0.3", "1.0.3", StatusCurrent},
		{"=1.0.3", "1.0.4", StatusOutdated},
		{"2.0", "1.9.0", StatusCurrent},
		{">=1, <2", "1.5.0", StatusUnknown},
		{"1.*", "1.5.0", StatusUnknown},
		{"", "1.0.0", StatusUnknown},
		{"1.0", "garbage", StatusUnknown},
		{"next", "1.0.0", StatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.req+"_vs_"+tt.latest, func(t *testing.T) {
			if got := Compare(tt.req, tt.latest); got != tt.want {
				t.Errorf("Compare(%q, %q) = %s, want %s", tt.req, tt.latest, got, tt.want)
			}
		})
	}
}
