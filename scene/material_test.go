package scene

import "testing"

func TestCutoutDiscards(t *testing.T) {
	tests := []struct {
		alpha float32
		want  bool
	}{
		{0, true},
		{0.0999, true},
		{0.1, false}, // strictly less-than: the threshold itself draws
		{0.11, false},
		{1, false},
	}
	for _, tt := range tests {
		if got := CutoutDiscards(tt.alpha); got != tt.want {
			t.Errorf("CutoutDiscards(%v) = %v, want %v", tt.alpha, got, tt.want)
		}
	}
}
