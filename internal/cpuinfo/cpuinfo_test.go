package cpuinfo

import (
	"runtime"
	"testing"
)

func TestKHzToMHz(t *testing.T) {
	tests := []struct {
		in   int64
		want float64
	}{
		{1586000, 1586},
		{1014000, 1014},
		{0, 0},
	}
	for _, tt := range tests {
		if got := KHzToMHz(tt.in); got != tt.want {
			t.Errorf("KHzToMHz(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCollect(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("cpu inventory is only checked on linux")
	}
	snap, err := Collect()
	if err != nil {
		t.Fatal(err)
	}
	if snap.LogicalCores < 1 {
		t.Errorf("logical cores = %d", snap.LogicalCores)
	}
}
