package osstat

import "testing"

func TestLogicalIndex(t *testing.T) {
	cases := []struct {
		name string
		want int
		ok   bool
	}{
		{"cpu0", 0, true},
		{"cpu15", 15, true},
		{"cpu255", 255, true},
		{"cpu", 0, false},
		{"cpu-1", 0, false},
		{"cpu999", 0, false},
		{"total", 0, false},
	}
	for _, c := range cases {
		got, ok := logicalIndex(c.name)
		if got != c.want || ok != c.ok {
			t.Errorf("logicalIndex(%q) = %d, %v; want %d, %v", c.name, got, ok, c.want, c.ok)
		}
	}
}
