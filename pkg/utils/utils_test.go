package utils

import "testing"

func TestFirstValid(t *testing.T) {
	v, ok := FirstValid([]int{0, 0, 42, 7}, func(n int) bool { return n > 0 })
	if !ok || v != 42 {
		t.Errorf("FirstValid = %d, %v; want 42, true", v, ok)
	}

	if _, ok := FirstValid([]int{0, 0}, func(n int) bool { return n > 0 }); ok {
		t.Error("FirstValid reported a match with no valid candidate")
	}

	if _, ok := FirstValid(nil, func(n int) bool { return true }); ok {
		t.Error("FirstValid(nil) reported a match")
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{"plain", "plain"},
		{int(8), "8"},
		{int64(-3), "-3"},
		{uint32(4200), "4200"},
		{1.25, "1.25"},
		{float32(0.5), "0.5"},
		{true, "true"},
		{nil, ""},
	}
	for _, c := range cases {
		if got := FormatValue(c.in); got != c.want {
			t.Errorf("FormatValue(%v) = %q; want %q", c.in, got, c.want)
		}
	}
}
