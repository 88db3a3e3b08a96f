package tritone

import (
	"math"
	"testing"
)

func TestFitWidth(t *testing.T) {
	cases := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{2400, 1600, 1200, 1200, 800},
		{1201, 1, 1200, 1200, 1},
		{1200, 900, 1200, 1200, 900},
		{640, 480, 1200, 640, 480},
		{5000, 3, 1000, 1000, 1},
		{100, 100, 0, 100, 100},
	}
	for _, c := range cases {
		w, h := fitWidth(c.w, c.h, c.max)
		if w != c.wantW || h != c.wantH {
			t.Fatalf("fitWidth(%d, %d, %d) = %dx%d, want %dx%d", c.w, c.h, c.max, w, h, c.wantW, c.wantH)
		}
	}
}

func TestRoundToByte(t *testing.T) {
	cases := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{227.99999999999997, 228},
		{254.5, 255},
		{300, 255},
		{-4, 0},
		{math.NaN(), 0},
		{math.Inf(1), 255},
		{math.Inf(-1), 0},
	}
	for _, c := range cases {
		if got := roundToByte(c.in); got != c.want {
			t.Fatalf("roundToByte(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
