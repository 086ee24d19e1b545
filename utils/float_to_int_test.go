// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0, want: 0},
		{name: "full scale positive", input: 1, want: math.MaxInt16},
		{name: "full scale negative", input: -1, want: math.MinInt16},
		{name: "half positive", input: 0.5, want: 16383},
		{name: "half negative", input: -0.5, want: -16384},
		{name: "quarter positive", input: 0.25, want: 8191},
		{name: "quarter negative", input: -0.25, want: -8192},
		{name: "one lsb negative", input: -1.0 / 32768, want: -1},
		{name: "below one lsb positive", input: 1.0 / 32768, want: 0},
		{name: "clamp over max", input: 1.0001, want: math.MaxInt16},
		{name: "clamp under min", input: -1.0001, want: math.MinInt16},
		{name: "clamp far over", input: 100, want: math.MaxInt16},
		{name: "clamp far under", input: -100, want: math.MinInt16},
		{name: "positive infinity", input: float32(math.Inf(1)), want: math.MaxInt16},
		{name: "negative infinity", input: float32(math.Inf(-1)), want: math.MinInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat64ToInt16_MatchesFloat32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input float64
		want  int16
	}{
		{0, 0},
		{1, math.MaxInt16},
		{-1, math.MinInt16},
		{-0.5, -16384},
		{0.5, 16383},
		{2.5, math.MaxInt16},
		{-7, math.MinInt16},
	}

	for _, tt := range tests {
		if got := Float64ToInt16(tt.input); got != tt.want {
			t.Errorf("Float64ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFloat32ToInt16_Properties(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Float32Range(-2, 2).Draw(t, "a")
		b := rapid.Float32Range(-2, 2).Draw(t, "b")

		ga, gb := Float32ToInt16(a), Float32ToInt16(b)

		if a > 0 && ga < 0 || a < 0 && ga > 0 {
			t.Fatalf("Float32ToInt16(%v) = %d changed sign", a, ga)
		}
		if a <= b && ga > gb {
			t.Fatalf("not monotonic: f(%v) = %d > f(%v) = %d", a, ga, b, gb)
		}
		if g64 := Float64ToInt16(float64(a)); g64 != ga {
			t.Fatalf("Float64ToInt16(%v) = %d, Float32ToInt16 = %d", a, g64, ga)
		}
	})
}

func TestFloat32ToInt16_ZeroAllocs(t *testing.T) {
	allocs := testing.AllocsPerRun(1000, func() {
		_ = Float32ToInt16(0.5)
		_ = Float64ToInt16(-0.5)
	})

	if allocs != 0 {
		t.Errorf("conversions allocated %.0f times, want 0", allocs)
	}
}

func BenchmarkFloat32ToInt16(b *testing.B) {
	b.ReportAllocs()

	in := make([]float32, 2048)
	for i := range in {
		in[i] = float32(math.Sin(float64(i)*0.01)) * 1.2
	}
	out := make([]int16, len(in))

	for b.Loop() {
		for i, v := range in {
			out[i] = Float32ToInt16(v)
		}
	}
}
