// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
	}{
		{name: "start returns y1", y0: 0, y1: 1, y2: 2, y3: 3, x: 0, want: 1},
		{name: "end returns y2", y0: 0, y1: 1, y2: 2, y3: 3, x: 1, want: 2},
		{name: "linear data stays linear", y0: 1, y1: 2, y2: 3, y3: 4, x: 0.25, want: 2.25},
		{name: "flat data stays flat", y0: 0.5, y1: 0.5, y2: 0.5, y3: 0.5, x: 0.7, want: 0.5},
		// hermite: h00*1 + h10*m1 + h01*0 + h11*m2 with m1=-0.5, m2=-0.5 at x=0.5
		{name: "hermite form", y0: 1, y1: 1, y2: 0, y3: 0, x: 0.5, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("CubicInterpolate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCubicInterpolateMatchesHermite(t *testing.T) {
	t.Parallel()

	p0, p1, p2, p3 := float32(0.2), float32(0.9), float32(-0.4), float32(0.1)
	for i := range 11 {
		x := float32(i) / 10
		m1 := (p2 - p0) / 2
		m2 := (p3 - p1) / 2
		x2, x3 := x*x, x*x*x
		want := (2*x3-3*x2+1)*p1 + (x3-2*x2+x)*m1 + (-2*x3+3*x2)*p2 + (x3-x2)*m2

		got := CubicInterpolate(p0, p1, p2, p3, x)
		if math.Abs(float64(got-want)) > 1e-5 {
			t.Errorf("x=%v: CubicInterpolate() = %v, want %v", x, got, want)
		}
	}
}

func TestLinearInterpolate(t *testing.T) {
	t.Parallel()

	if got := LinearInterpolate(1, 3, 0.5); got != 2 {
		t.Errorf("LinearInterpolate(1, 3, 0.5) = %v, want 2", got)
	}
	if got := LinearInterpolate(-1, 1, 0); got != -1 {
		t.Errorf("LinearInterpolate(-1, 1, 0) = %v, want -1", got)
	}
}

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{"zero", 0, 0},
		{"max positive", 1, math.MaxInt16},
		{"max negative", -1, -math.MaxInt16},
		{"half", 0.5, 16383},
		{"clipped positive", 2.5, math.MaxInt16},
		{"clipped negative", -7, -math.MaxInt16},
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

func TestAppendPCM16LE(t *testing.T) {
	t.Parallel()

	buf := AppendPCM16LE(nil, []float32{0, 1, -1})
	if len(buf) != 6 {
		t.Fatalf("len(AppendPCM16LE()) = %d, want 6", len(buf))
	}

	want := []int16{0, math.MaxInt16, -math.MaxInt16}
	for i, w := range want {
		got := int16(binary.LittleEndian.Uint16(buf[i*2:]))
		if got != w {
			t.Errorf("sample %d = %d, want %d", i, got, w)
		}
	}

	// reuse keeps the backing array
	again := AppendPCM16LE(buf[:0], []float32{0.5})
	if &again[0] != &buf[0] {
		t.Error("AppendPCM16LE() reallocated a buffer with enough capacity")
	}
}

func TestIntToFloat32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    int
		bitDepth int
		want     float32
	}{
		{"8-bit min", -128, 8, -1},
		{"16-bit half", 16384, 16, 0.5},
		{"24-bit min", -8388608, 24, -1},
		{"32-bit quarter", 1 << 29, 32, 0.25},
		{"unknown depth as 16", -32768, 12, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IntToFloat32(tt.value, tt.bitDepth); got != tt.want {
				t.Errorf("IntToFloat32(%d, %d) = %v, want %v", tt.value, tt.bitDepth, got, tt.want)
			}
		})
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	var result float32

	b.ReportAllocs()

	for b.Loop() {
		result = CubicInterpolate(0.5, 1.0, 0.8, 0.3, 0.5)
	}

	_ = result
}
