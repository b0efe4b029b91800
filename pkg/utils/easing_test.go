package utils

import (
	"math"
	"testing"

	"github.com/decker502/vthumb/pkg/types"
)

// TestLerp 测试线性插值函数
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a, b, t  float64
		expected float64
	}{
		{"起点", 10, 20, 0.0, 10},
		{"中点", 10, 20, 0.5, 15},
		{"终点", 10, 20, 1.0, 20},
		{"负方向", 20, 10, 0.25, 17.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

// TestLerpRect 测试矩形线性插值
func TestLerpRect(t *testing.T) {
	start := types.Rect(0.05, 0.0, 0.2, 0.25)
	end := types.Rect(0.25, 0.05, 0.95, 0.95)
	delta := end.Sub(start)

	t.Run("起点", func(t *testing.T) {
		if got := LerpRect(start, delta, 0); got != start {
			t.Errorf("LerpRect(t=0) = %+v, 期望 %+v", got, start)
		}
	})

	t.Run("中点", func(t *testing.T) {
		got := LerpRect(start, delta, 0.5)
		want := types.Rect(0.15, 0.025, 0.575, 0.6)
		if !rectNear(got, want, 1e-9) {
			t.Errorf("LerpRect(t=0.5) = %+v, 期望 %+v", got, want)
		}
	})

	t.Run("终点与逐分量中点一致", func(t *testing.T) {
		for _, p := range []float64{0.1, 0.3, 0.7, 0.9} {
			got := LerpRect(start, delta, p)
			if math.Abs(got.Left-Lerp(start.Left, end.Left, p)) > 1e-9 ||
				math.Abs(got.Bottom-Lerp(start.Bottom, end.Bottom, p)) > 1e-9 {
				t.Errorf("LerpRect(t=%v) = %+v 与 Lerp 逐分量结果不一致", p, got)
			}
		}
	})
}

func rectNear(a, b types.NormalizedRect, eps float64) bool {
	return math.Abs(a.Left-b.Left) <= eps &&
		math.Abs(a.Top-b.Top) <= eps &&
		math.Abs(a.Right-b.Right) <= eps &&
		math.Abs(a.Bottom-b.Bottom) <= eps
}
