package utils

import "github.com/decker502/vthumb/pkg/types"

// 插值函数
//
// 精灵包围盒动画使用线性插值（匀速运动），进度值 t ∈ [0, 1]。
// t 超出范围时不做钳制，由调用者保证。

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpRect 以起点和位移向量做逐分量线性插值
//
// 返回 start + delta*t。与 Lerp 不同，这里直接接收位移向量，
// 这样动画终点可以精确地写成 start + delta（t=1），不会因 (b-a) 的重算引入误差。
func LerpRect(start, delta types.NormalizedRect, t float64) types.NormalizedRect {
	return start.Add(delta.Scale(t))
}
