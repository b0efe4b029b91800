// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// NormalizedRect 表示一个由四个浮点数描述的矩形
//
// 用作归一化矩形时，坐标相对于目标表面尺寸：0.0/1.0 对应目标的边缘。
// 同一类型也用于精灵局部像素空间中的浮点矩形（如信箱适配矩形）。
//
// 约定 Right >= Left、Bottom >= Top，但不强制；退化矩形只会渲染为空或翻转的内容。
type NormalizedRect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Rect 按 left, top, right, bottom 顺序构造矩形
func Rect(left, top, right, bottom float64) NormalizedRect {
	return NormalizedRect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width 返回矩形宽度（可能为负）
func (r NormalizedRect) Width() float64 {
	return r.Right - r.Left
}

// Height 返回矩形高度（可能为负）
func (r NormalizedRect) Height() float64 {
	return r.Bottom - r.Top
}

// Add 逐分量相加
func (r NormalizedRect) Add(o NormalizedRect) NormalizedRect {
	return NormalizedRect{
		Left:   r.Left + o.Left,
		Top:    r.Top + o.Top,
		Right:  r.Right + o.Right,
		Bottom: r.Bottom + o.Bottom,
	}
}

// Sub 逐分量相减
func (r NormalizedRect) Sub(o NormalizedRect) NormalizedRect {
	return NormalizedRect{
		Left:   r.Left - o.Left,
		Top:    r.Top - o.Top,
		Right:  r.Right - o.Right,
		Bottom: r.Bottom - o.Bottom,
	}
}

// Scale 逐分量乘以系数
func (r NormalizedRect) Scale(k float64) NormalizedRect {
	return NormalizedRect{
		Left:   r.Left * k,
		Top:    r.Top * k,
		Right:  r.Right * k,
		Bottom: r.Bottom * k,
	}
}

// Contains 判断点是否落在矩形内（包含边界）
func (r NormalizedRect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// IsZero 判断是否为全零矩形
func (r NormalizedRect) IsZero() bool {
	return r == NormalizedRect{}
}

// Center 返回矩形中心点
func (r NormalizedRect) Center() (float64, float64) {
	return (r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2
}

// AspectRatio 描述位图原始宽高比例，只关心比例，不关心绝对像素
type AspectRatio struct {
	Width  float64
	Height float64
}
