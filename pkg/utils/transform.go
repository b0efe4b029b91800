package utils

import (
	"math"

	"github.com/decker502/vthumb/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteTransform 组合精灵一次绘制所用的仿射变换
//
// 变换顺序固定，调换顺序会改变画面：
//  1. 当 topDown 为 false 时，绕包围盒水平中线垂直翻转（自下而上的源数据正立显示）
//  2. 绕包围盒中心旋转 wobbleDegrees 度（顺时针为正）
//  3. 平移到包围盒在目标像素空间中的左上角
//
// 返回的矩阵把精灵局部像素坐标映射到目标像素坐标。
func SpriteTransform(bound types.NormalizedRect, destWidth, destHeight float64, topDown bool, wobbleDegrees float64) ebiten.GeoM {
	width := bound.Width() * destWidth
	height := bound.Height() * destHeight

	var m ebiten.GeoM

	if !topDown {
		m.Translate(0, -height/2)
		m.Scale(1, -1)
		m.Translate(0, height/2)
	}

	if wobbleDegrees != 0 {
		m.Translate(-width/2, -height/2)
		m.Rotate(wobbleDegrees * math.Pi / 180)
		m.Translate(width/2, height/2)
	}

	m.Translate(bound.Left*destWidth, bound.Top*destHeight)
	return m
}

// InvertPoint 用 m 的逆矩阵把目标空间中的点映射回局部空间
//
// m 不可逆（奇异矩阵）时返回 ok=false，调用者应视为"未命中"。
func InvertPoint(m ebiten.GeoM, x, y float64) (lx, ly float64, ok bool) {
	if !m.IsInvertible() {
		return 0, 0, false
	}
	m.Invert()
	lx, ly = m.Apply(x, y)
	return lx, ly, true
}
