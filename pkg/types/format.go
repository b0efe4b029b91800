package types

import (
	"fmt"
	"image"
)

// Rotation 定义导出时需要施加的顺时针旋转角度
// 来源于视频流的方向元数据，只在导出流水线中使用，屏幕渲染不使用
type Rotation int

const (
	// Rotation0 不旋转
	Rotation0 Rotation = 0
	// Rotation90 顺时针旋转 90°
	Rotation90 Rotation = 90
	// Rotation180 旋转 180°
	Rotation180 Rotation = 180
	// Rotation270 顺时针旋转 270°（即逆时针 90°）
	Rotation270 Rotation = 270
)

// RotationFromDegrees 把任意 90 的整数倍角度归一化为 Rotation
//
// 例如 360 → Rotation0，-90 → Rotation270。
// 非 90 整数倍的角度返回错误。
func RotationFromDegrees(deg int) (Rotation, error) {
	if deg%90 != 0 {
		return Rotation0, fmt.Errorf("rotation must be a multiple of 90 degrees, got %d", deg)
	}
	norm := ((deg % 360) + 360) % 360
	return Rotation(norm), nil
}

// String 返回旋转角度的字符串表示
func (r Rotation) String() string {
	switch r {
	case Rotation0:
		return "0°"
	case Rotation90:
		return "90°"
	case Rotation180:
		return "180°"
	case Rotation270:
		return "270°"
	default:
		return fmt.Sprintf("invalid(%d)", int(r))
	}
}

// IsValid 判断是否为四个合法角度之一
func (r Rotation) IsValid() bool {
	switch r {
	case Rotation0, Rotation90, Rotation180, Rotation270:
		return true
	}
	return false
}

// FormatInfo 是位图提供方随位图一起交付的格式描述
type FormatInfo struct {
	// TopDown 为 true 表示像素行自上而下存储；false 时渲染需要垂直翻转
	TopDown bool

	// Rotation 导出时施加的旋转
	Rotation Rotation

	// Picture 位图中可见画面的像素矩形（可能小于底层表面）
	// 为空时使用整张位图
	Picture image.Rectangle
}
