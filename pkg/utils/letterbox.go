// Package utils 提供精灵几何与图像处理中常用的工具函数
//
// letterbox.go 负责信箱（letterbox）适配计算：在任意目标矩形中放置
// 一个固定宽高比的最大居中矩形。
//
// # 坐标系统概述
//
//   - **归一化坐标**：相对于目标表面尺寸，0.0/1.0 为表面边缘（精灵包围盒）
//   - **目标像素坐标**：相对于目标表面左上角（窗口/屏幕）
//   - **精灵局部坐标**：以包围盒左上角为原点的像素坐标（适配矩形、命中测试）
package utils

import "github.com/decker502/vthumb/pkg/types"

// LetterboxFit 计算给定宽高比在 dest 中能容纳的最大居中矩形
//
// 先假设高度受限并推导宽度；若宽度超出 dest，则改为宽度受限并推导高度。
// 两个方向都用 (目标尺寸 - 适配尺寸) / 2 居中。
//
// 宽高比任一维为 0 时返回全零矩形（已定义的退化情况，不是错误）。
func LetterboxFit(aspect types.AspectRatio, dest types.NormalizedRect) types.NormalizedRect {
	if aspect.Width == 0 || aspect.Height == 0 {
		return types.NormalizedRect{}
	}

	destWidth := dest.Width()
	destHeight := dest.Height()

	// 第一次尝试：左右留边（pillarbox）
	width := destHeight * aspect.Width / aspect.Height
	height := destHeight
	if width > destWidth {
		// 上下留边
		width = destWidth
		height = destWidth * aspect.Height / aspect.Width
	}

	left := dest.Left + (destWidth-width)/2
	top := dest.Top + (destHeight-height)/2

	return types.NormalizedRect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// LocalPixelRect 把归一化包围盒换算成以自身左上角为原点的像素矩形
//
// 返回 {0, 0, Width(bound)*destWidth, Height(bound)*destHeight}。
// 目标尺寸每次调用时传入，不假定其在两次调用之间保持不变。
func LocalPixelRect(bound types.NormalizedRect, destWidth, destHeight float64) types.NormalizedRect {
	return types.NormalizedRect{
		Right:  bound.Width() * destWidth,
		Bottom: bound.Height() * destHeight,
	}
}
