package utils

import (
	"image"
	"image/color"

	"github.com/decker502/vthumb/pkg/types"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// subImager 是支持零拷贝子图的图像（*image.RGBA、*image.NRGBA、*image.YCbCr 等）
type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// CropImage 从源图像中截取子区域
// 区域会先与源图像边界求交，因此只会缩小，不会放大。
//
// 参数：
//   - src: 源图像
//   - rect: 需要截取的矩形（源像素坐标）
//
// 返回：
//   - 截取后的图像；源图像支持 SubImage 时与源共享像素内存，否则复制到新的 RGBA 图像
//   - 源为 nil 或交集为空时返回 nil
func CropImage(src image.Image, rect image.Rectangle) image.Image {
	if src == nil {
		return nil
	}

	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil
	}

	if s, ok := src.(subImager); ok {
		return s.SubImage(rect)
	}

	dst := image.NewRGBA(rect)
	draw.Copy(dst, rect.Min, src, rect, draw.Src, nil)
	return dst
}

// CopyRegion 把源图像的一个区域复制到独立的 NRGBA 图像中（原点为 0,0）
// 用于让每个精灵独占自己的位图，而不是与图集共享像素内存
func CopyRegion(src image.Image, rect image.Rectangle) *image.NRGBA {
	rect = rect.Intersect(src.Bounds())
	dst := image.NewNRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Copy(dst, image.Point{}, src, rect, draw.Src, nil)
	return dst
}

// SquareRegion 返回以 r 左上角为锚点、边长为 min(宽, 高) 的正方形
//
// 注意：锚点在左上角而非中心，非正方形源的右侧/下方内容会被丢弃。
func SquareRegion(r image.Rectangle) image.Rectangle {
	side := r.Dx()
	if r.Dy() < side {
		side = r.Dy()
	}
	return image.Rectangle{Min: r.Min, Max: r.Min.Add(image.Pt(side, side))}
}

// ScaleImage 用给定插值核把 src 重采样到 width×height，并合成到不透明背景上
//
// background 为 nil 时保留透明度（目标初始为全透明）。
func ScaleImage(src image.Image, width, height int, kernel draw.Interpolator, background color.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if background != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	}
	kernel.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// RotateImage 把图像顺时针旋转 90/180/270 度
//
// 使用最近邻仿射变换，90° 整数倍时是精确的像素置换，不产生插值误差。
// Rotation0 时原样返回 src。
func RotateImage(src image.Image, rotation types.Rotation) image.Image {
	if rotation == types.Rotation0 {
		return src
	}

	sb := src.Bounds()
	w, h := float64(sb.Dx()), float64(sb.Dy())
	x0, y0 := float64(sb.Min.X), float64(sb.Min.Y)

	// m 把源坐标 (sx, sy) 映射到目标坐标
	var m f64.Aff3
	var dst *image.RGBA
	switch rotation {
	case types.Rotation90:
		m = f64.Aff3{0, -1, y0 + h, 1, 0, -x0}
		dst = image.NewRGBA(image.Rect(0, 0, sb.Dy(), sb.Dx()))
	case types.Rotation180:
		m = f64.Aff3{-1, 0, x0 + w, 0, -1, y0 + h}
		dst = image.NewRGBA(image.Rect(0, 0, sb.Dx(), sb.Dy()))
	case types.Rotation270:
		m = f64.Aff3{0, 1, -y0, -1, 0, x0 + w}
		dst = image.NewRGBA(image.Rect(0, 0, sb.Dy(), sb.Dx()))
	default:
		return src
	}

	draw.NearestNeighbor.Transform(dst, m, src, sb, draw.Src, nil)
	return dst
}
