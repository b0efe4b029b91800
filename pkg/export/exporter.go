// Package export 把精灵位图导出为静态图片文件
//
// 导出流程固定为：裁剪 → 缩放 → 旋转（可选）→ 编码。
// 每次导出都是无状态的，不读取也不修改任何精灵的动画状态，
// 因此不同位图可以并发导出（见 Batch）。
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/decker502/vthumb/pkg/types"
	"github.com/decker502/vthumb/pkg/utils"
	"golang.org/x/image/draw"
)

var (
	// ErrInvalidSize 目标尺寸不是正数
	ErrInvalidSize = errors.New("invalid destination size")
	// ErrEmptyRegion 裁剪区域与位图没有交集
	ErrEmptyRegion = errors.New("empty clip region")
	// ErrNilBitmap 没有可导出的位图
	ErrNilBitmap = errors.New("nil bitmap")
	// ErrUnknownFormat 不支持的编码格式或插值核
	ErrUnknownFormat = errors.New("unknown format")
	// ErrInvalidRotation 旋转角度不是 0/90/180/270
	ErrInvalidRotation = errors.New("invalid rotation")
)

// Format 输出编码格式
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

// ParseFormat 解析格式名称（不区分大小写，"jpg" 视为 jpeg）
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// 插值核名称
const (
	FilterCatmullRom     = "catmullrom"
	FilterBiLinear       = "bilinear"
	FilterApproxBiLinear = "approxbilinear"
	FilterNearest        = "nearest"
)

// KernelByName 返回缩放阶段使用的插值核
func KernelByName(name string) (draw.Interpolator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FilterCatmullRom, "":
		return draw.CatmullRom, nil
	case FilterBiLinear:
		return draw.BiLinear, nil
	case FilterApproxBiLinear:
		return draw.ApproxBiLinear, nil
	case FilterNearest, "nearestneighbor":
		return draw.NearestNeighbor, nil
	default:
		return nil, fmt.Errorf("%w: filter %q", ErrUnknownFormat, name)
	}
}

// Options 导出选项
type Options struct {
	Format     Format      // 编码格式，默认 jpeg
	Quality    int         // JPEG 质量 1~100，默认 90
	Filter     string      // 缩放插值核名称，默认 catmullrom
	Background color.Color // 缩放前铺底的颜色，nil 表示保留透明度
}

// DefaultOptions 返回默认导出选项：白底 JPEG，质量 90，CatmullRom 缩放
func DefaultOptions() Options {
	return Options{
		Format:     FormatJPEG,
		Quality:    90,
		Filter:     FilterCatmullRom,
		Background: color.White,
	}
}

// Exporter 按固定选项执行导出
type Exporter struct {
	opts   Options
	kernel draw.Interpolator
}

// NewExporter 创建导出器
//
// 参数：
//   - opts: 导出选项，零值字段使用默认值
//
// 返回：
//   - *Exporter: 导出器实例
//   - error: 格式或插值核无效时返回 ErrUnknownFormat
func NewExporter(opts Options) (*Exporter, error) {
	if opts.Format == "" {
		opts.Format = FormatJPEG
	}
	if _, err := ParseFormat(string(opts.Format)); err != nil {
		return nil, err
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultOptions().Quality
	}

	kernel, err := KernelByName(opts.Filter)
	if err != nil {
		return nil, err
	}

	return &Exporter{opts: opts, kernel: kernel}, nil
}

// Options 返回导出器使用的选项
func (e *Exporter) Options() Options {
	return e.opts
}

var defaultExporter, _ = NewExporter(DefaultOptions())

// Export 使用默认选项导出位图，见 (*Exporter).Export
func Export(bitmap image.Image, cropRect image.Rectangle, rotation types.Rotation, destPath string, destSize image.Point) error {
	return defaultExporter.Export(bitmap, cropRect, rotation, destPath, destSize)
}

// Export 把位图导出为 destPath 处的图片文件
//
// 参数：
//   - bitmap: 源位图
//   - cropRect: 位图中要导出的区域，为空时使用整幅位图
//   - rotation: 缩放后顺时针旋转的角度
//   - destPath: 输出文件路径，已存在时覆盖
//   - destSize: 输出尺寸（旋转前）
//
// 编码先写入内存，成功后一次性写文件；任何阶段失败都不会留下本次调用写出的文件。
func (e *Exporter) Export(bitmap image.Image, cropRect image.Rectangle, rotation types.Rotation, destPath string, destSize image.Point) error {
	img, err := e.Render(bitmap, cropRect, rotation, destSize)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := e.Encode(&buf, img); err != nil {
		return err
	}

	if err := os.WriteFile(destPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	return nil
}

// Render 执行裁剪、缩放、旋转三个阶段，返回待编码的图像
func (e *Exporter) Render(bitmap image.Image, cropRect image.Rectangle, rotation types.Rotation, destSize image.Point) (image.Image, error) {
	if bitmap == nil {
		return nil, fmt.Errorf("failed to clip: %w", ErrNilBitmap)
	}
	if destSize.X <= 0 || destSize.Y <= 0 {
		return nil, fmt.Errorf("failed to scale to %dx%d: %w", destSize.X, destSize.Y, ErrInvalidSize)
	}
	if !rotation.IsValid() {
		return nil, fmt.Errorf("failed to rotate by %d: %w", int(rotation), ErrInvalidRotation)
	}

	// 裁剪
	region, err := ClipRegion(bitmap.Bounds(), cropRect, destSize)
	if err != nil {
		return nil, err
	}
	clipped := utils.CropImage(bitmap, region)

	// 缩放
	scaled := utils.ScaleImage(clipped, destSize.X, destSize.Y, e.kernel, e.opts.Background)

	// 旋转
	return utils.RotateImage(scaled, rotation), nil
}

// ClipRegion 计算裁剪阶段的源区域
//
// 区域为 cropRect 与位图边界的交集（cropRect 为空时取整幅位图）。
// 输出为正方形时，再缩小为以区域左上角为锚点、边长 min(宽, 高) 的正方形。
// 结果永远不会超出位图边界。
func ClipRegion(bounds, cropRect image.Rectangle, destSize image.Point) (image.Rectangle, error) {
	region := bounds
	if !cropRect.Empty() {
		region = cropRect.Intersect(bounds)
	}
	if region.Empty() {
		return image.Rectangle{}, fmt.Errorf("failed to clip %v to %v: %w", cropRect, bounds, ErrEmptyRegion)
	}

	if destSize.X == destSize.Y {
		region = utils.SquareRegion(region)
	}
	return region, nil
}

// Encode 按导出器的格式编码图像
func (e *Exporter) Encode(w io.Writer, img image.Image) error {
	switch e.opts.Format {
	case FormatJPEG:
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: e.opts.Quality}); err != nil {
			return fmt.Errorf("failed to encode jpeg: %w", err)
		}
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode png: %w", err)
		}
	default:
		return fmt.Errorf("failed to encode: %w: %q", ErrUnknownFormat, e.opts.Format)
	}
	return nil
}
