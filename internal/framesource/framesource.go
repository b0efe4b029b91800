// Package framesource 为精灵提供位图
//
// 支持静态图片、图片目录、Aseprite 动画以及视频文件。
// 视频帧由外部 ffmpeg 进程抽取，本包从不自行解码视频。
package framesource

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/decker502/vthumb/pkg/types"

	// 注册图片解码器
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNoFrames 源中没有可用的帧
var ErrNoFrames = errors.New("no frames")

// Source 位图提供方
type Source interface {
	// Frames 返回最多 n 帧，n 必须为正数
	Frames(ctx context.Context, n int) ([]types.Frame, error)
}

// Options 打开源时的选项
type Options struct {
	// Rotation 覆盖所有帧的旋转提示（导出时使用）
	Rotation types.Rotation
}

// 支持的静态图片扩展名
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tif":  true,
	".tiff": true,
}

// IsImageFile 判断路径是否为支持的静态图片
func IsImageFile(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// IsAsepriteFile 判断路径是否为 Aseprite 文件
func IsAsepriteFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".aseprite" || ext == ".ase"
}

// Open 根据路径类型打开源
//
// 参数：
//   - path: 目录、图片、Aseprite 文件或视频文件
//   - opts: 选项
//
// 返回：
//   - Source: 目录 → DirSource，图片 → ImageSource，.aseprite/.ase → AsepriteSource，其它 → VideoSource
//   - error: 路径不存在时返回错误
func Open(path string, opts Options) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source %s: %w", path, err)
	}

	switch {
	case info.IsDir():
		return &DirSource{Dir: path, Options: opts}, nil
	case IsAsepriteFile(path):
		return &AsepriteSource{Path: path, Options: opts}, nil
	case IsImageFile(path):
		return &ImageSource{Path: path, Options: opts}, nil
	default:
		return NewVideoSource(path, opts), nil
	}
}

// decodeFile 解码一个图片文件
func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// newFrame 把位图包装成帧：自上而下存储，显示区域为整幅位图
func newFrame(img image.Image, opts Options) types.Frame {
	return types.Frame{
		Bitmap: img,
		Format: types.FormatInfo{
			TopDown:  true,
			Rotation: opts.Rotation,
			Picture:  img.Bounds(),
		},
	}
}

func checkCount(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: requested %d frames", ErrNoFrames, n)
	}
	return nil
}
