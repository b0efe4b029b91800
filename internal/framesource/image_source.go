package framesource

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/decker502/vthumb/pkg/types"
)

// ImageSource 单张静态图片，总是只有一帧
type ImageSource struct {
	Path    string
	Options Options
}

// Frames 解码图片并返回一帧
func (s *ImageSource) Frames(ctx context.Context, n int) ([]types.Frame, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := decodeFile(s.Path)
	if err != nil {
		return nil, err
	}
	return []types.Frame{newFrame(img, s.Options)}, nil
}

// DirSource 目录中的图片文件，按文件名字典序取前 n 个
type DirSource struct {
	Dir     string
	Options Options
}

// Frames 解码目录中的前 n 个图片文件
// 无法解码的文件被跳过并记录日志
func (s *DirSource) Frames(ctx context.Context, n int) ([]types.Frame, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dir %s: %w", s.Dir, err)
	}

	var frames []types.Frame
	for _, entry := range entries {
		if len(frames) >= n {
			break
		}
		if entry.IsDir() || !IsImageFile(entry.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := decodeFile(filepath.Join(s.Dir, entry.Name()))
		if err != nil {
			log.Printf("[FrameSource] Warning: skipping %s: %v", entry.Name(), err)
			continue
		}
		frames = append(frames, newFrame(img, s.Options))
	}

	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: no images in %s", ErrNoFrames, s.Dir)
	}
	log.Printf("[FrameSource] Loaded %d images from %s", len(frames), s.Dir)
	return frames, nil
}
