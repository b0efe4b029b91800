package framesource

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/askeladdk/aseprite"
	"github.com/decker502/vthumb/pkg/types"
	"github.com/decker502/vthumb/pkg/utils"
)

// AsepriteSource Aseprite 动画文件
// 每一帧从图集中复制为独立的位图
type AsepriteSource struct {
	Path    string
	Options Options
}

// Frames 返回动画的前 n 帧
func (s *AsepriteSource) Frames(ctx context.Context, n int) ([]types.Frame, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.Path, err)
	}
	defer f.Close()

	img, err := aseprite.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode aseprite %s: %w", s.Path, err)
	}
	spr, ok := img.(*aseprite.Aseprite)
	if !ok {
		return nil, fmt.Errorf("failed to decode aseprite %s: unexpected %T", s.Path, img)
	}

	bounds := make([]image.Rectangle, len(spr.Frames))
	for i, frame := range spr.Frames {
		bounds[i] = frame.Bounds
	}
	return atlasFrames(ctx, spr.Image, bounds, n, s.Options)
}

// atlasFrames 按帧边界从图集中复制出前 n 帧
func atlasFrames(ctx context.Context, atlas image.Image, bounds []image.Rectangle, n int, opts Options) ([]types.Frame, error) {
	var frames []types.Frame
	for _, r := range bounds {
		if len(frames) >= n {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r.Intersect(atlas.Bounds()).Empty() {
			continue
		}
		frames = append(frames, newFrame(utils.CopyRegion(atlas, r), opts))
	}

	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: atlas has no frames", ErrNoFrames)
	}
	return frames, nil
}
