package app

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/decker502/vthumb/internal/framesource"
	"github.com/decker502/vthumb/pkg/export"
	"github.com/decker502/vthumb/pkg/types"
)

// BatchConfig 无界面批量导出的参数
type BatchConfig struct {
	Source     string         // 视频/图片/目录
	OutputBase string         // 输出文件前缀，文件名为 <base>_<i>
	Count      int            // 抽取帧数
	Size       int            // 正方形输出边长
	Rotation   types.Rotation // 覆盖所有帧的旋转
	Options    export.Options // 编码选项
	Workers    int            // 并发数
}

// RunBatch 从源抽取帧并逐帧导出，不创建窗口
//
// 返回：
//   - []string: 写出的文件
//   - error: 抽帧失败，或部分文件导出失败（errors.Join）
func RunBatch(ctx context.Context, cfg BatchConfig) ([]string, error) {
	if cfg.Count <= 0 {
		return nil, fmt.Errorf("failed to run batch: frame count %d: %w", cfg.Count, framesource.ErrNoFrames)
	}
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("failed to run batch: size %d: %w", cfg.Size, export.ErrInvalidSize)
	}

	exporter, err := export.NewExporter(cfg.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to run batch: %w", err)
	}

	src, err := framesource.Open(cfg.Source, framesource.Options{Rotation: cfg.Rotation})
	if err != nil {
		return nil, err
	}
	frames, err := src.Frames(ctx, cfg.Count)
	if err != nil {
		return nil, fmt.Errorf("failed to read frames from %s: %w", cfg.Source, err)
	}
	log.Printf("[Batch] %d frames from %s", len(frames), cfg.Source)

	items := make([]export.Item, len(frames))
	for i, f := range frames {
		items[i] = export.Item{Bitmap: f.Bitmap, Crop: f.Format.Picture, Rotation: f.Format.Rotation}
	}
	return exporter.Batch(ctx, items, cfg.OutputBase, image.Pt(cfg.Size, cfg.Size), cfg.Workers)
}
