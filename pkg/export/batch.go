package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/decker502/vthumb/pkg/types"
	"golang.org/x/sync/errgroup"
)

// Item 一个待导出的位图
type Item struct {
	Bitmap   image.Image
	Crop     image.Rectangle
	Rotation types.Rotation
}

// OutputPath 返回第 index 个输出文件的路径：<base>_<index>，不追加扩展名
func OutputPath(base string, index int) string {
	return fmt.Sprintf("%s_%d", base, index)
}

// Batch 批量导出，第 i 项写入 OutputPath(base, i)
//
// 参数：
//   - ctx: 取消后尚未开始的项直接记为失败
//   - items: 待导出的位图
//   - base: 输出路径前缀
//   - destSize: 每个输出文件的尺寸
//   - workers: 并发数，<= 1 时顺序执行
//
// 返回：
//   - []string: 成功写出的文件路径（按 items 顺序）
//   - error: 所有失败项的错误（errors.Join），单项失败不会中止其它项
func (e *Exporter) Batch(ctx context.Context, items []Item, base string, destSize image.Point, workers int) ([]string, error) {
	if workers < 1 {
		workers = 1
	}

	errs := make([]error, len(items))
	var g errgroup.Group
	g.SetLimit(workers)

	for i, item := range items {
		g.Go(func() error {
			path := OutputPath(base, i)
			if err := ctx.Err(); err != nil {
				errs[i] = fmt.Errorf("failed to export %s: %w", path, err)
				return nil
			}
			if err := e.Export(item.Bitmap, item.Crop, item.Rotation, path, destSize); err != nil {
				errs[i] = fmt.Errorf("failed to export %s: %w", path, err)
				log.Printf("[Export] ✗ %s: %v", path, err)
				return nil
			}
			log.Printf("[Export] ✓ %s (%dx%d)", path, destSize.X, destSize.Y)
			return nil
		})
	}
	_ = g.Wait()

	written := make([]string, 0, len(items))
	for i := range items {
		if errs[i] == nil {
			written = append(written, OutputPath(base, i))
		}
	}
	return written, errors.Join(errs...)
}
