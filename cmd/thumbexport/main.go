// Package main provides a headless thumbnail exporter.
//
// Usage:
//
//	go run ./cmd/thumbexport -source clip.mp4 -out thumbs/clip -n 6 -size 276 [flags]
//
// Flags:
//
//	-source <path>    视频、图片或图片目录
//	-out <base>       输出前缀，文件名为 <base>_<i>
//	-n <count>        抽取帧数
//	-size <px>        正方形缩略图边长
//	-rotate <deg>     顺时针旋转，90 的整数倍
//	-format <name>    jpeg | png
//	-quality <1-100>  JPEG 质量
//	-filter <name>    catmullrom | bilinear | approxbilinear | nearest
//	-workers <n>      并发导出数
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/decker502/vthumb/pkg/app"
	"github.com/decker502/vthumb/pkg/config"
	"github.com/decker502/vthumb/pkg/types"
)

var (
	sourceFlag  = flag.String("source", "", "视频、图片或图片目录")
	outFlag     = flag.String("out", "thumb", "输出前缀")
	countFlag   = flag.Int("n", config.DefaultSpriteCount, "抽取帧数")
	sizeFlag    = flag.Int("size", 0, "缩略图边长（默认取配置）")
	rotateFlag  = flag.Int("rotate", 0, "顺时针旋转角度")
	formatFlag  = flag.String("format", "", "输出格式（默认取配置）")
	qualityFlag = flag.Int("quality", 0, "JPEG 质量（默认取配置）")
	filterFlag  = flag.String("filter", "", "缩放插值核（默认取配置）")
	workersFlag = flag.Int("workers", 0, "并发导出数（默认取配置）")
	configFlag  = flag.String("config", "data/vthumb.yaml", "配置文件路径")
	verboseFlag = flag.Bool("verbose", false, "详细日志")
)

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}
	if *sourceFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 配置加载失败: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(2)
	}

	rotation, err := types.RotationFromDegrees(*rotateFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(2)
	}

	opts, err := cfg.Export.Options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("=== 导出 %d 帧: %s → %s_* (%dx%d) ===\n", *countFlag, *sourceFlag, *outFlag, cfg.Export.Size, cfg.Export.Size)
	written, err := app.RunBatch(ctx, app.BatchConfig{
		Source:     *sourceFlag,
		OutputBase: *outFlag,
		Count:      *countFlag,
		Size:       cfg.Export.Size,
		Rotation:   rotation,
		Options:    opts,
		Workers:    cfg.Export.Workers,
	})
	for _, path := range written {
		fmt.Printf("✓ %s\n", path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 完成，共 %d 个文件\n", len(written))
}

// applyFlags 用命令行参数覆盖配置中的导出设置
func applyFlags(cfg *config.Config) {
	if *sizeFlag > 0 {
		cfg.Export.Size = *sizeFlag
	}
	if *formatFlag != "" {
		cfg.Export.Format = *formatFlag
	}
	if *qualityFlag > 0 {
		cfg.Export.Quality = *qualityFlag
	}
	if *filterFlag != "" {
		cfg.Export.Filter = *filterFlag
	}
	if *workersFlag > 0 {
		cfg.Export.Workers = *workersFlag
	}
}
