// vthumb 视频缩略图查看器
//
// Usage:
//
//	vthumb [flags] [source]
//	vthumb [flags] <source> <targetBase> <numFrames> <baseSide>
//
// 第一种形式打开窗口，可选地从视频/图片/目录加载帧；
// 第二种形式不打开窗口，抽取 numFrames 帧并导出为 baseSide×baseSide 的
// 缩略图 <targetBase>_0 … <targetBase>_<numFrames-1>。
//
// Flags:
//
//	--config <path>   配置文件（默认使用内置配置）
//	--rotate <deg>    导出时顺时针旋转，90 的整数倍
//	--size <px>       查看器导出边长
//	--format <name>   查看器导出格式 jpeg|png
//	--quality <n>     查看器导出 JPEG 质量
//	--out <base>      查看器导出文件前缀
//	--verbose         详细日志
//
// Controls:
//
//	Mouse Click  - 选中缩略图
//	S            - 导出选中的缩略图（没有选中时导出全部）
//	U            - 取消选中
//	Escape       - 退出
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/decker502/vthumb/pkg/app"
	"github.com/decker502/vthumb/pkg/config"
	"github.com/decker502/vthumb/pkg/game"
	"github.com/decker502/vthumb/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
)

var (
	configFlag  = flag.String("config", "", "配置文件路径（为空使用内置配置）")
	rotateFlag  = flag.Int("rotate", 0, "导出旋转角度（90 的整数倍）")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")

	// 查看器导出设置覆盖
	sizeFlag    = flag.Int("size", 0, "查看器导出边长（0 使用已保存设置或配置文件）")
	formatFlag  = flag.String("format", "", "查看器导出格式 jpeg|png")
	qualityFlag = flag.Int("quality", 0, "查看器导出 JPEG 质量 1~100")
	outFlag     = flag.String("out", "", "查看器导出文件前缀，文件名为 <out>_<i>")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [flags] [source]\n  %s [flags] <source> <targetBase> <numFrames> <baseSide>\n\nFlags:\n", os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verboseFlag {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	rotation, err := types.RotationFromDegrees(*rotateFlag)
	if err != nil {
		log.Fatalf("参数错误: %v", err)
	}

	args := flag.Args()
	switch len(args) {
	case 4:
		os.Exit(runBatch(cfg, args, rotation))
	case 0, 1:
		runViewer(cfg, args, rotation)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// loadConfig 读取配置文件；未指定路径时解析内置配置
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Parse(defaultConfigYAML)
	}
	return config.Load(path)
}

// runBatch 无界面批量导出，返回进程退出码
func runBatch(cfg *config.Config, args []string, rotation types.Rotation) int {
	numFrames, err := strconv.Atoi(args[2])
	if err != nil || numFrames <= 0 {
		fmt.Fprintf(os.Stderr, "❌ numFrames 必须是正整数: %q\n", args[2])
		return 2
	}
	baseSide, err := strconv.Atoi(args[3])
	if err != nil || baseSide <= 0 {
		fmt.Fprintf(os.Stderr, "❌ baseSide 必须是正整数: %q\n", args[3])
		return 2
	}

	opts, err := cfg.Export.Options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return 1
	}

	written, err := app.RunBatch(context.Background(), app.BatchConfig{
		Source:     args[0],
		OutputBase: args[1],
		Count:      numFrames,
		Size:       baseSide,
		Rotation:   rotation,
		Options:    opts,
		Workers:    cfg.Export.Workers,
	})
	for _, path := range written {
		fmt.Printf("✓ %s\n", path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return 1
	}
	return 0
}

// runViewer 打开查看器窗口
func runViewer(cfg *config.Config, args []string, rotation types.Rotation) {
	gdataManager, err := gdata.Open(gdata.Config{AppName: "vthumb"})
	if err != nil {
		log.Printf("[Main] Warning: gdata unavailable, settings will not persist: %v", err)
		gdataManager = nil
	}
	settingsManager, _ := game.NewSettingsManager(gdataManager)

	source := ""
	if len(args) == 1 {
		source = args[0]
	}

	application, err := app.NewApp(app.Config{
		Verbose:         *verboseFlag,
		Settings:        cfg,
		SettingsManager: settingsManager,
		Source:          source,
		Rotation:        rotation,
		ExportSize:      *sizeFlag,
		ExportFormat:    *formatFlag,
		ExportQuality:   *qualityFlag,
		OutputBase:      *outFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Playback.TPS)

	if err := ebiten.RunGame(application); err != nil {
		log.Fatal(err)
	}

	if err := settingsManager.Save(); err != nil {
		log.Printf("[Main] Warning: %v", err)
	}
}
