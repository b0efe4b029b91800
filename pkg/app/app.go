// Package app 提供缩略图查看器的核心包装器
//
// 该包把配置、动画时钟、精灵集合和导出流水线组装成一个 ebiten.Game，
// main.go 只负责解析命令行参数和启动窗口。
package app

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"

	"github.com/decker502/vthumb/internal/framesource"
	"github.com/decker502/vthumb/pkg/config"
	"github.com/decker502/vthumb/pkg/export"
	"github.com/decker502/vthumb/pkg/game"
	"github.com/decker502/vthumb/pkg/types"
	"github.com/decker502/vthumb/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// BackgroundColor 窗口背景色（DarkSlateGray）
var BackgroundColor = color.RGBA{R: 47, G: 79, B: 79, A: 255}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Settings 配置文件内容，为 nil 时使用默认配置
	Settings *config.Config
	// SettingsManager 持久化的导出设置，为 nil 时仅使用内存设置
	SettingsManager *game.SettingsManager
	// Source 启动时加载的视频/图片/目录，为空则不加载
	Source string
	// Rotation 覆盖所有帧的导出旋转
	Rotation types.Rotation

	// 以下字段覆盖导出设置，零值表示不覆盖
	ExportSize    int
	ExportFormat  string
	ExportQuality int
	OutputBase    string
}

// App 是查看器的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg      *config.Config
	clock    *game.Clock
	gallery  *game.Gallery
	settings *game.SettingsManager
	rotation types.Rotation
	verbose  bool

	// 最近一次 Layout 给出的逻辑屏幕尺寸
	width, height int
}

// NewApp 创建并初始化查看器
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	settingsFile := cfg.Settings
	if settingsFile == nil {
		settingsFile = config.DefaultConfig()
	}
	if err := settingsFile.Validate(); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}

	sm := cfg.SettingsManager
	if sm == nil {
		sm, _ = game.NewSettingsManager(nil)
	}
	applyExportSettings(sm, settingsFile.Export, cfg)

	a := &App{
		cfg:   settingsFile,
		clock: game.NewClock(settingsFile.Playback.TPS),
		gallery: game.NewGallery(game.GalleryConfig{
			SpriteCount:       settingsFile.Layout.SpriteCount,
			SmallSlots:        settingsFile.Layout.SmallSlots,
			Big:               settingsFile.Layout.Big,
			AnimationDuration: settingsFile.Playback.AnimationDuration,
			WobbleAngle:       settingsFile.Wobble.Angle,
			WobbleDecay:       settingsFile.Wobble.Decay,
		}),
		settings: sm,
		rotation: cfg.Rotation,
		verbose:  cfg.Verbose,
		width:    settingsFile.Window.Width,
		height:   settingsFile.Window.Height,
	}
	log.Printf("[App] Gallery initialized with %d sprites", a.gallery.Len())

	if cfg.Source != "" {
		if err := a.LoadSource(context.Background(), cfg.Source); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// applyExportSettings 决定查看器的导出设置
//
// 没有已保存的设置时以配置文件为初始值；命令行覆盖总是优先。
func applyExportSettings(sm *game.SettingsManager, file config.ExportConfig, cfg Config) {
	if !sm.IsPersisted() {
		sm.SetSize(file.Size)
		sm.SetFormat(file.Format)
		if file.Quality > 0 {
			sm.SetQuality(file.Quality)
		}
	}

	sm.SetSize(cfg.ExportSize)
	sm.SetFormat(cfg.ExportFormat)
	if cfg.ExportQuality > 0 {
		sm.SetQuality(cfg.ExportQuality)
	}
	sm.SetOutputBase(cfg.OutputBase)
}

// LoadSource 从源加载帧并放入精灵集合
func (a *App) LoadSource(ctx context.Context, path string) error {
	src, err := framesource.Open(path, framesource.Options{Rotation: a.rotation})
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	frames, err := src.Frames(ctx, a.gallery.Len())
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	a.gallery.Load(frames, a.clock.Now())
	a.settings.SetLastSource(path)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	log.Printf("[App] Loaded %s", path)
	return nil
}

// Update 更新逻辑
// 每个 tick 调用一次
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	a.clock.Tick()
	now := a.clock.Now()

	if clicked, x, y := utils.JustClicked(); clicked {
		// Layout 返回窗口的逻辑尺寸，点击坐标与精灵变换在同一坐标系
		a.gallery.Click(float64(x), float64(y), now)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		a.gallery.UnselectAll()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if _, err := a.Export(context.Background()); err != nil {
			log.Printf("[App] Export failed: %v", err)
		}
	}

	a.gallery.Update(now, float64(a.width), float64(a.height))
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(BackgroundColor)
	a.gallery.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸
// 精灵位置是归一化的，直接使用窗口尺寸即可随窗口缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.width, a.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Export 导出选中的精灵；没有选中时导出所有已加载的精灵
//
// 文件名为 <OutputBase>_<精灵索引>，参数取自持久化的导出设置。
//
// 返回：
//   - []string: 写出的文件
//   - error: 导出失败的错误
func (a *App) Export(ctx context.Context) ([]string, error) {
	s := a.settings.GetSettings()

	opts, err := a.cfg.Export.Options()
	if err != nil {
		return nil, err
	}
	if format, err := export.ParseFormat(s.Format); err == nil {
		opts.Format = format
	}
	opts.Quality = s.Quality

	exporter, err := export.NewExporter(opts)
	if err != nil {
		return nil, err
	}
	size := image.Pt(s.Size, s.Size)

	if sel := a.gallery.Selection(); sel >= 0 {
		sp := a.gallery.Sprite(sel)
		path := export.OutputPath(s.OutputBase, sel)
		if err := exporter.Export(sp.Bitmap(), sp.SourceRect(), sp.Rotation(), path, size); err != nil {
			return nil, err
		}
		log.Printf("[App] ✓ Exported %s", path)
		return []string{path}, nil
	}

	// 已加载的精灵总是从索引 0 开始连续排列
	var items []export.Item
	for i := 0; i < a.gallery.Len(); i++ {
		sp := a.gallery.Sprite(i)
		if sp.Bitmap() == nil {
			break
		}
		items = append(items, export.Item{Bitmap: sp.Bitmap(), Crop: sp.SourceRect(), Rotation: sp.Rotation()})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("failed to export: %w", export.ErrNilBitmap)
	}
	return exporter.Batch(ctx, items, s.OutputBase, size, a.cfg.Export.Workers)
}

// Gallery 返回精灵集合
func (a *App) Gallery() *game.Gallery {
	return a.gallery
}

// Clock 返回动画时钟
func (a *App) Clock() *game.Clock {
	return a.clock
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
