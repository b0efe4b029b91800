package app

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/vthumb/pkg/config"
	"github.com/decker502/vthumb/pkg/export"
	"github.com/decker502/vthumb/pkg/game"
	"github.com/decker502/vthumb/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
)

// writeFrames 在临时目录写入 n 张 PNG
func writeFrames(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	for i := 0; i < n; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 64, 36))
		img.Set(0, 0, color.RGBA{uint8(i * 40), 0, 0, 255})
		f, err := os.Create(filepath.Join(dir, string(rune('a'+i))+".png"))
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}
	return dir
}

func newTestApp(t *testing.T, frames int) (*App, string) {
	t.Helper()
	sm, _ := game.NewSettingsManager(nil)
	out := filepath.Join(t.TempDir(), "thumb")

	a, err := NewApp(Config{
		SettingsManager: sm,
		Source:          writeFrames(t, frames),
		Rotation:        types.Rotation90,
		ExportSize:      48,
		OutputBase:      out,
	})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	return a, out
}

// TestNewApp 启动时加载源并选中第一个精灵
func TestNewApp(t *testing.T) {
	a, _ := newTestApp(t, 3)

	g := a.Gallery()
	if g.Len() != 4 {
		t.Errorf("Len() = %d, want 4", g.Len())
	}
	if g.Selection() != 0 {
		t.Errorf("Selection() = %d, want 0", g.Selection())
	}
	if g.Sprite(0).Rotation() != types.Rotation90 {
		t.Errorf("Rotation = %v, want 90", g.Sprite(0).Rotation())
	}
	if a.Clock().TPS() != 30 {
		t.Errorf("TPS = %d, want 30", a.Clock().TPS())
	}
}

// TestNewAppMissingSource 源不存在时返回错误
func TestNewAppMissingSource(t *testing.T) {
	if _, err := NewApp(Config{Source: filepath.Join(t.TempDir(), "missing.mp4")}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("NewApp() error = %v, want ErrNotExist", err)
	}
}

// TestLayoutAndDraw 逻辑尺寸跟随窗口
func TestLayoutAndDraw(t *testing.T) {
	a, _ := newTestApp(t, 2)

	w, h := a.Layout(640, 480)
	if w != 640 || h != 480 {
		t.Errorf("Layout() = %dx%d, want 640x480", w, h)
	}

	screen := ebiten.NewImage(640, 480)
	a.Gallery().Update(1, 640, 480)
	a.Draw(screen)

	// 绘制后选中的精灵可以被命中
	sp := a.Gallery().Sprite(0)
	m, ok := sp.Transform()
	if !ok {
		t.Fatal("Draw() 后精灵应有变换")
	}
	cx, cy := sp.Fill().Center()
	x, y := m.Apply(cx, cy)
	if got := a.Gallery().HitTest(x, y); got != 0 {
		t.Errorf("HitTest(center of sprite 0) = %d, want 0", got)
	}
}

// TestExportSelected 有选中时只导出选中的精灵
func TestExportSelected(t *testing.T) {
	a, out := newTestApp(t, 3)
	a.Gallery().Select(2, 0)

	written, err := a.Export(context.Background())
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	want := export.OutputPath(out, 2)
	if len(written) != 1 || written[0] != want {
		t.Fatalf("written = %v, want [%s]", written, want)
	}

	f, err := os.Open(want)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 48 || cfg.Height != 48 {
		t.Errorf("size = %dx%d, want 48x48", cfg.Width, cfg.Height)
	}
}

// TestExportAll 没有选中时导出所有已加载的精灵
func TestExportAll(t *testing.T) {
	a, out := newTestApp(t, 3)
	a.Gallery().UnselectAll()

	written, err := a.Export(context.Background())
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("written %d files, want 3", len(written))
	}
	for i, path := range written {
		if path != export.OutputPath(out, i) {
			t.Errorf("written[%d] = %s, want %s", i, path, export.OutputPath(out, i))
		}
	}

	// 清空后没有可导出的内容
	a.Gallery().Clear()
	if _, err := a.Export(context.Background()); !errors.Is(err, export.ErrNilBitmap) {
		t.Errorf("Export() on empty gallery error = %v, want ErrNilBitmap", err)
	}
}

// decodeSize 读取图片文件的尺寸和格式
func decodeSize(t *testing.T, path string) (int, int, string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	return cfg.Width, cfg.Height, format
}

// TestExportUsesConfigFile 没有已保存设置时，查看器按配置文件导出
func TestExportUsesConfigFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Export.Size = 64
	cfg.Export.Format = "png"
	out := filepath.Join(t.TempDir(), "cfg")

	a, err := NewApp(Config{
		Settings:   cfg,
		Source:     writeFrames(t, 2),
		OutputBase: out,
	})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}

	written, err := a.Export(context.Background())
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if len(written) != 1 {
		t.Fatalf("written = %v, want 1 file", written)
	}
	w, h, format := decodeSize(t, written[0])
	if w != 64 || h != 64 {
		t.Errorf("size = %dx%d, want 64x64", w, h)
	}
	if format != "png" {
		t.Errorf("format = %s, want png", format)
	}
}

// TestApplyExportSettings 配置文件、已保存设置和命令行覆盖的优先级
func TestApplyExportSettings(t *testing.T) {
	file := config.DefaultConfig().Export
	file.Size = 64
	file.Format = "png"
	file.Quality = 70

	t.Run("未保存时使用配置文件", func(t *testing.T) {
		sm, _ := game.NewSettingsManager(nil)
		applyExportSettings(sm, file, Config{})
		s := sm.GetSettings()
		if s.Size != 64 || s.Format != "png" || s.Quality != 70 {
			t.Errorf("settings = %+v, want 64/png/70", s)
		}
	})

	t.Run("命令行覆盖优先", func(t *testing.T) {
		sm, _ := game.NewSettingsManager(nil)
		applyExportSettings(sm, file, Config{ExportSize: 32, ExportFormat: "jpeg", ExportQuality: 50, OutputBase: "shots/a"})
		s := sm.GetSettings()
		if s.Size != 32 || s.Format != "jpeg" || s.Quality != 50 || s.OutputBase != "shots/a" {
			t.Errorf("settings = %+v, want 32/jpeg/50/shots/a", s)
		}
	})

	t.Run("已保存的设置不被配置文件覆盖", func(t *testing.T) {
		originalHome := os.Getenv("HOME")
		os.Setenv("HOME", t.TempDir())
		t.Cleanup(func() { os.Setenv("HOME", originalHome) })

		gdataManager, err := gdata.Open(gdata.Config{AppName: "test_vthumb_app"})
		if err != nil {
			t.Fatalf("Failed to create gdata manager: %v", err)
		}
		first, _ := game.NewSettingsManager(gdataManager)
		first.SetSize(100)
		if err := first.Save(); err != nil {
			t.Fatalf("Save() error: %v", err)
		}

		sm, _ := game.NewSettingsManager(gdataManager)
		if !sm.IsPersisted() {
			t.Fatal("IsPersisted() = false, want true")
		}
		applyExportSettings(sm, file, Config{})
		if got := sm.GetSettings().Size; got != 100 {
			t.Errorf("Size = %d, want 100 (saved value)", got)
		}
	})
}
