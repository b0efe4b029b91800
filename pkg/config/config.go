// Package config 加载和校验 vthumb 的 YAML 配置
//
// 配置文件缺失的键使用 DefaultConfig() 中的默认值；
// 配置文件本身不存在时不算错误，直接使用全部默认值。
package config

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/decker502/vthumb/pkg/export"
	"github.com/decker502/vthumb/pkg/types"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 配置值不合法
var ErrInvalidConfig = errors.New("invalid config")

// Config 配置文件的顶层结构
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Playback PlaybackConfig `yaml:"playback"`
	Wobble   WobbleConfig   `yaml:"wobble"`
	Layout   LayoutConfig   `yaml:"layout"`
	Export   ExportConfig   `yaml:"export"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// PlaybackConfig 播放配置
type PlaybackConfig struct {
	TPS               int     `yaml:"tps"`                // 动画时钟 TPS
	AnimationDuration float64 `yaml:"animation_duration"` // 位移动画时长（秒）
}

// WobbleConfig 摇摆配置
type WobbleConfig struct {
	Angle float64 `yaml:"angle"` // 初始幅度（度）
	Decay float64 `yaml:"decay"` // 每帧衰减量
}

// LayoutConfig 精灵布局
type LayoutConfig struct {
	SpriteCount int                    `yaml:"sprite_count"`
	SmallSlots  []types.NormalizedRect `yaml:"small_slots"`
	Big         types.NormalizedRect   `yaml:"big"`
}

// ExportConfig 导出配置
type ExportConfig struct {
	Size       int    `yaml:"size"`       // 正方形输出边长（像素）
	Format     string `yaml:"format"`     // jpeg | png
	Quality    int    `yaml:"quality"`    // JPEG 质量 1~100
	Filter     string `yaml:"filter"`     // 缩放插值核
	Background string `yaml:"background"` // 背景色 #RRGGBB
	Workers    int    `yaml:"workers"`    // 批量导出并发数
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	slots := make([]types.NormalizedRect, len(DefaultSmallSlots))
	copy(slots, DefaultSmallSlots)

	return &Config{
		Window: WindowConfig{
			Width:     DefaultWindowWidth,
			Height:    DefaultWindowHeight,
			Title:     DefaultWindowTitle,
			Resizable: true,
		},
		Playback: PlaybackConfig{
			TPS:               DefaultTPS,
			AnimationDuration: DefaultAnimationDuration,
		},
		Wobble: WobbleConfig{
			Angle: 10,
			Decay: 0.25,
		},
		Layout: LayoutConfig{
			SpriteCount: DefaultSpriteCount,
			SmallSlots:  slots,
			Big:         DefaultBigRect,
		},
		Export: ExportConfig{
			Size:       276,
			Format:     string(export.FormatJPEG),
			Quality:    90,
			Filter:     export.FilterCatmullRom,
			Background: "#FFFFFF",
			Workers:    1,
		},
	}
}

// Load 从文件加载配置
//
// 参数：
//   - path: 配置文件路径
//
// 返回：
//   - *Config: 配置（文件不存在时为默认配置）
//   - error: 读取、解析或校验失败时返回错误
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[Config] Warning: %s not found, using defaults", path)
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	log.Printf("[Config] Loaded %s", path)
	return cfg, nil
}

// Parse 解析 YAML 配置，缺失的键保留默认值
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置的一致性
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Playback.TPS <= 0 {
		return invalid("playback.tps %d", c.Playback.TPS)
	}
	if c.Playback.AnimationDuration < 0 {
		return invalid("playback.animation_duration %v", c.Playback.AnimationDuration)
	}
	if c.Wobble.Angle < 0 || c.Wobble.Decay <= 0 {
		return invalid("wobble angle %v decay %v", c.Wobble.Angle, c.Wobble.Decay)
	}

	if c.Layout.SpriteCount <= 0 {
		return invalid("layout.sprite_count %d", c.Layout.SpriteCount)
	}
	if len(c.Layout.SmallSlots) < c.Layout.SpriteCount {
		return invalid("layout has %d small slots for %d sprites", len(c.Layout.SmallSlots), c.Layout.SpriteCount)
	}
	for i, slot := range c.Layout.SmallSlots {
		if slot.Width() <= 0 || slot.Height() <= 0 {
			return invalid("layout.small_slots[%d] %+v is empty", i, slot)
		}
	}
	if c.Layout.Big.Width() <= 0 || c.Layout.Big.Height() <= 0 {
		return invalid("layout.big %+v is empty", c.Layout.Big)
	}

	if c.Export.Size <= 0 {
		return invalid("export.size %d", c.Export.Size)
	}
	if c.Export.Quality < 1 || c.Export.Quality > 100 {
		return invalid("export.quality %d", c.Export.Quality)
	}
	if c.Export.Workers < 1 {
		return invalid("export.workers %d", c.Export.Workers)
	}
	if _, err := c.Export.Options(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Options 把导出配置转换为导出选项
func (e ExportConfig) Options() (export.Options, error) {
	format, err := export.ParseFormat(e.Format)
	if err != nil {
		return export.Options{}, err
	}
	if _, err := export.KernelByName(e.Filter); err != nil {
		return export.Options{}, err
	}
	bg, err := ParseHexColor(e.Background)
	if err != nil {
		return export.Options{}, err
	}

	return export.Options{
		Format:     format,
		Quality:    e.Quality,
		Filter:     e.Filter,
		Background: bg,
	}, nil
}

// ParseHexColor 解析 #RRGGBB 或 #RGB 颜色，结果总是不透明的
// 空字符串返回 nil（保留透明度）
func ParseHexColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("failed to parse color %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("failed to parse color %q: %w", s, err)
	}
	r, g, b := uint8(v>>16), uint8(v>>8), uint8(v)
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
