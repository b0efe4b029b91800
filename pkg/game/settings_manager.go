package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ExportSettings 用户上次使用的导出参数
// 与配置文件不同，这些值由程序在运行时写回，下次启动时恢复
type ExportSettings struct {
	Size       int    `yaml:"size"`       // 正方形缩略图边长（像素）
	Format     string `yaml:"format"`     // jpeg | png
	Quality    int    `yaml:"quality"`    // JPEG 质量 1~100
	OutputBase string `yaml:"outputBase"` // 输出路径前缀，文件名为 <base>_<i>
	LastSource string `yaml:"lastSource"` // 上次打开的视频/图片路径
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ExportSettings {
	return &ExportSettings{
		Size:       276,
		Format:     "jpeg",
		Quality:    90,
		OutputBase: "thumb",
	}
}

// SettingsManager 设置管理器
// 负责导出设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ExportSettings // 当前设置
	persisted    bool            // 设置是否来自已保存的数据
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "export"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 始终为 nil，加载失败只记录日志并使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置。
// 已保存的设置中缺失或非法的字段回退为默认值。
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	sm.persisted = false
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	sanitize(loaded)

	sm.settings = loaded
	sm.persisted = true
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
//
// 返回：
//   - error: 如果序列化或保存失败返回错误
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ExportSettings {
	return sm.settings
}

// IsPersisted 当前设置是否从已保存的数据中加载
// 为 false 时调用者可以用配置文件的值作为初始设置
func (sm *SettingsManager) IsPersisted() bool {
	return sm.persisted
}

// SetSize 设置导出边长，非正数被忽略
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetSize(size int) {
	if size > 0 {
		sm.settings.Size = size
	}
}

// SetFormat 设置导出格式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFormat(format string) {
	if format != "" {
		sm.settings.Format = format
	}
}

// SetQuality 设置 JPEG 质量
//
// 质量会被限制在 1 ~ 100 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetQuality(quality int) {
	sm.settings.Quality = clampQuality(quality)
}

// SetOutputBase 设置输出路径前缀
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetOutputBase(base string) {
	if base != "" {
		sm.settings.OutputBase = base
	}
}

// SetLastSource 记录上次打开的源
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetLastSource(path string) {
	sm.settings.LastSource = path
}

func sanitize(s *ExportSettings) {
	def := DefaultSettings()
	if s.Size <= 0 {
		s.Size = def.Size
	}
	if s.Format == "" {
		s.Format = def.Format
	}
	s.Quality = clampQuality(s.Quality)
	if s.OutputBase == "" {
		s.OutputBase = def.OutputBase
	}
}

// clampQuality 将质量限制在 1 ~ 100 范围内
func clampQuality(quality int) int {
	if quality < 1 {
		return 1
	}
	if quality > 100 {
		return 100
	}
	return quality
}
