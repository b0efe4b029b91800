package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata 管理器
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if settings.Size != 276 {
		t.Errorf("Size: got %v, want 276", settings.Size)
	}
	if settings.Format != "jpeg" {
		t.Errorf("Format: got %q, want jpeg", settings.Format)
	}
	if settings.Quality != 90 {
		t.Errorf("Quality: got %v, want 90", settings.Quality)
	}
	if settings.OutputBase != "thumb" {
		t.Errorf("OutputBase: got %q, want thumb", settings.OutputBase)
	}
	if settings.LastSource != "" {
		t.Errorf("LastSource: got %q, want empty", settings.LastSource)
	}
}

// TestNewSettingsManager 测试正常初始化 SettingsManager
func TestNewSettingsManager(t *testing.T) {
	sm, err := NewSettingsManager(openTestGdata(t, "test_vthumb_settings"))
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	if sm == nil {
		t.Fatal("NewSettingsManager() returned nil")
	}

	settings := sm.GetSettings()
	if settings == nil {
		t.Fatal("GetSettings() returned nil after initialization")
	}
	if settings.Size != 276 {
		t.Errorf("Initial Size: got %v, want 276", settings.Size)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}
	if sm.GetSettings() == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t, "test_vthumb_settings_load_save")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetSize(128)
	sm1.SetFormat("png")
	sm1.SetQuality(75)
	sm1.SetOutputBase("/tmp/out/clip")
	sm1.SetLastSource("/videos/clip.mp4")

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}

	settings := sm2.GetSettings()
	want := ExportSettings{
		Size:       128,
		Format:     "png",
		Quality:    75,
		OutputBase: "/tmp/out/clip",
		LastSource: "/videos/clip.mp4",
	}
	if *settings != want {
		t.Errorf("Loaded settings: got %+v, want %+v", *settings, want)
	}
}

// TestLoadSanitizes 已保存的非法值回退为默认值
func TestLoadSanitizes(t *testing.T) {
	gdataManager := openTestGdata(t, "test_vthumb_settings_sanitize")
	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("size: -3\nquality: 500\n")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, _ := NewSettingsManager(gdataManager)
	settings := sm.GetSettings()
	if settings.Size != 276 {
		t.Errorf("Size: got %v, want 276", settings.Size)
	}
	if settings.Quality != 100 {
		t.Errorf("Quality: got %v, want 100", settings.Quality)
	}
	if settings.Format != "jpeg" || settings.OutputBase != "thumb" {
		t.Errorf("missing fields should default, got %+v", *settings)
	}
}

// TestSettersIgnoreInvalid 非法输入不覆盖已有值
func TestSettersIgnoreInvalid(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	sm.SetSize(0)
	sm.SetSize(-10)
	sm.SetFormat("")
	sm.SetOutputBase("")

	settings := sm.GetSettings()
	if settings.Size != 276 || settings.Format != "jpeg" || settings.OutputBase != "thumb" {
		t.Errorf("invalid setters changed settings: %+v", *settings)
	}
}

// TestLoadNilGdataManager 测试降级模式下 Load() 使用默认设置
func TestLoadNilGdataManager(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	sm.SetSize(64)

	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if sm.GetSettings().Size != 276 {
		t.Errorf("After Load() in degraded mode, Size: got %v, want 276", sm.GetSettings().Size)
	}
}

// TestClampQuality 测试 clampQuality 辅助函数
func TestClampQuality(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{50, 50},
		{1, 1},
		{100, 100},
		{0, 1},
		{-5, 1},
		{101, 100},
	}

	for _, tt := range tests {
		if result := clampQuality(tt.input); result != tt.expected {
			t.Errorf("clampQuality(%v): got %v, want %v", tt.input, result, tt.expected)
		}
	}
}

// TestIsPersisted 只有从已保存数据加载时才返回 true
func TestIsPersisted(t *testing.T) {
	gdataManager := openTestGdata(t, "test_vthumb_persisted")

	sm, _ := NewSettingsManager(gdataManager)
	if sm.IsPersisted() {
		t.Error("首次启动 IsPersisted() 应为 false")
	}
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded, _ := NewSettingsManager(gdataManager)
	if !reloaded.IsPersisted() {
		t.Error("保存后重新加载 IsPersisted() 应为 true")
	}

	memory, _ := NewSettingsManager(nil)
	if memory.IsPersisted() {
		t.Error("降级模式 IsPersisted() 应为 false")
	}
}
