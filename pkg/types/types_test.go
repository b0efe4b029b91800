package types

import (
	"image"
	"testing"
)

// TestNormalizedRectArithmetic 测试矩形逐分量运算
func TestNormalizedRectArithmetic(t *testing.T) {
	a := Rect(0.05, 0.0, 0.2, 0.25)
	b := Rect(0.25, 0.05, 0.95, 0.95)

	delta := b.Sub(a)
	if got := a.Add(delta); got != b {
		t.Errorf("a + (b - a) = %+v, want %+v", got, b)
	}

	half := Rect(2, 4, 6, 8).Scale(0.5)
	if half != Rect(1, 2, 3, 4) {
		t.Errorf("Scale(0.5) = %+v", half)
	}

	r := Rect(10, 20, 110, 70)
	if r.Width() != 100 || r.Height() != 50 {
		t.Errorf("Width/Height = %v/%v, want 100/50", r.Width(), r.Height())
	}
	cx, cy := r.Center()
	if cx != 60 || cy != 45 {
		t.Errorf("Center = (%v,%v), want (60,45)", cx, cy)
	}
}

// TestNormalizedRectContains 测试点包含判断（边界包含）
func TestNormalizedRectContains(t *testing.T) {
	r := Rect(0, 0, 10, 10)
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"内部", 5, 5, true},
		{"左上角", 0, 0, true},
		{"右下角", 10, 10, true},
		{"右侧外部", 10.01, 5, false},
		{"上方外部", 5, -0.01, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	if (NormalizedRect{}).Contains(0.5, 0.5) {
		t.Error("zero rect should not contain (0.5,0.5)")
	}
}

// TestRotationFromDegrees 测试角度归一化
func TestRotationFromDegrees(t *testing.T) {
	tests := []struct {
		deg     int
		want    Rotation
		wantErr bool
	}{
		{0, Rotation0, false},
		{90, Rotation90, false},
		{180, Rotation180, false},
		{270, Rotation270, false},
		{360, Rotation0, false},
		{450, Rotation90, false},
		{-90, Rotation270, false},
		{45, Rotation0, true},
	}
	for _, tt := range tests {
		got, err := RotationFromDegrees(tt.deg)
		if (err != nil) != tt.wantErr {
			t.Errorf("RotationFromDegrees(%d) err = %v, wantErr %v", tt.deg, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("RotationFromDegrees(%d) = %v, want %v", tt.deg, got, tt.want)
		}
		if !got.IsValid() {
			t.Errorf("RotationFromDegrees(%d) returned invalid rotation %v", tt.deg, got)
		}
	}

	if Rotation(45).IsValid() {
		t.Error("Rotation(45) should be invalid")
	}
}

// TestFormatInfoZeroValue 零值 FormatInfo 表示自下而上、无旋转、无裁剪
func TestFormatInfoZeroValue(t *testing.T) {
	var f FormatInfo
	if f.TopDown || f.Rotation != Rotation0 || f.Picture != (image.Rectangle{}) {
		t.Errorf("unexpected zero FormatInfo: %+v", f)
	}
}
