// Package sprite 实现缩略图精灵：一个可以在屏幕上移动、摇摆并响应点击的位图
//
// 精灵的位置用归一化矩形表示（0/1 对应目标表面的边缘），
// 绘制时根据当前表面尺寸换算为像素，并按位图宽高比做信箱适配。
package sprite

import (
	"image"
	"math"

	"github.com/decker502/vthumb/pkg/types"
	"github.com/decker502/vthumb/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// DefaultWobbleAngle 动画开始时的摇摆幅度（度）
	DefaultWobbleAngle = 10.0
	// DefaultWobbleDecay 每次绘制摇摆幅度和相位的变化量
	DefaultWobbleDecay = 0.25

	// wobbleEpsilon 单精度浮点的机器精度，低于它视为摇摆结束
	wobbleEpsilon = 1.1920929e-07
)

// State 精灵状态
type State int

const (
	// StateClear 没有位图，Update/Draw/HitTest 都不做任何事
	StateClear State = iota
	// StateIdle 有位图，没有进行中的位移动画
	StateIdle
	// StateAnimating 有位图，边界框正在向目标位置插值
	StateAnimating
)

// String 返回状态名称（用于日志）
func (s State) String() string {
	switch s {
	case StateClear:
		return "clear"
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	default:
		return "unknown"
	}
}

// Sprite 缩略图精灵
//
// 精灵独占自己的位图和由它生成的 GPU 纹理，Clear/SetBitmap 时立即释放旧纹理。
// 非并发安全：所有方法都应在同一个游戏循环 goroutine 中调用。
type Sprite struct {
	bitmap  image.Image
	texture *ebiten.Image // 首次 Draw 时从 bitmap 创建

	topDown    bool
	rotation   types.Rotation
	sourceRect image.Rectangle // 位图坐标系中要显示的区域
	aspect     types.AspectRatio

	bound types.NormalizedRect // 当前边界框（归一化）

	animating    bool
	animStart    float64
	animEnd      float64
	animStartPos types.NormalizedRect
	animDelta    types.NormalizedRect

	wobbleInitial float64
	wobbleDecay   float64
	wobbleAngle   float64
	wobblePhase   float64

	fill         types.NormalizedRect // 精灵局部坐标系中的信箱矩形（像素）
	transform    ebiten.GeoM          // 最近一次 Draw 使用的变换
	hasTransform bool
}

// New 创建一个处于 CLEAR 状态的精灵
func New() *Sprite {
	return &Sprite{
		aspect:        types.AspectRatio{Width: 1, Height: 1},
		wobbleInitial: DefaultWobbleAngle,
		wobbleDecay:   DefaultWobbleDecay,
	}
}

// SetWobble 设置摇摆的初始幅度（度）和每帧衰减量
// decay <= 0 时保持原值，避免摇摆永不结束
func (s *Sprite) SetWobble(angle, decay float64) {
	if angle < 0 {
		angle = 0
	}
	s.wobbleInitial = angle
	if decay > 0 {
		s.wobbleDecay = decay
	}
}

// SetBitmap 设置精灵的位图
//
// 参数：
//   - bitmap: 位图，为 nil 时等同于 Clear
//   - format: 方向、旋转提示和显示区域；Picture 为空时使用整个位图
//
// 边界框、信箱矩形、进行中的动画和摇摆都会被重置，精灵回到 IDLE，
// 需要重新调用 AnimateBoundingBox 放置精灵。
func (s *Sprite) SetBitmap(bitmap image.Image, format types.FormatInfo) {
	if bitmap == nil {
		s.Clear()
		return
	}

	s.releaseTexture()
	s.bitmap = bitmap
	s.topDown = format.TopDown
	s.rotation = format.Rotation

	s.sourceRect = format.Picture.Intersect(bitmap.Bounds())
	if s.sourceRect.Empty() {
		s.sourceRect = bitmap.Bounds()
	}
	s.aspect = types.AspectRatio{
		Width:  float64(s.sourceRect.Dx()),
		Height: float64(s.sourceRect.Dy()),
	}

	s.resetMotion()
}

// Clear 释放位图和纹理，回到 CLEAR 状态
func (s *Sprite) Clear() {
	s.releaseTexture()
	s.bitmap = nil
	s.sourceRect = image.Rectangle{}
	s.rotation = types.Rotation0
	s.aspect = types.AspectRatio{Width: 1, Height: 1}
	s.resetMotion()
}

// resetMotion 清除边界框、信箱矩形、进行中的动画和摇摆
func (s *Sprite) resetMotion() {
	s.bound = types.NormalizedRect{}
	s.fill = types.NormalizedRect{}
	s.animating = false
	s.animStart, s.animEnd = 0, 0
	s.animStartPos = types.NormalizedRect{}
	s.animDelta = types.NormalizedRect{}
	s.wobbleAngle = 0
	s.wobblePhase = 0
	s.hasTransform = false
}

func (s *Sprite) releaseTexture() {
	if s.texture != nil {
		s.texture.Deallocate()
		s.texture = nil
	}
}

// AnimateBoundingBox 让边界框移动到 target
//
// 参数：
//   - target: 目标边界框（归一化）
//   - now: 当前时钟（秒）
//   - duration: 动画时长（秒），<= 0 时立即到位且不摇摆
//
// 动画进行中再次调用时，从当前（插值中的）位置重新开始。
func (s *Sprite) AnimateBoundingBox(target types.NormalizedRect, now, duration float64) {
	if duration <= 0 {
		s.bound = target
		s.animStart, s.animEnd = now, now
		s.animating = false
		s.wobbleAngle = 0
		return
	}

	s.animStart = now
	s.animEnd = now + duration
	s.animStartPos = s.bound
	s.animDelta = target.Sub(s.bound)
	s.wobbleAngle = s.wobbleInitial
	s.animating = true
}

// Update 根据时钟推进动画并重新计算信箱矩形
//
// 参数：
//   - now: 当前时钟（秒）
//   - destWidth, destHeight: 目标表面尺寸（像素）
//
// 摇摆不在这里衰减，只在 Draw 中衰减。
func (s *Sprite) Update(now, destWidth, destHeight float64) {
	if s.State() == StateClear {
		return
	}

	if s.animating {
		if now >= s.animEnd {
			// 终点直接赋值，避免插值的舍入误差
			s.bound = s.animStartPos.Add(s.animDelta)
			s.animating = false
		} else if s.animStart < now {
			fraction := (now - s.animStart) / (s.animEnd - s.animStart)
			s.bound = utils.LerpRect(s.animStartPos, s.animDelta, fraction)
		}
	}

	s.fill = utils.LetterboxFit(s.aspect, utils.LocalPixelRect(s.bound, destWidth, destHeight))
}

// Draw 把精灵绘制到屏幕上
//
// 每次调用都会重新计算并保存变换矩阵（供 HitTest 使用），
// 摇摆幅度在这里按帧衰减，降到机器精度以下时精确归零。
func (s *Sprite) Draw(screen *ebiten.Image) {
	if s.State() == StateClear {
		return
	}

	size := screen.Bounds().Size()
	destW, destH := float64(size.X), float64(size.Y)

	var wobble float64
	if s.wobbleAngle >= wobbleEpsilon {
		wobble = s.wobbleAngle * math.Sin(s.wobblePhase)

		s.wobblePhase += s.wobbleDecay
		s.wobbleAngle -= s.wobbleDecay
		if s.wobbleAngle <= wobbleEpsilon {
			s.wobbleAngle = 0
		}
	}

	s.transform = utils.SpriteTransform(s.bound, destW, destH, s.topDown, wobble)
	s.hasTransform = true

	if s.fill.Width() <= 0 || s.fill.Height() <= 0 || s.sourceRect.Empty() {
		return
	}

	if s.texture == nil {
		s.texture = ebiten.NewImageFromImage(s.bitmap)
	}

	// 纹理原点总是 (0,0)，把位图坐标系下的区域平移过去
	src := s.sourceRect.Sub(s.bitmap.Bounds().Min)
	sub := s.texture.SubImage(src).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s.fill.Width()/float64(src.Dx()), s.fill.Height()/float64(src.Dy()))
	op.GeoM.Translate(s.fill.Left, s.fill.Top)
	op.GeoM.Concat(s.transform)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sub, op)
}

// HitTest 判断屏幕坐标 (x, y) 是否落在精灵的信箱矩形内（含边界）
//
// 使用最近一次 Draw 的变换求逆。CLEAR、尚未绘制过或矩阵不可逆时返回 false。
func (s *Sprite) HitTest(x, y float64) bool {
	if s.State() == StateClear || !s.hasTransform {
		return false
	}

	lx, ly, ok := utils.InvertPoint(s.transform, x, y)
	if !ok {
		return false
	}
	return s.fill.Contains(lx, ly)
}

// State 返回当前状态
func (s *Sprite) State() State {
	switch {
	case s.bitmap == nil:
		return StateClear
	case s.animating:
		return StateAnimating
	default:
		return StateIdle
	}
}

// Bound 返回当前边界框（归一化）
func (s *Sprite) Bound() types.NormalizedRect { return s.bound }

// Fill 返回局部坐标系中的信箱矩形（像素）
func (s *Sprite) Fill() types.NormalizedRect { return s.fill }

// Bitmap 返回精灵持有的位图，CLEAR 时为 nil
func (s *Sprite) Bitmap() image.Image { return s.bitmap }

// SourceRect 返回位图中要显示/导出的区域
func (s *Sprite) SourceRect() image.Rectangle { return s.sourceRect }

// Rotation 返回位图提供方给出的旋转提示
func (s *Sprite) Rotation() types.Rotation { return s.rotation }

// TopDown 返回位图是否为自上而下存储
func (s *Sprite) TopDown() bool { return s.topDown }

// WobbleAngle 返回当前摇摆幅度（度）
func (s *Sprite) WobbleAngle() float64 { return s.wobbleAngle }

// Transform 返回最近一次 Draw 使用的变换，ok 为 false 表示尚未绘制
func (s *Sprite) Transform() (m ebiten.GeoM, ok bool) { return s.transform, s.hasTransform }
