package game

import (
	"log"

	"github.com/decker502/vthumb/pkg/sprite"
	"github.com/decker502/vthumb/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// GalleryConfig 精灵集合的布局和动画参数
type GalleryConfig struct {
	SpriteCount       int
	SmallSlots        []types.NormalizedRect // 至少 SpriteCount 个
	Big               types.NormalizedRect
	AnimationDuration float64 // 秒
	WobbleAngle       float64 // 度
	WobbleDecay       float64
}

// Gallery 管理固定数量的精灵和当前选中项
//
// 未选中的精灵 i 停在 SmallSlots[i]，选中的精灵移动到 Big。
// 同一时刻最多一个精灵被选中。非并发安全，只在游戏循环中使用。
type Gallery struct {
	sprites   []*sprite.Sprite
	slots     []types.NormalizedRect
	big       types.NormalizedRect
	duration  float64
	selection int // -1 表示没有选中
}

// NewGallery 创建精灵集合，所有精灵初始为 CLEAR 状态
func NewGallery(cfg GalleryConfig) *Gallery {
	count := cfg.SpriteCount
	if count > len(cfg.SmallSlots) {
		count = len(cfg.SmallSlots)
	}
	if count < 0 {
		count = 0
	}

	g := &Gallery{
		sprites:   make([]*sprite.Sprite, count),
		slots:     append([]types.NormalizedRect(nil), cfg.SmallSlots[:count]...),
		big:       cfg.Big,
		duration:  cfg.AnimationDuration,
		selection: -1,
	}
	for i := range g.sprites {
		s := sprite.New()
		if cfg.WobbleAngle > 0 || cfg.WobbleDecay > 0 {
			s.SetWobble(cfg.WobbleAngle, cfg.WobbleDecay)
		}
		g.sprites[i] = s
	}
	return g
}

// Len 返回精灵数量
func (g *Gallery) Len() int {
	return len(g.sprites)
}

// Sprite 返回第 i 个精灵，越界时返回 nil
func (g *Gallery) Sprite(i int) *sprite.Sprite {
	if i < 0 || i >= len(g.sprites) {
		return nil
	}
	return g.sprites[i]
}

// Selection 返回选中精灵的索引，没有选中时为 -1
func (g *Gallery) Selection() int {
	return g.selection
}

// Load 把帧依次放入精灵
//
// 所有精灵先被清空；没有位图的帧被跳过，已加载的精灵总是从索引 0 开始连续排列。
// 多出的帧被忽略，不足时剩余精灵保持 CLEAR。
// 放入后精灵立即回到各自的小槽位，并选中第一个精灵。
//
// 返回：
//   - int: 实际放入的帧数
func (g *Gallery) Load(frames []types.Frame, now float64) int {
	g.Clear()

	n := 0
	for _, frame := range frames {
		if n >= len(g.sprites) {
			break
		}
		if frame.Bitmap == nil {
			continue
		}
		g.sprites[n].SetBitmap(frame.Bitmap, frame.Format)
		n++
	}

	g.UnselectAll()
	if n > 0 {
		g.Select(0, now)
	}
	log.Printf("[Gallery] Loaded %d/%d frames", n, len(frames))
	return n
}

// Clear 清空所有精灵并取消选中
func (g *Gallery) Clear() {
	for _, s := range g.sprites {
		s.Clear()
	}
	g.selection = -1
}

// Select 选中第 i 个精灵
//
// 精灵 i 以动画移动到大图区域；之前选中的另一个精灵以动画回到自己的小槽位。
// 再次选中已选中的精灵会重新触发摇摆。越界索引被忽略。
func (g *Gallery) Select(i int, now float64) {
	if i < 0 || i >= len(g.sprites) {
		log.Printf("[Gallery] Warning: ignoring selection %d (have %d sprites)", i, len(g.sprites))
		return
	}

	g.sprites[i].AnimateBoundingBox(g.big, now, g.duration)

	if g.selection != -1 && g.selection != i {
		g.sprites[g.selection].AnimateBoundingBox(g.slots[g.selection], now, g.duration)
	}

	g.selection = i
	log.Printf("[Gallery] Selected sprite %d", i)
}

// UnselectAll 所有精灵立即（无动画）回到各自的小槽位
func (g *Gallery) UnselectAll() {
	for i, s := range g.sprites {
		s.AnimateBoundingBox(g.slots[i], 0, 0)
	}
	g.selection = -1
}

// Update 推进所有精灵的动画
func (g *Gallery) Update(now, destWidth, destHeight float64) {
	for _, s := range g.sprites {
		s.Update(now, destWidth, destHeight)
	}
}

// Draw 按索引顺序绘制所有精灵
func (g *Gallery) Draw(screen *ebiten.Image) {
	for _, s := range g.sprites {
		s.Draw(screen)
	}
}

// HitTest 返回第一个命中 (x, y) 的精灵索引，没有命中时返回 -1
func (g *Gallery) HitTest(x, y float64) int {
	for i, s := range g.sprites {
		if s.HitTest(x, y) {
			return i
		}
	}
	return -1
}

// Click 处理一次点击：命中某个精灵时选中它
//
// 返回：
//   - bool: 是否命中
func (g *Gallery) Click(x, y, now float64) bool {
	i := g.HitTest(x, y)
	if i < 0 {
		return false
	}
	g.Select(i, now)
	return true
}
