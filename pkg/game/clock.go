package game

// Clock 动画时钟
// 宿主循环每 tick 调用一次 Tick，Now 返回 tick 数换算的秒数，与实际帧率无关。
type Clock struct {
	ticks int64
	tps   int
}

// NewClock 创建动画时钟，tps <= 0 时使用 30
func NewClock(tps int) *Clock {
	if tps <= 0 {
		tps = 30
	}
	return &Clock{tps: tps}
}

// Tick 推进一个 tick
func (c *Clock) Tick() {
	c.ticks++
}

// Ticks 返回已推进的 tick 数
func (c *Clock) Ticks() int64 {
	return c.ticks
}

// Now 返回当前时钟（秒）
func (c *Clock) Now() float64 {
	return float64(c.ticks) / float64(c.tps)
}

// TPS 返回每秒 tick 数
func (c *Clock) TPS() int {
	return c.tps
}
