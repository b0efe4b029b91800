package config

import "github.com/decker502/vthumb/pkg/types"

// 布局配置常量
// 所有矩形都是归一化坐标（0/1 对应窗口边缘），窗口缩放时精灵随之缩放

// DefaultSmallSlots 未选中精灵所在的槽位，沿窗口左侧自上而下排列
var DefaultSmallSlots = []types.NormalizedRect{
	types.Rect(0.05, 0.00, 0.20, 0.25),
	types.Rect(0.05, 0.25, 0.20, 0.50),
	types.Rect(0.05, 0.50, 0.20, 0.75),
	types.Rect(0.05, 0.75, 0.20, 1.00),
}

// DefaultBigRect 选中精灵放大后所在的区域
var DefaultBigRect = types.Rect(0.25, 0.05, 0.95, 0.95)

const (
	// DefaultSpriteCount 精灵数量，等于默认槽位数
	DefaultSpriteCount = 4

	// DefaultAnimationDuration 选中/取消选中的位移动画时长（秒）
	DefaultAnimationDuration = 0.4

	// DefaultTPS 动画时钟每秒 tick 数
	// 时钟按 tick 计数换算为秒，与实际帧率无关
	DefaultTPS = 30
)

// 窗口默认值
const (
	DefaultWindowWidth  = 1024
	DefaultWindowHeight = 768
	DefaultWindowTitle  = "Video Thumbnails"
)
