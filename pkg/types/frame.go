package types

import "image"

// Frame 是位图提供方交付的一帧：位图及其格式描述
type Frame struct {
	Bitmap image.Image
	Format FormatInfo
}
