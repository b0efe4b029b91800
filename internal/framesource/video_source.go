package framesource

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/decker502/vthumb/pkg/types"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// VideoSource 视频文件
//
// 用 ffprobe 读取时长，再让 ffmpeg 在均匀分布的时间点各抽取一帧 PNG 到临时目录，
// 然后解码这些 PNG。ffmpeg 默认按元数据自动旋转画面，因此帧已经是正向的。
type VideoSource struct {
	Path    string
	Options Options

	probe   func(path string) (float64, error)
	extract func(path string, at float64, out string) error
}

// NewVideoSource 创建使用外部 ffmpeg/ffprobe 的视频源
func NewVideoSource(path string, opts Options) *VideoSource {
	return &VideoSource{
		Path:    path,
		Options: opts,
		probe:   probeDuration,
		extract: extractFrame,
	}
}

// Frames 抽取 n 帧，第 i 帧取自 duration*i/n 秒处
func (s *VideoSource) Frames(ctx context.Context, n int) ([]types.Frame, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}

	duration, err := s.probe(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s: %w", s.Path, err)
	}

	tmpDir, err := os.MkdirTemp("", "vthumb-frames-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	var frames []types.Frame
	for i, at := range SeekTimes(duration, n) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out := filepath.Join(tmpDir, fmt.Sprintf("frame_%05d.png", i))
		if err := s.extract(s.Path, at, out); err != nil {
			log.Printf("[FrameSource] Warning: failed to extract frame at %.3fs: %v", at, err)
			continue
		}

		img, err := decodeFile(out)
		if err != nil {
			log.Printf("[FrameSource] Warning: %v", err)
			continue
		}
		frames = append(frames, newFrame(img, s.Options))
	}

	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: ffmpeg produced no frames for %s", ErrNoFrames, s.Path)
	}
	log.Printf("[FrameSource] Extracted %d/%d frames from %s (%.2fs)", len(frames), n, s.Path, duration)
	return frames, nil
}

// SeekTimes 返回 n 个均匀分布的抽帧时间点（秒）
// 时长未知（<= 0）时全部为 0
func SeekTimes(duration float64, n int) []float64 {
	times := make([]float64, n)
	if duration <= 0 {
		return times
	}
	for i := range times {
		times[i] = duration * float64(i) / float64(n)
	}
	return times
}

// probeResult ffprobe JSON 输出中用到的部分
type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// parseDuration 从 ffprobe 的 JSON 输出中解析时长（秒）
func parseDuration(probeJSON string) (float64, error) {
	var result probeResult
	if err := json.Unmarshal([]byte(probeJSON), &result); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	if result.Format.Duration == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", result.Format.Duration, err)
	}
	return d, nil
}

func probeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, err
	}
	return parseDuration(out)
}

func extractFrame(path string, at float64, out string) error {
	ss := strconv.FormatFloat(at, 'f', 3, 64)
	return ffmpeg.
		Input(path, ffmpeg.KwArgs{"ss": ss}).
		Output(out, ffmpeg.KwArgs{"frames:v": 1}).
		OverWriteOutput().
		Run()
}
