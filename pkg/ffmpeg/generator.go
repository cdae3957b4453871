package ffmpeg

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scenevault/scenevault/internal/utils"
)

// Generator produces derivative assets (previews, screenshots, trailers)
// by running ffmpeg to completion.
type Generator struct {
	logger zerolog.Logger
	config Config
}

func NewGenerator(config *Config) *Generator {
	return &Generator{
		logger: log.With().Str("module", "ffmpeg").Str("submodule", "generator").Logger(),
		config: config.withDefaultValues(),
	}
}

func PreviewPath(libraryPath, id string) string {
	return filepath.Join(libraryPath, "previews", id+".jpg")
}

// ScreenshotPath names screenshots after their position, starting at 1.
func ScreenshotPath(libraryPath, id string, index int) string {
	return filepath.Join(libraryPath, "thumbnails", fmt.Sprintf("%s (%d).jpg", id, index+1))
}

func TrailerPath(libraryPath, id string) string {
	return filepath.Join(libraryPath, "trailers", id+".mp4")
}

// Preview extracts frames across the whole media and joins them into a
// single horizontal strip image.
func (g *Generator) Preview(ctx context.Context, src Source) (*File, error) {
	if src.Duration <= 0 {
		return nil, ErrUnknownDuration
	}

	tmpDir, err := os.MkdirTemp("", "scenevault-preview")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	timestamps := TimestampsAtIntervals(g.config.PreviewFrames, src.Duration, 0, 100)
	frames := make([]image.Image, 0, len(timestamps))
	for i, ts := range timestamps {
		framePath := filepath.Join(tmpDir, fmt.Sprintf("%05d.jpg", i))
		if err := g.extractFrame(ctx, src.Path, ts, g.config.PreviewWidth, framePath); err != nil {
			return nil, fmt.Errorf("unable to extract preview frame %d: %w", i, err)
		}

		frame, err := imaging.Open(framePath)
		if err != nil {
			return nil, fmt.Errorf("unable to open preview frame %d: %w", i, err)
		}
		frames = append(frames, frame)
	}

	strip := composeStrip(frames)

	out := PreviewPath(g.config.LibraryPath, src.ID)
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return nil, err
	}

	if err := imaging.Save(strip, out, imaging.JPEGQuality(g.config.JPEGQuality)); err != nil {
		return nil, fmt.Errorf("unable to save preview: %w", err)
	}

	g.logger.Debug().Str("path", out).Int("frames", len(frames)).Msg("preview generated")
	return statImage(out)
}

// Screenshots extracts still frames at regular intervals. Any failure
// discards the whole sequence.
func (g *Generator) Screenshots(ctx context.Context, src Source) ([]File, error) {
	if src.Duration <= 0 {
		return nil, ErrUnknownDuration
	}

	timestamps := TimestampsAtIntervals(g.config.ScreenshotCount, src.Duration, g.config.ScreenshotStart, g.config.ScreenshotEnd)
	if err := os.MkdirAll(filepath.Join(g.config.LibraryPath, "thumbnails"), 0755); err != nil {
		return nil, err
	}

	files := make([]File, 0, len(timestamps))
	for i, ts := range timestamps {
		out := ScreenshotPath(g.config.LibraryPath, src.ID, i)
		if err := g.extractFrame(ctx, src.Path, ts, g.config.ScreenshotWidth, out); err != nil {
			return nil, fmt.Errorf("unable to extract screenshot %d: %w", i+1, err)
		}

		file, err := statImage(out)
		if err != nil {
			return nil, err
		}
		files = append(files, *file)
	}

	g.logger.Debug().Str("scene", src.ID).Int("count", len(files)).Msg("screenshots generated")
	return files, nil
}

// Trailer cuts short segments across the media, re-encodes them to a common
// format and concatenates them into a single mp4 file.
func (g *Generator) Trailer(ctx context.Context, src Source) (*File, error) {
	if src.Duration <= 0 {
		return nil, ErrUnknownDuration
	}

	tmpDir, err := os.MkdirTemp("", "scenevault-trailer")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	segmentLength := g.config.TrailerSegmentLength
	if segmentLength > src.Duration {
		segmentLength = src.Duration
	}

	var list strings.Builder
	timestamps := TimestampsAtIntervals(g.config.TrailerSegments, src.Duration, 10, 90)
	for i, ts := range timestamps {
		segmentPath := filepath.Join(tmpDir, fmt.Sprintf("segment-%05d.mp4", i))

		err := g.run(ctx,
			"-ss", FormatSeconds(ts),
			"-i", src.Path,
			"-t", FormatSeconds(segmentLength),
			"-map", "0:v:0",
			"-map", "0:a:0?",
			"-c:v", "libx264",
			"-preset", "veryfast",
			"-crf", "23",
			"-pix_fmt", "yuv420p",
			"-c:a", "aac",
			"-b:a", "128k",
			"-ac", "2",
			"-ar", "44100",
			segmentPath,
		)
		if err != nil {
			return nil, fmt.Errorf("unable to cut trailer segment %d: %w", i, err)
		}

		// concat demuxer quoting
		fmt.Fprintf(&list, "file '%s'\n", strings.ReplaceAll(segmentPath, "'", `'\''`))
	}

	listPath := filepath.Join(tmpDir, "segments.txt")
	if err := os.WriteFile(listPath, []byte(list.String()), 0644); err != nil {
		return nil, err
	}

	out := TrailerPath(g.config.LibraryPath, src.ID)
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return nil, err
	}

	err = g.run(ctx,
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-movflags", "+faststart",
		out,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to concat trailer: %w", err)
	}

	stat, err := os.Stat(out)
	if err != nil {
		return nil, err
	}

	g.logger.Debug().Str("path", out).Int("segments", len(timestamps)).Msg("trailer generated")
	return &File{Path: out, Size: stat.Size()}, nil
}

func (g *Generator) extractFrame(ctx context.Context, input string, at float64, width int, output string) error {
	args := []string{
		"-ss", FormatSeconds(at),
		"-i", input,
		"-frames:v", "1",
		"-q:v", "2",
	}

	if width > 0 {
		args = append(args, "-vf", fmt.Sprintf("scale=%d:-2", width))
	}

	return g.run(ctx, append(args, output)...)
}

func (g *Generator) run(ctx context.Context, args ...string) error {
	args = append(append([]string{}, quietArgs...), append([]string{"-y"}, args...)...)

	stderr := utils.LogWriter(g.logger)
	defer stderr.Flush()

	cmd := exec.CommandContext(ctx, g.config.FFmpegBinary, args...)
	cmd.Stderr = stderr

	g.logger.Debug().Strs("args", args).Msg("running ffmpeg")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg exited: %w", err)
	}

	return nil
}

func composeStrip(frames []image.Image) *image.NRGBA {
	width, height := 0, 0
	for _, frame := range frames {
		bounds := frame.Bounds()
		width += bounds.Dx()
		if bounds.Dy() > height {
			height = bounds.Dy()
		}
	}

	strip := imaging.New(width, height, color.Black)

	x := 0
	for _, frame := range frames {
		strip = imaging.Paste(strip, frame, image.Pt(x, 0))
		x += frame.Bounds().Dx()
	}

	return strip
}

func statImage(path string) (*File, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read generated image: %w", err)
	}

	bounds := img.Bounds()
	return &File{
		Path:   path,
		Size:   stat.Size(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
