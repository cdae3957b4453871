package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

type Metadata struct {
	Container  string
	VideoCodec string
	AudioCodec string

	Duration float64 // in seconds
	FPS      float64
	Width    int
	Height   int
	Size     int64 // in bytes
}

// ProbeError is returned when ffprobe could not run or its output
// could not be understood.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("unable to probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// Prober runs a configured ffprobe binary.
type Prober struct {
	Binary string
}

func (p Prober) Probe(ctx context.Context, inputFilePath string) (*Metadata, error) {
	binary := p.Binary
	if binary == "" {
		binary = "ffprobe"
	}
	return Probe(ctx, binary, inputFilePath)
}

func Probe(ctx context.Context, ffprobeBinary string, inputFilePath string) (*Metadata, error) {
	args := []string{
		"-v", "error", // Hide debug information
		"-show_format",  // Show container information
		"-show_streams", // Show codec information
		"-of", "json",
		inputFilePath,
	}

	cmd := exec.CommandContext(ctx, ffprobeBinary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return nil, &ProbeError{Path: inputFilePath, Err: err}
	}

	return Parse(stdout.Bytes(), inputFilePath)
}

// Parse decodes ffprobe JSON output. The path is only used to refine
// ambiguous container names.
func Parse(data []byte, inputFilePath string) (*Metadata, error) {
	out := struct {
		Streams []struct {
			CodecName string `json:"codec_name"`
			CodecType string `json:"codec_type"`

			// For video streams.
			Width      int    `json:"width"`
			Height     int    `json:"height"`
			RFrameRate string `json:"r_frame_rate"`
		} `json:"streams"`
		Format struct {
			FormatName string `json:"format_name"`
			Duration   string `json:"duration"`
			Size       string `json:"size"`
		} `json:"format"`
	}{}

	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &ProbeError{Path: inputFilePath, Err: err}
	}

	meta := Metadata{
		Container: containerName(out.Format.FormatName, inputFilePath),
	}

	for _, stream := range out.Streams {
		switch stream.CodecType {
		case "video":
			// first video stream wins, cover art comes later
			if meta.VideoCodec != "" {
				continue
			}

			fps, err := parseFrameRate(stream.RFrameRate)
			if err != nil {
				return nil, &ProbeError{Path: inputFilePath, Err: err}
			}

			meta.VideoCodec = stream.CodecName
			meta.Width = stream.Width
			meta.Height = stream.Height
			meta.FPS = fps
		case "audio":
			if meta.AudioCodec == "" {
				meta.AudioCodec = stream.CodecName
			}
		}
	}

	if out.Format.Duration != "" {
		duration, err := strconv.ParseFloat(out.Format.Duration, 64)
		if err != nil {
			return nil, &ProbeError{Path: inputFilePath, Err: fmt.Errorf("unable to parse format duration: %w", err)}
		}
		meta.Duration = duration
	}

	if out.Format.Size != "" {
		size, err := strconv.ParseInt(out.Format.Size, 10, 64)
		if err != nil {
			return nil, &ProbeError{Path: inputFilePath, Err: fmt.Errorf("unable to parse format size: %w", err)}
		}
		meta.Size = size
	}

	return &meta, nil
}

// ffprobe reports demuxer families, e.g. "mov,mp4,m4a,3gp,3g2,mj2"
func containerName(formatName string, inputFilePath string) string {
	if formatName == "" {
		return ""
	}

	names := strings.Split(formatName, ",")
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(inputFilePath), "."))

	switch names[0] {
	case "mov":
		if ext == "mov" {
			return "mov"
		}
		return "mp4"
	case "matroska":
		if ext == "webm" {
			return "webm"
		}
		return "mkv"
	default:
		return names[0]
	}
}

func parseFrameRate(rate string) (float64, error) {
	if rate == "" {
		return 0, nil
	}

	num, den, ok := strings.Cut(rate, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("unable to parse frame rate %q: %w", rate, err)
	}
	if !ok {
		return n, nil
	}

	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, fmt.Errorf("unable to parse frame rate %q: %w", rate, err)
	}
	if d == 0 {
		return 0, nil
	}

	return n / d, nil
}
