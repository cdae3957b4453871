package scenestream

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/scenevault/scenevault/internal/catalog"
	"github.com/scenevault/scenevault/pkg/codec"
	"github.com/scenevault/scenevault/pkg/ffmpeg"
)

const typeDirect = "direct"

var muxArgs = map[string][]string{
	codec.MP4: {
		"-f", "mp4",
		"-movflags", "frag_keyframe+empty_moov+faststart",
		"-preset", "veryfast",
		"-crf", "18",
	},
	codec.WebM: {
		"-f", "webm",
		"-deadline", "realtime",
		"-cpu-used", "5",
		"-row-mt", "1",
		"-crf", "30",
		"-b:v", "0",
	},
}

// requestError is reported to the client as a plain text body.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string {
	return e.message
}

func badRequest(format string, a ...interface{}) *requestError {
	return &requestError{
		status:  http.StatusBadRequest,
		message: fmt.Sprintf(format, a...),
	}
}

// plan is everything needed to spawn a transcode for one request.
type plan struct {
	container  string
	mimeType   string
	videoArgs  []string
	audioArgs  []string
	start      float64
	outputArgs []string
}

// pickStrategy chooses codec arguments for the requested container.
// mp4 never re-encodes video, webm always has an encoder to fall back to.
func pickStrategy(container string, meta catalog.SceneMeta) (*plan, error) {
	p := &plan{
		container: container,
		mimeType:  codec.MimeType(container),
	}

	switch container {
	case codec.MP4:
		if !codec.IsVideoCompatible(codec.MP4, meta.VideoCodec) {
			return nil, badRequest("video codec %q is not valid for mp4", meta.VideoCodec)
		}
		p.videoArgs = codec.VideoArgs(codec.MP4, meta.VideoCodec)
		p.audioArgs = codec.AudioArgs(codec.MP4, meta.AudioCodec)
	case codec.WebM:
		p.videoArgs = codec.VideoArgs(codec.WebM, meta.VideoCodec)
		p.audioArgs = codec.AudioArgs(codec.WebM, meta.AudioCodec)
	default:
		return nil, badRequest("unsupported stream type %q", container)
	}

	return p, nil
}

func parseStart(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}

	start, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, badRequest("could not parse start query as number: %s", value)
	}

	return start, nil
}

// withStart fixes the seek offset and composes the output options:
// seek, mux flags, video, audio.
func (p *plan) withStart(start float64) *plan {
	p.start = start

	args := ffmpeg.SeekArgs(start)
	args = append(args, muxArgs[p.container]...)
	args = append(args, p.videoArgs...)
	args = append(args, p.audioArgs...)
	p.outputArgs = args

	return p
}
