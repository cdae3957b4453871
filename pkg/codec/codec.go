package codec

import "strings"

// Containers known to the compatibility table.
const (
	MP4  = "mp4"
	WebM = "webm"
	MKV  = "mkv"
	MOV  = "mov"
	M4V  = "m4v"
	AVI  = "avi"
	WMV  = "wmv"
)

var videoCodecs = map[string][]string{
	MP4:  {"h264", "hevc", "mpeg4", "av1"},
	WebM: {"vp8", "vp9", "av1"},
	MKV:  {"h264", "hevc", "mpeg4", "vp8", "vp9", "av1"},
}

var audioCodecs = map[string][]string{
	MP4:  {"aac", "mp3"},
	WebM: {"vorbis", "opus"},
	MKV:  {"aac", "mp3", "opus", "vorbis", "flac", "ac3", "eac3"},
}

var mimeTypes = map[string]string{
	MP4:  "video/mp4",
	M4V:  "video/mp4",
	WebM: "video/webm",
	MKV:  "video/x-matroska",
	MOV:  "video/quicktime",
	AVI:  "video/x-msvideo",
	WMV:  "video/x-ms-wmv",
}

// Substitution holds encoder arguments used when a stream
// cannot be copied into the target container.
type Substitution struct {
	VideoArgs []string
	AudioArgs []string
}

var substitutions = map[string]Substitution{
	MP4: {
		VideoArgs: []string{"-c:v", "libx264"},
		AudioArgs: []string{"-c:a", "aac"},
	},
	WebM: {
		VideoArgs: []string{"-c:v", "libvpx-vp9"},
		AudioArgs: []string{"-c:a", "libopus"},
	},
}

var (
	copyVideoArgs = []string{"-c:v", "copy"}
	copyAudioArgs = []string{"-c:a", "copy"}
)

func IsVideoCompatible(container, codec string) bool {
	return contains(videoCodecs[normalize(container)], normalize(codec))
}

func IsAudioCompatible(container, codec string) bool {
	return contains(audioCodecs[normalize(container)], normalize(codec))
}

// DefaultSubstitution returns transcode arguments for the container.
// Containers without a default encoder pair report false.
func DefaultSubstitution(container string) (Substitution, bool) {
	sub, ok := substitutions[normalize(container)]
	if !ok {
		return Substitution{}, false
	}

	return Substitution{
		VideoArgs: append([]string(nil), sub.VideoArgs...),
		AudioArgs: append([]string(nil), sub.AudioArgs...),
	}, true
}

// VideoArgs returns "-c:v copy" when codec fits the container,
// otherwise the container default encoder.
func VideoArgs(container, codec string) []string {
	if IsVideoCompatible(container, codec) {
		return append([]string(nil), copyVideoArgs...)
	}

	sub, _ := DefaultSubstitution(container)
	return sub.VideoArgs
}

// AudioArgs returns "-c:a copy" when codec fits the container,
// otherwise the container default encoder.
func AudioArgs(container, codec string) []string {
	if IsAudioCompatible(container, codec) {
		return append([]string(nil), copyAudioArgs...)
	}

	sub, _ := DefaultSubstitution(container)
	return sub.AudioArgs
}

func MimeType(container string) string {
	if mime, ok := mimeTypes[normalize(container)]; ok {
		return mime
	}
	return "application/octet-stream"
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func contains(list []string, s string) bool {
	if s == "" {
		return false
	}
	for _, el := range list {
		if el == s {
			return true
		}
	}
	return false
}
