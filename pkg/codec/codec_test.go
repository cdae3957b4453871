package codec

import (
	"reflect"
	"testing"
)

func TestIsVideoCompatible(t *testing.T) {
	tests := []struct {
		container string
		codec     string
		want      bool
	}{
		{MP4, "h264", true},
		{MP4, "H264", true},
		{MP4, "hevc", true},
		{MP4, "vp9", false},
		{WebM, "vp9", true},
		{WebM, "h264", false},
		{MKV, "vp8", true},
		{"flv", "h264", false},
		{MP4, "", false},
		{"", "h264", false},
	}

	for _, tt := range tests {
		t.Run(tt.container+"/"+tt.codec, func(t *testing.T) {
			if got := IsVideoCompatible(tt.container, tt.codec); got != tt.want {
				t.Errorf("IsVideoCompatible(%q, %q) = %v, want %v", tt.container, tt.codec, got, tt.want)
			}
		})
	}
}

func TestIsAudioCompatible(t *testing.T) {
	tests := []struct {
		container string
		codec     string
		want      bool
	}{
		{MP4, "aac", true},
		{MP4, "mp3", true},
		{MP4, "opus", false},
		{WebM, "opus", true},
		{WebM, "vorbis", true},
		{WebM, "aac", false},
		{MKV, "flac", true},
		{"unknown", "aac", false},
	}

	for _, tt := range tests {
		t.Run(tt.container+"/"+tt.codec, func(t *testing.T) {
			if got := IsAudioCompatible(tt.container, tt.codec); got != tt.want {
				t.Errorf("IsAudioCompatible(%q, %q) = %v, want %v", tt.container, tt.codec, got, tt.want)
			}
		})
	}
}

func TestDefaultSubstitution(t *testing.T) {
	sub, ok := DefaultSubstitution(MP4)
	if !ok {
		t.Fatal("expected mp4 substitution")
	}
	if !reflect.DeepEqual(sub.VideoArgs, []string{"-c:v", "libx264"}) {
		t.Errorf("mp4 video args = %v", sub.VideoArgs)
	}
	if !reflect.DeepEqual(sub.AudioArgs, []string{"-c:a", "aac"}) {
		t.Errorf("mp4 audio args = %v", sub.AudioArgs)
	}

	sub, ok = DefaultSubstitution(WebM)
	if !ok {
		t.Fatal("expected webm substitution")
	}
	if !reflect.DeepEqual(sub.VideoArgs, []string{"-c:v", "libvpx-vp9"}) {
		t.Errorf("webm video args = %v", sub.VideoArgs)
	}
	if !reflect.DeepEqual(sub.AudioArgs, []string{"-c:a", "libopus"}) {
		t.Errorf("webm audio args = %v", sub.AudioArgs)
	}

	if _, ok := DefaultSubstitution("avi"); ok {
		t.Error("avi should not have a substitution")
	}

	// returned slices must not alias the table
	sub, _ = DefaultSubstitution(MP4)
	sub.VideoArgs[1] = "changed"
	again, _ := DefaultSubstitution(MP4)
	if again.VideoArgs[1] != "libx264" {
		t.Error("substitution table was modified through returned slice")
	}
}

func TestCodecArgs(t *testing.T) {
	if got := VideoArgs(WebM, "vp9"); !reflect.DeepEqual(got, []string{"-c:v", "copy"}) {
		t.Errorf("VideoArgs(webm, vp9) = %v", got)
	}
	if got := VideoArgs(WebM, "h264"); !reflect.DeepEqual(got, []string{"-c:v", "libvpx-vp9"}) {
		t.Errorf("VideoArgs(webm, h264) = %v", got)
	}
	if got := AudioArgs(MP4, "aac"); !reflect.DeepEqual(got, []string{"-c:a", "copy"}) {
		t.Errorf("AudioArgs(mp4, aac) = %v", got)
	}
	if got := AudioArgs(MP4, "opus"); !reflect.DeepEqual(got, []string{"-c:a", "aac"}) {
		t.Errorf("AudioArgs(mp4, opus) = %v", got)
	}
}

func TestMimeType(t *testing.T) {
	tests := map[string]string{
		MP4:   "video/mp4",
		WebM:  "video/webm",
		MKV:   "video/x-matroska",
		"MOV": "video/quicktime",
		"xyz": "application/octet-stream",
	}

	for container, want := range tests {
		if got := MimeType(container); got != want {
			t.Errorf("MimeType(%q) = %q, want %q", container, got, want)
		}
	}
}
