package catalog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/scenevault/scenevault/pkg/ffprobe"
)

type Dimensions struct {
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

type SceneMeta struct {
	Size       int64      `json:"size,omitempty"`
	Duration   float64    `json:"duration,omitempty"` // in seconds
	FPS        float64    `json:"fps,omitempty"`
	Dimensions Dimensions `json:"dimensions"`
	Container  string     `json:"container,omitempty"`
	VideoCodec string     `json:"videoCodec,omitempty"`
	AudioCodec string     `json:"audioCodec,omitempty"`
}

// HasCodecs reports whether transcode decisions can be made without probing.
func (m SceneMeta) HasCodecs() bool {
	return m.Container != "" && m.VideoCodec != "" && m.AudioCodec != ""
}

// Merge copies probed values into the meta block. Empty probe values
// keep what is already known.
func (m *SceneMeta) Merge(data *ffprobe.Metadata) {
	if data == nil {
		return
	}
	if data.Container != "" {
		m.Container = data.Container
	}
	if data.VideoCodec != "" {
		m.VideoCodec = data.VideoCodec
	}
	if data.AudioCodec != "" {
		m.AudioCodec = data.AudioCodec
	}
	if data.Duration > 0 {
		m.Duration = data.Duration
	}
	if data.FPS > 0 {
		m.FPS = data.FPS
	}
	if data.Width > 0 && data.Height > 0 {
		m.Dimensions = Dimensions{Width: data.Width, Height: data.Height}
	}
	if data.Size > 0 {
		m.Size = data.Size
	}
}

// Scene is a media item owned by the catalog. Fields the core does not
// know about are kept and written back unchanged on upsert.
type Scene struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Path      string    `json:"path,omitempty"`
	Meta      SceneMeta `json:"meta"`
	Processed bool      `json:"processed"`
	Preview   *string   `json:"preview"`
	Trailer   *string   `json:"trailer"`

	extra map[string]json.RawMessage
}

type scene Scene

func (s *Scene) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var v scene
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*s = Scene(v)
	s.extra = fields
	return nil
}

func (s Scene) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(scene(s))
	if err != nil || len(s.extra) == 0 {
		return data, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	merged := make(map[string]json.RawMessage, len(s.extra)+len(fields))
	for key, value := range s.extra {
		merged[key] = value
	}
	for key, value := range fields {
		merged[key] = value
	}

	return json.Marshal(merged)
}

type ImageMeta struct {
	Size       int64      `json:"size"`
	Dimensions Dimensions `json:"dimensions"`
}

// Image is a derived still (preview strip or screenshot).
type Image struct {
	ID      string    `json:"_id"`
	Name    string    `json:"name"`
	Scene   string    `json:"scene"`
	Path    string    `json:"path"`
	AddedOn int64     `json:"addedOn"` // unix milliseconds
	Meta    ImageMeta `json:"meta"`
}

func NewImage(name string) *Image {
	return &Image{
		ID:      "im_" + uuid.NewString(),
		Name:    name,
		AddedOn: time.Now().UnixMilli(),
	}
}

type TrailerMeta struct {
	Size int64 `json:"size"`
}

type Trailer struct {
	ID      string      `json:"_id"`
	Name    string      `json:"name"`
	Scene   string      `json:"scene"`
	Path    string      `json:"path"`
	AddedOn int64       `json:"addedOn"` // unix milliseconds
	Meta    TrailerMeta `json:"meta"`
}

func NewTrailer(name string) *Trailer {
	return &Trailer{
		ID:      "tr_" + uuid.NewString(),
		Name:    name,
		AddedOn: time.Now().UnixMilli(),
	}
}
