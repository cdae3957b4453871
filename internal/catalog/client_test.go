package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scenevault/scenevault/pkg/ffprobe"
)

func TestGetScene(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/collection/scenes/sc1":
			w.Write([]byte(`{"_id":"sc1","name":"First","path":"/media/a.mkv","meta":{"container":"mkv"},"rating":4}`))
		case "/collection/scenes/gone":
			w.Write([]byte(`null`))
		case "/collection/scenes/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL + "/"})

	tests := []struct {
		name    string
		id      string
		wantNil bool
		wantErr bool
	}{
		{"found", "sc1", false, false},
		{"missing", "nope", true, false},
		{"null body", "gone", true, false},
		{"server error", "broken", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := c.GetScene(context.Background(), tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetScene() error = %v, wantErr %v", err, tt.wantErr)
			}
			if (scene == nil) != tt.wantNil {
				t.Fatalf("GetScene() = %v, wantNil %v", scene, tt.wantNil)
			}
		})
	}

	scene, _ := c.GetScene(context.Background(), "sc1")
	if scene.Path != "/media/a.mkv" || scene.Meta.Container != "mkv" {
		t.Errorf("unexpected scene %+v", scene)
	}
}

func TestUpsertSceneKeepsUnknownFields(t *testing.T) {
	bodies := make(chan []byte, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		data, _ := io.ReadAll(r.Body)
		bodies <- data
	}))
	defer srv.Close()

	var scene Scene
	if err := json.Unmarshal([]byte(`{"_id":"sc1","name":"First","path":"a.mkv","meta":{},"rating":4}`), &scene); err != nil {
		t.Fatal(err)
	}
	scene.Meta.Merge(&ffprobe.Metadata{Container: "mkv", VideoCodec: "h264", AudioCodec: "aac"})

	if err := New(Config{URL: srv.URL}).UpsertScene(context.Background(), &scene); err != nil {
		t.Fatalf("UpsertScene() error = %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(<-bodies, &got); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if got["rating"] != float64(4) {
		t.Errorf("rating = %v, want 4", got["rating"])
	}
	meta, _ := got["meta"].(map[string]interface{})
	if meta["videoCodec"] != "h264" {
		t.Errorf("meta = %v", meta)
	}
}

func TestUpsertSceneStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(Config{URL: srv.URL}).UpsertScene(context.Background(), &Scene{ID: "sc1"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestMetaMerge(t *testing.T) {
	meta := SceneMeta{Container: "mp4", Duration: 10}
	if meta.HasCodecs() {
		t.Fatal("HasCodecs() = true with missing codecs")
	}

	meta.Merge(&ffprobe.Metadata{VideoCodec: "h264", AudioCodec: "aac", Width: 640, Height: 360})
	if !meta.HasCodecs() {
		t.Error("HasCodecs() = false after merge")
	}
	if meta.Container != "mp4" || meta.Duration != 10 {
		t.Errorf("known values overwritten: %+v", meta)
	}
	if meta.Dimensions.Width != 640 {
		t.Errorf("Dimensions = %+v", meta.Dimensions)
	}
}

func TestNewAssetIDs(t *testing.T) {
	image := NewImage("a (preview)")
	if len(image.ID) < 4 || image.ID[:3] != "im_" {
		t.Errorf("image id = %q", image.ID)
	}
	trailer := NewTrailer("a (trailer)")
	if len(trailer.ID) < 4 || trailer.ID[:3] != "tr_" {
		t.Errorf("trailer id = %q", trailer.ID)
	}
	if NewImage("x").ID == NewImage("x").ID {
		t.Error("ids must be unique")
	}
}
