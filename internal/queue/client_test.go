package queue

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scenevault/scenevault/internal/catalog"
)

func TestHead(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantID  string
		wantErr bool
	}{
		{"item", http.StatusOK, `{"_id":"sc1","name":"First","path":"a.mkv"}`, "sc1", false},
		{"null", http.StatusOK, `null`, "", false},
		{"empty body", http.StatusOK, ``, "", false},
		{"no content", http.StatusNoContent, ``, "", false},
		{"unauthorized", http.StatusUnauthorized, ``, "", true},
		{"garbage", http.StatusOK, `{`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/queue/head" || r.URL.Query().Get("password") != "secret" {
					t.Errorf("unexpected request %s", r.URL)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			scene, err := New(Config{URL: srv.URL, Password: "secret"}).Head(context.Background())
			if tt.wantErr {
				var protoErr *ProtocolError
				if !errors.As(err, &protoErr) || protoErr.Op != "head" {
					t.Fatalf("Head() error = %v, want head ProtocolError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Head() error = %v", err)
			}

			gotID := ""
			if scene != nil {
				gotID = scene.ID
			}
			if gotID != tt.wantID {
				t.Errorf("Head() id = %q, want %q", gotID, tt.wantID)
			}
		})
	}
}

func TestSubmit(t *testing.T) {
	bodies := make(chan []byte, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/queue/sc1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		bodies <- data
	}))
	defer srv.Close()

	preview := "im_1"
	result := NewResult()
	result.Scene.Preview = &preview
	result.Thumbs = append(result.Thumbs, catalog.Image{ID: "im_1", Name: "First (preview)"})

	if err := New(Config{URL: srv.URL}).Submit(context.Background(), "sc1", result); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	var got map[string]json.RawMessage
	if err := json.Unmarshal(<-bodies, &got); err != nil {
		t.Fatal(err)
	}

	if string(got["scene"]) != `{"processed":true,"preview":"im_1"}` {
		t.Errorf("scene = %s", got["scene"])
	}
	if string(got["images"]) != `[]` {
		t.Errorf("images = %s", got["images"])
	}
	if string(got["trailer"]) != `null` {
		t.Errorf("trailer = %s", got["trailer"])
	}
}

func TestDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/queue/sc1" {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL})
	if err := c.Delete(context.Background(), "sc1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var protoErr *ProtocolError
	if err := c.Delete(context.Background(), "sc2"); !errors.As(err, &protoErr) || protoErr.Op != "delete" {
		t.Fatalf("Delete() error = %v, want ProtocolError", err)
	}
}
