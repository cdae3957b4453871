package queue

import (
	"fmt"

	"github.com/scenevault/scenevault/internal/catalog"
)

// SceneUpdate is the part of a scene the worker is allowed to change.
type SceneUpdate struct {
	Processed bool    `json:"processed"`
	Preview   *string `json:"preview,omitempty"`
	Trailer   *string `json:"trailer,omitempty"`
}

// Result is reported back to the queue owner for every processed item.
type Result struct {
	Scene   SceneUpdate      `json:"scene"`
	Thumbs  []catalog.Image  `json:"thumbs"`
	Images  []catalog.Image  `json:"images"`
	Trailer *catalog.Trailer `json:"trailer"`
}

func NewResult() *Result {
	return &Result{
		Scene:  SceneUpdate{Processed: true},
		Thumbs: []catalog.Image{},
		Images: []catalog.Image{},
	}
}

// ProtocolError means the queue owner could not be reached or answered
// unexpectedly. The worker cannot continue after one.
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("queue %s: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
