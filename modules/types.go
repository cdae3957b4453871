package modules

import "net/http"

// Module is an HTTP handler mounted under a path prefix that owns
// resources released on shutdown.
type Module interface {
	Shutdown()
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}
