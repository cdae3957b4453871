package utils

import (
	"context"
	"io"
	"net/http"
)

const BUF_LEN = 32 * 1024

// CopyToHTTP writes everything from read to w, flushing after every
// chunk so that the client receives data as soon as it is produced.
// Nothing is written once ctx is done.
func CopyToHTTP(ctx context.Context, w http.ResponseWriter, read io.Reader) (int64, error) {
	flusher, _ := w.(http.Flusher)
	buffer := make([]byte, BUF_LEN)

	var written int64
	for {
		n, err := read.Read(buffer)
		if n > 0 {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return written, ctxErr
			}

			m, werr := w.Write(buffer[:n])
			written += int64(m)
			if werr != nil {
				return written, werr
			}

			if flusher != nil {
				flusher.Flush()
			}
		}

		if err == io.EOF {
			return written, nil
		}
		if err != nil {
			return written, err
		}
	}
}
