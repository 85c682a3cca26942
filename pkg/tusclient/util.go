package tusclient

import (
	"bytes"
	"io"
	"strconv"
)

func itoa64(n int64) string {
	return strconv.FormatInt(n, 10)
}

// newByteReader wraps chunk in an io.ReadCloser suitable for an http.Request
// body; the bytes are owned by the caller's reusable buffer, so this does
// not retain chunk beyond the request's lifetime.
func newByteReader(chunk []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(chunk))
}
