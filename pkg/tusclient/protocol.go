package tusclient

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// tus protocol version this client speaks. The Core and Creation
// extensions are implemented; nothing else.
const tusVersion = "1.0.0"

// Header names fixed by the tus 1.0.0 Core + Creation extensions. Kept in
// one place so the worker's request-building stays readable.
const (
	headerTusResumable = "Tus-Resumable"
	headerUploadLength = "Upload-Length"
	headerUploadOffset = "Upload-Offset"
	headerUploadMeta   = "Upload-Metadata"
	headerLocation     = "Location"
	headerContentType  = "Content-Type"

	contentTypeOffsetOctetStream = "application/offset+octet-stream"
)

// encodeMetadata renders an upload's metadata as the tus Upload-Metadata
// header value: comma-separated "key base64(value)" pairs, RFC 4648
// standard base64 of the UTF-8 value bytes. Returns "" when meta is empty,
// signalling the caller to omit the header entirely.
func encodeMetadata(meta map[string]string) string {
	if len(meta) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(meta))
	for k, v := range meta {
		pairs = append(pairs, k+" "+base64.StdEncoding.EncodeToString([]byte(v)))
	}
	return strings.Join(pairs, ",")
}

// parseUploadOffset parses the Upload-Offset response header into a
// non-negative byte offset.
func parseUploadOffset(value string) (int64, bool) {
	if value == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
