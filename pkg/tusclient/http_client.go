package tusclient

import "net/http"

// HTTPClient is the minimal surface the worker needs from an HTTP client.
// Narrowing to an interface keeps *http.Client swappable in tests for a
// mock tus server's client, or for injecting failure behavior.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
