package httpx

import "net/http"

// Client abstracts the outbound HTTP client so provider calls can be mocked.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}
