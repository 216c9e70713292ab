package ports

import "net/http"

// HTTPClient is the transport the gateway posts XML through.
// *http.Client satisfies it; tests substitute a mock or an httptest server client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
