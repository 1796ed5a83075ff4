// Package httpx owns the shared HTTP client used for all outbound API
// calls, so every provider request gets the same configured timeout.
package httpx

import (
	"net/http"
	"time"
)

const defaultExternalHTTPTimeout = 30 * time.Second

var externalHTTPClient = &http.Client{
	Timeout: defaultExternalHTTPTimeout,
}

// ConfigureExternalHTTPClient applies the configured timeout (in seconds)
// to the shared client and returns the applied duration. Values <= 0 fall
// back to the default.
func ConfigureExternalHTTPClient(seconds int) time.Duration {
	timeout := defaultExternalHTTPTimeout
	if seconds > 0 {
		timeout = time.Duration(seconds) * time.Second
	}
	externalHTTPClient.Timeout = timeout
	return timeout
}

// ExternalHTTPClient returns the shared client.
func ExternalHTTPClient() *http.Client {
	return externalHTTPClient
}
