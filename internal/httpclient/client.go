package httpclient

import (
	"net/http"
	"net/http/cookiejar"
	"time"
)

// NewDefaultHTTPClient creates a simple HTTP client with a timeout
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}

// NewHTTPClientWithJar creates an HTTP client that keeps the consent and
// session cookies Yahoo sets on the first response.
func NewHTTPClientWithJar(timeout time.Duration) *http.Client {
	client := NewDefaultHTTPClient(timeout)
	// cookiejar.New only fails when given a PublicSuffixList that errors
	if jar, err := cookiejar.New(nil); err == nil {
		client.Jar = jar
	}
	return client
}
