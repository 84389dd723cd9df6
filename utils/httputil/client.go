package httputil

import (
	"net/http"
	"time"
)

// ClientConfig tunes the transport of the client returned by NewClient.
type ClientConfig struct {
	Timeout             time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// NewClient returns an http.Client with the given limits. Redirects are followed.
func NewClient(conf ClientConfig) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        conf.MaxIdleConns,
			MaxIdleConnsPerHost: conf.MaxIdleConnsPerHost,
			IdleConnTimeout:     conf.IdleConnTimeout,
			// Disable compression to prevent BREACH attacks
			DisableCompression: true,
		},
		Timeout: conf.Timeout,
	}
}

// SuccessStatus returns true for 2xx status codes.
func SuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
