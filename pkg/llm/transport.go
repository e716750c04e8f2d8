package llm

import (
	"net"
	"net/http"
	"time"
)

// newHTTPClient bounds the two phases of an inference call separately:
// connectTimeout covers dial and TLS handshake, readTimeout covers the wait
// for the model to produce its response.
func newHTTPClient(connectTimeout, readTimeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}

	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			TLSHandshakeTimeout:   connectTimeout,
			ResponseHeaderTimeout: readTimeout,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          1,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

// attemptTimeout caps a single attempt, body read included.
func attemptTimeout(connectTimeout, readTimeout time.Duration) time.Duration {
	return connectTimeout + readTimeout
}
