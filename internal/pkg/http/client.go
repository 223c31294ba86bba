package http

import (
	"net"
	"net/http"
	"time"
)

const (
	maxIdleConnsPerHost   = 4
	dialTimeout           = 30 * time.Second
	keepAliveTime         = 30 * time.Second
	responseHeaderTimeout = time.Minute
)

// NewClient returns a client for streaming large objects.
// There is no overall request timeout because a body may take arbitrarily long to read.
func NewClient() *http.Client {
	defaultTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return http.DefaultClient
	}
	newTransport := defaultTransport.Clone()

	newTransport.MaxIdleConnsPerHost = maxIdleConnsPerHost
	newTransport.ResponseHeaderTimeout = responseHeaderTimeout
	newTransport.DialContext = (&net.Dialer{
		Timeout:   dialTimeout,
		KeepAlive: keepAliveTime,
	}).DialContext

	return &http.Client{
		Transport: newTransport,
	}
}
