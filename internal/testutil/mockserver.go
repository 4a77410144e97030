package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// MockServer wraps httptest.Server with convenience methods
type MockServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
	bodies   [][]byte
}

// NewMockServer creates a new mock HTTP server. Request bodies are read
// before the handler runs and replaced, so handlers can still decode them.
func NewMockServer(handler http.HandlerFunc) *MockServer {
	ms := &MockServer{}

	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		ms.mu.Lock()
		ms.requests = append(ms.requests, r)
		ms.bodies = append(ms.bodies, body)
		ms.mu.Unlock()

		handler(w, r)
	}))

	return ms
}

// NewJSONServer creates a mock server that answers every request with the
// given status and JSON body
func NewJSONServer(status int, body string) *MockServer {
	return NewMockServer(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// LastRequest returns the most recent request
func (ms *MockServer) LastRequest() *http.Request {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if len(ms.requests) == 0 {
		return nil
	}
	return ms.requests[len(ms.requests)-1]
}

// LastBody returns the body of the most recent request
func (ms *MockServer) LastBody() []byte {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if len(ms.bodies) == 0 {
		return nil
	}
	return ms.bodies[len(ms.bodies)-1]
}

// RequestCount returns the number of requests received
func (ms *MockServer) RequestCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.requests)
}

// Reset clears the request history
func (ms *MockServer) Reset() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.requests = nil
	ms.bodies = nil
}
