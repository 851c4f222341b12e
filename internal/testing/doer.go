package testing

import (
	"bytes"
	"sync"

	"github.com/tarantool/go-tarantool/v2"
)

type doerResponse struct {
	resp *MockResponse
	err  error
}

// MockDoer is a tarantool.Doer answering requests from a fixed queue.
type MockDoer struct {
	mu sync.Mutex
	// Requests holds every received request, oldest first.
	Requests  []tarantool.Request
	responses []doerResponse
	t         T
}

var _ tarantool.Doer = &MockDoer{} //nolint:exhaustruct

// NewMockDoer creates a MockDoer. Every response is either a *MockResponse
// or an error and is used for exactly one request.
func NewMockDoer(t T, responses ...any) *MockDoer {
	t.Helper()

	doer := &MockDoer{
		mu:        sync.Mutex{},
		Requests:  []tarantool.Request{},
		responses: make([]doerResponse, 0, len(responses)),
		t:         t,
	}

	for _, response := range responses {
		switch resp := response.(type) {
		case *MockResponse:
			doer.responses = append(doer.responses, doerResponse{resp: resp, err: nil})
		case error:
			doer.responses = append(doer.responses, doerResponse{resp: nil, err: resp})
		default:
			t.Fatalf("unsupported response type: %T", response)
		}
	}

	return doer
}

// Do records req and resolves the future with the next queued response.
func (d *MockDoer) Do(req tarantool.Request) *tarantool.Future {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.Requests = append(d.Requests, req)

	fut := tarantool.NewFuture(NewMockRequest())

	if len(d.responses) == 0 {
		d.t.Errorf("no response queued for request %d", len(d.Requests))
		fut.SetError(errNoResponse)

		return fut
	}

	response := d.responses[0]
	d.responses = d.responses[1:]

	if response.err != nil {
		fut.SetError(response.err)
	} else {
		_ = fut.SetResponse(response.resp.header, bytes.NewBuffer(response.resp.data))
	}

	return fut
}
