package testing

import (
	"context"
	"io"

	"github.com/tarantool/go-iproto"
	"github.com/tarantool/go-tarantool/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// MockRequest is a request whose response is decoded into a MockResponse.
type MockRequest struct{}

var _ tarantool.Request = &MockRequest{}

// NewMockRequest creates an empty MockRequest.
func NewMockRequest() *MockRequest {
	return &MockRequest{}
}

// Type implements tarantool.Request.
func (req *MockRequest) Type() iproto.Type {
	return iproto.Type(0)
}

// Async implements tarantool.Request.
func (req *MockRequest) Async() bool {
	return false
}

// Body implements tarantool.Request.
func (req *MockRequest) Body(_ tarantool.SchemaResolver, _ *msgpack.Encoder) error {
	return nil
}

// Conn implements tarantool.Request.
func (req *MockRequest) Conn() *tarantool.Connection {
	return nil
}

// Ctx implements tarantool.Request.
func (req *MockRequest) Ctx() context.Context {
	return context.Background()
}

// Response implements tarantool.Request.
func (req *MockRequest) Response(header tarantool.Header, body io.Reader) (tarantool.Response, error) {
	return createMockResponse(header, body)
}
