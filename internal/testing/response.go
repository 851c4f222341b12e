package testing

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tarantool/go-tarantool/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// MockResponse is a response carrying a raw MessagePack body, as if the
// server had returned it as call results.
type MockResponse struct {
	header tarantool.Header
	data   []byte
}

var _ tarantool.Response = &MockResponse{} //nolint:exhaustruct

// NewMockResponse encodes body with MessagePack.
func NewMockResponse(t T, body any) *MockResponse {
	t.Helper()

	data, err := msgpack.Marshal(body)
	if err != nil {
		t.Fatalf("failed to encode mock response body: %s", err)
	}

	return &MockResponse{header: tarantool.Header{}, data: data} //nolint:exhaustruct
}

func createMockResponse(header tarantool.Header, body io.Reader) (*MockResponse, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read mock response body: %w", err)
	}

	return &MockResponse{header: header, data: data}, nil
}

// Header implements tarantool.Response.
func (resp *MockResponse) Header() tarantool.Header {
	return resp.header
}

// Decode implements tarantool.Response.
func (resp *MockResponse) Decode() ([]any, error) {
	var out []any

	err := msgpack.NewDecoder(bytes.NewReader(resp.data)).Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mock response: %w", err)
	}

	return out, nil
}

// DecodeTyped implements tarantool.Response.
func (resp *MockResponse) DecodeTyped(res any) error {
	err := msgpack.NewDecoder(bytes.NewReader(resp.data)).Decode(res)
	if err != nil {
		return fmt.Errorf("failed to decode mock response: %w", err)
	}

	return nil
}
