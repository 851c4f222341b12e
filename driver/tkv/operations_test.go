//nolint:testpackage
package tkv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/jiangjkd/historied/operation"
)

func decodeAny(t *testing.T, data []byte) any {
	t.Helper()

	var out any

	require.NoError(t, msgpack.NewDecoder(bytes.NewReader(data)).Decode(&out))

	return out
}

func TestOperation_EncodeMsgpack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		op       operation.Operation
		expected []any
	}{
		{
			name:     "put",
			op:       operation.Put([]byte("/state/a"), []byte("value")),
			expected: []any{"put", "/state/a", "value"},
		},
		{
			name:     "delete",
			op:       operation.Delete([]byte("/state/b")),
			expected: []any{"delete", "/state/b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := msgpack.Marshal(tkvOperation{tt.op})
			require.NoError(t, err)

			assert.Equal(t, tt.expected, decodeAny(t, data))
		})
	}
}

func TestTxnRequest_EncodeMsgpack(t *testing.T) {
	t.Parallel()

	data, err := msgpack.Marshal(newTxnRequest([]operation.Operation{
		operation.Put([]byte("/a"), []byte("1")),
		operation.Delete([]byte("/b")),
	}))
	require.NoError(t, err)

	decoded, ok := decodeAny(t, data).(map[string]any)
	require.True(t, ok)

	assert.Empty(t, decoded["predicates"])
	assert.Empty(t, decoded["on_failure"])
	assert.Equal(t, []any{
		[]any{"put", "/a", "1"},
		[]any{"delete", "/b"},
	}, decoded["on_success"])
}

func TestTxnResponse_DecodeMsgpack(t *testing.T) {
	t.Parallel()

	data, err := msgpack.Marshal(map[string]any{
		"data": map[string]any{
			"is_success": true,
			"responses":  []any{[]any{}},
		},
		"revision": 12,
	})
	require.NoError(t, err)

	var resp txnResponse

	require.NoError(t, msgpack.Unmarshal(data, &resp))
	assert.True(t, resp.Data.IsSuccess)
	assert.Equal(t, int64(12), resp.Revision)
}

func TestNewOperationEncodingError(t *testing.T) {
	t.Parallel()

	require.NoError(t, NewOperationEncodingError("anything", nil))

	parent := assert.AnError
	err := NewOperationEncodingError("encode put operation key", parent)

	require.ErrorIs(t, err, parent)
	assert.Equal(t, "failed to encode operation, encode put operation key: "+parent.Error(), err.Error())
}
