package tkv

import (
	"github.com/jiangjkd/historied/operation"
)

type txnResponse struct {
	Data struct {
		IsSuccess bool `msgpack:"is_success"`
	} `msgpack:"data"`
	Revision int64 `msgpack:"revision"`
}

type txnRequest struct {
	Predicates []any          `msgpack:"predicates"`
	OnSuccess  []tkvOperation `msgpack:"on_success"`
	OnFailure  []tkvOperation `msgpack:"on_failure"`
}

// newTxnRequest builds an unconditional transaction: without predicates the
// on_success branch always runs.
func newTxnRequest(ops []operation.Operation) txnRequest {
	return txnRequest{
		Predicates: []any{},
		OnSuccess:  newTKVOperations(ops),
		OnFailure:  []tkvOperation{},
	}
}
