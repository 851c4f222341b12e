package layer_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jiangjkd/historied/layer"
)

func assertViolation(t *testing.T, fn func()) {
	t.Helper()

	defer func() {
		t.Helper()

		rec := recover()
		require.NotNil(t, rec, "expected a contract violation")

		err, ok := rec.(error)
		require.True(t, ok, "panic value %v is not an error", rec)

		var violation layer.ContractViolationError
		require.True(t, errors.As(err, &violation), "unexpected panic: %v", err)
	}()

	fn()
}
