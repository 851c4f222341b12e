package layer

import "github.com/jiangjkd/historied/internal/contract"

// ContractViolationError is the panic value raised when a precondition of this
// package or of the linear package is broken, e.g. a history is queried with
// a view shorter than the layers it recorded. Checks can be compiled out with
// the historied_unchecked build tag.
type ContractViolationError = contract.ViolationError

// ChecksEnabled reports whether contract checks are compiled in.
const ChecksEnabled = contract.Enabled
