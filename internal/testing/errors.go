package testing

import "errors"

var errNoResponse = errors.New("mock doer: no response queued")
