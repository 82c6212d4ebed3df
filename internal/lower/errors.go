package lower

import "fmt"

// iceError is an internal invariant violation. The lowering pass panics
// with it and Lower recovers it at the boundary, so callers see a plain
// error while the pass itself can bail out from arbitrarily deep in the
// tree walk.
type iceError struct {
	msg string
}

func (e *iceError) Error() string {
	return "lower: " + e.msg
}

// bug aborts the pass: the input violated an invariant the upstream
// phases are supposed to guarantee.
func bug(format string, args ...any) {
	panic(&iceError{msg: fmt.Sprintf(format, args...)})
}

// fatalf aborts the pass on inputs that have no recoverable lowering,
// like an inclusive range without an end.
func fatalf(format string, args ...any) {
	panic(&iceError{msg: fmt.Sprintf(format, args...)})
}
