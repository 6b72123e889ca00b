package advanced

import "github.com/aukilabs/go-tooling/pkg/errors"

// Threading errors through every stage would add a lot of noise for conditions
// that only arise from broken upstream contracts (index references outside
// the point set, non-manifold meshes). Instead, we panic with a fatalError, and
// the public API recovers to convert to an error.

type fatalError struct {
	error
}

// Panic with a fatalError.
func fatalf(format string, args ...interface{}) {
	panic(fatalError{errors.Newf(format, args...)})
}

// Convert a recovered fatalError back into an error. Anything else is a real
// panic and is re-raised.
func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if fatal, ok := r.(fatalError); ok {
			return fatal.error
		}
		panic(r)
	}
	return nil
}
