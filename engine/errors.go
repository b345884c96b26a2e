package engine

import (
	"fmt"

	"github.com/sbl8/increng/core"
)

// ViolationError is what the engine panics with when a node or caller
// breaks the polling protocol: a dependency cycle, a height that exceeds
// the engine's configured maximum, a Pending return unsupported by any
// underlying request, or a Get call for a child that wasn't validly
// requested. These are programmer errors with no recovery path; the engine
// does not attempt to continue after one.
type ViolationError struct {
	Token    core.Token
	Location string
	TypeName string
	Message  string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("%s: node %s (%s) at %s", e.Message, e.Token, e.TypeName, e.Location)
}

func (e *Engine) violate(n *nodeSlot, format string, args ...any) {
	panic(&ViolationError{
		Token:    n.token,
		Location: n.debugLocation,
		TypeName: n.typeName,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (e *Engine) violateToken(tok core.Token, format string, args ...any) {
	panic(&ViolationError{
		Token:   tok,
		Message: fmt.Sprintf(format, args...),
	})
}
