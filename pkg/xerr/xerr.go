// Package xerr defines the core's terminal error kinds.
//
// Every error the simulation core (pkg/route, pkg/resources,
// pkg/simulate, pkg/verify, and pkg/codec's view constructors) raises
// itself is one of a small, closed set of kinds. Errors from pkg/codec's
// per-entry accessors are plain errors and pass through pkg/simulate and
// pkg/levelup unwrapped. All are terminal: the core never retries or
// recovers locally. Callers distinguish kinds with errors.Is against the Err*
// sentinels, following the *PacingError pattern in the dungeon generator's
// pacing curve package.
package xerr

import "fmt"

// Kind enumerates the error categories the core can raise.
type Kind int

const (
	// MalformedRoute: route byte length is not a multiple of 4.
	MalformedRoute Kind = iota
	// EmptyRoute: the route is zero-length.
	EmptyRoute
	// MissingTerminator: the route's last element is not 1.
	MissingTerminator
	// AlreadyVisited: a major node was visited twice.
	AlreadyVisited
	// Unreachable: a major node was stepped into with no completed prerequisite.
	Unreachable
	// Overflow: checked arithmetic in convert_resources failed.
	Overflow
	// PlayerDead: final hp <= 0.
	PlayerDead
	// OutstandingDebt: final salt != 0 or big_salt != 0.
	OutstandingDebt
	// InvalidConfig: checked config validation failed.
	InvalidConfig
	// InputTooLarge: a buffer cap was exceeded at a host boundary.
	InputTooLarge
)

func (k Kind) String() string {
	switch k {
	case MalformedRoute:
		return "MalformedRoute"
	case EmptyRoute:
		return "EmptyRoute"
	case MissingTerminator:
		return "MissingTerminator"
	case AlreadyVisited:
		return "AlreadyVisited"
	case Unreachable:
		return "Unreachable"
	case Overflow:
		return "Overflow"
	case PlayerDead:
		return "PlayerDead"
	case OutstandingDebt:
		return "OutstandingDebt"
	case InvalidConfig:
		return "InvalidConfig"
	case InputTooLarge:
		return "InputTooLarge"
	default:
		return "Unknown"
	}
}

// Error is the core's single error type. Kind is what callers should
// branch on; Msg carries human-readable detail.
type Error struct {
	Kind Kind
	Msg  string
}

// New builds an *Error for the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is reports whether target is an *Error of the same Kind, enabling
// errors.Is(err, xerr.ErrEmptyRoute)-style checks regardless of Msg.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is comparisons; Msg is irrelevant to Is.
var (
	ErrMalformedRoute     = &Error{Kind: MalformedRoute}
	ErrEmptyRoute         = &Error{Kind: EmptyRoute}
	ErrMissingTerminator  = &Error{Kind: MissingTerminator}
	ErrAlreadyVisited     = &Error{Kind: AlreadyVisited}
	ErrUnreachable        = &Error{Kind: Unreachable}
	ErrOverflow           = &Error{Kind: Overflow}
	ErrPlayerDead         = &Error{Kind: PlayerDead}
	ErrOutstandingDebt    = &Error{Kind: OutstandingDebt}
	ErrInvalidConfig      = &Error{Kind: InvalidConfig}
	ErrInputTooLarge      = &Error{Kind: InputTooLarge}
)
