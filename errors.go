// errors.go — error kinds and the internal control-flow signals that ride on
// top of them.
//
// Spec §7 names the error kinds by role, not by Go type: LexicalError,
// SyntaxError, NameError, AttributeError, ArgumentError, TypeError,
// ValueError, VersionError, ImportError, StackOverflowError, UserRaised.
// Each becomes a *Error here, tagged by an ErrorKind and carrying a Span for
// caret rendering (spans.go) plus, for UserRaised, the raw Value that was
// raised.
//
// Non-local control flow (return, break/continue with depth, raise) is
// implemented the way the teacher's interpreter_ops.go implements its own
// rtErr/returnSig signals: as typed panic values, caught by recover() at the
// evaluator frame that knows how to handle them (call frames for returns,
// loop/switch bodies for break/continue, try blocks for raises). This keeps
// the recursive-descent evaluator from threading a sentinel return value
// through every statement visitor, matching both the teacher's approach and
// the original implementation's own exception hierarchy
// (SafulateInvalidReturn / SafulateBreakoutError / SafulateInvalidContinue).
package safulate

import "fmt"

// ErrorKind names one of the error categories from spec §7.
type ErrorKind string

const (
	LexicalError       ErrorKind = "LexicalError"
	SyntaxError        ErrorKind = "SyntaxError"
	NameError          ErrorKind = "NameError"
	AttributeError     ErrorKind = "AttributeError"
	ArgumentError      ErrorKind = "ArgumentError"
	TypeError          ErrorKind = "TypeError"
	ValueError         ErrorKind = "ValueError"
	VersionError       ErrorKind = "VersionError"
	ImportError        ErrorKind = "ImportError"
	ScopeError         ErrorKind = "ScopeError"
	StackOverflowError ErrorKind = "StackOverflowError"
	UserRaised         ErrorKind = "UserRaised"
)

// Error is the concrete error type for every failure this package produces.
// LexicalError and SyntaxError instances come from lexing and parsing, apart
// from the few SyntaxErrors the evaluator raises for a node it cannot
// evaluate or an invalid assignment/deletion target; neither kind is ever
// visible to a `catch` clause (execTry lets them through). All the others surface
// to user code as the Value carried in Raised (for UserRaised, the raised
// value itself; for the rest, a freshly built Object carrying a message).
type Error struct {
	Kind    ErrorKind
	Message string
	Span    Span
	Raised  Value
	Trace   []Frame
}

// Frame is one entry of the call-stack trace attached to a runtime error.
type Frame struct {
	Name string
	Span Span
}

func (e *Error) Error() string {
	return e.Span.Render(string(e.Kind), e.Message)
}

// newErr builds an *Error of the given kind with a formatted message.
func newErr(kind ErrorKind, span Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

// throw panics with a freshly built *Error; every evaluator failure path
// funnels through here (or raiseValue, for `raise expr`) so recover sites
// only ever need to type-switch on *Error.
func throw(kind ErrorKind, span Span, format string, args ...any) {
	panic(newErr(kind, span, format, args...))
}

// raiseValue panics with a UserRaised *Error wrapping an arbitrary raised
// Value, per spec §4.8: raise evaluates to any value, and the wrapped-inside
// value retrievable by `catch e` is that original value, unmodified.
func raiseValue(span Span, v Value) {
	panic(&Error{Kind: UserRaised, Message: Repr(v), Span: span, Raised: v})
}

// ---- non-local control signals ----

// returnSignal carries a `return expr` value up to the enclosing call frame.
type returnSignal struct{ value Value }

// breakSignal/continueSignal carry a depth count up through enclosing
// iterative constructs per spec §4.6. depth 0 never escapes execBreak /
// execContinue (it is a no-op there); depth>=1 propagates by panic. The loop
// that catches a signal of depth 1 absorbs it (break) or moves to the next
// iteration (continue); a deeper one is re-raised with depth-1.
//
// forSwitch distinguishes a switch's own case-level break/continue (its
// fall-through mechanic) from an ordinary loop-targeting signal. Spec §9
// Open Question (b) resolves switch/continue depth interaction as
// "loops-only": a switch never consumes a depth level from a signal
// created inside a loop nested in one of its cases, so such signals must
// pass through a switch's own stack frame untouched. Rather than have
// switch inspect depth values to guess intent, the signal is tagged at the
// point it's created (interpreter_exec.go execBreak/execContinue, based on
// whether a loop is the nearest dynamically enclosing construct) — loops
// only ever produce forSwitch=false signals, switch fall-through only ever
// produces forSwitch=true ones, so the two mechanics never collide.
type breakSignal struct {
	depth     int
	forSwitch bool
}
type continueSignal struct {
	depth     int
	forSwitch bool
}

// catchSignal recovers a panic produced by throw/raiseValue into a Go error,
// for use at boundaries (Interpreter.Run, module loads, the REPL) that must
// turn panics back into ordinary (Value, error) returns.
func catchSignal(err *error) {
	switch r := recover().(type) {
	case nil:
		return
	case *Error:
		*err = r
	case returnSignal:
		*err = newErr(SyntaxError, Span{}, "return used outside of a function")
	case breakSignal:
		*err = newErr(SyntaxError, Span{}, "break used outside of a loop")
	case continueSignal:
		*err = newErr(SyntaxError, Span{}, "continue used outside of a loop")
	default:
		panic(r)
	}
}
