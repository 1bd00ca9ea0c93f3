package bridge

// ResultKind tags the variant held by a Result
type ResultKind int

const (
	// resultUnset is the kind of the zero Result, returned alongside errors
	resultUnset ResultKind = iota
	// ResultSuccess means a capability matched and returned a value
	ResultSuccess
	// ResultNotImplemented means no capability matched the method name
	ResultNotImplemented
	// ResultFailure means a capability matched but could not produce a value
	ResultFailure
)

// String makes ResultKind satisfy the fmt.Stringer interface.
func (k ResultKind) String() string {
	switch k {
	case ResultSuccess:
		return "success"
	case ResultNotImplemented:
		return "notImplemented"
	case ResultFailure:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of dispatching one Call
type Result struct {
	kind    ResultKind
	value   any
	failure *HandlerFailure
}

// Success wraps a handler's return value
func Success(value any) Result {
	return Result{kind: ResultSuccess, value: value}
}

// NotImplemented is the result for a method name with no matching capability
func NotImplemented() Result {
	return Result{kind: ResultNotImplemented}
}

// Failure wraps a handler failure. A nil failure is recorded as a generic
// handler error so the result is never ambiguous.
func Failure(f *HandlerFailure) Result {
	if f == nil {
		f = &HandlerFailure{Code: CodeHandlerError}
	}
	return Result{kind: ResultFailure, failure: f}
}

// Kind returns the variant of the result
func (r Result) Kind() ResultKind { return r.kind }

// Value returns the success value; it is nil for other kinds
func (r Result) Value() any { return r.value }

// Failure returns the handler failure for ResultFailure, nil otherwise
func (r Result) Failure() *HandlerFailure { return r.failure }

func (r Result) IsSuccess() bool        { return r.kind == ResultSuccess }
func (r Result) IsNotImplemented() bool { return r.kind == ResultNotImplemented }
func (r Result) IsFailure() bool        { return r.kind == ResultFailure }

// IsZero reports whether r was never set by a constructor
func (r Result) IsZero() bool { return r.kind == resultUnset }
