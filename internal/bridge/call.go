package bridge

// Call is a single named request delivered to a Dispatcher
type Call struct {
	Method    string
	arguments map[string]any
}

// NewCall creates a Call. The argument map is copied so later changes by the
// caller do not affect the call.
func NewCall(method string, arguments map[string]any) Call {
	var args map[string]any
	if len(arguments) > 0 {
		args = make(map[string]any, len(arguments))
		for k, v := range arguments {
			args[k] = v
		}
	}
	return Call{Method: method, arguments: args}
}

// Arguments returns a copy of the call's arguments, or nil when none were given
func (c Call) Arguments() map[string]any {
	if c.arguments == nil {
		return nil
	}
	out := make(map[string]any, len(c.arguments))
	for k, v := range c.arguments {
		out[k] = v
	}
	return out
}

// Argument returns a single argument value
func (c Call) Argument(name string) (any, bool) {
	v, ok := c.arguments[name]
	return v, ok
}

// StringArgument returns a string argument, or "" when absent or of another type
func (c Call) StringArgument(name string) string {
	s, _ := c.arguments[name].(string)
	return s
}
