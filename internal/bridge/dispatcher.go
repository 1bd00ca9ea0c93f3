package bridge

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Dispatcher routes calls to capability handlers. It is immutable after
// construction and safe for concurrent use.
type Dispatcher struct {
	capabilities map[string]Capability
	names        []string
}

// NewDispatcher creates a dispatcher serving the given capabilities
func NewDispatcher(caps ...Capability) (*Dispatcher, error) {
	d := &Dispatcher{
		capabilities: make(map[string]Capability, len(caps)),
		names:        make([]string, 0, len(caps)),
	}

	for _, c := range caps {
		if err := checkCapability(c); err != nil {
			return nil, err
		}
		if _, exists := d.capabilities[c.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCapability, c.Name)
		}
		params := make([]Parameter, len(c.Parameters))
		copy(params, c.Parameters)
		c.Parameters = params

		d.capabilities[c.Name] = c
		d.names = append(d.names, c.Name)
	}
	sort.Strings(d.names)

	return d, nil
}

// Dispatch handles one call and always produces exactly one Result.
// An unknown method name, including the empty name, yields NotImplemented.
func (d *Dispatcher) Dispatch(ctx context.Context, call Call) (res Result) {
	c, ok := d.capabilities[call.Method]
	if !ok {
		return NotImplemented()
	}

	if err := c.validate(call); err != nil {
		return failureFromError(err)
	}

	defer func() {
		if r := recover(); r != nil {
			res = Failure(NewHandlerFailure(CodeHandlerPanic, "%s panicked: %v", c.Name, r))
		}
	}()

	value, err := c.Handler.Handle(ctx, call)
	if err != nil {
		return failureFromError(err)
	}
	return Success(value)
}

// Has reports whether a capability with this exact name is registered
func (d *Dispatcher) Has(name string) bool {
	_, ok := d.capabilities[name]
	return ok
}

// Names returns the registered capability names in sorted order
func (d *Dispatcher) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Capabilities returns descriptors for all registered capabilities, sorted by name
func (d *Dispatcher) Capabilities() []CapabilityInfo {
	infos := make([]CapabilityInfo, 0, len(d.names))
	for _, name := range d.names {
		infos = append(infos, d.capabilities[name].info())
	}
	return infos
}

// Capability returns the descriptor for one capability
func (d *Dispatcher) Capability(name string) (CapabilityInfo, bool) {
	c, ok := d.capabilities[name]
	if !ok {
		return CapabilityInfo{}, false
	}
	return c.info(), true
}

func failureFromError(err error) Result {
	var f *HandlerFailure
	if errors.As(err, &f) {
		return Failure(f)
	}
	return Failure(&HandlerFailure{Code: CodeHandlerError, Message: err.Error()})
}
