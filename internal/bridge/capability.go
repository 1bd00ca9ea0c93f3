package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// Handler implements one capability for one platform
type Handler interface {
	Handle(ctx context.Context, call Call) (any, error)
}

// HandlerFunc adapts an ordinary function to the Handler interface
type HandlerFunc func(ctx context.Context, call Call) (any, error)

// Handle calls f(ctx, call)
func (f HandlerFunc) Handle(ctx context.Context, call Call) (any, error) {
	return f(ctx, call)
}

// ValueFunc adapts a zero-argument, never-failing function to a Handler
func ValueFunc[T any](fn func() T) Handler {
	return HandlerFunc(func(context.Context, Call) (any, error) {
		return fn(), nil
	})
}

// Parameter types accepted in a capability declaration
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
	TypeAny     = "any"
)

// Parameter declares one argument of a capability
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Required    bool   `json:"required" yaml:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Capability is a named operation served by a Dispatcher
type Capability struct {
	Name        string
	Description string
	Parameters  []Parameter
	Handler     Handler
}

// CapabilityInfo describes a registered capability without its handler
type CapabilityInfo struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters,omitempty"`
}

func (c Capability) info() CapabilityInfo {
	params := make([]Parameter, len(c.Parameters))
	copy(params, c.Parameters)
	return CapabilityInfo{
		Name:        c.Name,
		Description: c.Description,
		Parameters:  params,
	}
}

// validate checks the call's arguments against the declared parameters.
// Undeclared arguments are allowed and passed through to the handler.
func (c Capability) validate(call Call) error {
	var missing []string
	for _, p := range c.Parameters {
		v, ok := call.Argument(p.Name)
		if !ok || v == nil {
			if p.Required {
				missing = append(missing, p.Name)
			}
			continue
		}
		if !matchesType(p.Type, v) {
			return NewHandlerFailure(CodeInvalidArgument,
				"argument %q of %s must be of type %s, got %T", p.Name, c.Name, p.Type, v)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		f := NewHandlerFailure(CodeInvalidArgument,
			"missing required argument(s) for %s: %v", c.Name, missing)
		f.Details = map[string]any{"missing": missing}
		return f
	}
	return nil
}

func matchesType(paramType string, v any) bool {
	switch paramType {
	case "", TypeAny:
		return true
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeNumber:
		switch v.(type) {
		case float64, float32, int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64, json.Number:
			return true
		}
		return false
	case TypeObject:
		_, ok := v.(map[string]any)
		return ok
	case TypeArray:
		_, ok := v.([]any)
		return ok
	default:
		return false
	}
}

// IsValidParameterType reports whether t may be used in a Parameter declaration
func IsValidParameterType(t string) bool {
	switch t {
	case "", TypeAny, TypeString, TypeBoolean, TypeNumber, TypeObject, TypeArray:
		return true
	}
	return false
}

func checkCapability(c Capability) error {
	if c.Name == "" {
		return ErrEmptyCapabilityName
	}
	if c.Handler == nil {
		return fmt.Errorf("%w: %s", ErrCapabilityHandlerMissing, c.Name)
	}
	for _, p := range c.Parameters {
		if p.Name == "" {
			return fmt.Errorf("capability %s declares a parameter without a name", c.Name)
		}
		if !IsValidParameterType(p.Type) {
			return fmt.Errorf("capability %s parameter %s has unknown type %q", c.Name, p.Name, p.Type)
		}
	}
	return nil
}
