package channel

import (
	"encoding/json"
	"fmt"

	"rzdio/internal/bridge"
)

// Codec converts calls and results to and from their wire form
type Codec interface {
	EncodeCall(call bridge.Call) ([]byte, error)
	DecodeCall(data []byte) (bridge.Call, error)
	EncodeResult(res bridge.Result) ([]byte, error)
	DecodeResult(data []byte) (bridge.Result, error)
}

// Result envelope status values
const (
	StatusSuccess        = "success"
	StatusNotImplemented = "notImplemented"
	StatusError          = "error"
)

// JSONCodec encodes calls as {"method": ..., "arguments": {...}} and results
// as status envelopes.
type JSONCodec struct{}

type callEnvelope struct {
	Method    *string        `json:"method"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

type resultEnvelope struct {
	Status  string          `json:"status"`
	Value   json.RawMessage `json:"value,omitempty"`
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`
}

func (JSONCodec) EncodeCall(call bridge.Call) ([]byte, error) {
	method := call.Method
	return json.Marshal(callEnvelope{Method: &method, Arguments: call.Arguments()})
}

func (JSONCodec) DecodeCall(data []byte) (bridge.Call, error) {
	var env callEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return bridge.Call{}, fmt.Errorf("%w: %v", ErrMalformedCall, err)
	}
	if env.Method == nil {
		return bridge.Call{}, ErrMissingMethod
	}
	return bridge.NewCall(*env.Method, env.Arguments), nil
}

func (JSONCodec) EncodeResult(res bridge.Result) ([]byte, error) {
	switch res.Kind() {
	case bridge.ResultSuccess:
		value, err := json.Marshal(res.Value())
		if err != nil {
			return nil, fmt.Errorf("%w: value: %v", ErrUnencodable, err)
		}
		return json.Marshal(resultEnvelope{Status: StatusSuccess, Value: value})
	case bridge.ResultNotImplemented:
		return json.Marshal(resultEnvelope{Status: StatusNotImplemented})
	case bridge.ResultFailure:
		f := res.Failure()
		env := resultEnvelope{Status: StatusError, Code: f.Code, Message: f.Message}
		if f.Details != nil {
			details, err := json.Marshal(f.Details)
			if err != nil {
				return nil, fmt.Errorf("%w: details: %v", ErrUnencodable, err)
			}
			env.Details = details
		}
		return json.Marshal(env)
	default:
		return nil, fmt.Errorf("unknown result kind %d", res.Kind())
	}
}

func (JSONCodec) DecodeResult(data []byte) (bridge.Result, error) {
	var env resultEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return bridge.Result{}, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}

	switch env.Status {
	case StatusSuccess:
		var value any
		if len(env.Value) > 0 {
			if err := json.Unmarshal(env.Value, &value); err != nil {
				return bridge.Result{}, fmt.Errorf("%w: %v", ErrMalformedResult, err)
			}
		}
		return bridge.Success(value), nil
	case StatusNotImplemented:
		return bridge.NotImplemented(), nil
	case StatusError:
		f := &bridge.HandlerFailure{Code: env.Code, Message: env.Message}
		if len(env.Details) > 0 {
			if err := json.Unmarshal(env.Details, &f.Details); err != nil {
				return bridge.Result{}, fmt.Errorf("%w: %v", ErrMalformedResult, err)
			}
		}
		return bridge.Failure(f), nil
	default:
		return bridge.Result{}, fmt.Errorf("%w: unknown status %q", ErrMalformedResult, env.Status)
	}
}
