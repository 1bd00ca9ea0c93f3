// Package bridge implements the request/response core of rzdio: named
// calls routed to capability handlers.
//
// # Core Concepts
//
// Call: a single named request with optional arguments. Method names are
// case-sensitive and matched exactly.
//
// Capability: a named operation the bridge can perform, such as the
// platform version lookup. Each capability declares its parameters and
// provides a Handler.
//
// Dispatcher: an immutable set of capabilities. Dispatch turns every Call
// into exactly one Result.
//
// Result: Success wrapping the handler's value, NotImplemented when no
// capability matches the method name, or Failure carrying a HandlerFailure.
// NotImplemented is a first-class outcome, not an error.
//
// # Usage
//
//	d, err := bridge.NewDispatcher(bridge.Capability{
//	    Name:    "getPlatformVersion",
//	    Handler: bridge.HandlerFunc(func(ctx context.Context, call bridge.Call) (any, error) {
//	        return "Linux 6.8", nil
//	    }),
//	})
//	res := d.Dispatch(ctx, bridge.NewCall("getPlatformVersion", nil))
//	if res.IsNotImplemented() { ... }
package bridge
