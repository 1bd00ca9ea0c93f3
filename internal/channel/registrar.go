package channel

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"rzdio/internal/bridge"
	"rzdio/pkg/logging"

	"github.com/google/uuid"
)

// DefaultName is the channel identifier shared with the host runtime
const DefaultName = "rz_dio_client"

// Registration binds a channel name to a dispatcher. It never changes after
// it has been created.
type Registration struct {
	id         string
	name       string
	dispatcher *bridge.Dispatcher
	codec      Codec
	createdAt  time.Time
}

func (r *Registration) ID() string                     { return r.id }
func (r *Registration) Name() string                   { return r.name }
func (r *Registration) Dispatcher() *bridge.Dispatcher { return r.dispatcher }
func (r *Registration) Codec() Codec                   { return r.codec }
func (r *Registration) CreatedAt() time.Time           { return r.createdAt }

// Invoke dispatches a call on this channel
func (r *Registration) Invoke(ctx context.Context, call bridge.Call) bridge.Result {
	return r.dispatcher.Dispatch(ctx, call)
}

// HandleMessage decodes an encoded call, dispatches it and encodes the result.
// An error is returned only when the message cannot be decoded or the result
// cannot be encoded.
func (r *Registration) HandleMessage(ctx context.Context, message []byte) ([]byte, error) {
	call, err := r.codec.DecodeCall(message)
	if err != nil {
		logging.Debug("Channel", "Rejected message on %s: %v", r.name, err)
		return nil, err
	}

	res := r.Invoke(ctx, call)
	data, res, err := r.EncodeResult(res)
	logging.Debug("Channel", "%s.%s -> %s", r.name, call.Method, res.Kind())
	return data, err
}

// EncodeResult encodes res with the channel codec and returns the result that
// was actually encoded. A value the codec cannot represent is replaced by a
// handler_error failure so the caller still receives a result envelope.
func (r *Registration) EncodeResult(res bridge.Result) ([]byte, bridge.Result, error) {
	data, err := r.codec.EncodeResult(res)
	if err == nil || !errors.Is(err, ErrUnencodable) {
		return data, res, err
	}

	logging.Warn("Channel", "Result on %s cannot be encoded: %v", r.name, err)
	res = bridge.Failure(bridge.NewHandlerFailure(bridge.CodeHandlerError, "%v", err))
	data, err = r.codec.EncodeResult(res)
	return data, res, err
}

// Registrar holds the channel registrations created at startup
type Registrar struct {
	mu            sync.RWMutex
	registrations map[string]*Registration
	codec         Codec
}

// RegistrarOption configures a Registrar
type RegistrarOption func(*Registrar)

// WithCodec sets the codec used by registrations created by the registrar
func WithCodec(c Codec) RegistrarOption {
	return func(r *Registrar) {
		r.codec = c
	}
}

// NewRegistrar creates an empty registrar using the JSON codec unless overridden
func NewRegistrar(opts ...RegistrarOption) *Registrar {
	r := &Registrar{
		registrations: make(map[string]*Registration),
		codec:         JSONCodec{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds name to d. Each name may be registered once.
func (r *Registrar) Register(name string, d *bridge.Dispatcher) (*Registration, error) {
	if name == "" {
		return nil, ErrEmptyChannelName
	}
	if d == nil {
		return nil, fmt.Errorf("%w: channel %s", ErrNilDispatcher, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.registrations[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrChannelAlreadyRegistered, name)
	}

	reg := &Registration{
		id:         uuid.New().String(),
		name:       name,
		dispatcher: d,
		codec:      r.codec,
		createdAt:  time.Now(),
	}
	r.registrations[name] = reg

	logging.Info("Channel", "Registered channel %s with %d capabilities", name, len(d.Names()))

	return reg, nil
}

// Lookup returns the registration for name
func (r *Registrar) Lookup(name string) (*Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.registrations[name]
	return reg, ok
}

// List returns all registrations sorted by channel name
func (r *Registrar) List() []*Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Registration, 0, len(r.registrations))
	for _, reg := range r.registrations {
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Invoke dispatches call on the named channel. The error is reserved for an
// unknown channel; method-level outcomes are carried by the Result.
func (r *Registrar) Invoke(ctx context.Context, name string, call bridge.Call) (bridge.Result, error) {
	reg, ok := r.Lookup(name)
	if !ok {
		return bridge.Result{}, fmt.Errorf("%w: %s", ErrChannelNotFound, name)
	}
	return reg.Invoke(ctx, call), nil
}
