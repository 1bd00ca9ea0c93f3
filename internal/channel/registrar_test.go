package channel

import (
	"context"
	"sync"
	"testing"

	"rzdio/internal/bridge"
	"rzdio/internal/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDispatcher(t *testing.T, label, version string) *bridge.Dispatcher {
	t.Helper()
	d, err := bridge.NewDispatcher(platform.Capabilities(platform.Static{
		PlatformLabel:   label,
		PlatformVersion: version,
	})...)
	require.NoError(t, err)
	return d
}

func TestRegister(t *testing.T) {
	r := NewRegistrar()
	d := newDispatcher(t, "iOS", "17.0")

	reg, err := r.Register(DefaultName, d)
	require.NoError(t, err)
	assert.Equal(t, "rz_dio_client", reg.Name())
	assert.NotEmpty(t, reg.ID())
	assert.Same(t, d, reg.Dispatcher())
	assert.False(t, reg.CreatedAt().IsZero())

	found, ok := r.Lookup(DefaultName)
	require.True(t, ok)
	assert.Same(t, reg, found)

	_, ok = r.Lookup("RZ_DIO_CLIENT")
	assert.False(t, ok)
}

func TestRegister_Errors(t *testing.T) {
	r := NewRegistrar()
	d := newDispatcher(t, "iOS", "17.0")

	_, err := r.Register("", d)
	assert.ErrorIs(t, err, ErrEmptyChannelName)

	_, err = r.Register(DefaultName, nil)
	assert.ErrorIs(t, err, ErrNilDispatcher)

	_, err = r.Register(DefaultName, d)
	require.NoError(t, err)

	_, err = r.Register(DefaultName, newDispatcher(t, "macOS", "14.5"))
	assert.ErrorIs(t, err, ErrChannelAlreadyRegistered)

	// The first registration is kept.
	res, err := r.Invoke(context.Background(), DefaultName, bridge.NewCall("getPlatformVersion", nil))
	require.NoError(t, err)
	assert.Equal(t, "iOS 17.0", res.Value())
}

func TestRegistrarInvoke(t *testing.T) {
	r := NewRegistrar()
	_, err := r.Register(DefaultName, newDispatcher(t, "macOS", "14.5"))
	require.NoError(t, err)

	tests := []struct {
		name         string
		method       string
		expectedKind bridge.ResultKind
		expected     any
	}{
		{name: "registered method", method: "getPlatformVersion", expectedKind: bridge.ResultSuccess, expected: "macOS 14.5"},
		{name: "unknown method", method: "unknownMethod", expectedKind: bridge.ResultNotImplemented},
		{name: "empty method", method: "", expectedKind: bridge.ResultNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Invoke(context.Background(), DefaultName, bridge.NewCall(tt.method, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedKind, res.Kind())
			assert.Equal(t, tt.expected, res.Value())
		})
	}

	_, err = r.Invoke(context.Background(), "other_channel", bridge.NewCall("getPlatformVersion", nil))
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestRegistrarList(t *testing.T) {
	r := NewRegistrar()
	_, err := r.Register("zeta", newDispatcher(t, "iOS", "17.0"))
	require.NoError(t, err)
	_, err = r.Register("alpha", newDispatcher(t, "iOS", "17.0"))
	require.NoError(t, err)

	regs := r.List()
	require.Len(t, regs, 2)
	assert.Equal(t, "alpha", regs[0].Name())
	assert.Equal(t, "zeta", regs[1].Name())
}

func TestRegistrationConcurrentCalls(t *testing.T) {
	r := NewRegistrar()
	reg, err := r.Register(DefaultName, newDispatcher(t, "iOS", "17.0"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]bridge.Result, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			method := "getPlatformVersion"
			if i%2 == 1 {
				method = "unknownMethod"
			}
			results[i] = reg.Invoke(context.Background(), bridge.NewCall(method, nil))
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		if i%2 == 1 {
			assert.True(t, res.IsNotImplemented())
		} else {
			assert.Equal(t, "iOS 17.0", res.Value())
		}
	}
}

func TestHandleMessage(t *testing.T) {
	r := NewRegistrar()
	reg, err := r.Register(DefaultName, newDispatcher(t, "iOS", "17.0"))
	require.NoError(t, err)

	out, err := reg.HandleMessage(context.Background(), []byte(`{"method":"getPlatformVersion"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","value":"iOS 17.0"}`, string(out))

	out, err = reg.HandleMessage(context.Background(), []byte(`{"method":"unknownMethod","arguments":{"a":1}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"notImplemented"}`, string(out))

	out, err = reg.HandleMessage(context.Background(), []byte(`{"method":""}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"notImplemented"}`, string(out))

	_, err = reg.HandleMessage(context.Background(), []byte(`{"arguments":{}}`))
	assert.ErrorIs(t, err, ErrMissingMethod)

	_, err = reg.HandleMessage(context.Background(), []byte(`not json`))
	assert.ErrorIs(t, err, ErrMalformedCall)
}

func TestHandleMessage_UnencodableValue(t *testing.T) {
	d, err := bridge.NewDispatcher(bridge.Capability{
		Name: "stream",
		Handler: bridge.HandlerFunc(func(context.Context, bridge.Call) (any, error) {
			return make(chan int), nil
		}),
	})
	require.NoError(t, err)
	reg, err := NewRegistrar().Register(DefaultName, d)
	require.NoError(t, err)

	out, err := reg.HandleMessage(context.Background(), []byte(`{"method":"stream"}`))
	require.NoError(t, err)

	res, err := JSONCodec{}.DecodeResult(out)
	require.NoError(t, err)
	require.True(t, res.IsFailure())
	assert.Equal(t, bridge.CodeHandlerError, res.Failure().Code)
	assert.Contains(t, res.Failure().Message, "result cannot be encoded")
}
