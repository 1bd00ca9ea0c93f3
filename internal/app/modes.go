package app

import (
	"context"

	"rzdio/internal/config"
	"rzdio/internal/console"
	"rzdio/pkg/logging"
)

// RunServe serves the channel until ctx is cancelled
func (a *Application) RunServe(ctx context.Context, overrides config.ServerConfig) error {
	s := a.NewServer(overrides)
	logging.Info("CLI", "Channel %s ready (%s)", a.registration.Name(), s.Endpoint())

	if err := s.Serve(ctx); err != nil {
		logging.Error("CLI", err, "Channel server stopped with error")
		return err
	}
	logging.Info("CLI", "Channel server stopped")
	return nil
}

// RunConsole runs the interactive console against the channel
func (a *Application) RunConsole(ctx context.Context) error {
	logChan := logging.InitForStream(a.logLevel, 0)
	defer logging.CloseStream()

	p := console.NewProgram(ctx, a.registration, logChan)
	if _, err := p.Run(); err != nil {
		logging.Error("Console", err, "Error running console")
		return err
	}
	return nil
}
