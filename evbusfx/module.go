// Package evbusfx provides an evbus.Bus to go.uber.org/fx applications.
package evbusfx

import (
	"context"

	"github.com/nkcmr/evbus"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params are the optional dependencies a Bus is built from.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    *zap.Logger          `optional:"true"`
	Registry  prometheus.Registerer `optional:"true"`
	Options   []evbus.Option       `group:"evbusopts"`
}

// Module provides *evbus.Bus. Extra options can be contributed with
// Option. The bus is reset when the application stops.
func Module() fx.Option {
	return fx.Module("evbus",
		fx.Provide(New),
	)
}

// Option contributes opt to the Bus built by Module.
func Option(opt evbus.Option) fx.Option {
	return fx.Provide(fx.Annotate(
		func() evbus.Option { return opt },
		fx.ResultTags(`group:"evbusopts"`),
	))
}

// New builds the bus from p and resets it when the application stops.
func New(p Params) *evbus.Bus {
	var opts []evbus.Option
	if p.Logger != nil {
		opts = append(opts, evbus.WithLogger(p.Logger.Named("evbus")))
	}
	if p.Registry != nil {
		opts = append(opts, evbus.WithMetrics(p.Registry))
	}
	opts = append(opts, p.Options...)

	bus := evbus.New(opts...)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			bus.Reset()
			return nil
		},
	})
	return bus
}
