package evbusfx

import (
	"context"
	"errors"
	"testing"

	"github.com/nkcmr/evbus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"
)

type counter struct{ n int }

func (c *counter) OnTick() { c.n++ }

func TestModuleProvidesBus(t *testing.T) {
	var bus *evbus.Bus
	app := fxtest.New(t,
		Module(),
		fx.Populate(&bus),
	)
	app.RequireStart()

	c := &counter{}
	require.NoError(t, bus.Subscribe("tick", "onTick", c))
	require.NoError(t, bus.Fire("tick", nil))
	require.Equal(t, 1, c.n)

	app.RequireStop()
	require.Empty(t, bus.Names())
}

func TestModuleUsesOptionalDeps(t *testing.T) {
	var bus *evbus.Bus
	reg := prometheus.NewRegistry()
	app := fxtest.New(t,
		Module(),
		Option(evbus.WithErrorPolicy(evbus.ContinueOnError)),
		fx.Supply(zaptest.NewLogger(t)),
		fx.Provide(func() prometheus.Registerer { return reg }),
		fx.Populate(&bus),
	)
	defer app.RequireStart().RequireStop()

	scope := &counter{}
	for _, h := range []string{"a", "b"} {
		require.NoError(t, bus.SubscribeFunc("ev", h, scope, func(any) error {
			return errors.New("fail")
		}))
	}
	err := bus.Fire("ev", nil)
	require.Len(t, multierr.Errors(err), 2)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestModuleStartStop(t *testing.T) {
	app := fx.New(Module(), fx.NopLogger)
	ctx := context.Background()
	require.NoError(t, app.Start(ctx))
	require.NoError(t, app.Stop(ctx))
}
