// Command evbus-demo subscribes a notifier to an event and fires it once.
//
// Configuration comes from the environment:
//
//	EVBUS_DEMO_EVENT       event name (default "show")
//	EVBUS_DEMO_MESSAGE     message to display (default message when unset)
//	EVBUS_LOG_DEVELOPMENT  use a development logger
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nkcmr/evbus"
	"github.com/nkcmr/evbus/evbusfx"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(newLogger),
		fx.Provide(func(logger *zap.Logger) *Notifier {
			return NewNotifier(os.Stdout, logger)
		}),
		evbusfx.Module(),
		fx.Invoke(run),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := app.Stop(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg Config, bus *evbus.Bus, n *Notifier) error {
	if err := bus.Subscribe(cfg.Event, "Show", n); err != nil {
		return err
	}
	return bus.Fire(cfg.Event, cfg.Message)
}
