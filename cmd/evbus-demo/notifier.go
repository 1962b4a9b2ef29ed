package main

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultMessage = "Just a plain old default message."

// Notifier displays messages to the user. It is the scope the demo
// subscribes to the bus.
type Notifier struct {
	out    io.Writer
	logger *zap.Logger
}

func NewNotifier(out io.Writer, logger *zap.Logger) *Notifier {
	return &Notifier{out: out, logger: logger}
}

// Show writes text, or the default message when text is empty, prefixed
// with a fresh notice id so that the log entry for it can be found.
func (n *Notifier) Show(text string) error {
	msg := text
	if msg == "" {
		msg = defaultMessage
	}
	id := uuid.New()
	if _, err := fmt.Fprintf(n.out, "[%s] %s\n", id, msg); err != nil {
		return fmt.Errorf("show notice %s: %w", id, err)
	}
	n.logger.Info("notice shown", zap.Stringer("id", id), zap.Int("length", len(msg)))
	return nil
}
