package sinks

import (
	"context"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"puppet-master/sim/logging"
)

// ConsoleSink renders events through logrus so the headless runner shares
// its log formatting with operator tooling.
type ConsoleSink struct {
	logger *logrus.Logger
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &ConsoleSink{logger: logger}
}

func (s *ConsoleSink) Write(event logging.Event) error {
	if s == nil || s.logger == nil {
		return nil
	}
	entry := s.logger.WithFields(logrus.Fields{
		"tick":     event.Tick,
		"actor":    formatEntity(event.Actor),
		"category": event.Category,
	})
	if len(event.Targets) > 0 {
		entry = entry.WithField("targets", formatTargets(event.Targets))
	}
	if event.Payload != nil {
		entry = entry.WithField("payload", event.Payload)
	}
	for k, v := range event.Extra {
		entry = entry.WithField(k, v)
	}
	switch event.Severity {
	case logging.SeverityDebug:
		entry.Debug(string(event.Type))
	case logging.SeverityWarn:
		entry.Warn(string(event.Type))
	case logging.SeverityError:
		entry.Error(string(event.Type))
	default:
		entry.Info(string(event.Type))
	}
	return nil
}

func (s *ConsoleSink) Close(context.Context) error {
	return nil
}

func formatEntity(ref logging.EntityRef) string {
	if ref.ID == "" {
		return string(ref.Kind)
	}
	if ref.Kind == "" {
		return ref.ID
	}
	return string(ref.Kind) + ":" + ref.ID
}

func formatTargets(targets []logging.EntityRef) string {
	parts := make([]string, 0, len(targets))
	for _, target := range targets {
		parts = append(parts, formatEntity(target))
	}
	return strings.Join(parts, ",")
}
