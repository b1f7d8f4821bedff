package noop

import (
	"context"
	"log"

	"docverify/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs run summaries to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendRunSummary(_ context.Context, toEmail string, summary port.RunSummary) error {
	log.Printf("[NOOP EMAIL] Run summary for %s to %s: status=%s processed=%d passed=%d pendencies=%d",
		summary.PersonName, toEmail, summary.OverallStatus,
		summary.Processed, summary.Passed, summary.Pendencies)
	return nil
}
