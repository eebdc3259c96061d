// Package worker contains the mail-dispatch worker consumed by
// cmd/mizan-worker.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"mizan/internal/amqp"
	"mizan/internal/mail"
)

// MailWorker delivers queued mails through the configured mailer.
type MailWorker struct {
	mailer mail.Mailer
}

func NewMailWorker(mailer mail.Mailer) *MailWorker {
	return &MailWorker{mailer: mailer}
}

// HandleDispatch processes a single queued mail. A delivery error is
// returned to the consumer so the message is requeued.
func (w *MailWorker) HandleDispatch(ctx context.Context, msg *amqp.MailDispatchMessage) error {
	if msg.Mail.To == "" {
		// Drop silently rather than requeue forever.
		slog.WarnContext(ctx, "Discarding mail dispatch without recipient")
		return nil
	}

	if err := w.mailer.Send(ctx, msg.Mail); err != nil {
		return fmt.Errorf("deliver mail: %w", err)
	}

	slog.InfoContext(ctx, "Mail delivered",
		"to", msg.Mail.To,
		"subject", msg.Mail.Subject,
		"queued_at", msg.Timestamp)
	return nil
}
