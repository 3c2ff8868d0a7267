package contracts

import (
	"context"
	"pulsecheck-service/internal/pkg/dto/requests"
)

type MailerService interface {
	// SendEmail enqueues the payload on the mailer queue for asynchronous delivery.
	SendEmail(ctx context.Context, request *requests.EmailPayload) error
	// SendEmailDirect bypasses the queue and talks to the SMTP host synchronously.
	SendEmailDirect(to, subject, body string) error
}
