package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"pulsecheck-service/internal/app/config"
	"pulsecheck-service/internal/app/contracts"
	"pulsecheck-service/internal/app/drivers/mailer"
	"pulsecheck-service/internal/pkg/constvars"
	"pulsecheck-service/internal/pkg/dto/requests"
	"pulsecheck-service/internal/pkg/exceptions"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type mailerService struct {
	Channel        *amqp091.Channel
	SMTPClient     *mailer.SMTPClient
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

func NewMailerService(
	connection *amqp091.Connection,
	smtpClient *mailer.SMTPClient,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) (contracts.MailerService, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, err
	}
	if _, err := channel.QueueDeclare(internalConfig.App.RabbitMQMailerQueue, true, false, false, false, nil); err != nil {
		return nil, err
	}

	return &mailerService{
		Channel:        channel,
		SMTPClient:     smtpClient,
		InternalConfig: internalConfig,
		Log:            logger,
	}, nil
}

func (s *mailerService) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	body, err := json.Marshal(request)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = s.Channel.PublishWithContext(ctx, "", s.InternalConfig.App.RabbitMQMailerQueue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		return exceptions.ErrRabbitMQPublish(err)
	}

	s.Log.Info("alert email enqueued",
		zap.String(constvars.LoggingQueueKey, s.InternalConfig.App.RabbitMQMailerQueue),
	)
	return nil
}

func (s *mailerService) SendEmailDirect(to, subject, body string) error {
	message := strings.Join([]string{
		"From: " + s.SMTPClient.EmailSender,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	address := fmt.Sprintf("%s:%d", s.SMTPClient.Host, s.SMTPClient.Port)
	err := smtp.SendMail(address, s.SMTPClient.Auth, s.SMTPClient.EmailSender, []string{to}, []byte(message))
	if err != nil {
		return exceptions.ErrSMTPSendEmail(err, s.SMTPClient.Host)
	}
	return nil
}
