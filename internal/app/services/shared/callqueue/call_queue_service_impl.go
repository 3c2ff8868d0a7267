package callqueue

import (
	"context"
	"pulsecheck-service/internal/app/contracts"
	"pulsecheck-service/internal/pkg/constvars"
	"pulsecheck-service/internal/pkg/dto/requests"
	"pulsecheck-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	DialoutQueueName    = "patient_dialout_queue"
	dialoutDLQName      = "patient_dialout_queue_dlq"
	publishConfirmLimit = 5 * time.Second
)

type callQueueService struct {
	Channel *amqp091.Channel
	Log     *zap.Logger
}

// NewCallQueueService declares the durable dial-out queue with its dead-letter pair and
// puts the channel in confirm mode, so a publish only succeeds once the broker owns it.
func NewCallQueueService(connection *amqp091.Connection, logger *zap.Logger) (contracts.CallQueueService, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, err
	}

	if _, err := channel.QueueDeclare(dialoutDLQName, true, false, false, false, nil); err != nil {
		return nil, err
	}
	if _, err := channel.QueueDeclare(DialoutQueueName, true, false, false, false, amqp091.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": dialoutDLQName,
	}); err != nil {
		return nil, err
	}
	if err := channel.Confirm(false); err != nil {
		return nil, err
	}

	return &callQueueService{Channel: channel, Log: logger}, nil
}

func (s *callQueueService) EnqueueCall(ctx context.Context, request *requests.CallRequest) error {
	body, err := json.Marshal(request)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	confirmation, err := s.Channel.PublishWithDeferredConfirmWithContext(ctx, "", DialoutQueueName, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    request.RequestID,
		Body:         body,
	})
	if err != nil {
		return exceptions.ErrRabbitMQPublish(err)
	}

	confirmCtx, cancel := context.WithTimeout(ctx, publishConfirmLimit)
	defer cancel()
	acked, err := confirmation.WaitContext(confirmCtx)
	if err != nil {
		return exceptions.ErrRabbitMQConfirmTimeout(err)
	}
	if !acked {
		return exceptions.ErrRabbitMQPublish(nil)
	}

	s.Log.Info("dial-out request published",
		zap.String(constvars.LoggingQueueKey, DialoutQueueName),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)
	return nil
}
