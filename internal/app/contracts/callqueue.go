package contracts

import (
	"context"
	"pulsecheck-service/internal/pkg/dto/requests"
)

type CallQueueService interface {
	// EnqueueCall publishes a dial-out request for the external dialer to consume.
	EnqueueCall(ctx context.Context, request *requests.CallRequest) error
}
