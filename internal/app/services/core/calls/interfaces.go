package calls

import (
	"context"
	"pulsecheck-service/internal/pkg/dto/responses"
)

type CallUsecase interface {
	// EnqueueCall pushes one dial-out request for the patient onto the queue.
	EnqueueCall(ctx context.Context, patientID string) (*responses.CallEnqueued, error)
	// DispatchDailyCalls enqueues every active patient still inside the monitoring
	// window and returns how many requests were published.
	DispatchDailyCalls(ctx context.Context) (int, error)
}
