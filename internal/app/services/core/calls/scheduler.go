package calls

import (
	"context"
	"pulsecheck-service/internal/app/config"
	"pulsecheck-service/internal/app/contracts"
	"pulsecheck-service/internal/pkg/constvars"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const schedulerLeaderTTL = 10 * time.Minute

// Scheduler runs the daily dial-out sweep. A redis leader lock keeps one replica per
// deployment doing the work.
type Scheduler struct {
	CallUsecase    CallUsecase
	LockerService  contracts.LockerService
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
	cron           *cron.Cron
}

func NewScheduler(
	callUsecase CallUsecase,
	lockerService contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		CallUsecase:    callUsecase,
		LockerService:  lockerService,
		InternalConfig: internalConfig,
		Log:            logger,
		cron:           cron.New(),
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.InternalConfig.Calls.CronSpec, s.runSweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.Log.Info("call scheduler started",
		zap.String("cron_spec", s.InternalConfig.Calls.CronSpec),
	)
	return nil
}

func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	acquired, lockValue, err := s.LockerService.TryLock(ctx, constvars.RedisKeyCallSchedulerLeader, schedulerLeaderTTL)
	if err != nil {
		s.Log.Error("call scheduler leader lock errored", zap.Error(err))
		return
	}
	if !acquired {
		s.Log.Info("call scheduler sweep skipped, another replica leads")
		return
	}
	defer func() {
		if unlockErr := s.LockerService.Unlock(ctx, constvars.RedisKeyCallSchedulerLeader, lockValue); unlockErr != nil {
			s.Log.Warn("call scheduler leader unlock failed", zap.Error(unlockErr))
		}
	}()

	dispatched, err := s.CallUsecase.DispatchDailyCalls(ctx)
	if err != nil {
		s.Log.Error("call scheduler sweep failed",
			zap.Int("dispatched", dispatched),
			zap.Error(err),
		)
		return
	}
}
