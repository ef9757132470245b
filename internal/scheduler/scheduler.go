// Package scheduler triggers the expiration scan on a cron schedule from
// outside the API process.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"produtos-alert/internal/domain"
	"produtos-alert/internal/logging"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

type Runner interface {
	Run(ctx context.Context) (domain.AlertResult, error)
}

type Scheduler struct {
	cron    *cron.Cron
	runner  Runner
	timeout time.Duration
	logger  *zap.Logger
}

// New registers runner under spec. Overlapping runs are skipped and a
// panicking run is recovered.
func New(spec string, loc *time.Location, runner Runner, timeout time.Duration, logger *zap.Logger) (*Scheduler, error) {
	logger = logging.OrNop(logger)
	cl := cronLogger{logger.Sugar()}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithParser(cronParser),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		runner:  runner,
		timeout: timeout,
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.logger.Info("scheduler: next run", zap.Time("at", e.Next))
	}
}

// Stop halts the schedule and returns a context done when running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunOnce performs one scan and logs its outcome.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	result, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error("scheduler: scan failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduler: scan done",
		zap.String("target_date", result.TargetDate),
		zap.Int("count", len(result.Products)),
		zap.Bool("emailed", result.Sent()))
}

// NextAfter reports when spec fires next after t.
func NextAfter(spec string, t time.Time) (time.Time, error) {
	sched, err := cronParser.Parse(spec)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(t), nil
}

type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
