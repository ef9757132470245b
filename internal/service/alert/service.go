package alert

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"

	"produtos-alert/internal/domain"
	"produtos-alert/internal/logging"
	"produtos-alert/internal/mailer"
)

// LeadDays is how far ahead of today a product's expiration triggers an alert.
const LeadDays = 7

var bodyTemplate = template.Must(template.New("alert").Parse(
	`<p>Hello!</p>
<p>The following products expire in {{.LeadDays}} days ({{.TargetDate}}):</p>
<ul>{{range .Products}}<li>{{.Name}}</li>{{end}}</ul>
`))

type productLister interface {
	ExpiringOn(ctx context.Context, date string) ([]domain.Product, error)
}

type Options struct {
	From        string
	To          string
	Now         func() time.Time
	SendTimeout time.Duration
	Logger      *zap.Logger
}

type Service struct {
	products productLister
	sender   mailer.Sender
	from     string
	to       string
	now      func() time.Time
	timeout  time.Duration
	logger   *zap.Logger
}

func New(products productLister, sender mailer.Sender, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		products: products,
		sender:   sender,
		from:     opts.From,
		to:       opts.To,
		now:      now,
		timeout:  opts.SendTimeout,
		logger:   logging.OrNop(opts.Logger),
	}
}

// TargetDate returns now's calendar date plus LeadDays. Only the year, month
// and day of now take part, so neither the zone nor a DST gap can shift it.
func TargetDate(now time.Time) string {
	y, m, d := now.Date()
	return time.Date(y, m, d+LeadDays, 12, 0, 0, 0, time.UTC).Format(domain.DateLayout)
}

// Run finds the products expiring on the target date and, when there are any,
// emails one summary. A send failure discards the scan result.
func (s *Service) Run(ctx context.Context) (domain.AlertResult, error) {
	target := TargetDate(s.now())

	products, err := s.products.ExpiringOn(ctx, target)
	if err != nil {
		return domain.AlertResult{}, err
	}
	result := domain.AlertResult{TargetDate: target, Products: products}
	if len(products) == 0 {
		s.logger.Info("alert: nothing expiring", zap.String("target_date", target))
		return result, nil
	}

	html, err := renderBody(target, products)
	if err != nil {
		return domain.AlertResult{}, err
	}

	sendCtx, cancel := s.sendContext(ctx)
	defer cancel()
	id, err := s.sender.Send(sendCtx, mailer.Message{
		From:    s.from,
		To:      s.to,
		Subject: fmt.Sprintf("Expiration alert - %d products!", len(products)),
		HTML:    html,
	})
	if err != nil {
		return domain.AlertResult{}, err
	}
	result.EmailID = id
	s.logger.Info("alert: email sent",
		zap.String("target_date", target),
		zap.Int("count", len(products)),
		zap.String("email_id", id))
	return result, nil
}

func (s *Service) sendContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func renderBody(target string, products []domain.Product) (string, error) {
	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, struct {
		LeadDays   int
		TargetDate string
		Products   []domain.Product
	}{LeadDays, target, products})
	if err != nil {
		return "", fmt.Errorf("render alert body: %w", err)
	}
	return buf.String(), nil
}
