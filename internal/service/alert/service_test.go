package alert

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"produtos-alert/internal/domain"
	"produtos-alert/internal/mailer"
)

type stubLister struct {
	products []domain.Product
	err      error
	lastDate string
}

func (s *stubLister) ExpiringOn(_ context.Context, date string) ([]domain.Product, error) {
	s.lastDate = date
	return s.products, s.err
}

type stubSender struct {
	sent []mailer.Message
	id   string
	err  error
}

func (s *stubSender) Send(_ context.Context, msg mailer.Message) (string, error) {
	s.sent = append(s.sent, msg)
	return s.id, s.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTargetDate_NoZoneShift(t *testing.T) {
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("UTC-12", -12*3600),
		time.FixedZone("UTC+14", 14*3600),
	}
	for _, loc := range zones {
		for _, hour := range []int{0, 12, 23} {
			now := time.Date(2024, time.January, 1, hour, 59, 0, 0, loc)
			if got := TargetDate(now); got != "2024-01-08" {
				t.Fatalf("zone %s hour %d: expected 2024-01-08, got %s", loc, hour, got)
			}
		}
	}
}

func TestTargetDate_DSTGapAtMidnight(t *testing.T) {
	// Santiago skips 00:00-00:59 on 2024-09-08
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	now := time.Date(2024, time.September, 1, 0, 30, 0, 0, loc)
	if got := TargetDate(now); got != "2024-09-08" {
		t.Fatalf("expected 2024-09-08, got %s", got)
	}
}

func TestTargetDate_CrossesMonthAndYear(t *testing.T) {
	cases := map[string]time.Time{
		"2024-03-02": time.Date(2024, time.February, 24, 10, 0, 0, 0, time.UTC),
		"2025-01-05": time.Date(2024, time.December, 29, 10, 0, 0, 0, time.UTC),
		"2023-03-07": time.Date(2023, time.February, 28, 10, 0, 0, 0, time.UTC),
	}
	for want, now := range cases {
		if got := TargetDate(now); got != want {
			t.Fatalf("from %s expected %s, got %s", now.Format(time.RFC3339), want, got)
		}
	}
}

func TestRun_NoMatchesSendsNothing(t *testing.T) {
	lister := &stubLister{products: []domain.Product{}}
	sender := &stubSender{}
	svc := New(lister, sender, Options{Now: fixedClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))})

	res, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lister.lastDate != "2024-01-08" {
		t.Fatalf("expected query for 2024-01-08, got %q", lister.lastDate)
	}
	if res.Sent() || len(sender.sent) != 0 {
		t.Fatalf("expected no email, got %+v", sender.sent)
	}
}

func TestRun_SendsOneEmail(t *testing.T) {
	lister := &stubLister{products: []domain.Product{
		{ID: 1, Name: "Milk", ExpirationDate: "2024-01-08"},
		{ID: 2, Name: "Eggs", ExpirationDate: "2024-01-08"},
		{ID: 3, Name: "Tom & Jerry's <cheese>", ExpirationDate: "2024-01-08"},
	}}
	sender := &stubSender{id: "email-1"}
	svc := New(lister, sender, Options{
		From: "alerts@example.com",
		To:   "ops@example.com",
		Now:  fixedClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)),
	})

	res, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected exactly one email, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.From != "alerts@example.com" || msg.To != "ops@example.com" {
		t.Fatalf("unexpected addresses %+v", msg)
	}
	if !strings.Contains(msg.Subject, "3") {
		t.Fatalf("expected count in subject, got %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "2024-01-08") {
		t.Fatalf("expected target date in body: %s", msg.HTML)
	}
	if strings.Count(msg.HTML, "<li>") != 3 || !strings.Contains(msg.HTML, "<li>Milk</li>") || !strings.Contains(msg.HTML, "<li>Eggs</li>") {
		t.Fatalf("expected one <li> per product: %s", msg.HTML)
	}
	if strings.Contains(msg.HTML, "<cheese>") {
		t.Fatalf("expected product names escaped: %s", msg.HTML)
	}
	if len(res.Products) != 3 || res.EmailID != "email-1" || res.TargetDate != "2024-01-08" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRun_EmailErrorDiscardsResult(t *testing.T) {
	lister := &stubLister{products: []domain.Product{{ID: 1, Name: "Milk"}}}
	sender := &stubSender{err: errors.New("resend: invalid api key")}
	svc := New(lister, sender, Options{Now: fixedClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)), SendTimeout: time.Second})

	res, err := svc.Run(context.Background())
	if err == nil || err.Error() != "resend: invalid api key" {
		t.Fatalf("expected email error, got %v", err)
	}
	if len(res.Products) != 0 {
		t.Fatalf("expected result discarded, got %+v", res)
	}
}

func TestRun_StoreErrorSkipsEmail(t *testing.T) {
	lister := &stubLister{err: errors.New("relation \"produtos\" does not exist")}
	sender := &stubSender{}
	svc := New(lister, sender, Options{Now: fixedClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))})

	if _, err := svc.Run(context.Background()); err == nil {
		t.Fatalf("expected store error")
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no email")
	}
}
