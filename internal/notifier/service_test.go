package notifier

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"fam-bot/internal/storage"
)

type fakeComps struct {
	comps []*storage.Competition
	err   error
}

func (f *fakeComps) Upcoming(context.Context, time.Time, time.Time) ([]*storage.Competition, error) {
	return f.comps, f.err
}

type fakeSubs struct {
	subs []*storage.Subscription
}

func (f *fakeSubs) AllWithUsers(context.Context) ([]*storage.Subscription, error) {
	return f.subs, nil
}

type fakeDeliveries struct {
	sent   map[[2]int64]bool
	logged [][2]int64
}

func (f *fakeDeliveries) WasNotified(_ context.Context, userID, eventID int64) (bool, error) {
	return f.sent[[2]int64{userID, eventID}], nil
}

func (f *fakeDeliveries) Log(_ context.Context, userID, eventID int64, _ string) error {
	f.logged = append(f.logged, [2]int64{userID, eventID})
	return nil
}

type fakeSender struct {
	messages map[int64][]string
	err      error
}

func (f *fakeSender) Send(_ context.Context, chatID int64, html string) error {
	if f.err != nil {
		return f.err
	}
	if f.messages == nil {
		f.messages = map[int64][]string{}
	}
	f.messages[chatID] = append(f.messages[chatID], html)
	return nil
}

func testCompetition() *storage.Competition {
	return &storage.Competition{
		ID:     1,
		Name:   "Campeonato de Madrid",
		Date:   time.Date(2026, time.January, 17, 0, 0, 0, 0, time.UTC),
		Venue:  "Gallur",
		PDFURL: "https://example.org/reglamento.pdf",
		Events: []*storage.Event{
			{ID: 10, CompetitionID: 1, Discipline: "60", Type: "carrera", Sex: "F", ScheduledTime: "10:00"},
			{ID: 11, CompetitionID: 1, Discipline: "Altura", Type: "concurso", Sex: "M"},
		},
	}
}

func subscriber(userID, telegramID int64, disc, sex string) *storage.Subscription {
	return &storage.Subscription{
		UserID:     userID,
		Discipline: disc,
		Sex:        sex,
		User:       &storage.User{ID: userID, TelegramID: telegramID},
	}
}

func newTestService(comps *fakeComps, subs *fakeSubs, del *fakeDeliveries, sender *fakeSender) *Service {
	s := NewService(comps, subs, del, sender, zap.NewNop())
	s.now = func() time.Time { return time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestRunDeliversMatchingEvents(t *testing.T) {
	del := &fakeDeliveries{}
	sender := &fakeSender{}
	svc := newTestService(
		&fakeComps{comps: []*storage.Competition{testCompetition()}},
		&fakeSubs{subs: []*storage.Subscription{subscriber(5, 500, "60", "F")}},
		del, sender,
	)

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.UsersNotified != 1 || stats.EventsNotified != 1 || stats.Skipped != 0 {
		t.Errorf("stats = %+v", stats)
	}
	msgs := sender.messages[500]
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	for _, want := range []string{"Campeonato de Madrid", "👩 60 Femenino", "<b>10:00</b>", "Reglamento"} {
		if !strings.Contains(msgs[0], want) {
			t.Errorf("message missing %q:\n%s", want, msgs[0])
		}
	}
	if len(del.logged) != 1 || del.logged[0] != [2]int64{5, 10} {
		t.Errorf("logged = %v", del.logged)
	}
}

func TestRunSkipsAlreadyNotified(t *testing.T) {
	del := &fakeDeliveries{sent: map[[2]int64]bool{{5, 10}: true}}
	sender := &fakeSender{}
	svc := newTestService(
		&fakeComps{comps: []*storage.Competition{testCompetition()}},
		&fakeSubs{subs: []*storage.Subscription{subscriber(5, 500, "60", "F")}},
		del, sender,
	)

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.UsersNotified != 0 || stats.Skipped != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if len(sender.messages) != 0 {
		t.Errorf("unexpected messages: %v", sender.messages)
	}
}

func TestRunCaseInsensitiveDisciplineMatch(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(
		&fakeComps{comps: []*storage.Competition{testCompetition()}},
		&fakeSubs{subs: []*storage.Subscription{subscriber(5, 500, "ALTURA", "M")}},
		&fakeDeliveries{}, sender,
	)

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.EventsNotified != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRunGroupsPerUser(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(
		&fakeComps{comps: []*storage.Competition{testCompetition()}},
		&fakeSubs{subs: []*storage.Subscription{
			subscriber(5, 500, "60", "F"),
			subscriber(5, 500, "Altura", "M"),
		}},
		&fakeDeliveries{}, sender,
	)

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.UsersNotified != 1 || stats.EventsNotified != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if len(sender.messages[500]) != 1 {
		t.Fatalf("got %d messages, want one grouped message", len(sender.messages[500]))
	}
}

func TestRunFailedDeliveryNotLogged(t *testing.T) {
	del := &fakeDeliveries{}
	svc := newTestService(
		&fakeComps{comps: []*storage.Competition{testCompetition()}},
		&fakeSubs{subs: []*storage.Subscription{subscriber(5, 500, "60", "F")}},
		del, &fakeSender{err: errors.New("blocked")},
	)

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Errors != 1 || stats.UsersNotified != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if len(del.logged) != 0 {
		t.Errorf("failed delivery was logged: %v", del.logged)
	}
}

func TestFormatMessageModifiedMarker(t *testing.T) {
	comp := testCompetition()
	comp.HasModifications = true
	msg := formatMessage([]pending{{comp: comp, event: comp.Events[0]}})
	if !strings.Contains(msg, "Horario modificado") {
		t.Errorf("message missing modification marker:\n%s", msg)
	}
	if !strings.Contains(msg, "/mis_pruebas") {
		t.Errorf("message missing footer:\n%s", msg)
	}
}
