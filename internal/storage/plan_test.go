package storage

import (
	"testing"
	"time"

	"fam-bot/internal/competition"
)

func TestPlanUpsert(t *testing.T) {
	stored := &Competition{
		ContentHash:   "abc",
		EnrollmentURL: "https://example.org/inscritos",
	}

	tests := []struct {
		name          string
		existing      *Competition
		hash          string
		enrollmentURL string
		want          Action
	}{
		{
			name: "new competition",
			hash: "abc",
			want: ActionCreate,
		},
		{
			name:          "unchanged document is a noop",
			existing:      stored,
			hash:          "abc",
			enrollmentURL: "https://example.org/inscritos",
			want:          ActionNoop,
		},
		{
			name:          "changed hash updates",
			existing:      stored,
			hash:          "def",
			enrollmentURL: "https://example.org/inscritos",
			want:          ActionUpdate,
		},
		{
			name:          "enrollment link alone triggers update",
			existing:      stored,
			hash:          "abc",
			enrollmentURL: "https://example.org/nuevos-inscritos",
			want:          ActionUpdate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlanUpsert(tt.existing, tt.hash, tt.enrollmentURL); got != tt.want {
				t.Errorf("PlanUpsert() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlanUpsertIdempotent(t *testing.T) {
	existing := &Competition{ContentHash: "abc", EnrollmentURL: ""}
	for i := 0; i < 3; i++ {
		if got := PlanUpsert(existing, "abc", ""); got != ActionNoop {
			t.Fatalf("replanning unchanged input %d = %v, want noop", i, got)
		}
	}
}

func TestCompetitionRoundTrip(t *testing.T) {
	dc := &competition.Competition{
		Name:            "Campeonato de Madrid Sub20",
		Date:            time.Date(2026, time.January, 17, 0, 0, 0, 0, time.UTC),
		AdditionalDates: []time.Time{time.Date(2026, time.January, 18, 0, 0, 0, 0, time.UTC)},
		Venue:           "Gallur",
		DocumentURL:     "https://example.org/reglamento.pdf",
		EnrollmentURL:   "https://example.org/inscritos",
		ContentHash:     "abc",
		Type:            "PC",
		Events: []competition.Event{
			{
				Discipline:    "60",
				Type:          competition.EventTypeTrack,
				Sex:           competition.SexFemale,
				ScheduledTime: "10:00",
				Category:      "Sub20",
			},
		},
	}

	row := NewCompetition(dc)
	if row.AdditionalDates != "2026-01-18" {
		t.Errorf("AdditionalDates column = %q", row.AdditionalDates)
	}

	back := row.Domain()
	if back.Name != dc.Name || !back.Date.Equal(dc.Date) || back.Venue != dc.Venue {
		t.Errorf("round trip changed competition: %+v", back)
	}
	if len(back.AdditionalDates) != 1 || !back.AdditionalDates[0].Equal(dc.AdditionalDates[0]) {
		t.Errorf("round trip changed additional dates: %v", back.AdditionalDates)
	}
	if len(back.Events) != 1 || back.Events[0] != dc.Events[0] {
		t.Errorf("round trip changed events: %+v", back.Events)
	}
}

func TestAdditionalDatesEmpty(t *testing.T) {
	c := &Competition{}
	c.SetAdditionalDates(nil)
	if c.AdditionalDates != "" {
		t.Errorf("AdditionalDates = %q, want empty", c.AdditionalDates)
	}
	if got := c.AdditionalDatesList(); got != nil {
		t.Errorf("AdditionalDatesList() = %v, want nil", got)
	}
}
