package competition

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseCalendarDate(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		year       int
		want       time.Time
		wantExtras []time.Time
		wantOK     bool
	}{
		{
			name:   "simple day with note",
			raw:    "03.01 (S)",
			year:   2026,
			want:   date(2026, time.January, 3),
			wantOK: true,
		},
		{
			name:       "weekend range",
			raw:        "17y18.01 (S-D)",
			year:       2026,
			want:       date(2026, time.January, 17),
			wantExtras: []time.Time{date(2026, time.January, 18)},
			wantOK:     true,
		},
		{
			name:       "comma list",
			raw:        "3,4.02",
			year:       2026,
			want:       date(2026, time.February, 3),
			wantExtras: []time.Time{date(2026, time.February, 4)},
			wantOK:     true,
		},
		{
			name:   "already normalized",
			raw:    "03/01",
			year:   2026,
			want:   date(2026, time.January, 3),
			wantOK: true,
		},
		{
			name:   "overflow day rejected",
			raw:    "31.02",
			year:   2026,
			wantOK: false,
		},
		{
			name:   "empty",
			raw:    "",
			year:   2026,
			wantOK: false,
		},
		{
			name:   "garbage",
			raw:    "próximamente",
			year:   2026,
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, extras, ok := ParseCalendarDate(tt.raw, int(tt.want.Month()), tt.year)
			if ok != tt.wantOK {
				t.Fatalf("ParseCalendarDate(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseCalendarDate(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			if len(extras) != len(tt.wantExtras) {
				t.Fatalf("extras = %v, want %v", extras, tt.wantExtras)
			}
			for i := range extras {
				if !extras[i].Equal(tt.wantExtras[i]) {
					t.Errorf("extra %d = %v, want %v", i, extras[i], tt.wantExtras[i])
				}
			}
		})
	}
}

func TestParseSpanishDate(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Time
		wantOK bool
	}{
		{"03/01/2026", date(2026, time.January, 3), true},
		{"3-1-2026", date(2026, time.January, 3), true},
		{"17 y 18/01/2026", date(2026, time.January, 17), true},
		{"11 de enero de 2026", date(2026, time.January, 11), true},
		{"11 de Enero de 2026", date(2026, time.January, 11), true},
		{"sábado 11 de enero de 2026", date(2026, time.January, 11), true},
		{"31/02/2026", time.Time{}, false},
		{"sin fecha", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseSpanishDate(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ParseSpanishDate(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("ParseSpanishDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDayMonth(t *testing.T) {
	got, ok := ParseDayMonth("17/01", 2026)
	if !ok || !got.Equal(date(2026, time.January, 17)) {
		t.Errorf("ParseDayMonth = %v, %v", got, ok)
	}
	if _, ok := ParseDayMonth("pendiente", 2026); ok {
		t.Error("ParseDayMonth accepted garbage")
	}
}

func TestAllDatesSortedAndDeduped(t *testing.T) {
	c := &Competition{
		Date: date(2026, time.January, 18),
		AdditionalDates: []time.Time{
			date(2026, time.January, 17),
			date(2026, time.January, 18), // duplicate of canonical
		},
	}
	got := c.AllDates()
	if len(got) != 2 {
		t.Fatalf("AllDates() = %v, want 2 entries", got)
	}
	if !got[0].Equal(date(2026, time.January, 17)) || !got[1].Equal(date(2026, time.January, 18)) {
		t.Errorf("AllDates() = %v, want sorted ascending", got)
	}
}

func TestDateDisplay(t *testing.T) {
	single := &Competition{Date: date(2026, time.January, 17)}
	if got := single.DateDisplay(); got != "17/01/2026" {
		t.Errorf("single DateDisplay() = %q", got)
	}

	multi := &Competition{
		Date:            date(2026, time.January, 17),
		AdditionalDates: []time.Time{date(2026, time.January, 18)},
	}
	if got := multi.DateDisplay(); got != "17/01 y 18/01/2026" {
		t.Errorf("multi DateDisplay() = %q", got)
	}
}

func TestSubscriptionKey(t *testing.T) {
	ev := Event{Discipline: "Pértiga", Sex: SexFemale}
	if got := ev.SubscriptionKey(); got != "pértiga_F" {
		t.Errorf("SubscriptionKey() = %q", got)
	}
	if SubscriptionKey("PÉRTIGA", SexFemale) != ev.SubscriptionKey() {
		t.Error("SubscriptionKey is not case insensitive")
	}
}

func TestDisplayName(t *testing.T) {
	if got := (Event{Discipline: "60", Sex: SexMale}).DisplayName(); got != "60 Masculino" {
		t.Errorf("DisplayName() = %q", got)
	}
	if got := (Event{Discipline: "Altura", Sex: SexFemale}).DisplayName(); got != "Altura Femenino" {
		t.Errorf("DisplayName() = %q", got)
	}
}
