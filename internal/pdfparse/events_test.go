package pdfparse

import (
	"testing"

	"fam-bot/internal/competition"
)

func TestClassifyTable(t *testing.T) {
	tests := []struct {
		name string
		tbl  table
		want tableKind
	}{
		{
			name: "labeled sections",
			tbl: table{
				{"CARRERAS"},
				{"10:00", "60 m", "M"},
			},
			want: kindLabeledSection,
		},
		{
			name: "labeled section mid table",
			tbl: table{
				{"10:00", "60 m", "M"},
				{"CONCURSOS"},
				{"10:30", "Altura", "F"},
			},
			want: kindLabeledSection,
		},
		{
			name: "column header",
			tbl: table{
				{"PRUEBA", "SEXO", "HORA", "CATEGORÍA"},
				{"60m", "M", "10:00", "Absoluto"},
			},
			want: kindColumnHeader,
		},
		{
			name: "header row is itself an event",
			tbl: table{
				{"10:00", "Serie 1", "60 m", "M"},
				{"10:15", "Serie 2", "60 m", "M"},
			},
			want: kindAnchorHeader,
		},
		{
			name: "nothing recognizable",
			tbl: table{
				{"Cuota de inscripción", "5 euros"},
			},
			want: kindUnstructured,
		},
		{
			name: "empty",
			tbl:  nil,
			want: kindUnstructured,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyTable(tt.tbl); got != tt.want {
				t.Errorf("classifyTable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseColumnTable(t *testing.T) {
	tbl := table{
		{"PRUEBA", "SEXO", "HORA", "CATEGORÍA"},
		{"60m", "M", "10:00", "Absoluto"},
		{"Salto de altura", "F", "10:30", "Sub20"},
	}

	events := parseColumnTable(tbl)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	first := events[0]
	if first.Discipline != "60" || first.Sex != competition.SexMale || first.ScheduledTime != "10:00" {
		t.Errorf("first event = %+v", first)
	}
	if first.Type != competition.EventTypeTrack {
		t.Errorf("first event type = %q, want track", first.Type)
	}

	second := events[1]
	if second.Discipline != "Altura" || second.Sex != competition.SexFemale || second.Category != "Sub20" {
		t.Errorf("second event = %+v", second)
	}
	if second.Type != competition.EventTypeField {
		t.Errorf("second event type = %q, want field", second.Type)
	}
}

func TestParseLabeledSection(t *testing.T) {
	tbl := table{
		{"CARRERAS"},
		{"10:00", "60 m", "Masculino"},
		{"CONCURSOS"},
		{"11:00", "Pértiga", "Femenino"},
	}

	events := parseLabeledSection(tbl)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Type != competition.EventTypeTrack {
		t.Errorf("race section event type = %q", events[0].Type)
	}
	if events[1].Type != competition.EventTypeField {
		t.Errorf("field section event type = %q", events[1].Type)
	}
	if events[1].Discipline != "Pértiga" || events[1].Sex != competition.SexFemale {
		t.Errorf("field event = %+v", events[1])
	}
}

func TestParseEventRow(t *testing.T) {
	tests := []struct {
		name     string
		cells    []string
		typ      competition.EventType
		want     competition.Event
		wantSkip bool
	}{
		{
			name:  "time discipline sex",
			cells: []string{"10:00", "60 m", "M"},
			typ:   competition.EventTypeTrack,
			want: competition.Event{
				Discipline:    "60",
				Type:          competition.EventTypeTrack,
				Sex:           competition.SexMale,
				ScheduledTime: "10:00",
				Category:      "Absoluto",
			},
		},
		{
			name:  "dot time and spelled sex",
			cells: []string{"18.45", "1500 m", "Femenino"},
			typ:   "",
			want: competition.Event{
				Discipline:    "1500",
				Type:          competition.EventTypeTrack,
				Sex:           competition.SexFemale,
				ScheduledTime: "18:45",
				Category:      "Absoluto",
			},
		},
		{
			name:  "field event with category",
			cells: []string{"12:00", "Triple salto", "F", "Sub23"},
			typ:   "",
			want: competition.Event{
				Discipline:    "Triple Salto",
				Type:          competition.EventTypeField,
				Sex:           competition.SexFemale,
				ScheduledTime: "12:00",
				Category:      "Sub23",
			},
		},
		{
			name:  "sex defaults to male",
			cells: []string{"09:30", "3000 m obstáculos"},
			typ:   "",
			want: competition.Event{
				Discipline:    "3000 Obstáculos",
				Type:          competition.EventTypeTrack,
				Sex:           competition.SexMale,
				ScheduledTime: "09:30",
				Category:      "Absoluto",
			},
		},
		{
			name:     "no discipline discards row",
			cells:    []string{"10:00", "Entrega de dorsales"},
			typ:      competition.EventTypeTrack,
			wantSkip: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseEventRow(tt.cells, tt.typ)
			if tt.wantSkip {
				if ok {
					t.Fatalf("parseEventRow() = %+v, want discarded", got)
				}
				return
			}
			if !ok {
				t.Fatal("parseEventRow() discarded row")
			}
			if got != tt.want {
				t.Errorf("parseEventRow() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFindTime(t *testing.T) {
	tests := []struct {
		cells  []string
		want   string
		wantOK bool
	}{
		{[]string{"10:30"}, "10:30", true},
		{[]string{"9.05"}, "09:05", true},
		{[]string{"18h45"}, "18:45", true},
		{[]string{"25:00"}, "", false},
		{[]string{"10.000 m"}, "", false},
		{[]string{"sin hora"}, "", false},
	}
	for _, tt := range tests {
		got, ok := findTime(tt.cells)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("findTime(%v) = %q, %v, want %q, %v", tt.cells, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseSexToken(t *testing.T) {
	tests := []struct {
		in     string
		want   competition.Sex
		wantOK bool
	}{
		{"M", competition.SexMale, true},
		{"H", competition.SexMale, true},
		{"Masculino", competition.SexMale, true},
		{"F", competition.SexFemale, true},
		{"FEM", competition.SexFemale, true},
		{"Mujeres", competition.SexFemale, true},
		{"categoría femenina", competition.SexFemale, true},
		{"60 m", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := parseSexToken(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseSexToken(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDedupeEvents(t *testing.T) {
	ev := competition.Event{Discipline: "60", Type: competition.EventTypeTrack, Sex: competition.SexMale, Category: "Absoluto"}
	other := ev
	other.Sex = competition.SexFemale

	got := dedupeEvents([]competition.Event{ev, other, ev})
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0] != ev || got[1] != other {
		t.Errorf("dedupeEvents reordered events: %+v", got)
	}
}
