// Package competition holds the domain model produced by the extraction
// pipeline: raw calendar rows, parsed announcements and their events.
package competition

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// EventType distinguishes track events from field events.
type EventType string

const (
	EventTypeTrack EventType = "carrera"
	EventTypeField EventType = "concurso"
)

// Sex is the sex a test is scheduled for. There is no "both" value:
// "both" is expanded into two subscriptions upstream, in the bot layer.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// RawEntry is one calendar row as extracted from the federation's HTML
// listing. It is never persisted directly; the orchestrator either turns
// it into a Competition or discards it.
type RawEntry struct {
	Name          string
	DateText      string   // cleaned date text, e.g. "03/01" or "17-18/01"
	DocumentURL   string   // reglamento link; absolute
	EnrollmentURL string   // inscritos link, optional
	Venue         string
	Type          string   // short code: PC, AL, C, M, R
	Highlighted   bool     // background-marked row: schedule modified / external
	ExtraDates    []string // additional day/month strings from multi-day notations
}

// Event is one scheduled test within a competition.
type Event struct {
	Discipline    string
	Type          EventType
	Sex           Sex
	ScheduledTime string // "HH:MM", empty when not announced
	Category      string // e.g. "Absoluto", "Sub23"
}

// DisplayName renders the event for user-facing lists: "400 Masculino".
func (e Event) DisplayName() string {
	label := "Masculino"
	if e.Sex == SexFemale {
		label = "Femenino"
	}
	return fmt.Sprintf("%s %s", e.Discipline, label)
}

// SubscriptionKey is the matching key between events and subscriptions.
func (e Event) SubscriptionKey() string {
	return SubscriptionKey(e.Discipline, e.Sex)
}

// SubscriptionKey builds the canonical "discipline_sex" matching key.
func SubscriptionKey(disc string, sex Sex) string {
	return fmt.Sprintf("%s_%s", strings.ToLower(disc), sex)
}

// Competition is one announced meet with its parsed events.
type Competition struct {
	Name             string
	Date             time.Time
	AdditionalDates  []time.Time // multi-day meets; distinct from Date
	Venue            string
	DocumentURL      string
	EnrollmentURL    string
	ContentHash      string // digest of the source bytes, empty when no document
	HasModifications bool
	Type             string
	Events           []Event
}

// AllDates returns the canonical date plus the additional dates, sorted
// ascending and deduplicated.
func (c *Competition) AllDates() []time.Time {
	seen := map[string]bool{}
	var dates []time.Time
	for _, d := range append([]time.Time{c.Date}, c.AdditionalDates...) {
		d = d.Truncate(24 * time.Hour)
		key := d.Format("2006-01-02")
		if d.IsZero() || seen[key] {
			continue
		}
		seen[key] = true
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// DateDisplay renders the competition's date(s) for messages:
// "17/01/2026" or "17/01 y 18/01/2026".
func (c *Competition) DateDisplay() string {
	dates := c.AllDates()
	if len(dates) == 0 {
		return ""
	}
	if len(dates) == 1 {
		return dates[0].Format("02/01/2006")
	}
	out := ""
	for i, d := range dates {
		switch {
		case i == len(dates)-1:
			out += " y " + d.Format("02/01/2006")
		case i == 0:
			out += d.Format("02/01")
		default:
			out += ", " + d.Format("02/01")
		}
	}
	return out
}
