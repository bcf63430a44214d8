// Package ics renders competitions as iCalendar files, one VEVENT per
// meet day, so the bot can offer an "add to calendar" attachment.
package ics

import (
	"fmt"
	"strings"
	"time"

	"fam-bot/internal/competition"
	"fam-bot/internal/hash"
)

// GenerateICS generates an iCalendar (.ics) file for a competition.
// Multi-day meets produce one all-day VEVENT per day.
func GenerateICS(c *competition.Competition) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//FAM Bot//fam-bot//ES\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	now := time.Now().UTC()
	uidBase := hash.Text(c.DocumentURL + "_" + c.Name)[:16]

	for i, day := range c.AllDates() {
		ics.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&ics, "UID:%s-%d@fam-bot\r\n", uidBase, i)
		fmt.Fprintf(&ics, "DTSTAMP:%s\r\n", now.Format("20060102T150405Z"))
		fmt.Fprintf(&ics, "DTSTART;VALUE=DATE:%s\r\n", day.Format("20060102"))
		fmt.Fprintf(&ics, "DTEND;VALUE=DATE:%s\r\n", day.AddDate(0, 0, 1).Format("20060102"))
		fmt.Fprintf(&ics, "SUMMARY:%s\r\n", escapeICS(c.Name))

		description := summaryDescription(c)
		if description != "" {
			fmt.Fprintf(&ics, "DESCRIPTION:%s\r\n", escapeICS(description))
		}
		if c.Venue != "" {
			fmt.Fprintf(&ics, "LOCATION:%s\r\n", escapeICS(c.Venue))
		}
		if c.DocumentURL != "" {
			fmt.Fprintf(&ics, "URL:%s\r\n", c.DocumentURL)
		}
		ics.WriteString("STATUS:CONFIRMED\r\n")
		ics.WriteString("SEQUENCE:0\r\n")
		ics.WriteString("TRANSP:OPAQUE\r\n")
		ics.WriteString("END:VEVENT\r\n")
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

// summaryDescription lists the scheduled events, one per line.
func summaryDescription(c *competition.Competition) string {
	if len(c.Events) == 0 {
		return ""
	}
	var lines []string
	for _, ev := range c.Events {
		line := ev.DisplayName()
		if ev.ScheduledTime != "" {
			line += " a las " + ev.ScheduledTime
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// escapeICS escapes special characters according to RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
