package pdfparse

import (
	"strings"

	"github.com/ledongthuc/pdf"

	"fam-bot/internal/discipline"
)

// table is one reconstructed grid: rows of cell texts.
type table [][]string

const (
	// cellGap is the horizontal whitespace (in PDF points) that separates
	// two cells within a row. Smaller gaps are word spacing.
	cellGap = 12.0

	// tableGap is the vertical distance between consecutive rows that
	// starts a new table.
	tableGap = 28
)

// tableKind tags the recognized announcement table shapes. Each table is
// classified exactly once and routed to the parser for its shape.
type tableKind int

const (
	kindUnstructured tableKind = iota
	kindLabeledSection
	kindColumnHeader
	kindAnchorHeader
)

// segmentTables reconstructs tables from a page's positioned rows. Rows
// separated by a large vertical gap belong to different tables.
func segmentTables(rows pdf.Rows) []table {
	var tables []table
	var current table
	var prev int64 = -1

	for _, row := range rows {
		cells := clusterCells(row.Content)
		if len(cells) == 0 {
			continue
		}
		if prev >= 0 && absDiff(prev, row.Position) > tableGap && len(current) > 0 {
			tables = append(tables, current)
			current = nil
		}
		current = append(current, cells)
		prev = row.Position
	}
	if len(current) > 0 {
		tables = append(tables, current)
	}
	return tables
}

// clusterCells joins a row's text fragments into cells. Fragments whose
// horizontal gap exceeds cellGap start a new cell; closer fragments are
// joined with a space when visibly apart.
func clusterCells(fragments pdf.TextHorizontal) []string {
	var cells []string
	var cur strings.Builder
	prevEnd := 0.0

	flush := func() {
		if text := strings.TrimSpace(cur.String()); text != "" {
			cells = append(cells, text)
		}
		cur.Reset()
	}

	for _, frag := range fragments {
		s := strings.TrimRight(frag.S, "\r\n")
		if s == "" {
			continue
		}
		if cur.Len() > 0 {
			switch gap := frag.X - prevEnd; {
			case gap > cellGap:
				flush()
			case gap > 1:
				cur.WriteByte(' ')
			}
		}
		cur.WriteString(s)
		prevEnd = frag.X + frag.W
	}
	flush()
	return cells
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}

// classifyTable decides which shape a table has, by its first row:
// explicit CARRERAS/CONCURSOS section labels, a recognizable column
// header, a header row that is itself a scheduled event, or none.
func classifyTable(t table) tableKind {
	if len(t) == 0 {
		return kindUnstructured
	}
	for _, row := range t {
		joined := discipline.Fold(strings.Join(row, " "))
		if strings.Contains(joined, "carreras") || strings.Contains(joined, "concursos") {
			return kindLabeledSection
		}
	}
	header := discipline.Fold(strings.Join(t[0], " "))

	hits := 0
	for _, label := range []string{"prueba", "disciplina", "sexo", "hora", "categoria"} {
		if strings.Contains(header, label) {
			hits++
		}
	}
	if hits >= 2 {
		return kindColumnHeader
	}

	if len(t[0]) >= 3 {
		if _, ok := findTime(t[0]); ok {
			if _, ok := findDiscipline(t[0]); ok {
				return kindAnchorHeader
			}
		}
	}
	return kindUnstructured
}
