// Package pdfparse extracts structured competition announcements from the
// federation's reglamento PDFs.
//
// The documents have no stable schema, so extraction is layered: labeled
// schedule sections, recognizable column headers, header-as-event time
// grids and finally a keyword scan over unstructured cells. Each table is
// classified once and routed to a dedicated parser for its shape. Nothing
// past opening the document is fatal; missing fields degrade to defaults
// and a PDF that yields no events still produces a valid competition.
package pdfparse
