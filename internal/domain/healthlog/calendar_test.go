package healthlog

import (
	"testing"
	"time"
)

func TestMonthGrid_February2024_SundayStart(t *testing.T) {
	weeks := MonthGrid(2024, time.February, time.Sunday, nil)

	// feb 2024 arranca jueves y tiene 29 días: 5 semanas con domingo
	if len(weeks) != 5 {
		t.Fatalf("expected 5 weeks, got %d", len(weeks))
	}
	for i, w := range weeks {
		if len(w) != 7 {
			t.Fatalf("week %d has %d cells, expected 7", i, len(w))
		}
	}

	inMonth := 0
	for _, w := range weeks {
		for _, c := range w {
			if c.InMonth {
				inMonth++
			}
		}
	}
	if inMonth != 29 {
		t.Fatalf("expected 29 in-month cells, got %d", inMonth)
	}

	// la primera celda es el domingo anterior al 1 de febrero
	first := weeks[0][0]
	if first.InMonth {
		t.Fatalf("expected leading filler cell, got in-month %v", first.Date)
	}
	if first.Date.Weekday() != time.Sunday {
		t.Fatalf("expected first cell on Sunday, got %s", first.Date.Weekday())
	}
	want := time.Date(2024, 1, 28, 0, 0, 0, 0, time.UTC)
	if !first.Date.Equal(want) {
		t.Fatalf("expected first cell %v, got %v", want, first.Date)
	}
}

func TestMonthGrid_MondayStart(t *testing.T) {
	weeks := MonthGrid(2024, time.February, time.Monday, nil)

	if weeks[0][0].Date.Weekday() != time.Monday {
		t.Fatalf("expected weeks to start on Monday, got %s", weeks[0][0].Date.Weekday())
	}
	// con lunes, el 1 de febrero (jueves) cae en la posición 3
	cell := weeks[0][3]
	if !cell.InMonth || cell.Date.Day() != 1 {
		t.Fatalf("expected Feb 1 at position 3, got %v (inMonth=%v)", cell.Date, cell.InMonth)
	}
}

func TestMonthGrid_AttachesEntriesToDay(t *testing.T) {
	entries := []Entry{
		{PetName: "Pochi", Date: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), WeightKg: 4.2},
		{PetName: "Pochi", Date: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), WeightKg: 4.3},
	}
	weeks := MonthGrid(2024, time.February, time.Sunday, entries)

	var found *Cell
	for i := range weeks {
		for j := range weeks[i] {
			if weeks[i][j].Date.Day() == 15 && weeks[i][j].InMonth {
				found = &weeks[i][j]
			}
		}
	}
	if found == nil {
		t.Fatalf("day 15 not found in grid")
	}
	if len(found.Entries) != 2 {
		t.Fatalf("expected 2 entries on Feb 15, got %d", len(found.Entries))
	}

	// los días sin registros quedan con Entries vacío
	for _, w := range weeks {
		for _, c := range w {
			if c.Date.Day() != 15 && len(c.Entries) != 0 {
				t.Fatalf("unexpected entries on %v", c.Date)
			}
		}
	}
}
