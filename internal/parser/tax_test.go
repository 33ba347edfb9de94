package parser

import (
	"errors"
	"testing"

	"github.com/radomirbosak/platext/internal/document"
)

// buildTaxDoc lays out a synthetic document for the tax block parser:
// the given labels, the sick-pay marker, the two value columns at their
// computed positions, and the bank marker.
//
// Geometry (no footer, no wide claimed region):
//
//	labels at 0..k-1
//	"Sick payments" at k
//	col1 at k+6 (+1 when the annual reconciliation label is present)
//	col2 right after col1
//	"1/1" three lines after col2 ends
func buildTaxDoc(labels, col1, col2 []string) *document.Document {
	var lines []string
	lines = append(lines, labels...)
	lines = append(lines, "Sick payments")

	col1Start := len(lines) + 5
	for _, label := range labels {
		if label == LabelTaxAnnualRecon {
			col1Start++
		}
	}
	for len(lines) < col1Start {
		lines = append(lines, "filler")
	}
	lines = append(lines, col1...)
	lines = append(lines, col2...)
	lines = append(lines, "x", "y", "z")
	lines = append(lines, "1/1")
	return document.FromLines(lines)
}

func TestTaxBlockSubsets(t *testing.T) {
	values := map[string]string{
		LabelTaxAdvance:        "6 030",
		LabelTaxRelief:         "2 070",
		LabelTaxAfterRelief:    "3 960",
		LabelTaxWithheld:       "3 960",
		LabelTaxAnnualRecon:    "-1 234",
		LabelTaxSocial:         "1 950",
		LabelTaxHealth:         "1 350",
		LabelTaxReliefTaxpayer: "2 070",
		LabelMealDeduction:     "720",
		LabelTravelExpenses:    "1 500",
	}

	tests := []struct {
		name   string
		labels []string
	}{
		{"empty set", nil},
		{"full set", TaxLabels},
		{"proper subset", []string{LabelTaxAdvance, LabelTaxSocial, LabelMealDeduction}},
		{"single label", []string{LabelTaxHealth}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var col2 []string
			for _, label := range tt.labels {
				col2 = append(col2, values[label])
			}
			e := New(buildTaxDoc(tt.labels, nil, col2))

			block, err := e.TaxBlock()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if block.Len() != len(tt.labels) {
				t.Fatalf("size: got %d, want %d", block.Len(), len(tt.labels))
			}
			for i, label := range tt.labels {
				if block.Entries[i].Label != label {
					t.Errorf("key %d: got %q, want %q", i, block.Entries[i].Label, label)
				}
				want, err := ParseAmount(values[label])
				if err != nil {
					t.Fatal(err)
				}
				if block.Entries[i].Amount != want {
					t.Errorf("%s: got %d, want %d", label, block.Entries[i].Amount, want)
				}
			}
		})
	}
}

// A value may be split across the two side-by-side columns; the row value
// is the concatenation of both fragments.
func TestTaxBlockSplitValue(t *testing.T) {
	labels := []string{LabelTaxAdvance, LabelTaxSocial, LabelMealDeduction}
	col1 := []string{"6 0", "", ""}
	col2 := []string{"30", "1 950", "720"}

	e := New(buildTaxDoc(labels, col1, col2))
	block, err := e.TaxBlock()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, ok := block.Amount(LabelTaxAdvance); !ok || v != 6030 {
		t.Errorf("split value: got %d (%v), want 6030", v, ok)
	}
	if v, ok := block.Amount(LabelTaxSocial); !ok || v != 1950 {
		t.Errorf("social: got %d (%v), want 1950", v, ok)
	}
}

// When the sick-pay marker precedes the social security label the claimed
// region spans extra explanatory lines and the first column starts 19
// lines below the marker.
func TestTaxBlockWideClaimedRegion(t *testing.T) {
	lines := make([]string, 24)
	for i := range lines {
		lines[i] = "filler"
	}
	lines[0] = "Sick payments"
	lines[1] = "Social security"
	lines[19] = "1 950" // sick + 19
	lines[23] = "1/1"   // col2Start = 23 - 3 - 1 = 19

	e := New(document.FromLines(lines))
	block, err := e.TaxBlock()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if block.Len() != 1 {
		t.Fatalf("size: got %d, want 1", block.Len())
	}
	if v, ok := block.Amount(LabelTaxSocial); !ok || v != 1950 {
		t.Errorf("social: got %d (%v), want 1950", v, ok)
	}
}

// A region shorter than the key count must fail, never truncate.
func TestTaxBlockRegionTooShort(t *testing.T) {
	// The bank marker sits so close to the start that the second column
	// region cannot hold three values.
	labels := []string{LabelTaxAdvance, LabelTaxSocial, LabelMealDeduction}
	lines := []string{
		labels[0], labels[1], labels[2],
		"Sick payments",
		"1/1",
		"f", "f", "f",
	}
	e := New(document.FromLines(lines))

	_, err := e.TaxBlock()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var se *StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("expected StructuralError, got %T: %v", err, err)
	}
}

func TestTaxBlockParseErrorNamesLabel(t *testing.T) {
	labels := []string{LabelTaxAdvance, LabelTaxSocial}
	col2 := []string{"6 030", "garbage"}

	e := New(buildTaxDoc(labels, nil, col2))
	_, err := e.TaxBlock()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
	if pe.Field != LabelTaxSocial {
		t.Errorf("error label: got %q, want %q", pe.Field, LabelTaxSocial)
	}
	if len(pe.Fragments) != 2 || pe.Fragments[1] != "garbage" {
		t.Errorf("error fragments: got %v", pe.Fragments)
	}
}

// The memoized block is a pure cache: repeated calls return equal results.
func TestTaxBlockMemoized(t *testing.T) {
	labels := []string{LabelTaxAdvance}
	e := New(buildTaxDoc(labels, nil, []string{"6 030"}))

	first, err := e.TaxBlock()
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.TaxBlock()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the same memoized block")
	}
	if v, _ := second.Amount(LabelTaxAdvance); v != 6030 {
		t.Errorf("got %d, want 6030", v)
	}
}
