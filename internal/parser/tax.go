package parser

import (
	"fmt"

	"github.com/radomirbosak/platext/internal/models"
)

// taxKeys returns the recognized tax category labels present in the
// document, in canonical order.
func (e *Extractor) taxKeys() []string {
	var keys []string
	for _, label := range TaxLabels {
		if e.doc.Contains(label) {
			keys = append(keys, label)
		}
	}
	return keys
}

// wideClaimedRegion reports whether the claimed-values region spans the
// extra explanatory lines that appear when the sick-pay marker precedes
// the social security label.
func (e *Extractor) wideClaimedRegion() bool {
	sickIdx, err := e.doc.Find(anchorSickPayments)
	if err != nil {
		return false
	}
	socialIdx, err := e.doc.Find(LabelTaxSocial)
	if err != nil {
		return false
	}
	return sickIdx < socialIdx
}

// TaxBlock extracts the ordered tax-category amounts. The result is
// memoized: the computation is pure over the immutable document, so the
// cache has no observable effect beyond speed.
func (e *Extractor) TaxBlock() (*models.TaxBlock, error) {
	e.taxOnce.Do(func() {
		e.taxBlock, e.taxErr = e.parseTaxBlock()
	})
	return e.taxBlock, e.taxErr
}

// parseTaxBlock reads the variable-width region between the sick-pay and
// bank markers. The region holds two side-by-side numeric columns; a value
// may be split across both, so each row is the concatenation of its
// column-1 and column-2 fragments.
func (e *Extractor) parseTaxBlock() (*models.TaxBlock, error) {
	keys := e.taxKeys()
	k := len(keys)
	if k == 0 {
		return &models.TaxBlock{}, nil
	}

	sickIdx, err := e.doc.Find(anchorSickPayments)
	if err != nil {
		return nil, err
	}
	bankIdx, err := e.doc.Find(anchorOneOne)
	if err != nil {
		return nil, err
	}

	var col1Start int
	if e.wideClaimedRegion() {
		col1Start = sickIdx + 19
	} else {
		col1Start = sickIdx + 6
		if e.doc.Contains(LabelTaxAnnualRecon) {
			col1Start++
		}
	}

	col2Start := bankIdx - 3 - k
	if e.doc.Contains(anchorTelefon) {
		col2Start -= 2
	}

	col2 := e.doc.Slice(col2Start, col2Start+k)
	if len(col2) < k {
		return nil, &StructuralError{
			Msg: fmt.Sprintf("tax block region holds %d lines for %d categories", len(col2), k),
		}
	}

	col1 := e.doc.Slice(col1Start, col2Start)
	// Right-pad the first column: a category may have no column-1
	// contribution at all.
	for len(col1) < k {
		col1 = append(col1, "")
	}

	block := &models.TaxBlock{Entries: make([]models.TaxEntry, 0, k)}
	for i, key := range keys {
		amount, err := ParseAmount(col1[i] + col2[i])
		if err != nil {
			return nil, &ParseError{Field: key, Fragments: []string{col1[i], col2[i]}}
		}
		block.Entries = append(block.Entries, models.TaxEntry{Label: key, Amount: amount})
	}
	return block, nil
}
