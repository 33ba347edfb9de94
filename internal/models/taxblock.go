package models

// TaxEntry is one labelled amount in the tax block.
type TaxEntry struct {
	Label  string `json:"label"`
	Amount int    `json:"amount"`
}

// TaxBlock is the ordered mapping of withheld-tax categories to amounts.
// Which categories appear varies by document: only labels textually present
// on the payslip are included, in document-canonical order.
type TaxBlock struct {
	Entries []TaxEntry `json:"entries"`
}

// Len returns the number of categories present.
func (b *TaxBlock) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Entries)
}

// Labels returns the present category labels in canonical order.
func (b *TaxBlock) Labels() []string {
	if b == nil {
		return nil
	}
	labels := make([]string, len(b.Entries))
	for i, e := range b.Entries {
		labels[i] = e.Label
	}
	return labels
}

// Amount looks up a category by label. The second return is false when the
// category is not present on this payslip.
func (b *TaxBlock) Amount(label string) (int, bool) {
	if b == nil {
		return 0, false
	}
	for _, e := range b.Entries {
		if e.Label == label {
			return e.Amount, true
		}
	}
	return 0, false
}

// Optional returns the category as an optional Amount.
func (b *TaxBlock) Optional(label string) Amount {
	v, ok := b.Amount(label)
	return Amount{Value: v, Present: ok}
}
