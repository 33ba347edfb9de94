// Package document provides the line-indexed view of a payslip text layer
// that the field and block parsers operate on. A Document is immutable once
// built; all lookups are anchor-text substring searches.
package document

import (
	"fmt"
	"strings"
)

// NotFoundError reports that no line of the document contains the anchor text.
type NotFoundError struct {
	Needle string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("anchor text %q not found in document", e.Needle)
}

// Document is an ordered, 0-indexed sequence of text lines.
type Document struct {
	lines []string
}

// New builds a Document from a newline-delimited text blob.
func New(text string) *Document {
	return &Document{lines: strings.Split(text, "\n")}
}

// FromLines builds a Document from pre-split lines. The slice is copied.
func FromLines(lines []string) *Document {
	d := &Document{lines: make([]string, len(lines))}
	copy(d.lines, lines)
	return d
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Find returns the index of the first line containing needle as a substring.
func (d *Document) Find(needle string) (int, error) {
	for i, line := range d.lines {
		if strings.Contains(line, needle) {
			return i, nil
		}
	}
	return 0, &NotFoundError{Needle: needle}
}

// Contains reports whether any line contains needle. It never fails and is
// used for presence checks that gate optional fields.
func (d *Document) Contains(needle string) bool {
	_, err := d.Find(needle)
	return err == nil
}

// Line returns the line at index i.
func (d *Document) Line(i int) (string, error) {
	if i < 0 || i >= len(d.lines) {
		return "", fmt.Errorf("line index %d out of range [0, %d)", i, len(d.lines))
	}
	return d.lines[i], nil
}

// Slice returns the lines in [from, to), clamped to the document bounds.
// Block parsers use it to read variable-width regions whose computed
// boundaries may fall short of the document end.
func (d *Document) Slice(from, to int) []string {
	if from < 0 {
		from = 0
	}
	if to > len(d.lines) {
		to = len(d.lines)
	}
	if from >= to {
		return nil
	}
	out := make([]string, to-from)
	copy(out, d.lines[from:to])
	return out
}
