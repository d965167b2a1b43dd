// Package structure surveys a workbook's element layout in one streaming pass,
// without building a tree.
package structure

import (
	"encoding/xml"
	"errors"
	"io"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
)

// ErrNoRoot indicates the document has no root element.
var ErrNoRoot = errors.New("document has no root element")

// Span locates one first-level element in the source bytes.
type Span struct {
	Name  string
	Start int64
	End   int64
}

// Size returns the span length in bytes.
func (s Span) Size() int64 {
	return s.End - s.Start
}

// Result is the full survey outcome: the summary plus first-level spans.
type Result struct {
	Structure models.Structure
	Spans     []Span
}

// Survey reads the document token by token, counting tags, recording parent
// tags per tag, and locating every first-level element. A section is flagged
// oversized when one of its elements exceeds threshold (threshold <= 0 disables
// the flag).
func Survey(r io.Reader, threshold int64) (*Result, error) {
	s := models.Structure{
		ElementCounts: map[string]int{},
		Hierarchy:     map[string][]string{},
		Sections:      []models.Section{},
	}
	var spans []Span
	sectionIndex := map[string]int{}

	decoder := xml.NewDecoder(r)
	var stack []string
	var sectionStart int64

	for {
		offset := decoder.InputOffset()
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			tag := t.Name.Local
			s.ElementCounts[tag]++
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				if !contains(s.Hierarchy[tag], parent) {
					s.Hierarchy[tag] = append(s.Hierarchy[tag], parent)
				}
			} else if s.RootTag == "" {
				s.RootTag = tag
			}
			if _, ok := s.Hierarchy[tag]; !ok {
				s.Hierarchy[tag] = []string{}
			}
			stack = append(stack, tag)
			if len(stack) == 2 {
				sectionStart = offset
			}
		case xml.EndElement:
			if len(stack) == 2 {
				span := Span{Name: stack[1], Start: sectionStart, End: decoder.InputOffset()}
				spans = append(spans, span)
				addToSection(&s, sectionIndex, span, threshold)
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if s.RootTag == "" {
		return nil, ErrNoRoot
	}
	s.FileSizeBytes = decoder.InputOffset()
	return &Result{Structure: s, Spans: spans}, nil
}

func addToSection(s *models.Structure, index map[string]int, span Span, threshold int64) {
	i, ok := index[span.Name]
	if !ok {
		i = len(s.Sections)
		index[span.Name] = i
		s.Sections = append(s.Sections, models.Section{Name: span.Name})
	}
	sec := &s.Sections[i]
	sec.Count++
	sec.SizeBytes += span.Size()
	if threshold > 0 && span.Size() > threshold {
		sec.Oversized = true
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
