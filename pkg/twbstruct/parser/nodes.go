// Package parser provides workbook XML extraction utilities.
//
// Every extractor is a pure function of its input node. Optional structure that
// is missing yields an empty value, never an error.
package parser

import "github.com/beevik/etree"

// attr returns the value of an attribute, or nil when the node or attribute is absent.
func attr(el *etree.Element, key string) *string {
	if el == nil {
		return nil
	}
	a := el.SelectAttr(key)
	if a == nil {
		return nil
	}
	v := a.Value
	return &v
}

// attrs returns every attribute of the node keyed by its qualified name.
func attrs(el *etree.Element) map[string]string {
	out := make(map[string]string)
	if el == nil {
		return out
	}
	for _, a := range el.Attr {
		out[a.FullKey()] = a.Value
	}
	return out
}

// child returns the first direct child with the given tag.
func child(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	return el.SelectElement(tag)
}

// children returns every direct child with the given tag.
func children(el *etree.Element, tag string) []*etree.Element {
	if el == nil {
		return nil
	}
	return el.SelectElements(tag)
}

// descendants returns every element matching a relative etree path.
func descendants(el *etree.Element, path string) []*etree.Element {
	if el == nil {
		return nil
	}
	return el.FindElements(path)
}

// text returns the leading text of the node, or nil when it is empty.
func text(el *etree.Element) *string {
	if el == nil {
		return nil
	}
	t := el.Text()
	if t == "" {
		return nil
	}
	return &t
}

// childText returns the text of the first direct child with the given tag.
func childText(el *etree.Element, tag string) *string {
	return text(child(el, tag))
}

// formattedText reads formatted-text/run text, falling back to the
// formatted-text element's own text.
func formattedText(el *etree.Element) *string {
	ft := child(el, "formatted-text")
	if ft == nil {
		return nil
	}
	if run := text(child(ft, "run")); run != nil {
		return run
	}
	return text(ft)
}
