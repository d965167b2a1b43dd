package partition

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
)

// errNoElement indicates the input holds no element.
var errNoElement = errors.New("no element found")

// span is a half-open byte range [start, end) of the scanned input.
type span struct {
	start int
	end   int
}

func (s span) size() int {
	return s.end - s.start
}

// element is the scanned shape of one serialized element: its raw start tag
// and the byte ranges of its direct child elements.
type element struct {
	name     string
	startTag []byte
	whole    span
	children []span
	// mixed is set when non-whitespace text sits directly beside the children.
	mixed bool
}

// scanElement locates the first element in data and its direct children.
// Byte offsets come from the decoder, so every range covers the exact source text.
func scanElement(data []byte) (*element, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var el *element
	depth := 0
	var childStart int

	for {
		offset := int(decoder.InputOffset())
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 1:
				end := int(decoder.InputOffset())
				el = &element{
					startTag: data[offset:end],
					whole:    span{start: offset},
				}
				el.name = rawTagName(el.startTag)
			case 2:
				childStart = offset
			}
		case xml.EndElement:
			switch depth {
			case 2:
				el.children = append(el.children, span{start: childStart, end: int(decoder.InputOffset())})
			case 1:
				el.whole.end = int(decoder.InputOffset())
				return el, nil
			}
			depth--
		case xml.CharData:
			if depth == 1 && len(bytes.TrimSpace(t)) > 0 {
				el.mixed = true
			}
		}
	}

	if el == nil {
		return nil, errNoElement
	}
	return nil, io.ErrUnexpectedEOF
}

// rawTagName returns the qualified name as written in a raw start tag.
func rawTagName(startTag []byte) string {
	name := bytes.TrimPrefix(startTag, []byte("<"))
	if i := bytes.IndexAny(name, " \t\r\n/>"); i >= 0 {
		name = name[:i]
	}
	return string(name)
}

// Namespaces returns the namespace declarations on the first element of data.
// Fragments cut from inside that element re-declare them so prefixed names stay
// resolvable.
func Namespaces(data []byte) ([]xml.Attr, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.RawToken()
		if err != nil {
			if err == io.EOF {
				return nil, errNoElement
			}
			return nil, err
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		var decls []xml.Attr
		for _, a := range se.Attr {
			if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
				decls = append(decls, a)
			}
		}
		return decls, nil
	}
}

// withNamespaces inserts the declarations missing from a raw start tag right
// after its name.
func withNamespaces(startTag []byte, decls []xml.Attr) []byte {
	if len(decls) == 0 {
		return startTag
	}
	name := rawTagName(startTag)
	insertAt := 1 + len(name)

	var extra bytes.Buffer
	for _, a := range decls {
		qname := a.Name.Local
		if a.Name.Space != "" {
			qname = a.Name.Space + ":" + a.Name.Local
		}
		if bytes.Contains(startTag, []byte(qname+"=")) {
			continue
		}
		extra.WriteString(" " + qname + "=\"")
		_ = xml.EscapeText(&extra, []byte(a.Value))
		extra.WriteString("\"")
	}
	if extra.Len() == 0 {
		return startTag
	}

	out := make([]byte, 0, len(startTag)+extra.Len())
	out = append(out, startTag[:insertAt]...)
	out = append(out, extra.Bytes()...)
	out = append(out, startTag[insertAt:]...)
	return out
}
