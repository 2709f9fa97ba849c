// Package musicxml parses uploaded MusicXML documents and extracts the
// display metadata the catalog needs. It deliberately reads only the header
// regions of the format (work, movement, identification); the notation body
// is never interpreted.
package musicxml

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/clefworks/scorevault/internal/domain"
)

// The two recognized root elements of the format
const (
	rootPartwise = "score-partwise"
	rootTimewise = "score-timewise"
)

// Document is the parsed header of a score document
type Document struct {
	XMLName        xml.Name
	Work           *Work           `xml:"work"`
	MovementNumber string          `xml:"movement-number"`
	MovementTitle  string          `xml:"movement-title"`
	Identification *Identification `xml:"identification"`
}

// Work holds the work block of a score document
type Work struct {
	Title string `xml:"work-title"`
}

// Identification holds the identification block of a score document
type Identification struct {
	Creators []Creator `xml:"creator"`
}

// Creator is one typed creator entry, e.g. <creator type="composer">
type Creator struct {
	Type string `xml:"type,attr"`
	Name string `xml:",chardata"`
}

// Parse decodes data into a Document. Input that cannot be parsed into a
// document tree, or whose root element is not one of the two recognized
// MusicXML roots, is reported as domain.ErrInvalidDocument. Merely missing
// header fields are not an error.
func Parse(data []byte) (*Document, error) {
	var doc Document
	decoder := xml.NewDecoder(bytes.NewReader(data))
	// MusicXML exports commonly carry DOCTYPE declarations referencing the
	// partwise/timewise DTDs; the decoder skips directives but must not try
	// to fetch them.
	decoder.Strict = true
	decoder.Entity = xml.HTMLEntity

	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}

	if doc.XMLName.Local != rootPartwise && doc.XMLName.Local != rootTimewise {
		return nil, fmt.Errorf("%w: unrecognized root element %q", domain.ErrInvalidDocument, doc.XMLName.Local)
	}

	return &doc, nil
}
