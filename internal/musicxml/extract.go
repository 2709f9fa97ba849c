package musicxml

import (
	"strings"

	"github.com/clefworks/scorevault/internal/domain"
)

const creatorTypeComposer = "composer"

// Extract pulls title, composer and subtitle out of a parsed document.
//
// Title search order: work/work-title first, then movement-title as a
// fallback. Composer is the first identification creator entry explicitly
// typed "composer" (a single entry and a list of entries both decode into the
// same slice). Subtitle concatenates movement number and movement title with
// one space, omitting whichever part is absent, and is nil when neither is
// present.
//
// Fields that cannot be found resolve to empty strings; guaranteeing
// non-empty values downstream is the ingestion resolver's job, not this
// package's.
func Extract(doc *Document) domain.ScoreMeta {
	meta := domain.ScoreMeta{}

	if doc.Work != nil {
		meta.Title = clean(doc.Work.Title)
	}
	if meta.Title == "" {
		meta.Title = clean(doc.MovementTitle)
	}

	if doc.Identification != nil {
		for _, creator := range doc.Identification.Creators {
			if creator.Type == creatorTypeComposer {
				meta.Composer = clean(creator.Name)
				break
			}
		}
	}

	if subtitle := composeSubtitle(doc.MovementNumber, doc.MovementTitle); subtitle != "" {
		meta.Subtitle = &subtitle
	}

	return meta
}

// composeSubtitle joins movement number and movement title with one space,
// e.g. "I Allegro"; either part alone stands by itself.
func composeSubtitle(number, title string) string {
	number = clean(number)
	title = clean(title)

	switch {
	case number != "" && title != "":
		return number + " " + title
	case number != "":
		return number
	default:
		return title
	}
}

// clean is the only normalization applied to extracted strings: trim,
// collapse internal whitespace runs to a single space, truncate to
// domain.MaxFieldLength runes. It never infers missing values.
func clean(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if runes := []rune(s); len(runes) > domain.MaxFieldLength {
		s = string(runes[:domain.MaxFieldLength])
	}
	return s
}
