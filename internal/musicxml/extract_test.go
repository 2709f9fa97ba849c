package musicxml_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clefworks/scorevault/internal/musicxml"
)

func parseDoc(t *testing.T, data string) *musicxml.Document {
	t.Helper()
	doc, err := musicxml.Parse([]byte(data))
	require.NoError(t, err)
	return doc
}

func TestExtract_WorkTitlePreferred(t *testing.T) {
	doc := parseDoc(t, `<score-partwise>
  <work><work-title>Preludes, Book 1</work-title></work>
  <movement-title>La cathedrale engloutie</movement-title>
  <identification><creator type="composer">Claude Debussy</creator></identification>
</score-partwise>`)

	meta := musicxml.Extract(doc)

	assert.Equal(t, "Preludes, Book 1", meta.Title)
	assert.Equal(t, "Claude Debussy", meta.Composer)
}

func TestExtract_MovementTitleFallback(t *testing.T) {
	doc := parseDoc(t, `<score-partwise>
  <movement-title>Clair de lune</movement-title>
</score-partwise>`)

	meta := musicxml.Extract(doc)

	assert.Equal(t, "Clair de lune", meta.Title)
}

func TestExtract_EmptyWorkTitleFallsBack(t *testing.T) {
	doc := parseDoc(t, `<score-partwise>
  <work><work-title>   </work-title></work>
  <movement-title>Nocturne</movement-title>
</score-partwise>`)

	meta := musicxml.Extract(doc)

	assert.Equal(t, "Nocturne", meta.Title)
}

func TestExtract_ComposerFromCreatorList(t *testing.T) {
	doc := parseDoc(t, `<score-partwise>
  <identification>
    <creator type="lyricist">Wilhelm Muller</creator>
    <creator type="composer">Franz Schubert</creator>
    <creator type="arranger">Franz Liszt</creator>
  </identification>
</score-partwise>`)

	meta := musicxml.Extract(doc)

	assert.Equal(t, "Franz Schubert", meta.Composer)
}

func TestExtract_NoComposerResolvesEmpty(t *testing.T) {
	doc := parseDoc(t, `<score-partwise>
  <identification><creator type="arranger">Somebody</creator></identification>
</score-partwise>`)

	meta := musicxml.Extract(doc)

	assert.Empty(t, meta.Composer)
}

func TestExtract_MissingEverythingResolvesEmpty(t *testing.T) {
	doc := parseDoc(t, `<score-partwise><part-list/></score-partwise>`)

	meta := musicxml.Extract(doc)

	assert.Empty(t, meta.Title)
	assert.Empty(t, meta.Composer)
	assert.Nil(t, meta.Subtitle)
}

func TestExtract_SubtitleNumberAndTitle(t *testing.T) {
	doc := parseDoc(t, `<score-partwise>
  <movement-number>I</movement-number>
  <movement-title>Allegro</movement-title>
</score-partwise>`)

	meta := musicxml.Extract(doc)

	require.NotNil(t, meta.Subtitle)
	assert.Equal(t, "I Allegro", *meta.Subtitle)
}

func TestExtract_SubtitleNumberOnly(t *testing.T) {
	doc := parseDoc(t, `<score-partwise>
  <movement-number>I</movement-number>
</score-partwise>`)

	meta := musicxml.Extract(doc)

	require.NotNil(t, meta.Subtitle)
	assert.Equal(t, "I", *meta.Subtitle)
}

func TestExtract_SubtitleTitleOnly(t *testing.T) {
	doc := parseDoc(t, `<score-partwise>
  <movement-title>Allegro</movement-title>
</score-partwise>`)

	meta := musicxml.Extract(doc)

	require.NotNil(t, meta.Subtitle)
	assert.Equal(t, "Allegro", *meta.Subtitle)
}

func TestExtract_SubtitleAbsent(t *testing.T) {
	doc := parseDoc(t, `<score-partwise>
  <work><work-title>Etudes</work-title></work>
</score-partwise>`)

	meta := musicxml.Extract(doc)

	assert.Nil(t, meta.Subtitle)
}

func TestExtract_WhitespaceCollapsed(t *testing.T) {
	doc := parseDoc(t, `<score-partwise>
  <work><work-title>  The   Well-Tempered
	Clavier  </work-title></work>
</score-partwise>`)

	meta := musicxml.Extract(doc)

	assert.Equal(t, "The Well-Tempered Clavier", meta.Title)
}

func TestExtract_TitleTruncatedTo200Runes(t *testing.T) {
	long := strings.Repeat("a", 250)
	doc := parseDoc(t, `<score-partwise>
  <work><work-title>`+long+`</work-title></work>
</score-partwise>`)

	meta := musicxml.Extract(doc)

	assert.Len(t, []rune(meta.Title), 200)
}
