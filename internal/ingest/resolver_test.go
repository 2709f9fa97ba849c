package ingest_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clefworks/scorevault/internal/blobstore"
	"github.com/clefworks/scorevault/internal/domain"
	"github.com/clefworks/scorevault/internal/ingest"
	"github.com/clefworks/scorevault/internal/store"
	"github.com/clefworks/scorevault/internal/store/schema"
)

const musicXMLMIME = "application/vnd.recordare.musicxml+xml"

var fullDocument = []byte(`<?xml version="1.0" encoding="UTF-8"?>
<score-partwise version="4.0">
  <work>
    <work-title>Clair de Lune</work-title>
  </work>
  <identification>
    <creator type="composer">Claude Debussy</creator>
  </identification>
  <part-list>
    <score-part id="P1"><part-name>Piano</part-name></score-part>
  </part-list>
  <part id="P1"><measure number="1"/></part>
</score-partwise>`)

var bareDocument = []byte(`<?xml version="1.0" encoding="UTF-8"?>
<score-partwise version="4.0">
  <part-list>
    <score-part id="P1"><part-name>Piano</part-name></score-part>
  </part-list>
  <part id="P1"><measure number="1"/></part>
</score-partwise>`)

// fakeStore is a mutex-guarded in-memory Store. InsertScore enforces
// content-hash uniqueness the way the database unique index does, which
// makes the creation race reproducible in-process.
type fakeStore struct {
	mu     sync.Mutex
	nextID int64
	scores map[string]schema.Score          // keyed by content hash
	links  map[string]schema.CollectionLink // keyed by userID|scoreID

	findErr   error
	insertErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		scores: make(map[string]schema.Score),
		links:  make(map[string]schema.CollectionLink),
	}
}

func linkKey(userID string, scoreID int64) string {
	return fmt.Sprintf("%s|%d", userID, scoreID)
}

func (f *fakeStore) FindScoreByHash(_ context.Context, contentHash string) (*schema.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return nil, f.findErr
	}
	if s, ok := f.scores[contentHash]; ok {
		return &s, nil
	}
	return nil, nil
}

func (f *fakeStore) FindScoreByID(_ context.Context, scoreID int64) (*schema.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.scores {
		if s.ID == scoreID {
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertScore(_ context.Context, score *schema.Score) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.insertErr != nil {
		return f.insertErr
	}
	if _, ok := f.scores[score.ContentHash]; ok {
		return domain.ErrDuplicateHash
	}

	f.nextID++
	score.ID = f.nextID
	score.CreatedAt = time.Now()
	f.scores[score.ContentHash] = *score
	return nil
}

func (f *fakeStore) DeleteScore(_ context.Context, scoreID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, l := range f.links {
		if l.ScoreID == scoreID {
			return domain.ErrScoreReferenced
		}
	}
	for hash, s := range f.scores {
		if s.ID == scoreID {
			delete(f.scores, hash)
		}
	}
	return nil
}

func (f *fakeStore) FindLink(_ context.Context, userID string, scoreID int64) (*schema.CollectionLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if l, ok := f.links[linkKey(userID, scoreID)]; ok {
		return &l, nil
	}
	return nil, nil
}

func (f *fakeStore) InsertLink(_ context.Context, userID string, scoreID int64) (*schema.CollectionLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := linkKey(userID, scoreID)
	if l, ok := f.links[key]; ok {
		return &l, nil
	}

	l := schema.CollectionLink{UserID: userID, ScoreID: scoreID, LinkedAt: time.Now()}
	f.links[key] = l
	return &l, nil
}

func (f *fakeStore) DeleteLink(_ context.Context, userID string, scoreID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.links, linkKey(userID, scoreID))
	return nil
}

func (f *fakeStore) ListLinksByUser(_ context.Context, userID string, page, pageSize int, _ store.SortKey) ([]store.LinkedScore, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var rows []store.LinkedScore
	for _, l := range f.links {
		if l.UserID != userID {
			continue
		}
		for _, s := range f.scores {
			if s.ID == l.ScoreID {
				rows = append(rows, store.LinkedScore{Score: s, LinkedAt: l.LinkedAt})
			}
		}
	}
	return rows, int64(len(rows)), nil
}

func (f *fakeStore) scoreCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.scores)
}

func (f *fakeStore) linkCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.links)
}

func newTestResolver(t *testing.T, st store.Store) *ingest.Resolver {
	t.Helper()

	blobs, err := blobstore.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	return ingest.NewResolver(st, blobs, 10*1024*1024)
}

func TestIngest_NewScore(t *testing.T) {
	st := newFakeStore()
	r := newTestResolver(t, st)

	outcome, err := r.Ingest(context.Background(), "clair.musicxml", musicXMLMIME, fullDocument, "user-1")

	require.NoError(t, err)
	assert.False(t, outcome.Duplicate)
	assert.Equal(t, "Clair de Lune", outcome.Title)
	assert.Equal(t, "Claude Debussy", outcome.Composer)
	assert.Nil(t, outcome.Subtitle)
	assert.Len(t, outcome.ContentHash, 64)
	assert.NotEmpty(t, outcome.FileURL)
	assert.False(t, outcome.LinkedAt.IsZero())

	assert.Equal(t, 1, st.scoreCount())
	assert.Equal(t, 1, st.linkCount())
}

func TestIngest_PlaceholderMetadata(t *testing.T) {
	st := newFakeStore()
	r := newTestResolver(t, st)

	outcome, err := r.Ingest(context.Background(), "anonymous.xml", "text/xml", bareDocument, "user-1")

	require.NoError(t, err)
	assert.Equal(t, domain.PlaceholderTitle, outcome.Title)
	assert.Equal(t, domain.PlaceholderComposer, outcome.Composer)
}

func TestIngest_DuplicateUpload(t *testing.T) {
	st := newFakeStore()
	r := newTestResolver(t, st)
	ctx := context.Background()

	first, err := r.Ingest(ctx, "clair.musicxml", musicXMLMIME, fullDocument, "user-1")
	require.NoError(t, err)

	second, err := r.Ingest(ctx, "renamed-copy.xml", "application/xml", fullDocument, "user-2")
	require.NoError(t, err)

	assert.False(t, first.Duplicate)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.ScoreID, second.ScoreID)
	assert.Equal(t, first.ContentHash, second.ContentHash)

	assert.Equal(t, 1, st.scoreCount())
	assert.Equal(t, 2, st.linkCount())
}

func TestIngest_RelinkIsNoOp(t *testing.T) {
	st := newFakeStore()
	r := newTestResolver(t, st)
	ctx := context.Background()

	first, err := r.Ingest(ctx, "clair.musicxml", musicXMLMIME, fullDocument, "user-1")
	require.NoError(t, err)

	second, err := r.Ingest(ctx, "clair.musicxml", musicXMLMIME, fullDocument, "user-1")
	require.NoError(t, err)

	assert.True(t, second.Duplicate)
	assert.Equal(t, first.LinkedAt, second.LinkedAt)
	assert.Equal(t, 1, st.linkCount())
}

func TestIngest_Rejections(t *testing.T) {
	testCases := []struct {
		name     string
		fileName string
		mimeType string
		data     []byte
		maxSize  int64
		wantErr  error
	}{
		{
			name:     "unsupported extension",
			fileName: "score.pdf",
			mimeType: musicXMLMIME,
			data:     fullDocument,
			wantErr:  domain.ErrInvalidFileFormat,
		},
		{
			name:     "non-xml declared type",
			fileName: "score.xml",
			mimeType: "application/pdf",
			data:     fullDocument,
			wantErr:  domain.ErrInvalidFileFormat,
		},
		{
			name:     "non-xml content",
			fileName: "score.xml",
			mimeType: "text/xml",
			data:     []byte{0x25, 0x50, 0x44, 0x46, 0x2d, 0x31, 0x2e, 0x34},
			wantErr:  domain.ErrInvalidFileFormat,
		},
		{
			name:     "over size ceiling",
			fileName: "score.musicxml",
			mimeType: musicXMLMIME,
			data:     fullDocument,
			maxSize:  16,
			wantErr:  domain.ErrFileTooLarge,
		},
		{
			name:     "wrong root element",
			fileName: "score.xml",
			mimeType: "text/xml",
			data:     []byte(`<?xml version="1.0"?><opus><work/></opus>`),
			wantErr:  domain.ErrInvalidDocument,
		},
		{
			name:     "malformed xml",
			fileName: "score.xml",
			mimeType: "text/xml",
			data:     []byte(`<?xml version="1.0"?><score-partwise><work>`),
			wantErr:  domain.ErrInvalidDocument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st := newFakeStore()
			blobs, err := blobstore.NewLocalStorage(t.TempDir())
			require.NoError(t, err)

			maxSize := tc.maxSize
			if maxSize == 0 {
				maxSize = 10 * 1024 * 1024
			}
			r := ingest.NewResolver(st, blobs, maxSize)

			_, err = r.Ingest(context.Background(), tc.fileName, tc.mimeType, tc.data, "user-1")

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, 0, st.scoreCount(), "rejected upload must not reach storage")
			assert.Equal(t, 0, st.linkCount())
		})
	}
}

func TestIngest_StoreUnavailable(t *testing.T) {
	st := newFakeStore()
	st.findErr = errors.New("connection refused")
	r := newTestResolver(t, st)

	_, err := r.Ingest(context.Background(), "clair.musicxml", musicXMLMIME, fullDocument, "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestIngest_ConcurrentIdenticalUploads(t *testing.T) {
	st := newFakeStore()
	r := newTestResolver(t, st)

	const uploaders = 8

	outcomes := make([]*domain.IngestionOutcome, uploaders)
	errs := make([]error, uploaders)

	var wg sync.WaitGroup
	for i := 0; i < uploaders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i)
			outcomes[i], errs[i] = r.Ingest(context.Background(), "clair.musicxml", musicXMLMIME, fullDocument, userID)
		}(i)
	}
	wg.Wait()

	created := 0
	for i := 0; i < uploaders; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, outcomes[0].ScoreID, outcomes[i].ScoreID)
		if !outcomes[i].Duplicate {
			created++
		}
	}

	assert.Equal(t, 1, created, "exactly one uploader creates the canonical score")
	assert.Equal(t, 1, st.scoreCount())
	assert.Equal(t, uploaders, st.linkCount(), "every uploader gets their own link")
}
