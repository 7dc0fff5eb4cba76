package offline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ArchePal/ArchePal-Backend/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory ArtifactStore. failOn makes CreateArtifact fail
// for artifacts with the given name.
type fakeStore struct {
	nextID    int
	artifacts map[string]*models.ArtifactModel
	images    map[int][]string
	failOn    string
	creates   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		artifacts: make(map[string]*models.ArtifactModel),
		images:    make(map[int][]string),
	}
}

func (f *fakeStore) GetArtifactBySyncKey(key string) (*models.ArtifactModel, error) {
	if a, ok := f.artifacts[key]; ok {
		return a, nil
	}
	return nil, nil
}

func (f *fakeStore) CreateArtifact(artifact *models.ArtifactModel) (*models.ArtifactModel, error) {
	if f.failOn != "" && artifact.Name == f.failOn {
		return nil, errors.New("store write failed")
	}
	f.creates++
	f.nextID++
	artifact.Id = f.nextID
	f.artifacts[*artifact.SyncKey] = artifact
	return artifact, nil
}

func (f *fakeStore) AttachArtifactImage(id int, url string) error {
	f.images[id] = append(f.images[id], url)
	return nil
}

type fakeUploader struct {
	uploads []string
	err     error
}

func (f *fakeUploader) Upload(key string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads = append(f.uploads, key)
	return "/files/" + key, nil
}

func newTestQueue(t *testing.T) *Queue {
	t.Helper()
	q, err := Open(filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { q.Close() })
	return q
}

func TestEnqueueAssignsUniqueKeys(t *testing.T) {
	q := newTestQueue(t)

	k1, err := q.Enqueue(ArtifactPayload{Name: "a"}, "")
	require.NoError(t, err)
	k2, err := q.Enqueue(ArtifactPayload{Name: "b"}, "")
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)

	n, err := q.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestEntriesKeepFIFOOrder(t *testing.T) {
	q := newTestQueue(t)

	for i := 0; i < 5; i++ {
		_, err := q.Enqueue(ArtifactPayload{Name: fmt.Sprintf("item-%d", i)}, "")
		require.NoError(t, err)
	}

	entries, err := q.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 5)
	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("item-%d", i), e.Payload.Name)
		assert.Equal(t, StatusPending, e.Status)
	}
}

func TestSyncDrainsAllEntries(t *testing.T) {
	q := newTestQueue(t)
	store := newFakeStore()

	for i := 0; i < 3; i++ {
		_, err := q.Enqueue(ArtifactPayload{
			Name:      fmt.Sprintf("artifact-%d", i),
			CreatedAt: time.Now().Format(time.RFC3339Nano),
		}, "")
		require.NoError(t, err)
	}

	result, err := q.Sync(store, &fakeUploader{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Synced)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 0, result.Remaining)
	assert.Equal(t, 3, store.creates)

	n, err := q.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSyncKeepsFailedEntryForNextPass(t *testing.T) {
	q := newTestQueue(t)
	store := newFakeStore()
	store.failOn = "broken"

	_, err := q.Enqueue(ArtifactPayload{Name: "ok-1"}, "")
	require.NoError(t, err)
	_, err = q.Enqueue(ArtifactPayload{Name: "broken"}, "")
	require.NoError(t, err)
	_, err = q.Enqueue(ArtifactPayload{Name: "ok-2"}, "")
	require.NoError(t, err)

	result, err := q.Sync(store, &fakeUploader{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Synced)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Remaining)

	entries, err := q.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "broken", entries[0].Payload.Name)

	// Once the store accepts the artifact again the retained entry drains.
	store.failOn = ""
	result, err = q.Sync(store, &fakeUploader{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
	assert.Equal(t, 0, result.Remaining)
}

func TestSyncReplayIsIdempotent(t *testing.T) {
	q := newTestQueue(t)
	store := newFakeStore()

	// Simulate a previous pass that created the document but crashed before
	// removing the queue entry: the store already holds an artifact with the
	// entry's dedup key.
	key, err := q.Enqueue(ArtifactPayload{Name: "replayed"}, "")
	require.NoError(t, err)
	existing := &models.ArtifactModel{Id: 42, Name: "replayed", SyncKey: &key}
	store.artifacts[key] = existing

	result, err := q.Sync(store, &fakeUploader{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
	assert.Equal(t, 0, store.creates)

	n, err := q.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSyncUploadsCachedImage(t *testing.T) {
	q := newTestQueue(t)
	store := newFakeStore()
	uploader := &fakeUploader{}

	imagePath := filepath.Join(t.TempDir(), "find.jpg")
	require.NoError(t, os.WriteFile(imagePath, []byte("jpeg-bytes"), 0o644))

	_, err := q.Enqueue(ArtifactPayload{Name: "with-image"}, imagePath)
	require.NoError(t, err)

	result, err := q.Sync(store, uploader)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
	require.Len(t, uploader.uploads, 1)
	assert.Contains(t, uploader.uploads[0], "artifacts/1/")
	assert.Len(t, store.images[1], 1)

	// The cached file is deleted only after the whole entry succeeded.
	_, err = os.Stat(imagePath)
	assert.True(t, os.IsNotExist(err))
}

func TestSyncKeepsEntryWhenImageUploadFails(t *testing.T) {
	q := newTestQueue(t)
	store := newFakeStore()
	uploader := &fakeUploader{err: errors.New("disk full")}

	imagePath := filepath.Join(t.TempDir(), "find.jpg")
	require.NoError(t, os.WriteFile(imagePath, []byte("jpeg-bytes"), 0o644))

	_, err := q.Enqueue(ArtifactPayload{Name: "with-image"}, imagePath)
	require.NoError(t, err)

	result, err := q.Sync(store, uploader)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Synced)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Remaining)

	// The document was created, so the retry must not create a second one.
	assert.Equal(t, 1, store.creates)
	_, err = os.Stat(imagePath)
	assert.NoError(t, err)

	uploader.err = nil
	result, err = q.Sync(store, uploader)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
	assert.Equal(t, 1, store.creates)
}

func TestPayloadRoundTripKeepsCreationTime(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	payload := PayloadFromArtifact(&models.ArtifactModel{
		Name:      "dated",
		CreatedAt: created,
	})

	artifact := payload.ToArtifact("key-1")
	assert.True(t, artifact.CreatedAt.Equal(created))
	require.NotNil(t, artifact.SyncKey)
	assert.Equal(t, "key-1", *artifact.SyncKey)
}

func TestConcurrentSyncIsSkipped(t *testing.T) {
	q := newTestQueue(t)

	_, err := q.Enqueue(ArtifactPayload{Name: "held"}, "")
	require.NoError(t, err)

	q.mu.Lock()
	result, err := q.Sync(newFakeStore(), &fakeUploader{})
	q.mu.Unlock()
	require.NoError(t, err)
	assert.Equal(t, SyncResult{}, result)

	n, err := q.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
