package offline

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ArchePal/ArchePal-Backend/src/models"
	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var bucketPending = []byte("pending")

// Entry statuses
const (
	StatusPending = "pending"
)

// ArtifactPayload is the queued artifact with dates serialized to strings so
// the entry survives JSON round-trips in the local store.
type ArtifactPayload struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Period       *string  `json:"period,omitempty"`
	Material     *string  `json:"material,omitempty"`
	Condition    *string  `json:"condition,omitempty"`
	Significance *string  `json:"significance,omitempty"`
	Description  *string  `json:"description,omitempty"`
	FindContext  *string  `json:"findContext,omitempty"`
	SiteID       *int     `json:"siteId,omitempty"`
	SiteName     *string  `json:"siteName,omitempty"`
	CreatedBy    *int     `json:"createdBy,omitempty"`
	CreatedAt    string   `json:"createdAt"`
}

// PayloadFromArtifact serializes an artifact into its queue form.
func PayloadFromArtifact(a *models.ArtifactModel) ArtifactPayload {
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return ArtifactPayload{
		Name:         a.Name,
		Type:         a.Type,
		Period:       a.Period,
		Material:     a.Material,
		Condition:    a.Condition,
		Significance: a.Significance,
		Description:  a.Description,
		FindContext:  a.FindContext,
		SiteID:       a.SiteID,
		SiteName:     a.SiteName,
		CreatedBy:    a.CreatedBy,
		CreatedAt:    createdAt.Format(time.RFC3339Nano),
	}
}

// ToArtifact re-parses the serialized date back into a timestamp and rebuilds
// the artifact, attaching the queue entry's dedup key.
func (p ArtifactPayload) ToArtifact(syncKey string) *models.ArtifactModel {
	createdAt, err := time.Parse(time.RFC3339Nano, p.CreatedAt)
	if err != nil {
		createdAt = time.Now()
	}
	key := syncKey
	return &models.ArtifactModel{
		Name:         p.Name,
		Type:         p.Type,
		Period:       p.Period,
		Material:     p.Material,
		Condition:    p.Condition,
		Significance: p.Significance,
		Description:  p.Description,
		FindContext:  p.FindContext,
		SiteID:       p.SiteID,
		SiteName:     p.SiteName,
		CreatedBy:    p.CreatedBy,
		SyncKey:      &key,
		CreatedAt:    createdAt,
	}
}

// Entry is a single queued artifact creation. Key is generated at enqueue
// time and stored on the remote document as its dedup key, so a replay after
// a partial failure never creates a second document.
type Entry struct {
	Key       string          `json:"key"`
	Payload   ArtifactPayload `json:"payload"`
	ImagePath string          `json:"imagePath,omitempty"`
	Status    string          `json:"status"`
	QueuedAt  time.Time       `json:"queuedAt"`

	seq uint64
}

// ArtifactStore is the remote side of a drain. Implemented by
// services.ArtifactService; tests substitute fakes.
type ArtifactStore interface {
	GetArtifactBySyncKey(key string) (*models.ArtifactModel, error)
	CreateArtifact(artifact *models.ArtifactModel) (*models.ArtifactModel, error)
	AttachArtifactImage(id int, url string) error
}

// ImageUploader uploads a cached image blob and returns its retrieval URL.
// Implemented by storage.LocalStorage.
type ImageUploader interface {
	Upload(key string, r io.Reader) (string, error)
}

// SyncResult summarizes one drain pass.
type SyncResult struct {
	Synced    int `json:"synced"`
	Failed    int `json:"failed"`
	Remaining int `json:"remaining"`
}

// Queue is the durable FIFO of artifact creations attempted while the store
// was unreachable.
type Queue struct {
	db *bolt.DB
	mu sync.Mutex
}

// Open opens or creates the queue database at dbPath.
func Open(dbPath string) (*Queue, error) {
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create queue directory: %w", err)
		}
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open queue database: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPending)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Queue{db: db}, nil
}

// Close releases the queue database.
func (q *Queue) Close() error {
	if q.db == nil {
		return nil
	}
	return q.db.Close()
}

// Enqueue appends a pending artifact creation and returns its dedup key.
// imagePath points at a locally cached copy of the attached image, or "".
func (q *Queue) Enqueue(payload ArtifactPayload, imagePath string) (string, error) {
	entry := Entry{
		Key:       uuid.NewString(),
		Payload:   payload,
		ImagePath: imagePath,
		Status:    StatusPending,
		QueuedAt:  time.Now(),
	}

	err := q.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPending)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal queue entry: %w", err)
		}
		return b.Put(seqKey(seq), data)
	})
	if err != nil {
		return "", err
	}

	return entry.Key, nil
}

// Entries returns all pending entries in FIFO order.
func (q *Queue) Entries() ([]Entry, error) {
	var entries []Entry
	err := q.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPending).ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("unmarshal queue entry: %w", err)
			}
			e.seq = binary.BigEndian.Uint64(k)
			entries = append(entries, e)
			return nil
		})
	})
	return entries, err
}

// Len returns the number of pending entries.
func (q *Queue) Len() (int, error) {
	var n int
	err := q.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketPending).Stats().KeyN
		return nil
	})
	return n, err
}

func (q *Queue) remove(seq uint64) error {
	return q.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPending).Delete(seqKey(seq))
	})
}

// Sync drains the queue sequentially against the remote store. Entries are
// processed one at a time in FIFO order; a failing entry is logged and kept
// for the next pass without stopping the rest. Only one drain runs at a time:
// a concurrent call returns immediately with an empty result.
func (q *Queue) Sync(store ArtifactStore, uploader ImageUploader) (SyncResult, error) {
	if !q.mu.TryLock() {
		log.Println("Offline sync already in progress, skipping")
		return SyncResult{}, nil
	}
	defer q.mu.Unlock()

	entries, err := q.Entries()
	if err != nil {
		return SyncResult{}, err
	}

	var result SyncResult
	for _, entry := range entries {
		if err := q.syncEntry(entry, store, uploader); err != nil {
			log.Printf("Offline sync failed for entry %s: %v\n", entry.Key, err)
			result.Failed++
			continue
		}
		result.Synced++
	}

	remaining, err := q.Len()
	if err != nil {
		return result, err
	}
	result.Remaining = remaining

	return result, nil
}

func (q *Queue) syncEntry(entry Entry, store ArtifactStore, uploader ImageUploader) error {
	// The dedup key makes the create idempotent: a document left behind by a
	// previous partial failure is reused instead of duplicated.
	artifact, err := store.GetArtifactBySyncKey(entry.Key)
	if err != nil {
		return fmt.Errorf("lookup by sync key: %w", err)
	}
	if artifact == nil {
		artifact, err = store.CreateArtifact(entry.Payload.ToArtifact(entry.Key))
		if err != nil {
			return fmt.Errorf("create artifact: %w", err)
		}
	}

	if entry.ImagePath != "" {
		data, err := os.ReadFile(entry.ImagePath)
		if err != nil {
			return fmt.Errorf("read cached image: %w", err)
		}
		key := fmt.Sprintf("artifacts/%d/%d_%s", artifact.Id, time.Now().Unix(), filepath.Base(entry.ImagePath))
		url, err := uploader.Upload(key, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("upload cached image: %w", err)
		}
		if err := store.AttachArtifactImage(artifact.Id, url); err != nil {
			return fmt.Errorf("attach image url: %w", err)
		}
	}

	// Entry and cached file are removed only after every step succeeded.
	if err := q.remove(entry.seq); err != nil {
		return fmt.Errorf("remove queue entry: %w", err)
	}
	if entry.ImagePath != "" {
		_ = os.Remove(entry.ImagePath)
	}

	return nil
}

func seqKey(seq uint64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], seq)
	return k[:]
}
