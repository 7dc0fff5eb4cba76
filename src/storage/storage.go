package storage

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage stores uploaded blobs on the local filesystem under basePath
// and serves them back under baseURL. Keys are slash-separated paths
// namespaced per entity.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates the base directory if needed. baseURL is the public
// prefix the router serves basePath under (e.g. "/files").
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if basePath == "" {
		basePath = "uploads"
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("could not create upload directory: %w", err)
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// BasePath returns the directory blobs are written under.
func (s *LocalStorage) BasePath() string {
	return s.basePath
}

// Upload writes the blob under key and returns its retrieval URL.
func (s *LocalStorage) Upload(key string, r io.Reader) (string, error) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("could not create directory for %s: %w", key, err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("could not save file %s: %w", key, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("could not save file %s: %w", key, err)
	}

	return s.URLFor(key), nil
}

// Delete removes the blob for key. Best-effort: the blob may already be gone,
// so errors are logged and swallowed.
func (s *LocalStorage) Delete(key string) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		log.Printf("Could not delete blob %s: %v\n", key, err)
	}
}

// URLFor returns the public URL for a stored key.
func (s *LocalStorage) URLFor(key string) string {
	return s.baseURL + "/" + key
}

// KeyFromURL inverts URLFor. Returns "" when the URL was not produced by this
// store.
func (s *LocalStorage) KeyFromURL(url string) string {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}

func stampedName(filename string) string {
	return fmt.Sprintf("%d_%s", time.Now().Unix(), filepath.Base(filename))
}

// Key builders. Blob paths are namespaced per entity so deleting an entity's
// blobs is a prefix operation.

func SiteImageKey(siteID int, filename string) string {
	return fmt.Sprintf("sites/%d/%s", siteID, stampedName(filename))
}

func ArtifactImageKey(artifactID int, filename string) string {
	return fmt.Sprintf("artifacts/%d/%s", artifactID, stampedName(filename))
}

func ArtifactModelImageKey(artifactID int, filename string) string {
	return fmt.Sprintf("artifacts/%d/3d-models/%s", artifactID, stampedName(filename))
}

func MerchandiseImageKey(filename string) string {
	return fmt.Sprintf("merchandise/%s", stampedName(filename))
}

func ArticleImageKey(articleID int, filename string) string {
	return fmt.Sprintf("articles/%d/%s", articleID, stampedName(filename))
}

func DiaryImageKey(userID, entryID int, filename string) string {
	return fmt.Sprintf("diaryImages/%d/%d/%s", userID, entryID, stampedName(filename))
}
