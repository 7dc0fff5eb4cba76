package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveClient wraps the Google Drive API for importing images shared through
// Drive links. Constructed explicitly and passed to controllers so tests can
// substitute it.
type DriveClient struct {
	service *drive.Service
}

// NewDriveClientFromEnv initializes the client using a Service Account, from
// GOOGLE_DRIVE_CREDENTIALS_PATH or GOOGLE_DRIVE_CREDENTIALS_JSON. Returns
// (nil, nil) when neither is configured: Drive import is an optional feature.
func NewDriveClientFromEnv() (*DriveClient, error) {
	ctx := context.Background()

	var credsBytes []byte
	if path := os.Getenv("GOOGLE_DRIVE_CREDENTIALS_PATH"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading credentials file: %w", err)
		}
		credsBytes = b
	} else if raw := os.Getenv("GOOGLE_DRIVE_CREDENTIALS_JSON"); raw != "" {
		credsBytes = []byte(raw)
	} else {
		log.Println("Google Drive credentials not configured, Drive import disabled")
		return nil, nil
	}

	creds, err := google.CredentialsFromJSON(ctx, credsBytes, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("error loading Drive credentials: %w", err)
	}

	service, err := drive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("error creating Drive service: %w", err)
	}

	log.Println("[GOOGLE_DRIVE] Service initialized")

	return &DriveClient{service: service}, nil
}

// ExtractFileIDFromURL extracts the file ID from a Google Drive URL
func ExtractFileIDFromURL(url string) (string, error) {
	// Common Google Drive URL shapes
	patterns := []string{
		`/file/d/([a-zA-Z0-9_-]+)`,                     // /file/d/FILE_ID
		`id=([a-zA-Z0-9_-]+)`,                          // ?id=FILE_ID
		`/folders/([a-zA-Z0-9_-]+)`,                    // /folders/FOLDER_ID
		`drive\.google\.com/open\?id=([a-zA-Z0-9_-]+)`, // open?id=FILE_ID
	}

	for _, pattern := range patterns {
		re := regexp.MustCompile(pattern)
		matches := re.FindStringSubmatch(url)
		if len(matches) > 1 {
			return matches[1], nil
		}
	}

	return "", fmt.Errorf("could not extract a file ID from URL: %s", url)
}

// DownloadFile downloads a file from Google Drive by ID, returning the body
// and the original filename.
func (c *DriveClient) DownloadFile(fileID string) (io.ReadCloser, string, error) {
	if c == nil || c.service == nil {
		return nil, "", fmt.Errorf("Google Drive client is not configured")
	}

	file, err := c.service.Files.Get(fileID).Fields("id", "name", "mimeType", "size").Do()
	if err != nil {
		return nil, "", fmt.Errorf("error fetching file metadata: %w", err)
	}

	if file.MimeType == "application/vnd.google-apps.folder" {
		return nil, "", fmt.Errorf("Drive folders cannot be downloaded directly")
	}

	resp, err := c.service.Files.Get(fileID).Download()
	if err != nil {
		return nil, "", fmt.Errorf("error downloading file: %w", err)
	}

	log.Printf("[GOOGLE_DRIVE] Downloaded file %s (%s, %d bytes)", file.Name, file.MimeType, file.Size)

	return resp.Body, file.Name, nil
}

// IsGoogleDriveURL checks whether a URL points at Google Drive
func IsGoogleDriveURL(url string) bool {
	return regexp.MustCompile(`drive\.google\.com`).MatchString(url)
}
