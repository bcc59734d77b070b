package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxImageSize is the upload size ceiling in bytes (5 MiB)
const MaxImageSize = 5 << 20

var (
	ErrUnsupportedImageType = errors.New("unsupported image type, only JPEG, PNG and WebP are allowed")
	ErrImageTooLarge        = errors.New("image exceeds the maximum size of 5MB")
	ErrImageNotFound        = errors.New("image not found")
	ErrInvalidFilename      = errors.New("invalid filename")
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ImageInfo describes a stored image asset
type ImageInfo struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName,omitempty"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mimetype,omitempty"`
	URL          string    `json:"url"`
	ModifiedAt   time.Time `json:"modifiedAt,omitempty"`
}

// ImageStore defines the interface for image asset storage. Callers hold
// only the returned URL and the opaque filename handle; catalog rows keep
// the URL verbatim with no existence check against the store.
type ImageStore interface {
	Save(originalName string, data []byte) (*ImageInfo, error)
	Delete(filename string) error
	List() ([]*ImageInfo, error)
}

type diskImageStore struct {
	dir     string
	baseURL string
}

// NewDiskImageStore creates a disk-backed ImageStore rooted at dir. Stored
// files are addressable under baseURL (e.g. "/uploads").
func NewDiskImageStore(dir, baseURL string) (ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &diskImageStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Save sniffs the payload's real content type, rejects anything that is not
// JPEG/PNG/WebP or over the size ceiling, and stores the bytes under a
// generated perfume_<uuid> filename.
func (s *diskImageStore) Save(originalName string, data []byte) (*ImageInfo, error) {
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return nil, ErrUnsupportedImageType
	}

	filename := fmt.Sprintf("perfume_%s%s", uuid.New().String(), mtype.Extension())

	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	return &ImageInfo{
		Filename:     filename,
		OriginalName: originalName,
		Size:         int64(len(data)),
		MimeType:     mtype.String(),
		URL:          s.baseURL + "/" + filename,
	}, nil
}

// Delete removes a stored image by its opaque filename handle
func (s *diskImageStore) Delete(filename string) error {
	if !validFilename(filename) {
		return ErrInvalidFilename
	}

	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrImageNotFound
		}
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}

// List enumerates stored images, skipping anything without an image extension
func (s *diskImageStore) List() ([]*ImageInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload directory: %w", err)
	}

	images := []*ImageInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat image: %w", err)
		}

		images = append(images, &ImageInfo{
			Filename:   entry.Name(),
			Size:       info.Size(),
			URL:        s.baseURL + "/" + entry.Name(),
			ModifiedAt: info.ModTime(),
		})
	}

	return images, nil
}

// validFilename rejects anything that could escape the upload directory
func validFilename(filename string) bool {
	if filename == "" || filename == "." || filename == ".." {
		return false
	}
	if strings.ContainsAny(filename, "/\\") {
		return false
	}
	return filepath.Base(filename) == filename
}
