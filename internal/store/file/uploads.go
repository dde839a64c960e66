package file

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/MrSnakeDoc/clippings/internal/domain"
	"github.com/MrSnakeDoc/clippings/internal/logger"
)

var (
	// ErrInvalidName rejects names that would escape the upload directory.
	ErrInvalidName = errors.New("invalid file name")
	unsafeChars    = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
)

// SanitizeName replaces every character outside [A-Za-z0-9.-] with '_'.
func SanitizeName(name string) string {
	return unsafeChars.ReplaceAllString(filepath.Base(name), "_")
}

// Uploads stores PDFs as {unix_millis}_{sanitized name}.
type Uploads struct {
	dir   string
	limit int64
	now   func() time.Time
	log   logger.Logger
}

// NewUploads creates dir when missing.
func NewUploads(dir string, limit int64, log logger.Logger) (*Uploads, error) {
	if limit <= 0 {
		limit = domain.MaxUploadSize
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Uploads{dir: dir, limit: limit, now: time.Now, log: log}, nil
}

func (u *Uploads) Dir() string { return u.dir }

func (u *Uploads) Limit() int64 { return u.limit }

// Save writes r under a fresh name. Content beyond the limit aborts the write
// with domain.ErrFileTooLarge and leaves nothing behind.
func (u *Uploads) Save(originalName string, r io.Reader) (domain.StoredFile, error) {
	clean := SanitizeName(originalName)
	if clean == "" || clean == "." || clean == ".." {
		return domain.StoredFile{}, ErrInvalidName
	}

	ts := u.now().UnixMilli()
	var (
		f    *os.File
		name string
		err  error
	)
	// Same millisecond + same name: bump the timestamp until free.
	for attempt := 0; attempt < 100; attempt++ {
		name = strconv.FormatInt(ts+int64(attempt), 10) + "_" + clean
		f, err = os.OpenFile(filepath.Join(u.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if !errors.Is(err, fs.ErrExist) {
			break
		}
	}
	if err != nil {
		return domain.StoredFile{}, fmt.Errorf("failed to create upload file: %w", err)
	}
	path := f.Name()

	n, err := io.Copy(f, io.LimitReader(r, u.limit+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		_ = os.Remove(path)
		return domain.StoredFile{}, fmt.Errorf("failed to write upload: %w", err)
	case n > u.limit:
		_ = os.Remove(path)
		return domain.StoredFile{}, domain.ErrFileTooLarge
	case closeErr != nil:
		_ = os.Remove(path)
		return domain.StoredFile{}, fmt.Errorf("failed to close upload: %w", closeErr)
	}

	if u.log != nil {
		u.log.Info("file uploaded",
			logger.String("filename", name),
			logger.String("original", originalName),
			logger.Int64("size", n),
		)
	}
	return u.stat(name)
}

// List returns every stored file sorted by name. A missing directory is empty.
func (u *Uploads) List() ([]domain.StoredFile, error) {
	entries, err := os.ReadDir(u.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.StoredFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	out := make([]domain.StoredFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		sf, err := u.stat(e.Name())
		if err != nil {
			continue
		}
		out = append(out, sf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out, nil
}

// Path resolves a stored file name inside the upload directory.
func (u *Uploads) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrInvalidName
	}
	return filepath.Join(u.dir, name), nil
}

// Delete removes a stored file.
func (u *Uploads) Delete(name string) error {
	p, err := u.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		return fmt.Errorf("failed to delete upload %s: %w", name, err)
	}
	return nil
}

func (u *Uploads) stat(name string) (domain.StoredFile, error) {
	st, err := os.Stat(filepath.Join(u.dir, name))
	if err != nil {
		return domain.StoredFile{}, err
	}
	return domain.StoredFile{
		Filename:   name,
		Size:       st.Size(),
		UploadDate: st.ModTime().UTC(),
		Path:       "/data/" + name,
	}, nil
}
