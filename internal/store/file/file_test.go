package file

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/clippings/internal/domain"
	"github.com/MrSnakeDoc/clippings/internal/logger"
)

func TestRecordsMissingFileIsEmpty(t *testing.T) {
	r := NewRecords(filepath.Join(t.TempDir(), "clippings.json"), logger.NewNop())

	c, err := r.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c == nil || len(c) != 0 {
		t.Errorf("Load() = %v, want empty collection", c)
	}
	if r.Exists() {
		t.Error("Exists() = true for a missing file")
	}
	if mt, err := r.ModTime(); err != nil || !mt.IsZero() {
		t.Errorf("ModTime() = %v, %v", mt, err)
	}
}

func TestRecordsSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "clippings.json")
	r := NewRecords(path, logger.NewNop())

	in := domain.Collection{
		{ID: 2, Title: "Solar", Date: domain.MustParseDate("2024-05-01"), Category: "Projects", URL: "http://localhost:3001/data/1_a.pdf"},
		{ID: 1, Title: "Wind", Date: domain.MustParseDate("2023-12-01"), Category: "HR"},
	}
	if err := r.Save(in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "\n  {\n    \"id\": 2,") {
		t.Errorf("file should be indented with two spaces:\n%s", raw)
	}

	out, err := r.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(out) != 2 || out[0].ID != 2 || !out[1].Date.Equal(in[1].Date) {
		t.Errorf("Load() = %+v", out)
	}

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".clippings-*"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestRecordsSaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clippings.json")
	r := NewRecords(path, nil)
	if err := r.Save(nil); err != nil {
		t.Fatal(err)
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != "[]" {
		t.Errorf("empty save wrote %q, want []", raw)
	}
}

func TestRecordsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clippings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewRecords(path, nil).Load(); err == nil {
		t.Error("Load() should fail on a corrupt file")
	}
}

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"report.pdf":        "report.pdf",
		"my report (1).pdf": "my_report__1_.pdf",
		"../../etc/passwd":  "passwd",
		"press-note_v2.PDF": "press-note_v2.PDF",
		"café.pdf":          "caf_.pdf",
	}
	for in, want := range tests {
		if got := SanitizeName(in); got != want {
			t.Errorf("SanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func newTestUploads(t *testing.T, limit int64) *Uploads {
	t.Helper()
	u, err := NewUploads(filepath.Join(t.TempDir(), "data"), limit, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	u.now = func() time.Time { return time.UnixMilli(1714521600000) }
	return u
}

func TestUploadsSave(t *testing.T) {
	u := newTestUploads(t, 1024)

	sf, err := u.Save("annual report.pdf", strings.NewReader("%PDF-1.4 body"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if sf.Filename != "1714521600000_annual_report.pdf" {
		t.Errorf("Filename = %q", sf.Filename)
	}
	if sf.Path != "/data/"+sf.Filename || sf.Size != 13 {
		t.Errorf("stored file = %+v", sf)
	}

	again, err := u.Save("annual report.pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}
	if again.Filename == sf.Filename {
		t.Error("a second upload in the same millisecond overwrote the first")
	}

	files, err := u.List()
	if err != nil || len(files) != 2 {
		t.Errorf("List() = %v, %v", files, err)
	}
}

func TestUploadsSizeLimit(t *testing.T) {
	u := newTestUploads(t, 8)

	if _, err := u.Save("ok.pdf", strings.NewReader("12345678")); err != nil {
		t.Errorf("content at the limit should be accepted: %v", err)
	}
	_, err := u.Save("big.pdf", strings.NewReader("123456789"))
	if !errors.Is(err, domain.ErrFileTooLarge) {
		t.Errorf("Save() error = %v, want ErrFileTooLarge", err)
	}
	files, _ := u.List()
	if len(files) != 1 {
		t.Errorf("oversized upload left a file behind: %+v", files)
	}
}

func TestUploadsPathAndDelete(t *testing.T) {
	u := newTestUploads(t, 0)
	sf, err := u.Save("a.pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}

	for _, bad := range []string{"", "../a.pdf", "sub/a.pdf", ".hidden"} {
		if _, err := u.Path(bad); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Path(%q) error = %v, want ErrInvalidName", bad, err)
		}
	}

	if err := u.Delete(sf.Filename); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if files, _ := u.List(); len(files) != 0 {
		t.Errorf("List() after delete = %+v", files)
	}
	if u.Limit() != domain.MaxUploadSize {
		t.Errorf("default limit = %d", u.Limit())
	}
}

func TestUploadsListMissingDir(t *testing.T) {
	u := newTestUploads(t, 0)
	if err := os.RemoveAll(u.Dir()); err != nil {
		t.Fatal(err)
	}
	files, err := u.List()
	if err != nil || files == nil || len(files) != 0 {
		t.Errorf("List() on a missing dir = %v, %v", files, err)
	}
}
