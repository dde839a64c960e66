package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// PageSize is the number of clippings shown per list page.
	PageSize = 9
	// MaxUploadSize is the largest accepted PDF, in bytes.
	MaxUploadSize int64 = 10 * 1024 * 1024
	// PDFMimeType is the only accepted upload content type.
	PDFMimeType = "application/pdf"
)

// Draft is the user input of the upload form.
type Draft struct {
	Title       string
	Date        string
	Category    string
	Description string
}

// Validate checks the required fields and parses the date.
func (d Draft) Validate() (Date, error) {
	switch {
	case strings.TrimSpace(d.Title) == "":
		return Date{}, NewValidationError("title", ErrMissingField)
	case strings.TrimSpace(d.Date) == "":
		return Date{}, NewValidationError("date", ErrMissingField)
	case strings.TrimSpace(d.Category) == "":
		return Date{}, NewValidationError("category", ErrMissingField)
	}
	date, err := ParseDate(d.Date)
	if err != nil {
		return Date{}, NewValidationError("date", fmt.Errorf("%w: %v", ErrInvalidDate, err))
	}
	return date, nil
}

// FileMeta describes an attached file before it is sent anywhere.
type FileMeta struct {
	Name        string
	ContentType string
	Size        int64
}

// ValidateFile enforces the PDF-only and size rules of the file picker.
func ValidateFile(f *FileMeta, limit int64) error {
	if f == nil || f.Name == "" {
		return NewValidationError("file", ErrNoFile)
	}
	if f.ContentType != PDFMimeType {
		return NewValidationError("file", ErrNotPDF)
	}
	if limit <= 0 {
		limit = MaxUploadSize
	}
	if f.Size > limit {
		return NewValidationError("file", ErrFileTooLarge)
	}
	return nil
}

// DefaultDescription is used when the upload form leaves the description empty.
func DefaultDescription(d Date) string {
	return "Press clipping uploaded on " + d.Long()
}

// NewClipping builds the record for an uploaded file. The id is derived from existing.
func NewClipping(existing Collection, draft Draft, date Date, fileURL string) Clipping {
	desc := strings.TrimSpace(draft.Description)
	if desc == "" {
		desc = DefaultDescription(date)
	}
	return Clipping{
		ID:          existing.NextID(),
		Title:       strings.TrimSpace(draft.Title),
		Date:        date,
		Category:    strings.TrimSpace(draft.Category),
		Description: desc,
		URL:         fileURL,
	}
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with two significant decimals, e.g. "1.5 KB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	v := float64(bytes) / math.Pow(1024, float64(i))
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}
