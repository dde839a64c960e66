package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/MrSnakeDoc/clippings/internal/domain"
	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
	"github.com/MrSnakeDoc/clippings/internal/logger"
)

// multipartOverhead is the allowance for boundaries and part headers on top
// of the file size limit.
const multipartOverhead = 1 << 20

// Upload stores the PDF sent as multipart field "file".
func Upload(d deps.Deps) http.HandlerFunc {
	limit := d.MaxUploadBytes
	if limit <= 0 {
		limit = domain.MaxUploadSize
	}

	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

		mr, err := r.MultipartReader()
		if err != nil {
			writeError(w, http.StatusBadRequest, "No file uploaded")
			return
		}

		for {
			part, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				writeError(w, http.StatusBadRequest, "No file uploaded")
				return
			}
			if err != nil {
				uploadFailed(w, d, err)
				return
			}
			if part.FormName() != "file" || part.FileName() == "" {
				_ = part.Close()
				continue
			}

			ct, _, _ := mime.ParseMediaType(part.Header.Get("Content-Type"))
			if ct != domain.PDFMimeType {
				_ = part.Close()
				writeError(w, http.StatusBadRequest, "Only PDF files are allowed")
				return
			}

			stored, err := d.Uploads.Save(part.FileName(), part)
			_ = part.Close()
			if err != nil {
				uploadFailed(w, d, err)
				return
			}

			writeJSON(w, http.StatusOK, domain.UploadResult{
				Success:      true,
				Message:      "File uploaded successfully",
				Filename:     stored.Filename,
				OriginalName: part.FileName(),
				Size:         stored.Size,
			})
			return
		}
	}
}

func uploadFailed(w http.ResponseWriter, d deps.Deps, err error) {
	var tooBig *http.MaxBytesError
	if errors.Is(err, domain.ErrFileTooLarge) || errors.As(err, &tooBig) {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large")
		return
	}
	d.Logger.Error("upload error", logger.Error(err))
	writeError(w, http.StatusInternalServerError, "File upload failed: "+err.Error())
}
