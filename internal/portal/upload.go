package portal

import (
	"context"
	"io"
	"time"

	"github.com/MrSnakeDoc/clippings/internal/browser"
	"github.com/MrSnakeDoc/clippings/internal/domain"
	"github.com/MrSnakeDoc/clippings/internal/logger"
)

// Attachment is the file picked for an upload.
type Attachment struct {
	Meta domain.FileMeta
	Body io.Reader
}

// ProgressFunc receives the simulated progress, 0 to 100.
type ProgressFunc func(percent int)

// Upload creates a clipping: it validates the form without any network call,
// re-fetches the collection, uploads the file, prepends the new record and
// persists the whole collection. Only one upload runs at a time.
//
// The in-memory collection is updated before the PUT; if the PUT fails the
// portal and the store diverge until the next load.
func (p *Portal) Upload(ctx context.Context, draft domain.Draft, file Attachment, progress ProgressFunc) (domain.Clipping, error) {
	date, err := draft.Validate()
	if err == nil {
		err = domain.ValidateFile(&file.Meta, p.opts.MaxFileSize)
	}
	if err == nil && file.Body == nil {
		err = domain.NewValidationError("file", domain.ErrNoFile)
	}
	if err != nil {
		p.notify(LevelError, errorText(err))
		return domain.Clipping{}, err
	}

	if !p.beginUpload() {
		p.notify(LevelError, capitalize(domain.ErrUploadInProgress.Error()))
		return domain.Clipping{}, domain.ErrUploadInProgress
	}
	defer p.endUpload()

	existing, err := p.store.Fetch(ctx)
	if err != nil {
		p.notify(LevelError, "Failed to load existing clippings")
		return domain.Clipping{}, err
	}

	if err := p.simulateProgress(ctx, progress); err != nil {
		return domain.Clipping{}, err
	}

	res, err := p.store.Upload(ctx, file.Meta.Name, file.Body)
	if err != nil {
		p.logger.Warn("file upload failed", logger.Error(err))
		p.notify(LevelError, "Upload failed. Please try again.")
		return domain.Clipping{}, err
	}

	clipping := domain.NewClipping(existing, draft, date, p.store.FileURL(res.Filename))
	updated := existing.Prepend(clipping)

	p.Dispatch(browser.ReplaceCollection{Collection: updated})

	if _, err := p.store.Replace(ctx, updated); err != nil {
		p.logger.Warn("collection save failed after upload", logger.Error(err))
		p.notify(LevelError, "Failed to save clippings to server")
		return clipping, err
	}

	p.logger.Info("clipping uploaded",
		logger.Int("id", clipping.ID),
		logger.String("file", res.Filename))
	p.notify(LevelSuccess, "Press clipping uploaded successfully!")
	return clipping, nil
}

// Uploading reports whether an upload is running.
func (p *Portal) Uploading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uploading
}

func (p *Portal) beginUpload() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.uploading {
		return false
	}
	p.uploading = true
	return true
}

func (p *Portal) endUpload() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uploading = false
}

func (p *Portal) simulateProgress(ctx context.Context, progress ProgressFunc) error {
	for pct := 0; pct <= 100; pct += 10 {
		if progress != nil {
			progress(pct)
		}
		if p.opts.ProgressStep == 0 {
			continue
		}
		t := time.NewTimer(p.opts.ProgressStep)
		select {
		case <-ctx.Done():
			t.Stop()
			return domain.NewTransportError("upload", ctx.Err())
		case <-t.C:
		}
	}
	return nil
}
