// Package pdf implements ports.DocumentRenderer: the poster is laid out as
// HTML and printed to PDF by a headless browser.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/core/ports"
)

var _ ports.DocumentRenderer = (*Renderer)(nil)

// ErrEmptyDocument is returned when the browser printed nothing.
var ErrEmptyDocument = errors.New("print engine returned an empty document")

// Session is one browser instance. It must be closed on every path.
type Session interface {
	PrintPDF(ctx context.Context, html string, page artifact.PageSize) ([]byte, error)
	Close() error
}

// SessionFactory starts browser sessions.
type SessionFactory interface {
	Open(ctx context.Context) (Session, error)
}

// Renderer opens a fresh session per document and closes it when done,
// whether printing succeeded, failed or panicked.
type Renderer struct {
	sessions SessionFactory
	logger   *slog.Logger
}

func NewRenderer(sessions SessionFactory, logger *slog.Logger) *Renderer {
	return &Renderer{
		sessions: sessions,
		logger:   logger.With("component", "pdf_renderer"),
	}
}

func (r *Renderer) Render(ctx context.Context, req ports.DocumentRequest) (doc artifact.Document, err error) {
	if err = req.Color.Validate(); err != nil {
		return artifact.Document{}, err
	}

	html, err := RenderPosterHTML(req)
	if err != nil {
		return artifact.Document{}, err
	}

	session, err := r.sessions.Open(ctx)
	if err != nil {
		return artifact.Document{}, fmt.Errorf("open print session: %w", err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			r.logger.WarnContext(ctx, "closing print session failed", "error", closeErr)
		}
	}()

	body, err := session.PrintPDF(ctx, html, req.Page)
	if err != nil {
		return artifact.Document{}, fmt.Errorf("print poster: %w", err)
	}
	if len(body) == 0 {
		return artifact.Document{}, ErrEmptyDocument
	}

	return artifact.Document{PDF: body, Page: req.Page}, nil
}
