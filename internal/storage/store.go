package storage

import (
	"context"

	"pylens/internal/detect"
	"pylens/internal/provider"
)

// Store persists detection results between scans.
type Store interface {
	// SaveFindings replaces the stored findings for a document.
	SaveFindings(ctx context.Context, doc provider.DocumentID, findings []detect.Finding) error

	// FindByDocument retrieves the stored findings for a document.
	FindByDocument(ctx context.Context, doc provider.DocumentID) ([]detect.Finding, error)

	// Documents lists every document with stored findings.
	Documents(ctx context.Context) ([]provider.DocumentID, error)

	Close() error
}
