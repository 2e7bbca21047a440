package service

import (
	"context"
	"fmt"

	"github.com/JoseManuelPR/aduanas-app-sub001/backend/pkg/logger"
)

// DocumentUploader stores a document body under objectName
type DocumentUploader interface {
	Publish(ctx context.Context, objectName, contentType, body string) (string, error)
}

// PublishDocuments uploads every case document held in store. It stops at
// the first failure and returns how many documents were published.
func PublishDocuments(ctx context.Context, store *CaseStore, up DocumentUploader) (int, error) {
	published := 0
	for _, d := range store.Denuncias() {
		for _, doc := range d.Documentos {
			name := ObjectName(d.Aduana, d.ID, doc.ID)
			if _, err := up.Publish(ctx, name, doc.ContentType, doc.Contenido); err != nil {
				return published, fmt.Errorf("document %s of %s: %w", doc.ID, d.Numero, err)
			}
			logger.Debug(ctx, "document published", "object", name)
			published++
		}
	}
	return published, nil
}
