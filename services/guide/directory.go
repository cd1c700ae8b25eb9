package guide

import (
	"context"
	"errors"

	"ghtour/apperrors"
	"ghtour/database/store"
	"ghtour/models"

	"go.uber.org/zap"
)

func (d *DefaultGuideDirectory) ListAll(ctx context.Context) ([]models.Guide, error) {
	docs, err := d.Store.Query(ctx, d.Collection, nil)
	if err != nil {
		d.Logger.Error("Failed to list guides", zap.String("collection", d.Collection), zap.Error(err))
		return nil, apperrors.RemoteUnavailable("query "+d.Collection, err)
	}

	guides := make([]models.Guide, 0, len(docs))
	for _, doc := range docs {
		guides = append(guides, DecodeGuide(doc))
	}
	return guides, nil
}

func (d *DefaultGuideDirectory) GetByID(ctx context.Context, id string) (*models.Guide, error) {
	if id == "" {
		return nil, apperrors.NotFound("guide", id)
	}

	doc, err := d.Store.Get(ctx, d.Collection, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("guide", id)
		}
		d.Logger.Error("Failed to fetch guide", zap.String("id", id), zap.Error(err))
		return nil, apperrors.RemoteUnavailable("get "+d.Collection, err)
	}

	g := DecodeGuide(doc)
	return &g, nil
}

// DecodeGuide reads a guide document. The photo lives under "photo" in the canonical
// schema; older records written by the destination screen use "profile_picture".
func DecodeGuide(doc store.Document) models.Guide {
	name, _ := doc.String("name")
	experience, _ := doc.String("experience")
	destination, _ := doc.String("destination")

	return models.Guide{
		ID:          doc.ID,
		Name:        name,
		PhotoURL:    doc.StringOr("photo", "profile_picture"),
		Rating:      doc.Float("rating"),
		Languages:   doc.Strings("languages"),
		Specialties: doc.Strings("specialties"),
		Experience:  experience,
		Destination: destination,
	}
}
