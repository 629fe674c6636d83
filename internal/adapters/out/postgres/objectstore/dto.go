// Package objectstore implements ports.ArtifactStore on a single Postgres
// table through GORM. Claims and documents live in the same table and are
// told apart by key prefix.
package objectstore

import (
	"time"

	"starmap/internal/core/domain/model/artifact"
)

// ObjectDTO is one stored blob.
type ObjectDTO struct {
	Key         string    `gorm:"column:object_key;primaryKey"`
	ContentType string    `gorm:"not null"`
	Body        []byte    `gorm:"type:bytea;not null"`
	Size        int64     `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName overrides GORM's default naming convention.
func (ObjectDTO) TableName() string {
	return "objects"
}

func (d ObjectDTO) toDomain(publicURL string) artifact.Object {
	return artifact.Object{
		Key:         d.Key,
		URL:         artifact.PublicURL(publicURL, d.Key),
		ContentType: d.ContentType,
		Size:        d.Size,
		CreatedAt:   d.CreatedAt,
	}
}
