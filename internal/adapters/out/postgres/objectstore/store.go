package objectstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/core/ports"
	"starmap/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.ArtifactStore = (*GormObjectStore)(nil)

// listColumns leaves the body out of listings.
var listColumns = []string{"object_key", "content_type", "size", "created_at"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GormObjectStore stores objects in the objects table.
type GormObjectStore struct {
	db        *gorm.DB
	publicURL string
	now       func() time.Time
}

// Option configures a GormObjectStore.
type Option func(*GormObjectStore)

// WithClock replaces the time source used for CreatedAt and staleness checks.
func WithClock(now func() time.Time) Option {
	return func(s *GormObjectStore) {
		s.now = now
	}
}

// NewGormObjectStore creates a store whose object URLs start with publicURL.
func NewGormObjectStore(db *gorm.DB, publicURL string, opts ...Option) *GormObjectStore {
	s := &GormObjectStore{db: db, publicURL: publicURL, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Migrate creates or updates the objects table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ObjectDTO{})
}

func (s *GormObjectStore) Put(ctx context.Context, key string, body []byte, contentType string) (artifact.Object, error) {
	dto := s.newDTO(key, body, contentType)

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "object_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"content_type", "body", "size", "created_at"}),
		}).
		Create(&dto).Error
	if err != nil {
		return artifact.Object{}, err
	}

	return dto.toDomain(s.publicURL), nil
}

// Create is a single INSERT ... ON CONFLICT statement. With staleAfter set,
// the conflicting row is overwritten only if it is older than the threshold;
// otherwise the insert is skipped. Zero affected rows means a fresh object
// is in the way.
func (s *GormObjectStore) Create(
	ctx context.Context,
	key string,
	body []byte,
	contentType string,
	staleAfter time.Duration,
) (artifact.Object, error) {
	dto := s.newDTO(key, body, contentType)

	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "object_key"}},
		DoNothing: true,
	}
	if staleAfter > 0 {
		onConflict = clause.OnConflict{
			Columns:   []clause.Column{{Name: "object_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"content_type", "body", "size", "created_at"}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Lt{
					Column: clause.Column{Table: ObjectDTO{}.TableName(), Name: "created_at"},
					Value:  dto.CreatedAt.Add(-staleAfter),
				},
			}},
		}
	}

	result := s.db.WithContext(ctx).Clauses(onConflict).Create(&dto)
	if result.Error != nil {
		return artifact.Object{}, result.Error
	}
	if result.RowsAffected == 0 {
		return artifact.Object{}, errs.NewObjectAlreadyExistsError("key", key)
	}

	return dto.toDomain(s.publicURL), nil
}

func (s *GormObjectStore) List(ctx context.Context, prefix string, limit int) ([]artifact.Object, error) {
	query := s.db.WithContext(ctx).
		Select(listColumns).
		Where(`object_key LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%").
		Order("created_at, object_key")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []ObjectDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	objects := make([]artifact.Object, 0, len(dtos))
	for _, dto := range dtos {
		objects = append(objects, dto.toDomain(s.publicURL))
	}
	return objects, nil
}

func (s *GormObjectStore) Get(ctx context.Context, key string) (artifact.Object, []byte, error) {
	var dto ObjectDTO
	if err := s.db.WithContext(ctx).First(&dto, "object_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return artifact.Object{}, nil, errs.NewObjectNotFoundError("key", key)
		}
		return artifact.Object{}, nil, err
	}
	return dto.toDomain(s.publicURL), dto.Body, nil
}

func (s *GormObjectStore) Delete(ctx context.Context, key string) error {
	result := s.db.WithContext(ctx).Where("object_key = ?", key).Delete(&ObjectDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("key", key)
	}
	return nil
}

func (s *GormObjectStore) DeleteExpired(ctx context.Context, prefix string, olderThan time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where(`object_key LIKE ? ESCAPE '\' AND created_at < ?`, escapeLike(prefix)+"%", olderThan).
		Delete(&ObjectDTO{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (s *GormObjectStore) newDTO(key string, body []byte, contentType string) ObjectDTO {
	if body == nil {
		body = []byte{}
	}
	return ObjectDTO{
		Key:         key,
		ContentType: contentType,
		Body:        body,
		Size:        int64(len(body)),
		CreatedAt:   s.now().UTC(),
	}
}

// escapeLike makes prefix match literally in a LIKE pattern.
func escapeLike(prefix string) string {
	return likeEscaper.Replace(prefix)
}
