package officerepo

import (
	"context"
	"errors"

	"moveline/internal/core/domain/model/kernel"
	"moveline/internal/core/domain/model/office"
	"moveline/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOfficeRepository implements ports.OfficeRepository using GORM.
type GormOfficeRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOfficeRepository creates a new GORM office repository.
func NewGormOfficeRepository(db *gorm.DB, tracker aggregateTracker) *GormOfficeRepository {
	return &GormOfficeRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new office to the database.
func (r *GormOfficeRepository) Add(ctx context.Context, aggregate *office.Office) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an office by ID.
func (r *GormOfficeRepository) Get(ctx context.Context, id kernel.UUID) (*office.Office, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OfficeDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("office", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every office in identifier order, keeping downstream
// distance-tie ranking deterministic.
func (r *GormOfficeRepository) GetAll(ctx context.Context) ([]*office.Office, error) {
	var dtos []OfficeDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	offices := make([]*office.Office, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		offices = append(offices, aggregate)
	}

	return offices, nil
}
