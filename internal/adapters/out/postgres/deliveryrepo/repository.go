package deliveryrepo

import (
	"context"
	"errors"

	"deliveryapp/internal/adapters/out/postgres/pgerr"
	"deliveryapp/internal/core/domain/model/delivery"
	"deliveryapp/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// mutableColumns are written by Update; number, order reference and createdAt are fixed.
var mutableColumns = []string{
	"deliverer_id", "status",
	"pickup_address", "pickup_city", "pickup_postal_code",
	"delivery_address", "delivery_city", "delivery_postal_code",
	"estimated_distance", "estimated_duration", "actual_distance", "actual_duration",
	"priority", "scheduled_pickup_time", "actual_pickup_time",
	"estimated_delivery_time", "actual_delivery_time",
	"special_instructions", "notes", "updated_at",
}

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db *gorm.DB
}

func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// Add inserts the delivery with its pending status changes inside a savepoint.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&dto).Error
	})
	if err != nil {
		return pgerr.MapUnique(err, "delivery", pgerr.Unique{
			deliveryNumberIndex: {Name: "deliveryNumber", Value: aggregate.DeliveryNumber()},
		})
	}

	return aggregate.AssignID(dto.ID)
}

func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&DeliveryDTO{}).
			Where("id = ?", dto.ID).
			Select(mutableColumns).
			Omit(clause.Associations).
			Updates(&dto)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("delivery", dto.ID)
		}

		if len(dto.StatusChanges) == 0 {
			return nil
		}
		return tx.Create(&dto.StatusChanges).Error
	})
	return pgerr.MapData(err)
}

// GetForUpdate loads the delivery and locks its row until the transaction ends.
func (r *GormDeliveryRepository) GetForUpdate(ctx context.Context, id int64) (*delivery.Delivery, error) {
	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormDeliveryRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&DeliveryDTO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", id)
	}
	return nil
}
