package delivererrepo

import (
	"context"
	"errors"

	"deliveryapp/internal/adapters/out/postgres/pgerr"
	"deliveryapp/internal/core/domain/model/deliverer"
	"deliveryapp/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var mutableColumns = []string{
	"first_name", "last_name", "email", "phone", "date_of_birth", "national_id",
	"address", "city", "postal_code", "emergency_contact_name", "emergency_contact_phone",
	"status", "hire_date", "termination_date", "profile_photo_url", "updated_at",
}

// GormDelivererRepository implements ports.DelivererRepository using GORM.
type GormDelivererRepository struct {
	db *gorm.DB
}

func NewGormDelivererRepository(db *gorm.DB) *GormDelivererRepository {
	return &GormDelivererRepository{db: db}
}

// Add inserts the deliverer and then its vehicles, whose placeholder plates depend
// on the generated id. Both run inside one savepoint; the id is assigned to the
// aggregate only once the savepoint is released.
func (r *GormDelivererRepository) Add(ctx context.Context, aggregate *deliverer.Deliverer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	var plate string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&dto).Error; err != nil {
			return err
		}

		vehicles := vehiclesFromDomain(aggregate, dto.ID)
		if len(vehicles) == 0 {
			return nil
		}
		plate = vehicles[0].LicensePlate
		return tx.Create(&vehicles).Error
	})
	if err != nil {
		return r.mapError(err, aggregate, plate)
	}

	return aggregate.AssignID(dto.ID)
}

// Update writes the deliverer row. Vehicles and performance counters are not modified.
func (r *GormDelivererRepository) Update(ctx context.Context, aggregate *deliverer.Deliverer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	var result *gorm.DB
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result = tx.Model(&DelivererDTO{}).
			Where("id = ?", dto.ID).
			Select(mutableColumns).
			Omit(clause.Associations).
			Updates(&dto)
		return result.Error
	})
	if err != nil {
		return r.mapError(err, aggregate, "")
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("deliverer", dto.ID)
	}
	return nil
}

func (r *GormDelivererRepository) Get(ctx context.Context, id int64) (*deliverer.Deliverer, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate loads the deliverer and locks its row until the transaction ends.
func (r *GormDelivererRepository) GetForUpdate(ctx context.Context, id int64) (*deliverer.Deliverer, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormDelivererRepository) get(db *gorm.DB, id int64) (*deliverer.Deliverer, error) {
	var dto DelivererDTO
	err := db.Preload("Vehicles", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id")
	}).First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("deliverer", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the deliverer; its vehicles are removed by cascade.
func (r *GormDelivererRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&DelivererDTO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("deliverer", id)
	}
	return nil
}

// Count returns the number of deliverers; employee numbers are derived from it.
func (r *GormDelivererRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&DelivererDTO{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDelivererRepository) mapError(err error, aggregate *deliverer.Deliverer, plate string) error {
	return pgerr.MapUnique(err, "deliverer", pgerr.Unique{
		employeeNumberIndex: {Name: "employeeNumber", Value: aggregate.EmployeeNumber()},
		emailIndex:          {Name: "email", Value: aggregate.Email()},
		licensePlateIndex:   {Name: "licensePlate", Value: plate},
	})
}
