package customerrepo

import (
	"context"
	"errors"

	"deliveryapp/internal/adapters/out/postgres/pgerr"
	"deliveryapp/internal/core/domain/model/customer"
	"deliveryapp/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Add inserts a new customer and assigns the generated id.
func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&dto).Error
	})
	if err != nil {
		return r.mapError(err, aggregate)
	}

	return aggregate.AssignID(dto.ID)
}

func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	var result *gorm.DB
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result = tx.Model(&CustomerDTO{}).
			Where("id = ?", dto.ID).
			Select("first_name", "last_name", "email", "phone", "address", "city", "postal_code", "updated_at").
			Updates(&dto)
		return result.Error
	})
	if err != nil {
		return r.mapError(err, aggregate)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", dto.ID)
	}
	return nil
}

func (r *GormCustomerRepository) Get(ctx context.Context, id int64) (*customer.Customer, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate loads the customer and locks its row until the transaction ends.
func (r *GormCustomerRepository) GetForUpdate(ctx context.Context, id int64) (*customer.Customer, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormCustomerRepository) get(db *gorm.DB, id int64) (*customer.Customer, error) {
	var dto CustomerDTO
	if err := db.First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the customer; orders, their items and history go with it through
// cascading foreign keys.
func (r *GormCustomerRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&CustomerDTO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", id)
	}
	return nil
}

func (r *GormCustomerRepository) mapError(err error, aggregate *customer.Customer) error {
	return pgerr.MapUnique(err, "customer", pgerr.Unique{
		emailIndex: {Name: "email", Value: aggregate.Email()},
	})
}
