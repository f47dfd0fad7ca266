// Package customerrepo persists customers of the order service.
package customerrepo

import (
	"time"

	"deliveryapp/internal/core/domain/model/customer"
)

const emailIndex = "uq_customers_email"

// CustomerDTO is the row of the customers table. Emails are stored lower-cased.
type CustomerDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	FirstName  string    `gorm:"size:100;not null"`
	LastName   string    `gorm:"size:100;not null"`
	Email      string    `gorm:"size:255;not null;uniqueIndex:uq_customers_email"`
	Phone      string    `gorm:"size:20;not null"`
	Address    string    `gorm:"type:text;not null"`
	City       string    `gorm:"size:100;not null"`
	PostalCode string    `gorm:"size:20;not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	address := c.Address()
	return CustomerDTO{
		ID:         c.ID(),
		FirstName:  c.FirstName(),
		LastName:   c.LastName(),
		Email:      c.Email(),
		Phone:      c.Phone(),
		Address:    address.Street(),
		City:       address.City(),
		PostalCode: address.PostalCode(),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	return customer.RestoreCustomer(dto.ID, customer.Profile{
		FirstName:  dto.FirstName,
		LastName:   dto.LastName,
		Email:      dto.Email,
		Phone:      dto.Phone,
		Address:    dto.Address,
		City:       dto.City,
		PostalCode: dto.PostalCode,
	}, dto.CreatedAt, dto.UpdatedAt)
}
