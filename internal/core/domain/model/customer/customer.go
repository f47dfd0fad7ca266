// Package customer holds the Customer aggregate owned by the order service.
package customer

import (
	"errors"
	"fmt"
	"time"

	"deliveryapp/internal/core/domain/model/kernel"
	"deliveryapp/internal/pkg/errs"
)

const (
	NameMaxLength  = 100
	EmailMaxLength = 255
	PhoneMaxLength = 20
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Profile carries the mutable attributes of a customer.
type Profile struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	City       string
	PostalCode string
}

// Customer is a person placing orders. Email is unique across customers.
type Customer struct {
	id        int64
	firstName string
	lastName  string
	email     string
	phone     string
	address   kernel.Address
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewCustomer validates the profile and returns a customer that has not been persisted yet.
func NewCustomer(profile Profile, now time.Time) (*Customer, error) {
	c := &Customer{isConstructed: true, createdAt: now, updatedAt: now}
	if err := c.apply(profile); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreCustomer rebuilds a customer from persisted state.
func RestoreCustomer(id int64, profile Profile, createdAt, updatedAt time.Time) (*Customer, error) {
	c, err := NewCustomer(profile, createdAt)
	if err != nil {
		return nil, err
	}
	c.id = id
	c.updatedAt = updatedAt
	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

// Update replaces the whole profile.
func (c *Customer) Update(profile Profile, now time.Time) error {
	if err := c.apply(profile); err != nil {
		return err
	}
	c.updatedAt = now
	return nil
}

// AssignID sets the identity allocated by the store. It can only be called once.
func (c *Customer) AssignID(id int64) error {
	if c.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("customer already has id %d", c.id))
	}
	c.id = id
	return nil
}

func (c *Customer) ID() int64 {
	return c.id
}

func (c *Customer) FirstName() string {
	return c.firstName
}

func (c *Customer) LastName() string {
	return c.lastName
}

// Email returns the lower-cased email address.
func (c *Customer) Email() string {
	return c.email
}

func (c *Customer) Phone() string {
	return c.phone
}

func (c *Customer) Address() kernel.Address {
	return c.address
}

func (c *Customer) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Customer) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Customer) apply(p Profile) error {
	firstName, firstErr := kernel.RequireText("firstName", p.FirstName, NameMaxLength)
	lastName, lastErr := kernel.RequireText("lastName", p.LastName, NameMaxLength)
	email, emailErr := kernel.RequireEmail("email", p.Email, EmailMaxLength)
	phone, phoneErr := kernel.RequireText("phone", p.Phone, PhoneMaxLength)
	address, addrErr := kernel.NewAddress(p.Address, p.City, p.PostalCode)

	if err := errors.Join(firstErr, lastErr, emailErr, phoneErr, addrErr); err != nil {
		return err
	}

	c.firstName = firstName
	c.lastName = lastName
	c.email = email
	c.phone = phone
	c.address = address
	return nil
}
