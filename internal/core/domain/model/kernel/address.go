package kernel

import (
	"errors"
	"strings"

	"deliveryapp/internal/pkg/guard"
)

const (
	CityMaxLength       = 100
	PostalCodeMaxLength = 20
)

var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is a street address with its city and postal code.
// The street line is free text; city and postal code are size-limited.
//
// Example:
//
//	addr, err := kernel.NewAddress("1 Main St", "Springfield", "12345")
type Address struct { //nolint:recvcheck //using for validation
	street     string
	city       string
	postalCode string
	guard      guard.ConstructorGuard
}

// NewAddress validates the three parts of an address. Each part is required.
func NewAddress(street, city, postalCode string) (Address, error) {
	return NewPrefixedAddress("", street, city, postalCode)
}

// NewPrefixedAddress is NewAddress with parameter names prefixed, for payloads that carry
// more than one address ("pickup" reports a bad city as "pickupCity").
func NewPrefixedAddress(prefix, street, city, postalCode string) (Address, error) {
	a := Address{guard: guard.NewConstructorGuard()}

	var streetErr, cityErr, postalErr error
	a.street, streetErr = RequireText(paramName(prefix, "address"), street, 0)
	a.city, cityErr = RequireText(paramName(prefix, "city"), city, CityMaxLength)
	a.postalCode, postalErr = RequireText(paramName(prefix, "postalCode"), postalCode, PostalCodeMaxLength)

	if err := errors.Join(streetErr, cityErr, postalErr); err != nil {
		return Address{}, err
	}
	return a, nil
}

func paramName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + strings.ToUpper(name[:1]) + name[1:]
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Street() string {
	return a.street
}

func (a Address) City() string {
	return a.city
}

func (a Address) PostalCode() string {
	return a.postalCode
}

func (a Address) IsEqual(other Address) bool {
	return a.street == other.street && a.city == other.city && a.postalCode == other.postalCode
}

// WithParts returns a copy of a where every non-nil part replaces the stored one.
func (a Address) WithParts(prefix string, street, city, postalCode *string) (Address, error) {
	s, c, p := a.street, a.city, a.postalCode
	if street != nil {
		s = *street
	}
	if city != nil {
		c = *city
	}
	if postalCode != nil {
		p = *postalCode
	}
	return NewPrefixedAddress(prefix, s, c, p)
}
