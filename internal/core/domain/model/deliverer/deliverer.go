package deliverer

import (
	"errors"
	"fmt"
	"time"

	"deliveryapp/internal/core/domain/model/kernel"
	"deliveryapp/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	NameMaxLength            = 100
	EmailMaxLength           = 255
	PhoneMaxLength           = 20
	NationalIDMaxLength      = 50
	EmergencyNameMaxLength   = 200
	ProfilePhotoURLMaxLength = 500
)

var ErrDelivererIsNotConstructed = errors.New("Deliverer must be created via NewDeliverer constructor")

// Spec is the content of a new deliverer.
type Spec struct {
	FirstName             string
	LastName              string
	Email                 string
	Phone                 string
	DateOfBirth           *kernel.Date
	NationalID            *string
	Address               string
	City                  string
	PostalCode            string
	EmergencyContactName  *string
	EmergencyContactPhone *string
	Status                *Status
	HireDate              *kernel.Date
	ProfilePhotoURL       *string
	VehicleType           *VehicleType
}

// Patch lists replaceable attributes. Nil fields are left unchanged.
type Patch struct {
	FirstName             *string
	LastName              *string
	Email                 *string
	Phone                 *string
	DateOfBirth           *kernel.Date
	NationalID            *string
	Address               *string
	City                  *string
	PostalCode            *string
	EmergencyContactName  *string
	EmergencyContactPhone *string
	Status                *Status
	HireDate              *kernel.Date
	TerminationDate       *kernel.Date
	ProfilePhotoURL       *string
}

// Performance is the counters block of a deliverer.
type Performance struct {
	Rating               decimal.Decimal
	TotalDeliveries      int
	SuccessfulDeliveries int
	FailedDeliveries     int
}

// Deliverer is a person carrying out deliveries.
type Deliverer struct {
	id                    int64
	employeeNumber        string
	firstName             string
	lastName              string
	email                 string
	phone                 string
	dateOfBirth           kernel.Date
	nationalID            *string
	address               kernel.Address
	emergencyContactName  *string
	emergencyContactPhone *string
	status                Status
	hireDate              kernel.Date
	terminationDate       kernel.Date
	profilePhotoURL       *string
	performance           Performance
	vehicles              []Vehicle
	createdAt             time.Time
	updatedAt             time.Time

	isConstructed bool
}

// NewDeliverer validates spec. Status defaults to Inactive, hire date to the day of now,
// and the counters start at zero. When a vehicle type is given a placeholder vehicle is
// registered; its plate becomes "PENDING-<id>" once the id is assigned.
func NewDeliverer(spec Spec, now time.Time) (*Deliverer, error) {
	d := &Deliverer{
		status:        Inactive,
		hireDate:      kernel.DateOf(now),
		performance:   Performance{Rating: decimal.Zero},
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	firstName, firstErr := kernel.RequireText("firstName", spec.FirstName, NameMaxLength)
	lastName, lastErr := kernel.RequireText("lastName", spec.LastName, NameMaxLength)
	email, emailErr := kernel.RequireEmail("email", spec.Email, EmailMaxLength)
	phone, phoneErr := kernel.RequireText("phone", spec.Phone, PhoneMaxLength)
	address, addrErr := kernel.NewAddress(spec.Address, spec.City, spec.PostalCode)
	nationalID, nationalErr := kernel.OptionalText("nationalId", spec.NationalID, NationalIDMaxLength)
	contactName, contactNameErr := kernel.OptionalText(
		"emergencyContactName", spec.EmergencyContactName, EmergencyNameMaxLength)
	contactPhone, contactPhoneErr := kernel.OptionalText(
		"emergencyContactPhone", spec.EmergencyContactPhone, PhoneMaxLength)
	photoURL, photoErr := kernel.OptionalText("profilePhotoUrl", spec.ProfilePhotoURL, ProfilePhotoURLMaxLength)

	var statusErr, vehicleErr error
	if spec.Status != nil {
		if statusErr = spec.Status.Validate(); statusErr == nil {
			d.status = *spec.Status
		}
	}
	if spec.HireDate != nil && !spec.HireDate.IsZero() {
		d.hireDate = *spec.HireDate
	}
	if spec.VehicleType != nil {
		var vehicle Vehicle
		if vehicle, vehicleErr = NewPlaceholderVehicle(*spec.VehicleType); vehicleErr == nil {
			d.vehicles = append(d.vehicles, vehicle)
		}
	}

	if err := errors.Join(
		firstErr, lastErr, emailErr, phoneErr, addrErr, statusErr, vehicleErr,
		nationalErr, contactNameErr, contactPhoneErr, photoErr,
	); err != nil {
		return nil, err
	}

	d.firstName = firstName
	d.lastName = lastName
	d.email = email
	d.phone = phone
	d.address = address
	if spec.DateOfBirth != nil {
		d.dateOfBirth = *spec.DateOfBirth
	}
	d.nationalID = nationalID
	d.emergencyContactName = contactName
	d.emergencyContactPhone = contactPhone
	d.profilePhotoURL = photoURL
	return d, nil
}

// State is the persisted form of a deliverer, used by RestoreDeliverer.
type State struct {
	ID              int64
	EmployeeNumber  string
	Spec            Spec
	TerminationDate kernel.Date
	Performance     Performance
	Vehicles        []Vehicle
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RestoreDeliverer rebuilds a deliverer from persisted state.
func RestoreDeliverer(state State) (*Deliverer, error) {
	vehicles := state.Vehicles
	state.Spec.VehicleType = nil

	d, err := NewDeliverer(state.Spec, state.CreatedAt)
	if err != nil {
		return nil, err
	}
	d.id = state.ID
	d.employeeNumber = state.EmployeeNumber
	d.terminationDate = state.TerminationDate
	d.performance = state.Performance
	d.vehicles = vehicles
	d.updatedAt = state.UpdatedAt
	return d, nil
}

func (d *Deliverer) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDelivererIsNotConstructed
	}
	return nil
}

func (d *Deliverer) ID() int64 { return d.id }
func (d *Deliverer) EmployeeNumber() string { return d.employeeNumber }
func (d *Deliverer) FirstName() string { return d.firstName }
func (d *Deliverer) LastName() string { return d.lastName }
func (d *Deliverer) Email() string { return d.email }
func (d *Deliverer) Phone() string { return d.phone }
func (d *Deliverer) DateOfBirth() kernel.Date { return d.dateOfBirth }
func (d *Deliverer) NationalID() *string { return d.nationalID }
func (d *Deliverer) Address() kernel.Address { return d.address }
func (d *Deliverer) EmergencyContactName() *string { return d.emergencyContactName }
func (d *Deliverer) EmergencyContactPhone() *string { return d.emergencyContactPhone }
func (d *Deliverer) Status() Status { return d.status }
func (d *Deliverer) HireDate() kernel.Date { return d.hireDate }
func (d *Deliverer) TerminationDate() kernel.Date { return d.terminationDate }
func (d *Deliverer) ProfilePhotoURL() *string { return d.profilePhotoURL }
func (d *Deliverer) Performance() Performance { return d.performance }
func (d *Deliverer) CreatedAt() time.Time { return d.createdAt }
func (d *Deliverer) UpdatedAt() time.Time { return d.updatedAt }

// Vehicles returns the vehicles in insertion order.
func (d *Deliverer) Vehicles() []Vehicle {
	return append([]Vehicle(nil), d.vehicles...)
}

// PrimaryVehicleType is the type of the first vehicle, if any.
func (d *Deliverer) PrimaryVehicleType() *VehicleType {
	if len(d.vehicles) == 0 {
		return nil
	}
	vt := d.vehicles[0].vehicleType
	return &vt
}

// AssignID sets the identity allocated by the store and completes placeholder plates.
func (d *Deliverer) AssignID(id int64) error {
	if d.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("deliverer already has id %d", d.id))
	}
	d.id = id
	for i := range d.vehicles {
		if d.vehicles[i].licensePlate == "" {
			d.vehicles[i].licensePlate = PendingLicensePlate(id)
		}
	}
	return nil
}

// AssignEmployeeNumber sets the employee number of a not yet persisted deliverer.
func (d *Deliverer) AssignEmployeeNumber(number string) error {
	if d.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("employeeNumber", errors.New("number of a persisted deliverer is immutable"))
	}
	if number == "" {
		return errs.NewValueIsRequiredError("employeeNumber")
	}
	d.employeeNumber = number
	return nil
}

// Apply replaces every attribute set in patch. Failing validation leaves the deliverer untouched.
func (d *Deliverer) Apply(patch Patch, now time.Time) error {
	next := *d

	var errList []error
	setText := func(target *string, param string, value *string, maxLen int) {
		if value == nil {
			return
		}
		v, err := kernel.RequireText(param, *value, maxLen)
		if err != nil {
			errList = append(errList, err)
			return
		}
		*target = v
	}

	setText(&next.firstName, "firstName", patch.FirstName, NameMaxLength)
	setText(&next.lastName, "lastName", patch.LastName, NameMaxLength)
	setText(&next.phone, "phone", patch.Phone, PhoneMaxLength)
	if patch.Email != nil {
		email, err := kernel.RequireEmail("email", *patch.Email, EmailMaxLength)
		if err != nil {
			errList = append(errList, err)
		}
		next.email = email
	}

	address, err := d.address.WithParts("", patch.Address, patch.City, patch.PostalCode)
	if err != nil {
		errList = append(errList, err)
	}
	next.address = address

	if patch.Status != nil {
		if err := patch.Status.Validate(); err != nil {
			errList = append(errList, err)
		}
		next.status = *patch.Status
	}
	if patch.DateOfBirth != nil {
		next.dateOfBirth = *patch.DateOfBirth
	}
	if patch.HireDate != nil {
		next.hireDate = *patch.HireDate
	}
	if patch.TerminationDate != nil {
		next.terminationDate = *patch.TerminationDate
	}
	setOptional := func(target **string, param string, value *string, maxLen int) {
		if value == nil {
			return
		}
		v, err := kernel.OptionalText(param, value, maxLen)
		if err != nil {
			errList = append(errList, err)
			return
		}
		*target = v
	}
	setOptional(&next.nationalID, "nationalId", patch.NationalID, NationalIDMaxLength)
	setOptional(&next.emergencyContactName, "emergencyContactName", patch.EmergencyContactName, EmergencyNameMaxLength)
	setOptional(&next.emergencyContactPhone, "emergencyContactPhone", patch.EmergencyContactPhone, PhoneMaxLength)
	setOptional(&next.profilePhotoURL, "profilePhotoUrl", patch.ProfilePhotoURL, ProfilePhotoURLMaxLength)

	if err := errors.Join(errList...); err != nil {
		return err
	}

	next.updatedAt = now
	*d = next
	return nil
}
