package delivery

import (
	"errors"
	"fmt"
	"time"

	"deliveryapp/internal/core/domain/model/kernel"
	"deliveryapp/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	DefaultPriority        = "NORMAL"
	PriorityMaxLength      = 20
	OrderNumberMaxLength   = 50
	changedAssignmentNotes = "Deliverer assigned"
)

var (
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrDelivererRequired is returned when a delivery would become Assigned without a deliverer.
	ErrDelivererRequired = errs.NewValueIsRequiredErrorWithCause(
		"delivererId", errors.New("an ASSIGNED delivery needs a deliverer"))
)

// Schedule groups the optional planning and measurement attributes of a delivery.
type Schedule struct {
	EstimatedDistance     *decimal.Decimal
	EstimatedDuration     *int
	ActualDistance        *decimal.Decimal
	ActualDuration        *int
	ScheduledPickupTime   *time.Time
	ActualPickupTime      *time.Time
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
}

// Spec is the content of a new delivery.
type Spec struct {
	OrderID             int64
	OrderNumber         string
	DelivererID         *int64
	Status              *Status
	Pickup              kernel.Address
	Dropoff             kernel.Address
	Priority            *string
	SpecialInstructions *string
	Notes               *string
	Schedule            Schedule
}

// Patch lists replaceable attributes. Nil fields are left unchanged.
type Patch struct {
	DelivererID         *int64
	Status              *Status
	PickupAddress       *string
	PickupCity          *string
	PickupPostalCode    *string
	DeliveryAddress     *string
	DeliveryCity        *string
	DeliveryPostalCode  *string
	Priority            *string
	SpecialInstructions *string
	Notes               *string
	Schedule            Schedule
}

// Delivery is the fulfilment record of one order.
//
// Invariants:
//   - status changes follow the Status transition table
//   - an Assigned (or later) delivery created through assignment has a deliverer
//   - orderId and orderNumber are fixed at creation
type Delivery struct {
	id                  int64
	deliveryNumber      string
	orderID             int64
	orderNumber         string
	delivererID         *int64
	status              Status
	pickup              kernel.Address
	dropoff             kernel.Address
	priority            string
	specialInstructions *string
	notes               *string
	schedule            Schedule
	createdAt           time.Time
	updatedAt           time.Time

	pendingChanges []StatusChange

	isConstructed bool
}

// NewDelivery validates spec. The initial status is PendingAssignment unless Assigned is
// requested together with a deliverer, in which case the assignment is recorded as the
// first status change.
func NewDelivery(spec Spec, now time.Time) (*Delivery, error) {
	d := &Delivery{
		status:        PendingAssignment,
		priority:      DefaultPriority,
		schedule:      spec.Schedule,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setOrder(spec.OrderID, spec.OrderNumber),
		d.setDeliverer(spec.DelivererID),
		requireAddress("pickupAddress", spec.Pickup),
		requireAddress("deliveryAddress", spec.Dropoff),
		d.setPriority(spec.Priority),
		d.setSpecialInstructions(spec.SpecialInstructions),
		d.setNotes(spec.Notes),
		validateSchedule(spec.Schedule),
	); err != nil {
		return nil, err
	}
	d.pickup = spec.Pickup
	d.dropoff = spec.Dropoff

	if spec.Status != nil && *spec.Status != PendingAssignment {
		if *spec.Status != Assigned {
			return nil, errs.NewValueIsInvalidErrorWithCause("status",
				fmt.Errorf("a delivery starts as %s or %s, not %s", PendingAssignment, Assigned, *spec.Status))
		}
		notes := changedAssignmentNotes
		if _, err := d.transition(Assigned, &notes, now); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// RestoreDelivery rebuilds a delivery from persisted state.
func RestoreDelivery(
	id int64,
	deliveryNumber string,
	spec Spec,
	status Status,
	createdAt, updatedAt time.Time,
) (*Delivery, error) {
	if err := errors.Join(status.Validate(), spec.Pickup.Validate(), spec.Dropoff.Validate()); err != nil {
		return nil, err
	}
	priority := DefaultPriority
	if spec.Priority != nil {
		priority = *spec.Priority
	}
	return &Delivery{
		id:                  id,
		deliveryNumber:      deliveryNumber,
		orderID:             spec.OrderID,
		orderNumber:         spec.OrderNumber,
		delivererID:         spec.DelivererID,
		status:              status,
		pickup:              spec.Pickup,
		dropoff:             spec.Dropoff,
		priority:            priority,
		specialInstructions: spec.SpecialInstructions,
		notes:               spec.Notes,
		schedule:            spec.Schedule,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
		isConstructed:       true,
	}, nil
}

func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

func (d *Delivery) ID() int64 { return d.id }
func (d *Delivery) DeliveryNumber() string { return d.deliveryNumber }
func (d *Delivery) OrderID() int64 { return d.orderID }
func (d *Delivery) OrderNumber() string { return d.orderNumber }
func (d *Delivery) DelivererID() *int64 { return d.delivererID }
func (d *Delivery) Status() Status { return d.status }
func (d *Delivery) Pickup() kernel.Address { return d.pickup }
func (d *Delivery) Dropoff() kernel.Address { return d.dropoff }
func (d *Delivery) Priority() string { return d.priority }
func (d *Delivery) SpecialInstructions() *string { return d.specialInstructions }
func (d *Delivery) Notes() *string { return d.notes }
func (d *Delivery) Schedule() Schedule { return d.schedule }
func (d *Delivery) CreatedAt() time.Time { return d.createdAt }
func (d *Delivery) UpdatedAt() time.Time { return d.updatedAt }

// PendingStatusChanges returns the transitions that have not been persisted yet.
func (d *Delivery) PendingStatusChanges() []StatusChange {
	return append([]StatusChange(nil), d.pendingChanges...)
}

// AssignID sets the identity allocated by the store. It can only be called once.
func (d *Delivery) AssignID(id int64) error {
	if d.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("delivery already has id %d", d.id))
	}
	d.id = id
	return nil
}

// AssignNumber sets the delivery number of a not yet persisted delivery.
func (d *Delivery) AssignNumber(number string) error {
	if d.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliveryNumber", errors.New("number of a persisted delivery is immutable"))
	}
	if number == "" {
		return errs.NewValueIsRequiredError("deliveryNumber")
	}
	d.deliveryNumber = number
	return nil
}

// Apply replaces every attribute set in patch. A status different from the current one
// is checked against the transition table; the resulting change, if any, is returned.
// Failing validation leaves the delivery untouched.
func (d *Delivery) Apply(patch Patch, now time.Time) (*StatusChange, error) {
	next := *d
	next.pendingChanges = d.PendingStatusChanges()

	pickup, pickupErr := d.pickup.WithParts("pickup", patch.PickupAddress, patch.PickupCity, patch.PickupPostalCode)
	dropoff, dropoffErr := d.dropoff.WithParts("delivery", patch.DeliveryAddress, patch.DeliveryCity, patch.DeliveryPostalCode)

	var delivererErr, priorityErr, instructionsErr, notesErr error
	if patch.DelivererID != nil {
		delivererErr = next.setDeliverer(patch.DelivererID)
	}
	if patch.Priority != nil {
		priorityErr = next.setPriority(patch.Priority)
	}
	if patch.SpecialInstructions != nil {
		instructionsErr = next.setSpecialInstructions(patch.SpecialInstructions)
	}
	if patch.Notes != nil {
		notesErr = next.setNotes(patch.Notes)
	}
	next.schedule = mergeSchedule(d.schedule, patch.Schedule)

	if err := errors.Join(
		pickupErr, dropoffErr, delivererErr, priorityErr, instructionsErr, notesErr,
		validateSchedule(next.schedule),
	); err != nil {
		return nil, err
	}
	next.pickup = pickup
	next.dropoff = dropoff
	next.updatedAt = now

	var change *StatusChange
	if patch.Status != nil && *patch.Status != d.status {
		var err error
		if change, err = next.transition(*patch.Status, patch.Notes, now); err != nil {
			return nil, err
		}
	}

	*d = next
	return change, nil
}

// transition moves the delivery, stamps progress times and records the change.
func (d *Delivery) transition(to Status, notes *string, now time.Time) (*StatusChange, error) {
	newStatus, err := d.status.TransitionTo(to)
	if err != nil {
		return nil, err
	}
	if newStatus == Assigned && d.delivererID == nil {
		return nil, ErrDelivererRequired
	}

	switch newStatus { //nolint:exhaustive // only progress statuses carry a timestamp
	case PickedUp:
		if d.schedule.ActualPickupTime == nil {
			d.schedule.ActualPickupTime = &now
		}
	case Delivered:
		if d.schedule.ActualDeliveryTime == nil {
			d.schedule.ActualDeliveryTime = &now
		}
	}

	change := StatusChange{From: d.status, To: newStatus, Notes: notes, At: now}
	d.status = newStatus
	d.updatedAt = now
	d.pendingChanges = append(d.pendingChanges, change)
	return &change, nil
}

func (d *Delivery) setOrder(orderID int64, orderNumber string) error {
	if orderID <= 0 {
		return errs.NewValueIsRequiredError("orderId")
	}
	number, err := kernel.RequireText("orderNumber", orderNumber, OrderNumberMaxLength)
	if err != nil {
		return err
	}
	d.orderID = orderID
	d.orderNumber = number
	return nil
}

func (d *Delivery) setDeliverer(id *int64) error {
	if id == nil {
		return nil
	}
	if *id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivererId", fmt.Errorf("%d is not a valid id", *id))
	}
	value := *id
	d.delivererID = &value
	return nil
}

func (d *Delivery) setPriority(priority *string) error {
	value, err := kernel.OptionalText("priority", priority, PriorityMaxLength)
	if err != nil {
		return err
	}
	if value != nil {
		d.priority = *value
	}
	return nil
}

func (d *Delivery) setSpecialInstructions(instructions *string) error {
	value, err := kernel.OptionalText("specialInstructions", instructions, 0)
	if err != nil {
		return err
	}
	d.specialInstructions = value
	return nil
}

func (d *Delivery) setNotes(notes *string) error {
	value, err := kernel.OptionalText("notes", notes, 0)
	if err != nil {
		return err
	}
	d.notes = value
	return nil
}

func requireAddress(param string, address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}

func validateSchedule(s Schedule) error {
	return errors.Join(
		checkDistance("estimatedDistance", s.EstimatedDistance),
		checkDistance("actualDistance", s.ActualDistance),
		checkDuration("estimatedDuration", s.EstimatedDuration),
		checkDuration("actualDuration", s.ActualDuration),
	)
}

func checkDistance(param string, value *decimal.Decimal) error {
	if value == nil {
		return nil
	}
	if value.IsNegative() {
		return errs.NewValueIsInvalidError(param)
	}
	_, err := kernel.Measure.Check(param, *value)
	return err
}

func checkDuration(param string, value *int) error {
	if value == nil {
		return nil
	}
	if *value < 0 {
		return errs.NewValueIsInvalidError(param)
	}
	return kernel.CheckInt32(param, *value)
}

func mergeSchedule(current, patch Schedule) Schedule {
	if patch.EstimatedDistance != nil {
		current.EstimatedDistance = patch.EstimatedDistance
	}
	if patch.EstimatedDuration != nil {
		current.EstimatedDuration = patch.EstimatedDuration
	}
	if patch.ActualDistance != nil {
		current.ActualDistance = patch.ActualDistance
	}
	if patch.ActualDuration != nil {
		current.ActualDuration = patch.ActualDuration
	}
	if patch.ScheduledPickupTime != nil {
		current.ScheduledPickupTime = patch.ScheduledPickupTime
	}
	if patch.ActualPickupTime != nil {
		current.ActualPickupTime = patch.ActualPickupTime
	}
	if patch.EstimatedDeliveryTime != nil {
		current.EstimatedDeliveryTime = patch.EstimatedDeliveryTime
	}
	if patch.ActualDeliveryTime != nil {
		current.ActualDeliveryTime = patch.ActualDeliveryTime
	}
	return current
}
