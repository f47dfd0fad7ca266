package order

import (
	"errors"
	"fmt"
	"time"

	"deliveryapp/internal/core/domain/model/kernel"
	"deliveryapp/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is returned when an order is created without lines.
	ErrOrderHasNoItems = errs.NewValueIsRequiredErrorWithCause("items", errors.New("order must have at least one item"))
)

// Spec is the caller-supplied content of a new order.
type Spec struct {
	CustomerID          int64
	DeliveryAddress     kernel.Address
	SpecialInstructions *string
	DeliveryFee         *decimal.Decimal
	Items               []ItemSpec
}

// DeliveryDetailsPatch lists the order attributes that remain mutable after creation.
// Nil fields are left unchanged.
type DeliveryDetailsPatch struct {
	DeliveryAddress     *string
	DeliveryCity        *string
	DeliveryPostalCode  *string
	SpecialInstructions *string
}

// Order is the aggregate root of the order service. It owns its items and its
// status history.
//
// Order follows these invariants:
//   - totalAmount = Σ(item.unitPrice·item.quantity) + deliveryFee, fixed at creation
//   - at least one item, fixed after creation
//   - status changes follow the Status transition table and each one appends a history entry
//   - the first history entry is (PENDING, "Order created", SYSTEM)
type Order struct {
	id                  int64
	orderNumber         string
	customerID          int64
	status              Status
	totalAmount         decimal.Decimal
	deliveryFee         decimal.Decimal
	deliveryAddress     kernel.Address
	specialInstructions *string
	items               []Item
	createdAt           time.Time
	updatedAt           time.Time

	// pendingHistory holds entries appended since the aggregate was created or loaded.
	pendingHistory []HistoryEntry

	isConstructed bool
}

// NewOrder validates spec, computes the total and records the initial history entry.
// The order number is assigned separately through AssignNumber.
//
// Example:
//
//	addr, _ := kernel.NewAddress("1 Main St", "Springfield", "12345")
//	fee := decimal.RequireFromString("3.50")
//	o, err := order.NewOrder(order.Spec{
//	    CustomerID:      1,
//	    DeliveryAddress: addr,
//	    DeliveryFee:     &fee,
//	    Items:           []order.ItemSpec{{ProductName: "Book", Quantity: 2, UnitPrice: decimal.NewFromInt(10)}},
//	}, time.Now())
//	// o.TotalAmount() == 23.50
func NewOrder(spec Spec, now time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setCustomerID(spec.CustomerID),
		o.setDeliveryAddress(spec.DeliveryAddress),
		o.setSpecialInstructions(spec.SpecialInstructions),
		o.setDeliveryFee(spec.DeliveryFee),
		o.setItems(spec.Items),
	); err != nil {
		return nil, err
	}

	total := o.deliveryFee
	for _, item := range o.items {
		total = total.Add(item.TotalPrice())
	}
	total, err := kernel.Money.Check("totalAmount", total)
	if err != nil {
		return nil, err
	}
	o.totalAmount = total

	notes := "Order created"
	o.pendingHistory = append(o.pendingHistory, newHistoryEntry(Pending, &notes, SystemActor, now))
	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. Totals are taken as stored.
func RestoreOrder(
	id int64,
	orderNumber string,
	customerID int64,
	status Status,
	totalAmount decimal.Decimal,
	deliveryFee decimal.Decimal,
	deliveryAddress kernel.Address,
	specialInstructions *string,
	items []Item,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := errors.Join(status.Validate(), deliveryAddress.Validate()); err != nil {
		return nil, err
	}
	return &Order{
		id:                  id,
		orderNumber:         orderNumber,
		customerID:          customerID,
		status:              status,
		totalAmount:         totalAmount,
		deliveryFee:         deliveryFee,
		deliveryAddress:     deliveryAddress,
		specialInstructions: specialInstructions,
		items:               items,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
		isConstructed:       true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() int64 { return o.id }
func (o *Order) OrderNumber() string { return o.orderNumber }
func (o *Order) CustomerID() int64 { return o.customerID }
func (o *Order) Status() Status { return o.status }
func (o *Order) TotalAmount() decimal.Decimal { return o.totalAmount }
func (o *Order) DeliveryFee() decimal.Decimal { return o.deliveryFee }
func (o *Order) DeliveryAddress() kernel.Address { return o.deliveryAddress }
func (o *Order) SpecialInstructions() *string { return o.specialInstructions }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// PendingHistory returns the history entries that have not been persisted yet.
func (o *Order) PendingHistory() []HistoryEntry {
	return append([]HistoryEntry(nil), o.pendingHistory...)
}

// AssignID sets the identity allocated by the store. It can only be called once.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("order already has id %d", o.id))
	}
	o.id = id
	return nil
}

// AssignNumber sets the order number of a not yet persisted order. It may be called
// again with a new candidate after a collision.
func (o *Order) AssignNumber(number string) error {
	if o.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderNumber", errors.New("number of a persisted order is immutable"))
	}
	if number == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = number
	return nil
}

// ChangeStatus moves the order to next and appends a history entry.
// An empty changedBy is recorded as SystemActor.
func (o *Order) ChangeStatus(next Status, notes *string, changedBy string, now time.Time) error {
	actor, err := kernel.OptionalText("changedBy", &changedBy, ChangedByMaxLength)
	if err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	changedBy = ""
	if actor != nil {
		changedBy = *actor
	}
	o.status = newStatus
	o.updatedAt = now
	o.pendingHistory = append(o.pendingHistory, newHistoryEntry(newStatus, notes, changedBy, now))
	return nil
}

// UpdateDeliveryDetails applies the non-nil fields of patch. Every other attribute of the
// order is immutable.
func (o *Order) UpdateDeliveryDetails(patch DeliveryDetailsPatch, now time.Time) error {
	address, err := o.deliveryAddress.WithParts(
		"delivery", patch.DeliveryAddress, patch.DeliveryCity, patch.DeliveryPostalCode)
	if err != nil {
		return err
	}

	instructions := o.specialInstructions
	if patch.SpecialInstructions != nil {
		if instructions, err = kernel.OptionalText("specialInstructions", patch.SpecialInstructions, 0); err != nil {
			return err
		}
	}

	o.deliveryAddress = address
	o.specialInstructions = instructions
	o.updatedAt = now
	return nil
}

func (o *Order) setCustomerID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("customerId")
	}
	o.customerID = id
	return nil
}

func (o *Order) setDeliveryAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryAddress", err)
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setSpecialInstructions(instructions *string) error {
	value, err := kernel.OptionalText("specialInstructions", instructions, 0)
	if err != nil {
		return err
	}
	o.specialInstructions = value
	return nil
}

func (o *Order) setDeliveryFee(fee *decimal.Decimal) error {
	if fee == nil {
		o.deliveryFee = decimal.Zero
		return nil
	}
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("deliveryFee", fmt.Errorf("%s is negative", fee))
	}
	rounded, err := kernel.Money.Check("deliveryFee", *fee)
	if err != nil {
		return err
	}
	o.deliveryFee = rounded
	return nil
}

func (o *Order) setItems(specs []ItemSpec) error {
	if len(specs) == 0 {
		return ErrOrderHasNoItems
	}

	items := make([]Item, 0, len(specs))
	var errList []error
	for i, spec := range specs {
		item, err := NewItem(spec)
		if err != nil {
			errList = append(errList, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	o.items = items
	return nil
}
