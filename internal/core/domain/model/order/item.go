package order

import (
	"errors"
	"fmt"

	"deliveryapp/internal/core/domain/model/kernel"
	"deliveryapp/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	ProductNameMaxLength = 255
	DimensionsMaxLength  = 100
)

// ItemSpec is the caller-supplied description of an order line.
type ItemSpec struct {
	ProductName        string
	ProductDescription *string
	Quantity           int
	UnitPrice          decimal.Decimal
	Weight             *decimal.Decimal
	Dimensions         *string
}

// Item is an order line. Items are fixed once the order is created.
type Item struct {
	id                 int64
	productName        string
	productDescription *string
	quantity           int
	unitPrice          decimal.Decimal
	totalPrice         decimal.Decimal
	weight             *decimal.Decimal
	dimensions         *string
}

// NewItem validates spec and computes totalPrice = unitPrice * quantity.
func NewItem(spec ItemSpec) (Item, error) {
	name, nameErr := kernel.RequireText("productName", spec.ProductName, ProductNameMaxLength)
	description, descErr := kernel.OptionalText("productDescription", spec.ProductDescription, 0)
	dimensions, dimErr := kernel.OptionalText("dimensions", spec.Dimensions, DimensionsMaxLength)

	var qtyErr, priceErr, weightErr error
	if spec.Quantity < 1 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", spec.Quantity))
	} else {
		qtyErr = kernel.CheckInt32("quantity", spec.Quantity)
	}

	var unitPrice decimal.Decimal
	if spec.UnitPrice.IsNegative() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%s is negative", spec.UnitPrice))
	} else {
		unitPrice, priceErr = kernel.Money.Check("unitPrice", spec.UnitPrice)
	}

	weight := spec.Weight
	if weight != nil {
		if weight.IsNegative() {
			weightErr = errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is negative", spec.Weight))
		} else {
			var rounded decimal.Decimal
			rounded, weightErr = kernel.Measure.Check("weight", *weight)
			weight = &rounded
		}
	}

	if err := errors.Join(nameErr, descErr, dimErr, qtyErr, priceErr, weightErr); err != nil {
		return Item{}, err
	}

	totalPrice, err := kernel.Money.Check("totalPrice", unitPrice.Mul(decimal.NewFromInt(int64(spec.Quantity))))
	if err != nil {
		return Item{}, err
	}

	return Item{
		productName:        name,
		productDescription: description,
		quantity:           spec.Quantity,
		unitPrice:          unitPrice,
		totalPrice:         totalPrice,
		weight:             weight,
		dimensions:         dimensions,
	}, nil
}

// RestoreItem rebuilds a persisted line without recomputing its total.
func RestoreItem(id int64, spec ItemSpec, totalPrice decimal.Decimal) Item {
	return Item{
		id:                 id,
		productName:        spec.ProductName,
		productDescription: spec.ProductDescription,
		quantity:           spec.Quantity,
		unitPrice:          spec.UnitPrice,
		totalPrice:         totalPrice,
		weight:             spec.Weight,
		dimensions:         spec.Dimensions,
	}
}

func (i Item) ID() int64 { return i.id }
func (i Item) ProductName() string { return i.productName }
func (i Item) ProductDescription() *string { return i.productDescription }
func (i Item) Quantity() int { return i.quantity }
func (i Item) UnitPrice() decimal.Decimal { return i.unitPrice }
func (i Item) TotalPrice() decimal.Decimal { return i.totalPrice }
func (i Item) Weight() *decimal.Decimal { return i.weight }
func (i Item) Dimensions() *string { return i.dimensions }
