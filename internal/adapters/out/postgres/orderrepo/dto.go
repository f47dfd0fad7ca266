// Package orderrepo persists order aggregates: the orders row, its items and the
// status history entries.
package orderrepo

import (
	"time"

	"deliveryapp/internal/adapters/out/postgres/customerrepo"
	"deliveryapp/internal/core/domain/model/kernel"
	"deliveryapp/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

const orderNumberIndex = "uq_orders_order_number"

// OrderDTO is the row of the orders table. Deleting the customer deletes its orders.
type OrderDTO struct {
	ID                  int64                     `gorm:"primaryKey;autoIncrement"`
	OrderNumber         string                    `gorm:"size:50;not null;uniqueIndex:uq_orders_order_number"`
	CustomerID          int64                     `gorm:"not null;index"`
	Customer            *customerrepo.CustomerDTO `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Status              string                    `gorm:"size:30;not null;index"`
	TotalAmount         decimal.Decimal           `gorm:"type:numeric(10,2);not null"`
	DeliveryAddress     string                    `gorm:"type:text;not null"`
	DeliveryCity        string                    `gorm:"size:100;not null"`
	DeliveryPostalCode  string                    `gorm:"size:20;not null"`
	SpecialInstructions *string                   `gorm:"type:text"`
	DeliveryFee         decimal.Decimal           `gorm:"type:numeric(10,2);not null"`
	Items               []OrderItemDTO            `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History             []StatusHistoryDTO        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time                 `gorm:"not null;autoCreateTime:false"`
	UpdatedAt           time.Time                 `gorm:"not null;autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line.
type OrderItemDTO struct {
	ID                 int64            `gorm:"primaryKey;autoIncrement"`
	OrderID            int64            `gorm:"not null;index"`
	ProductName        string           `gorm:"size:255;not null"`
	ProductDescription *string          `gorm:"type:text"`
	Quantity           int              `gorm:"not null"`
	UnitPrice          decimal.Decimal  `gorm:"type:numeric(10,2);not null"`
	TotalPrice         decimal.Decimal  `gorm:"type:numeric(10,2);not null"`
	Weight             *decimal.Decimal `gorm:"type:numeric(8,2)"`
	Dimensions         *string          `gorm:"size:100"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StatusHistoryDTO is an append-only audit row of the order status.
type StatusHistoryDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   int64     `gorm:"not null;index"`
	Status    string    `gorm:"size:30;not null"`
	Notes     *string   `gorm:"type:text"`
	ChangedBy string    `gorm:"size:100;not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain maps the order with its items and pending history. Existing items are
// never rewritten, so they are only used on insert.
func fromDomain(o *order.Order) OrderDTO {
	address := o.DeliveryAddress()
	dto := OrderDTO{
		ID:                  o.ID(),
		OrderNumber:         o.OrderNumber(),
		CustomerID:          o.CustomerID(),
		Status:              o.Status().String(),
		TotalAmount:         o.TotalAmount(),
		DeliveryAddress:     address.Street(),
		DeliveryCity:        address.City(),
		DeliveryPostalCode:  address.PostalCode(),
		SpecialInstructions: o.SpecialInstructions(),
		DeliveryFee:         o.DeliveryFee(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
	}

	for _, item := range o.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:                 item.ID(),
			OrderID:            o.ID(),
			ProductName:        item.ProductName(),
			ProductDescription: item.ProductDescription(),
			Quantity:           item.Quantity(),
			UnitPrice:          item.UnitPrice(),
			TotalPrice:         item.TotalPrice(),
			Weight:             item.Weight(),
			Dimensions:         item.Dimensions(),
		})
	}
	dto.History = historyFromDomain(o.ID(), o.PendingHistory())
	return dto
}

func historyFromDomain(orderID int64, entries []order.HistoryEntry) []StatusHistoryDTO {
	dtos := make([]StatusHistoryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, StatusHistoryDTO{
			OrderID:   orderID,
			Status:    entry.Status().String(),
			Notes:     entry.Notes(),
			ChangedBy: entry.ChangedBy(),
			CreatedAt: entry.CreatedAt(),
		})
	}
	return dtos
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewPrefixedAddress("delivery", dto.DeliveryAddress, dto.DeliveryCity, dto.DeliveryPostalCode)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, order.RestoreItem(item.ID, order.ItemSpec{
			ProductName:        item.ProductName,
			ProductDescription: item.ProductDescription,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			Weight:             item.Weight,
			Dimensions:         item.Dimensions,
		}, item.TotalPrice))
	}

	return order.RestoreOrder(
		dto.ID,
		dto.OrderNumber,
		dto.CustomerID,
		status,
		dto.TotalAmount,
		dto.DeliveryFee,
		address,
		dto.SpecialInstructions,
		items,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
