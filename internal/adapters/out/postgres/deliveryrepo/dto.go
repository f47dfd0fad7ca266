// Package deliveryrepo persists deliveries and their status change log.
package deliveryrepo

import (
	"time"

	"deliveryapp/internal/core/domain/model/delivery"
	"deliveryapp/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

const deliveryNumberIndex = "uq_deliveries_delivery_number"

// DeliveryDTO is the row of the deliveries table. order_id references an order of the
// order service and carries no foreign key.
type DeliveryDTO struct {
	ID                    int64             `gorm:"primaryKey;autoIncrement"`
	DeliveryNumber        string            `gorm:"size:50;not null;uniqueIndex:uq_deliveries_delivery_number"`
	OrderID               int64             `gorm:"not null;index"`
	OrderNumber           string            `gorm:"size:50;not null"`
	DelivererID           *int64            `gorm:"index"`
	Status                string            `gorm:"size:30;not null;index"`
	PickupAddress         string            `gorm:"type:text;not null"`
	PickupCity            string            `gorm:"size:100;not null"`
	PickupPostalCode      string            `gorm:"size:20;not null"`
	DeliveryAddress       string            `gorm:"type:text;not null"`
	DeliveryCity          string            `gorm:"size:100;not null"`
	DeliveryPostalCode    string            `gorm:"size:20;not null"`
	EstimatedDistance     *decimal.Decimal  `gorm:"type:numeric(8,2)"`
	EstimatedDuration     *int              `gorm:"type:integer"`
	ActualDistance        *decimal.Decimal  `gorm:"type:numeric(8,2)"`
	ActualDuration        *int              `gorm:"type:integer"`
	Priority              string            `gorm:"size:20;not null"`
	ScheduledPickupTime   *time.Time        `gorm:"type:timestamptz"`
	ActualPickupTime      *time.Time        `gorm:"type:timestamptz"`
	EstimatedDeliveryTime *time.Time        `gorm:"type:timestamptz"`
	ActualDeliveryTime    *time.Time        `gorm:"type:timestamptz"`
	SpecialInstructions   *string           `gorm:"type:text"`
	Notes                 *string           `gorm:"type:text"`
	StatusChanges         []StatusChangeDTO `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time         `gorm:"not null;autoCreateTime:false"`
	UpdatedAt             time.Time         `gorm:"not null;autoUpdateTime:false"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// StatusChangeDTO is one committed transition of a delivery.
type StatusChangeDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	DeliveryID int64     `gorm:"not null;index"`
	FromStatus string    `gorm:"size:30;not null"`
	ToStatus   string    `gorm:"size:30;not null"`
	Notes      *string   `gorm:"type:text"`
	ChangedAt  time.Time `gorm:"not null"`
}

func (StatusChangeDTO) TableName() string {
	return "delivery_status_changes"
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	pickup, dropoff, schedule := d.Pickup(), d.Dropoff(), d.Schedule()
	return DeliveryDTO{
		ID:                    d.ID(),
		DeliveryNumber:        d.DeliveryNumber(),
		OrderID:               d.OrderID(),
		OrderNumber:           d.OrderNumber(),
		DelivererID:           d.DelivererID(),
		Status:                d.Status().String(),
		PickupAddress:         pickup.Street(),
		PickupCity:            pickup.City(),
		PickupPostalCode:      pickup.PostalCode(),
		DeliveryAddress:       dropoff.Street(),
		DeliveryCity:          dropoff.City(),
		DeliveryPostalCode:    dropoff.PostalCode(),
		EstimatedDistance:     schedule.EstimatedDistance,
		EstimatedDuration:     schedule.EstimatedDuration,
		ActualDistance:        schedule.ActualDistance,
		ActualDuration:        schedule.ActualDuration,
		Priority:              d.Priority(),
		ScheduledPickupTime:   schedule.ScheduledPickupTime,
		ActualPickupTime:      schedule.ActualPickupTime,
		EstimatedDeliveryTime: schedule.EstimatedDeliveryTime,
		ActualDeliveryTime:    schedule.ActualDeliveryTime,
		SpecialInstructions:   d.SpecialInstructions(),
		Notes:                 d.Notes(),
		StatusChanges:         changesFromDomain(d.ID(), d.PendingStatusChanges()),
		CreatedAt:             d.CreatedAt(),
		UpdatedAt:             d.UpdatedAt(),
	}
}

func changesFromDomain(deliveryID int64, changes []delivery.StatusChange) []StatusChangeDTO {
	dtos := make([]StatusChangeDTO, 0, len(changes))
	for _, change := range changes {
		dtos = append(dtos, StatusChangeDTO{
			DeliveryID: deliveryID,
			FromStatus: change.From.String(),
			ToStatus:   change.To.String(),
			Notes:      change.Notes,
			ChangedAt:  change.At,
		})
	}
	return dtos
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewPrefixedAddress("pickup", dto.PickupAddress, dto.PickupCity, dto.PickupPostalCode)
	if err != nil {
		return nil, err
	}

	dropoff, err := kernel.NewPrefixedAddress("delivery", dto.DeliveryAddress, dto.DeliveryCity, dto.DeliveryPostalCode)
	if err != nil {
		return nil, err
	}

	priority := dto.Priority
	return delivery.RestoreDelivery(dto.ID, dto.DeliveryNumber, delivery.Spec{
		OrderID:             dto.OrderID,
		OrderNumber:         dto.OrderNumber,
		DelivererID:         dto.DelivererID,
		Pickup:              pickup,
		Dropoff:             dropoff,
		Priority:            &priority,
		SpecialInstructions: dto.SpecialInstructions,
		Notes:               dto.Notes,
		Schedule: delivery.Schedule{
			EstimatedDistance:     dto.EstimatedDistance,
			EstimatedDuration:     dto.EstimatedDuration,
			ActualDistance:        dto.ActualDistance,
			ActualDuration:        dto.ActualDuration,
			ScheduledPickupTime:   dto.ScheduledPickupTime,
			ActualPickupTime:      dto.ActualPickupTime,
			EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
			ActualDeliveryTime:    dto.ActualDeliveryTime,
		},
	}, status, dto.CreatedAt, dto.UpdatedAt)
}
