// Package delivererrepo persists deliverers with their vehicles.
package delivererrepo

import (
	"time"

	"deliveryapp/internal/core/domain/model/deliverer"
	"deliveryapp/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

const (
	employeeNumberIndex = "uq_deliverers_employee_number"
	emailIndex          = "uq_deliverers_email"
	licensePlateIndex   = "uq_deliverer_vehicles_license_plate"
)

// DelivererDTO is the row of the deliverers table. Dates are kept as yyyy-MM-dd text.
type DelivererDTO struct {
	ID                    int64           `gorm:"primaryKey;autoIncrement"`
	EmployeeNumber        string          `gorm:"size:50;not null;uniqueIndex:uq_deliverers_employee_number"`
	FirstName             string          `gorm:"size:100;not null"`
	LastName              string          `gorm:"size:100;not null"`
	Email                 string          `gorm:"size:255;not null;uniqueIndex:uq_deliverers_email"`
	Phone                 string          `gorm:"size:20;not null"`
	DateOfBirth           kernel.Date     `gorm:"type:varchar(10)"`
	NationalID            *string         `gorm:"size:50"`
	Address               string          `gorm:"type:text;not null"`
	City                  string          `gorm:"size:100;not null"`
	PostalCode            string          `gorm:"size:20;not null"`
	EmergencyContactName  *string         `gorm:"size:200"`
	EmergencyContactPhone *string         `gorm:"size:20"`
	Status                string          `gorm:"size:30;not null;index"`
	HireDate              kernel.Date     `gorm:"type:varchar(10);not null"`
	TerminationDate       kernel.Date     `gorm:"type:varchar(10)"`
	Rating                decimal.Decimal `gorm:"type:numeric(3,2);not null"`
	TotalDeliveries       int             `gorm:"not null"`
	SuccessfulDeliveries  int             `gorm:"not null"`
	FailedDeliveries      int             `gorm:"not null"`
	ProfilePhotoURL       *string         `gorm:"column:profile_photo_url;size:500"`
	Vehicles              []VehicleDTO    `gorm:"foreignKey:DelivererID;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt             time.Time       `gorm:"not null;autoUpdateTime:false"`
}

func (DelivererDTO) TableName() string {
	return "deliverers"
}

// VehicleDTO is a vehicle of a deliverer. The lowest id is the primary vehicle.
type VehicleDTO struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	DelivererID  int64     `gorm:"not null;index"`
	VehicleType  string    `gorm:"size:30;not null"`
	Make         *string   `gorm:"size:50"`
	Model        *string   `gorm:"size:50"`
	Year         *int      `gorm:"type:integer"`
	LicensePlate string    `gorm:"size:20;not null;uniqueIndex:uq_deliverer_vehicles_license_plate"`
	Color        *string   `gorm:"size:30"`
	IsActive     bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false"`
}

func (VehicleDTO) TableName() string {
	return "deliverer_vehicles"
}

// fromDomain maps the deliverer row only. Vehicles are mapped by vehiclesFromDomain once
// the deliverer id is known.
func fromDomain(d *deliverer.Deliverer) DelivererDTO {
	address, performance := d.Address(), d.Performance()
	return DelivererDTO{
		ID:                    d.ID(),
		EmployeeNumber:        d.EmployeeNumber(),
		FirstName:             d.FirstName(),
		LastName:              d.LastName(),
		Email:                 d.Email(),
		Phone:                 d.Phone(),
		DateOfBirth:           d.DateOfBirth(),
		NationalID:            d.NationalID(),
		Address:               address.Street(),
		City:                  address.City(),
		PostalCode:            address.PostalCode(),
		EmergencyContactName:  d.EmergencyContactName(),
		EmergencyContactPhone: d.EmergencyContactPhone(),
		Status:                d.Status().String(),
		HireDate:              d.HireDate(),
		TerminationDate:       d.TerminationDate(),
		Rating:                performance.Rating,
		TotalDeliveries:       performance.TotalDeliveries,
		SuccessfulDeliveries:  performance.SuccessfulDeliveries,
		FailedDeliveries:      performance.FailedDeliveries,
		ProfilePhotoURL:       d.ProfilePhotoURL(),
		CreatedAt:             d.CreatedAt(),
		UpdatedAt:             d.UpdatedAt(),
	}
}

// vehiclesFromDomain maps the vehicles of d as rows of deliverer delivererID. Missing
// plates get the pending placeholder.
func vehiclesFromDomain(d *deliverer.Deliverer, delivererID int64) []VehicleDTO {
	vehicles := d.Vehicles()
	dtos := make([]VehicleDTO, 0, len(vehicles))
	for _, v := range vehicles {
		plate := v.LicensePlate()
		if plate == "" {
			plate = deliverer.PendingLicensePlate(delivererID)
		}
		dtos = append(dtos, VehicleDTO{
			ID:           v.ID(),
			DelivererID:  delivererID,
			VehicleType:  v.Type().String(),
			Make:         v.Make(),
			Model:        v.Model(),
			Year:         v.Year(),
			LicensePlate: plate,
			Color:        v.Color(),
			IsActive:     v.IsActive(),
			CreatedAt:    d.CreatedAt(),
		})
	}
	return dtos
}

func toDomain(dto DelivererDTO) (*deliverer.Deliverer, error) {
	status, err := deliverer.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	vehicles := make([]deliverer.Vehicle, 0, len(dto.Vehicles))
	for _, v := range dto.Vehicles {
		vehicleType, typeErr := deliverer.ParseVehicleType(v.VehicleType)
		if typeErr != nil {
			return nil, typeErr
		}
		vehicles = append(vehicles, deliverer.RestoreVehicle(
			v.ID, vehicleType, v.Make, v.Model, v.Year, v.LicensePlate, v.Color, v.IsActive))
	}

	return deliverer.RestoreDeliverer(deliverer.State{
		ID:             dto.ID,
		EmployeeNumber: dto.EmployeeNumber,
		Spec: deliverer.Spec{
			FirstName:             dto.FirstName,
			LastName:              dto.LastName,
			Email:                 dto.Email,
			Phone:                 dto.Phone,
			DateOfBirth:           datePtr(dto.DateOfBirth),
			NationalID:            dto.NationalID,
			Address:               dto.Address,
			City:                  dto.City,
			PostalCode:            dto.PostalCode,
			EmergencyContactName:  dto.EmergencyContactName,
			EmergencyContactPhone: dto.EmergencyContactPhone,
			Status:                &status,
			HireDate:              datePtr(dto.HireDate),
			ProfilePhotoURL:       dto.ProfilePhotoURL,
		},
		TerminationDate: dto.TerminationDate,
		Performance: deliverer.Performance{
			Rating:               dto.Rating,
			TotalDeliveries:      dto.TotalDeliveries,
			SuccessfulDeliveries: dto.SuccessfulDeliveries,
			FailedDeliveries:     dto.FailedDeliveries,
		},
		Vehicles:  vehicles,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}

func datePtr(d kernel.Date) *kernel.Date {
	if d.IsZero() {
		return nil
	}
	return &d
}
