package deliverer

import (
	"fmt"
	"strconv"

	"deliveryapp/internal/pkg/errs"
)

type VehicleType int

const (
	UnknownVehicle VehicleType = iota
	Bike
	Scooter
	Motorcycle
	Car
	Van
)

func getVehicleTypeStrings() map[VehicleType]string {
	return map[VehicleType]string{
		UnknownVehicle: "UNKNOWN",
		Bike:           "BIKE",
		Scooter:        "SCOOTER",
		Motorcycle:     "MOTORCYCLE",
		Car:            "CAR",
		Van:            "VAN",
	}
}

func ParseVehicleType(s string) (VehicleType, error) {
	for vt, name := range getVehicleTypeStrings() {
		if vt != UnknownVehicle && name == s {
			return vt, nil
		}
	}
	return UnknownVehicle, errs.NewValueIsInvalidErrorWithCause("vehicleType", fmt.Errorf("%q is not a valid vehicle type", s))
}

func (v VehicleType) Validate() error {
	if v <= UnknownVehicle || v > Van {
		return errs.NewValueIsInvalidErrorWithCause("vehicleType", fmt.Errorf("%d is not a valid vehicle type", v))
	}
	return nil
}

func (v VehicleType) String() string {
	if str, ok := getVehicleTypeStrings()[v]; ok {
		return str
	}
	return "UNKNOWN"
}

// PendingLicensePlatePrefix marks a vehicle registered without its plate.
const PendingLicensePlatePrefix = "PENDING-"

// PendingLicensePlate is the placeholder plate of a vehicle of deliverer id.
func PendingLicensePlate(id int64) string {
	return PendingLicensePlatePrefix + strconv.FormatInt(id, 10)
}

// Vehicle is a vehicle used by a deliverer. The first vehicle (by insertion order)
// is the deliverer's primary vehicle.
type Vehicle struct {
	id           int64
	vehicleType  VehicleType
	make         *string
	model        *string
	year         *int
	licensePlate string
	color        *string
	isActive     bool
}

// NewPlaceholderVehicle registers a vehicle of the given type whose plate is filled in
// once the deliverer has an id.
func NewPlaceholderVehicle(vehicleType VehicleType) (Vehicle, error) {
	if err := vehicleType.Validate(); err != nil {
		return Vehicle{}, err
	}
	return Vehicle{vehicleType: vehicleType, isActive: true}, nil
}

// RestoreVehicle rebuilds a persisted vehicle.
func RestoreVehicle(
	id int64,
	vehicleType VehicleType,
	vehicleMake, vehicleModel *string,
	year *int,
	licensePlate string,
	color *string,
	isActive bool,
) Vehicle {
	return Vehicle{
		id:           id,
		vehicleType:  vehicleType,
		make:         vehicleMake,
		model:        vehicleModel,
		year:         year,
		licensePlate: licensePlate,
		color:        color,
		isActive:     isActive,
	}
}

func (v Vehicle) ID() int64 { return v.id }
func (v Vehicle) Type() VehicleType { return v.vehicleType }
func (v Vehicle) Make() *string { return v.make }
func (v Vehicle) Model() *string { return v.model }
func (v Vehicle) Year() *int { return v.year }
func (v Vehicle) LicensePlate() string { return v.licensePlate }
func (v Vehicle) Color() *string { return v.color }
func (v Vehicle) IsActive() bool { return v.isActive }
