package queries

import (
	"time"

	"deliveryapp/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type CustomerView struct {
	ID         int64     `db:"id"          json:"id"`
	FirstName  string    `db:"first_name"  json:"firstName"`
	LastName   string    `db:"last_name"   json:"lastName"`
	Email      string    `db:"email"       json:"email"`
	Phone      string    `db:"phone"       json:"phone"`
	Address    string    `db:"address"     json:"address"`
	City       string    `db:"city"        json:"city"`
	PostalCode string    `db:"postal_code" json:"postalCode"`
	CreatedAt  time.Time `db:"created_at"  json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at"  json:"updatedAt"`
}

type OrderItemView struct {
	ID                 int64            `db:"id"                  json:"id"`
	OrderID            int64            `db:"order_id"            json:"-"`
	ProductName        string           `db:"product_name"        json:"productName"`
	ProductDescription *string          `db:"product_description" json:"productDescription"`
	Quantity           int              `db:"quantity"            json:"quantity"`
	UnitPrice          decimal.Decimal  `db:"unit_price"          json:"unitPrice"`
	TotalPrice         decimal.Decimal  `db:"total_price"         json:"totalPrice"`
	Weight             *decimal.Decimal `db:"weight"              json:"weight"`
	Dimensions         *string          `db:"dimensions"          json:"dimensions"`
}

// OrderView is an order with its items and, in single-order reads and lists, its customer.
type OrderView struct {
	ID                  int64           `db:"id"                   json:"id"`
	OrderNumber         string          `db:"order_number"         json:"orderNumber"`
	CustomerID          int64           `db:"customer_id"          json:"customerId"`
	Customer            *CustomerView   `db:"-"                    json:"customer,omitempty"`
	Status              string          `db:"status"               json:"status"`
	TotalAmount         decimal.Decimal `db:"total_amount"         json:"totalAmount"`
	DeliveryAddress     string          `db:"delivery_address"     json:"deliveryAddress"`
	DeliveryCity        string          `db:"delivery_city"        json:"deliveryCity"`
	DeliveryPostalCode  string          `db:"delivery_postal_code" json:"deliveryPostalCode"`
	SpecialInstructions *string         `db:"special_instructions" json:"specialInstructions"`
	DeliveryFee         decimal.Decimal `db:"delivery_fee"         json:"deliveryFee"`
	Items               []OrderItemView `db:"-"                    json:"items"`
	CreatedAt           time.Time       `db:"created_at"           json:"createdAt"`
	UpdatedAt           time.Time       `db:"updated_at"           json:"updatedAt"`
}

type OrderHistoryView struct {
	ID        int64     `db:"id"         json:"id"`
	OrderID   int64     `db:"order_id"   json:"orderId"`
	Status    string    `db:"status"     json:"status"`
	Notes     *string   `db:"notes"      json:"notes"`
	ChangedBy string    `db:"changed_by" json:"changedBy"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type DeliveryView struct {
	ID                    int64            `db:"id"                      json:"id"`
	DeliveryNumber        string           `db:"delivery_number"         json:"deliveryNumber"`
	OrderID               int64            `db:"order_id"                json:"orderId"`
	OrderNumber           string           `db:"order_number"            json:"orderNumber"`
	DelivererID           *int64           `db:"deliverer_id"            json:"delivererId"`
	Status                string           `db:"status"                  json:"status"`
	PickupAddress         string           `db:"pickup_address"          json:"pickupAddress"`
	PickupCity            string           `db:"pickup_city"             json:"pickupCity"`
	PickupPostalCode      string           `db:"pickup_postal_code"      json:"pickupPostalCode"`
	DeliveryAddress       string           `db:"delivery_address"        json:"deliveryAddress"`
	DeliveryCity          string           `db:"delivery_city"           json:"deliveryCity"`
	DeliveryPostalCode    string           `db:"delivery_postal_code"    json:"deliveryPostalCode"`
	EstimatedDistance     *decimal.Decimal `db:"estimated_distance"      json:"estimatedDistance"`
	EstimatedDuration     *int             `db:"estimated_duration"      json:"estimatedDuration"`
	ActualDistance        *decimal.Decimal `db:"actual_distance"         json:"actualDistance"`
	ActualDuration        *int             `db:"actual_duration"         json:"actualDuration"`
	Priority              string           `db:"priority"                json:"priority"`
	ScheduledPickupTime   *time.Time       `db:"scheduled_pickup_time"   json:"scheduledPickupTime"`
	ActualPickupTime      *time.Time       `db:"actual_pickup_time"      json:"actualPickupTime"`
	EstimatedDeliveryTime *time.Time       `db:"estimated_delivery_time" json:"estimatedDeliveryTime"`
	ActualDeliveryTime    *time.Time       `db:"actual_delivery_time"    json:"actualDeliveryTime"`
	SpecialInstructions   *string          `db:"special_instructions"    json:"specialInstructions"`
	Notes                 *string          `db:"notes"                   json:"notes"`
	CreatedAt             time.Time        `db:"created_at"              json:"createdAt"`
	UpdatedAt             time.Time        `db:"updated_at"              json:"updatedAt"`
}

// TrackingEvent is one point of a delivery's tracking trail.
type TrackingEvent struct {
	Status     string    `json:"status"`
	Location   *string   `json:"location"`
	RecordedAt time.Time `json:"recordedAt"`
}

// DelivererView is the deliverer summary; VehicleType comes from the first vehicle row.
type DelivererView struct {
	ID                    int64           `db:"id"                      json:"id"`
	EmployeeNumber        string          `db:"employee_number"         json:"employeeNumber"`
	FirstName             string          `db:"first_name"              json:"firstName"`
	LastName              string          `db:"last_name"               json:"lastName"`
	Email                 string          `db:"email"                   json:"email"`
	Phone                 string          `db:"phone"                   json:"phone"`
	DateOfBirth           kernel.Date     `db:"date_of_birth"           json:"dateOfBirth"`
	NationalID            *string         `db:"national_id"             json:"nationalId"`
	Address               string          `db:"address"                 json:"address"`
	City                  string          `db:"city"                    json:"city"`
	PostalCode            string          `db:"postal_code"             json:"postalCode"`
	EmergencyContactName  *string         `db:"emergency_contact_name"  json:"emergencyContactName"`
	EmergencyContactPhone *string         `db:"emergency_contact_phone" json:"emergencyContactPhone"`
	Status                string          `db:"status"                  json:"status"`
	HireDate              kernel.Date     `db:"hire_date"               json:"hireDate"`
	TerminationDate       kernel.Date     `db:"termination_date"        json:"terminationDate"`
	Rating                decimal.Decimal `db:"rating"                  json:"rating"`
	TotalDeliveries       int             `db:"total_deliveries"        json:"totalDeliveries"`
	SuccessfulDeliveries  int             `db:"successful_deliveries"   json:"successfulDeliveries"`
	FailedDeliveries      int             `db:"failed_deliveries"       json:"failedDeliveries"`
	ProfilePhotoURL       *string         `db:"profile_photo_url"       json:"profilePhotoUrl"`
	VehicleType           *string         `db:"vehicle_type"            json:"vehicleType"`
	CreatedAt             time.Time       `db:"created_at"              json:"createdAt"`
	UpdatedAt             time.Time       `db:"updated_at"              json:"updatedAt"`
}

// DelivererLocationView has no coordinates yet; they are always null.
type DelivererLocationView struct {
	DelivererID int64      `json:"delivererId"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

type DelivererPerformanceView struct {
	DelivererID          int64           `db:"id"                    json:"delivererId"`
	TotalDeliveries      int             `db:"total_deliveries"      json:"totalDeliveries"`
	SuccessfulDeliveries int             `db:"successful_deliveries" json:"successfulDeliveries"`
	FailedDeliveries     int             `db:"failed_deliveries"     json:"failedDeliveries"`
	Rating               decimal.Decimal `db:"rating"                json:"rating"`
}
