package postgres

import (
	"deliveryapp/internal/adapters/out/postgres/customerrepo"
	"deliveryapp/internal/adapters/out/postgres/delivererrepo"
	"deliveryapp/internal/adapters/out/postgres/deliveryrepo"
	"deliveryapp/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Schema names the tables owned by one service.
type Schema string

const (
	OrderSchema     Schema = "order"
	DeliverySchema  Schema = "delivery"
	DelivererSchema Schema = "deliverer"
)

// Models returns the GORM models of the schema in creation order.
func (s Schema) Models() []any {
	switch s {
	case OrderSchema:
		return []any{
			&customerrepo.CustomerDTO{},
			&orderrepo.OrderDTO{},
			&orderrepo.OrderItemDTO{},
			&orderrepo.StatusHistoryDTO{},
		}
	case DeliverySchema:
		return []any{&deliveryrepo.DeliveryDTO{}, &deliveryrepo.StatusChangeDTO{}}
	case DelivererSchema:
		return []any{&delivererrepo.DelivererDTO{}, &delivererrepo.VehicleDTO{}}
	default:
		return nil
	}
}

// Tables returns the table names of the schema, children first.
func (s Schema) Tables() []string {
	switch s {
	case OrderSchema:
		return []string{"order_status_history", "order_items", "orders", "customers"}
	case DeliverySchema:
		return []string{"delivery_status_changes", "deliveries"}
	case DelivererSchema:
		return []string{"deliverer_vehicles", "deliverers"}
	default:
		return nil
	}
}

// Migrate creates or updates the tables of the schema.
func Migrate(db *gorm.DB, schema Schema) error {
	return db.AutoMigrate(schema.Models()...)
}
