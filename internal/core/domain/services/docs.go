// Package services holds domain logic that spans aggregates or services:
//   - identifier numbering for orders, deliveries and deliverers
//   - the projection of a delivery status onto the order status that should follow it
package services
