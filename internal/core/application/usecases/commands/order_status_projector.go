package commands

import (
	"context"
	"fmt"
	"log/slog"

	"deliveryapp/internal/core/domain/model/delivery"
	"deliveryapp/internal/core/domain/services"
	"deliveryapp/internal/core/ports"
)

// orderStatusProjector sends the order status that follows each committed delivery status
// change. Failures do not undo anything; they are logged and returned as warnings.
type orderStatusProjector struct {
	orders ports.OrderClient
	logger *slog.Logger
}

func (p orderStatusProjector) project(ctx context.Context, d *delivery.Delivery, changes []delivery.StatusChange) []string {
	warnings := []string{}
	for _, change := range changes {
		target, ok := services.OrderStatusFor(change.To)
		if !ok {
			continue
		}

		notes := change.Notes
		if notes == nil {
			text := fmt.Sprintf("Delivery %s is %s", d.DeliveryNumber(), change.To)
			notes = &text
		}

		err := p.orders.UpdateOrderStatus(ctx, d.OrderID(), ports.OrderStatusUpdate{
			Status:    target,
			Notes:     notes,
			ChangedBy: services.ProjectionActor,
		})
		if err != nil {
			p.logger.WarnContext(ctx, "order status projection failed",
				"delivery_id", d.ID(), "order_id", d.OrderID(), "status", target.String(), "error", err)
			warnings = append(warnings,
				fmt.Sprintf("PATCH /api/orders/%d/status to %s failed: %v", d.OrderID(), target, err))
			continue
		}

		p.logger.InfoContext(ctx, "order status projected",
			"delivery_id", d.ID(), "order_id", d.OrderID(), "status", target.String())
	}
	return warnings
}
