package main

import (
	"deliveryapp/cmd"
	"deliveryapp/internal/core/ports"
)

func main() {
	cmd.Run(ports.DeliveryServiceName)
}
