// controllers/setup.go
package controllers

import (
	"agendaplus-backend/services"

	"gorm.io/gorm"
)

var (
	appointmentService *services.AppointmentService
	inventoryService   *services.InventoryService
	clientService      *services.ClientService
	gateService        *services.GateService
	notifier           *services.Notifier
)

// Setup wires the controller package to the transactional core. Called once
// from main before the router starts serving. The returned notifier is shared
// with the reminder scheduler so the process holds a single Twilio client.
func Setup(db *gorm.DB) *services.Notifier {
	appointmentService = services.NewAppointmentService(db)
	inventoryService = services.NewInventoryService(db)
	clientService = services.NewClientService(db)
	gateService = services.NewGateService(db, appointmentService, inventoryService, clientService)
	notifier = services.NewNotifier(db)
	return notifier
}
