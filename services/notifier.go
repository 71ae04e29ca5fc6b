// services/notifier.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"agendaplus-backend/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// Notifier dispatches booking confirmations and reminders over Twilio.
// It sits outside the transactional core: a send failure never rolls back the
// booking it announces, it is only logged.
type Notifier struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewNotifier(db *gorm.DB) *Notifier {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &Notifier{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// BookingConfirmed announces a freshly created appointment to the client.
// Called in a goroutine after the booking transaction committed.
func (n *Notifier) BookingConfirmed(appointment models.Appointment) {
	var client models.Client
	if err := n.db.First(&client, "id = ?", appointment.ClientID).Error; err != nil {
		log.Printf("Notifier: client %s not found: %v", appointment.ClientID, err)
		return
	}
	if client.Phone == "" {
		return
	}

	message := fmt.Sprintf("Your appointment is booked for %s at %s. See you there!",
		appointment.Date, appointment.Time)
	n.send(appointment.TenantID.String(), appointment, client.Phone, message)
}

// AppointmentReminder nudges the client about a next-day appointment.
func (n *Notifier) AppointmentReminder(appointment models.Appointment) {
	var client models.Client
	if err := n.db.First(&client, "id = ?", appointment.ClientID).Error; err != nil {
		log.Printf("Notifier: client %s not found: %v", appointment.ClientID, err)
		return
	}
	if client.Phone == "" {
		return
	}

	message := fmt.Sprintf("Reminder: you have an appointment tomorrow (%s) at %s.",
		appointment.Date, appointment.Time)
	n.send(appointment.TenantID.String(), appointment, client.Phone, message)
}

func (n *Notifier) send(tenant string, appointment models.Appointment, phone, message string) {
	// WhatsApp for E.164 numbers, plain SMS otherwise
	channel := "sms"
	to := phone
	if strings.HasPrefix(phone, "+") {
		to = "whatsapp:" + phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := n.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send message to %s: %v", phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Message sent to %s, SID: %s", phone, *resp.Sid)
	} else {
		log.Printf("Message sent to %s, but no SID returned", phone)
	}

	reminderLog := models.ReminderLog{
		TenantID:      appointment.TenantID,
		AppointmentID: appointment.ID,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		Channel:       channel,
		SentAt:        time.Now(),
	}
	if err := n.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Tenant %s: failed to log notification: %v", tenant, err)
	}
}
