// services/reminder.go
package services

import (
	"log"
	"time"

	"agendaplus-backend/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService sweeps once a day for tomorrow's open appointments and
// pushes a reminder through the notifier.
type ReminderService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewReminderService(db *gorm.DB, notifier *Notifier) *ReminderService {
	return &ReminderService{db: db, notifier: notifier}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("Reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	tomorrow := time.Now().AddDate(0, 0, 1).Format(dateLayout)

	var appointments []models.Appointment
	if err := s.db.
		Where("date = ? AND status IN ?", tomorrow,
			[]string{models.StatusScheduled, models.StatusConfirmed}).
		Find(&appointments).Error; err != nil {
		log.Printf("Failed to fetch tomorrow's appointments: %v", err)
		return
	}

	for _, appointment := range appointments {
		s.notifier.AppointmentReminder(appointment)
	}

	log.Println("Daily reminder processing completed")
}
