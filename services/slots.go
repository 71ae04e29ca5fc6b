// services/slots.go
package services

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// AllocateSlots computes the gap-free start times for a batch of services
// booked together: the first starts at the anchor, each following one starts
// when the previous ends. Pure function, no conflict checking — guarding the
// anchor against existing bookings is the caller's job.
func AllocateSlots(anchor string, durationsMinutes []int) ([]string, error) {
	start, err := time.Parse(clockLayout, anchor)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid anchor time %q", ErrValidation, anchor)
	}

	slots := make([]string, 0, len(durationsMinutes))
	cursor := start
	for _, duration := range durationsMinutes {
		if duration <= 0 {
			return nil, fmt.Errorf("%w: service duration must be positive", ErrValidation)
		}
		slots = append(slots, cursor.Format(clockLayout))
		cursor = cursor.Add(time.Duration(duration) * time.Minute)
	}
	return slots, nil
}
