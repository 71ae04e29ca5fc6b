// services/slots_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateSlots(t *testing.T) {
	slots, err := AllocateSlots("10:00", []int{30, 20, 15})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30", "10:50"}, slots)
}

func TestAllocateSlotsSingleService(t *testing.T) {
	slots, err := AllocateSlots("14:00", []int{45})
	require.NoError(t, err)
	assert.Equal(t, []string{"14:00"}, slots)
}

func TestAllocateSlotsCrossesHourBoundary(t *testing.T) {
	slots, err := AllocateSlots("09:45", []int{30, 30})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:45", "10:15"}, slots)
}

func TestAllocateSlotsRejectsBadAnchor(t *testing.T) {
	_, err := AllocateSlots("25:99", []int{30})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAllocateSlotsRejectsNonPositiveDuration(t *testing.T) {
	_, err := AllocateSlots("10:00", []int{30, 0})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAllocateSlotsEmpty(t *testing.T) {
	slots, err := AllocateSlots("10:00", nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}
