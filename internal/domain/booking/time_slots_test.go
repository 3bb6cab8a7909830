package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeSlots_IsEmpty(t *testing.T) {
	assert.True(t, TimeSlots(nil).IsEmpty())
	assert.True(t, TimeSlots{}.IsEmpty())
	assert.True(t, TimeSlots{"2026-09-10": {}}.IsEmpty())
	assert.False(t, TimeSlots{"2026-09-10": {"7:00 PM"}}.IsEmpty())
}

func TestTimeSlots_Dates(t *testing.T) {
	ts := TimeSlots{
		"2026-09-12": {"1:00 PM"},
		"2026-09-10": {"7:00 PM"},
		"2026-09-11": {"6:00 PM"},
	}
	assert.Equal(t, []string{"2026-09-10", "2026-09-11", "2026-09-12"}, ts.Dates())
}
