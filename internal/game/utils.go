package game

import (
	"fmt"
	"time"
)

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// frameClock converts the field's frame-based clock into a duration.
func frameClock(elapsed float64) time.Duration {
	return time.Duration(elapsed * float64(time.Second))
}
