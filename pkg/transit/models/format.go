package models

import "fmt"

// FormatMinutes renders a minute count for display, e.g. "2 min"
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d min", minutes)
}

// FormatDelay renders a delay badge, e.g. "+3 min delay". Zero or
// negative delays render as an empty string.
func FormatDelay(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d min delay", minutes)
}
