package views

import (
	"fmt"
	"strings"
	"time"
)

func formatTimestamp(ms int64) string {
	if ms == 0 {
		return ""
	}
	t := time.UnixMilli(ms)
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("01/02")
}

// formatTyping renders a typing indicator line for up to three named
// users; beyond that only the count is shown.
func formatTyping(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0] + " is typing"
	case 2:
		return names[0] + " and " + names[1] + " are typing"
	case 3:
		return names[0] + ", " + names[1] + ", and " + names[2] + " are typing"
	default:
		return fmt.Sprintf("%d people are typing", len(names))
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
