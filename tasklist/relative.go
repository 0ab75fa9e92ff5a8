package tasklist

import (
	"fmt"
	"time"
)

// RelativeTime describes t as seen from now in the style of an activity feed.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	hours := int(d.Hours())
	days := hours / 24

	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 14:
		return "1 week ago"
	case days < 28:
		return fmt.Sprintf("%d weeks ago", days/7)
	default:
		return t.Format("Jan 2, 2006")
	}
}
