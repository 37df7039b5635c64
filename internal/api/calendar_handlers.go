package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/probuilds/sc2coach/internal/logger"
	"github.com/probuilds/sc2coach/internal/models"
)

const icsTimeLayout = "20060102T150405Z"

// handleCalendar serves upcoming coaching sessions as an ICS feed that
// members subscribe to from their calendar app.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	events, err := s.Events.Upcoming(r.Context(), time.Now().UTC(), 50)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("rendering calendar feed with %d events", len(events))
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="coaching.ics"`)
	w.Write([]byte(renderICS(events, time.Now().UTC())))
}

func renderICS(events []models.CoachingEvent, now time.Time) string {
	var sb strings.Builder
	writeICSLine := func(line string) {
		sb.WriteString(line)
		sb.WriteString("\r\n")
	}

	writeICSLine("BEGIN:VCALENDAR")
	writeICSLine("VERSION:2.0")
	writeICSLine("PRODID:-//probuilds//sc2coach//EN")
	writeICSLine("CALSCALE:GREGORIAN")

	for _, ev := range events {
		start := ev.StartsAt.UTC()
		end := start.Add(time.Duration(ev.DurationMinutes) * time.Minute)

		writeICSLine("BEGIN:VEVENT")
		writeICSLine(fmt.Sprintf("UID:event-%d@sc2coach", ev.ID))
		writeICSLine("DTSTAMP:" + now.Format(icsTimeLayout))
		writeICSLine("DTSTART:" + start.Format(icsTimeLayout))
		writeICSLine("DTEND:" + end.Format(icsTimeLayout))
		writeICSLine("SUMMARY:" + escapeICS(ev.Title))
		if ev.Coach != "" {
			writeICSLine("DESCRIPTION:" + escapeICS("Coach: "+ev.Coach))
		}
		writeICSLine("END:VEVENT")
	}

	writeICSLine("END:VCALENDAR")
	return sb.String()
}

// escapeICS escapes the characters RFC 5545 treats as special in text values.
func escapeICS(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
