package calendar

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/ccuhub/compscout/app/feed"
)

// UIDDomain suffixes every event UID so calendar clients can dedupe
// events across repeated exports.
const UIDDomain = "ccu-competition.com"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run renders the given records as an iCalendar document with one
// all-day VEVENT per record. An empty record set is an error so callers
// never hand out a calendar with nothing in it.
func (g *Generator) Run(records []feed.Competition) (string, error) {
	if len(records) == 0 {
		return "", fmt.Errorf("no records to export")
	}

	var buf bytes.Buffer

	buf.WriteString("BEGIN:VCALENDAR\n")
	buf.WriteString("VERSION:2.0\n")
	buf.WriteString("PRODID:-//CCU Competition Platform//TW\n")
	buf.WriteString("CALSCALE:GREGORIAN\n")

	stamp := time.Now().UTC().Format("20060102T150405") + "Z"
	for _, record := range records {
		g.writeEvent(&buf, record, stamp)
	}

	buf.WriteString("END:VCALENDAR")

	return buf.String(), nil
}

func (g *Generator) writeEvent(buf *bytes.Buffer, record feed.Competition, stamp string) {
	date := eventDate(record.Deadline)

	buf.WriteString("BEGIN:VEVENT\n")
	buf.WriteString(fmt.Sprintf("UID:%s@%s\n", record.ID, UIDDomain))
	buf.WriteString(fmt.Sprintf("DTSTAMP:%s\n", stamp))
	buf.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\n", date))
	buf.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\n", date))
	buf.WriteString(fmt.Sprintf("SUMMARY:[競賽截止] %s\n", escapeText(record.Name)))
	buf.WriteString(fmt.Sprintf("DESCRIPTION:主辦：%s / 獎金：%s / 連結：%s\n",
		escapeText(record.Organizer), escapeText(record.Prize), escapeText(record.OfficialLink)))
	if record.OfficialLink != "" {
		buf.WriteString(fmt.Sprintf("URL:%s\n", record.OfficialLink))
	}
	buf.WriteString("END:VEVENT\n")
}

// eventDate strips separator characters from the stored deadline to
// produce the compact DATE form. Deadlines that were never real dates
// ("未定") pass through unchanged; calendar clients skip them.
func eventDate(deadline string) string {
	var digits strings.Builder
	for _, r := range deadline {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return deadline
	}
	return digits.String()
}

// escapeText escapes the characters iCalendar reserves in text values.
func escapeText(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, ";", `\;`)
	value = strings.ReplaceAll(value, ",", `\,`)
	value = strings.ReplaceAll(value, "\n", `\n`)
	return value
}
