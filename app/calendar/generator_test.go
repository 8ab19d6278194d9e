package calendar

import (
	"strings"
	"testing"

	"github.com/ccuhub/compscout/app/feed"
)

func TestGenerateCalendar(t *testing.T) {
	records := []feed.Competition{
		{
			ID:           "3",
			Name:         "全國黑客松",
			Organizer:    "科技部",
			Prize:        "NT$100,000",
			Deadline:     "2025-03-01",
			OfficialLink: "https://example.com/hackathon",
		},
	}

	generator := NewGenerator()
	output, err := generator.Run(records)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.HasPrefix(output, "BEGIN:VCALENDAR\n") {
		t.Error("Expected calendar to start with BEGIN:VCALENDAR")
	}
	if !strings.HasSuffix(output, "END:VCALENDAR") {
		t.Error("Expected calendar to end with END:VCALENDAR")
	}
	if !strings.Contains(output, "PRODID:-//CCU Competition Platform//TW") {
		t.Error("Expected PRODID line")
	}
	if !strings.Contains(output, "UID:3@ccu-competition.com") {
		t.Error("Expected UID with record id and domain")
	}
	if !strings.Contains(output, "DTSTART;VALUE=DATE:20250301") {
		t.Error("Expected all-day DTSTART with separators stripped")
	}
	if !strings.Contains(output, "DTEND;VALUE=DATE:20250301") {
		t.Error("Expected all-day DTEND with separators stripped")
	}
	if !strings.Contains(output, "SUMMARY:[競賽截止] 全國黑客松") {
		t.Error("Expected summary with deadline prefix")
	}
	if !strings.Contains(output, "DESCRIPTION:主辦：科技部 / 獎金：NT$100\\,000 / 連結：https://example.com/hackathon") {
		t.Errorf("Unexpected description, output:\n%s", output)
	}
	if !strings.Contains(output, "URL:https://example.com/hackathon") {
		t.Error("Expected URL line")
	}
}

func TestGenerateCalendarMultipleEvents(t *testing.T) {
	records := []feed.Competition{
		{ID: "1", Name: "賽事一", Deadline: "2025-01-10"},
		{ID: "2", Name: "賽事二", Deadline: "2025/02/20"},
	}

	generator := NewGenerator()
	output, err := generator.Run(records)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if got := strings.Count(output, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("Expected 2 events, got %d", got)
	}
	if !strings.Contains(output, "DTSTART;VALUE=DATE:20250220") {
		t.Error("Expected slash-separated deadline to produce compact date")
	}
}

func TestGenerateCalendarEmpty(t *testing.T) {
	generator := NewGenerator()
	if _, err := generator.Run(nil); err == nil {
		t.Error("Expected error for empty record set")
	}
}

func TestEventDateNoDigits(t *testing.T) {
	if got := eventDate("未定"); got != "未定" {
		t.Errorf("Expected non-date deadline to pass through, got: %s", got)
	}
}
