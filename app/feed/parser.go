package feed

import (
	"fmt"
	"strconv"
	"strings"
)

// Header names expected in the published sheet. Column order is
// irrelevant; the names are the contract.
const (
	headerName         = "name"
	headerOrganizer    = "organizer"
	headerPrize        = "prize"
	headerCategory     = "category"
	headerLocation     = "location"
	headerEndDate      = "end_date"
	headerSummary      = "summary"
	headerRules        = "rules"
	headerRegistration = "registration_method"
	headerOfficialURL  = "official_url"
	headerImageURL     = "image_url"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Run parses the raw CSV payload into normalized competitions. Rows that
// resolve to the fallback name are dropped; everything else receives a
// positional 1-based id over the kept rows.
func (p *Parser) Run(data []byte) ([]Competition, error) {
	lines := splitLines(string(data))
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty feed payload")
	}

	headers := make([]string, 0)
	for _, raw := range splitFields(lines[0]) {
		headers = append(headers, cleanField(raw))
	}

	competitions := make([]Competition, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		row := p.mapRow(headers, splitFields(line))
		competition := normalizeRow(row, strconv.Itoa(len(competitions)+1))
		if competition.Name == FallbackName {
			continue
		}
		competitions = append(competitions, competition)
	}

	return competitions, nil
}

func (p *Parser) mapRow(headers []string, fields []string) map[string]string {
	row := make(map[string]string, len(headers))
	for i, header := range headers {
		if i < len(fields) {
			row[header] = cleanField(fields[i])
		} else {
			row[header] = ""
		}
	}
	return row
}

// normalizeRow applies the fallback rules to one raw row. It is a pure
// function so the defaulting behavior can be tested apart from the
// text splitting.
func normalizeRow(row map[string]string, id string) Competition {
	return Competition{
		ID:                 id,
		Name:               fallback(row[headerName], FallbackName),
		Organizer:          fallback(row[headerOrganizer], FallbackOrganizer),
		Prize:              fallback(row[headerPrize], FallbackPrize),
		Category:           ParseCategory(row[headerCategory]),
		Location:           ParseLocation(row[headerLocation]),
		Deadline:           fallback(row[headerEndDate], FallbackDeadline),
		Summary:            row[headerSummary],
		Rules:              row[headerRules],
		RegistrationMethod: fallback(row[headerRegistration], FallbackRegistration),
		OfficialLink:       row[headerOfficialURL],
		ImageURL:           fallback(row[headerImageURL], DefaultImageURL),
	}
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

// splitLines tolerates both bare and carriage-return line endings.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	// Trim trailing blank lines so a final newline does not produce a row.
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// splitFields splits one CSV row on commas, honoring double-quote
// grouping. Quote characters are preserved; cleanField strips them.
func splitFields(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			inQuotes = !inQuotes
			current.WriteByte(ch)
		case ch == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	fields = append(fields, current.String())

	return fields
}

// cleanField trims whitespace, strips a surrounding quote pair and
// collapses doubled quotes back to literal ones.
func cleanField(raw string) string {
	value := strings.TrimSpace(raw)
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = value[1 : len(value)-1]
		value = strings.ReplaceAll(value, `""`, `"`)
	}
	return value
}
