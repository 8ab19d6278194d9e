package catalog

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/ccuhub/compscout/app/feed"
)

const (
	SortDeadlineAsc  = "deadline_asc"
	SortDeadlineDesc = "deadline_desc"
	SortPrizeDesc    = "prize_desc"
	SortPrizeAsc     = "prize_asc"
)

// FilterAll is the sentinel meaning "no restriction" for the category
// and location criteria.
const FilterAll = "all"

// Criteria is the transient view state driving the visible list. It is
// never persisted.
type Criteria struct {
	Search   string
	Category string
	Location string
	Sort     string
}

type Filterer struct {
	fold cases.Caser
}

func NewFilterer() *Filterer {
	return &Filterer{fold: cases.Fold()}
}

// Run computes the visible, ordered subset: scope, then filters, then a
// stable sort. None of the steps mutate their input.
func (f *Filterer) Run(records []feed.Competition, favorites map[string]bool, favoritesOnly bool, criteria Criteria) []feed.Competition {
	scoped := f.applyScope(records, favorites, favoritesOnly)
	filtered := f.applyFilters(scoped, criteria)
	f.applySort(filtered, criteria.Sort)
	return filtered
}

func (f *Filterer) applyScope(records []feed.Competition, favorites map[string]bool, favoritesOnly bool) []feed.Competition {
	if !favoritesOnly {
		return records
	}

	scoped := make([]feed.Competition, 0, len(favorites))
	for _, record := range records {
		if favorites[record.ID] {
			scoped = append(scoped, record)
		}
	}
	return scoped
}

func (f *Filterer) applyFilters(records []feed.Competition, criteria Criteria) []feed.Competition {
	filtered := make([]feed.Competition, 0, len(records))
	for _, record := range records {
		if f.matchesSearch(record, criteria.Search) &&
			matchesChoice(criteria.Category, string(record.Category)) &&
			matchesChoice(criteria.Location, string(record.Location)) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

func (f *Filterer) matchesSearch(record feed.Competition, search string) bool {
	if search == "" {
		return true
	}
	needle := f.fold.String(search)
	return strings.Contains(f.fold.String(record.Name), needle) ||
		strings.Contains(f.fold.String(record.Organizer), needle)
}

func matchesChoice(criterion, value string) bool {
	return criterion == "" || criterion == FilterAll || criterion == value
}

func (f *Filterer) applySort(records []feed.Competition, sortKey string) {
	switch sortKey {
	case SortDeadlineDesc:
		sort.SliceStable(records, func(i, j int) bool {
			return compareDeadlines(records[i].Deadline, records[j].Deadline, false)
		})
	case SortPrizeDesc:
		sort.SliceStable(records, func(i, j int) bool {
			return PrizeValue(records[i].Prize) > PrizeValue(records[j].Prize)
		})
	case SortPrizeAsc:
		sort.SliceStable(records, func(i, j int) bool {
			return PrizeValue(records[i].Prize) < PrizeValue(records[j].Prize)
		})
	default: // deadline_asc
		sort.SliceStable(records, func(i, j int) bool {
			return compareDeadlines(records[i].Deadline, records[j].Deadline, true)
		})
	}
}

// compareDeadlines orders two deadline strings; records with
// unparseable dates always sort last, keeping the order total and
// deterministic.
func compareDeadlines(a, b string, ascending bool) bool {
	timeA, okA := ParseDeadline(a)
	timeB, okB := ParseDeadline(b)

	if okA != okB {
		return okA
	}
	if !okA {
		return false
	}
	if ascending {
		return timeA.Before(timeB)
	}
	return timeA.After(timeB)
}

var deadlineLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"2006-1-2",
	"2006/1/2",
}

func ParseDeadline(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range deadlineLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// PrizeValue extracts the numeric prize amount by removing every
// non-digit rune from the whole string and parsing the remainder.
// A string with no digits yields 0; a digit run too long for int64
// clamps to MaxInt64. Multi-number strings concatenate into one value;
// that mirrors the upstream sheet's loose prize notation on purpose.
func PrizeValue(prize string) int64 {
	var digits strings.Builder
	for _, r := range prize {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	if digits.Len() == 0 {
		return 0
	}

	value, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return math.MaxInt64
	}
	return value
}
