package domain

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// ID prefixes for non-schedule records
const (
	ItemIDPrefix  = "ITM"
	EntryIDPrefix = "ENT"
)

// fallback prefix when a schedule has no items to derive a task prefix from
const genericTaskPrefix = "GEN"

// taskPrefix derives an uppercase prefix of at most four letters from a task
// name. Non-letter characters are dropped before truncation.
func taskPrefix(task string) string {
	var b strings.Builder
	for _, r := range task {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
			if b.Len() >= 4 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return genericTaskPrefix
	}
	return b.String()
}

// idSuffix returns the shared `<6-digit time>-<3-digit random>` tail.
// Collisions are accepted as negligible at this volume.
func idSuffix() string {
	return fmt.Sprintf("%06d-%03d", time.Now().Unix()%1000000, rand.Intn(1000))
}

// NewScheduleID generates a schedule ID of the form
// SCH-<task prefix>-<6-digit time>-<3-digit random>. The prefix is derived
// from the first task on the schedule.
func NewScheduleID(firstTask string) string {
	return fmt.Sprintf("SCH-%s-%s", taskPrefix(firstTask), idSuffix())
}

// NewItemID generates a schedule item ID
func NewItemID() string {
	return fmt.Sprintf("%s-%s", ItemIDPrefix, idSuffix())
}

// NewEntryID generates a work entry ID
func NewEntryID() string {
	return fmt.Sprintf("%s-%s", EntryIDPrefix, idSuffix())
}
