package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Human-readable entity codes: prefix, sortable second-resolution UTC
// timestamp, short random suffix. Collisions are not checked here; the unique
// index on the code column is the backstop.
const (
	scenarioCodePrefix = "SCN"
	examCodePrefix     = "EXM"
	schemeCodePrefix   = "SCH"
)

func newCode(prefix string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:4]
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().UTC().Format("20060102150405"), suffix)
}

// NewScenarioCode returns a fresh scenario code (SCN-...).
func NewScenarioCode() string { return newCode(scenarioCodePrefix) }

// NewExamCode returns a fresh exam code (EXM-...).
func NewExamCode() string { return newCode(examCodePrefix) }

// NewSchemeCode returns a fresh personalized-scheme code (SCH-...).
func NewSchemeCode() string { return newCode(schemeCodePrefix) }
