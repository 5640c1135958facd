package converter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nrudnyk/SafariConverterLib/internal/compiler"
	"github.com/nrudnyk/SafariConverterLib/internal/models"
)

// MaxEntries is Safari/WebKit's limit per content blocker
const MaxEntries = 50000

// Converter compiles parsed rules into WebKit blocker entries
type Converter struct {
	advancedBlocking bool
	maxEntries       int
	stats            Stats
}

// Stats tracks conversion statistics
type Stats struct {
	Converted   int
	Skipped     int
	SkipReasons map[string]int
}

// Skip reason constants, one per rejection cause plus the entry cap
const (
	SkipUnsupportedRegex       = "unsupported-regex"
	SkipConflictingDomains     = "conflicting-domains"
	SkipUnsupportedContentType = "unsupported-content-type"
	SkipReplaceRule            = "replace-rule"
	SkipUnsafeSelector         = "unsafe-selector"
	SkipAdvancedDisabled       = "advanced-blocking-disabled"
	SkipEntryLimit             = "entry-limit"
	SkipOther                  = "other"
)

// New creates a converter for one conversion run
func New(cfg models.ConversionConfig) *Converter {
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 || maxEntries > MaxEntries {
		maxEntries = MaxEntries
	}
	return &Converter{
		advancedBlocking: cfg.AdvancedBlocking,
		maxEntries:       maxEntries,
		stats: Stats{
			SkipReasons: make(map[string]int),
		},
	}
}

// skip records a skipped rule with reason
func (c *Converter) skip(reason string) {
	c.stats.Skipped++
	c.stats.SkipReasons[reason]++
}

// Stats returns conversion statistics
func (c *Converter) Stats() Stats {
	return c.stats
}

// Convert compiles rules into blocker entries, skipping rules the target
// format cannot represent and stopping at the entry cap. Rejection of one
// rule never fails the run.
func (c *Converter) Convert(rules []models.Rule) []models.BlockerEntry {
	var entries []models.BlockerEntry

	for i := range rules {
		if len(entries) >= c.maxEntries {
			c.skip(SkipEntryLimit)
			continue
		}

		entry, err := compiler.CreateBlockerEntry(&rules[i], c.advancedBlocking)
		if err != nil {
			reason := skipReason(err)
			c.skip(reason)
			logrus.WithFields(logrus.Fields{
				"rule":   rules[i].Raw,
				"reason": reason,
			}).Debug("rule rejected")
			continue
		}

		c.stats.Converted++
		entries = append(entries, *entry)
	}

	return entries
}

// skipReason maps a compiler rejection to its statistics key
func skipReason(err error) string {
	switch {
	case errors.Is(err, compiler.ErrUnsupportedRegex):
		return SkipUnsupportedRegex
	case errors.Is(err, compiler.ErrConflictingDomains):
		return SkipConflictingDomains
	case errors.Is(err, compiler.ErrUnsupportedContentType):
		return SkipUnsupportedContentType
	case errors.Is(err, compiler.ErrReplaceModifier):
		return SkipReplaceRule
	case errors.Is(err, compiler.ErrUnsafeSelector):
		return SkipUnsafeSelector
	case errors.Is(err, compiler.ErrAdvancedBlockingDisabled):
		return SkipAdvancedDisabled
	}
	return SkipOther
}

// SerializeEntry serializes one entry to its canonical compact form. Field
// order is fixed by the struct definitions, so the same entry value always
// serializes to the same bytes; the textual patching in this package depends
// on that.
func SerializeEntry(entry models.BlockerEntry) (string, error) {
	b, err := json.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("serializing entry: %w", err)
	}
	return string(b), nil
}

// SerializeEntries serializes an entry slice to the compact array form
func SerializeEntries(entries []models.BlockerEntry) (string, error) {
	var sb strings.Builder
	sb.WriteString("[")
	for i, e := range entries {
		if i > 0 {
			sb.WriteString(",")
		}
		s, err := SerializeEntry(e)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	sb.WriteString("]")
	return sb.String(), nil
}

// Deduplicate removes duplicate entries, keyed on the canonical serialization
func Deduplicate(entries []models.BlockerEntry) []models.BlockerEntry {
	seen := make(map[string]bool, len(entries))
	result := make([]models.BlockerEntry, 0, len(entries))

	for _, e := range entries {
		key, err := SerializeEntry(e)
		if err != nil {
			continue
		}
		if !seen[key] {
			seen[key] = true
			result = append(result, e)
		}
	}

	return result
}

// Splitter splits entries into chunks respecting the per-file limit
type Splitter struct {
	maxEntries int
}

// NewSplitter creates a splitter with the given max entries per file
func NewSplitter(maxEntries int) *Splitter {
	if maxEntries <= 0 {
		maxEntries = MaxEntries
	}
	return &Splitter{maxEntries: maxEntries}
}

// Split divides entries into multiple files if needed.
// Returns a map of filename suffix -> entries.
func (s *Splitter) Split(entries []models.BlockerEntry, baseName string) map[string][]models.BlockerEntry {
	result := make(map[string][]models.BlockerEntry)

	if len(entries) <= s.maxEntries {
		result[baseName] = entries
		return result
	}

	numParts := (len(entries) + s.maxEntries - 1) / s.maxEntries

	for i := 0; i < numParts; i++ {
		start := i * s.maxEntries
		end := start + s.maxEntries
		if end > len(entries) {
			end = len(entries)
		}

		filename := fmt.Sprintf("%s-part%d", baseName, i+1)
		result[filename] = entries[start:end]
	}

	return result
}
