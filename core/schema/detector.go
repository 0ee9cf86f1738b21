package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"realty-inventory/core/utils"

	"go.uber.org/zap"
)

// HeaderScanDepth is the number of leading rows searched for the header row.
const HeaderScanDepth = 10

type alias struct {
	field Field
	text  string
	runes int
}

// Detector matches header cells against the alias tables.
type Detector struct {
	exact    map[string]Field
	contains []alias
	logger   *zap.Logger
}

// NewDetector creates a detector using the built-in alias tables.
func NewDetector(logger *zap.Logger) *Detector {
	return newDetector(defaultAliases, exactOnlyAliases, logger)
}

func newDetector(aliases, exactOnly map[Field][]string, logger *zap.Logger) *Detector {
	d := &Detector{
		exact:  make(map[string]Field),
		logger: logger,
	}
	for _, f := range Fields {
		for _, a := range aliases[f] {
			key := utils.Fold(a)
			if _, taken := d.exact[key]; !taken {
				d.exact[key] = f
			}
			d.contains = append(d.contains, alias{field: f, text: key, runes: utf8.RuneCountInString(key)})
		}
		for _, a := range exactOnly[f] {
			key := utils.Fold(a)
			if _, taken := d.exact[key]; !taken {
				d.exact[key] = f
			}
		}
	}
	return d
}

// Detect maps the header row onto canonical fields.
// The first column matching a field wins; later duplicates are logged and ignored.
func (d *Detector) Detect(header []string) Mapping {
	return d.detect(header, true)
}

func (d *Detector) detect(header []string, warn bool) Mapping {
	m := EmptyMapping()
	for col, cell := range header {
		f, ok := d.Match(cell)
		if !ok {
			continue
		}
		if m.Has(f) {
			if warn {
				d.logger.Warn("Duplicate header column ignored",
					zap.String("field", f.String()),
					zap.Int("kept_column", m[f]),
					zap.Int("ignored_column", col),
					zap.String("header", cell))
			}
			continue
		}
		m[f] = col
	}
	return m
}

// Match returns the canonical field of a single header cell.
// An exact alias match wins; otherwise the longest alias found at the start of a
// word decides, with ties broken by field order. "Bathrooms" therefore does not
// hit "rooms".
func (d *Detector) Match(cell string) (Field, bool) {
	key := utils.Fold(cell)
	if key == "" {
		return 0, false
	}
	if f, ok := d.exact[key]; ok {
		return f, true
	}
	for _, frag := range ignoredFragments {
		if strings.Contains(key, frag) {
			return 0, false
		}
	}

	best, bestLen := Field(0), 0
	for _, a := range d.contains {
		if a.runes > bestLen && containsAtWordStart(key, a.text) {
			best, bestLen = a.field, a.runes
		}
	}
	return best, bestLen > 0
}

// LocateHeader returns the index of the header row among the first HeaderScanDepth
// rows: the row mapping the most fields, the earliest on ties, 0 when nothing maps.
func (d *Detector) LocateHeader(rows [][]string) int {
	best, bestCount := 0, 0
	for i := 0; i < len(rows) && i < HeaderScanDepth; i++ {
		if n := d.detect(rows[i], false).Count(); n > bestCount {
			best, bestCount = i, n
		}
	}
	return best
}

// containsAtWordStart reports whether sub occurs in s without a letter right before it.
func containsAtWordStart(s, sub string) bool {
	for from := 0; from <= len(s)-len(sub); {
		i := strings.Index(s[from:], sub)
		if i < 0 {
			return false
		}
		at := from + i
		prev, _ := utf8.DecodeLastRuneInString(s[:at])
		if at == 0 || !unicode.IsLetter(prev) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[at:])
		from = at + size
	}
	return false
}
