package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"realty-inventory/core/inventory"
	"realty-inventory/core/normalize"
	"realty-inventory/core/utils"
)

type criterion int

const (
	critPrice criterion = iota
	critRooms
	critArea
	critProject
	critStatus
	critLimit
)

var criteriaKeys = map[string]criterion{
	"бюджет": critPrice, "цена": critPrice, "стоимость": critPrice,
	"budget": critPrice, "price": critPrice,
	"комнаты": critRooms, "комнат": critRooms, "rooms": critRooms,
	"площадь": critArea, "size": critArea, "area": critArea,
	"проект": critProject, "жк": critProject, "локация": critProject,
	"project": critProject, "location": critProject,
	"статус": critStatus, "status": critStatus,
	"лимит": critLimit, "limit": critLimit,
}

var (
	keyPattern   = regexp.MustCompile(`([\p{L}_]+)\s*[=:]`)
	rangePattern = regexp.MustCompile(`^(.+?)\s*(?:-|–|—|\.\.)\s*(.+)$`)
	fromToRange  = regexp.MustCompile(`^(?:от|from)\s*(.+?)\s+(?:до|to)\s*(.+)$`)
)

var (
	upperPrefixes = []string{"<=", "<", "до", "не более", "max", "up to", "to"}
	lowerPrefixes = []string{">=", ">", "от", "не менее", "min", "from"}
)

// ParseCriteria parses chat style criteria such as
// "бюджет=100000-200000 комнаты=2 проект=like house статус=свободна".
// A single budget value is an upper bound and a single area value a lower bound.
func ParseCriteria(s string) (Query, error) {
	var q Query

	locs := keyPattern.FindAllStringSubmatchIndex(s, -1)
	if len(locs) == 0 {
		if utils.IsBlank(s) {
			return q, nil
		}
		return q, fmt.Errorf("%w: expected key=value pairs, got %q", ErrInvalidQuery, s)
	}
	if prefix := s[:locs[0][0]]; !utils.IsBlank(prefix) {
		return q, fmt.Errorf("%w: unexpected text %q", ErrInvalidQuery, strings.TrimSpace(prefix))
	}

	for i, loc := range locs {
		key := utils.Fold(s[loc[2]:loc[3]])
		end := len(s)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		value := utils.CollapseSpaces(s[loc[1]:end])

		crit, ok := criteriaKeys[key]
		if !ok {
			return q, fmt.Errorf("%w: unknown criterion %q", ErrInvalidQuery, key)
		}
		if value == "" {
			return q, fmt.Errorf("%w: empty value for %q", ErrInvalidQuery, key)
		}
		if err := applyCriterion(&q, crit, value); err != nil {
			return q, fmt.Errorf("%w: %s: %w", ErrInvalidQuery, key, err)
		}
	}

	return q, q.Validate()
}

func applyCriterion(q *Query, crit criterion, value string) error {
	switch crit {
	case critPrice:
		lo, hi, err := ParseRange(value, PriceRange)
		if err != nil {
			return err
		}
		q.MinPrice, q.MaxPrice = lo, hi
	case critArea:
		lo, hi, err := ParseRange(value, AreaRange)
		if err != nil {
			return err
		}
		q.MinArea, q.MaxArea = lo, hi
	case critRooms:
		rooms := normalize.ParseRooms(value)
		if rooms == nil {
			return fmt.Errorf("not a room count: %q", value)
		}
		q.Rooms = rooms
	case critProject:
		project := value
		q.Project = &project
	case critStatus:
		status, err := ParseStatus(value)
		if err != nil {
			return err
		}
		q.Status = &status
	case critLimit:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("not a number: %q", value)
		}
		q.Limit = n
	}
	return nil
}

// ParseStatus accepts enum names and spreadsheet vocabulary ("свободна", "sold").
func ParseStatus(value string) (inventory.Status, error) {
	if st, ok := inventory.ParseStatusName(value); ok {
		return st, nil
	}
	st := normalize.ParseStatus(value)
	if st == inventory.StatusUnknown {
		return "", fmt.Errorf("unknown status %q", value)
	}
	return st, nil
}

// RangeKind selects how ParseRange reads a bound.
type RangeKind int

const (
	// PriceRange reads a single value as an upper bound and accepts
	// "k"/"к"/"тыс" and "m"/"млн" multipliers written right after the number.
	PriceRange RangeKind = iota
	// AreaRange reads a single value as a lower bound. Unit suffixes such as
	// "m", "sqm" or "м²" never scale the number.
	AreaRange
)

// ParseRange reads "a-b", "от a до b", "до X", "<X", "от X", ">X" or a single value.
func ParseRange(value string, kind RangeKind) (lo, hi *float64, err error) {
	v := utils.Fold(value)
	scaled := kind == PriceRange

	if m := fromToRange.FindStringSubmatch(v); m != nil {
		return parseBounds(m[1], m[2], scaled)
	}
	for _, p := range upperPrefixes {
		if rest, ok := strings.CutPrefix(v, p); ok {
			hi, err = parseAmount(rest, scaled)
			return nil, hi, err
		}
	}
	for _, p := range lowerPrefixes {
		if rest, ok := strings.CutPrefix(v, p); ok {
			lo, err = parseAmount(rest, scaled)
			return lo, nil, err
		}
	}

	if m := rangePattern.FindStringSubmatch(v); m != nil {
		return parseBounds(m[1], m[2], scaled)
	}

	n, err := parseAmount(v, scaled)
	if err != nil {
		return nil, nil, err
	}
	if kind == AreaRange {
		return n, nil, nil
	}
	return nil, n, nil
}

func parseBounds(from, to string, scaled bool) (lo, hi *float64, err error) {
	if lo, err = parseAmount(from, scaled); err != nil {
		return nil, nil, err
	}
	if hi, err = parseAmount(to, scaled); err != nil {
		return nil, nil, err
	}
	return lo, hi, nil
}

// multiplierPattern matches a multiplier written right after the first number,
// e.g. "150k", "1,5 млн", "200 тыс." but not "60 sqm".
var multiplierPattern = regexp.MustCompile(`^\D*\d[\d\s.,'’]*?(тыс\p{L}*|млн|k|к|m)(?:[^\p{L}]|$)`)

func parseAmount(s string, scaled bool) (*float64, error) {
	s = strings.TrimSpace(s)
	n := normalize.ParseNumber(s)
	if n == nil {
		return nil, fmt.Errorf("not a number: %q", s)
	}
	if !scaled {
		return n, nil
	}
	m := multiplierPattern.FindStringSubmatch(s)
	if m == nil {
		return n, nil
	}
	factor := 1e6
	if m[1] == "k" || m[1] == "к" || strings.HasPrefix(m[1], "тыс") {
		factor = 1e3
	}
	v := *n * factor
	return &v, nil
}
