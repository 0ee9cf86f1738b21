package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"realty-inventory/core/utils"
)

var (
	numberToken = regexp.MustCompile(`\d[\d\s.,'’]*`)
	firstInt    = regexp.MustCompile(`([-−])?(\d+)`)
)

// currencyTokens are removed before a number is read; longer tokens come first.
var currencyTokens = []string{
	"лари", "gel", "usd", "eur", "rub", "руб.", "руб", "долл.", "$", "€", "₾", "₽",
}

// ParseNumber reads a non-negative number from a cell such as "150 000 GEL",
// "$120,000", "65 м²" or "54,3". It returns nil when the cell does not start with
// a number once currency markers are removed.
func ParseNumber(s string) *float64 {
	t := utils.Fold(s)
	for _, c := range currencyTokens {
		t = strings.ReplaceAll(t, c, "")
	}
	t = strings.TrimSpace(t)
	if t == "" || t[0] < '0' || t[0] > '9' {
		return nil
	}

	tok := numberToken.FindString(t)
	tok = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\'', '’':
			return -1
		}
		return r
	}, tok)
	tok = strings.TrimRight(tok, ".,")

	v, err := strconv.ParseFloat(normalizeSeparators(tok), 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

// normalizeSeparators rewrites digit groups to Go float syntax.
// With both "." and "," present the last one is the decimal mark. A separator that
// repeats groups thousands. A single separator followed by exactly three digits groups
// thousands unless the integer part is "0"; otherwise it is the decimal mark.
func normalizeSeparators(tok string) string {
	dots, commas := strings.Count(tok, "."), strings.Count(tok, ",")

	switch {
	case dots > 0 && commas > 0:
		if strings.LastIndex(tok, ".") > strings.LastIndex(tok, ",") {
			return strings.ReplaceAll(tok, ",", "")
		}
		return strings.ReplaceAll(strings.ReplaceAll(tok, ".", ""), ",", ".")
	case dots+commas == 0:
		return tok
	}

	sep := "."
	if commas > 0 {
		sep = ","
	}
	if dots+commas > 1 {
		return strings.ReplaceAll(tok, sep, "")
	}

	intPart, frac, _ := strings.Cut(tok, sep)
	if len(frac) == 3 && intPart != "0" {
		return intPart + frac
	}
	return intPart + "." + frac
}

// ParseInt reads the first integer of a cell, e.g. 5 from "5/9" or "5 этаж".
// A minus sign glued to that integer makes the cell unreadable rather than positive.
func ParseInt(s string) *int {
	m := firstInt.FindStringSubmatch(s)
	if m == nil || m[1] != "" {
		return nil
	}
	v, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}
	return &v
}

// ParseRooms reads a room count; studios count as zero rooms.
func ParseRooms(s string) *int {
	t := utils.Fold(s)
	if strings.Contains(t, "студ") || strings.Contains(t, "studio") {
		zero := 0
		return &zero
	}
	return ParseInt(t)
}
