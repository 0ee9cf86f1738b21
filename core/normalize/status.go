package normalize

import (
	"strings"

	"realty-inventory/core/inventory"
	"realty-inventory/core/utils"
)

type statusWords struct {
	status inventory.Status
	words  []string
}

// The first entry with a matching word wins.
var statusVocabulary = []statusWords{
	{inventory.StatusUnknown, []string{"unavailable", "not avail", "недоступ"}},
	{inventory.StatusSold, []string{"продан", "продано", "sold", "გაყიდ"}},
	{inventory.StatusReserved, []string{"брон", "резерв", "reserv", "hold", "book", "დაჯავშ"}},
	{inventory.StatusAvailable, []string{
		"свобод", "в продаже", "продается", "продаётся", "в наличии", "доступ",
		"available", "free", "for sale", "vacant", "open",
		"თავისუფ", "ხელმისაწვდ",
	}},
}

// ParseStatus maps a free-text status cell to a status; unrecognized text is UNKNOWN.
func ParseStatus(s string) inventory.Status {
	t := utils.Fold(s)
	if t == "" {
		return inventory.StatusUnknown
	}
	if st, ok := inventory.ParseStatusName(t); ok {
		return st
	}
	for _, entry := range statusVocabulary {
		for _, w := range entry.words {
			if strings.Contains(t, utils.Fold(w)) {
				return entry.status
			}
		}
	}
	return inventory.StatusUnknown
}
