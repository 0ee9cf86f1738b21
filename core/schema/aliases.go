package schema

// Aliases are compared after folding (lower case, accents and extra spaces removed),
// so "Площадь, м²" and "ПЛОЩАДЬ" both hit "площадь".
var defaultAliases = map[Field][]string{
	FieldProject: {
		"проект", "жк", "жилой комплекс", "комплекс", "объект", "локация",
		"project", "complex", "development", "building", "location",
	},
	FieldRooms: {
		"комнаты", "комнат", "кол-во комнат", "количество комнат", "спальни", "спальн",
		"rooms", "room", "bedrooms", "bedroom", "beds",
	},
	FieldArea: {
		"площадь", "общая площадь", "кв.м", "кв. м", "кв м", "м²", "м2",
		"area", "total area", "size", "sqm", "sq.m", "m²", "m2",
	},
	FieldPrice: {
		"цена", "стоимость", "сумма", "бюджет",
		"price", "total price", "cost", "budget", "gel", "usd",
	},
	FieldStatus: {
		"статус", "состояние", "наличие", "готовность",
		"status", "availability", "ready",
	},
	FieldFloor: {
		"этаж", "floor", "level",
	},
}

// Aliases that are too generic for substring matching.
var exactOnlyAliases = map[Field][]string{
	FieldRooms:  {"тип", "type", "к"},
	FieldStatus: {"state"},
}

// Headers describing a derived value rather than the field itself, e.g. "Цена за м²".
var ignoredFragments = []string{
	"за м", "за кв", "per m", "per sq", "/м", "/m", "цена м",
}
