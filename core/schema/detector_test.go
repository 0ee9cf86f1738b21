package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDetector_Detect(t *testing.T) {
	d := NewDetector(zap.NewNop())

	tests := []struct {
		name   string
		header []string
		want   map[Field]int
	}{
		{
			name:   "RussianHeader",
			header: []string{"Проект", "Комнаты", "Площадь", "Цена", "Статус"},
			want:   map[Field]int{FieldProject: 0, FieldRooms: 1, FieldArea: 2, FieldPrice: 3, FieldStatus: 4, FieldFloor: Unmapped},
		},
		{
			name:   "EnglishHeader",
			header: []string{"Floor", "Bedrooms", "Total area", "Price", "Availability"},
			want:   map[Field]int{FieldProject: Unmapped, FieldRooms: 1, FieldArea: 2, FieldPrice: 3, FieldStatus: 4, FieldFloor: 0},
		},
		{
			name:   "UnitSuffixesAndCase",
			header: []string{"№", "ПЛОЩАДЬ, м²", "Цена,  GEL", "кол-во комнат", "ЖК"},
			want:   map[Field]int{FieldProject: 4, FieldRooms: 3, FieldArea: 1, FieldPrice: 2, FieldStatus: Unmapped, FieldFloor: Unmapped},
		},
		{
			name:   "BareUnits",
			header: []string{"sqm", "USD"},
			want:   map[Field]int{FieldArea: 0, FieldPrice: 1},
		},
		{
			name:   "PricePerMeterIgnored",
			header: []string{"Цена за м²", "Стоимость", "м2"},
			want:   map[Field]int{FieldPrice: 1, FieldArea: 2},
		},
		{
			name:   "ExactOnlyAlias",
			header: []string{"Тип", "Тип отделки"},
			want:   map[Field]int{FieldRooms: 0},
		},
		{
			name:   "WordStartOnly",
			header: []string{"Bathrooms", "Real estate", "Bedrooms", "State"},
			want:   map[Field]int{FieldRooms: 2, FieldStatus: 3, FieldProject: Unmapped},
		},
		{
			name:   "NoMatches",
			header: []string{"", "Примечание", "Notes"},
			want:   map[Field]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := d.Detect(tt.header)
			for _, f := range Fields {
				want, ok := tt.want[f]
				if !ok {
					want = Unmapped
				}
				assert.Equal(t, want, m.Column(f), "field %s", f)
			}
		})
	}
}

func TestDetector_FirstDuplicateWins(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	d := NewDetector(zap.New(core))

	m := d.Detect([]string{"Цена", "Комнаты", "Price"})
	assert.Equal(t, 0, m.Column(FieldPrice))
	assert.Equal(t, 1, logs.FilterMessage("Duplicate header column ignored").Len())
}

func TestDetector_Deterministic(t *testing.T) {
	d := NewDetector(zap.NewNop())
	header := []string{"Статус продажи", "Площадь общая", "Цена, $", "Этаж/этажность", "Комнатность"}

	first := d.Detect(header)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, NewDetector(zap.NewNop()).Detect(header))
	}
	assert.Equal(t, 5, first.Count())
}

func TestDetector_Match(t *testing.T) {
	d := NewDetector(zap.NewNop())

	f, ok := d.Match("  Статус  ")
	assert.True(t, ok)
	assert.Equal(t, FieldStatus, f)

	// "общая площадь" is longer than "площадь" but both are area aliases.
	f, ok = d.Match("Общая площадь (м²)")
	assert.True(t, ok)
	assert.Equal(t, FieldArea, f)

	_, ok = d.Match("Комментарий")
	assert.False(t, ok)
}

func TestDetector_LocateHeader(t *testing.T) {
	d := NewDetector(zap.NewNop())

	rows := [][]string{
		{"Прайс-лист ЖК Like House"},
		{"Актуально на 01.03"},
		{},
		{"№", "Комнат", "Площадь", "Цена", "Статус"},
		{"1", "2", "54", "120000", "свободна"},
	}
	assert.Equal(t, 3, d.LocateHeader(rows))

	assert.Equal(t, 0, d.LocateHeader([][]string{{"a"}, {"b"}}))
	assert.Equal(t, 0, d.LocateHeader(nil))

	deep := make([][]string, 12)
	deep[11] = []string{"Цена", "Статус"}
	assert.Equal(t, 0, d.LocateHeader(deep))
}

func TestMapping_Columns(t *testing.T) {
	m := EmptyMapping()
	m[FieldPrice] = 3
	assert.Equal(t, map[string]int{"price": 3}, m.Columns())
	assert.Equal(t, 1, m.Count())
}
