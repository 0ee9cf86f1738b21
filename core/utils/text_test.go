package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Cyrillic upper", "ПЛОЩАДЬ", "площадь"},
		{"Whitespace runs", "  Площадь,  м² ", "площадь, м²"},
		{"Latin accents", "Précio Área", "precio area"},
		{"Short i", "Комнатный", "комнатныи"},
		{"Yo", "Счёт", "счет"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "150 000 GEL", CollapseSpaces("150 000  GEL"))
	assert.Equal(t, "", CollapseSpaces(" \t\n"))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("  \t"))
	assert.False(t, IsBlank(" x "))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("ЖК Like House", "like"))
	assert.True(t, ContainsFold("Like House", ""))
	assert.False(t, ContainsFold("Axis Towers", "like"))
}
