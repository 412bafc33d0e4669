package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{1.005, 1.0},  // binary 1.005 is just under, rounds down
		{1.015, 1.01}, // same
		{2.675, 2.67},
		{10.0, 10.0},
		{-1.256, -1.26},
		{0.125, 0.13},
	}
	for _, c := range cases {
		require.Equalf(t, c.want, Round2(c.in), "Round2(%v)", c.in)
	}
}

func TestNormalizeDTO(t *testing.T) {
	dto := struct {
		Name  string
		Price float64
	}{Name: "  Pine 4m  ", Price: 10.017}

	NormalizeDTO(&dto)
	require.Equal(t, "Pine 4m", dto.Name)
	require.Equal(t, 10.02, dto.Price)
}

func TestNormalizePtrDTO(t *testing.T) {
	name := "  Miller  "
	dto := struct {
		Name  *string
		Phone *string
	}{Name: &name}

	NormalizePtrDTO(&dto)
	require.Equal(t, "Miller", *dto.Name)
	require.Nil(t, dto.Phone, "nil pointer stays nil")
}

func TestParseIntDefault(t *testing.T) {
	require.Equal(t, 25, ParseIntDefault("25", 100))
	require.Equal(t, 100, ParseIntDefault("", 100))
	require.Equal(t, 100, ParseIntDefault("-3", 100), "negatives fall back")
	require.Equal(t, 7, ParseIntDefault("abc", 7))
}
