package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crmsales/internal/model"
)

func TestDiscountPercentage(t *testing.T) {
	tests := []struct {
		name    string
		listing float64
		sale    float64
		want    float64
	}{
		{name: "twenty percent off", listing: 100, sale: 80, want: 20},
		{name: "sold at listing", listing: 200, sale: 200, want: 0},
		{name: "sold above listing", listing: 100, sale: 120, want: 0},
		{name: "free", listing: 50, sale: 0, want: 100},
		{name: "fractional", listing: 3, sale: 2, want: 100.0 / 3.0},
		{name: "zero listing", listing: 0, sale: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.DiscountPercentage(tt.listing, tt.sale)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestDiscountPercentageBounds(t *testing.T) {
	// For any 0 <= sale <= listing the result stays in [0, 100].
	cases := [][2]float64{{100, 0}, {100, 1}, {100, 99.99}, {0.01, 0.005}, {1e9, 1}}
	for _, c := range cases {
		got := model.DiscountPercentage(c[0], c[1])
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}
