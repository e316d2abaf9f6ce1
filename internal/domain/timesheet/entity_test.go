package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampHours(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-3, 0},
		{-0.01, 0},
		{0, 0},
		{8.25, 8.25},
		{24, 24},
		{24.01, 24},
		{30, 24},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, ClampHours(c.in), "ClampHours(%v)", c.in)
	}
}
