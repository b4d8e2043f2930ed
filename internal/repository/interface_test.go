package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPage(t *testing.T) {
	cases := []struct {
		limit, offset, def    int
		wantLimit, wantOffset int
	}{
		{0, 0, 20, 20, 0},
		{-5, -1, 50, 50, 0},
		{10, 30, 20, 10, 30},
		{500, 0, 20, 100, 0},
	}
	for _, c := range cases {
		l, o := ClampPage(c.limit, c.offset, c.def)
		assert.Equal(t, c.wantLimit, l)
		assert.Equal(t, c.wantOffset, o)
	}
}
