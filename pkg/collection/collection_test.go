package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type line struct {
	id    string
	price int64
	qty   int64
}

var lines = []line{{"beer", 6500, 2}, {"fries", 4500, 1}, {"cola", 2500, 3}}

func TestMapFilter(t *testing.T) {
	ids := Map(lines, func(l line) string { return l.id })
	assert.Equal(t, []string{"beer", "fries", "cola"}, ids)

	multi := Filter(lines, func(l line) bool { return l.qty > 1 })
	assert.Len(t, multi, 2)

	none := Filter(lines, func(l line) bool { return false })
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFirstAndIndexOf(t *testing.T) {
	l, ok := First(lines, func(l line) bool { return l.id == "fries" })
	assert.True(t, ok)
	assert.Equal(t, int64(4500), l.price)

	_, ok = First(lines, func(l line) bool { return l.id == "wine" })
	assert.False(t, ok)
	assert.Equal(t, 2, IndexOf(lines, func(l line) bool { return l.id == "cola" }))
	assert.Equal(t, -1, IndexOf(nil, func(l line) bool { return true }))
}

func TestGroupBy(t *testing.T) {
	groups := GroupBy(lines, func(l line) bool { return l.qty == 1 })
	assert.Len(t, groups[true], 1)
	assert.Equal(t, []line{lines[0], lines[2]}, groups[false])
}

func TestSumInt(t *testing.T) {
	total := SumInt(lines, func(l line) int64 { return l.price * l.qty })
	assert.Equal(t, int64(13000+4500+7500), total)
	assert.Equal(t, int64(0), SumInt([]line{}, func(l line) int64 { return l.price }))
}
