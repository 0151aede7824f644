package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginator(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	for range 4 {
		p.CursorDown()
	}
	assert.Equal(t, 4, p.Cursor())
	assert.Equal(t, 2, p.CurrentPage())
	assert.Equal(t, "2/3", p.View())
	start, end := p.VisibleRange()
	assert.Equal(t, []int{3, 6}, []int{start, end})

	assert.True(t, p.NextPage())
	start, end = p.VisibleRange()
	assert.Equal(t, []int{6, 7}, []int{start, end})
	assert.False(t, p.NextPage())
	assert.Equal(t, 3, p.TotalPages())

	p.SetPageSize(5)
	assert.Equal(t, 2, p.CurrentPage())

	p.SetTotal(2)
	assert.Equal(t, 1, p.Cursor())
}
