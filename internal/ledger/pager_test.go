package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeSales(n int) []Sale {
	sales := make([]Sale, n)
	for i := range sales {
		sales[i] = Sale{ID: int64(n - i)}
	}
	return sales
}

func TestPagerDefaults(t *testing.T) {
	p := NewPager(0)
	assert.Equal(t, PageSize, p.PageSize())
	assert.Equal(t, 1, p.Page())
	assert.Equal(t, 1, p.TotalPages())
	assert.Empty(t, p.CurrentSlice())
}

func TestPagerTotalPages(t *testing.T) {
	p := NewPager(0)
	p.SetItems(makeSales(45))
	assert.Equal(t, 3, p.TotalPages())

	p.SetItems(makeSales(40))
	assert.Equal(t, 2, p.TotalPages())

	p.SetItems(makeSales(1))
	assert.Equal(t, 1, p.TotalPages())

	p.SetItems(nil)
	assert.Equal(t, 1, p.TotalPages())
}

func TestPagerSetPageClamps(t *testing.T) {
	p := NewPager(0)
	p.SetItems(makeSales(45))

	p.SetPage(5)
	assert.Equal(t, 3, p.Page())

	p.SetPage(0)
	assert.Equal(t, 1, p.Page())

	p.SetPage(-3)
	assert.Equal(t, 1, p.Page())
}

func TestPagerLastPageIsPartial(t *testing.T) {
	p := NewPager(0)
	p.SetItems(makeSales(45))
	p.SetPage(3)

	slice := p.CurrentSlice()
	assert.Len(t, slice, 5)
	assert.Equal(t, int64(5), slice[0].ID)
	assert.Equal(t, int64(1), slice[4].ID)
}

func TestPagerSetItemsKeepsPage(t *testing.T) {
	p := NewPager(0)
	p.SetItems(makeSales(45))
	p.SetPage(3)

	// Replacing the items does not move the pointer, even past the end.
	p.SetItems(makeSales(10))
	assert.Equal(t, 3, p.Page())
	assert.Empty(t, p.CurrentSlice())

	p.SetPage(3)
	assert.Equal(t, 1, p.Page())
	assert.Len(t, p.CurrentSlice(), 10)
}

func TestPagerCustomPageSize(t *testing.T) {
	p := NewPager(10)
	p.SetItems(makeSales(25))
	assert.Equal(t, 3, p.TotalPages())
	p.SetPage(2)
	assert.Len(t, p.CurrentSlice(), 10)
}
