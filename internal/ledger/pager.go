package ledger

// PageSize is the fixed number of sales shown per ledger page.
const PageSize = 20

// Pager slices an ordered, already-filtered sequence of sales into
// fixed-size pages. Replacing the items does not move the page pointer;
// resetting to page 1 after a criteria change is an explicit, separate
// step owned by the caller.
type Pager struct {
	pageSize int
	page     int
	items    []Sale
}

// NewPager returns a Pager positioned on page 1. A non-positive pageSize
// falls back to PageSize.
func NewPager(pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	return &Pager{pageSize: pageSize, page: 1}
}

// SetItems replaces the ordered sequence. The page pointer is untouched.
func (p *Pager) SetItems(items []Sale) {
	p.items = items
}

// SetPage moves the pointer to n, silently clamped to [1, TotalPages].
func (p *Pager) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	if total := p.TotalPages(); n > total {
		n = total
	}
	p.page = n
}

// Page returns the current 1-based page.
func (p *Pager) Page() int { return p.page }

// PageSize returns the configured page size.
func (p *Pager) PageSize() int { return p.pageSize }

// Len returns the number of items behind the pager.
func (p *Pager) Len() int { return len(p.items) }

// TotalPages is ceil(len/pageSize), never less than 1.
func (p *Pager) TotalPages() int {
	total := (len(p.items) + p.pageSize - 1) / p.pageSize
	if total < 1 {
		total = 1
	}
	return total
}

// CurrentSlice returns the items on the current page, clipped to what is
// available. A page pointer left beyond the end by a later SetItems
// yields an empty slice.
func (p *Pager) CurrentSlice() []Sale {
	start := (p.page - 1) * p.pageSize
	if start >= len(p.items) {
		return nil
	}
	end := start + p.pageSize
	if end > len(p.items) {
		end = len(p.items)
	}
	return p.items[start:end]
}
