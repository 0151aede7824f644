package views

import "github.com/charmbracelet/bubbles/paginator"

// Paginator tracks a row cursor over a list split into pages. The page
// arithmetic is delegated to the bubbles paginator; the cursor always stays
// on the visible page.
type Paginator struct {
	pages  paginator.Model
	cursor int
	total  int
}

// NewPaginator creates a new paginator with the given page size
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = 10
	}
	pages := paginator.New()
	pages.Type = paginator.Arabic
	pages.PerPage = pageSize
	return &Paginator{pages: pages}
}

// SetTotal sets the total number of rows, clamping the cursor
func (p *Paginator) SetTotal(total int) {
	p.total = total
	p.pages.TotalPages = 1
	p.pages.SetTotalPages(total)
	p.SetCursor(p.cursor)
}

// Cursor returns the absolute row index under the cursor
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor, clamped to the rows
func (p *Paginator) SetCursor(pos int) {
	p.cursor = max(min(pos, p.total-1), 0)
	p.follow()
}

// CursorUp moves the cursor up by one
func (p *Paginator) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.SetCursor(p.cursor - 1)
	return true
}

// CursorDown moves the cursor down by one
func (p *Paginator) CursorDown() bool {
	if p.cursor >= p.total-1 {
		return false
	}
	p.SetCursor(p.cursor + 1)
	return true
}

// VisibleRange returns the start and end indices for the current page
func (p *Paginator) VisibleRange() (start, end int) {
	return p.pages.GetSliceBounds(p.total)
}

// TotalPages returns the total number of pages
func (p *Paginator) TotalPages() int {
	return p.pages.TotalPages
}

// CurrentPage returns the current page number (1-based)
func (p *Paginator) CurrentPage() int {
	return p.pages.Page + 1
}

// NextPage moves to the first row of the next page
func (p *Paginator) NextPage() bool {
	if p.pages.OnLastPage() {
		return false
	}
	p.pages.NextPage()
	p.cursor = p.pages.Page * p.pages.PerPage
	return true
}

// PrevPage moves to the first row of the previous page
func (p *Paginator) PrevPage() bool {
	if p.pages.OnFirstPage() {
		return false
	}
	p.pages.PrevPage()
	p.cursor = p.pages.Page * p.pages.PerPage
	return true
}

// Reset empties the paginator
func (p *Paginator) Reset() {
	p.cursor = 0
	p.SetTotal(0)
}

// SetPageSize changes the page size, keeping the cursor visible
func (p *Paginator) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	p.pages.PerPage = size
	p.SetTotal(p.total)
}

// View renders the page indicator, e.g. "2/5"
func (p *Paginator) View() string {
	return p.pages.View()
}

func (p *Paginator) follow() {
	p.pages.Page = p.cursor / p.pages.PerPage
}
