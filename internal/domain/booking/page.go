package booking

import "github.com/lendhub/service-lending/internal/apperrors"

// Page describes one page of a list query. The zero value is not meaningful;
// construct via NewPage or Unpaged.
type Page struct {
	Index   int
	Size    int
	Unpaged bool
}

// Unpaged returns the descriptor that fetches everything in default order.
func Unpaged() Page {
	return Page{Unpaged: true}
}

// NewPage validates and normalizes an item-offset and page size into a page
// descriptor. Both absent means unpaged. The offset counts items, not pages,
// and is translated to a page index by integer division.
func NewPage(from, size *int) (Page, error) {
	if from == nil && size == nil {
		return Unpaged(), nil
	}
	if from == nil || size == nil || *from < 0 || *size < 1 {
		return Page{}, apperrors.NewValidationError("invalid pagination parameters")
	}
	return Page{Index: *from / *size, Size: *size}, nil
}

// Offset returns the row offset of the page's first item.
func (p Page) Offset() int {
	return p.Index * p.Size
}
