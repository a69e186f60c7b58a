package domain

const (
	// DefaultPageSize is the number of closed auctions returned when the
	// caller does not ask for a specific page size.
	DefaultPageSize uint32 = 200
	// MaxPageSize bounds the size of a single page to keep responses small.
	MaxPageSize uint32 = 500
)

// PageQuery selects a slice of the closed ledger: up to Size records taken
// from positions strictly lower than Before, most recent first.
type PageQuery struct {
	// Position to resume from, null to start from the most recent record.
	Before *uint64
	Size   uint32
}

// NewPageQuery returns a page query with the size defaulted and capped.
func NewPageQuery(before *uint64, size uint32) PageQuery {
	pSize := DefaultPageSize
	if size > 0 {
		pSize = size
	}
	if pSize > MaxPageSize {
		pSize = MaxPageSize
	}

	return PageQuery{
		Before: before,
		Size:   pSize,
	}
}

// Includes returns whether the given ledger position falls inside the page
// window.
func (p PageQuery) Includes(position uint64) bool {
	return p.Before == nil || position < *p.Before
}
