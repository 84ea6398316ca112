package models

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// ListFilter selects which visitors a query returns. All list, count, and
// export paths compose their predicate from this one structure so search,
// pagination, deleted visibility, and status filtering stay consistent.
//
// The predicate is: Deleted == ShowDeleted, AND (if Search is non-empty) a
// case-insensitive substring match on first name OR last name OR email, AND
// (if Status is set) status equality.
type ListFilter struct {
	Page        int
	PageSize    int
	Search      string
	ShowDeleted bool
	Status      *Status
}

// Normalize applies defaults and clamps out-of-range paging values.
func (f ListFilter) Normalize() ListFilter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	return f
}

// Offset is the number of records to skip for the requested page.
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
