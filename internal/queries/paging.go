package queries

type PagedQuery struct {
	Page     int
	PageSize int
}

type OrderedQuery struct {
	OrderBy  string
	OrderDir string
}

type PagedResponse[T any] struct {
	Items      []T
	TotalCount int
}

func NewPagedResponse[T any](items []T, totalCount int) PagedResponse[T] {
	return PagedResponse[T]{
		Items:      items,
		TotalCount: totalCount,
	}
}
