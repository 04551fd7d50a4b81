package handlers

type PagedResponseDto[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Size       int  `json:"size"`
	Page       int  `json:"page"`
	TotalPages int  `json:"totalPages"`
	TotalItems int  `json:"totalItems"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrevious"`
}

func NewPagedResponseDto[T any](items []T, page int, pageSize int, totalItems int) PagedResponseDto[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}

	return PagedResponseDto[T]{
		Items: items,
		Pagination: Pagination{
			Size:       pageSize,
			Page:       page,
			TotalPages: totalPages,
			TotalItems: totalItems,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}
}
