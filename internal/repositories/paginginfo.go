package repositories

import "github.com/huandu/go-sqlbuilder"

type PagingInfo struct {
	page int
	size int
}

func NewPagingInfo(page int, size int) PagingInfo {
	return PagingInfo{
		page: page,
		size: size,
	}
}

func (i PagingInfo) Page() int {
	return i.page
}

func (i PagingInfo) Size() int {
	return i.size
}

func (i PagingInfo) Apply(s *sqlbuilder.SelectBuilder) {
	if i.page == 0 {
		return
	}

	s.Limit(i.size).Offset(i.offset())
}

func (i PagingInfo) offset() int {
	return (i.page - 1) * i.size
}
