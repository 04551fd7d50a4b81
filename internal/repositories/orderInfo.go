package repositories

import "github.com/huandu/go-sqlbuilder"

type OrderInfo struct {
	orderBy  string
	orderDir string
}

func NewOrderInfo(orderBy string, orderDir string) OrderInfo {
	return OrderInfo{
		orderBy:  orderBy,
		orderDir: orderDir,
	}
}

func (i OrderInfo) OrderBy() string {
	return i.orderBy
}

func (i OrderInfo) OrderDir() string {
	return i.orderDir
}

// Apply orders by the column; a missing or unknown direction means descending.
func (i OrderInfo) Apply(s *sqlbuilder.SelectBuilder) {
	if i.orderBy == "" {
		return
	}

	if i.orderDir == "asc" {
		s.OrderByAsc(i.orderBy)
	} else {
		s.OrderByDesc(i.orderBy)
	}
}
