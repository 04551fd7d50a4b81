package handlers

import (
	"Keyo/internal/queries"
	"Keyo/utils"
	"fmt"
	"net/http"
	"strconv"
)

type QueryOps struct {
	PageSize int
	Page     int
	OrderBy  string
	OrderDir string
	Search   string
}

func (q *QueryOps) ToPagedQuery() queries.PagedQuery {
	return queries.PagedQuery{
		PageSize: q.PageSize,
		Page:     q.Page,
	}
}

func (q *QueryOps) ToOrderedQuery() queries.OrderedQuery {
	return queries.OrderedQuery{
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}
}

// ParseQueryOps reads paging, ordering and search parameters. Newest first
// unless the caller asks otherwise.
func ParseQueryOps(r *http.Request) (*QueryOps, error) {
	err := r.ParseForm()
	if err != nil {
		return nil, fmt.Errorf("parsing form: %w", utils.ErrHttpBadRequest)
	}

	pageSize, err := parseIntParam(r, "pageSize", 0)
	if err != nil {
		return nil, err
	}

	page, err := parseIntParam(r, "page", 1)
	if err != nil {
		return nil, err
	}

	orderDir := r.Form.Get("orderDir")
	if orderDir != "asc" && orderDir != "desc" {
		orderDir = "desc"
	}

	return &QueryOps{
		PageSize: max(pageSize, 0),
		Page:     max(page, 1),
		OrderBy:  r.Form.Get("orderBy"),
		OrderDir: orderDir,
		Search:   r.Form.Get("search"),
	}, nil
}

func parseIntParam(r *http.Request, name string, fallback int) (int, error) {
	value := r.Form.Get(name)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, utils.ErrHttpBadRequest)
	}

	return parsed, nil
}

// parseBoolParam returns nil when the parameter is absent.
func parseBoolParam(r *http.Request, name string) (*bool, error) {
	value := r.Form.Get(name)
	if value == "" {
		return nil, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, utils.ErrHttpBadRequest)
	}

	return &parsed, nil
}
