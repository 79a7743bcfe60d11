package dto

import (
	"net/http"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"strconv"
)

const (
	fieldPagination = "pagination"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams is the page based window the repositories understand. A zero limit means unbounded.
type QueryParams struct {
	Page    int
	Limit   int
	SortBy  string
	SortDir string
}

// Offset is the number of rows preceding the page.
func (q QueryParams) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

// Pagination is an offset window as clients send it (from/size).
type Pagination struct {
	Offset int `json:"from"`
	Limit  int `json:"size"`
}

// PaginationFromRequest reads from/size query parameters. Both must be present
// to paginate, otherwise nil is returned and the caller gets every match.
func PaginationFromRequest(r *http.Request) (*Pagination, error) {
	queryParams := r.URL.Query()

	from := queryParams.Get(constant.RequestParamFrom)
	size := queryParams.Get(constant.RequestParamSize)

	if from == "" || size == "" {
		return nil, nil //nolint:nilnil
	}

	offset, err := strconv.Atoi(from)
	if err != nil {
		return nil, failure.FieldValidation(fieldPagination, "from must be an integer") //nolint:wrapcheck
	}

	limit, err := strconv.Atoi(size)
	if err != nil {
		return nil, failure.FieldValidation(fieldPagination, "size must be an integer") //nolint:wrapcheck
	}

	return &Pagination{Offset: offset, Limit: limit}, nil
}

func (p *Pagination) Validate() error {
	if p == nil {
		return nil
	}

	if p.Offset < 0 || p.Limit <= 0 {
		return failure.FieldValidation(fieldPagination, "incorrect from or size") //nolint:wrapcheck
	}

	return nil
}

// ToQueryParams converts the window into page based params, page = offset/limit.
// A nil window yields params without a limit.
func (p *Pagination) ToQueryParams(sortBy, sortDir string) QueryParams {
	params := QueryParams{
		SortBy:  sortBy,
		SortDir: sortDir,
	}

	if p == nil {
		return params
	}

	params.Page = p.Offset/p.Limit + 1
	params.Limit = p.Limit

	return params
}
