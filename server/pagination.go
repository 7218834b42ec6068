package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/kasuboski/arrqueue/pkg/manager"
	"github.com/kasuboski/arrqueue/pkg/pagination"
	"github.com/kasuboski/arrqueue/pkg/queue"
)

// ParsePaginationParams extracts and validates pagination params from request
func ParsePaginationParams(r *http.Request) (pagination.Params, error) {
	params := pagination.Params{
		Page:     1,
		PageSize: 0,
	}

	qp := r.URL.Query()

	if pageStr := qp.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid page parameter: must be positive integer")
		}
		params.Page = page
	}

	if pageSizeStr := qp.Get("pageSize"); pageSizeStr != "" {
		pageSize, err := strconv.Atoi(pageSizeStr)
		if err != nil || pageSize < 0 {
			return params, fmt.Errorf("invalid pageSize parameter: must be non-negative integer")
		}
		params.PageSize = pageSize
	}

	return params, nil
}

// parseRowsRequest reads the row filters and paging from the query string
func parseRowsRequest(r *http.Request) (manager.RowsRequest, error) {
	var req manager.RowsRequest

	params, err := ParsePaginationParams(r)
	if err != nil {
		return req, err
	}
	req.Params = params

	qp := r.URL.Query()
	if p := qp.Get("problematic"); p != "" {
		req.Problematic, err = strconv.ParseBool(p)
		if err != nil {
			return req, fmt.Errorf("invalid problematic parameter: must be a boolean")
		}
	}

	if svc := qp.Get("service"); svc != "" {
		req.Service = queue.Service(svc)
		if !req.Service.Valid() {
			return req, fmt.Errorf("invalid service parameter: %q", svc)
		}
	}

	req.InstanceID = qp.Get("instance")
	return req, nil
}
