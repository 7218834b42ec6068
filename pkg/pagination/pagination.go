package pagination

type Params struct {
	Page     int
	PageSize int
}

// CalculateOffsetLimit returns a zero limit when no page size is set, meaning everything.
func (p Params) CalculateOffsetLimit() (offset, limit int) {
	if p.PageSize <= 0 {
		return 0, 0
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	offset = (page - 1) * p.PageSize
	limit = p.PageSize
	return offset, limit
}

func (p Params) BuildMeta(totalItems int) Meta {
	totalPages := 0
	if p.PageSize > 0 {
		totalPages = (totalItems + p.PageSize - 1) / p.PageSize
	} else if totalItems > 0 {
		totalPages = 1
	}
	return Meta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Slice returns the window of items selected by p along with its meta.
// Pages past the end yield an empty, non-nil slice.
func Slice[T any](items []T, p Params) ([]T, Meta) {
	meta := p.BuildMeta(len(items))
	offset, limit := p.CalculateOffsetLimit()
	if limit == 0 {
		return items, meta
	}

	if offset >= len(items) {
		return []T{}, meta
	}

	end := offset + limit
	if end > len(items) {
		end = len(items)
	}

	return items[offset:end], meta
}
