package pagination

// Meta is the pagination envelope returned by list endpoints.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Normalize clamps page and limit to sane values. defaultLimit is used when
// limit is missing or non-positive; maxLimit caps oversized requests.
func Normalize(page, limit, defaultLimit, maxLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// NewMeta builds the envelope for a page of results.
func NewMeta(page, limit int, total int64) Meta {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset converts page/limit into the SQL offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}
