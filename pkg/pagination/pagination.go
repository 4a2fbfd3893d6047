package pagination

// DefaultLimit is the page size used when a request does not specify one.
// MaxLimit is the hard ceiling; larger requests are truncated, not rejected.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds normalized pagination parameters.
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// Normalize clamps page and limit into their valid ranges and derives the
// offset. Non-positive values fall back to defaults.
func Normalize(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Meta describes the position of a page within the full result set.
type Meta struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// NewMeta builds pagination metadata for a page of the given total.
func NewMeta(total int, params Params) Meta {
	totalPages := total / params.Limit
	if total%params.Limit > 0 {
		totalPages++
	}

	return Meta{
		Total:       total,
		Page:        params.Page,
		Limit:       params.Limit,
		TotalPages:  totalPages,
		HasNext:     params.Offset+params.Limit < total,
		HasPrevious: params.Offset > 0,
	}
}
