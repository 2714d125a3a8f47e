package response

// PaginatedResponse wraps a page of results with the pagination meta
// every list endpoint shares.
type PaginatedResponse[T any] struct {
	Pagination PaginationMeta `json:"pagination"`
	Result     []T            `json:"result"`
}

type PaginationMeta struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

func NewPaginatedResponse[T any](result []T, page, perPage int, total int64) *PaginatedResponse[T] {
	totalPages := 0
	if perPage > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}

	if result == nil {
		result = []T{}
	}

	return &PaginatedResponse[T]{
		Pagination: PaginationMeta{
			TotalItems:  total,
			TotalPages:  totalPages,
			CurrentPage: page,
			PageSize:    perPage,
		},
		Result: result,
	}
}
