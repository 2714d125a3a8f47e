package utils

// Pagination arithmetic shared by every list endpoint.

// CalculateTotalPages returns ceil(total/perPage); zero when either
// side is empty.
func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// CalculateOffset returns the number of records to skip for a
// 1-indexed page.
func CalculateOffset(page, perPage int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * perPage
}
