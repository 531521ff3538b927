package model

// Page is one page of a listing. Pages follows the explorer UI convention of
// count/pageSize + 1.
type Page[T any] struct {
	Pages   int64 `json:"pages"`
	Results []T   `json:"results"`
}

// PageCount returns the number of pages advertised for count records.
func PageCount(count int64, pageSize int) int64 {
	if pageSize <= 0 {
		return 1
	}
	return count/int64(pageSize) + 1
}
