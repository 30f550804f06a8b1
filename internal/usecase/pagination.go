package usecase

import "math"

const maxPageSize = 100

// maxPage keeps offsets within a Postgres int4 on every platform.
const maxPage = math.MaxInt32 / maxPageSize

// pageBounds turns 1-based page numbers into limit/offset.
func pageBounds(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return pageSize, (page - 1) * pageSize
}
