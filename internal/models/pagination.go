package models

type Pagination struct {
	PageSize   int `json:"pageSize"`
	Page       int `json:"page"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func NewPagination(page, size, total int) Pagination {
	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}
	return Pagination{
		PageSize:   size,
		Page:       page,
		Total:      total,
		TotalPages: totalPages,
	}
}

type PaginatedCats struct {
	Cats []Cat      `json:"cats"`
	Meta Pagination `json:"meta"`
}

type PaginatedMissions struct {
	Missions []Mission  `json:"missions"`
	Meta     Pagination `json:"meta"`
}

type PaginationQuery struct {
	Page int `form:"page" binding:"omitempty,min=1"`
	Size int `form:"size" binding:"omitempty,min=5,max=50"`
}

func (q PaginationQuery) WithDefaults() PaginationQuery {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Size == 0 {
		q.Size = 10
	}
	return q
}

func (q PaginationQuery) Offset() int {
	return (q.Page - 1) * q.Size
}
