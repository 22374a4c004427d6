package dto

// ListParams defines the common query parameters for paginated list endpoints.
type ListParams struct {
	Limit  int `form:"limit,default=50" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// SearchParams defines query parameters for search endpoints.
type SearchParams struct {
	Term  string `form:"term" binding:"required"`
	Limit int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}
