package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FilterParams represents the standardized listing parameters.
type FilterParams struct {
	Filters map[string]string `json:"filters"`
	Sort    SortParams        `json:"sort"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
	Search  string            `json:"search"`
}

// SortParams represents sorting parameters.
type SortParams struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// PaginationResponse represents pagination metadata.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// ParseQueryParams extracts pagination, filter, search and sort parameters
// from the request. Filters use the filters[field]=value convention, sorting
// uses sort[field] and sort[order].
func ParseQueryParams(c *gin.Context) FilterParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if strings.HasPrefix(key, "filters[") && strings.HasSuffix(key, "]") {
			fieldName := key[8 : len(key)-1]
			if len(values) > 0 && values[0] != "" {
				filters[fieldName] = values[0]
			}
		}
	}

	sortField := c.Query("sort[field]")
	sortOrder := c.Query("sort[order]")
	if sortField == "" {
		sortField = "created_at"
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	return FilterParams{
		Filters: filters,
		Sort:    SortParams{Field: sortField, Order: sortOrder},
		Page:    page,
		Limit:   limit,
		Search:  c.Query("search"),
	}
}

// ApplyFilters narrows the query to the allowed filter fields.
func ApplyFilters(query *gorm.DB, filters map[string]string, allowedFields map[string]string) *gorm.DB {
	for field, value := range filters {
		if dbField, allowed := allowedFields[field]; allowed && value != "" {
			query = query.Where(fmt.Sprintf("%s = ?", dbField), value)
		}
	}
	return query
}

// ApplySearch adds a case-insensitive substring match over the given fields.
func ApplySearch(query *gorm.DB, search string, searchFields []string) *gorm.DB {
	if search == "" || len(searchFields) == 0 {
		return query
	}

	conditions := make([]string, len(searchFields))
	args := make([]interface{}, len(searchFields))
	for i, field := range searchFields {
		conditions[i] = fmt.Sprintf("LOWER(%s) LIKE ?", field)
		args[i] = "%" + strings.ToLower(search) + "%"
	}

	return query.Where(strings.Join(conditions, " OR "), args...)
}

// ApplySort orders the query by an allowed field, newest first by default.
func ApplySort(query *gorm.DB, sort SortParams, allowedSortFields map[string]string) *gorm.DB {
	if dbField, allowed := allowedSortFields[sort.Field]; allowed {
		return query.Order(fmt.Sprintf("%s %s", dbField, strings.ToUpper(sort.Order)))
	}
	return query.Order("created_at DESC")
}

// ApplyPagination applies offset/limit paging.
func ApplyPagination(query *gorm.DB, page, limit int) *gorm.DB {
	return query.Offset((page - 1) * limit).Limit(limit)
}

// BuildPaginationResponse creates pagination metadata for the response body.
func BuildPaginationResponse(page, limit int, total int64) PaginationResponse {
	totalPages := (total + int64(limit) - 1) / int64(limit)
	return PaginationResponse{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < int(totalPages),
		HasPrev:    page > 1,
	}
}
