package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func paramsForQuery(query string) *PaginationParams {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := paramsForQuery("")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)
	assert.Equal(t, "created_at", params.Sort)
	assert.Equal(t, "desc", params.Order)
}

func TestGetPaginationParamsClampsBounds(t *testing.T) {
	params := paramsForQuery("page=-3&page_size=9999")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, MaxPageSize, params.PageSize)
}

func TestGetPaginationParamsRejectsUnknownSortField(t *testing.T) {
	params := paramsForQuery("sort=password_hash&order=sideways")

	assert.Equal(t, "created_at", params.Sort)
	assert.Equal(t, "desc", params.Order)
}

func TestGetPaginationParamsAcceptsWhitelistedSort(t *testing.T) {
	params := paramsForQuery("sort=departure_at&order=asc")

	assert.Equal(t, "departure_at", params.Sort)
	assert.Equal(t, "asc", params.Order)
}

func TestGetSearchFilterQuotesRegexInput(t *testing.T) {
	params := &PaginationParams{Search: "Maputo (centro)"}

	filter := params.GetSearchFilter([]string{"name"})

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 1)
	assert.Equal(t, `Maputo \(centro\)`, or[0]["name"].(bson.M)["$regex"])
}

func TestGetSkip(t *testing.T) {
	params := &PaginationParams{Page: 3, PageSize: 20}
	assert.Equal(t, 40, params.GetSkip())
}

func TestCreatePaginationMeta(t *testing.T) {
	meta := CreatePaginationMeta(&PaginationParams{Page: 2, PageSize: 10}, 35)

	assert.Equal(t, 4, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)
	require.NotNil(t, meta.NextPage)
	assert.Equal(t, 3, *meta.NextPage)
	require.NotNil(t, meta.PreviousPage)
	assert.Equal(t, 1, *meta.PreviousPage)

	last := CreatePaginationMeta(&PaginationParams{Page: 4, PageSize: 10}, 35)
	assert.False(t, last.HasNext)
	assert.Nil(t, last.NextPage)
}
