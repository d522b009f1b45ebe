package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Limit: 20}, 45)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, int64(45), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func TestGetMeta_SinglePage(t *testing.T) {
	meta := GetMeta(&Params{Page: 1, Limit: 20}, 5)

	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}

func TestGetMeta_ExactMultiple(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Limit: 10}, 20)

	assert.Equal(t, 2, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func TestNewResponse(t *testing.T) {
	data := []string{"a", "b"}
	resp := NewResponse(data, &Params{Page: 1, Limit: 2}, 4)

	assert.Equal(t, data, resp.Data)
	assert.Equal(t, 2, resp.Meta.TotalPages)
	assert.True(t, resp.Meta.HasNext)
}
