package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListResponse[T any] struct {
	Data     []T  `json:"data"`
	Total    int  `json:"total"`
	Fallback bool `json:"fallback,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func List[T any](c *gin.Context, data []T) {
	ListWithFallback(c, data, false)
}

// ListWithFallback marks lists served from built-in content instead of
// the upstream source.
func ListWithFallback[T any](c *gin.Context, data []T, fallback bool) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:     data,
		Total:    len(data),
		Fallback: fallback,
	})
}
