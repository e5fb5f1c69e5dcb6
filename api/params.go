package api

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}

	return id, nil
}

// pageParams reads limit and offset query parameters, leaving range
// normalization to the service layer.
func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit"))
	offset, _ = strconv.Atoi(c.Query("offset"))

	return limit, offset
}
