package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abonnet/univ-edt-api/internal/middleware"
	"github.com/abonnet/univ-edt-api/internal/models"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
	"github.com/abonnet/univ-edt-api/pkg/response"
)

func userFromContext(c *gin.Context) (models.User, bool) {
	return middleware.CurrentUser(c)
}

// pathID parses the :id (or named) route parameter. On failure it writes
// the error response and reports false.
func pathID(c *gin.Context, name string) (uint32, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid id in path"))
		return 0, false
	}
	return uint32(id), true
}

// bindIDList reads a JSON array of ids from the request body, the shape
// every bulk delete endpoint accepts.
func bindIDList(c *gin.Context) ([]uint32, bool) {
	var ids []uint32
	if err := c.ShouldBindJSON(&ids); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "expected a list of ids"))
		return nil, false
	}
	return ids, true
}
