package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/parlor-billing/services"
	"github.com/yeremiapane/parlor-billing/utils"
)

var errInvalidID = errors.New("id must be a positive integer")

// respondServiceError maps a service failure onto the JSON envelope.
func respondServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch services.KindOf(err) {
	case services.KindValidation:
		status = http.StatusBadRequest
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindConflict:
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		utils.ErrorLogger.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	}
	utils.RespondErrorCode(c, status, services.CodeOf(err), err)
}

// respondBindError reports a malformed request body.
func respondBindError(c *gin.Context, err error) {
	utils.RespondErrorCode(c, http.StatusBadRequest, services.ErrInvalidInput.Code, err)
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.RespondErrorCode(c, http.StatusBadRequest, services.ErrInvalidInput.Code, errInvalidID)
		return 0, false
	}
	return uint(id), true
}
