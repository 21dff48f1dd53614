package handlers

import (
	"net/http"

	"investment-service/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs custom binding validators on gin's validator
// engine. Call once at startup.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return common.IsValidPhoneNumber(fl.Field().String())
		})
	}
}

func respondOK(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(data, message))
}

func respondError(c *gin.Context, err error) {
	resp := common.NewErrorResponseFromError(err)
	c.JSON(resp.Status, resp)
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
}
