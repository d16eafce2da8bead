package handler

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"workspacebcn/internal/apierror"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes a 400 response if validation fails — the caller
// should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var fields []string
		for _, fe := range err.(validator.ValidationErrors) {
			fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
		}
		c.JSON(http.StatusBadRequest, &apierror.APIError{
			Mensaje: "Datos de entrada no válidos",
			Error:   strings.Join(fields, ", "),
		})
		return false
	}
	return true
}

// respondError maps service errors to HTTP: status-carrying business errors
// keep their code, anything else is a 500 with the underlying message.
func respondError(c *gin.Context, err error) {
	if ae := apierror.AsError(err); ae != nil {
		c.JSON(ae.Status, apierror.New(ae.Mensaje))
		return
	}
	c.JSON(http.StatusInternalServerError, apierror.Wrap("Error interno del servidor", err))
}
