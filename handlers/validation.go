package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"catering-api/logger"
	"catering-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators makes binding errors report JSON field names and
// adds the "notblank" rule. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			switch name {
			case "-":
				return ""
			case "":
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("notblank", notBlank)
	})
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// bindJSON binds the body into req, answering 400 with an errors map on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &verrs):
		errs := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			errs[fe.Field()] = validationMessage(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
	case errors.As(err, &typeErr) && typeErr.Field != "":
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{
			typeErr.Field: fmt.Sprintf("Field value must be of type %s", typeErr.Type.Kind()),
		}})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"body": "Request body must be a valid JSON object"}})
	}
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "notblank":
		return "This field cannot be empty"
	case "email":
		return "Email is not valid"
	case "datetime":
		return "Incorrect date format, should be YYYY-MM-DD"
	case "uri":
		return "Must be a valid URL or path"
	case "gt":
		return "Must be greater than " + fe.Param()
	case "min":
		if fe.Kind() == reflect.Slice {
			return "Must contain at least " + fe.Param() + " item(s)"
		}
		if fe.Kind() == reflect.String {
			return "Must be at least " + fe.Param() + " characters long"
		}
		return "Must be at least " + fe.Param()
	}
	return fmt.Sprintf("Failed on the '%s' rule", fe.Tag())
}

// paramID parses the :id path parameter
func paramID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id " + raw})
		return 0, false
	}
	return uint(id), true
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

func serverError(c *gin.Context, action string, err error) {
	logger.Default.Error(action, middleware.GetRequestID(c), "request failed", err,
		slog.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
