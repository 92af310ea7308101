package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError is a single failed field constraint.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidateStruct checks validate tags on s and returns formatted errors.
func ValidateStruct(s interface{}) []ValidationError {
	err := validate.Struct(s)
	if err != nil {
		var errs validator.ValidationErrors
		if ok := AsValidationErrors(err, &errs); ok {
			return fieldErrors(errs)
		}
	}

	return nil
}

// FailBinding renders a request-binding failure. Constraint violations from
// the binding tags come back with per-field messages; anything else (bad
// JSON, wrong types) gets the fallback message.
func FailBinding(c *gin.Context, err error, fallback string) {
	var errs validator.ValidationErrors
	if AsValidationErrors(err, &errs) && len(errs) > 0 {
		details := fieldErrors(errs)
		c.JSON(http.StatusBadRequest, Result{
			Code: http.StatusBadRequest,
			Msg:  details[0].Message,
			Data: details,
		})
		return
	}

	FailBadRequest(c, fallback)
}

func fieldErrors(errs validator.ValidationErrors) []ValidationError {
	out := make([]ValidationError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: errorMessage(fe),
		})
	}
	return out
}

func AsValidationErrors(err error, target *validator.ValidationErrors) bool {
	errs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = errs
	}
	return ok
}

func errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "gtfield":
		return fe.Field() + " must be after " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
