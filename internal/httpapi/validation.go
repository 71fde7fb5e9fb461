package httpapi

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mbrandeis/taskloom/internal/domain"
)

// Custom binding tags backed by the domain enums, so the accepted sets live in
// one place.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return domain.ValidRoles[fl.Field().String()]
	})
	_ = v.RegisterValidation("subtaskstatus", func(fl validator.FieldLevel) bool {
		return domain.ValidSubtaskStatuses[fl.Field().String()]
	})
}
