package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindError shapes a ShouldBindJSON failure for the admin UI: the
// whole payload is rejected, and the offending fields are listed so
// the form can highlight them. Anything that is not a validation
// failure (malformed JSON and the like) gets no field detail.
func bindError(err error) gin.H {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Namespace())
		}
		return gin.H{"error": "invalid request format", "fields": fields}
	}
	return gin.H{"error": "invalid request format"}
}
