package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the struct tags through the shared validator and
// flattens the failures into one human-readable error.
func ValidateStruct(data interface{}) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var fails []string
	for _, fe := range err.(validator.ValidationErrors) {
		fails = append(fails, fmt.Sprintf("field %q failed on %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(fails, "; "))
}
