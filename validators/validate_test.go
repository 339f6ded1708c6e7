package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email string   `json:"email" validate:"required,email"`
	Name  string   `json:"name" validate:"required,min=3"`
	Tags  []string `json:"tags" validate:"omitempty,dive,min=2"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	errs := Struct(&sample{Email: "nope", Name: "ab", Tags: []string{"ok", "x"}})

	assert.Equal(t, "Invalid email!", errs["email"])
	assert.Equal(t, "name must be at least 3 characters long!", errs["name"])
	assert.Contains(t, errs, "tags[1]")
}

func TestStructValid(t *testing.T) {
	assert.Nil(t, Struct(&sample{Email: "a@example.com", Name: "Ada"}))
}
