package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldErrors(t *testing.T) {
	v := NewValidator()

	t.Run("valid input", func(t *testing.T) {
		err := v.Validate(&SignInRequest{Email: "ada@example.com", Password: "x"})
		assert.NoError(t, err)
		assert.Nil(t, FieldErrors(err))
	})

	t.Run("messages are keyed by form field", func(t *testing.T) {
		err := v.Validate(&SignInRequest{Email: "", Password: ""})
		assert.Equal(t, map[string]string{
			"email":    "Email is required",
			"password": "Password is required",
		}, FieldErrors(err))
	})

	t.Run("malformed email", func(t *testing.T) {
		err := v.Validate(&SignInRequest{Email: "not-an-email", Password: "x"})
		assert.Equal(t, map[string]string{"email": "Invalid email address"}, FieldErrors(err))
	})
}
