package auth

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// SignInRequest carries the credentials handed to the identity provider.
type SignInRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

func ValidateSignIn(req SignInRequest) error {
	return validate.Struct(req)
}
