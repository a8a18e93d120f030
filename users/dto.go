package users

// Data Transfer Objects for the registration endpoint, plus the validation
// ladder applied to incoming payloads. Validation runs entirely before any
// store call and reports the first failing rule.

import (
	"strings"

	"github.com/user/minblog-go/apperror"
)

// RegisterRequest represents the raw registration payload.
//
// UserName and Password are decoded as `any` on purpose: the endpoint must
// distinguish a missing field from a field of the wrong JSON type and answer
// 422 in both cases, which a typed field would collapse into a body-decode
// error (400). FirstName and LastName are optional and passed through
// unchanged.
type RegisterRequest struct {
	UserName  any     `json:"userName" swaggertype:"string" example:"johndoe"`
	Password  any     `json:"password" swaggertype:"string" example:"strongpassword123"`
	FirstName *string `json:"firstName" example:"John"`
	LastName  *string `json:"lastName" example:"Doe"`
}

// NewUser carries a validated registration through to the store.
type NewUser struct {
	Username  string
	Password  string // plaintext at this point; hashed before persistence
	FirstName *string
	LastName  *string
}

// Validate applies the registration rules in their published order, first
// failure wins: each credential field must be present, must be a JSON string,
// and must be non-empty after trimming. The returned error is always an
// apperror.ValidationError (HTTP 422) naming the offending field.
func (r *RegisterRequest) Validate() (*NewUser, error) {
	username, err := requireStringField(r.UserName, "userName")
	if err != nil {
		return nil, err
	}
	password, err := requireStringField(r.Password, "password")
	if err != nil {
		return nil, err
	}

	return &NewUser{
		Username:  username,
		Password:  password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}, nil
}

// requireStringField checks presence, type, and trimmed non-emptiness of a
// credential field, in that order.
func requireStringField(value any, field string) (string, error) {
	if value == nil {
		return "", apperror.NewValidationError(field+" is required", nil)
	}
	s, ok := value.(string)
	if !ok {
		return "", apperror.NewValidationError(field+" must be a string", nil)
	}
	if strings.TrimSpace(s) == "" {
		return "", apperror.NewValidationError(field+" must not be empty", nil)
	}
	return s, nil
}

// UserResponse is the public representation of a user. It never includes the
// password hash, and absent name fields stay absent rather than null.
type UserResponse struct {
	UserName  string  `json:"userName" example:"johndoe"`
	FirstName *string `json:"firstName,omitempty" example:"John"`
	LastName  *string `json:"lastName,omitempty" example:"Doe"`
}
