package request

import "github.com/google/uuid"

type Register struct {
	Username string `json:"username" validate:"required,nickname"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type Login struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Logout struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
}
