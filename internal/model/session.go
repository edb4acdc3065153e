package model

// Session is the locally held proof of a successful login.
type Session struct {
	Token string `json:"token"`
	Email string `json:"email,omitempty"`
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
