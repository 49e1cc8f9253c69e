package domain

// LoginCredentials describes how to log in to a freshly created server.
type LoginCredentials struct {
	User     string `json:"user"`
	Password string `json:"password,omitempty"`

	// AuthenticateSudo reports whether sudo prompts for the password.
	AuthenticateSudo bool `json:"authenticate_sudo,omitempty"`
}

// HasPassword reports whether a password was supplied.
func (c LoginCredentials) HasPassword() bool {
	return c.Password != ""
}
