package models

// Identity is the authenticated user's profile as returned by the backend
// login endpoints. Success marks the payload as a real logged-in identity
// rather than a stale or partial write; anything else is treated as absent.
type Identity struct {
	Success  bool     `json:"success"`
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Token    string   `json:"token,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// HasRole reports whether the identity carries the given role marker.
func (i *Identity) HasRole(role string) bool {
	if i == nil {
		return false
	}
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Result is the uniform shape every backend-facing operation resolves to,
// regardless of what the backend actually returned.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Failure builds a failed Result with the given message.
func Failure(message string) Result {
	return Result{Success: false, Message: message}
}

// Ok builds a successful Result with the given message.
func Ok(message string) Result {
	return Result{Success: true, Message: message}
}
