package models

// LoginRequest is the credential payload for both user and admin login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the input for user and admin registration.
// Phone and address fields are optional and omitted from the backend
// payload when empty.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone,omitempty"`
	Location        string `json:"location,omitempty"`
	City            string `json:"city,omitempty"`
	State           string `json:"state,omitempty"`
	Country         string `json:"country,omitempty"`
}

// UpdatePasswordRequest changes the password of the logged-in user.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentpassword"`
	NewPassword     string `json:"newpassword"`
	ConfirmPassword string `json:"confirmpassword"`
}

// ForgetPasswordRequest resets a password by username, without a session.
type ForgetPasswordRequest struct {
	NewPassword     string `json:"newpassword"`
	ConfirmPassword string `json:"confirmpassword"`
}

// User is a backend user row as rendered by the user list and detail views.
type User struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone,omitempty"`
	Location string   `json:"location,omitempty"`
	City     string   `json:"city,omitempty"`
	State    string   `json:"state,omitempty"`
	Country  string   `json:"country,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// Store is a backend store row.
type Store struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	OwnerID  int64  `json:"ownerId"`
}

// StoreRequest is the input for store create and update.
type StoreRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	OwnerID  int64  `json:"ownerId"`
}

// UsersResponse pairs a normalized result with the refreshed user list a
// mutating operation is chained to.
type UsersResponse struct {
	Result
	Users []User `json:"users"`
}

// StoresResponse pairs a normalized result with the refreshed store list.
type StoresResponse struct {
	Result
	Stores []Store `json:"stores"`
}

// DashboardResponse is the identity summary served on /dashboard.
type DashboardResponse struct {
	Username   string `json:"username"`
	Admin      bool   `json:"admin"`
	StoreCount int    `json:"storeCount"`
	UserCount  int    `json:"userCount,omitempty"`
}
