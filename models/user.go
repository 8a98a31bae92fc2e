package models

type UserRole string

const (
	RoleAdmin UserRole = "Admin"
	RoleUser  UserRole = "User"
)

type User struct {
	ID        int      `json:"id"`
	Email     string   `json:"email"`
	Username  string   `json:"username"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Phone     string   `json:"phone"`
	Image     string   `json:"image,omitempty"` // base64 encoded avatar
	Role      UserRole `json:"role,omitempty"`
	Address   string   `json:"address,omitempty"`
}

func (u User) EntityID() int { return u.ID }

// UpdateUserDto carries a partial profile update; nil fields are left as is.
type UpdateUserDto struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Image     *string `json:"image,omitempty"`
}
