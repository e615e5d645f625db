package domain

// User as returned by the remote service. The password is write-only and
// is never decoded.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

func (u User) Key() int { return u.ID }

type UserCreate struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserUpdate struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// AsUpdate keeps the stored password when the form left it blank.
func (u UserCreate) AsUpdate() UserUpdate {
	up := UserUpdate{Name: &u.Name, Email: &u.Email}
	if u.Password != "" {
		up.Password = &u.Password
	}
	return up
}
