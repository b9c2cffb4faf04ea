package domain

// User is a row of the users table. Password holds the transformed value.
type User struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Password string `db:"password"`
}

// UserView is the public projection of a User.
type UserView struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}

func (u User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserPatch carries the mutable fields of an update. A nil field is left untouched.
type UserPatch struct {
	Name  *string
	Email *string
}

func (p UserPatch) Empty() bool { return p.Name == nil && p.Email == nil }
