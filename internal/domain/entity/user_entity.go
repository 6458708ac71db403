package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
//
// Email is unique across all users; uniqueness is pre-checked at the
// application layer and backstopped by a unique index in storage.
// Age is nullable.
//
// In a real-world app, prefer value objects for Email, etc.
type User struct {
	ID        string
	Email     string
	Name      string
	Age       *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserUpdate is a sparse update over User. Each field is tri-state: unset
// (leave alone), null (clear), or set to a value. Email and Name reject
// null at the validation boundary; only Age is clearable.
type UserUpdate struct {
	Email Field[string]
	Name  Field[string]
	Age   Field[int]
}

// IsEmpty reports whether the update provides no fields at all.
func (u UserUpdate) IsEmpty() bool {
	return !u.Email.Present && !u.Name.Present && !u.Age.Present
}
