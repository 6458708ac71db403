package application

import (
	"strconv"

	"github.com/arkadata/userhub/internal/domain/entity"
)

// generateUserChanges computes the field-level change record between a
// proposed update and the current user state. Only fields the update
// explicitly provides participate; a field is included iff its normalized
// string form differs from the stored one. Explicit null is a real value
// and renders as the literal "null".
//
// The diff runs against the pre-write entity: only the caller's requested
// values are meaningful for the event, never auto-maintained columns like
// updated_at.
func generateUserChanges(upd entity.UserUpdate, current *entity.User) entity.Changes {
	changes := entity.Changes{}

	if upd.Email.Present {
		oldVal, newVal := current.Email, stringFieldValue(upd.Email)
		if newVal != oldVal {
			changes["email"] = entity.FieldChange{Old: oldVal, New: newVal}
		}
	}

	if upd.Name.Present {
		oldVal, newVal := current.Name, stringFieldValue(upd.Name)
		if newVal != oldVal {
			changes["name"] = entity.FieldChange{Old: oldVal, New: newVal}
		}
	}

	if upd.Age.Present {
		oldVal := ageString(current.Age)
		newVal := "null"
		if !upd.Age.Null {
			newVal = strconv.Itoa(upd.Age.Value)
		}
		if newVal != oldVal {
			changes["age"] = entity.FieldChange{Old: oldVal, New: newVal}
		}
	}

	return changes
}

func stringFieldValue(f entity.Field[string]) string {
	if f.Null {
		return "null"
	}
	return f.Value
}

func ageString(age *int) string {
	if age == nil {
		return "null"
	}
	return strconv.Itoa(*age)
}
