package postgres

import (
	"fmt"

	"github.com/arkadata/userhub/internal/domain/entity"
)

// buildPartialUpdate turns a sparse UserUpdate into SET fragments and
// positional args, starting at placeholder $1. Absent fields contribute
// nothing; an explicit null contributes a NULL assignment. An empty result
// means the update has no storable fields.
func buildPartialUpdate(upd entity.UserUpdate) (clauses []string, args []any) {
	next := func(column string, value any) {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if upd.Email.Present {
		next("email", upd.Email.Ptr())
	}
	if upd.Name.Present {
		next("name", upd.Name.Ptr())
	}
	if upd.Age.Present {
		next("age", upd.Age.Ptr())
	}
	return clauses, args
}
