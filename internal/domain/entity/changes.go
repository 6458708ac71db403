package entity

// FieldChange is a before/after pair of stringified values for one field.
type FieldChange struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// Changes maps field names to their change. Built transiently during a patch
// and consumed to shape the user.updated event payload; never persisted.
type Changes map[string]FieldChange
