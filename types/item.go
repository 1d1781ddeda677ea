package types

import "time"

// Item represents a single to-do entry owned by a user.
type Item struct {
	// ID is the unique identifier of the item.
	ID int `json:"id" db:"id"`

	// UserID is the identifier of the owning user. Ownership is fixed at
	// creation and never transferred.
	UserID int `json:"user" db:"user_id"`

	// Text is the free-form content of the item. It is always non-empty.
	Text string `json:"text" db:"text"`

	// Completed reports whether the item has been checked off.
	Completed bool `json:"completed" db:"completed"`

	// CreatedAt is the timestamp at which the item was created. Lists are
	// ordered by this field, newest first.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the item.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ItemPatch carries a partial update to an item. Nil fields are left
// untouched by the update.
type ItemPatch struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// IsEmpty reports whether the patch carries no changes.
func (p ItemPatch) IsEmpty() bool {
	return p.Text == nil && p.Completed == nil
}
