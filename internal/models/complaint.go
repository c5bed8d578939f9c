package models

import (
	"time"

	"github.com/google/uuid"
)

// Complaint is a citizen complaint record: the question a citizen asked and
// the category it was filed under.
type Complaint struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}
