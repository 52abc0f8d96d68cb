package helpdesk

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the user model. The password hash is persisted here and must
// never cross the store boundary; protected actions only ever see the
// CurrentUser projection.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// TicketStatus is the ticket's lifecycle state
type TicketStatus = string

const (
	// TicketOpen is the status of a freshly created ticket
	TicketOpen TicketStatus = "Open"
	// TicketClosed is the terminal status, reachable only by the owner
	TicketClosed TicketStatus = "Closed"
)

// Ticket is the support ticket model. OwnerID is immutable after
// creation; the Open→Closed transition is gated on ownership.
type Ticket struct {
	bun.BaseModel `bun:"table:tickets,alias:tck"`
	ID            uuid.UUID    `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Subject       string       `bun:"subject,notnull" json:"subject,omitempty"`
	Description   string       `bun:"description,notnull" json:"description,omitempty"`
	Priority      string       `bun:"priority,notnull" json:"priority,omitempty"`
	Status        TicketStatus `bun:"status,notnull,default:'Open'" json:"status,omitempty"`
	OwnerID       uuid.UUID    `bun:"owner_id,notnull,type:uuid" json:"owner_id,omitempty"`
	Owner         *User        `bun:"rel:belongs-to,join:owner_id=id" json:"owner,omitempty"`
	CreatedAt     *time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// IsClosed reports whether the ticket reached its terminal status.
func (t *Ticket) IsClosed() bool {
	return t.Status == TicketClosed
}

// CurrentUser is the identity projection exposed to protected actions:
// id, email, and name only.
type CurrentUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Result is the structured outcome every public flow returns. Messages
// are short and non-diagnostic; detail goes to the event sink.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
