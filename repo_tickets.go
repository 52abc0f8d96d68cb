package helpdesk

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// TicketStore is the persistence contract the ticket actions depend on.
type TicketStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	Open(ctx context.Context, ticket *Ticket) (*Ticket, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status TicketStatus) (*Ticket, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Ticket, error)
}

// Tickets exposes ticket persistence: the generic repository surface plus
// the action specific operations.
type Tickets interface {
	repository.Repository[*Ticket]
	TicketStore

	OpenTx(ctx context.Context, tx bun.IDB, ticket *Ticket) (*Ticket, error)
	UpdateStatusTx(ctx context.Context, tx bun.IDB, id uuid.UUID, status TicketStatus) (*Ticket, error)
}

type tickets struct {
	repository.Repository[*Ticket]
	db *bun.DB
}

var (
	_ Tickets                        = (*tickets)(nil)
	_ TicketStore                    = (*tickets)(nil)
	_ repository.Repository[*Ticket] = (*tickets)(nil)
)

// NewTicketsRepository returns a bun backed Tickets repository.
func NewTicketsRepository(db *bun.DB) Tickets {
	repo := repository.NewRepository[*Ticket](db, repository.ModelHandlers[*Ticket]{
		NewRecord: func() *Ticket { return &Ticket{} },
		GetID: func(t *Ticket) uuid.UUID {
			if t == nil {
				return uuid.Nil
			}
			return t.ID
		},
		SetID: func(t *Ticket, id uuid.UUID) {
			if t != nil {
				t.ID = id
			}
		},
	})

	return &tickets{
		Repository: repo,
		db:         db,
	}
}

// Open persists a new ticket in the Open status for its owner.
func (a *tickets) Open(ctx context.Context, ticket *Ticket) (*Ticket, error) {
	return a.OpenTx(ctx, a.db, ticket)
}

func (a *tickets) OpenTx(ctx context.Context, tx bun.IDB, ticket *Ticket) (*Ticket, error) {
	if ticket != nil {
		if ticket.ID == uuid.Nil {
			ticket.ID = uuid.New()
		}
		if ticket.Status == "" {
			ticket.Status = TicketOpen
		}
	}
	return a.CreateTx(ctx, tx, ticket)
}

// FindByID looks a ticket up by primary key.
func (a *tickets) FindByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	record := &Ticket{}

	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) || errors.Is(err, sql.ErrNoRows) {
			return nil, repository.NewRecordNotFound()
		}
		return nil, err
	}

	return record, nil
}

// UpdateStatus sets the ticket status. Concurrent updates are not
// serialized; last write wins.
func (a *tickets) UpdateStatus(ctx context.Context, id uuid.UUID, status TicketStatus) (*Ticket, error) {
	return a.UpdateStatusTx(ctx, a.db, id, status)
}

func (a *tickets) UpdateStatusTx(ctx context.Context, tx bun.IDB, id uuid.UUID, status TicketStatus) (*Ticket, error) {
	record := &Ticket{}

	res, err := tx.NewUpdate().
		Model(record).
		Set("status = ?", status).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("?TableAlias.id = ?", id).
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, repository.NewRecordNotFound()
	}

	return record, nil
}

// ListByOwner returns the owner's tickets, newest first.
func (a *tickets) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Ticket, error) {
	var records []*Ticket

	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.owner_id = ?", ownerID).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return records, nil
}
