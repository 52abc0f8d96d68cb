package helpdesk

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// Ticket flow messages. The non-owner rejection intentionally differs
// from a plain not-found; see the package notes on the existence leak.
const (
	MsgTicketLoginRequired = "You must be logged in to create a ticket."
	MsgTicketIDRequired    = "Ticket ID is required"
	MsgUnauthorized        = "Unauthorized"
	MsgTicketNotOwner      = "You are not authorized to close this ticket."
	MsgTicketCreated       = "Ticket created successfully."
	MsgTicketClosed        = "Ticket closed successfully."
	MsgTicketCreateFailed  = "An error occurred while creating ticket."
)

// CreateTicketRequest payload
type CreateTicketRequest struct {
	Subject     string `form:"subject" json:"subject"`
	Description string `form:"description" json:"description"`
	Priority    string `form:"priority" json:"priority"`
}

// Validate will run validation rules
func (r CreateTicketRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Subject, validation.Required),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Priority, validation.Required),
	)
}

// CloseTicketRequest payload
type CloseTicketRequest struct {
	TicketID string `form:"ticketId" json:"ticketId"`
}

// Validate will run validation rules
func (r CloseTicketRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TicketID, validation.Required),
	)
}

// TicketActions applies the authorization gate to every ticket operation:
// resolve the current user first, then validate input, then check
// ownership before touching an existing resource.
type TicketActions struct {
	tickets     TicketStore
	resolver    IdentityResolver
	revalidator PathRevalidator
	logger      Logger
	events      Sink
}

// NewTicketActions returns the ticket flow orchestrator.
func NewTicketActions(tickets TicketStore, resolver IdentityResolver) *TicketActions {
	return &TicketActions{
		tickets:     tickets,
		resolver:    resolver,
		revalidator: noopRevalidator{},
		logger:      defLogger{},
		events:      noopSink{},
	}
}

func (t *TicketActions) WithLogger(logger Logger) *TicketActions {
	if logger != nil {
		t.logger = logger
	}
	return t
}

func (t *TicketActions) WithSink(sink Sink) *TicketActions {
	t.events = normalizeSink(sink)
	return t
}

func (t *TicketActions) WithRevalidator(r PathRevalidator) *TicketActions {
	t.revalidator = normalizeRevalidator(r)
	return t
}

func (t *TicketActions) emit(rc RequestContext, event Event) {
	if event.Category == "" {
		event.Category = EventCategoryTicket
	}
	emitEvent(rc.Context(), t.events, t.logger, event)
}

// Create opens a new ticket owned by the current user. Anonymous requests
// are rejected before any input is read and nothing is persisted.
func (t *TicketActions) Create(rc RequestContext, req CreateTicketRequest) Result {
	user := t.resolver.Resolve(rc)
	if user == nil {
		t.emit(rc, Event{
			Message:  "Unauthorized ticket creation attempt",
			Severity: SeverityWarning,
		})
		return Result{Message: MsgTicketLoginRequired}
	}

	if err := req.Validate(); err != nil {
		t.emit(rc, Event{
			Message:  "Validation Error: Missing ticket fields",
			Severity: SeverityWarning,
			Metadata: map[string]any{
				"subject":     req.Subject,
				"description": req.Description,
				"priority":    req.Priority,
			},
		})
		return Result{Message: MsgAllFieldsRequired}
	}

	ticket, err := t.tickets.Open(rc.Context(), &Ticket{
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    req.Priority,
		OwnerID:     user.ID,
	})
	if err != nil {
		t.emit(rc, Event{
			Message:  "An error occurred while creating the ticket.",
			Severity: SeverityError,
			Metadata: map[string]any{"subject": req.Subject},
			Cause:    err,
		})
		return Result{Message: MsgTicketCreateFailed}
	}

	t.emit(rc, Event{
		Message:  "Ticket created successfully: " + ticket.ID.String(),
		Severity: SeverityInfo,
		Metadata: map[string]any{"ticket_id": ticket.ID.String()},
	})

	t.revalidator.Revalidate("/tickets")

	return Result{Success: true, Message: MsgTicketCreated}
}

// Close transitions a ticket to Closed. Only the owner may close it; a
// missing ticket and a ticket owned by someone else produce the same
// rejection path.
func (t *TicketActions) Close(rc RequestContext, req CloseTicketRequest) Result {
	user := t.resolver.Resolve(rc)
	if user == nil {
		t.emit(rc, Event{
			Message:  "Unauthorized ticket close attempt",
			Severity: SeverityWarning,
		})
		return Result{Message: MsgUnauthorized}
	}

	if err := req.Validate(); err != nil {
		t.emit(rc, Event{
			Message:  "Missing ticket ID",
			Severity: SeverityWarning,
		})
		return Result{Message: MsgTicketIDRequired}
	}

	id, err := uuid.Parse(req.TicketID)
	if err != nil {
		t.emit(rc, Event{
			Message:  "Missing ticket ID",
			Severity: SeverityWarning,
			Metadata: map[string]any{"ticket_id": req.TicketID},
		})
		return Result{Message: MsgTicketIDRequired}
	}

	ticket, err := t.tickets.FindByID(rc.Context(), id)
	if err != nil && !repository.IsRecordNotFound(err) {
		t.emit(rc, Event{
			Message:  "Error fetching ticket details",
			Severity: SeverityError,
			Metadata: map[string]any{"ticket_id": req.TicketID},
			Cause:    err,
		})
		return Result{Message: MsgGenericFailure}
	}

	if ticket == nil || ticket.OwnerID != user.ID {
		t.emit(rc, Event{
			Message:  "Unauthorized ticket close attempt",
			Severity: SeverityWarning,
			Metadata: map[string]any{"ticket_id": req.TicketID, "user_id": user.ID.String()},
		})
		return Result{Message: MsgTicketNotOwner}
	}

	if _, err := t.tickets.UpdateStatus(rc.Context(), id, TicketClosed); err != nil {
		t.emit(rc, Event{
			Message:  "Error closing ticket",
			Severity: SeverityError,
			Metadata: map[string]any{"ticket_id": req.TicketID},
			Cause:    err,
		})
		return Result{Message: MsgGenericFailure}
	}

	t.revalidator.Revalidate("/tickets")
	t.revalidator.Revalidate("/tickets/" + id.String())

	return Result{Success: true, Message: MsgTicketClosed}
}

// List returns the current user's tickets, newest first. Anonymous
// callers get an empty list, not an error.
func (t *TicketActions) List(rc RequestContext) []*Ticket {
	user := t.resolver.Resolve(rc)
	if user == nil {
		t.emit(rc, Event{
			Message:  "Unauthorized access to ticket list",
			Severity: SeverityWarning,
		})
		return []*Ticket{}
	}

	records, err := t.tickets.ListByOwner(rc.Context(), user.ID)
	if err != nil {
		t.emit(rc, Event{
			Message:  "Error fetching tickets",
			Severity: SeverityError,
			Cause:    err,
		})
		return []*Ticket{}
	}

	t.emit(rc, Event{
		Message:  "Fetched ticket list",
		Severity: SeverityInfo,
		Metadata: map[string]any{"count": len(records)},
	})

	return records
}

// Get fetches a single ticket by id, or nil when it does not exist.
func (t *TicketActions) Get(rc RequestContext, rawID string) *Ticket {
	id, err := uuid.Parse(rawID)
	if err != nil {
		t.emit(rc, Event{
			Message:  "Ticket not found.",
			Severity: SeverityInfo,
			Metadata: map[string]any{"ticket_id": rawID},
		})
		return nil
	}

	ticket, err := t.tickets.FindByID(rc.Context(), id)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			t.emit(rc, Event{
				Message:  "Ticket not found.",
				Severity: SeverityInfo,
				Metadata: map[string]any{"ticket_id": rawID},
			})
		} else {
			t.emit(rc, Event{
				Message:  "Error fetching ticket details",
				Severity: SeverityError,
				Metadata: map[string]any{"ticket_id": rawID},
				Cause:    err,
			})
		}
		return nil
	}

	return ticket
}
