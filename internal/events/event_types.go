package events

import (
	"time"

	"github.com/spec-kit/incident-tickets/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated    EventType = "ticket_created"
	EventTicketEscalated  EventType = "ticket_escalated"
	EventTicketAssigned   EventType = "ticket_assigned"
	EventTicketUnassigned EventType = "ticket_unassigned"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	TicketID  string    `json:"ticket_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	ReporterEmail string          `json:"reporter_email"`
	Title         string          `json:"title"`
	Priority      domain.Priority `json:"priority"`
	Source        string          `json:"source,omitempty"`
	Tags          []string        `json:"tags"`
}

// TicketEscalatedPayload payload.
type TicketEscalatedPayload struct {
	OldPriority *domain.Priority     `json:"old_priority,omitempty"`
	NewPriority domain.Priority      `json:"new_priority"`
	Changes     []domain.FieldChange `json:"changes"`
}

// TicketAssignedPayload payload. AssigneeEmail is nil when the ticket was unassigned.
type TicketAssignedPayload struct {
	PreviousAssignee *string              `json:"previous_assignee,omitempty"`
	AssigneeEmail    *string              `json:"assignee_email,omitempty"`
	Changes          []domain.FieldChange `json:"changes"`
}
