package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/incident-tickets/internal/domain"
	"github.com/spec-kit/incident-tickets/internal/events"
	"github.com/spec-kit/incident-tickets/internal/observability"
)

// Defaults applied by Create and tags added by transitions.
const (
	DefaultSource   = "CLI"
	DefaultPriority = domain.PriorityMedium
	TagNew          = "NEW"
	TagEscalated    = "ESCALATED"
)

// Operation names used for metrics and logs.
const (
	OpCreate   = "create"
	OpEscalate = "escalate"
	OpAssign   = "assign"
	OpUnassign = "unassign"
)

// TicketService encodes ticket lifecycle transitions as builder recipes.
// Every method returns a new ticket and leaves its input untouched.
type TicketService struct {
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// TicketDependencies bundles optional collaborators for the ticket service.
type TicketDependencies struct {
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Create builds a new ticket with MEDIUM priority, CLI source, not customer
// visible and tagged NEW.
func (s *TicketService) Create(ctx context.Context, id, reporterEmail, title string) (*domain.IncidentTicket, error) {
	ticket, err := domain.NewBuilder(id, reporterEmail, title).
		Priority(DefaultPriority).
		Source(DefaultSource).
		CustomerVisible(false).
		AddTag(TagNew).
		Build()
	s.record(OpCreate, id, err)
	if err != nil {
		return nil, err
	}

	priority, _ := ticket.Priority()
	source, _ := ticket.Source()
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID(),
		Payload: events.TicketCreatedPayload{
			ReporterEmail: ticket.ReporterEmail(),
			Title:         ticket.Title(),
			Priority:      priority,
			Source:        source,
			Tags:          ticket.Tags(),
		},
	})
	return ticket, nil
}

// EscalateToCritical returns a copy of ticket with CRITICAL priority and the
// ESCALATED tag appended.
func (s *TicketService) EscalateToCritical(ctx context.Context, ticket *domain.IncidentTicket) (*domain.IncidentTicket, error) {
	escalated, err := ticket.ToBuilder().
		Priority(domain.PriorityCritical).
		AddTag(TagEscalated).
		Build()
	s.record(OpEscalate, ticket.ID(), err)
	if err != nil {
		return nil, err
	}

	payload := events.TicketEscalatedPayload{
		NewPriority: domain.PriorityCritical,
		Changes:     domain.Changes(ticket, escalated),
	}
	if old, ok := ticket.Priority(); ok {
		payload.OldPriority = &old
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketEscalated,
		TicketID: escalated.ID(),
		Payload:  payload,
	})
	return escalated, nil
}

// Assign returns a copy of ticket assigned to assigneeEmail.
func (s *TicketService) Assign(ctx context.Context, ticket *domain.IncidentTicket, assigneeEmail string) (*domain.IncidentTicket, error) {
	assigned, err := ticket.ToBuilder().
		AssigneeEmail(assigneeEmail).
		Build()
	s.record(OpAssign, ticket.ID(), err)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: assigned.ID(),
		Payload: events.TicketAssignedPayload{
			PreviousAssignee: optional(ticket.AssigneeEmail()),
			AssigneeEmail:    &assigneeEmail,
			Changes:          domain.Changes(ticket, assigned),
		},
	})
	return assigned, nil
}

// Unassign returns a copy of ticket without an assignee.
func (s *TicketService) Unassign(ctx context.Context, ticket *domain.IncidentTicket) (*domain.IncidentTicket, error) {
	unassigned, err := ticket.ToBuilder().
		ClearAssigneeEmail().
		Build()
	s.record(OpUnassign, ticket.ID(), err)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUnassigned,
		TicketID: unassigned.ID(),
		Payload: events.TicketAssignedPayload{
			PreviousAssignee: optional(ticket.AssigneeEmail()),
			Changes:          domain.Changes(ticket, unassigned),
		},
	})
	return unassigned, nil
}

// NewTicketID returns a fresh identifier of the form TCK-XXXXXXXX.
func NewTicketID() string {
	return "TCK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *TicketService) record(op, ticketID string, err error) {
	s.metrics.RecordOperation(op, err)
	if err != nil {
		s.logger.Debug("ticket operation rejected",
			zap.String("op", op),
			zap.String("ticket_id", ticketID),
			zap.Error(err))
		return
	}
	s.logger.Debug("ticket operation applied",
		zap.String("op", op),
		zap.String("ticket_id", ticketID))
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
	}
}

func optional(value string, ok bool) *string {
	if !ok {
		return nil
	}
	return &value
}
