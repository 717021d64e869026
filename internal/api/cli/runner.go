package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/spec-kit/incident-tickets/internal/api/dto"
	"github.com/spec-kit/incident-tickets/internal/domain"
	"github.com/spec-kit/incident-tickets/internal/service"
	"github.com/spec-kit/incident-tickets/pkg/util/errorutil"
)

// Runner drives the ticket service from the command line and prints results to out.
type Runner struct {
	tickets *service.TicketService
	logger  *zap.Logger
	out     io.Writer
	newID   func() string
}

// NewRunner constructs a runner.
func NewRunner(tickets *service.TicketService, logger *zap.Logger, out io.Writer) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{tickets: tickets, logger: logger, out: out, newID: service.NewTicketID}
}

// Report summarizes a batch run.
type Report struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

// RunDemo walks through creation, assignment, escalation and direct builder use.
func (r *Runner) RunDemo(ctx context.Context) error {
	created, err := r.tickets.Create(ctx, "TCK-1001", "reporter@example.com", "Payment failing on checkout")
	if err != nil {
		return err
	}
	r.printf("Created: %s\n", created)

	assigned, err := r.tickets.Assign(ctx, created, "agent@example.com")
	if err != nil {
		return err
	}
	r.printf("\nAfter assign (new ticket): %s\n", assigned)
	r.printf("Original unchanged:        %s\n", created)

	escalated, err := r.tickets.EscalateToCritical(ctx, assigned)
	if err != nil {
		return err
	}
	r.printf("\nAfter escalation (new ticket): %s\n", escalated)
	r.printf("Assigned still unchanged:      %s\n", assigned)

	tags := escalated.Tags()
	tags[0] = "HACKED_FROM_OUTSIDE"
	if escalated.HasTag("HACKED_FROM_OUTSIDE") {
		r.printf("\nOops, tags were mutated!\n")
	} else {
		r.printf("\nExternal tag mutation had no effect: %q\n", escalated.Tags())
	}

	custom, err := domain.NewBuilder("INC-42", "user@example.com", "Wifi not working").
		Priority(domain.PriorityHigh).
		Description("Floor 3, room 305").
		AddTag("INFRA").
		AddTag("URGENT").
		SLAMinutes(60).
		Source("EMAIL").
		CustomerVisible(true).
		Build()
	if err != nil {
		return err
	}
	r.printf("\nCustom ticket: %s\n", custom)

	_, err = domain.NewBuilder("INC-43", "user@example.com", "Disk full").SLAMinutes(1).Build()
	r.printf("\nRejected ticket: %v\n", err)
	return nil
}

// RunBatch builds every draft, applies its actions and prints one JSON line
// per draft. A failing draft does not stop the batch.
func (r *Runner) RunBatch(ctx context.Context, batch dto.Batch) (Report, error) {
	var report Report
	enc := json.NewEncoder(r.out)
	for i, draft := range batch.Tickets {
		report.Processed++
		ticket, err := r.processDraft(ctx, draft)
		if err != nil {
			report.Failed++
			domainErr := errorutil.ToDomainError(err)
			if domainErr.Code == errorutil.CodeInternal {
				r.logger.Error("ticket failed", zap.Int("index", i), zap.Error(domainErr))
			} else {
				r.logger.Warn("ticket rejected", zap.Int("index", i), zap.String("code", domainErr.Code), zap.Error(err))
			}
			if err := enc.Encode(errorResponse(i, domainErr)); err != nil {
				return report, err
			}
			continue
		}
		if err := enc.Encode(map[string]any{"index": i, "data": dto.NewTicketView(ticket)}); err != nil {
			return report, err
		}
	}
	r.logger.Info("batch processed", zap.Int("processed", report.Processed), zap.Int("failed", report.Failed))
	return report, nil
}

func (r *Runner) processDraft(ctx context.Context, draft dto.TicketDraft) (ticket *domain.IncidentTicket, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("panic recovered", zap.Any("panic", rec), zap.ByteString("stack", debug.Stack()))
			ticket, err = nil, errorutil.NewInternalError(fmt.Errorf("panic: %v", rec))
		}
	}()

	id := draft.ID
	if id == "" {
		id = r.newID()
	}
	ticket, err = draft.Builder(id).Build()
	if err != nil {
		return nil, err
	}
	for _, action := range draft.Actions {
		switch action.Kind {
		case dto.ActionEscalate:
			ticket, err = r.tickets.EscalateToCritical(ctx, ticket)
		case dto.ActionAssign:
			ticket, err = r.tickets.Assign(ctx, ticket, action.Argument)
		case dto.ActionUnassign:
			ticket, err = r.tickets.Unassign(ctx, ticket)
		default:
			err = errorutil.NewInvalidInput(fmt.Sprintf("unknown action %q", action.Kind), nil)
		}
		if err != nil {
			return nil, err
		}
	}
	return ticket, nil
}

func errorResponse(index int, domainErr *errorutil.DomainError) map[string]any {
	body := map[string]any{
		"code":    domainErr.Code,
		"message": domainErr.Message,
	}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}
	return map[string]any{"index": index, "error": body}
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}
