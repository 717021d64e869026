package dto

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/incident-tickets/internal/domain"
)

// Batch is the document accepted by the CLI. JSON documents decode too since
// JSON is valid YAML.
type Batch struct {
	Tickets []TicketDraft `yaml:"tickets" json:"tickets"`
}

// TicketDraft describes one ticket before validation. Pointer fields
// distinguish an absent value from an empty one.
type TicketDraft struct {
	ID              string   `yaml:"id" json:"id"`
	ReporterEmail   string   `yaml:"reporter_email" json:"reporter_email"`
	Title           string   `yaml:"title" json:"title"`
	Description     *string  `yaml:"description" json:"description"`
	Priority        *string  `yaml:"priority" json:"priority"`
	Tags            []string `yaml:"tags" json:"tags"`
	AssigneeEmail   *string  `yaml:"assignee_email" json:"assignee_email"`
	CustomerVisible bool     `yaml:"customer_visible" json:"customer_visible"`
	SLAMinutes      *int     `yaml:"sla_minutes" json:"sla_minutes"`
	Source          *string  `yaml:"source" json:"source"`
	Actions         []Action `yaml:"actions" json:"actions"`
}

// ActionKind names a lifecycle transition applied after the ticket is built.
type ActionKind string

const (
	ActionEscalate ActionKind = "escalate"
	ActionAssign   ActionKind = "assign"
	ActionUnassign ActionKind = "unassign"
)

// Action is either a bare kind ("escalate", "unassign") or a single-key
// mapping with an argument ("assign: agent@example.com").
type Action struct {
	Kind     ActionKind
	Argument string
}

// UnmarshalYAML accepts the scalar and mapping forms of an action.
func (a *Action) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		a.Kind = ActionKind(strings.TrimSpace(node.Value))
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: action must have exactly one key", node.Line)
		}
		a.Kind = ActionKind(strings.TrimSpace(node.Content[0].Value))
		if err := node.Content[1].Decode(&a.Argument); err != nil {
			return fmt.Errorf("line %d: action %q: %w", node.Line, a.Kind, err)
		}
	default:
		return fmt.Errorf("line %d: action must be a string or a mapping", node.Line)
	}
	switch a.Kind {
	case ActionEscalate, ActionUnassign:
		return nil
	case ActionAssign:
		if a.Argument == "" {
			return fmt.Errorf("line %d: assign requires an assignee email", node.Line)
		}
		return nil
	default:
		return fmt.Errorf("line %d: unknown action %q", node.Line, a.Kind)
	}
}

// DecodeBatch reads a YAML or JSON batch document.
func DecodeBatch(r io.Reader) (Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Batch{}, err
	}
	var batch Batch
	if len(bytes.TrimSpace(data)) == 0 {
		return batch, errors.New("empty batch document")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&batch); err != nil {
		return Batch{}, err
	}
	return batch, nil
}

// Builder maps the draft onto a ticket builder. id replaces an empty draft id.
func (d TicketDraft) Builder(id string) *domain.Builder {
	if d.ID != "" {
		id = d.ID
	}
	b := domain.NewBuilder(id, d.ReporterEmail, d.Title).
		Tags(d.Tags).
		CustomerVisible(d.CustomerVisible)
	if d.Description != nil {
		b.Description(*d.Description)
	}
	if d.Priority != nil {
		b.Priority(domain.Priority(*d.Priority))
	}
	if d.AssigneeEmail != nil {
		b.AssigneeEmail(*d.AssigneeEmail)
	}
	if d.SLAMinutes != nil {
		b.SLAMinutes(*d.SLAMinutes)
	}
	if d.Source != nil {
		b.Source(*d.Source)
	}
	return b
}

// TicketView is the printable form of a ticket.
type TicketView struct {
	ID              string   `json:"id"`
	ReporterEmail   string   `json:"reporter_email"`
	Title           string   `json:"title"`
	Description     *string  `json:"description"`
	Priority        *string  `json:"priority"`
	Tags            []string `json:"tags"`
	AssigneeEmail   *string  `json:"assignee_email"`
	CustomerVisible bool     `json:"customer_visible"`
	SLAMinutes      *int     `json:"sla_minutes"`
	Source          *string  `json:"source"`
}

// NewTicketView renders ticket. Absent optional fields stay nil.
func NewTicketView(ticket *domain.IncidentTicket) TicketView {
	view := TicketView{
		ID:              ticket.ID(),
		ReporterEmail:   ticket.ReporterEmail(),
		Title:           ticket.Title(),
		Tags:            ticket.Tags(),
		CustomerVisible: ticket.CustomerVisible(),
	}
	if v, ok := ticket.Description(); ok {
		view.Description = &v
	}
	if v, ok := ticket.Priority(); ok {
		s := string(v)
		view.Priority = &s
	}
	if v, ok := ticket.AssigneeEmail(); ok {
		view.AssigneeEmail = &v
	}
	if v, ok := ticket.SLAMinutes(); ok {
		view.SLAMinutes = &v
	}
	if v, ok := ticket.Source(); ok {
		view.Source = &v
	}
	return view
}
