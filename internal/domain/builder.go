package domain

import (
	"slices"

	"github.com/spec-kit/incident-tickets/internal/validation"
)

const (
	TitleMaxLen   = 80
	MinSLAMinutes = 5
	MaxSLAMinutes = 7200
)

// Builder accumulates ticket values. Nothing is validated until Build.
// A Builder is not safe for concurrent use.
type Builder struct {
	id            string
	reporterEmail string
	title         string

	description     *string
	priority        *Priority
	tags            []string
	assigneeEmail   *string
	customerVisible bool
	slaMinutes      *int
	source          *string
}

// NewBuilder starts a ticket with its required fields.
func NewBuilder(id, reporterEmail, title string) *Builder {
	return &Builder{
		id:            id,
		reporterEmail: reporterEmail,
		title:         title,
		tags:          []string{},
	}
}

func (b *Builder) Description(description string) *Builder {
	b.description = &description
	return b
}

func (b *Builder) Priority(priority Priority) *Builder {
	b.priority = &priority
	return b
}

// Tags replaces the tags with a copy of tags. A nil slice resets to no tags.
func (b *Builder) Tags(tags []string) *Builder {
	if tags == nil {
		b.tags = []string{}
		return b
	}
	b.tags = slices.Clone(tags)
	return b
}

func (b *Builder) AddTag(tag string) *Builder {
	b.tags = append(b.tags, tag)
	return b
}

func (b *Builder) AssigneeEmail(email string) *Builder {
	b.assigneeEmail = &email
	return b
}

// ClearAssigneeEmail leaves the ticket unassigned.
func (b *Builder) ClearAssigneeEmail() *Builder {
	b.assigneeEmail = nil
	return b
}

func (b *Builder) CustomerVisible(visible bool) *Builder {
	b.customerVisible = visible
	return b
}

func (b *Builder) SLAMinutes(minutes int) *Builder {
	b.slaMinutes = &minutes
	return b
}

func (b *Builder) Source(source string) *Builder {
	b.source = &source
	return b
}

// Build validates the accumulated values and returns an immutable ticket.
// It stops at the first invalid field and returns a *errorutil.FieldError.
func (b *Builder) Build() (*IncidentTicket, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	return &IncidentTicket{
		id:              b.id,
		reporterEmail:   b.reporterEmail,
		title:           b.title,
		description:     clonePtr(b.description),
		priority:        clonePtr(b.priority),
		tags:            slices.Clone(b.tags),
		assigneeEmail:   clonePtr(b.assigneeEmail),
		customerVisible: b.customerVisible,
		slaMinutes:      clonePtr(b.slaMinutes),
		source:          clonePtr(b.source),
	}, nil
}

func (b *Builder) validate() error {
	if err := validation.RequireTicketID(b.id); err != nil {
		return err
	}
	if err := validation.RequireEmail(b.reporterEmail, "reporterEmail"); err != nil {
		return err
	}
	if err := validation.RequireNonBlank(b.title, "title"); err != nil {
		return err
	}
	if err := validation.RequireMaxLen(b.title, TitleMaxLen, "title"); err != nil {
		return err
	}
	if b.priority != nil {
		allowed := make([]string, 0, 4)
		for _, p := range Priorities() {
			allowed = append(allowed, string(p))
		}
		if err := validation.RequireOneOf(string(*b.priority), "priority", allowed...); err != nil {
			return err
		}
	}
	if b.assigneeEmail != nil {
		if err := validation.RequireEmail(*b.assigneeEmail, "assigneeEmail"); err != nil {
			return err
		}
	}
	if b.slaMinutes != nil {
		if err := validation.RequireRange(*b.slaMinutes, MinSLAMinutes, MaxSLAMinutes, "slaMinutes"); err != nil {
			return err
		}
	}
	return nil
}
