package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Priority enumerates incident urgency.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Priorities lists the accepted priorities in ascending urgency.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// IncidentTicket is an immutable, validated incident snapshot.
// Instances are created only by Builder.Build; every change produces a new
// ticket through ToBuilder.
type IncidentTicket struct {
	id            string
	reporterEmail string
	title         string

	description     *string
	priority        *Priority
	tags            []string
	assigneeEmail   *string
	customerVisible bool
	slaMinutes      *int
	source          *string // e.g. "CLI", "WEBHOOK", "EMAIL"
}

func (t *IncidentTicket) ID() string { return t.id }
func (t *IncidentTicket) ReporterEmail() string { return t.reporterEmail }
func (t *IncidentTicket) Title() string { return t.title }
func (t *IncidentTicket) CustomerVisible() bool { return t.customerVisible }

// Description returns the description and whether one was set.
func (t *IncidentTicket) Description() (string, bool) { return deref(t.description) }

// Priority returns the priority and whether one was set.
func (t *IncidentTicket) Priority() (Priority, bool) { return deref(t.priority) }

// AssigneeEmail returns the assignee and whether the ticket is assigned.
func (t *IncidentTicket) AssigneeEmail() (string, bool) { return deref(t.assigneeEmail) }

// SLAMinutes returns the service level in minutes and whether one was set.
func (t *IncidentTicket) SLAMinutes() (int, bool) { return deref(t.slaMinutes) }

// Source returns the intake channel and whether one was set.
func (t *IncidentTicket) Source() (string, bool) { return deref(t.source) }

// Tags returns a copy of the tags in insertion order. Changing the returned
// slice never affects the ticket.
func (t *IncidentTicket) Tags() []string {
	return slices.Clone(t.tags)
}

// HasTag reports whether tag is present.
func (t *IncidentTicket) HasTag(tag string) bool {
	return slices.Contains(t.tags, tag)
}

// ToBuilder returns a new Builder pre-filled with this ticket's values.
func (t *IncidentTicket) ToBuilder() *Builder {
	return &Builder{
		id:              t.id,
		reporterEmail:   t.reporterEmail,
		title:           t.title,
		description:     clonePtr(t.description),
		priority:        clonePtr(t.priority),
		tags:            slices.Clone(t.tags),
		assigneeEmail:   clonePtr(t.assigneeEmail),
		customerVisible: t.customerVisible,
		slaMinutes:      clonePtr(t.slaMinutes),
		source:          clonePtr(t.source),
	}
}

// Equal reports whether both tickets hold the same values.
func (t *IncidentTicket) Equal(other *IncidentTicket) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.id == other.id &&
		t.reporterEmail == other.reporterEmail &&
		t.title == other.title &&
		ptrEqual(t.description, other.description) &&
		ptrEqual(t.priority, other.priority) &&
		slices.Equal(t.tags, other.tags) &&
		ptrEqual(t.assigneeEmail, other.assigneeEmail) &&
		t.customerVisible == other.customerVisible &&
		ptrEqual(t.slaMinutes, other.slaMinutes) &&
		ptrEqual(t.source, other.source)
}

func (t *IncidentTicket) String() string {
	var sb strings.Builder
	sb.WriteString("IncidentTicket{")
	fmt.Fprintf(&sb, "id=%q, reporterEmail=%q, title=%q", t.id, t.reporterEmail, t.title)
	sb.WriteString(", description=" + quoted(t.description))
	sb.WriteString(", priority=" + quoted(t.priority))
	fmt.Fprintf(&sb, ", tags=%q", t.tags)
	sb.WriteString(", assigneeEmail=" + quoted(t.assigneeEmail))
	sb.WriteString(", customerVisible=" + strconv.FormatBool(t.customerVisible))
	if t.slaMinutes != nil {
		sb.WriteString(", slaMinutes=" + strconv.Itoa(*t.slaMinutes))
	} else {
		sb.WriteString(", slaMinutes=<none>")
	}
	sb.WriteString(", source=" + quoted(t.source))
	sb.WriteString("}")
	return sb.String()
}

func quoted[T ~string](v *T) string {
	if v == nil {
		return "<none>"
	}
	return strconv.Quote(string(*v))
}

func deref[T any](v *T) (T, bool) {
	if v == nil {
		var zero T
		return zero, false
	}
	return *v, true
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
