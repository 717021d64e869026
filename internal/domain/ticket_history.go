package domain

import "slices"

// ChangeType captures which attribute differs between two ticket versions.
type ChangeType string

const (
	ChangeTypeDescription     ChangeType = "DESCRIPTION_CHANGE"
	ChangeTypePriority        ChangeType = "PRIORITY_CHANGE"
	ChangeTypeTags            ChangeType = "TAGS_CHANGE"
	ChangeTypeAssignee        ChangeType = "ASSIGNEE_CHANGE"
	ChangeTypeCustomerVisible ChangeType = "VISIBILITY_CHANGE"
	ChangeTypeSLA             ChangeType = "SLA_CHANGE"
	ChangeTypeSource          ChangeType = "SOURCE_CHANGE"
)

// FieldChange is one entry of the audit trail between two ticket versions.
// Absent values are reported as nil.
type FieldChange struct {
	ChangeType ChangeType `json:"change_type"`
	OldValue   any        `json:"old_value"`
	NewValue   any        `json:"new_value"`
}

// Changes lists the optional attributes that differ between before and after,
// in field order. Identity and required fields are not compared.
func Changes(before, after *IncidentTicket) []FieldChange {
	if before == nil || after == nil {
		return nil
	}
	var changes []FieldChange
	add := func(kind ChangeType, oldVal, newVal any) {
		changes = append(changes, FieldChange{ChangeType: kind, OldValue: oldVal, NewValue: newVal})
	}
	if !ptrEqual(before.description, after.description) {
		add(ChangeTypeDescription, value(before.description), value(after.description))
	}
	if !ptrEqual(before.priority, after.priority) {
		add(ChangeTypePriority, value(before.priority), value(after.priority))
	}
	if !slices.Equal(before.tags, after.tags) {
		add(ChangeTypeTags, slices.Clone(before.tags), slices.Clone(after.tags))
	}
	if !ptrEqual(before.assigneeEmail, after.assigneeEmail) {
		add(ChangeTypeAssignee, value(before.assigneeEmail), value(after.assigneeEmail))
	}
	if before.customerVisible != after.customerVisible {
		add(ChangeTypeCustomerVisible, before.customerVisible, after.customerVisible)
	}
	if !ptrEqual(before.slaMinutes, after.slaMinutes) {
		add(ChangeTypeSLA, value(before.slaMinutes), value(after.slaMinutes))
	}
	if !ptrEqual(before.source, after.source) {
		add(ChangeTypeSource, value(before.source), value(after.source))
	}
	return changes
}

func value[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
