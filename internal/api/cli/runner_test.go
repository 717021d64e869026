package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/incident-tickets/internal/api/dto"
	"github.com/spec-kit/incident-tickets/internal/service"
)

func newTestRunner() (*Runner, *bytes.Buffer) {
	out := &bytes.Buffer{}
	r := NewRunner(service.NewTicketService(service.TicketDependencies{}), nil, out)
	r.newID = func() string { return "TCK-FIXED01" }
	return r, out
}

func decodeLines(t *testing.T, out *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		lines = append(lines, m)
	}
	return lines
}

func TestRunDemo(t *testing.T) {
	r, out := newTestRunner()
	require.NoError(t, r.RunDemo(context.Background()))

	text := out.String()
	assert.Contains(t, text, `Created: IncidentTicket{id="TCK-1001"`)
	assert.Contains(t, text, `After escalation (new ticket): IncidentTicket{id="TCK-1001"`)
	assert.Contains(t, text, `tags=["NEW" "ESCALATED"]`)
	assert.Contains(t, text, `External tag mutation had no effect: ["NEW" "ESCALATED"]`)
	assert.Contains(t, text, `Custom ticket: IncidentTicket{id="INC-42"`)
	assert.Contains(t, text, `Rejected ticket: invalid field "slaMinutes"`)
	assert.NotContains(t, text, "Oops")
}

func TestRunBatch(t *testing.T) {
	r, out := newTestRunner()
	doc := `
tickets:
  - id: INC-42
    reporter_email: user@example.com
    title: Wifi not working
    tags: [INFRA]
    actions:
      - assign: agent@example.com
      - escalate
  - id: INC-43
    reporter_email: user@example.com
    title: Bad priority
    priority: URGENT
  - reporter_email: user@example.com
    title: No id given
  - id: INC-44
    reporter_email: user@example.com
    title: Bad assignee
    actions:
      - assign: nobody
`
	batch, err := dto.DecodeBatch(strings.NewReader(doc))
	require.NoError(t, err)

	report, err := r.RunBatch(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, Report{Processed: 4, Failed: 2}, report)

	lines := decodeLines(t, out)
	require.Len(t, lines, 4)

	first := lines[0]["data"].(map[string]any)
	assert.Equal(t, "INC-42", first["id"])
	assert.Equal(t, "CRITICAL", first["priority"])
	assert.Equal(t, "agent@example.com", first["assignee_email"])
	assert.Equal(t, []any{"INFRA", "ESCALATED"}, first["tags"])

	rejected := lines[1]["error"].(map[string]any)
	assert.Equal(t, "INVALID_FIELD", rejected["code"])
	assert.Equal(t, "priority", rejected["details"].(map[string]any)["field"])

	generated := lines[2]["data"].(map[string]any)
	assert.Equal(t, "TCK-FIXED01", generated["id"])

	badAssignee := lines[3]["error"].(map[string]any)
	assert.Equal(t, "assigneeEmail", badAssignee["details"].(map[string]any)["field"])
	assert.Equal(t, float64(3), lines[3]["index"])
}

func TestRunBatchUnknownAction(t *testing.T) {
	r, out := newTestRunner()
	batch := dto.Batch{Tickets: []dto.TicketDraft{{
		ID:            "INC-1",
		ReporterEmail: "user@example.com",
		Title:         "t",
		Actions:       []dto.Action{{Kind: "close"}},
	}}}

	report, err := r.RunBatch(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	lines := decodeLines(t, out)
	assert.Equal(t, "INVALID_INPUT", lines[0]["error"].(map[string]any)["code"])
}
