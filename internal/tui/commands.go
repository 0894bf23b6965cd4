package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/promptrefiner/internal/submission"
)

// The job error only feeds the job log; the controller decides what the user
// sees.
func refineJob(ticket submission.Ticket) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		outcome := ticket.Run(ctx)
		return refineResultMsg{outcome: outcome}, outcome.Err
	}
}
