// Package render projects the submission state onto display fragments.
package render

import (
	"github.com/csheth/promptrefiner/internal/refine"
	"github.com/csheth/promptrefiner/internal/submission"
)

const (
	submitLabel     = "Refine Prompt"
	submittingLabel = "Refining..."
)

// Field is one labelled line of a card.
type Field struct {
	Label string
	Value string
}

// View is everything the host needs to draw the output section.
type View struct {
	Busy         bool
	ShowResult   bool
	Error        string
	CoreIntent   []Field
	Requirements []string
	RawJSON      string
}

// Render is a pure projection. Missing result fields are omitted, never
// treated as errors.
func Render(state submission.State) View {
	view := View{Busy: state.Busy()}
	if message, ok := state.Message(); ok {
		view.Error = message
		return view
	}
	result, ok := state.Result()
	if !ok {
		return view
	}
	view.ShowResult = true
	view.CoreIntent = coreIntentFields(result.CoreIntent())
	view.Requirements = append([]string{}, result.FunctionalRequirements()...)
	view.RawJSON = result.PrettyJSON()
	return view
}

func coreIntentFields(intent refine.CoreIntent) []Field {
	candidates := []struct {
		label string
		value refine.Optional
	}{
		{"Summary", intent.Summary},
		{"Goal", intent.PrimaryGoal},
		{"Audience", intent.TargetAudience},
	}
	fields := make([]Field, 0, len(candidates))
	for _, candidate := range candidates {
		if !candidate.value.Present {
			continue
		}
		fields = append(fields, Field{Label: candidate.label, Value: candidate.value.Value})
	}
	return fields
}

// SubmitEnabled reports whether the submit trigger accepts input.
func SubmitEnabled(state submission.State, canSubmit bool) bool {
	return canSubmit && !state.Busy()
}

func SubmitLabel(state submission.State) string {
	if state.Busy() {
		return submittingLabel
	}
	return submitLabel
}
