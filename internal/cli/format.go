package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// getOutputFormat determines the output format for a command. If the
// jsonFlag is true it returns OutputJSON, otherwise the value of the
// global "output" flag.
func getOutputFormat(cmd *cobra.Command, jsonFlag bool) string {
	if jsonFlag {
		return OutputJSON
	}
	if flag := cmd.Flag("output"); flag != nil {
		return flag.Value.String()
	}
	return OutputText
}

// confirmRunner matches huh.Form's Run method so tests can swap the
// interactive prompt out.
type confirmRunner interface {
	Run() error
}

// createConfirmForm builds the interactive confirmation prompt. Swapped
// in tests.
var createConfirmForm = defaultCreateConfirmForm //nolint:gochecknoglobals // test seam

func defaultCreateConfirmForm(title, description string, confirm *bool) confirmRunner {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes, delete").
				Negative("No, cancel").
				Value(confirm),
		),
	)
}

// confirmDeletion prompts for confirmation before a destructive action.
// The --yes flag skips the prompt.
func confirmDeletion(flags *GlobalFlags, kind, title string) (bool, error) {
	if flags.Yes {
		return true, nil
	}

	var confirm bool
	form := createConfirmForm(
		fmt.Sprintf("Delete %s '%s'?", kind, title),
		"This cannot be undone. Linked records are kept.",
		&confirm,
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirm, nil
}
