package main

import (
	"github.com/charmbracelet/huh"
)

// promptConfirm asks a yes/no question, answering no when the prompt cannot run.
func promptConfirm(title string) bool {
	var confirmed bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes, send").
				Negative("No").
				Value(&confirmed),
		),
	).Run()
	if err != nil {
		printNotice("confirmation aborted: " + err.Error())
		return false
	}
	return confirmed
}
