package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Stacks lists everything visible to the user, numbered so the study
// command can take an index.
func (a *App) Stacks(ctx context.Context) error {
	stacks, err := a.api.ListStacks(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}

	a.lastStacks = stacks

	if len(stacks) == 0 {
		fmt.Fprintln(a.out, "No stacks yet")
		return nil
	}

	for i, s := range stacks {
		visibility := "private"
		if s.IsPublic {
			visibility = "public"
		}
		fmt.Fprintf(a.out, "%2d. %s (%d cards, %s, by %s)\n",
			i+1, s.Name, s.CardAmount, visibility, s.OwnerName)
	}
	return nil
}

// pickStack resolves user input (a number from the last listing) to a stack.
func (a *App) pickStack(ctx context.Context) (string, error) {
	if len(a.lastStacks) == 0 {
		if err := a.Stacks(ctx); err != nil {
			return "", err
		}
		if len(a.lastStacks) == 0 {
			return "", fmt.Errorf("no stacks to choose from")
		}
	}

	input, err := GetSimpleText(a.reader, "Stack number", a.out)
	if err != nil {
		return "", err
	}

	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(a.lastStacks) {
		return "", fmt.Errorf("invalid stack number %q", input)
	}

	return a.lastStacks[n-1].ID, nil
}
