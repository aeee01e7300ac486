package cli

import (
	"context"
	"fmt"
	"strings"
)

// Scribble shows the user's notes pad and optionally replaces its content.
func (a *App) Scribble(ctx context.Context) error {
	pad, err := a.api.GetScribblePad(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}

	if pad.Content == "" {
		fmt.Fprintln(a.out, "Scribble pad is empty")
	} else {
		fmt.Fprintf(a.out, "--- scribble pad ---\n%s\n--------------------\n", pad.Content)
	}

	input, err := GetSimpleText(a.reader, "Edit? (y/n)", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(input, "y") {
		return nil
	}

	content, err := GetMultiline(a.reader, "New content", a.out)
	if err != nil {
		return err
	}

	if _, err := a.api.SaveScribblePad(ctx, content); err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Saved")
	return nil
}
