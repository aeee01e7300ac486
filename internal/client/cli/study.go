package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cardcore/cardcore/internal/client/study"
)

var ratingKeys = map[string]study.Rating{
	"1": study.Again,
	"2": study.Hard,
	"3": study.Good,
	"4": study.Easy,
}

// Study runs one review session over a chosen stack. The controller owns all
// transitions; this loop only prompts and prints.
func (a *App) Study(ctx context.Context) error {
	stackID, err := a.pickStack(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}

	ctrl := study.NewController(a.api, a.identity, stackID)
	if err := ctrl.Start(ctx); err != nil {
		fmt.Fprintf(a.out, "Could not start session: %v\n", err)
		return err
	}

	if stack := ctrl.Stack(); stack != nil {
		fmt.Fprintf(a.out, "Studying %q, progress %d%%\n", stack.Name, ctrl.Progress())
	}
	if !ctrl.IsOwner() {
		fmt.Fprintln(a.out, "You are browsing someone else's stack; rating is disabled.")
	}

	for {
		switch ctrl.State() {
		case study.StateAwaitingFlip:
			card := ctrl.Card()
			fmt.Fprintf(a.out, "\nFront: %s\n", card.Front)
			input, err := GetSimpleText(a.reader, "Enter to flip, q to stop", a.out)
			if err != nil {
				return err
			}
			if strings.EqualFold(input, "q") {
				return nil
			}
			ctrl.Flip()

		case study.StateAwaitingRating:
			card := ctrl.Card()
			fmt.Fprintf(a.out, "Back:  %s\n", card.Back)
			input, err := GetSimpleText(a.reader, "Rate: 1=again 2=hard 3=good 4=easy, q to stop", a.out)
			if err != nil {
				return err
			}
			if strings.EqualFold(input, "q") {
				return nil
			}
			rating, ok := ratingKeys[input]
			if !ok {
				fmt.Fprintln(a.out, "Pick 1, 2, 3 or 4")
				continue
			}
			if err := ctrl.Rate(ctx, rating); err != nil {
				if errors.Is(err, study.ErrNotOwner) {
					fmt.Fprintln(a.out, "Only the stack owner can rate cards")
					return nil
				}
				// StateFailed path prints and prompts below
				continue
			}
			fmt.Fprintf(a.out, "Progress: %d%%\n", ctrl.Progress())

		case study.StateExhausted:
			fmt.Fprintf(a.out, "\nNothing due right now. Progress: %d%%\n", ctrl.Progress())
			return nil

		case study.StateFailed:
			fmt.Fprintf(a.out, "Request failed: %v\n", ctrl.Err())
			input, err := GetSimpleText(a.reader, "Retry? (y/n)", a.out)
			if err != nil {
				return err
			}
			if !strings.EqualFold(input, "y") {
				return nil
			}
			if err := ctrl.Retry(ctx); err != nil {
				continue
			}

		default:
			return nil
		}
	}
}
