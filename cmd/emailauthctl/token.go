package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
)

func cmdToken(s *services, args []string) error {
	if len(args) != 2 {
		return usageError("token list|revoke-all <email> | token revoke <tokenId>")
	}
	ctx := context.Background()

	switch args[0] {
	case "list":
		tokens, err := s.identities.ListAPITokens(ctx, args[1])
		if err != nil {
			return err
		}
		if len(tokens) == 0 {
			fmt.Println("No API tokens.")
			return nil
		}

		now := time.Now()
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATE\tISSUED\tEXPIRES")
		for _, t := range tokens {
			state := green("live")
			switch {
			case !t.Valid:
				state = red("revoked")
			case t.Expired(now):
				state = red("expired")
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				t.ID,
				state,
				t.CreatedAt.Local().Format("2006-01-02 15:04"),
				t.ExpiresAt.Local().Format("2006-01-02 15:04"),
			)
		}
		return w.Flush()

	case "revoke":
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := s.identities.RevokeToken(ctx, id); err != nil {
			return fmt.Errorf("token %d: %w", id, err)
		}
		color.Green("Revoked token %d\n", id)
		return nil

	case "revoke-all":
		n, err := s.identities.RevokeAllTokens(ctx, args[1])
		if err != nil {
			return err
		}
		color.Green("Revoked %d token(s) of %s\n", n, args[1])
		return nil

	default:
		return usageError("token list|revoke-all <email> | token revoke <tokenId>")
	}
}
