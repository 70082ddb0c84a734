package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aussiebroadwan/emailauth/pkg/authsdk"
	"github.com/fatih/color"
)

// cmdLogin requests a code, prompts for it and prints the API token.
func cmdLogin(baseURL string, args []string) error {
	if len(args) != 1 {
		return usageError("login <email>")
	}
	email := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	client := authsdk.NewSDKClient(baseURL)

	err := client.RequestCode(ctx, email)
	switch {
	case errors.Is(err, authsdk.ErrCodePending):
		color.Yellow("A code was already sent to %s and is still valid.\n", email)
	case err != nil:
		return err
	default:
		color.Cyan("A code was sent to %s.\n", email)
	}

	fmt.Print("Code: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading code: %w", err)
	}

	session, err := client.Exchange(ctx, email, strings.TrimSpace(line))
	if err != nil {
		return err
	}

	me, err := session.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	color.Green("Signed in as identity %d (token %d)\n", me.IdentityID, me.TokenID)
	fmt.Printf("Expires: %s\n", session.ExpiresAt().Local().Format(time.RFC1123))
	fmt.Println()
	fmt.Println(session.Carrier())
	return nil
}
