// Command emailauthctl administers identities, memberships and tokens of an
// emailauth database, and can sign in against a running service.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aussiebroadwan/emailauth/internal/auth/service"
	"github.com/aussiebroadwan/emailauth/internal/auth/store/drivers/sqlite"
	"github.com/fatih/color"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "identity":
		err = withServices(func(s *services) error { return cmdIdentity(s, args) })
	case "membership":
		err = withServices(func(s *services) error { return cmdMembership(s, args) })
	case "token":
		err = withServices(func(s *services) error { return cmdToken(s, args) })
	case "login":
		err = cmdLogin(serverURL(), args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	yellow := color.New(color.FgYellow)

	fmt.Println("Usage: emailauthctl <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  identity show <email>                        Show an identity")
	fmt.Println("  identity admin <email> on|off                Grant or remove admin")
	fmt.Println("  membership add <email> <resourceId> [role]   Add a membership (role: member, administrator)")
	fmt.Println("  membership remove <email> <resourceId>       Remove a membership")
	fmt.Println("  membership list <email>                      List memberships of an identity")
	fmt.Println("  token list <email>                           List API tokens of an identity")
	fmt.Println("  token revoke <tokenId>                       Revoke one API token")
	fmt.Println("  token revoke-all <email>                     Revoke every API token of an identity")
	fmt.Println("  login <email>                                Sign in against a running service")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  AUTH_DATABASE_FILE   SQLite database (default: auth.db)")
	fmt.Println("  EMAILAUTH_URL        Service URL for login (default: http://localhost:8080)")
	fmt.Println()
}

type services struct {
	identities *service.IdentityService
	members    *service.MembershipService
}

// withServices opens the database for the duration of fn.
func withServices(fn func(*services) error) error {
	path := os.Getenv("AUTH_DATABASE_FILE")
	if path == "" {
		path = "auth.db"
	}

	st, err := sqlite.NewStore(sqlite.DSN(path))
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer st.Close()

	if err := st.Ping(context.Background()); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if err := st.ApplyMigrations(); err != nil {
		return fmt.Errorf("migrating %s: %w", path, err)
	}

	return fn(&services{
		identities: &service.IdentityService{Store: st},
		members:    &service.MembershipService{Store: st},
	})
}

func serverURL() string {
	if u := os.Getenv("EMAILAUTH_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func usageError(usage string) error {
	return errors.New("usage: emailauthctl " + usage)
}
