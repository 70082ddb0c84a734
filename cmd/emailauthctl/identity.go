package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/aussiebroadwan/emailauth/internal/auth/domain"
	"github.com/fatih/color"
)

func cmdIdentity(s *services, args []string) error {
	if len(args) < 2 {
		return usageError("identity show|admin <email> ...")
	}
	ctx := context.Background()

	switch args[0] {
	case "show":
		identity, err := s.identities.GetIdentityByEmail(ctx, args[1])
		if err != nil {
			return fmt.Errorf("identity %s: %w", args[1], err)
		}
		printIdentity(identity)
		return nil

	case "admin":
		if len(args) != 3 {
			return usageError("identity admin <email> on|off")
		}
		var on bool
		switch strings.ToLower(args[2]) {
		case "on", "true", "yes":
			on = true
		case "off", "false", "no":
		default:
			return usageError("identity admin <email> on|off")
		}

		identity, err := s.identities.SetAdmin(ctx, args[1], on)
		if err != nil {
			return fmt.Errorf("identity %s: %w", args[1], err)
		}
		color.Green("Admin %s for %s\n", onOff(identity.IsAdmin), identity.Email)
		return nil

	default:
		return usageError("identity show|admin <email> ...")
	}
}

func printIdentity(identity domain.Identity) {
	cyan := color.New(color.FgCyan)

	fmt.Println()
	cyan.Println("  Identity")
	cyan.Println("  --------")
	fmt.Printf("  ID:        %d\n", identity.ID)
	fmt.Printf("  Email:     %s\n", identity.Email)
	if identity.IsAdmin {
		color.New(color.FgGreen).Printf("  Admin:     yes\n")
	} else {
		fmt.Printf("  Admin:     no\n")
	}
	fmt.Printf("  Created:   %s\n", identity.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Println()
}

func cmdMembership(s *services, args []string) error {
	if len(args) < 2 {
		return usageError("membership add|remove|list <email> ...")
	}
	ctx := context.Background()

	switch args[0] {
	case "add":
		if len(args) < 3 || len(args) > 4 {
			return usageError("membership add <email> <resourceId> [role]")
		}
		resourceID, err := parseID(args[2])
		if err != nil {
			return err
		}
		role := domain.RoleMember
		if len(args) == 4 {
			var ok bool
			if role, ok = domain.ParseMembershipRole(args[3]); !ok {
				return fmt.Errorf("unknown role %q (want member or administrator)", args[3])
			}
		}

		if err := s.members.AddMembership(ctx, args[1], resourceID, role); err != nil {
			return err
		}
		color.Green("%s is now %s of resource %d\n", args[1], role, resourceID)
		return nil

	case "remove":
		if len(args) != 3 {
			return usageError("membership remove <email> <resourceId>")
		}
		resourceID, err := parseID(args[2])
		if err != nil {
			return err
		}

		if err := s.members.RemoveMembership(ctx, args[1], resourceID); err != nil {
			return err
		}
		color.Green("Removed %s from resource %d\n", args[1], resourceID)
		return nil

	case "list":
		memberships, err := s.members.ListIdentityMemberships(ctx, args[1])
		if err != nil {
			return err
		}
		if len(memberships) == 0 {
			fmt.Println("No memberships.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "RESOURCE\tROLE\tSINCE")
		for _, m := range memberships {
			fmt.Fprintf(w, "%d\t%s\t%s\n", m.ResourceID, m.Role, m.CreatedAt.Local().Format("2006-01-02"))
		}
		return w.Flush()

	default:
		return usageError("membership add|remove|list <email> ...")
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a positive integer id", s)
	}
	return id, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
