package main

import (
	"errors"
	"fmt"
	"strconv"

	"pet-translator/internal/domain/profiles"

	"github.com/spf13/cobra"
)

func (a *app) pointsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "points",
		Short: "Inspect or adjust treat points",
		Long: `Inspect or adjust a user's treat points.

"set" is the only way to lower a balance; translations and the
increment function only ever add.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <user-id>",
		Short: "Print points and streak for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withProfiles(func(svc *profiles.Service) error {
				p, err := svc.Get(cmd.Context(), args[0])
				if err != nil {
					return describe(args[0], err)
				}
				fmt.Fprintf(a.out, "%s\tpoints=%d\tstreak=%d\tpremium=%t\n", p.ID, p.TreatPoints, p.DailyStreak, p.IsPremium)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <user-id> <points>",
		// los valores negativos ("-3") llegan como argumento y los rechaza el servicio
		DisableFlagParsing: true,
		Short: "Add treat points (points > 0)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parsePoints(args[1])
			if err != nil {
				return err
			}
			return a.withProfiles(func(svc *profiles.Service) error {
				total, err := svc.AddTreatPoints(cmd.Context(), args[0], n)
				if err != nil {
					return describe(args[0], err)
				}
				a.log.Info("treat points added", map[string]any{"user_id": args[0], "points": n, "new_total": total})
				fmt.Fprintf(a.out, "%s\tpoints=%d\n", args[0], total)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <user-id> <total>",
		// los valores negativos ("-3") llegan como argumento y los rechaza el servicio
		DisableFlagParsing: true,
		Short: "Overwrite the treat points balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parsePoints(args[1])
			if err != nil {
				return err
			}
			return a.withProfiles(func(svc *profiles.Service) error {
				if err := svc.SetTreatPoints(cmd.Context(), args[0], n); err != nil {
					return describe(args[0], err)
				}
				a.log.Warn("treat points overwritten", map[string]any{"user_id": args[0], "total": n})
				fmt.Fprintf(a.out, "%s\tpoints=%d\n", args[0], n)
				return nil
			})
		},
	})

	return cmd
}

func (a *app) withProfiles(fn func(svc *profiles.Service) error) error {
	repo, closeFn, err := a.openProfiles()
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()
	return fn(profiles.NewService(repo))
}

func parsePoints(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("points must be an integer, got %q", s)
	}
	return n, nil
}

func describe(userID string, err error) error {
	switch {
	case errors.Is(err, profiles.ErrNotFound):
		return fmt.Errorf("profile %q not found", userID)
	case errors.Is(err, profiles.ErrInvalidInput):
		return fmt.Errorf("invalid input for %q: %w", userID, err)
	default:
		return err
	}
}
