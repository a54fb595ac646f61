// noteboardctl manages admin accounts directly against the database file,
// for operators without a superadmin login.
package main

import (
	"fmt"
	"noteboard/database"
	"noteboard/models"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:           "noteboardctl",
		Short:         "Manage noteboard admin accounts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "./data/noteboard.db", "path to SQLite database")

	cmd.AddCommand(newCreateCommand(&dbPath))
	cmd.AddCommand(newPromoteCommand(&dbPath))
	cmd.AddCommand(newDemoteCommand(&dbPath))
	cmd.AddCommand(newDeleteCommand(&dbPath))
	cmd.AddCommand(newListCommand(&dbPath))

	return cmd
}

func openRepository(dbPath string) (*database.Repository, func(), error) {
	db, err := database.New(dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, nil, err
	}
	return database.NewRepository(db), func() { db.Close() }, nil
}

func newCreateCommand(dbPath *string) *cobra.Command {
	var username, password, email string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin user, or grant admin rights and reset the password if the user exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openRepository(*dbPath)
			if err != nil {
				return err
			}
			defer closeDB()

			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			existing, err := repo.GetUserByUsername(username)
			if err != nil {
				return err
			}
			if existing != nil {
				if err := repo.UpdatePassword(existing.ID, string(hash)); err != nil {
					return err
				}
				if err := repo.SetAdminLevel(existing.ID, models.RoleAdmin); err != nil {
					return err
				}
				cmd.Printf("Updated existing user %q and gave admin rights.\n", username)
				return nil
			}

			if email == "" {
				email = fmt.Sprintf("%s@local", username)
			}
			if _, err := repo.CreateUser(username, email, string(hash), models.RoleAdmin); err != nil {
				return err
			}
			cmd.Printf("Created admin user %q.\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username (required)")
	cmd.Flags().StringVar(&password, "password", "", "password (required)")
	cmd.Flags().StringVar(&email, "email", "", "email (defaults to <username>@local)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newPromoteCommand(dbPath *string) *cobra.Command {
	return adminLevelCommand(dbPath, "promote", "Grant admin rights to a user", models.RoleAdmin, "Promoted %q to admin.\n")
}

func newDemoteCommand(dbPath *string) *cobra.Command {
	return adminLevelCommand(dbPath, "demote", "Revoke a user's admin rights", models.RoleUser, "Demoted %q.\n")
}

func adminLevelCommand(dbPath *string, use, short string, level int, doneFormat string) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openRepository(*dbPath)
			if err != nil {
				return err
			}
			defer closeDB()

			user, err := repo.GetUserByUsername(username)
			if err != nil {
				return err
			}
			if user == nil {
				return fmt.Errorf("user %q not found", username)
			}

			if err := repo.SetAdminLevel(user.ID, level); err != nil {
				return err
			}
			cmd.Printf(doneFormat, username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username (required)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newDeleteCommand(dbPath *string) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openRepository(*dbPath)
			if err != nil {
				return err
			}
			defer closeDB()

			user, err := repo.GetUserByUsername(username)
			if err != nil {
				return err
			}
			if user == nil {
				return fmt.Errorf("user %q not found", username)
			}

			if err := repo.DeleteUser(user.ID); err != nil {
				return err
			}
			cmd.Printf("Deleted user %q.\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username (required)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newListCommand(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openRepository(*dbPath)
			if err != nil {
				return err
			}
			defer closeDB()

			users, err := repo.ListUsers()
			if err != nil {
				return err
			}

			cmd.Println("id | username | email | is_admin | created_at")
			for _, u := range users {
				cmd.Printf("%d | %s | %s | %d | %s\n", u.ID, u.Username, u.Email, u.IsAdmin, u.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}
