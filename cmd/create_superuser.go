package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/lukasmoe/recipebox/internal/config"
	"github.com/lukasmoe/recipebox/internal/database"
	"github.com/spf13/cobra"
)

var createSuperuserFlags struct {
	Email    string
	Password string
	Name     string
}

var createSuperuserCmd = &cobra.Command{
	Use:   "create-superuser",
	Short: "Create a user account with staff and superuser privileges",
	Run:   createSuperuser,
}

func init() {
	createSuperuserCmd.Flags().StringVar(&createSuperuserFlags.Email, "email", "", "Email address for the new superuser")
	createSuperuserCmd.Flags().StringVar(&createSuperuserFlags.Password, "password", "", "Password for the new superuser")
	createSuperuserCmd.Flags().StringVar(&createSuperuserFlags.Name, "name", "", "Display name for the new superuser")
	_ = createSuperuserCmd.MarkFlagRequired("email")
	_ = createSuperuserCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createSuperuserCmd)
}

func createSuperuser(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close() //nolint: errcheck

	user, err := db.CreateSuperuser(cmd.Context(), createSuperuserFlags.Email, createSuperuserFlags.Password, createSuperuserFlags.Name)
	if err != nil {
		log.Fatalf("failed to create superuser: %v", err)
	}
	log.Info("superuser created", "email", user.Email)
}
