package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/go-task-tracker/internal/app"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskmanager",
		Short: "Task tracker API server",
		PersistentPreRun: func(*cobra.Command, []string) {
			app.InitDefaultLogger()
			app.MustReadEnv()
			app.MustInitApplicationLogger()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(usersCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the task API over HTTP",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			app.MustConnectStorage()
			defer app.DisconnectStorage()

			app.MustConnectRedis()
			defer app.DisconnectRedis()

			app.MustListenAndServeHTTP()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the postgres schema",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			app.MustConnectPostgres()
			defer app.DisconnectPostgres()

			app.MustMigratePostgres()
		},
	}
}

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage provisioned users",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [external-id]",
		Short: "Delete a user and every task the user owns",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			app.MustConnectStorage()
			defer app.DisconnectStorage()

			app.MustConnectRedis()
			defer app.DisconnectRedis()

			app.MustDeleteUser(args[0])
		},
	})
	return cmd
}
