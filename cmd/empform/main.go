package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"empform/internal/app/server"
	"empform/internal/console"
	"empform/internal/domain/employee"
	"empform/internal/platform/config"
	"empform/internal/platform/recordfile"
	"empform/internal/transport/http/shared"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string
	cfg := config.Config{}

	root := &cobra.Command{
		Use:   "empform",
		Short: "Employee registration form with text file records",
		Long: `Employee registration form with text file records.

Environment variables:
  APP_ADDR=:8080
  OUTPUT_DIR=records
  CATALOG_FILE=
  OPEN_SAVED_FILES=false
  LOG_LEVEL=info`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded := config.Load(envFile)
			if cmd.Flags().Changed("output-dir") {
				loaded.OutputDir = cfg.OutputDir
			}
			if cmd.Flags().Changed("addr") {
				loaded.Addr = cfg.Addr
			}
			cfg = loaded
			return cfg.Validate()
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().StringVar(&cfg.OutputDir, "output-dir", "records", "directory where record files are saved")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
			slog.SetDefault(logger)

			app, err := server.New(cfg, logger)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx)
		},
	}
	serve.Flags().StringVar(&cfg.Addr, "addr", ":8080", "listen address")

	form := &cobra.Command{
		Use:   "form",
		Short: "Fill in employees from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

			service, err := server.NewService(cfg, nil)
			if err != nil {
				return err
			}
			prompter := console.NewLinePrompter()
			defer prompter.Close()
			return console.NewForm(service, prompter, cmd.OutOrStdout(), cfg.OutputDir).Run(context.Background())
		},
	}

	root.AddCommand(serve, form, newRenderCommand(&cfg))
	return root
}

// newRenderCommand prints the record block for the given values without
// writing a file. Values are validated the same way a save is.
func newRenderCommand(cfg *config.Config) *cobra.Command {
	var in employee.Input
	var hireDate string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the record file contents for the given field values",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := shared.ParseDate(hireDate)
			if err != nil {
				return fmt.Errorf("hire date: %w", err)
			}
			in.HireDate = parsed
			if in.HireDate.IsZero() {
				in.HireDate = time.Now()
			}

			catalog, err := employee.LoadCatalog(cfg.CatalogFile)
			if err != nil {
				return err
			}
			if fe := employee.Validate(in, catalog); fe != nil {
				return fe
			}
			rec := employee.NewRecord(in)
			rec.Position, _ = catalog.Position(rec.Position)
			if gender, ok := catalog.Gender(rec.Gender); ok {
				rec.Gender = gender
			}
			rec.RegisteredAt = time.Now()
			_, err = cmd.OutOrStdout().Write(recordfile.Format(rec))
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&in.ID, "id", "", "employee id")
	flags.StringVar(&in.FirstName, "first-name", "", "first name")
	flags.StringVar(&in.LastName, "last-name", "", "last name")
	flags.StringVar(&in.Address, "address", "", "address")
	flags.StringVar(&in.Phone, "phone", "", "phone, 7-15 digits")
	flags.StringVar(&in.Email, "email", "", "email")
	flags.StringVar(&in.Salary, "salary", "", "salary")
	flags.StringVar(&in.Position, "position", "", "position")
	flags.StringVar(&in.Gender, "gender", "", "gender")
	flags.StringVar(&hireDate, "hire-date", "", "hire date, YYYY-MM-DD or DD/MM/YYYY")
	return cmd
}
