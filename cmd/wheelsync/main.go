package main

import (
	"context"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/wheelsync/internal"
	"github.com/rios0rios0/wheelsync/internal/domain/entities"
)

func buildRootCommand(appContext *internal.AppInternal) *cobra.Command {
	rootController := appContext.GetRootController()
	bind := rootController.GetBind()
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:           bind.Use,
		Short:         bind.Short,
		Long:          bind.Long,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true, // reported once by main
		RunE:          runWithoutUsage(rootController),
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().Bool("debug", false,
		"Print debug logging")

	rootController.AddFlags(cmd)
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.MaximumNArgs(1),
			RunE:  runWithoutUsage(controller),
		}
		rootCmd.AddCommand(subCmd)
	}
}

// runWithoutUsage keeps the usage text for invocation errors only: once the
// arguments are accepted, failures come from the run itself.
func runWithoutUsage(controller entities.Controller) func(*cobra.Command, []string) error {
	return func(command *cobra.Command, args []string) error {
		command.SilenceUsage = true
		return controller.Execute(command, args)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	appContext := injectAppContext()
	cobraRoot := buildRootCommand(appContext)
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.ExecuteContext(context.Background()); err != nil {
		logger.Fatalf("Error executing 'wheelsync': %s", err)
	}
}
