package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vvka-141/pgm/internal/files/filesystem"
	"github.com/vvka-141/pgm/internal/logging"
	"github.com/vvka-141/pgm/internal/scaffold"
	"github.com/vvka-141/pgm/internal/ui"
	"github.com/vvka-141/pgm/pkg/pgm"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new database object file",
	Long: `Create adds a new file to the project:

  migration  next empty sequence file under migrations/
  seed       next empty sequence file under seeds/
  function   functions/<name>.sql from the function template
  trigger    triggers/<name>.sql from the trigger function template
  view       views/<name>.sql from the view template

When a named artifact file already exists you are asked before it is
reset to the template (--force or a non-interactive stdin skips the
question).`,
}

type createFlagValues struct {
	path  string
	force bool
}

var createFlags createFlagValues

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.PersistentFlags().StringVar(&createFlags.path, "path", pgm.DefaultProjectDir,
		"Path to the managed project directory")

	createMigrationCmd := &cobra.Command{
		Use:   "migration",
		Short: "Create a new empty migration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateSequenced(cmd, "Migration", (*scaffold.Scaffolder).CreateMigration)
		},
	}
	createSeedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a new empty seed file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateSequenced(cmd, "Seed", (*scaffold.Scaffolder).CreateSeed)
		},
	}
	createCmd.AddCommand(createMigrationCmd, createSeedCmd)

	for _, category := range pgm.Categories() {
		category := category
		objectCmd := &cobra.Command{
			Use:   fmt.Sprintf("%s <name>", category),
			Short: fmt.Sprintf("Create a new %s from the template", category),
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCreateObject(cmd, category, args[0])
			},
		}
		objectCmd.Flags().BoolVar(&createFlags.force, "force", false,
			"Reset an existing file without asking")
		createCmd.AddCommand(objectCmd)
	}
}

func runCreateSequenced(cmd *cobra.Command, kind string, create func(*scaffold.Scaffolder, string) (string, error)) error {
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	scaffolder := scaffold.NewScaffolder(filesystem.NewOSFileSystem(), logger)

	filename, err := create(scaffolder, createFlags.path)
	if err != nil {
		return err
	}

	fmt.Printf("%s '%s' created successfully\n", kind, filename)
	return nil
}

func runCreateObject(cmd *cobra.Command, category pgm.ObjectCategory, name string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)
	scaffolder := scaffold.NewScaffolder(filesystem.NewOSFileSystem(), logger)
	approver := ui.SelectApprover(createFlags.force, verbose)

	created, err := scaffolder.CreateObject(cmd.Context(), createFlags.path, category, name, approver)
	if err != nil {
		return err
	}
	if !created {
		fmt.Printf("%s creation aborted.\n", titleCase(category.String()))
		return nil
	}

	fmt.Printf("%s '%s' created successfully\n", titleCase(category.String()), name)
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
