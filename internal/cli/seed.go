package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vvka-141/pgm/internal/checksum"
	"github.com/vvka-141/pgm/internal/compiler"
	"github.com/vvka-141/pgm/internal/files/filesystem"
	"github.com/vvka-141/pgm/internal/logging"
	"github.com/vvka-141/pgm/internal/project"
	"github.com/vvka-141/pgm/pkg/pgm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with data",
	Long: `Seed compiles every script under <path>/seeds (sorted) into one
block and executes it. Seeds are not tracked: they run on every
invocation, so they should be written to be re-runnable.

Examples:
  pgm seed -d mydb
  pgm seed --path ./postgres --connection "postgresql://user@localhost/mydb"`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

type seedFlagValues struct {
	path string
	conn connFlagValues
}

var seedFlags seedFlagValues

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedFlags.path, "path", pgm.DefaultProjectDir,
		"Path to the managed project directory")
	registerConnectionFlags(seedCmd, &seedFlags.conn)
}

func runSeed(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	fsProvider := filesystem.NewOSFileSystem()
	scanner := project.NewScanner(fsProvider, checksum.New(), logger)
	comp := compiler.NewCompiler(fsProvider, scanner, logger)

	script, err := comp.CompileSeed(seedFlags.path)
	if err != nil {
		return err
	}

	if err := executeScript(cmd, &seedFlags.conn, seedFlags.path, script, verbose, logger); err != nil {
		return err
	}

	fmt.Println("Database seeded successfully")
	return nil
}
