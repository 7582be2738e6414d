package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vvka-141/pgm/internal/db"
	"github.com/vvka-141/pgm/internal/dump"
	"github.com/vvka-141/pgm/internal/files/filesystem"
	"github.com/vvka-141/pgm/internal/logging"
	"github.com/vvka-141/pgm/internal/project"
	"github.com/vvka-141/pgm/internal/scaffold"
	"github.com/vvka-141/pgm/internal/tokenizer"
	"github.com/vvka-141/pgm/pkg/pgm"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize the managed directory tree",
	Long: `Init creates the directory tree pgm manages:

  <path>/
    migrations/
    functions/
    triggers/
    views/
    seeds/

With --existing-db the current database schema is exported with pg_dump,
split into function, trigger, and view files, and the remaining
definitions become the bootstrap migration (migrations/00000.sql).

Init refuses to run when <path> already exists.

Examples:
  pgm init
  pgm init ./db
  pgm init --existing-db -d mydb -H localhost -U postgres`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

type initFlagValues struct {
	existingDB bool
	conn       connFlagValues
}

var initFlags initFlagValues

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initFlags.existingDB, "existing-db", false,
		"Initialize from an existing database using pg_dump")
	registerConnectionFlags(initCmd, &initFlags.conn)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := pgm.DefaultProjectDir
	if len(args) == 1 {
		path = args[0]
	}

	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)
	fsProvider := filesystem.NewOSFileSystem()

	scaffolder := scaffold.NewScaffolder(fsProvider, logger)
	if err := scaffolder.InitProject(path); err != nil {
		return err
	}

	if initFlags.existingDB {
		if err := initFromExistingDB(cmd, path, verbose, logger, fsProvider); err != nil {
			return err
		}
	}

	fmt.Println("Initialized successfully")
	return nil
}

// initFromExistingDB dumps the connected database's schema, splits it
// into artifact files, and writes the residual as the bootstrap
// migration.
func initFromExistingDB(cmd *cobra.Command, path string, verbose bool, logger pgm.Logger, fsProvider filesystem.FileSystemProvider) error {
	connConfig, projectCfg, err := resolveConnection(&initFlags.conn, path, verbose)
	if err != nil {
		return err
	}
	timeout, err := resolveTimeout(cmd, initFlags.conn.timeout, projectCfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(timeout)
	defer cancel()

	dumper := dump.NewPGDump(db.BuildConnectionString(connConfig), logger)
	text, err := dumper.Dump(ctx)
	if err != nil {
		return err
	}

	result, err := tokenizer.NewTokenizer(logger).Tokenize(text)
	if err != nil {
		return err
	}

	objects := make([]pgm.SQLObject, len(result.Objects))
	for i, obj := range result.Objects {
		objects[i] = pgm.SQLObject{
			Category: obj.Category,
			Name:     obj.Name,
			Body:     obj.Body,
		}
	}

	writer := project.NewWriter(fsProvider, logger)
	if err := writer.WriteArtifacts(path, objects, result.Bootstrap); err != nil {
		return err
	}

	logger.Info("Extracted %d schema objects into %s", len(objects), path)
	return nil
}
