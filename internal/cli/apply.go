package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vvka-141/pgm/internal/checksum"
	"github.com/vvka-141/pgm/internal/compiler"
	"github.com/vvka-141/pgm/internal/db"
	"github.com/vvka-141/pgm/internal/executor"
	"github.com/vvka-141/pgm/internal/files/filesystem"
	"github.com/vvka-141/pgm/internal/logging"
	"github.com/vvka-141/pgm/internal/project"
	"github.com/vvka-141/pgm/pkg/pgm"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Compile the project and apply it to the database",
	Long: `Apply compiles the whole project directory into one idempotent SQL
script and executes it in a single transaction.

The compiled script is hash-gated: functions, triggers, and views are only
re-applied when their file content changed, and migrations are only applied
once. Re-running apply against an unchanged project is a no-op.

Examples:
  # Apply the default ./postgres directory
  pgm apply -d mydb

  # Inspect the compiled script without touching the database
  pgm apply --dry-run

  # Mark everything as applied without executing any body
  pgm apply --fake -d mydb

  # Connection via string
  pgm apply --connection "postgresql://user@localhost:5432/mydb"`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

type applyFlagValues struct {
	path   string
	dryRun bool
	fake   bool
	conn   connFlagValues
}

var applyFlags applyFlagValues

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVar(&applyFlags.path, "path", pgm.DefaultProjectDir,
		"Path to the managed project directory")
	applyCmd.Flags().BoolVar(&applyFlags.dryRun, "dry-run", false,
		"Print the compiled SQL to stdout instead of executing it\n"+
			"Comment markers are kept for human review")
	applyCmd.Flags().BoolVar(&applyFlags.fake, "fake", false,
		"Only update the pgm_ tracking tables without executing any SQL body\n"+
			"Useful when adopting pgm on a database that already matches the project")
	registerConnectionFlags(applyCmd, &applyFlags.conn)
}

func runApply(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	fsProvider := filesystem.NewOSFileSystem()
	scanner := project.NewScanner(fsProvider, checksum.New(), logger)
	comp := compiler.NewCompiler(fsProvider, scanner, logger)

	var script string
	var err error
	switch {
	case applyFlags.dryRun:
		script, err = comp.Compile(applyFlags.path, false)
	case applyFlags.fake:
		script, err = comp.CompileFake(applyFlags.path)
	default:
		script, err = comp.Compile(applyFlags.path, true)
	}
	if err != nil {
		return err
	}

	if applyFlags.dryRun {
		fmt.Print(script)
		return nil
	}

	if err := executeScript(cmd, &applyFlags.conn, applyFlags.path, script, verbose, logger); err != nil {
		return err
	}

	fmt.Println("Changes applied successfully")
	return nil
}

// executeScript resolves the connection, builds the executor, and runs
// one compiled script under a timeout with signal handling. Shared by
// apply and seed.
func executeScript(cmd *cobra.Command, connFlags *connFlagValues, projectDir, script string, verbose bool, logger pgm.Logger) error {
	connConfig, projectCfg, err := resolveConnection(connFlags, projectDir, verbose)
	if err != nil {
		return err
	}

	timeout, err := resolveTimeout(cmd, connFlags.timeout, projectCfg)
	if err != nil {
		return err
	}

	applyCfg := &pgm.ApplyConfig{
		ProjectDir:       projectDir,
		ConnectionString: db.BuildConnectionString(connConfig),
		Timeout:          timeout,
		Verbose:          verbose,
		AuthMethod:       connConfig.AuthMethod,
	}
	if err := applyCfg.Validate(); err != nil {
		return err
	}

	// Script progress notices (applied/skipped lines) are relayed to stderr
	// as the server raises them.
	connector, err := db.NewConnector(connConfig, func(message string) {
		logger.Info("%s", message)
	})
	if err != nil {
		return err
	}
	exec := executor.NewPoolExecutor(connector, logger)

	ctx, cancel := signalContext(timeout)
	defer cancel()

	return exec.Execute(ctx, script)
}

// signalContext returns a context bounded by the timeout and cancelled
// on SIGINT/SIGTERM for graceful shutdown.
func signalContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
