package compiler

import (
	"fmt"
	"path"

	"github.com/vvka-141/pgm/internal/project"
)

// CompileSeed assembles every seed script, in filename order, into one
// transactional block. Seeds are not tracked: they must be written to
// be re-runnable on their own.
func (c *Compiler) CompileSeed(projectDir string) (string, error) {
	if err := c.checkProjectDir(projectDir); err != nil {
		return "", err
	}

	seeds, err := c.scanner.ScanSeeds(projectDir)
	if err != nil {
		return "", err
	}

	var body string
	for _, seed := range seeds {
		source := path.Join(projectDir, project.SeedsDir, seed.Name)
		body += fmt.Sprintf(
			"-- RUN %s --\n"+
				"%s\n"+
				"RAISE NOTICE '✅ Applied seed: %s';\n"+
				"-- DONE %s --\n",
			source, seed.Body, quote(seed.Name), source)
	}

	c.logger.Verbose("Compiled %d seed script(s) from %s", len(seeds), projectDir)
	return "DO $pgm_seed$ BEGIN\n" +
		"SET LOCAL client_min_messages = notice;\n" +
		body +
		"END $pgm_seed$;", nil
}
