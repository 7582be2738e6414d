package compiler

import (
	"github.com/vvka-141/pgm/pkg/pgm"
)

// BuildFake assembles the bookkeeping-only variant: every artifact's
// hash is upserted and every migration inserted into the ledger, with
// no object body ever executed. Used to retrofit tracking onto a
// database whose schema already exists.
func (c *Compiler) BuildFake(projectDir string) (*Builder, error) {
	if err := c.checkProjectDir(projectDir); err != nil {
		return nil, err
	}

	b := NewBuilder()
	b.Add(Fragment{Stage: StagePrologue, Body: "DO $pgm$ BEGIN\n"})
	b.Add(Fragment{Stage: StageTracking, Body: trackingTablesSQL})

	for _, category := range pgm.Categories() {
		objects, err := c.scanner.ScanObjects(projectDir, category)
		if err != nil {
			return nil, err
		}
		for _, obj := range objects {
			b.Add(Fragment{
				Stage: StageObjectsFirstPass,
				Guard: GuardUpsert,
				Table: obj.Category.Table(),
				Name:  obj.Name,
				Hash:  obj.Hash,
			})
		}
	}

	migrations, err := c.scanner.ScanMigrations(projectDir)
	if err != nil {
		return nil, err
	}
	for _, m := range migrations {
		b.Add(Fragment{
			Stage: StageMigrations,
			Guard: GuardUpsert,
			Table: pgm.MigrationTable,
			Name:  m.Name,
		})
	}

	b.Add(Fragment{Stage: StageEpilogue, Body: "END $pgm$;\n"})
	return b, nil
}

// CompileFake renders the fake-apply script.
func (c *Compiler) CompileFake(projectDir string) (string, error) {
	b, err := c.BuildFake(projectDir)
	if err != nil {
		return "", err
	}
	c.logger.Verbose("Compiled fake-apply script with %d fragment(s)", len(b.Fragments()))
	return b.Render(false), nil
}
