package table_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexspell/roll/internal/dice"
	"github.com/hexspell/roll/internal/table"
)

const encountersYAML = `table:
  name: encounters
  dice: 2d6
  entries:
    - min: 2
      max: 4
      result: goblin ambush
    - min: 5
      max: 9
      result: pack of wolves
    - min: 10
      max: 12
      result: young dragon
`

func TestLoadTableFromBytes(t *testing.T) {
	tb, err := table.LoadTableFromBytes([]byte(encountersYAML))
	require.NoError(t, err)

	assert.Equal(t, "encounters", tb.Name)
	assert.Equal(t, "2d6", tb.Dice)
	require.Len(t, tb.Entries, 3)
	assert.Equal(t, table.Entry{Min: 5, Max: 9, Result: "pack of wolves"}, tb.Entries[1])
}

func TestLoadTableFromBytes_BadYAML(t *testing.T) {
	_, err := table.LoadTableFromBytes([]byte("{not yaml"))
	assert.Error(t, err)
}

func TestLoadTableFromBytes_InvalidTable(t *testing.T) {
	content := `table:
  name: broken
  dice: 1d6
  entries:
    - min: 4
      max: 2
      result: backwards
`
	_, err := table.LoadTableFromBytes([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min")
}

func TestLoadTableFromFile_Missing(t *testing.T) {
	_, err := table.LoadTableFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadTablesFromDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "encounters.yaml", encountersYAML)
	writeFile(t, dir, "treasure.yml", `table:
  name: treasure
  dice: 1d4
  entries:
    - min: 1
      max: 4
      result: a handful of coins
`)
	writeFile(t, dir, "notes.txt", "not a table")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	tables, err := table.LoadTablesFromDir(dir)
	require.NoError(t, err)
	require.Len(t, tables, 2, "only .yaml and .yml files load")

	got, ok := table.Find(tables, "treasure")
	require.True(t, ok)
	assert.Equal(t, "1d4", got.Dice)
}

func TestLoadTablesFromDir_Empty(t *testing.T) {
	_, err := table.LoadTablesFromDir(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no table files")
}

func TestLoadTablesFromDir_DuplicateName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", encountersYAML)
	writeFile(t, dir, "b.yaml", encountersYAML)

	_, err := table.LoadTablesFromDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already defined")
}

func TestLoadTablesFromDir_ShippedContent(t *testing.T) {
	tables, err := table.LoadTablesFromDir(filepath.Join(repoRoot(t), "tables"))
	require.NoError(t, err)

	enc, ok := table.Find(tables, "encounters")
	require.True(t, ok, "shipped encounters table must load")
	assert.Equal(t, "2d6", enc.Dice)

	tre, ok := table.Find(tables, "treasure")
	require.True(t, ok, "shipped treasure table must load")
	assert.Equal(t, "1d20 + 4", tre.Dice)

	// The shipped tables leave no gaps, so every roll lands in a band.
	for _, tb := range []*table.Table{enc, tre} {
		out, err := tb.Roll(dice.NewSeededSource(7))
		require.NoError(t, err)
		assert.True(t, out.Matched, "%s: total %d missed every band", tb.Name, out.Total)
		assert.NotEmpty(t, out.Result)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// repoRoot walks up from the test's working directory to find the module root.
func repoRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	root := wd
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			return root
		}
		parent := filepath.Dir(root)
		if parent == root {
			t.Fatalf("could not find repo root from %s", wd)
		}
		root = parent
	}
}
