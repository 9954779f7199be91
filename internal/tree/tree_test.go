package tree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smalirename/internal/faults"
	"smalirename/internal/logging"
	"smalirename/internal/mapping"
	"smalirename/internal/naming"
	"smalirename/internal/testsupport"
)

func newRenamer() (*Renamer, *mapping.Mapping) {
	m := mapping.New("")
	return New(naming.DefaultRules(), m, logging.NewNop()), m
}

func TestPlanCompositeNamesShareSegments(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, map[string]string{
		"a€b.smali":     "",
		"a€b$c!d.smali": "",
		"Main.smali":    "",
	})

	r, m := newRenamer()
	plan, err := r.Plan(root)
	require.NoError(t, err)

	assert.Equal(t, 3, plan.Files)
	assert.Equal(t, []Rename{
		{Dir: root, OldName: "a€b$c!d.smali", NewName: "Class0$Class1.smali"},
		{Dir: root, OldName: "a€b.smali", NewName: "Class0.smali"},
	}, plan.Renames)
	assert.Equal(t, []mapping.Entry{
		{Old: "a€b", New: "Class0"},
		{Old: "c!d", New: "Class1"},
	}, m.Entries())
}

func TestPlanTraversesSubdirectoriesLexicographically(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, map[string]string{
		"com/b/x-y.smali":  "",
		"com/a/p q.smali":  "",
		"com/a/z.smali":    "",
		"com/Top!.smali":   "",
		"org/keep/A.smali": "",
	})

	r, m := newRenamer()
	plan, err := r.Plan(root)
	require.NoError(t, err)

	assert.Equal(t, 5, plan.Files)
	assert.Equal(t, 5, plan.Directories)
	require.Len(t, plan.Renames, 3)
	assert.Equal(t, []mapping.Entry{
		{Old: "Top!", New: "Class0"},
		{Old: "p q", New: "Class1"},
		{Old: "x-y", New: "Class2"},
	}, m.Entries())
	assert.Equal(t, filepath.Join(root, "com", "a"), plan.Renames[1].Dir)
}

func TestPlanKeepsNamesThatOnlyFailLeafShape(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, map[string]string{
		"Outer$1.smali": "",
		"1Main.smali":   "",
		"A$$B.smali":    "",
	})

	r, m := newRenamer()
	plan, err := r.Plan(root)
	require.NoError(t, err)
	assert.Empty(t, plan.Renames)
	assert.Zero(t, m.Len())
}

func TestPlanRejectsFileWithoutExtension(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, map[string]string{
		"a€b.smali":    "",
		"z/README.txt": "",
	})

	r, _ := newRenamer()
	_, err := r.Plan(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrStructural)
	assert.Contains(t, err.Error(), "only .smali files allowed")
	assert.FileExists(t, filepath.Join(root, "a€b.smali"))
}

func TestPlanRejectsInvalidDirectoryName(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, map[string]string{"com/bad-dir/A.smali": ""})

	r, _ := newRenamer()
	_, err := r.Plan(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrStructural)
	assert.Contains(t, err.Error(), "U+002D HYPHEN-MINUS")
}

func TestPlanRejectsSymlink(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, map[string]string{"A.smali": ""})
	require.NoError(t, os.Symlink(filepath.Join(root, "A.smali"), filepath.Join(root, "B.smali")))

	r, _ := newRenamer()
	_, err := r.Plan(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrStructural)
}

func TestPlanRejectsInvalidUTF8Name(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, map[string]string{"a\xffb.smali": ""})

	r, _ := newRenamer()
	_, err := r.Plan(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrStructural)
}

func TestPlanDetectsExistingTarget(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, map[string]string{
		"a€b.smali":    "",
		"Class0.smali": "",
	})

	r, _ := newRenamer()
	_, err := r.Plan(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrConflict)
}

func TestPlanAllowsGeneratedNameMatchingClassInOtherDirectory(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, map[string]string{
		"com/x/Class0.smali":       "",
		"com/y/a€b.smali":          "",
		"com/z/Outer$Class0.smali": "",
	})

	r, m := newRenamer()
	plan, err := r.Plan(root)
	require.NoError(t, err)
	assert.Equal(t, []Rename{
		{Dir: filepath.Join(root, "com", "y"), OldName: "a€b.smali", NewName: "Class0.smali"},
	}, plan.Renames)
	assert.Equal(t, []mapping.Entry{{Old: "a€b", New: "Class0"}}, m.Entries())

	_, err = r.Apply(plan)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "com", "x", "Class0.smali"))
	assert.FileExists(t, filepath.Join(root, "com", "y", "Class0.smali"))
}

func TestPlanDetectsGeneratedNameAliasingClassInSameDirectory(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, map[string]string{
		"p/Class0$Inner.smali": "",
		"p/a€b.smali":          "",
	})

	r, _ := newRenamer()
	_, err := r.Plan(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrConflict)
	assert.Contains(t, err.Error(), "already names a class in this directory")
}

func TestPlanAcceptsBareExtensionLeaf(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, map[string]string{".smali": ""})

	r, m := newRenamer()
	plan, err := r.Plan(root)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Files)
	assert.Empty(t, plan.Renames)
	assert.Zero(t, m.Len())
}

func TestApplyRenamesFiles(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, map[string]string{
		"p/a€b.smali":     "one",
		"p/a€b$c!d.smali": "two",
	})

	r, _ := newRenamer()
	plan, err := r.Plan(root)
	require.NoError(t, err)
	applied, err := r.Apply(plan)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	assert.Equal(t, map[string]string{
		"p/Class0.smali":        "one",
		"p/Class0$Class1.smali": "two",
	}, testsupport.ReadTree(t, root))
}

func TestSecondPlanIsEmpty(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, map[string]string{"a€b.smali": ""})

	r, _ := newRenamer()
	plan, err := r.Plan(root)
	require.NoError(t, err)
	_, err = r.Apply(plan)
	require.NoError(t, err)

	again, m := newRenamer()
	plan, err = again.Plan(root)
	require.NoError(t, err)
	assert.Empty(t, plan.Renames)
	assert.Zero(t, m.Len())
}

func TestLeafFilesSorted(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTree(t, root, map[string]string{
		"b/B.smali": "",
		"a/Z.smali": "",
		"A.smali":   "",
	})
	files, err := LeafFiles(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "A.smali"),
		filepath.Join(root, "a", "Z.smali"),
		filepath.Join(root, "b", "B.smali"),
	}, files)
}
