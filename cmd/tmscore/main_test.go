package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BurntSushi/tmscore/apps/tmscore"
	"github.com/BurntSushi/tmscore/xyz"
)

// stubTMscore writes a script that prints the canned reports of a structure
// and its mirror image, and logs each of its invocations to the file calls.
func stubTMscore(t *testing.T) (bin, calls string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts cannot stand in for TMscore on windows")
	}
	dir := t.TempDir()
	bin, calls = filepath.Join(dir, "TMscore"), filepath.Join(dir, "calls")
	writeStub(t, bin, calls, "")
	return bin, calls
}

// writeStub (re)writes the script at bin. The extra line changes the
// script's contents without changing what it does.
func writeStub(t *testing.T, bin, calls, extra string) {
	t.Helper()
	testdata, err := filepath.Abs("../../apps/tmscore/testdata")
	require.NoError(t, err)

	script := `#!/bin/sh
` + extra + `
echo "$@" >> "` + calls + `"
for arg in "$@"; do
	if [ "$arg" = "-mirror" ]; then
		exec cat "` + testdata + `/reflected_mirror.out"
	fi
done
exec cat "` + testdata + `/reflected_original.out"
`
	require.NoError(t, os.WriteFile(bin, []byte(script), 0755))
}

// countLines returns the number of lines in the file at path, which need
// not exist.
func countLines(t *testing.T, path string) int {
	t.Helper()
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0
	}
	require.NoError(t, err)
	return strings.Count(string(b), "\n")
}

// resetFlags sets every flag of cmd and its subcommands back to its default,
// since flag values (and whether they were given) outlive Execute.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the command line args with a configuration file that doesn't
// exist and no flags left over from earlier calls.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"TMSCORE_BIN", "TMSCORE_LOG_LEVEL", "TMSCORE_DB"} {
		t.Setenv(key, "")
	}
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	config := filepath.Join(t.TempDir(), "config.yaml")
	rootCmd.SetArgs(append([]string{"--config", config}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCompareCommand(t *testing.T) {
	bin, calls := stubTMscore(t)
	dir := t.TempDir()
	x, y := filepath.Join(dir, "x.pdb"), filepath.Join(dir, "y.pdb")
	require.NoError(t, os.WriteFile(x, []byte("v1"), 0644))
	require.NoError(t, os.WriteFile(y, []byte("native"), 0644))
	db := filepath.Join(dir, "results.db")

	compare := func(flags ...string) string {
		t.Helper()
		args := append([]string{"compare", "--binary", bin}, flags...)
		out, err := execute(t, append(args, x, y)...)
		require.NoError(t, err)
		return out
	}

	out := compare("--db", db)
	assert.True(t, strings.HasPrefix(out, "TM-score:\t1\n"), "got %q", out)
	assert.Equal(t, 2, countLines(t, calls))

	// The second run is answered from the database.
	assert.Equal(t, out, compare("--db", db))
	assert.Equal(t, 2, countLines(t, calls))

	// --no-mirror is a different comparison, and it doesn't carry over to
	// the next command.
	single := compare("--db", db, "--no-mirror")
	assert.True(t, strings.HasPrefix(single, "TM-score:\t0.6043\n"),
		"got %q", single)
	assert.Equal(t, 3, countLines(t, calls))
	assert.Equal(t, out, compare("--db", db))
	assert.Equal(t, 3, countLines(t, calls))

	// Editing a structure invalidates its results...
	require.NoError(t, os.WriteFile(x, []byte("v2"), 0644))
	compare("--db", db)
	assert.Equal(t, 5, countLines(t, calls))

	// ...as does replacing TMscore.
	writeStub(t, bin, calls, "# rebuilt")
	compare("--db", db)
	assert.Equal(t, 7, countLines(t, calls))
	compare("--db", db)
	assert.Equal(t, 7, countLines(t, calls))

	// Without --db, TMscore always runs.
	compare()
	assert.Equal(t, 9, countLines(t, calls))

	// Results can't be looked up for a TMscore that doesn't exist.
	require.NoError(t, os.Remove(bin))
	_, err := execute(t, "compare", "--binary", bin, "--db", db, x, y)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestResetFlags(t *testing.T) {
	require.NoError(t, compareCmd.Flags().Set("no-mirror", "true"))
	require.NoError(t, compareCmd.Flags().Set("db", "results.db"))
	require.NoError(t, rootCmd.PersistentFlags().Set("verbose", "true"))

	resetFlags(rootCmd)
	assert.False(t, compareFlags.noMirror)
	assert.Empty(t, compareFlags.db)
	assert.False(t, verbose)
	assert.False(t, compareCmd.Flags().Changed("db"))
	assert.False(t, rootCmd.PersistentFlags().Changed("verbose"))
}

func TestEncodeMirrorCommands(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "coords.txt")
	require.NoError(t, os.WriteFile(in,
		[]byte("1.5 2 3\n-4 5 6.25\n"), 0644))

	encoded := filepath.Join(dir, "coords.xyz")
	_, err := execute(t, "encode", in, encoded)
	require.NoError(t, err)
	coords, err := xyz.ReadFile(encoded)
	require.NoError(t, err)
	assert.Equal(t, []xyz.Coords{{1.5, 2, 3}, {-4, 5, 6.25}}, coords)

	mirrored := filepath.Join(dir, "mirrored.xyz")
	_, err = execute(t, "mirror", "--axis", "2", encoded, mirrored)
	require.NoError(t, err)
	coords, err = xyz.ReadFile(mirrored)
	require.NoError(t, err)
	assert.Equal(t, []xyz.Coords{{1.5, 2, -3}, {-4, 5, -6.25}}, coords)

	out, err := execute(t, "mirror", "--axis", "2", encoded, "-")
	require.NoError(t, err)
	assert.Equal(t,
		"2\n\n"+
			"C      1.5      2.0     -3.0\n"+
			"C     -4.0      5.0    -6.25\n",
		out)

	_, err = execute(t, "mirror", "--axis", "3", encoded, mirrored)
	assert.Error(t, err)
}

func TestReadPairs(t *testing.T) {
	pairs, names, err := readPairs(strings.NewReader(
		"# model, native\na.pdb, /data/b.pdb\n/c.xyz,d.pdb\n"))
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, [2]string{filepath.Join(wd, "a.pdb"), "/data/b.pdb"}, names[0])
	assert.Equal(t, tmscore.File(names[1][1]), pairs[1].Y)

	_, _, err = readPairs(strings.NewReader("a.pdb,b.pdb,c.pdb\n"))
	assert.Error(t, err)
}

func TestWriteResults(t *testing.T) {
	var res tmscore.Result
	res.TMScore, res.GDTTS, res.GDTHA, res.RMSD, res.MaxSub =
		0.6043, 0.925, 0.825, 1.54, 0.8703
	res.Best = tmscore.Original

	var out bytes.Buffer
	failed, err := writeResults(&out,
		[][2]string{{"a", "b"}, {"c", "d"}},
		[]*tmscore.Comparison{{Result: res}, nil},
		[]error{nil, errors.New("boom")})
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	assert.Equal(t,
		"x,y,tm_score,gdt_ts,gdt_ha,rmsd,maxsub,best,error\n"+
			"a,b,0.6043,0.925,0.825,1.54,0.8703,original,\n"+
			"c,d,,,,,,,boom\n",
		out.String())
}

func TestRMSDCommandArgs(t *testing.T) {
	_, err := execute(t, "rmsd", "a.pdb")
	assert.EqualError(t, err, "accepts 2 or 8 args, received 1")
}

func TestHelpDescribesMirrorRun(t *testing.T) {
	for _, args := range [][]string{{"--help"}, {"compare", "--help"}} {
		out, err := execute(t, args...)
		require.NoError(t, err)
		assert.Contains(t, out, "'-mirror 1'", "%v", args)
		assert.NotContains(t, out, "first structure", "%v", args)
	}
}
