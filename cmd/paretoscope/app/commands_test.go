package app

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const evolution = `generation,solution_index,is_pareto,obj1,obj2
0,0,1,0.5,0.5
0,1,0,0.9,0.9
1,0,1,0,0
1,1,0,0.5,0.5
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestHypervolumeCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "run_evolution.csv", evolution)
	out := filepath.Join(dir, "series.csv")

	_, err := execute(t, "hypervolume", "-f", in, "--ref", "1,1", "--stride", "1", "--out", out, "--workers", "2")
	require.NoError(t, err)

	want := [][]string{
		{"generation", "hypervolume"},
		{"0", "0.25"},
		{"1", "1"},
	}
	if diff := cmp.Diff(want, readCSV(t, out)); diff != "" {
		t.Errorf("unexpected series (-want,+got):\n%s", diff)
	}
}

func TestHypervolumeCommandDefaults(t *testing.T) {
	dir := t.TempDir()
	older := writeFile(t, dir, "pareto_evolution_2026-01-22_17-00-00.csv", "generation,solution_index,is_pareto,obj1,obj2\n")
	in := writeFile(t, dir, "pareto_evolution_2026-01-22_18-00-00.csv", evolution)
	writeFile(t, dir, "run_evolution.csv", "not an evolution stream\n")
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))
	plot := filepath.Join(dir, "series.html")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	_, err = execute(t, "hypervolume", "--samples", "1000", "--plot", plot)
	require.NoError(t, err)

	rows := readCSV(t, filepath.Join(dir, "pareto_evolution_2026-01-22_18-00-00_hypervolume.csv"))
	require.Len(t, rows, 3, "the last generation is always sampled")
	assert.Equal(t, "1", rows[2][0])
	for _, row := range rows[1:] {
		v, err := strconv.ParseFloat(row[1], 64)
		require.NoError(t, err)
		assert.Greater(t, v, 0.0)
	}
	assert.FileExists(t, in)
	assert.FileExists(t, plot)
}

func TestHypervolumeCommandMaximize(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "run_evolution.csv", `generation,solution_index,is_pareto,obj1,obj2
0,0,1,0.5,0.5
`)

	// Maximizing obj1 against a raw reference of 0 leaves a 0.5 x 0.5 box.
	stdout, err := execute(t, "hypervolume", "-f", in, "--maximize", "1", "--ref", "0,1", "--out", "-")
	require.NoError(t, err)
	assert.Equal(t, "generation,hypervolume\n0,0.25\n", stdout)
}

func TestHypervolumeCommandErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "run_evolution.csv", evolution)

	tests := []struct {
		name string
		args []string
	}{
		{name: "no match", args: []string{"hypervolume", "-f", filepath.Join(dir, "*_missing.csv")}},
		{name: "reference dimension", args: []string{"hypervolume", "-f", in, "--ref", "1,1,1"}},
		{name: "objective out of range", args: []string{"hypervolume", "-f", in, "--objectives", "3,1"}},
		{name: "maximize out of range", args: []string{"hypervolume", "-f", in, "--maximize", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCombineCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "FUN.0.csv", "1,5\n")
	writeFile(t, dir, "FUN.1.csv", "5,1\n6,6\n")
	out := filepath.Join(dir, "front.csv")

	_, err := execute(t, "combine", filepath.Join(dir, "FUN.*.csv"), "--out", out)
	require.NoError(t, err)

	want := [][]string{{"f1", "f2"}, {"1", "5"}, {"5", "1"}}
	if diff := cmp.Diff(want, readCSV(t, out)); diff != "" {
		t.Errorf("unexpected front (-want,+got):\n%s", diff)
	}
}

func TestCombineCommandMaximize(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "f1,f2\n1,5\n")
	b := writeFile(t, dir, "b.csv", "5,5\n")

	stdout, err := execute(t, "combine", a, b, "--maximize", "1", "--out", "-")
	require.NoError(t, err)
	assert.Equal(t, "f1,f2\n5,5\n", stdout)
}

func TestCombineCommandAggregatesReadErrors(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "1,2\n1,x\n")
	b := writeFile(t, dir, "b.csv", "1,2\nnan,3\n")

	_, err := execute(t, "combine", a, b, "--out", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.csv")
	assert.Contains(t, err.Error(), "b.csv")
}

func TestFlagCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "run_evolution.csv", `generation,solution_index,is_pareto,obj1,obj2
0,a,1,1,1
0,b,1,2,2
1,a,0,3,1
1,b,0,1,3
`)

	stdout, err := execute(t, "flag", "-f", in, "--out", "-")
	require.NoError(t, err)

	want := strings.Join([]string{
		"generation,solution_index,is_pareto,obj1,obj2,rank",
		"0,a,1,1,1,0",
		"0,b,0,2,2,1",
		"1,a,1,3,1,0",
		"1,b,1,1,3,0",
	}, "\n") + "\n"
	assert.Equal(t, want, stdout)
}

func TestIndicatorsCommand(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "reference.csv", "f1,f2\n0,1\n1,0\n")
	exact := writeFile(t, dir, "exact.csv", "0,1\n1,0\n")
	off := writeFile(t, dir, "off.csv", "1,1\n")
	summary := filepath.Join(dir, "summary.csv")

	stdout, err := execute(t, "indicators", "--reference", ref, exact, off, "--samples", "2000", "--summary", summary)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"FUN", "ERROR_RATIO", "GENERATIONAL_DISTANCE", "SPREAD", "HYPERVOLUME"}, rows[0])

	// A single point has every member coincident, which spreads as 1.
	assert.Equal(t, []string{exact, "0", "0", "0"}, rows[1][:4])
	assert.Equal(t, []string{off, "1", "1", "1"}, rows[2][:4])
	exactHV, err := strconv.ParseFloat(rows[1][4], 64)
	require.NoError(t, err)
	offHV, err := strconv.ParseFloat(rows[2][4], 64)
	require.NoError(t, err)
	assert.Greater(t, exactHV, offHV)

	sum := readCSV(t, summary)
	require.Len(t, sum, 5)
	assert.Equal(t, []string{"METRIC", "MEAN", "BEST", "WORST", "STDDEV"}, sum[0])
	assert.Equal(t, []string{"ERROR_RATIO", "0.5", "0", "1"}, sum[1][:4])
	assert.Equal(t, []string{"SPREAD", "0.5", "0", "1"}, sum[3][:4])
}

func TestIndicatorsCommandChunks(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "reference.csv", "0,1\n1,0\n")
	var runs []string
	for i := 0; i < 3; i++ {
		runs = append(runs, writeFile(t, dir, "FUN."+strconv.Itoa(i)+".csv", "0,1\n1,0\n"))
	}
	summary := filepath.Join(dir, "summary.csv")

	_, err := execute(t, append([]string{"indicators", "--reference", ref, "--samples", "100", "--chunk", "2", "--summary", summary}, runs...)...)
	require.NoError(t, err)

	sum := readCSV(t, summary)
	assert.Equal(t, []string{"CHUNK", "METRIC", "MEAN", "BEST", "WORST", "STDDEV"}, sum[0])
	// Two chunks per metric.
	assert.Len(t, sum, 1+2*4)
	assert.Equal(t, []string{"1", "ERROR_RATIO"}, sum[2][:2])
}

func TestIndicatorsCommandRejectsEstimatorFlags(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "reference.csv", "0,1\n1,0\n")
	run := writeFile(t, dir, "FUN.0.csv", "0,1\n1,0\n")

	for _, flags := range [][]string{{"--samples", "0"}, {"--samples", "-5"}, {"--seed", "-1"}} {
		t.Run(strings.Join(flags, " "), func(t *testing.T) {
			args := append([]string{"indicators", "--reference", ref, run}, flags...)
			_, err := execute(t, args...)
			assert.ErrorContains(t, err, "hypervolume.")
		})
	}
}

func TestPlotCommand(t *testing.T) {
	dir := t.TempDir()
	front := writeFile(t, dir, "front.csv", "f1,f2\n1,5\n5,1\n")
	series := writeFile(t, dir, "run_hypervolume.csv", "generation,hypervolume\n0,0.5\n20,0.75\n")
	outDir := filepath.Join(dir, "plots")

	_, err := execute(t, "plot", "--front", front, "--reference", front, "--series", series, "--out-dir", outDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "front_front.html"))
	assert.FileExists(t, filepath.Join(outDir, "run_hypervolume.html"))

	_, err = execute(t, "plot")
	assert.Error(t, err)
}

func TestPlotCommandOneAxisReference(t *testing.T) {
	dir := t.TempDir()
	front := writeFile(t, dir, "a.csv", "1,1\n")
	reference := writeFile(t, dir, "c.csv", "1\n2\n")

	_, err := execute(t, "plot", "--front", front, "--reference", reference, "--out-dir", dir)
	assert.ErrorContains(t, err, "at least 2 objectives")
}
