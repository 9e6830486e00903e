package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	out, _, err := execute(t, "", "analyze",
		"--query", "MK-LV", "--hit", "MRALV", "--similarity", "M+ LV",
		"--start", "10", "--end", "14", "--length", "100")
	require.NoError(t, err)

	assert.Contains(t, out, "|+-||")
	assert.Contains(t, out, "Identical positions: 10,12,13")
	assert.Contains(t, out, "Positive positions:  10,11,12,13")
}

func TestAnalyzeCommandJSON(t *testing.T) {
	out, _, err := execute(t, "", "analyze", "--json",
		"--query", "MKLV", "--hit", "MRLV", "--similarity", "M+LV",
		"--start", "0", "--end", "12", "--length", "12", "--multiplier", "3", "--frame=-1")
	require.NoError(t, err)

	var resp struct {
		MatchLine string `json:"match_line"`
		Positive  []int  `json:"positive_positions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "|+||", resp.MatchLine)
	assert.Len(t, resp.Positive, 12)
}

func TestAnalyzeCommandErrors(t *testing.T) {
	_, _, err := execute(t, "", "analyze", "--query", "MKLV", "--hit", "MKLV", "--similarity", "MKLV",
		"--end", "4", "--length", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shape mismatch")

	_, _, err = execute(t, "", "analyze", "--strict", "--query", "MK1V", "--hit", "MKLV", "--similarity", "MK V",
		"--end", "4", "--length", "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid residue")

	_, _, err = execute(t, "", "analyze", "--query", "MKLV")
	require.Error(t, err)
}

const hitsJSONL = `{"query_id":"q1","target_id":"t1","hsps":[{"query":"MKLV","hit":"MRLV","similarity":"M+LV","query_start":0,"query_end":12,"query_frame":1,"target_start":0,"target_end":4,"evalue":1e-10,"bits":50}]}
{"query_id":"q2","target_id":"t2","query_length":12,"hsps":[{"query":"","hit":"","similarity":"","query_start":0,"query_end":0,"query_frame":1}]}
`

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	queries := filepath.Join(dir, "queries.fa")
	require.NoError(t, os.WriteFile(queries, []byte(">q1 first\nACGTACGTACGT\n>q2\nACGTACGTACGT\n"), 0o644))

	out, errOut, err := execute(t, hitsJSONL, "batch", "--flavour", "blastx", "--queries", queries, "--format", "tsv", "--stats")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "query_id\ttarget_id"))
	assert.True(t, strings.HasPrefix(lines[1], "q1\tt1\t0\t12\t12\t"))

	assert.Contains(t, errOut, "skipping empty alignment")
	assert.Contains(t, errOut, "BatchStats")
}

func TestBatchCommandAbort(t *testing.T) {
	input := filepath.Join(t.TempDir(), "hits.jsonl")
	require.NoError(t, os.WriteFile(input, []byte(hitsJSONL), 0o644))

	_, _, err := execute(t, "", "batch", "-i", input, "--flavour", "blastx", "--on-error", "abort")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record ")
}

func TestBatchCommandOutputFile(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.jsonl")
	config := filepath.Join(dir, "hspflow.yaml")
	require.NoError(t, os.WriteFile(config, []byte("flavour: blastp\nlog:\n  level: error\n"), 0o644))

	input := `{"query_id":"q","target_id":"t","query_length":4,"hsps":[{"query":"MKLV","hit":"MRLV","similarity":"M+LV","query_start":0,"query_end":4,"query_frame":0,"target_start":0,"target_end":4}]}`
	_, errOut, err := execute(t, input, "batch", "-c", config, "-o", output)
	require.NoError(t, err)
	assert.Empty(t, errOut)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"identical_positions":[0,2,3]`)
}

func TestBatchCommandInvalidOptions(t *testing.T) {
	_, _, err := execute(t, hitsJSONL, "batch", "--flavour", "psiblast")
	require.Error(t, err)

	_, _, err = execute(t, hitsJSONL, "batch", "--flavour", "blastx", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestRegionCommand(t *testing.T) {
	out, _, err := execute(t, "", "region", "--identical", "0,1,2,10", "--positive", "0,1,2,3,10", "--start", "0", "--end", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "identity: 60.0%")
	assert.Contains(t, out, "Profile: |||+/")

	_, _, err = execute(t, "", "region", "--start", "3", "--end", "3")
	require.Error(t, err)
}

func TestRegionCommandReverseFrame(t *testing.T) {
	out, _, err := execute(t, "", "region", "--identical", "1,2,3,4", "--positive", "1,2,3,4",
		"--start", "0", "--end", "4", "--frame=-1")
	require.NoError(t, err)
	assert.Contains(t, out, "identity: 100.0%")
	assert.Contains(t, out, "Profile: ||||")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hspflow v")
}
