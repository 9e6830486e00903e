package sequence

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAligned(t *testing.T) {
	tests := []struct {
		name    string
		row     string
		wantErr bool
		errType interface{}
	}{
		{
			name: "nucleotides",
			row:  "ACGTN",
		},
		{
			name: "protein with gaps and mask",
			row:  "MKL-V*Q",
		},
		{
			name: "lowercase residues",
			row:  "acgt",
		},
		{
			name:    "empty row",
			row:     "",
			wantErr: true,
			errType: &EmptyRowError{},
		},
		{
			name:    "digit",
			row:     "AC1T",
			wantErr: true,
			errType: &InvalidResidueError{},
		},
		{
			name:    "positive marker is not a residue",
			row:     "AC+T",
			wantErr: true,
			errType: &InvalidResidueError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAligned("query", tt.row)
			if tt.wantErr {
				require.Error(t, err)
				assert.IsType(t, tt.errType, err)
				var seqErr SequenceError
				assert.True(t, errors.As(err, &seqErr))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestInvalidResidueErrorPosition(t *testing.T) {
	err := ValidateRows("ACGT", "AC?T")
	require.Error(t, err)

	var invalid *InvalidResidueError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "hit", invalid.Row)
	assert.Equal(t, 2, invalid.Position)
	assert.Equal(t, byte('?'), invalid.Found)
}

func TestIsResidue(t *testing.T) {
	assert.True(t, IsResidue('A'))
	assert.True(t, IsResidue('z'))
	assert.False(t, IsResidue(Gap))
	assert.False(t, IsResidue(Masked))
	assert.True(t, IsAlignedChar(Gap))
	assert.True(t, IsAlignedChar(Masked))
	assert.False(t, IsAlignedChar(Positive))
}

func TestParseFASTA(t *testing.T) {
	input := `>q1 first query
ACGTACGT
ACG

>q2
MKLV QAST
>q3 empty
`
	records, err := ParseFASTA(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Record{ID: "q1", Description: "first query", Length: 11}, records[0])
	assert.Equal(t, Record{ID: "q2", Length: 8}, records[1])
	assert.Equal(t, Record{ID: "q3", Description: "empty", Length: 0}, records[2])
}

func TestParseFASTATabSeparatedHeader(t *testing.T) {
	records, err := ParseFASTA(strings.NewReader(">q1\tfirst query\nACGT\n>q2\t \tsecond\nAC\n"))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Record{ID: "q1", Description: "first query", Length: 4}, records[0])
	assert.Equal(t, Record{ID: "q2", Description: "second", Length: 2}, records[1])
	assert.Equal(t, map[string]int{"q1": 4, "q2": 2}, Lengths(records))
}

func TestParseFASTAErrors(t *testing.T) {
	_, err := ParseFASTA(strings.NewReader("ACGT\n>q1\nACGT\n"))
	require.Error(t, err)

	_, err = ParseFASTA(strings.NewReader(">\nACGT\n"))
	require.Error(t, err)
}

func TestReadLengths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.fa")
	require.NoError(t, os.WriteFile(path, []byte(">a\nACGT\n>b\nAC\n>a\nACGTAC\n"), 0o644))

	lengths, err := ReadLengths(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 6, "b": 2}, lengths)

	_, err = ReadLengths(filepath.Join(t.TempDir(), "missing.fa"))
	require.Error(t, err)
}
