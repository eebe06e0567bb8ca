package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsaget/gsa-downloader/internal/classify"
	"github.com/gsaget/gsa-downloader/internal/model"
)

func TestNewBuilder_CreatesTaxonDir(t *testing.T) {
	root := t.TempDir()

	b, err := NewBuilder(root, "Proteus mirabilis")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "Proteus_mirabilis"), b.TaxonDir())
	assert.DirExists(t, b.TaxonDir())
	assert.Equal(t, filepath.Join(b.TaxonDir(), "SAMC0001"), b.BioSampleDir("SAMC0001"))
}

func TestWriteBioSampleMetadata(t *testing.T) {
	b, err := NewBuilder(t.TempDir(), "Proteus")
	require.NoError(t, err)

	metas := []*model.BioSampleMetadata{
		{
			BioSample:          "SAMC0001",
			BioProject:         "PRJCA001",
			CollectionDate:     "2021-06-01",
			GeographicLocation: "China: Beijing",
			Host:               "Homo sapiens",
			Organism:           "Proteus mirabilis",
		},
	}

	require.NoError(t, b.WriteBioSampleMetadata(metas))

	data, err := os.ReadFile(filepath.Join(b.TaxonDir(), "Proteus_biosample_metadata.tsv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(biosampleMetadataHeader, "\t"), lines[0])

	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, len(biosampleMetadataHeader))
	assert.Equal(t, "SAMC0001", fields[0])
	assert.Equal(t, "PRJCA001", fields[1])
	assert.Equal(t, "Proteus mirabilis", fields[11])
}

func TestWriteReadManifest(t *testing.T) {
	b, err := NewBuilder(t.TempDir(), "Proteus")
	require.NoError(t, err)

	entries := []*model.ReadManifestEntry{
		{
			BioSamplePath: "DLs/Proteus/SAMC0001",
			FastqCount:    2,
			Status:        model.LayoutShortOnly,
			ShortRead1:    "DLs/Proteus/SAMC0001/R1_f1.fq.gz",
			ShortRead2:    "DLs/Proteus/SAMC0001/R1_r2.fq.gz",
		},
		{
			BioSamplePath:   "DLs/Proteus/SAMC0002",
			FastqCount:      3,
			Status:          model.LayoutLongOnly,
			LongReadPrimary: "DLs/Proteus/SAMC0002/a.fastq.gz",
			LongReadExtra:   []string{"DLs/Proteus/SAMC0002/b.fastq.gz", "DLs/Proteus/SAMC0002/c.fastq.gz"},
		},
	}

	require.NoError(t, b.WriteReadManifest(entries))

	data, err := os.ReadFile(filepath.Join(b.TaxonDir(), "Proteus_read_manifest.tsv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "biosample_path\tfastq_count\tstatus\tshort_read_1\tshort_read_2\tlong_read_primary\tlong_read_extra", lines[0])
	assert.Equal(t, "DLs/Proteus/SAMC0001\t2\tshort_only\tDLs/Proteus/SAMC0001/R1_f1.fq.gz\tDLs/Proteus/SAMC0001/R1_r2.fq.gz\t\t", lines[1])
	assert.Contains(t, lines[2], "b.fastq.gz|DLs/Proteus/SAMC0002/c.fastq.gz")
}

func TestWriteReadManifest_Idempotent(t *testing.T) {
	b, err := NewBuilder(t.TempDir(), "Proteus")
	require.NoError(t, err)

	// A read file in the taxon dir must survive a rebuild.
	sampleDir := b.BioSampleDir("SAMC0001")
	require.NoError(t, os.MkdirAll(sampleDir, 0o755))
	readFile := filepath.Join(sampleDir, "CRR001_f1.fq.gz")
	require.NoError(t, os.WriteFile(readFile, []byte("reads"), 0o644))

	entries := []*model.ReadManifestEntry{{BioSamplePath: sampleDir, Status: model.LayoutUnknown}}
	require.NoError(t, b.WriteReadManifest(entries))
	first, err := os.ReadFile(filepath.Join(b.TaxonDir(), "Proteus_read_manifest.tsv"))
	require.NoError(t, err)

	require.NoError(t, b.WriteReadManifest(entries))
	second, err := os.ReadFile(filepath.Join(b.TaxonDir(), "Proteus_read_manifest.tsv"))
	require.NoError(t, err)

	assert.Equal(t, first, second)

	data, err := os.ReadFile(readFile)
	require.NoError(t, err)
	assert.Equal(t, "reads", string(data))
}

func TestEntryFromResult(t *testing.T) {
	res := classify.Classify([]string{"R1_f1.fq.gz", "R1_r2.fq.gz"}, classify.DefaultConventions())

	entry := EntryFromResult("DLs/Proteus/SAMC0001", res)

	assert.Equal(t, model.LayoutShortOnly, entry.Status)
	assert.Equal(t, 2, entry.FastqCount)
	assert.Equal(t, filepath.Join("DLs/Proteus/SAMC0001", "R1_f1.fq.gz"), entry.ShortRead1)
	assert.Equal(t, filepath.Join("DLs/Proteus/SAMC0001", "R1_r2.fq.gz"), entry.ShortRead2)
	assert.Empty(t, entry.LongReadPrimary)
	assert.Empty(t, entry.LongReadExtra)
}

func TestRescan(t *testing.T) {
	taxonDir := t.TempDir()

	short := filepath.Join(taxonDir, "SAMC0001")
	long := filepath.Join(taxonDir, "SAMC0002")
	require.NoError(t, os.MkdirAll(short, 0o755))
	require.NoError(t, os.MkdirAll(long, 0o755))
	for _, name := range []string{"CRR001_f1.fq.gz", "CRR001_r2.fq.gz"} {
		require.NoError(t, os.WriteFile(filepath.Join(short, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(long, "CRR002.fastq.gz"), []byte("x"), 0o644))

	entries, err := Rescan(taxonDir, classify.DefaultConventions())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, model.LayoutShortOnly, entries[0].Status)
	assert.Equal(t, 2, entries[0].FastqCount)
	assert.Equal(t, model.LayoutLongOnly, entries[1].Status)
	assert.Equal(t, filepath.Join(long, "CRR002.fastq.gz"), entries[1].LongReadPrimary)
}
