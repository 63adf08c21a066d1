package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"deedflow/internal/domain"
	"deedflow/internal/export"
	"deedflow/internal/sink"
)

func TestExportBatch_OneSheetPerStage(t *testing.T) {
	s := sink.NewFileSink(t.TempDir())
	require.NoError(t, s.Write("BATCH01", "Legal", "ImageName|BatchName|ImageHeaderID|Legal_Type|CL_Legal_Type", "IMG001.TIF|BATCH01|1|TR|HIGH"))
	require.NoError(t, s.Write("BATCH01", "Legal", "ImageName|BatchName|ImageHeaderID|Legal_Type|CL_Legal_Type", "IMG002.TIF|BATCH01|1|MP|LOW"))
	require.NoError(t, s.Write("BATCH01", "Mailing", "ImageName|BatchName|ImageHeaderID|City|CL_City", "IMG001.TIF|BATCH01|1|AUSTIN|HIGH"))

	data, err := export.NewBatchExporter(s).ExportBatch("BATCH01")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Legal", "Mailing"}, f.GetSheetList())

	rows, err := f.GetRows("Legal")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ImageName", "BatchName", "ImageHeaderID", "Legal_Type", "CL_Legal_Type"}, rows[0])
	assert.Equal(t, "IMG001.TIF", rows[1][0])
	assert.Equal(t, "TR", rows[1][3])
	assert.Equal(t, "MP", rows[2][3])
}

func TestExportBatch_TruncatesLongSheetNames(t *testing.T) {
	s := sink.NewFileSink(t.TempDir())
	suffix := "ExtremelyLongStageSuffixThatKeepsGoing"
	require.NoError(t, s.Write("BATCH01", suffix, "ImageName|BatchName|ImageHeaderID", "IMG001.TIF|BATCH01|1"))

	data, err := export.NewBatchExporter(s).ExportBatch("BATCH01")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	assert.Equal(t, suffix[:31], sheets[0])

	rows, err := f.GetRows(sheets[0])
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "IMG001.TIF", rows[1][0])
}

func TestExportBatch_UnknownBatch(t *testing.T) {
	s := sink.NewFileSink(t.TempDir())

	_, err := export.NewBatchExporter(s).ExportBatch("NOPE")
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
}
