package order

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	pkgerrors "github.com/ginjaninja78/eaglebom/pkg/errors"
)

var mouserColumns = Columns{PartNumber: "mouser no", Quantity: "order qty."}

func TestSplitCSVLine(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{`a,b,c`, []string{"a", "b", "c"}},
		{`"71-CRCW0402-10K","Res, 10k",10`, []string{"71-CRCW0402-10K", "Res, 10k", "10"}},
		{`x,,y`, []string{"x", "", "y"}},
		{`"say ""hi""",1`, []string{`say "hi"`, "1"}},
		{``, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitCSVLine(tt.line))
		})
	}
}

func TestParseCSV(t *testing.T) {
	input := strings.Join([]string{
		`Sales Order No.,Mouser No,Mfr. No,Desc.,Order Qty.`,
		`1,71-CRCW0402,CRCW0402,"Thick Film Resistors, 10k",10`,
		``,
		`2,595-LM317T,LM317T,Regulator,"1,000"`,
	}, "\r\n")

	records, err := ParseCSV(strings.NewReader(input), "order.csv", mouserColumns)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Record{PartNumber: "71-CRCW0402", Quantity: 10, Line: 2}, records[0])
	assert.Equal(t, Record{PartNumber: "595-LM317T", Quantity: 1000, Line: 4}, records[1])
}

func TestParseCSVByteOrderMark(t *testing.T) {
	input := "\ufeffMouser No,Order Qty.\r\nVPN1,3\r\n"

	records, err := ParseCSV(strings.NewReader(input), "order.csv", mouserColumns)
	require.NoError(t, err)
	assert.Equal(t, []Record{{PartNumber: "VPN1", Quantity: 3, Line: 2}}, records)
}

func TestParseCSVMissingColumns(t *testing.T) {
	t.Run("part number", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("Part,Order Qty.\nX,1\n"), "order.csv", mouserColumns)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsInvalidInput(err))
		assert.Equal(t, "order.csv is missing 'mouser no' column", err.Error())
	})

	t.Run("quantity", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("Mouser No,Qty\nX,1\n"), "order.csv", mouserColumns)
		require.Error(t, err)
		var headerErr *pkgerrors.HeaderError
		require.ErrorAs(t, err, &headerErr)
		assert.Equal(t, "order qty.", headerErr.Column)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""), "order.csv", mouserColumns)
		assert.True(t, pkgerrors.IsInvalidInput(err))
	})
}

func TestParseCSVBadQuantity(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("Mouser No,Order Qty.\nX,ten\n"), "order.csv", mouserColumns)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadFileCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.csv")
	require.NoError(t, os.WriteFile(path, []byte("MOUSER NO,ORDER QTY.\nA,1\n"), 0o644))

	records, err := ReadFile(path, mouserColumns)
	require.NoError(t, err)
	assert.Equal(t, []Record{{PartNumber: "A", Quantity: 1, Line: 2}}, records)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "order.csv"), mouserColumns)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Mouser No", "Description", "Order Qty."}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"71-CRCW0402", "Resistor", 10}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]any{"595-LM317T", "Regulator", 2}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	records, err := ReadFile(path, mouserColumns)
	require.NoError(t, err)
	assert.Equal(t, []Record{
		{PartNumber: "71-CRCW0402", Quantity: 10, Line: 2},
		{PartNumber: "595-LM317T", Quantity: 2, Line: 4},
	}, records)
}

func TestReadXLSXMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Part", "Order Qty."}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := ReadFile(path, mouserColumns)
	var headerErr *pkgerrors.HeaderError
	require.ErrorAs(t, err, &headerErr)
	assert.Equal(t, "order.xlsx", headerErr.File)
}
