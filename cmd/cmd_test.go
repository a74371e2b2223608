package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/eaglebom/internal/report"
)

const cliSchematic = `<?xml version="1.0" encoding="utf-8"?>
<eagle version="9.6.2"><drawing><schematic>
<libraries><library name="rcl"><devicesets>
<deviceset name="RES" uservalue="yes"><devices>
<device name="0402" package="0402"><technologies><technology name="">
<attribute name="MFG" value="Vishay"/>
<attribute name="MFGPN" value="ABC"/>
<attribute name="MOUSERPN" value="VPN1"/>
</technology></technologies></device>
</devices></deviceset>
</devicesets></library></libraries>
<parts><part name="R1" library="rcl" deviceset="RES" device="0402" value="10k"/></parts>
<sheets><sheet><instances><instance part="R1" gate="G$1"/></instances></sheet></sheets>
</schematic></drawing></eagle>
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "EagleBOM")
	assert.Contains(t, out, "Version:    "+Version)
}

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()
	sch := filepath.Join(dir, "board.sch")
	stockPath := filepath.Join(dir, "stock.txt")
	orderPath := filepath.Join(dir, "order.csv")
	require.NoError(t, os.WriteFile(sch, []byte(cliSchematic), 0o644))
	require.NoError(t, os.WriteFile(stockPath, []byte("VPN1\t100/5\t0.10\t0402\t10k\tVishay\tresistor\n"), 0o644))
	require.NoError(t, os.WriteFile(orderPath, []byte("Mouser No,Order Qty.\nVPN1,2\n"), 0o644))

	out, errOut, err := execute(t, "report", sch, "--stock", stockPath, "--order", orderPath, "--copies", "2", "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "Total price: 0.10")
	assert.Contains(t, errOut, "Verifying order...")
	assert.NotContains(t, errOut, "WARNING")

	_, _, err = execute(t, "report", sch, "--stock", filepath.Join(dir, "missing.txt"), "--order", "", "--copies", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.txt")
}

func TestReportFormatFlagListsEveryFormat(t *testing.T) {
	usage := reportCmd.Flags().Lookup("format").Usage
	names := strings.Split(strings.TrimPrefix(usage, "Report format: "), ", ")
	assert.Equal(t, []string{"text", "table", "json", "yaml", "xml"}, names)

	for _, name := range names {
		_, err := report.ParseFormat(name)
		assert.NoError(t, err, name)
	}
}

func TestLogFileOpenFailure(t *testing.T) {
	t.Setenv("EAGLEBOM_LOG_OUTPUT", filepath.Join(t.TempDir(), "missing", "eaglebom.log"))

	_, _, err := execute(t, "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set up logging")
}

func TestLogFileWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eaglebom.log")
	t.Setenv("EAGLEBOM_LOG_OUTPUT", path)
	t.Setenv("EAGLEBOM_LOG_FORMAT", "json")
	t.Cleanup(func() {
		closeLog()
		logLevel = ""
	})

	_, _, err := execute(t, "version", "--log-level", "debug")
	require.NoError(t, err)
	require.NotNil(t, logCloser)

	closeLog()
	assert.Nil(t, logCloser)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Loaded configuration")
}

func TestReportCommandRequiresSchematic(t *testing.T) {
	_, _, err := execute(t, "report")
	assert.Error(t, err)
}
