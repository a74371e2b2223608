package schematic_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/eaglebom/internal/schematic"
	pkgerrors "github.com/ginjaninja78/eaglebom/pkg/errors"
)

const testSchematic = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE eagle SYSTEM "eagle.dtd">
<eagle version="9.6.2">
<drawing>
<schematic>
<libraries>
<library name="rcl">
<devicesets>
<deviceset name="RES" prefix="R" uservalue="yes">
<devices>
<device name="0402" package="0402">
<technologies>
<technology name="">
<attribute name="MFG" value=" Vishay "/>
<attribute name="MOUSERPN" value="71-CRCW0402"/>
</technology>
<technology name="HP">
<attribute name="MFG" value="Panasonic"/>
</technology>
</technologies>
</device>
<device name="" package="0603"/>
</devices>
</deviceset>
</devicesets>
</library>
<library name="supply">
<devicesets>
<deviceset name="GROUND/GND/EARTH">
<devices>
<device name=""/>
</devices>
</deviceset>
</devicesets>
</library>
</libraries>
<parts>
<part name="R1" library="rcl" deviceset="RES" device="0402" value="10k">
<attribute name="MFGPN" value="CRCW040210K0FKED"/>
<attribute name="MFGPN" value="ignored"/>
</part>
<part name="R2" library="rcl" deviceset="RES" device=""/>
<part name="GND1" library="supply" deviceset="GROUND/GND/EARTH" device=""/>
</parts>
<sheets>
<sheet>
<instances>
<instance part="R1" gate="G$1" x="10" y="10"/>
<instance part="GND1" gate="1" x="10" y="0"/>
</instances>
</sheet>
<sheet>
<instances>
<instance part="R2" gate="G$1" x="10" y="10"/>
<instance part="R1" gate="G$1" x="20" y="10"/>
</instances>
</sheet>
</sheets>
</schematic>
</drawing>
</eagle>
`

func TestParse(t *testing.T) {
	sch, err := schematic.Parse(strings.NewReader(testSchematic), "test.sch")
	require.NoError(t, err)

	require.Len(t, sch.DeviceSets, 2)
	res := sch.DeviceSets[0]
	assert.Equal(t, "RES", res.Name)
	assert.True(t, res.UserValue)
	require.Len(t, res.Devices, 2)
	assert.Equal(t, "0402", res.Devices[0].Package)
	assert.Equal(t, " Vishay ", res.Devices[0].Attributes["MFG"], "values are trimmed by the catalog, not the reader")
	assert.Equal(t, "71-CRCW0402", res.Devices[0].Attributes["MOUSERPN"])
	assert.Empty(t, res.Devices[1].Attributes)
	assert.False(t, sch.DeviceSets[1].UserValue)

	require.Len(t, sch.Parts, 3)
	r1 := sch.Parts[0]
	assert.Equal(t, "R1", r1.Name)
	assert.Equal(t, "RES", r1.DeviceSet)
	assert.Equal(t, "0402", r1.Device)
	require.NotNil(t, r1.Value)
	assert.Equal(t, "10k", *r1.Value)
	assert.Equal(t, "CRCW040210K0FKED", r1.Attributes["MFGPN"])
	assert.Equal(t, []int{1, 2}, r1.Sheets)

	r2 := sch.Parts[1]
	assert.Nil(t, r2.Value)
	assert.Empty(t, r2.Attributes)
	assert.Equal(t, []int{2}, r2.Sheets)

	assert.Equal(t, 2, sch.SheetCount)
}

func TestParseMalformed(t *testing.T) {
	_, err := schematic.Parse(strings.NewReader("<eagle><drawing>"), "broken.sch")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "broken.sch")
}

func TestParseEmpty(t *testing.T) {
	_, err := schematic.Parse(strings.NewReader(""), "empty.sch")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsInvalidInput(err))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.sch")
	require.NoError(t, os.WriteFile(path, []byte(testSchematic), 0o644))

	sch, err := schematic.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, sch.Parts, 3)
}

func TestReadFileMissing(t *testing.T) {
	_, err := schematic.ReadFile(filepath.Join(t.TempDir(), "missing.sch"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "schematic file")
}
