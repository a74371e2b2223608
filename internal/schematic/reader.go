// =============================================================================
// EagleBOM - Schematic Reader
// =============================================================================
//
// This module reads an Eagle schematic (.sch, XML) into the raw device-set
// and part records consumed by the catalog and BOM builder.
//
// DOCUMENT SHAPE (only the elements read here are shown):
//
//   <eagle>
//     <drawing>
//       <schematic>
//         <libraries>
//           <library name="rcl">
//             <devicesets>
//               <deviceset name="RES" uservalue="yes">
//                 <devices>
//                   <device name="0402" package="0402">
//                     <technologies>
//                       <technology name="">
//                         <attribute name="MFG" value="Vishay"/>
//                       </technology>
//                     </technologies>
//                   </device>
//                 </devices>
//               </deviceset>
//             </devicesets>
//           </library>
//         </libraries>
//         <parts>
//           <part name="R1" deviceset="RES" device="0402" value="10k">
//             <attribute name="MFGPN" value="CRCW040210K0FKED"/>
//           </part>
//         </parts>
//         <sheets>
//           <sheet>
//             <instances>
//               <instance part="R1" gate="G$1"/>
//             </instances>
//           </sheet>
//         </sheets>
//       </schematic>
//     </drawing>
//   </eagle>
//
// =============================================================================

package schematic

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/eaglebom/internal/types"
	pkgerrors "github.com/ginjaninja78/eaglebom/pkg/errors"
)

// =============================================================================
// XML MAPPING
// =============================================================================

type eagleDoc struct {
	XMLName   xml.Name     `xml:"eagle"`
	Libraries []xmlLibrary `xml:"drawing>schematic>libraries>library"`
	Parts     []xmlPart    `xml:"drawing>schematic>parts>part"`
	Sheets    []xmlSheet   `xml:"drawing>schematic>sheets>sheet"`
}

type xmlLibrary struct {
	Name       string         `xml:"name,attr"`
	DeviceSets []xmlDeviceSet `xml:"devicesets>deviceset"`
}

type xmlDeviceSet struct {
	Name      string      `xml:"name,attr"`
	UserValue string      `xml:"uservalue,attr"`
	Devices   []xmlDevice `xml:"devices>device"`
}

type xmlDevice struct {
	Name         string          `xml:"name,attr"`
	Package      string          `xml:"package,attr"`
	Technologies []xmlTechnology `xml:"technologies>technology"`
}

type xmlTechnology struct {
	Name       string         `xml:"name,attr"`
	Attributes []xmlAttribute `xml:"attribute"`
}

type xmlAttribute struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlPart struct {
	Name       string         `xml:"name,attr"`
	DeviceSet  string         `xml:"deviceset,attr"`
	Device     string         `xml:"device,attr"`
	Value      *string        `xml:"value,attr"`
	Attributes []xmlAttribute `xml:"attribute"`
}

type xmlSheet struct {
	Instances []xmlInstance `xml:"instances>instance"`
}

type xmlInstance struct {
	Part string `xml:"part,attr"`
}

// =============================================================================
// SCHEMATIC
// =============================================================================

// Schematic holds the raw records read from one schematic file.
type Schematic struct {
	// DeviceSets are in document order across all libraries.
	DeviceSets []types.RawDeviceSet

	// Parts are in document order.
	Parts []types.RawPart

	// SheetCount is the number of sheets in the drawing.
	SheetCount int
}

// ReadFile reads and parses the schematic at path.
//
// RETURNS:
//   - The parsed schematic.
//   - A FileError when the file cannot be opened, or a ParseError when it
//     is not well-formed Eagle XML.
func ReadFile(path string) (*Schematic, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.NewFileError("schematic", path, err)
	}
	defer file.Close()

	return Parse(file, path)
}

// Parse reads a schematic from r. name is used in error messages.
func Parse(r io.Reader, name string) (*Schematic, error) {
	var doc eagleDoc

	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, pkgerrors.NewParseError(name, syntaxErr.Line, "XML", "", syntaxErr.Msg)
		}
		if errors.Is(err, io.EOF) {
			return nil, pkgerrors.NewParseError(name, 0, "XML", "", "document is empty")
		}
		return nil, pkgerrors.NewParseError(name, 0, "XML", "", err.Error())
	}

	sch := &Schematic{SheetCount: len(doc.Sheets)}

	for _, lib := range doc.Libraries {
		for _, ds := range lib.DeviceSets {
			sch.DeviceSets = append(sch.DeviceSets, convertDeviceSet(ds))
		}
	}

	sheets := sheetMembership(doc.Sheets)
	for _, p := range doc.Parts {
		part := convertPart(p)
		part.Sheets = sheets[part.Name]
		sch.Parts = append(sch.Parts, part)
	}

	return sch, nil
}

// =============================================================================
// CONVERSION
// =============================================================================

func convertDeviceSet(ds xmlDeviceSet) types.RawDeviceSet {
	set := types.RawDeviceSet{
		Name:      ds.Name,
		UserValue: ds.UserValue == "yes",
	}

	for _, d := range ds.Devices {
		set.Devices = append(set.Devices, types.RawDevice{
			Name:       d.Name,
			Package:    strings.TrimSpace(d.Package),
			Attributes: defaultTechnology(d.Technologies),
		})
	}
	return set
}

// defaultTechnology returns the attributes of the technology named "".
// A device without one has no attributes.
func defaultTechnology(techs []xmlTechnology) map[string]string {
	for _, t := range techs {
		if t.Name == "" {
			return attributeMap(t.Attributes)
		}
	}
	return map[string]string{}
}

func convertPart(p xmlPart) types.RawPart {
	return types.RawPart{
		Name:       strings.TrimSpace(p.Name),
		DeviceSet:  p.DeviceSet,
		Device:     p.Device,
		Value:      p.Value,
		Attributes: attributeMap(p.Attributes),
	}
}

// attributeMap keeps the first attribute of each name.
func attributeMap(attrs []xmlAttribute) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if _, seen := m[a.Name]; seen {
			continue
		}
		m[a.Name] = a.Value
	}
	return m
}

// sheetMembership maps each part name to the sorted 1-based sheets it has
// gate instances on.
func sheetMembership(sheets []xmlSheet) map[string][]int {
	membership := make(map[string][]int)

	for i, sheet := range sheets {
		number := i + 1
		for _, inst := range sheet.Instances {
			name := strings.TrimSpace(inst.Part)
			list := membership[name]
			if len(list) > 0 && list[len(list)-1] == number {
				continue
			}
			membership[name] = append(list, number)
		}
	}
	return membership
}
