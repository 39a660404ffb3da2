package parser

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// RadarEntity is the creating-entity code of NEXRAD radar mosaics. Physical
// element codes are interpreted against the radar table for this entity.
const RadarEntity = 99

// GINI sector codes
var sectorNames = map[int]string{
	0:  "Northern Hemisphere Composite",
	1:  "East CONUS",
	2:  "West CONUS",
	3:  "Alaska Regional",
	4:  "Alaska National",
	5:  "Hawaii Regional",
	6:  "Hawaii National",
	7:  "Puerto Rico Regional",
	8:  "Puerto Rico National",
	9:  "Supernational",
	10: "NH Composite - Meteosat/GOES E/ GOES W/GMS",
	11: "Central CONUS",
	12: "East Floater",
	13: "West Floater",
	14: "Central Floater",
	15: "Polar Floater",
}

// GINI creating entity codes
var entityNames = map[int]string{
	2:   "Miscellaneous",
	3:   "JERS",
	4:   "ERS/QuikSCAT/Scatterometer",
	5:   "POES/NOAA",
	6:   "Composite",
	7:   "DMSP satellite Image",
	8:   "GMS satellite Image",
	9:   "METEOSAT satellite Image",
	10:  "GOES-7 satellite Image",
	11:  "GOES-8 satellite Image",
	12:  "GOES-9 satellite Image",
	13:  "GOES-10 satellite Image",
	14:  "GOES-11 satellite Image",
	15:  "GOES-12 satellite Image",
	16:  "GOES-13 satellite Image",
	17:  "GOES-14 satellite Image",
	18:  "GOES-15 satellite Image",
	RadarEntity: "Radar Mosaic",
}

// GINI source codes
var sourceNames = map[int]string{
	1: "NESDIS",
	2: "NCEP",
	3: "Wallops Island",
	4: "Fairbanks",
}

// SectorName returns the display name of a sector code.
func SectorName(code int) string {
	if name, ok := sectorNames[code]; ok {
		return name
	}
	return "Unknown"
}

// EntityName returns the display name of a creating entity code.
func EntityName(code int) string {
	if name, ok := entityNames[code]; ok {
		return name
	}
	return "Unknown"
}

// SourceName returns the display name of a source code.
func SourceName(code int) string {
	if name, ok := sourceNames[code]; ok {
		return name
	}
	return "Unknown"
}

// PhysicalElement describes what a product's pixels measure.
type PhysicalElement struct {
	Code     int
	Name     string
	Units    string
	LongName string
	Summary  string

	// Precipitation elements use a coarser calibration scale.
	Precipitation bool
}

//go:embed physelem.csv
// GINI physical element table: code, radar flag, short name, units, long name,
// summary, precipitation flag. Rows with radar=1 apply to entity 99.
var physicalElementsCSV string

type elementKey struct {
	code  int
	radar bool
}

var (
	physicalElements     map[elementKey]PhysicalElement
	physicalElementsOnce sync.Once
)

// loadPhysicalElements loads the physical element table from embedded CSV
func loadPhysicalElements() {
	physicalElements = make(map[elementKey]PhysicalElement)

	reader := csv.NewReader(strings.NewReader(physicalElementsCSV))
	records, err := reader.ReadAll()
	if err != nil || len(records) == 0 {
		return
	}

	// Skip header row
	for _, record := range records[1:] {
		if len(record) < 7 {
			continue
		}
		code, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		physicalElements[elementKey{code: code, radar: record[1] == "1"}] = PhysicalElement{
			Code:          code,
			Name:          record[2],
			Units:         record[3],
			LongName:      record[4],
			Summary:       record[5],
			Precipitation: record[6] == "1",
		}
	}
}

// LookupPhysicalElement maps a physical element code to its description.
// Entity 99 (radar mosaic) selects the radar table. Unmapped codes yield an
// element named "Unknown".
func LookupPhysicalElement(code, entity int) PhysicalElement {
	physicalElementsOnce.Do(loadPhysicalElements)

	if pe, ok := physicalElements[elementKey{code: code, radar: entity == RadarEntity}]; ok {
		return pe
	}
	return PhysicalElement{
		Code:     code,
		Name:     "Unknown",
		LongName: "Unknown",
		Summary:  fmt.Sprintf("unknown physical element %d", code),
	}
}
