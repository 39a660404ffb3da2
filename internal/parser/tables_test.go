package parser

import (
	"testing"
)

func TestLookupPhysicalElement(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		entity int
		want   string
		units  string
		precip bool
	}{
		{"visible", 1, 15, "VIS", "", false},
		{"water vapor", 3, 11, "WV", "", false},
		{"lifted index", 13, 15, "LI", "K", false},
		{"satellite rain rate", 27, 15, "RR", "mm/h", true},
		{"radar reflectivity", 27, RadarEntity, "Reflectivity", "dBz", false},
		{"radar VIL", 30, RadarEntity, "VIL", "kg/m2", false},
		{"radar 1hr precip", 31, RadarEntity, "Precip1hr", "IN", true},
		{"radar-only code on satellite", 31, 15, "Unknown", "", false},
		{"unmapped", 200, 15, "Unknown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := LookupPhysicalElement(tt.code, tt.entity)
			if pe.Name != tt.want {
				t.Errorf("Expected name %q, got %q", tt.want, pe.Name)
			}
			if pe.Units != tt.units {
				t.Errorf("Expected units %q, got %q", tt.units, pe.Units)
			}
			if pe.Precipitation != tt.precip {
				t.Errorf("Expected precipitation %v, got %v", tt.precip, pe.Precipitation)
			}
			if pe.Code != tt.code {
				t.Errorf("Expected code %d, got %d", tt.code, pe.Code)
			}
		})
	}
}

func TestPhysicalElementTableSize(t *testing.T) {
	physicalElementsOnce.Do(loadPhysicalElements)
	if len(physicalElements) < 30 {
		t.Errorf("Expected at least 30 physical elements, got %d", len(physicalElements))
	}
}

func TestNameTables(t *testing.T) {
	if got := SectorName(1); got != "East CONUS" {
		t.Errorf("Expected East CONUS, got %s", got)
	}
	if got := SectorName(99); got != "Unknown" {
		t.Errorf("Expected Unknown, got %s", got)
	}
	if got := EntityName(RadarEntity); got != "Radar Mosaic" {
		t.Errorf("Expected Radar Mosaic, got %s", got)
	}
	if got := EntityName(15); got != "GOES-12 satellite Image" {
		t.Errorf("Expected GOES-12, got %s", got)
	}
	if got := SourceName(1); got != "NESDIS" {
		t.Errorf("Expected NESDIS, got %s", got)
	}
	if got := SourceName(200); got != "Unknown" {
		t.Errorf("Expected Unknown, got %s", got)
	}
}
