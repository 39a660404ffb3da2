package parser

// ValidateCoordinate validates a single coordinate pair
func ValidateCoordinate(lat, lon float64) error {
	if lat < -90.0 || lat > 90.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	if lon < -180.0 || lon > 180.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	return nil
}

// ValidateProduct checks the decoded header fields that come straight from
// the file. Derived corners (lat2, lon2) may legitimately leave the valid
// range for polar grids and are not checked.
func ValidateProduct(p *Product) error {
	if p.Nx <= 0 || p.Ny <= 0 {
		return &ErrInvalidDimensions{Nx: p.Nx, Ny: p.Ny}
	}
	if p.Projection == nil {
		return nil
	}
	return ValidateCoordinate(p.Lat1, p.Lon1)
}
