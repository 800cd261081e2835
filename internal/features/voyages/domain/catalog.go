package domain

import (
	"errors"
	"fmt"
	"math"

	"voyage-tracker/internal/core/geo"
)

// AtSea is the tag assigned to observations outside every port radius.
const AtSea = ""

var (
	// ErrEmptyCatalog is returned when a catalog is built without ports.
	ErrEmptyCatalog = errors.New("port catalog is empty")
	// ErrDuplicatePort is returned when two ports share a name.
	ErrDuplicatePort = errors.New("duplicate port name")
	// ErrInvalidPort is returned for a port with a blank name, bad
	// coordinates or a non-positive radius.
	ErrInvalidPort = errors.New("invalid port definition")
)

// Port is a named circular detection zone around a berth or station anchorage.
type Port struct {
	// Name identifies the port.
	Name string `json:"name"`
	// Lat is the center latitude in decimal degrees.
	Lat float64 `json:"lat"`
	// Lon is the center longitude in decimal degrees.
	Lon float64 `json:"lon"`
	// RadiusKm is the detection radius. Station radii are generous because
	// ships hold off the Antarctic coast rather than berthing.
	RadiusKm float64 `json:"radius_km"`
}

// Catalog is an ordered, immutable set of ports. Order matters: distance
// ties during detection resolve to the earlier entry.
type Catalog struct {
	ports []Port
	index map[string]int
}

// defaultPorts is the reference catalog for RSV Nuyina operations.
var defaultPorts = []Port{
	{Name: "Hobart", Lat: -42.88, Lon: 147.33, RadiusKm: 15},
	{Name: "Burnie", Lat: -41.05, Lon: 145.91, RadiusKm: 8},
	{Name: "Macquarie Island", Lat: -54.50, Lon: 158.94, RadiusKm: 40},
	{Name: "Heard Island", Lat: -53.10, Lon: 73.51, RadiusKm: 50},
	{Name: "Casey", Lat: -66.28, Lon: 110.53, RadiusKm: 80},
	{Name: "Davis", Lat: -68.58, Lon: 77.97, RadiusKm: 80},
	{Name: "Mawson", Lat: -67.60, Lon: 62.87, RadiusKm: 80},
}

// NewCatalog validates the given ports and builds a catalog preserving
// their order.
func NewCatalog(ports []Port) (*Catalog, error) {
	if len(ports) == 0 {
		return nil, ErrEmptyCatalog
	}

	for _, p := range ports {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: blank name", ErrInvalidPort)
		}
		if p.RadiusKm <= 0 {
			return nil, fmt.Errorf("%w: %s radius %v", ErrInvalidPort, p.Name, p.RadiusKm)
		}
		if !finite(p.Lat) || p.Lat < -90 || p.Lat > 90 {
			return nil, fmt.Errorf("%w: %s latitude %v", ErrInvalidPort, p.Name, p.Lat)
		}
		if !finite(p.Lon) || p.Lon < -180 || p.Lon > 180 {
			return nil, fmt.Errorf("%w: %s longitude %v", ErrInvalidPort, p.Name, p.Lon)
		}
	}

	index := make(map[string]int, len(ports))
	for i, p := range ports {
		if _, exists := index[p.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePort, p.Name)
		}
		index[p.Name] = i
	}

	return newCatalog(ports, index), nil
}

// DefaultCatalog returns the built-in reference catalog.
func DefaultCatalog() *Catalog {
	index := make(map[string]int, len(defaultPorts))
	for i, p := range defaultPorts {
		index[p.Name] = i
	}
	return newCatalog(defaultPorts, index)
}

func newCatalog(ports []Port, index map[string]int) *Catalog {
	owned := make([]Port, len(ports))
	copy(owned, ports)
	return &Catalog{ports: owned, index: index}
}

// Ports returns the catalog entries in order. The slice is a copy.
func (c *Catalog) Ports() []Port {
	out := make([]Port, len(c.ports))
	copy(out, c.ports)
	return out
}

// Len returns the number of ports.
func (c *Catalog) Len() int {
	return len(c.ports)
}

// Lookup returns the port with the given name.
func (c *Catalog) Lookup(name string) (Port, bool) {
	i, ok := c.index[name]
	if !ok {
		return Port{}, false
	}
	return c.ports[i], true
}

// Detect returns the name of the port whose radius contains the position,
// or AtSea. The nearest port is found first (strict less-than keeps the
// earlier catalog entry on exact ties), then its radius is checked
// inclusively, so a position inside an overlapping farther radius still
// tags as the nearest port.
func (c *Catalog) Detect(lat, lon float64) string {
	nearest := 0
	nearestDist := geo.DistanceKm(lat, lon, c.ports[0].Lat, c.ports[0].Lon)

	for i := 1; i < len(c.ports); i++ {
		d := geo.DistanceKm(lat, lon, c.ports[i].Lat, c.ports[i].Lon)
		if d < nearestDist {
			nearest = i
			nearestDist = d
		}
	}

	if nearestDist <= c.ports[nearest].RadiusKm {
		return c.ports[nearest].Name
	}
	return AtSea
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
