package orbit

// Body radii and distances are in kilometres, periods in days.
const (
	EarthRadiusKm = 6371.0

	// PlanetDistanceScale is the number of kilometres per scene unit for
	// bodies orbiting the Sun.
	PlanetDistanceScale = 100000.0

	// SatelliteDistanceScale is the number of kilometres per scene unit for
	// bodies orbiting a planet. One scene unit is one Earth radius.
	SatelliteDistanceScale = EarthRadiusKm
)

// BodyData describes a body of a planetary system.
type BodyData struct {
	Name               string
	OrbitalPeriodDays  float64
	RotationPeriodDays float64
	RadiusKm           float64
	DistanceKm         float64
	Parent             string
	Model              string
	Color              string
	Scale              float32
}

// SolarSystem returns the Sun, the eight planets and the Moon.
func SolarSystem() []BodyData {
	return []BodyData{
		{Name: "Sun", RotationPeriodDays: 27, RadiusKm: 696340, Model: "models/Sun.glb", Color: "#FDB813", Scale: 0.2},
		{Name: "Mercury", OrbitalPeriodDays: 87.97, RotationPeriodDays: 59, RadiusKm: 2439.7, DistanceKm: 58_000_000, Model: "models/Mercury.glb", Color: "#9C9C9C", Scale: 0.02},
		{Name: "Venus", OrbitalPeriodDays: 224.7, RotationPeriodDays: 243, RadiusKm: 6051.8, DistanceKm: 108_000_000, Model: "models/Venus.glb", Color: "#E6C27A", Scale: 0.02},
		{Name: "Earth", OrbitalPeriodDays: 365.26, RotationPeriodDays: 1, RadiusKm: EarthRadiusKm, DistanceKm: 149_597_871, Model: "models/Earth.glb", Color: "#2E6FDB", Scale: 0.02},
		{Name: "Moon", OrbitalPeriodDays: 27.3, RotationPeriodDays: 27.3, RadiusKm: 1737.4, DistanceKm: 384_400, Parent: "Earth", Model: "models/Moon.glb", Color: "#D0D0D0", Scale: 1.0 / 120},
		{Name: "Mars", OrbitalPeriodDays: 687, RotationPeriodDays: (24 + 37.0/60) / 24, RadiusKm: 3389.5, DistanceKm: 227_900_000, Model: "models/Mars.glb", Color: "#C1440E", Scale: 0.02},
		{Name: "Jupiter", OrbitalPeriodDays: 11.86 * 365, RotationPeriodDays: (9 + 50.0/60) / 24, RadiusKm: 69911, DistanceKm: 778_500_000, Model: "models/Jupiter.glb", Color: "#C99039", Scale: 0.02},
		{Name: "Saturn", OrbitalPeriodDays: 29.46 * 365, RotationPeriodDays: (10 + 39.0/60) / 24, RadiusKm: 58232, DistanceKm: 1_434_000_000, Model: "models/Saturn.glb", Color: "#E3D9A8", Scale: 0.02},
		{Name: "Uranus", OrbitalPeriodDays: 84.01 * 365, RotationPeriodDays: (17 + 14.0/60) / 24, RadiusKm: 25362, DistanceKm: 2_871_000_000, Model: "models/Uranus.glb", Color: "#7FD1E0", Scale: 0.02},
		{Name: "Neptune", OrbitalPeriodDays: 164.82 * 365, RotationPeriodDays: (16 + 6.0/60) / 24, RadiusKm: 24622, DistanceKm: 4_495_000_000, Model: "models/Neptune.glb", Color: "#3F54BA", Scale: 0.02},
	}
}

// SceneDistance converts a distance in kilometres to scene units. Satellites
// use the finer satellite scale so they stay visible next to their parent.
func SceneDistance(distanceKm float64, satellite bool, planetScale, satelliteScale float64) float32 {
	if satellite {
		return float32(distanceKm / satelliteScale)
	}
	return float32(distanceKm / planetScale)
}
