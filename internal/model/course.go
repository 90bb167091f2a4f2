package model

const (
	CourseStatusActive = "active"
	CourseStatusClosed = "closed"
)

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" yaml:"lon" validate:"gte=-180,lte=180"`
}

// Course is a static catalog entry.
type Course struct {
	ID       int
	Name     string
	Category Category
	Area     string
	Location Point
	Status   string
}

// RankedCourse is a course annotated with its distance from a home point.
type RankedCourse struct {
	Course
	DistanceMiles float64
}

// SearchArea is the home point and radius used to filter the catalog.
type SearchArea struct {
	Home        Point
	RadiusMiles float64 `validate:"gte=0"`
}
