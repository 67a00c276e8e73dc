package models

// GeoPoint is a GeoJSON point, stored longitude-first the way MongoDB's
// 2dsphere index expects.
type GeoPoint struct {
	Type        string    `json:"type" bson:"type" default:"Point"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"` // [lng, lat]
}

func NewGeoPoint(lat, lng float64) *GeoPoint {
	return &GeoPoint{
		Type:        "Point",
		Coordinates: []float64{lng, lat},
	}
}

func (p *GeoPoint) Latitude() float64 {
	if p == nil || len(p.Coordinates) != 2 {
		return 0
	}
	return p.Coordinates[1]
}

func (p *GeoPoint) Longitude() float64 {
	if p == nil || len(p.Coordinates) != 2 {
		return 0
	}
	return p.Coordinates[0]
}

func (p *GeoPoint) IsZero() bool {
	return p == nil || len(p.Coordinates) != 2
}

// Place is a street address plus its locality and province, with
// optional coordinates when the client geocoded it.
type Place struct {
	Address     string    `json:"address" bson:"address"`
	City        string    `json:"city" bson:"city" validate:"required"`
	Province    string    `json:"province" bson:"province" validate:"required"`
	Coordinates *GeoPoint `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}
