package service

import (
	"math"

	"doctor-ai/internal/domain"
)

const earthRadiusKm = 6371.0

// Haversine calcula la distancia de círculo máximo entre dos puntos, en
// kilómetros, sobre una esfera de radio 6371 km. Es simétrica y devuelve 0
// para puntos coincidentes. No valida rangos de entrada.
func Haversine(a, b domain.Location) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}
