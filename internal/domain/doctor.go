package domain

// Location representa un punto geográfico en grados decimales.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DoctorRecord es una entrada del directorio de doctores.
// El directorio se carga una sola vez al inicio y es de solo lectura.
type DoctorRecord struct {
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Hospital       string  `json:"hospital"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
}

func (d DoctorRecord) Location() Location {
	return Location{Latitude: d.Latitude, Longitude: d.Longitude}
}
