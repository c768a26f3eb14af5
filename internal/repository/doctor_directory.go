package repository

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"doctor-ai/internal/domain"
)

// Columnas requeridas en el CSV de doctores.
var doctorCSVColumns = []string{"name", "specialization", "latitude", "longitude", "hospital_name"}

// DoctorDirectory es la tabla en memoria de doctores. Se carga una sola vez
// al inicio y después es de solo lectura, segura para lectores concurrentes.
type DoctorDirectory struct {
	records []domain.DoctorRecord
}

// NewDoctorDirectory construye un directorio a partir de registros ya cargados.
func NewDoctorDirectory(records []domain.DoctorRecord) *DoctorDirectory {
	return &DoctorDirectory{records: records}
}

// Doctors devuelve los registros en el orden del archivo de origen.
// El slice devuelto no debe modificarse.
func (d *DoctorDirectory) Doctors() []domain.DoctorRecord {
	if d == nil {
		return nil
	}
	return d.records
}

func (d *DoctorDirectory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// LoadDoctorDirectory lee el CSV de doctores. Cualquier fila malformada es un
// error fatal de arranque, no un error por request.
func LoadDoctorDirectory(path string) (*DoctorDirectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open doctors csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read doctors csv header: %w", err)
	}

	// Algunos exports anteponen un BOM UTF-8 a la primera columna.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range doctorCSVColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("doctors csv missing column %q", col)
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read doctors csv: %w", err)
	}

	records := make([]domain.DoctorRecord, 0, len(rows))
	for n, row := range rows {
		lat, err := strconv.ParseFloat(strings.TrimSpace(row[idx["latitude"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("doctors csv row %d: latitude: %w", n+2, err)
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(row[idx["longitude"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("doctors csv row %d: longitude: %w", n+2, err)
		}
		rec := domain.DoctorRecord{
			Name:           strings.TrimSpace(row[idx["name"]]),
			Specialization: strings.TrimSpace(row[idx["specialization"]]),
			Hospital:       strings.TrimSpace(row[idx["hospital_name"]]),
			Latitude:       lat,
			Longitude:      lng,
		}
		if rec.Name == "" || rec.Specialization == "" {
			return nil, fmt.Errorf("doctors csv row %d: name and specialization are required", n+2)
		}
		records = append(records, rec)
	}

	return NewDoctorDirectory(records), nil
}
