package service

import (
	"sort"
	"strings"

	"doctor-ai/internal/domain"
	"doctor-ai/internal/repository"
)

// DoctorMatch asocia un doctor con su distancia al usuario.
type DoctorMatch struct {
	Doctor     domain.DoctorRecord `json:"doctor"`
	DistanceKm float64             `json:"distance_km"`
}

// DoctorMatcher filtra el directorio por especialidad y lo ordena por
// distancia al usuario. El directorio se inyecta construido; no hay estado
// global ni mutación después de la carga.
type DoctorMatcher struct {
	directory *repository.DoctorDirectory
}

func NewDoctorMatcher(directory *repository.DoctorDirectory) *DoctorMatcher {
	return &DoctorMatcher{directory: directory}
}

// SpecializationsFor resuelve un hint de diagnóstico a especialidades usando
// la tabla de palabras clave. Hints sin mapeo caen en GENERAL PHYSICIAN.
func (m *DoctorMatcher) SpecializationsFor(hint string) []string {
	lower := strings.ToLower(strings.TrimSpace(hint))
	seen := make(map[string]struct{})
	var specs []string
	for key, mapped := range diagnosisSpecializations {
		if lower == "" || !strings.Contains(lower, key) {
			continue
		}
		for _, s := range mapped {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			specs = append(specs, s)
		}
	}
	if len(specs) == 0 {
		return []string{fallbackSpecialization}
	}
	sort.Strings(specs)
	return specs
}

// EmergencySpecializationsFor junta las especialidades asociadas a las
// señales críticas presentes en el texto.
func EmergencySpecializationsFor(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	var specs []string
	for key, mapped := range emergencySpecializations {
		if !strings.Contains(lower, key) {
			continue
		}
		for _, s := range mapped {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			specs = append(specs, s)
		}
	}
	sort.Strings(specs)
	return specs
}

// Match devuelve hasta k doctores para el hint dado, ordenados por distancia
// ascendente. Empates conservan el orden del directorio.
func (m *DoctorMatcher) Match(hint string, loc domain.Location, k int) []DoctorMatch {
	return m.MatchSpecializations(m.SpecializationsFor(hint), loc, k)
}

// MatchSpecializations filtra por el conjunto de especialidades dado. Si
// ningún registro coincide se usa el directorio completo; un directorio
// vacío devuelve una lista vacía, nunca un error.
func (m *DoctorMatcher) MatchSpecializations(specs []string, loc domain.Location, k int) []DoctorMatch {
	records := m.directory.Doctors()

	filtered := make([]domain.DoctorRecord, 0, len(records))
	for _, rec := range records {
		if specializationMatches(rec.Specialization, specs) {
			filtered = append(filtered, rec)
		}
	}
	if len(filtered) == 0 {
		filtered = records
	}

	matches := make([]DoctorMatch, 0, len(filtered))
	for _, rec := range filtered {
		matches = append(matches, DoctorMatch{
			Doctor:     rec,
			DistanceKm: Haversine(loc, rec.Location()),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})

	if k >= 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// specializationMatches compara sin distinguir mayúsculas y tolera
// substrings en ambas direcciones ("HEART FAILURE" matchea
// "HEART FAILURE CLINIC" y al revés).
func specializationMatches(recordSpec string, specs []string) bool {
	rs := strings.ToLower(strings.TrimSpace(recordSpec))
	if rs == "" {
		return false
	}
	for _, s := range specs {
		target := strings.ToLower(strings.TrimSpace(s))
		if target == "" {
			continue
		}
		if strings.Contains(rs, target) || strings.Contains(target, rs) {
			return true
		}
	}
	return false
}
