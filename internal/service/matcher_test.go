package service

import (
	"reflect"
	"testing"

	"doctor-ai/internal/domain"
	"doctor-ai/internal/repository"
)

// kmLat convierte kilómetros a grados de latitud desde el ecuador.
const kmLat = 1.0 / 111.19492664455873

func newTestMatcher(records ...domain.DoctorRecord) *DoctorMatcher {
	return NewDoctorMatcher(repository.NewDoctorDirectory(records))
}

func TestMatchFluScenario(t *testing.T) {
	loc := domain.Location{Latitude: 0, Longitude: 0}
	matcher := newTestMatcher(
		domain.DoctorRecord{Name: "D1", Specialization: "GENERAL PHYSICIAN", Hospital: "H1", Latitude: 2 * kmLat},
		domain.DoctorRecord{Name: "D2", Specialization: "CARDIOLOGY", Hospital: "H2", Latitude: 0.5 * kmLat},
		domain.DoctorRecord{Name: "D3", Specialization: "GENERAL PHYSICIAN", Hospital: "H3", Latitude: 10 * kmLat},
	)

	got := matcher.Match("flu", loc, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].Doctor.Name != "D1" || got[1].Doctor.Name != "D3" {
		t.Fatalf("expected [D1 D3], got [%s %s]", got[0].Doctor.Name, got[1].Doctor.Name)
	}
}

func TestMatchResultBounds(t *testing.T) {
	loc := domain.Location{}
	matcher := newTestMatcher(
		domain.DoctorRecord{Name: "A", Specialization: "GENERAL PHYSICIAN", Latitude: 1 * kmLat},
		domain.DoctorRecord{Name: "B", Specialization: "GENERAL PHYSICIAN", Latitude: 2 * kmLat},
	)

	if got := matcher.Match("flu", loc, 5); len(got) != 2 {
		t.Fatalf("expected result capped by directory size, got %d", len(got))
	}
	if got := matcher.Match("flu", loc, 1); len(got) != 1 {
		t.Fatalf("expected result capped by k, got %d", len(got))
	}
	if got := matcher.Match("flu", loc, 0); len(got) != 0 {
		t.Fatalf("expected empty result for k=0, got %d", len(got))
	}
}

func TestMatchSortedAscending(t *testing.T) {
	loc := domain.Location{}
	matcher := newTestMatcher(
		domain.DoctorRecord{Name: "far", Specialization: "GENERAL PHYSICIAN", Latitude: 30 * kmLat},
		domain.DoctorRecord{Name: "near", Specialization: "GENERAL PHYSICIAN", Latitude: 1 * kmLat},
		domain.DoctorRecord{Name: "mid", Specialization: "GENERAL PHYSICIAN", Latitude: 15 * kmLat},
	)

	got := matcher.Match("flu", loc, 3)
	for i := 1; i < len(got); i++ {
		if got[i].DistanceKm < got[i-1].DistanceKm {
			t.Fatalf("expected non-decreasing distances, got %f after %f", got[i].DistanceKm, got[i-1].DistanceKm)
		}
	}
	if got[0].Doctor.Name != "near" || got[2].Doctor.Name != "far" {
		t.Fatalf("unexpected order: %s %s %s", got[0].Doctor.Name, got[1].Doctor.Name, got[2].Doctor.Name)
	}
}

func TestMatchStableTieBreakIsDeterministic(t *testing.T) {
	loc := domain.Location{}
	// Tres doctores en el mismo punto: el empate conserva el orden del directorio.
	matcher := newTestMatcher(
		domain.DoctorRecord{Name: "first", Specialization: "GENERAL PHYSICIAN", Latitude: 1 * kmLat},
		domain.DoctorRecord{Name: "second", Specialization: "GENERAL PHYSICIAN", Latitude: 1 * kmLat},
		domain.DoctorRecord{Name: "third", Specialization: "GENERAL PHYSICIAN", Latitude: 1 * kmLat},
	)

	first := matcher.Match("flu", loc, 3)
	if first[0].Doctor.Name != "first" || first[1].Doctor.Name != "second" || first[2].Doctor.Name != "third" {
		t.Fatalf("expected directory order on ties, got %s %s %s",
			first[0].Doctor.Name, first[1].Doctor.Name, first[2].Doctor.Name)
	}
	for i := 0; i < 10; i++ {
		again := matcher.Match("flu", loc, 3)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("expected deterministic output, run %d differs", i)
		}
	}
}

func TestMatchUnknownHintFallsBackToGeneralPhysician(t *testing.T) {
	specs := newTestMatcher().SpecializationsFor("space sickness")
	if len(specs) != 1 || specs[0] != "GENERAL PHYSICIAN" {
		t.Fatalf("expected fallback to GENERAL PHYSICIAN, got %v", specs)
	}
}

func TestMatchNoSpecializationMatchUsesFullDirectory(t *testing.T) {
	loc := domain.Location{}
	matcher := newTestMatcher(
		domain.DoctorRecord{Name: "gp", Specialization: "GENERAL PHYSICIAN", Latitude: 5 * kmLat},
		domain.DoctorRecord{Name: "cardio", Specialization: "CARDIOLOGIST", Latitude: 1 * kmLat},
	)

	// "migraine" mapea a NEUROLOGIST, que no existe en el directorio.
	got := matcher.Match("migraine", loc, 3)
	if len(got) != 2 {
		t.Fatalf("expected full-directory fallback, got %d matches", len(got))
	}
	if got[0].Doctor.Name != "cardio" {
		t.Fatalf("expected nearest first on fallback, got %s", got[0].Doctor.Name)
	}
}

func TestMatchEmptyDirectory(t *testing.T) {
	got := newTestMatcher().Match("flu", domain.Location{}, 3)
	if len(got) != 0 {
		t.Fatalf("expected empty result for empty directory, got %d", len(got))
	}
}

func TestSpecializationsForMapped(t *testing.T) {
	specs := newTestMatcher().SpecializationsFor("the flu")
	found := false
	for _, s := range specs {
		if s == "GENERAL PHYSICIAN" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected GENERAL PHYSICIAN for flu, got %v", specs)
	}
}

func TestEmergencySpecializationsFor(t *testing.T) {
	specs := EmergencySpecializationsFor("i have severe chest pain")
	if len(specs) == 0 {
		t.Fatalf("expected specializations for chest pain")
	}
	found := false
	for _, s := range specs {
		if s == "CARDIOLOGIST" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CARDIOLOGIST for chest pain, got %v", specs)
	}

	if specs := EmergencySpecializationsFor("mild headache"); len(specs) != 0 {
		t.Fatalf("expected no emergency specializations, got %v", specs)
	}
}
