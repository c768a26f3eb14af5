package service

import "strings"

// Tablas de detección por palabra clave. Son datos versionados: cualquier
// ajuste de comportamiento pasa por acá, no por literales sueltos en el flujo.
const KeywordTableVersion = "2026-08-01"

// fallbackSpecialization se usa cuando un diagnóstico no mapea a ninguna
// especialidad conocida.
const fallbackSpecialization = "GENERAL PHYSICIAN"

// emergencyKeywords dispara el cortocircuito de emergencia desde cualquier etapa.
var emergencyKeywords = []string{
	"heart attack",
	"stroke",
	"chest pain",
	"can't breathe",
	"cannot breathe",
	"difficulty breathing",
	"shortness of breath",
	"severe bleeding",
	"loss of consciousness",
	"seizure",
	"unconscious",
}

// affirmativeKeywords marca consentimiento a la recomendación de doctores.
// Se comparan como palabras completas, no como substrings.
var affirmativeKeywords = map[string]struct{}{
	"yes":    {},
	"yeah":   {},
	"yep":    {},
	"please": {},
	"sure":   {},
	"ok":     {},
	"okay":   {},
}

// followUpPhrases identifica preguntas de seguimiento del asistente.
// Dos o más fuerzan el framing de diagnóstico en el siguiente turno.
var followUpPhrases = []string{
	"how long",
	"can you describe",
	"are you experiencing",
	"any other symptoms",
	"please tell me more",
	"could you specify",
}

// diagnosisMarkers señala que la respuesta del asistente contiene un diagnóstico.
var diagnosisMarkers = []string{
	"you may be experiencing",
	"based on your symptoms",
}

// diagnosisSpecializations mapea términos de diagnóstico a especialidades.
var diagnosisSpecializations = map[string][]string{
	"cold":                  {"GENERAL PHYSICIAN", "MEDICINE", "FAMILY MEDICINE"},
	"flu":                   {"GENERAL PHYSICIAN", "MEDICINE", "FAMILY MEDICINE"},
	"respiratory infection": {"GENERAL PHYSICIAN", "MEDICINE", "INFECTIOUS DISEASES"},
	"bronchitis":            {"PULMONOLOGIST", "GENERAL PHYSICIAN"},
	"pneumonia":             {"PULMONOLOGIST", "INFECTIOUS DISEASES"},
	"asthma":                {"PULMONOLOGIST", "ALLERGY CLINIC"},
	"diabetes":              {"ENDOCRINOLOGIST", "GENERAL PHYSICIAN"},
	"hypertension":          {"CARDIOLOGIST", "GENERAL PHYSICIAN"},
	"migraine":              {"NEUROLOGIST"},
	"headache":              {"NEUROLOGIST", "GENERAL PHYSICIAN"},
	"depression":            {"PSYCHIATRIST", "PSYCHOLOGIST"},
	"anxiety":               {"PSYCHIATRIST", "PSYCHOLOGIST"},
}

// emergencySpecializations mapea señales críticas a especialidades para la
// recomendación inmediata que saltea el consentimiento.
var emergencySpecializations = map[string][]string{
	"heart attack":          {"CARDIOLOGIST", "ELECTROPHYSIOLOGIST", "HEART FAILURE"},
	"chest pain":            {"CARDIOLOGIST", "ELECTROPHYSIOLOGIST", "HEART FAILURE"},
	"stroke":                {"NEUROLOGIST", "PAEDIATRIC NEUROLOGIST"},
	"shortness of breath":   {"PULMONOLOGIST", "CARDIOLOGIST"},
	"difficulty breathing":  {"PULMONOLOGIST", "CARDIOLOGIST"},
	"loss of consciousness": {"NEUROLOGIST", "PAEDIATRIC NEUROLOGIST", "EMERGENCY MEDICINE"},
	"seizure":               {"NEUROLOGIST", "PAEDIATRIC NEUROLOGIST"},
}

// containsAny indica si el texto (en minúsculas) contiene alguna de las claves.
func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
