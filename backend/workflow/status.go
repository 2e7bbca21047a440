// Package workflow derives the workflow stage, the allowed actions and the
// deadline severity of customs cases from their stored status.
//
// Everything here is a pure function over package-level tables that are never
// written after initialisation, so it is safe for concurrent use.
package workflow

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CaseStatus is the stored status of a denuncia.
type CaseStatus string

const (
	StatusBorrador   CaseStatus = "Borrador"
	StatusIngresada  CaseStatus = "Ingresada"
	StatusEnRevision CaseStatus = "En Revisión"
	StatusObservada  CaseStatus = "Observada"
	StatusFormulada  CaseStatus = "Formulada"
	StatusNotificada CaseStatus = "Notificada"
	StatusEnProceso  CaseStatus = "En Proceso"
	StatusCerrada    CaseStatus = "Cerrada"
	StatusArchivada  CaseStatus = "Archivada"
)

// allStatuses is in canonical business-process order.
var allStatuses = []CaseStatus{
	StatusBorrador,
	StatusIngresada,
	StatusEnRevision,
	StatusObservada,
	StatusFormulada,
	StatusNotificada,
	StatusEnProceso,
	StatusCerrada,
	StatusArchivada,
}

var statusByKey = func() map[string]CaseStatus {
	m := make(map[string]CaseStatus, len(allStatuses))
	for _, s := range allStatuses {
		m[foldKey(string(s))] = s
	}
	return m
}()

// AllStatuses returns every known status in canonical business-process order.
func AllStatuses() []CaseStatus {
	out := make([]CaseStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus maps free text onto a known status. Case, surrounding
// whitespace and accents are ignored.
func ParseStatus(s string) (CaseStatus, bool) {
	status, ok := statusByKey[foldKey(s)]
	return status, ok
}

// String returns the wire value of the status.
func (s CaseStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known statuses.
func (s CaseStatus) IsValid() bool {
	_, ok := stageOf(s)
	return ok
}

// IsTerminal reports whether the case is closed for any further action.
func (s CaseStatus) IsTerminal() bool {
	stage, ok := stageOf(s)
	return ok && stage == StageClosed
}

// foldKey lowercases, trims and strips combining marks so that
// "EN REVISION" and "En Revisión" compare equal.
func foldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return strings.Join(strings.Fields(folded), " ")
}
