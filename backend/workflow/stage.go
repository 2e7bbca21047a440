package workflow

// Stage is the ordinal position of a case within the denuncia workflow.
type Stage int

const (
	StageDraft Stage = iota
	StageFiled
	StageFormulated
	StageNotified
	StageClosed
)

// StageCount is the number of workflow stages.
const StageCount = int(StageClosed) + 1

// StageInfo is the display metadata of a stage as consumed by the case views.
type StageInfo struct {
	Index           int     `json:"stage_index"`
	Label           string  `json:"label"`
	ShortLabel      string  `json:"short_label"`
	Description     string  `json:"description"`
	ResponsibleRole string  `json:"responsible_role"`
	NextActionLabel *string `json:"next_action_label"`
}

func strPtr(s string) *string { return &s }

var stageCatalog = [StageCount]StageInfo{
	StageDraft: {
		Index:           int(StageDraft),
		Label:           "Borrador",
		ShortLabel:      "Borrador",
		Description:     "Denuncia en elaboración por el fiscalizador",
		ResponsibleRole: "Fiscalizador",
		NextActionLabel: strPtr("Asignar revisor"),
	},
	StageFiled: {
		Index:           int(StageFiled),
		Label:           "Ingresada",
		ShortLabel:      "Ingreso",
		Description:     "Denuncia ingresada y en revisión jurídica",
		ResponsibleRole: "Revisor",
		NextActionLabel: strPtr("Formular denuncia"),
	},
	StageFormulated: {
		Index:           int(StageFormulated),
		Label:           "Formulada",
		ShortLabel:      "Formulación",
		Description:     "Denuncia formulada, pendiente de cargo y notificación",
		ResponsibleRole: "Jefe de Fiscalización",
		NextActionLabel: strPtr("Generar cargo"),
	},
	StageNotified: {
		Index:           int(StageNotified),
		Label:           "Notificada",
		ShortLabel:      "Notificación",
		Description:     "Infractor notificado, plazo de reclamo en curso",
		ResponsibleRole: "Abogado",
		NextActionLabel: strPtr("Cerrar denuncia"),
	},
	StageClosed: {
		Index:           int(StageClosed),
		Label:           "Cerrada",
		ShortLabel:      "Cierre",
		Description:     "Denuncia cerrada, sin acciones pendientes",
		ResponsibleRole: "Archivo",
	},
}

// stageOf is the single status → stage table. Adding a CaseStatus without a
// case here makes TestEveryStatusHasStage fail.
func stageOf(s CaseStatus) (Stage, bool) {
	switch s {
	case StatusBorrador:
		return StageDraft, true
	case StatusIngresada, StatusEnRevision, StatusObservada:
		return StageFiled, true
	case StatusFormulada:
		return StageFormulated, true
	case StatusNotificada, StatusEnProceso:
		return StageNotified, true
	case StatusCerrada, StatusArchivada:
		return StageClosed, true
	}
	return StageDraft, false
}

// Stage returns the workflow stage of s. Unknown statuses are Draft.
func (s CaseStatus) Stage() Stage {
	stage, _ := stageOf(s)
	return stage
}

// Info returns the catalog entry of the stage.
func (st Stage) Info() StageInfo {
	if st < 0 || int(st) >= StageCount {
		return stageCatalog[StageDraft]
	}
	return stageCatalog[st]
}

func (st Stage) String() string {
	return st.Info().Label
}

// StageFor maps free text to a stage, applying the Draft fallback for
// anything that does not parse.
func StageFor(status string) Stage {
	s, ok := ParseStatus(status)
	if !ok {
		return StageDraft
	}
	return s.Stage()
}

// ResolveStage returns the stage metadata for a status string. Unknown
// statuses resolve to the Draft stage.
func ResolveStage(status string) StageInfo {
	return StageFor(status).Info()
}

// Stages returns the catalog in workflow order.
func Stages() []StageInfo {
	out := make([]StageInfo, StageCount)
	copy(out, stageCatalog[:])
	return out
}
