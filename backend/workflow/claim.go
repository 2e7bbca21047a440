package workflow

// ClaimStatus is the stored status of a reclamo.
type ClaimStatus string

const (
	ClaimIngresado       ClaimStatus = "Ingresado"
	ClaimEnAdmisibilidad ClaimStatus = "En Admisibilidad"
	ClaimAdmitido        ClaimStatus = "Admitido"
	ClaimEnAnalisis      ClaimStatus = "En Análisis"
	ClaimResuelto        ClaimStatus = "Resuelto"
	ClaimRechazado       ClaimStatus = "Rechazado"
	ClaimDerivadoTTA     ClaimStatus = "Derivado a TTA"
)

var allClaimStatuses = []ClaimStatus{
	ClaimIngresado,
	ClaimEnAdmisibilidad,
	ClaimAdmitido,
	ClaimEnAnalisis,
	ClaimResuelto,
	ClaimRechazado,
	ClaimDerivadoTTA,
}

var claimStatusByKey = func() map[string]ClaimStatus {
	m := make(map[string]ClaimStatus, len(allClaimStatuses))
	for _, s := range allClaimStatuses {
		m[foldKey(string(s))] = s
	}
	return m
}()

// AllClaimStatuses returns every claim status in workflow order.
func AllClaimStatuses() []ClaimStatus {
	out := make([]ClaimStatus, len(allClaimStatuses))
	copy(out, allClaimStatuses)
	return out
}

// ParseClaimStatus maps free text onto a known claim status.
func ParseClaimStatus(s string) (ClaimStatus, bool) {
	status, ok := claimStatusByKey[foldKey(s)]
	return status, ok
}

// IsTerminal reports whether the claim has been decided.
func (s ClaimStatus) IsTerminal() bool {
	switch s {
	case ClaimResuelto, ClaimRechazado, ClaimDerivadoTTA:
		return true
	}
	return false
}

// ClaimType distinguishes claims resolved by the customs office from those
// adjudicated by the Tribunal Tributario y Aduanero.
type ClaimType string

const (
	ClaimReposicion ClaimType = "Reposición"
	ClaimTTA        ClaimType = "TTA"
)

// ParseClaimType accepts either type, ignoring case and accents.
func ParseClaimType(s string) (ClaimType, bool) {
	switch foldKey(s) {
	case foldKey(string(ClaimReposicion)):
		return ClaimReposicion, true
	case foldKey(string(ClaimTTA)):
		return ClaimTTA, true
	}
	return "", false
}

// ClaimStage is the ordinal position of a reclamo in its stepper.
type ClaimStage int

const (
	ClaimStageFiled ClaimStage = iota
	ClaimStageAdmissibility
	ClaimStageAnalysis
	ClaimStageResolution
)

// ClaimStageCount is the number of claim stages.
const ClaimStageCount = int(ClaimStageResolution) + 1

// ClaimStageInfo is the display metadata of a claim stage.
type ClaimStageInfo struct {
	Index           int    `json:"stage_index"`
	Label           string `json:"label"`
	Description     string `json:"description"`
	ResponsibleRole string `json:"responsible_role"`
	Terminal        bool   `json:"terminal"`
}

var claimStageCatalog = [ClaimStageCount]ClaimStageInfo{
	ClaimStageFiled: {
		Index:           int(ClaimStageFiled),
		Label:           "Ingreso",
		Description:     "Reclamo presentado por el infractor",
		ResponsibleRole: "Oficina de Partes",
	},
	ClaimStageAdmissibility: {
		Index:           int(ClaimStageAdmissibility),
		Label:           "Admisibilidad",
		Description:     "Revisión de requisitos formales del reclamo",
		ResponsibleRole: "Abogado",
	},
	ClaimStageAnalysis: {
		Index:           int(ClaimStageAnalysis),
		Label:           "Análisis",
		Description:     "Análisis de fondo del reclamo",
		ResponsibleRole: "Abogado",
	},
	ClaimStageResolution: {
		Index:           int(ClaimStageResolution),
		Label:           "Resolución",
		Description:     "Reclamo resuelto o derivado al tribunal",
		ResponsibleRole: "Director Regional",
	},
}

func claimStageOf(s ClaimStatus) ClaimStage {
	switch s {
	case ClaimEnAdmisibilidad:
		return ClaimStageAdmissibility
	case ClaimAdmitido, ClaimEnAnalisis:
		return ClaimStageAnalysis
	case ClaimResuelto, ClaimRechazado, ClaimDerivadoTTA:
		return ClaimStageResolution
	}
	return ClaimStageFiled
}

// ResolveClaimStage returns the claim stage for a status string. Unknown
// statuses resolve to the first stage.
func ResolveClaimStage(status string) ClaimStageInfo {
	s, ok := ParseClaimStatus(status)
	if !ok {
		return claimStageCatalog[ClaimStageFiled]
	}
	info := claimStageCatalog[claimStageOf(s)]
	info.Terminal = s.IsTerminal()
	return info
}

// ClaimStages returns the claim catalog in order.
func ClaimStages() []ClaimStageInfo {
	out := make([]ClaimStageInfo, ClaimStageCount)
	copy(out, claimStageCatalog[:])
	return out
}

// Decision is an operator decision that moves a claim forward.
type Decision string

const (
	DecisionReview  Decision = "revisar"
	DecisionAdmit   Decision = "admitir"
	DecisionAnalyze Decision = "analizar"
	DecisionResolve Decision = "resolver"
	DecisionRefer   Decision = "derivar"
	DecisionReject  Decision = "rechazar"
)

// NextClaimStatus returns the status a claim of the given type moves to when
// decision is applied in status current. ok is false if the decision does not
// apply there. Only TTA claims can be referred; only Reposición claims are
// resolved by the office.
func NextClaimStatus(t ClaimType, current ClaimStatus, decision Decision) (ClaimStatus, bool) {
	if current.IsTerminal() {
		return current, false
	}
	switch decision {
	case DecisionReview:
		if current == ClaimIngresado {
			return ClaimEnAdmisibilidad, true
		}
	case DecisionAdmit:
		if current == ClaimEnAdmisibilidad {
			return ClaimAdmitido, true
		}
	case DecisionAnalyze:
		if current == ClaimAdmitido {
			return ClaimEnAnalisis, true
		}
	case DecisionResolve:
		if current == ClaimEnAnalisis && t == ClaimReposicion {
			return ClaimResuelto, true
		}
	case DecisionRefer:
		if current == ClaimEnAnalisis && t == ClaimTTA {
			return ClaimDerivadoTTA, true
		}
	case DecisionReject:
		if current != ClaimIngresado {
			return ClaimRechazado, true
		}
	}
	return current, false
}
