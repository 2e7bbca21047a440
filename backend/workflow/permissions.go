package workflow

// Editable case fields, named by their JSON keys.
const (
	FieldDescripcion     = "descripcion"
	FieldInfractor       = "infractor"
	FieldRUT             = "rut"
	FieldNormaInfringida = "norma_infringida"
	FieldMontoEstimado   = "monto_estimado"
	FieldObservaciones   = "observaciones"
	FieldRevisor         = "revisor"
)

// Action names a state-gated operation on a case.
type Action string

const (
	ActionEdit           Action = "edit"
	ActionFormalize      Action = "formalize"
	ActionGenerateCharge Action = "generate_charge"
	ActionFileClaim      Action = "file_claim"
	ActionNotify         Action = "notify"
)

// PermissionSet says what the case state allows. It says nothing about the
// role of the user asking.
type PermissionSet struct {
	CanEdit           bool     `json:"can_edit"`
	CanFormalize      bool     `json:"can_formalize"`
	CanGenerateCharge bool     `json:"can_generate_charge"`
	CanFileClaim      bool     `json:"can_file_claim"`
	CanNotify         bool     `json:"can_notify"`
	EditableFields    []string `json:"editable_fields"`
}

var stagePolicies = [StageCount]PermissionSet{
	StageDraft: {
		CanEdit:      true,
		CanFormalize: true,
		EditableFields: []string{
			FieldDescripcion,
			FieldInfractor,
			FieldRUT,
			FieldNormaInfringida,
			FieldMontoEstimado,
			FieldObservaciones,
		},
	},
	StageFiled: {
		CanEdit:        true,
		CanFileClaim:   true,
		CanNotify:      true,
		EditableFields: []string{FieldObservaciones, FieldRevisor},
	},
	StageFormulated: {
		CanEdit:           true,
		CanGenerateCharge: true,
		CanFileClaim:      true,
		CanNotify:         true,
		EditableFields:    []string{FieldObservaciones},
	},
	StageNotified: {
		CanFileClaim: true,
		CanNotify:    true,
	},
	StageClosed: {},
}

// PermissionsFor returns the policy of a stage.
func PermissionsFor(st Stage) PermissionSet {
	if st < 0 || int(st) >= StageCount {
		st = StageDraft
	}
	p := stagePolicies[st]
	p.EditableFields = append([]string{}, p.EditableFields...)
	return p
}

// ResolvePermissions returns what a case in the given status may do. It goes
// through the same stage derivation as ResolveStage.
func ResolvePermissions(status string) PermissionSet {
	return PermissionsFor(StageFor(status))
}

// Permissions returns the policy for s.
func (s CaseStatus) Permissions() PermissionSet {
	return PermissionsFor(s.Stage())
}

// Allows reports whether the named action is permitted.
func (p PermissionSet) Allows(a Action) bool {
	switch a {
	case ActionEdit:
		return p.CanEdit
	case ActionFormalize:
		return p.CanFormalize
	case ActionGenerateCharge:
		return p.CanGenerateCharge
	case ActionFileClaim:
		return p.CanFileClaim
	case ActionNotify:
		return p.CanNotify
	}
	return false
}

// CanEditField reports whether field is in EditableFields.
func (p PermissionSet) CanEditField(field string) bool {
	for _, f := range p.EditableFields {
		if f == field {
			return true
		}
	}
	return false
}

// AnyMutating reports whether at least one mutating action is allowed.
func (p PermissionSet) AnyMutating() bool {
	return p.CanEdit || p.CanFormalize || p.CanGenerateCharge || p.CanFileClaim || p.CanNotify
}
