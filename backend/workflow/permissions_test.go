package workflow

import "testing"

func TestResolvePermissionsClosedIsReadOnly(t *testing.T) {
	p := ResolvePermissions("Cerrada")
	if p.CanEdit {
		t.Error("Expected closed case to be non-editable")
	}
	if p.CanGenerateCharge {
		t.Error("Expected closed case to not generate charges")
	}
	if p.AnyMutating() {
		t.Errorf("Expected no mutating permission, got %+v", p)
	}
}

func TestResolvePermissionsDraftCanFormalize(t *testing.T) {
	p := ResolvePermissions("Borrador")
	if !p.CanFormalize {
		t.Error("Expected Borrador to allow formalize")
	}
	if !p.CanEdit {
		t.Error("Expected Borrador to allow edit")
	}
	if p.CanFileClaim || p.CanNotify {
		t.Error("Expected Borrador to not allow claims or notifications")
	}
}

func TestResolvePermissionsPolicy(t *testing.T) {
	tests := []struct {
		status         string
		edit           bool
		formalize      bool
		generateCharge bool
		fileClaim      bool
		notify         bool
	}{
		{"Borrador", true, true, false, false, false},
		{"Ingresada", true, false, false, true, true},
		{"Observada", true, false, false, true, true},
		{"Formulada", true, false, true, true, true},
		{"Notificada", false, false, false, true, true},
		{"En Proceso", false, false, false, true, true},
		{"Cerrada", false, false, false, false, false},
		{"Archivada", false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			p := ResolvePermissions(tt.status)
			if p.CanEdit != tt.edit {
				t.Errorf("CanEdit: expected %v, got %v", tt.edit, p.CanEdit)
			}
			if p.CanFormalize != tt.formalize {
				t.Errorf("CanFormalize: expected %v, got %v", tt.formalize, p.CanFormalize)
			}
			if p.CanGenerateCharge != tt.generateCharge {
				t.Errorf("CanGenerateCharge: expected %v, got %v", tt.generateCharge, p.CanGenerateCharge)
			}
			if p.CanFileClaim != tt.fileClaim {
				t.Errorf("CanFileClaim: expected %v, got %v", tt.fileClaim, p.CanFileClaim)
			}
			if p.CanNotify != tt.notify {
				t.Errorf("CanNotify: expected %v, got %v", tt.notify, p.CanNotify)
			}
		})
	}
}

func TestPermissionsAgreeWithStage(t *testing.T) {
	statuses := append(AllStatuses(), "SomeUnrecognizedStatus")
	for _, s := range statuses {
		stage := ResolveStage(string(s))
		p := ResolvePermissions(string(s))

		if stage.Index == int(StageClosed) && p.AnyMutating() {
			t.Errorf("Status '%s' is closed but has mutating permissions %+v", s, p)
		}
		if stage.Index != int(StageClosed) && !p.AnyMutating() {
			t.Errorf("Status '%s' is open but has no permissions", s)
		}
		if p.CanEdit != (len(p.EditableFields) > 0) {
			t.Errorf("Status '%s': CanEdit=%v with %d editable fields", s, p.CanEdit, len(p.EditableFields))
		}
		if stage.Index == int(StageDraft) && (p.CanFileClaim || p.CanNotify) {
			t.Errorf("Status '%s' is in draft but allows claim or notify", s)
		}
	}
}

func TestResolvePermissionsUnknownIsDraft(t *testing.T) {
	p := ResolvePermissions("SomeUnrecognizedStatus")
	if !p.CanFormalize || !p.CanEdit {
		t.Errorf("Expected draft permissions for unknown status, got %+v", p)
	}
}

func TestResolvePermissionsReturnsCopy(t *testing.T) {
	p := ResolvePermissions("Borrador")
	p.EditableFields[0] = "mutated"

	again := ResolvePermissions("Borrador")
	if again.EditableFields[0] == "mutated" {
		t.Error("Expected EditableFields to be a fresh slice on each call")
	}
}

func TestPermissionSetAllows(t *testing.T) {
	p := ResolvePermissions("Formulada")

	tests := []struct {
		action   Action
		expected bool
	}{
		{ActionEdit, true},
		{ActionFormalize, false},
		{ActionGenerateCharge, true},
		{ActionFileClaim, true},
		{ActionNotify, true},
		{Action("delete"), false},
	}

	for _, tt := range tests {
		if p.Allows(tt.action) != tt.expected {
			t.Errorf("Allows(%s): expected %v", tt.action, tt.expected)
		}
	}

	if !p.CanEditField(FieldObservaciones) {
		t.Error("Expected observaciones to be editable when formulated")
	}
	if p.CanEditField(FieldMontoEstimado) {
		t.Error("Expected monto_estimado to be locked when formulated")
	}
}
