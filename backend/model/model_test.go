package model

import (
	"testing"
	"time"

	"github.com/JoseManuelPR/aduanas-app-sub001/backend/workflow"
)

func TestDenunciaClone(t *testing.T) {
	d := &Denuncia{
		ID:         "d-1",
		Status:     workflow.StatusBorrador,
		Documentos: []Documento{{ID: "doc-1", Nombre: "DIN"}},
	}
	d.AddEvento(time.Now(), "Creación", "fiscalizador", "")

	c := d.Clone()
	c.Historial[0].Accion = "mutated"
	c.Documentos = append(c.Documentos, Documento{ID: "doc-2"})

	if d.Historial[0].Accion != "Creación" {
		t.Error("Expected clone to not share historial")
	}
	if len(d.Documentos) != 1 {
		t.Errorf("Expected 1 documento on original, got %d", len(d.Documentos))
	}

	var nilCase *Denuncia
	if nilCase.Clone() != nil {
		t.Error("Expected nil clone of nil denuncia")
	}
}

func TestDenunciaDocumento(t *testing.T) {
	d := &Denuncia{Documentos: []Documento{{ID: "doc-1", Nombre: "DIN 123"}}}

	doc, ok := d.Documento("doc-1")
	if !ok || doc.Nombre != "DIN 123" {
		t.Errorf("Expected to find doc-1, got %+v", doc)
	}
	if _, ok := d.Documento("missing"); ok {
		t.Error("Expected missing documento to not be found")
	}
}

func TestReclamoIsOpen(t *testing.T) {
	tests := []struct {
		status   workflow.ClaimStatus
		expected bool
	}{
		{workflow.ClaimIngresado, true},
		{workflow.ClaimEnAnalisis, true},
		{workflow.ClaimResuelto, false},
		{workflow.ClaimDerivadoTTA, false},
	}

	for _, tt := range tests {
		r := &Reclamo{Status: tt.status}
		if r.IsOpen() != tt.expected {
			t.Errorf("Status '%s': expected open=%v", tt.status, tt.expected)
		}
	}
}
