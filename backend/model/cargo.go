package model

import (
	"time"

	"github.com/JoseManuelPR/aduanas-app-sub001/backend/workflow"
)

// Cargo is a monetary charge issued against a denuncia
type Cargo struct {
	ID               string    `json:"id"`
	Numero           string    `json:"numero"`
	DenunciaID       string    `json:"denuncia_id"`
	Aduana           string    `json:"aduana"`
	Monto            float64   `json:"monto"`
	Concepto         string    `json:"concepto"`
	Status           string    `json:"status"` // Emitido, Notificado, Pagado, Anulado
	FechaEmision     time.Time `json:"fecha_emision"`
	FechaVencimiento time.Time `json:"fecha_vencimiento"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Cargo status constants
const (
	CargoEmitido    = "Emitido"
	CargoNotificado = "Notificado"
	CargoPagado     = "Pagado"
	CargoAnulado    = "Anulado"
)

// Giro is a payment order issued from a cargo
type Giro struct {
	ID               string    `json:"id"`
	Numero           string    `json:"numero"`
	CargoID          string    `json:"cargo_id"`
	Aduana           string    `json:"aduana"`
	Monto            float64   `json:"monto"`
	Status           string    `json:"status"` // Emitido, Pagado, Anulado
	FechaEmision     time.Time `json:"fecha_emision"`
	FechaVencimiento time.Time `json:"fecha_vencimiento"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Giro status constants
const (
	GiroEmitido = "Emitido"
	GiroPagado  = "Pagado"
	GiroAnulado = "Anulado"
)

// Reclamo is a claim filed against a denuncia or one of its cargos
type Reclamo struct {
	ID                string               `json:"id"`
	Numero            string               `json:"numero"`
	DenunciaID        string               `json:"denuncia_id"`
	CargoID           string               `json:"cargo_id,omitempty"`
	Aduana            string               `json:"aduana"`
	Tipo              workflow.ClaimType   `json:"tipo"`
	Status            workflow.ClaimStatus `json:"status"`
	Fundamento        string               `json:"fundamento"`
	Resolucion        string               `json:"resolucion,omitempty"`
	FechaPresentacion time.Time            `json:"fecha_presentacion"`
	FechaVencimiento  time.Time            `json:"fecha_vencimiento"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// IsOpen reports whether the claim still awaits a decision
func (r *Reclamo) IsOpen() bool {
	return !r.Status.IsTerminal()
}
