package model

import (
	"time"

	"github.com/JoseManuelPR/aduanas-app-sub001/backend/workflow"
)

// Denuncia represents a filed customs infraction case
type Denuncia struct {
	ID               string              `json:"id"`
	Numero           string              `json:"numero"`
	Aduana           string              `json:"aduana"`
	Tipo             string              `json:"tipo"` // Infraccional, Penal
	Status           workflow.CaseStatus `json:"status"`
	Infractor        string              `json:"infractor"`
	RUT              string              `json:"rut"`
	Descripcion      string              `json:"descripcion"`
	NormaInfringida  string              `json:"norma_infringida"`
	MontoEstimado    float64             `json:"monto_estimado"`
	Revisor          string              `json:"revisor,omitempty"`
	Observaciones    string              `json:"observaciones,omitempty"`
	FechaIngreso     time.Time           `json:"fecha_ingreso"`
	FechaVencimiento time.Time           `json:"fecha_vencimiento"`
	Documentos       []Documento         `json:"documentos,omitempty"`
	Historial        []Evento            `json:"historial,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// Documento is an attachment rendered from a pre-baked XML body
type Documento struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Tipo        string `json:"tipo"` // DIN, DUS, Acta
	ContentType string `json:"content_type"`
	Contenido   string `json:"-"`
}

// Evento is one entry of a case timeline
type Evento struct {
	Fecha   time.Time `json:"fecha"`
	Accion  string    `json:"accion"`
	Usuario string    `json:"usuario"`
	Detalle string    `json:"detalle,omitempty"`
}

// Denuncia types
const (
	TipoInfraccional = "Infraccional"
	TipoPenal        = "Penal"
)

// Clone returns a deep copy so callers can read without holding store locks
func (d *Denuncia) Clone() *Denuncia {
	if d == nil {
		return nil
	}
	c := *d
	c.Documentos = append([]Documento(nil), d.Documentos...)
	c.Historial = append([]Evento(nil), d.Historial...)
	return &c
}

// Documento looks up an attachment by id
func (d *Denuncia) Documento(id string) (Documento, bool) {
	for _, doc := range d.Documentos {
		if doc.ID == id {
			return doc, true
		}
	}
	return Documento{}, false
}

// AddEvento appends a timeline entry
func (d *Denuncia) AddEvento(at time.Time, accion, usuario, detalle string) {
	d.Historial = append(d.Historial, Evento{
		Fecha:   at,
		Accion:  accion,
		Usuario: usuario,
		Detalle: detalle,
	})
}
