package service

import (
	"embed"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/JoseManuelPR/aduanas-app-sub001/backend/model"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/workflow"
)

//go:embed seed/*.json seed/*.xml
var seedFS embed.FS

// Seed records carry relative dates so the dataset always shows a mix of
// overdue, due-soon and on-time deadlines.
type seedDataset struct {
	Denuncias []seedDenuncia `json:"denuncias"`
	Cargos    []seedCargo    `json:"cargos"`
	Reclamos  []seedReclamo  `json:"reclamos"`
}

type seedDenuncia struct {
	ID              string          `json:"id"`
	Numero          string          `json:"numero"`
	Aduana          string          `json:"aduana"`
	Tipo            string          `json:"tipo"`
	Status          string          `json:"status"`
	Infractor       string          `json:"infractor"`
	RUT             string          `json:"rut"`
	Descripcion     string          `json:"descripcion"`
	NormaInfringida string          `json:"norma_infringida"`
	MontoEstimado   float64         `json:"monto_estimado"`
	Revisor         string          `json:"revisor"`
	IngresoHaceDias int             `json:"ingreso_hace_dias"`
	VenceEnDias     int             `json:"vence_en_dias"`
	Documentos      []seedDocumento `json:"documentos"`
}

type seedDocumento struct {
	ID      string `json:"id"`
	Nombre  string `json:"nombre"`
	Tipo    string `json:"tipo"`
	Archivo string `json:"archivo"`
}

type seedCargo struct {
	ID          string  `json:"id"`
	Numero      string  `json:"numero"`
	DenunciaID  string  `json:"denuncia_id"`
	Monto       float64 `json:"monto"`
	Concepto    string  `json:"concepto"`
	Status      string  `json:"status"`
	VenceEnDias int     `json:"vence_en_dias"`
}

type seedReclamo struct {
	ID          string `json:"id"`
	Numero      string `json:"numero"`
	DenunciaID  string `json:"denuncia_id"`
	CargoID     string `json:"cargo_id"`
	Tipo        string `json:"tipo"`
	Status      string `json:"status"`
	Fundamento  string `json:"fundamento"`
	VenceEnDias int    `json:"vence_en_dias"`
}

// LoadSeed fills store with the bundled mock dataset, dated relative to now.
// It returns the number of denuncias loaded.
func LoadSeed(store *CaseStore, now time.Time) (int, error) {
	data, err := seedFS.ReadFile("seed/dataset.json")
	if err != nil {
		return 0, fmt.Errorf("failed to read seed dataset: %w", err)
	}

	var ds seedDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return 0, fmt.Errorf("failed to decode seed dataset: %w", err)
	}

	aduanaOf := make(map[string]string, len(ds.Denuncias))
	for _, sd := range ds.Denuncias {
		d, err := sd.toModel(now)
		if err != nil {
			return 0, err
		}
		if err := store.ReserveNumero(d.Numero); err != nil {
			return 0, fmt.Errorf("seed denuncia %s: %w", d.ID, err)
		}
		aduanaOf[d.ID] = d.Aduana
		store.SaveDenuncia(d)
	}

	for _, sc := range ds.Cargos {
		aduana, ok := aduanaOf[sc.DenunciaID]
		if !ok {
			return 0, fmt.Errorf("seed cargo %s: unknown denuncia %s", sc.ID, sc.DenunciaID)
		}
		if err := store.ReserveNumero(sc.Numero); err != nil {
			return 0, fmt.Errorf("seed cargo %s: %w", sc.ID, err)
		}
		store.SaveCargo(&model.Cargo{
			ID:               sc.ID,
			Numero:           sc.Numero,
			DenunciaID:       sc.DenunciaID,
			Aduana:           aduana,
			Monto:            sc.Monto,
			Concepto:         sc.Concepto,
			Status:           sc.Status,
			FechaEmision:     now.AddDate(0, 0, sc.VenceEnDias-30),
			FechaVencimiento: now.AddDate(0, 0, sc.VenceEnDias),
			CreatedAt:        now,
		})
	}

	for _, sr := range ds.Reclamos {
		aduana, ok := aduanaOf[sr.DenunciaID]
		if !ok {
			return 0, fmt.Errorf("seed reclamo %s: unknown denuncia %s", sr.ID, sr.DenunciaID)
		}
		tipo, ok := workflow.ParseClaimType(sr.Tipo)
		if !ok {
			return 0, fmt.Errorf("seed reclamo %s: unknown tipo %q", sr.ID, sr.Tipo)
		}
		status, ok := workflow.ParseClaimStatus(sr.Status)
		if !ok {
			return 0, fmt.Errorf("seed reclamo %s: unknown status %q", sr.ID, sr.Status)
		}
		if err := store.ReserveNumero(sr.Numero); err != nil {
			return 0, fmt.Errorf("seed reclamo %s: %w", sr.ID, err)
		}
		store.SaveReclamo(&model.Reclamo{
			ID:                sr.ID,
			Numero:            sr.Numero,
			DenunciaID:        sr.DenunciaID,
			CargoID:           sr.CargoID,
			Aduana:            aduana,
			Tipo:              tipo,
			Status:            status,
			Fundamento:        sr.Fundamento,
			FechaPresentacion: now.AddDate(0, 0, sr.VenceEnDias-15),
			FechaVencimiento:  now.AddDate(0, 0, sr.VenceEnDias),
			CreatedAt:         now,
		})
	}

	return len(ds.Denuncias), nil
}

func (sd seedDenuncia) toModel(now time.Time) (*model.Denuncia, error) {
	status, ok := workflow.ParseStatus(sd.Status)
	if !ok {
		return nil, fmt.Errorf("seed denuncia %s: unknown status %q", sd.ID, sd.Status)
	}

	d := &model.Denuncia{
		ID:               sd.ID,
		Numero:           sd.Numero,
		Aduana:           sd.Aduana,
		Tipo:             sd.Tipo,
		Status:           status,
		Infractor:        sd.Infractor,
		RUT:              sd.RUT,
		Descripcion:      sd.Descripcion,
		NormaInfringida:  sd.NormaInfringida,
		MontoEstimado:    sd.MontoEstimado,
		Revisor:          sd.Revisor,
		FechaIngreso:     now.AddDate(0, 0, -sd.IngresoHaceDias),
		FechaVencimiento: now.AddDate(0, 0, sd.VenceEnDias),
		CreatedAt:        now.AddDate(0, 0, -sd.IngresoHaceDias),
	}

	for _, doc := range sd.Documentos {
		body, err := seedFS.ReadFile("seed/" + doc.Archivo)
		if err != nil {
			return nil, fmt.Errorf("seed denuncia %s: failed to read %s: %w", sd.ID, doc.Archivo, err)
		}
		d.Documentos = append(d.Documentos, model.Documento{
			ID:          doc.ID,
			Nombre:      doc.Nombre,
			Tipo:        doc.Tipo,
			ContentType: "application/xml",
			Contenido:   string(body),
		})
	}

	d.AddEvento(d.FechaIngreso, "creacion", "sistema", "Carga inicial")
	return d, nil
}
