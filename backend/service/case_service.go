package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/JoseManuelPR/aduanas-app-sub001/backend/config"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/model"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/pkg/logger"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/workflow"
	"github.com/google/uuid"
)

// ActionObserver receives the outcome of every mutating operation
type ActionObserver interface {
	ObserveAction(action, outcome string)
}

type noopObserver struct{}

func (noopObserver) ObserveAction(string, string) {}

// CaseService plays the business process that owns case records. Every
// mutation is gated by the permission set derived from the case status.
type CaseService struct {
	store    *CaseStore
	plazos   config.PlazosConfig
	observer ActionObserver
	now      func() time.Time
}

func NewCaseService(store *CaseStore, plazos config.PlazosConfig, observer ActionObserver) *CaseService {
	if observer == nil {
		observer = noopObserver{}
	}
	return &CaseService{
		store:    store,
		plazos:   plazos,
		observer: observer,
		now:      time.Now,
	}
}

// CaseFilter narrows ListCases. Zero values match everything.
type CaseFilter struct {
	Status   string
	Stage    *int
	Severity workflow.Severity
}

func (f CaseFilter) matches(v *CaseView) bool {
	if f.Status != "" {
		s, ok := workflow.ParseStatus(f.Status)
		if !ok || s != v.Status {
			return false
		}
	}
	if f.Stage != nil && v.Stage.Index != *f.Stage {
		return false
	}
	if f.Severity != "" && (v.Plazo == nil || v.Plazo.Severity != f.Severity) {
		return false
	}
	return true
}

// ListCases returns the denuncias of an aduana, nearest deadline first
func (s *CaseService) ListCases(ctx context.Context, aduana string, filter CaseFilter) []*CaseView {
	now := s.now()
	var views []*CaseView
	for _, d := range s.store.DenunciasByAduana(aduana) {
		v := BuildCaseView(d, now)
		if filter.matches(v) {
			views = append(views, v)
		}
	}
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if (a.Plazo == nil) != (b.Plazo == nil) {
			return a.Plazo != nil
		}
		if a.Plazo != nil && a.Plazo.DaysRemaining != b.Plazo.DaysRemaining {
			return a.Plazo.DaysRemaining < b.Plazo.DaysRemaining
		}
		return a.Numero < b.Numero
	})
	logger.Debug(ctx, "cases listed", "count", len(views))
	return views
}

// GetCase returns one denuncia with its derived state
func (s *CaseService) GetCase(ctx context.Context, aduana, id string) (*CaseView, error) {
	d := s.store.GetDenuncia(id)
	if d == nil || d.Aduana != aduana {
		return nil, fmt.Errorf("denuncia %s: %w", id, ErrNotFound)
	}
	return BuildCaseView(d, s.now()), nil
}

// Summary counts the open and closed cases of an aduana by stage and by severity
type Summary struct {
	Total      int                       `json:"total"`
	ByStage    map[string]int            `json:"by_stage"`
	BySeverity map[workflow.Severity]int `json:"by_severity"`
}

func (s *CaseService) Summary(ctx context.Context, aduana string) Summary {
	sum := Summary{
		ByStage:    make(map[string]int),
		BySeverity: make(map[workflow.Severity]int),
	}
	for _, v := range s.ListCases(ctx, aduana, CaseFilter{}) {
		sum.Total++
		sum.ByStage[v.Stage.Label]++
		if v.Plazo != nil {
			sum.BySeverity[v.Plazo.Severity]++
		}
	}
	return sum
}

// mutateCase loads a denuncia for aduana under the write lock and runs fn on
// it together with its permission set. fn returns the timeline entry to add.
func (s *CaseService) mutateCase(ctx context.Context, action, aduana, id, user string,
	fn func(tx *Tx, d *model.Denuncia, perms workflow.PermissionSet, now time.Time) (string, error),
) (view *CaseView, err error) {
	defer func() {
		s.observer.ObserveAction(action, outcomeOf(err))
	}()

	now := s.now()
	var snapshot *model.Denuncia
	err = s.store.Update(func(tx *Tx) error {
		d := tx.Denuncia(id)
		if d == nil || d.Aduana != aduana {
			return fmt.Errorf("denuncia %s: %w", id, ErrNotFound)
		}
		before := d.Status
		detail, err := fn(tx, d, d.Status.Permissions(), now)
		if err != nil {
			return err
		}
		if d.Status != before {
			detail = strings.TrimSpace(fmt.Sprintf("%s → %s. %s", before, d.Status, detail))
		}
		d.AddEvento(now, action, user, detail)
		d.UpdatedAt = now
		snapshot = d.Clone()
		return nil
	})
	if err != nil {
		logger.Warn(ctx, "case action rejected", "action", action, "denuncia_id", id, "error", err)
		return nil, err
	}

	logger.Info(ctx, "case action applied", "action", action, "denuncia_id", id, "status", snapshot.Status)
	return BuildCaseView(snapshot, now), nil
}

func notAllowed(action string, status workflow.CaseStatus) error {
	return fmt.Errorf("%s with status %q: %w", action, status, ErrActionNotAllowed)
}

// Submit files a draft: Borrador → Ingresada
func (s *CaseService) Submit(ctx context.Context, aduana, id, user string) (*CaseView, error) {
	return s.mutateCase(ctx, "formalizar", aduana, id, user,
		func(_ *Tx, d *model.Denuncia, perms workflow.PermissionSet, _ time.Time) (string, error) {
			if !perms.CanFormalize {
				return "", notAllowed("formalizar", d.Status)
			}
			d.Status = workflow.StatusIngresada
			return "", nil
		})
}

// AssignReviewer hands a draft or filed case to a reviewer, moving it to En Revisión
func (s *CaseService) AssignReviewer(ctx context.Context, aduana, id, revisor, user string) (*CaseView, error) {
	revisor = strings.TrimSpace(revisor)
	return s.mutateCase(ctx, "asignar_revisor", aduana, id, user,
		func(_ *Tx, d *model.Denuncia, perms workflow.PermissionSet, _ time.Time) (string, error) {
			if !perms.CanFormalize && !perms.CanEditField(workflow.FieldRevisor) {
				return "", notAllowed("asignar_revisor", d.Status)
			}
			if revisor == "" {
				return "", fmt.Errorf("revisor is required: %w", ErrInvalidInput)
			}
			d.Revisor = revisor
			d.Status = workflow.StatusEnRevision
			return "Revisor: " + revisor, nil
		})
}

// Observe sends a case under review back with observations
func (s *CaseService) Observe(ctx context.Context, aduana, id, observaciones, user string) (*CaseView, error) {
	observaciones = strings.TrimSpace(observaciones)
	return s.mutateCase(ctx, "observar", aduana, id, user,
		func(_ *Tx, d *model.Denuncia, perms workflow.PermissionSet, _ time.Time) (string, error) {
			if d.Status.Stage() != workflow.StageFiled || !perms.CanEditField(workflow.FieldObservaciones) {
				return "", notAllowed("observar", d.Status)
			}
			if observaciones == "" {
				return "", fmt.Errorf("observaciones is required: %w", ErrInvalidInput)
			}
			d.Observaciones = observaciones
			d.Status = workflow.StatusObservada
			return observaciones, nil
		})
}

// Formulate moves a reviewed case to Formulada
func (s *CaseService) Formulate(ctx context.Context, aduana, id, user string) (*CaseView, error) {
	return s.mutateCase(ctx, "formular", aduana, id, user,
		func(_ *Tx, d *model.Denuncia, _ workflow.PermissionSet, _ time.Time) (string, error) {
			if d.Status != workflow.StatusEnRevision {
				return "", notAllowed("formular", d.Status)
			}
			if d.Revisor == "" {
				return "", fmt.Errorf("formular without revisor: %w", ErrActionNotAllowed)
			}
			d.Status = workflow.StatusFormulada
			return "", nil
		})
}

// UpdateFields edits case fields; every key must be editable in the current status
func (s *CaseService) UpdateFields(ctx context.Context, aduana, id string, fields map[string]any, user string) (*CaseView, error) {
	return s.mutateCase(ctx, "editar", aduana, id, user,
		func(_ *Tx, d *model.Denuncia, perms workflow.PermissionSet, _ time.Time) (string, error) {
			if !perms.CanEdit {
				return "", notAllowed("editar", d.Status)
			}
			if len(fields) == 0 {
				return "", fmt.Errorf("no fields given: %w", ErrInvalidInput)
			}
			names := make([]string, 0, len(fields))
			for name := range fields {
				if !perms.CanEditField(name) {
					return "", fmt.Errorf("field %q with status %q: %w", name, d.Status, ErrActionNotAllowed)
				}
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				if err := setField(d, name, fields[name]); err != nil {
					return "", err
				}
			}
			return "Campos: " + strings.Join(names, ", "), nil
		})
}

func setField(d *model.Denuncia, name string, value any) error {
	if name == workflow.FieldMontoEstimado {
		monto, ok := value.(float64)
		if !ok || monto < 0 {
			return fmt.Errorf("%s must be a non-negative number: %w", name, ErrInvalidInput)
		}
		d.MontoEstimado = monto
		return nil
	}

	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("%s must be a string: %w", name, ErrInvalidInput)
	}
	str = strings.TrimSpace(str)
	switch name {
	case workflow.FieldDescripcion:
		d.Descripcion = str
	case workflow.FieldInfractor:
		d.Infractor = str
	case workflow.FieldRUT:
		d.RUT = str
	case workflow.FieldNormaInfringida:
		d.NormaInfringida = str
	case workflow.FieldObservaciones:
		d.Observaciones = str
	case workflow.FieldRevisor:
		if str == "" {
			return fmt.Errorf("revisor cannot be empty: %w", ErrInvalidInput)
		}
		d.Revisor = str
	default:
		return fmt.Errorf("unknown field %q: %w", name, ErrInvalidInput)
	}
	return nil
}

// GenerateCharge issues a cargo against a formulated case
func (s *CaseService) GenerateCharge(ctx context.Context, aduana, id string, monto float64, concepto, user string) (*CargoView, error) {
	var cargo *model.Cargo
	concepto = strings.TrimSpace(concepto)
	_, err := s.mutateCase(ctx, "generar_cargo", aduana, id, user,
		func(tx *Tx, d *model.Denuncia, perms workflow.PermissionSet, now time.Time) (string, error) {
			if !perms.CanGenerateCharge {
				return "", notAllowed("generar_cargo", d.Status)
			}
			if monto <= 0 {
				return "", fmt.Errorf("monto must be positive: %w", ErrInvalidInput)
			}
			if concepto == "" {
				concepto = "Multa " + d.NormaInfringida
			}
			cargo = &model.Cargo{
				ID:               uuid.New().String(),
				Numero:           tx.NextNumero("CAR", now.Year()),
				DenunciaID:       d.ID,
				Aduana:           d.Aduana,
				Monto:            monto,
				Concepto:         concepto,
				Status:           model.CargoEmitido,
				FechaEmision:     now,
				FechaVencimiento: now.AddDate(0, 0, s.plazos.CargoDias),
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			tx.PutCargo(cargo)
			return fmt.Sprintf("Cargo %s por %.0f", cargo.Numero, monto), nil
		})
	if err != nil {
		return nil, err
	}
	cp := *cargo
	return buildCargoView(&cp, s.now()), nil
}

// Notify notifies the infractor. A formulated case becomes Notificada and its
// issued cargos Notificado; other stages only record the notification.
func (s *CaseService) Notify(ctx context.Context, aduana, id, user string) (*CaseView, error) {
	return s.mutateCase(ctx, "notificar", aduana, id, user,
		func(tx *Tx, d *model.Denuncia, perms workflow.PermissionSet, now time.Time) (string, error) {
			if !perms.CanNotify {
				return "", notAllowed("notificar", d.Status)
			}
			if d.Status.Stage() < workflow.StageFormulated {
				return "Notificación previa a la formulación", nil
			}
			if d.Status != workflow.StatusFormulada {
				return "Notificación reenviada", nil
			}
			d.Status = workflow.StatusNotificada
			notified := 0
			for _, c := range tx.CargosFor(d.ID) {
				if c.Status == model.CargoEmitido {
					c.Status = model.CargoNotificado
					c.UpdatedAt = now
					notified++
				}
			}
			return fmt.Sprintf("Cargos notificados: %d", notified), nil
		})
}

// FileClaim registers a reclamo against the case or one of its cargos
func (s *CaseService) FileClaim(ctx context.Context, aduana, id, tipo, fundamento, cargoID, user string) (*ReclamoView, error) {
	var reclamo *model.Reclamo
	fundamento = strings.TrimSpace(fundamento)
	_, err := s.mutateCase(ctx, "presentar_reclamo", aduana, id, user,
		func(tx *Tx, d *model.Denuncia, perms workflow.PermissionSet, now time.Time) (string, error) {
			if !perms.CanFileClaim {
				return "", notAllowed("presentar_reclamo", d.Status)
			}
			claimType, ok := workflow.ParseClaimType(tipo)
			if !ok {
				return "", fmt.Errorf("unknown claim type %q: %w", tipo, ErrInvalidInput)
			}
			if fundamento == "" {
				return "", fmt.Errorf("fundamento is required: %w", ErrInvalidInput)
			}
			if cargoID != "" {
				c := tx.Cargo(cargoID)
				if c == nil || c.DenunciaID != d.ID {
					return "", fmt.Errorf("cargo %s: %w", cargoID, ErrNotFound)
				}
			}
			reclamo = &model.Reclamo{
				ID:                uuid.New().String(),
				Numero:            tx.NextNumero("REC", now.Year()),
				DenunciaID:        d.ID,
				CargoID:           cargoID,
				Aduana:            d.Aduana,
				Tipo:              claimType,
				Status:            workflow.ClaimIngresado,
				Fundamento:        fundamento,
				FechaPresentacion: now,
				FechaVencimiento:  now.AddDate(0, 0, s.plazos.ReclamoDias),
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			tx.PutReclamo(reclamo)
			if d.Status == workflow.StatusNotificada {
				d.Status = workflow.StatusEnProceso
			}
			return fmt.Sprintf("Reclamo %s (%s)", reclamo.Numero, claimType), nil
		})
	if err != nil {
		return nil, err
	}
	cp := *reclamo
	return buildReclamoView(&cp, s.now()), nil
}

// Close closes a notified case once every reclamo has been decided
func (s *CaseService) Close(ctx context.Context, aduana, id, user string) (*CaseView, error) {
	return s.mutateCase(ctx, "cerrar", aduana, id, user,
		func(tx *Tx, d *model.Denuncia, _ workflow.PermissionSet, _ time.Time) (string, error) {
			if d.Status.Stage() != workflow.StageNotified {
				return "", notAllowed("cerrar", d.Status)
			}
			for _, r := range tx.ReclamosFor(d.ID) {
				if r.IsOpen() {
					return "", fmt.Errorf("reclamo %s still open: %w", r.Numero, ErrActionNotAllowed)
				}
			}
			d.Status = workflow.StatusCerrada
			return "", nil
		})
}

// Archive archives a closed case
func (s *CaseService) Archive(ctx context.Context, aduana, id, user string) (*CaseView, error) {
	return s.mutateCase(ctx, "archivar", aduana, id, user,
		func(_ *Tx, d *model.Denuncia, _ workflow.PermissionSet, _ time.Time) (string, error) {
			if d.Status != workflow.StatusCerrada {
				return "", notAllowed("archivar", d.Status)
			}
			d.Status = workflow.StatusArchivada
			return "", nil
		})
}

// IssueGiro issues a payment order for the full amount of a cargo
func (s *CaseService) IssueGiro(ctx context.Context, aduana, cargoID, user string) (view *GiroView, err error) {
	defer func() {
		s.observer.ObserveAction("emitir_giro", outcomeOf(err))
	}()

	now := s.now()
	var giro *model.Giro
	err = s.store.Update(func(tx *Tx) error {
		c := tx.Cargo(cargoID)
		if c == nil || c.Aduana != aduana {
			return fmt.Errorf("cargo %s: %w", cargoID, ErrNotFound)
		}
		if c.Status == model.CargoPagado || c.Status == model.CargoAnulado {
			return fmt.Errorf("emitir_giro with cargo status %q: %w", c.Status, ErrActionNotAllowed)
		}
		giro = &model.Giro{
			ID:               uuid.New().String(),
			Numero:           tx.NextNumero("GIR", now.Year()),
			CargoID:          c.ID,
			Aduana:           c.Aduana,
			Monto:            c.Monto,
			Status:           model.GiroEmitido,
			FechaEmision:     now,
			FechaVencimiento: now.AddDate(0, 0, s.plazos.GiroDias),
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		tx.PutGiro(giro)
		if d := tx.Denuncia(c.DenunciaID); d != nil {
			d.AddEvento(now, "emitir_giro", user, fmt.Sprintf("Giro %s sobre cargo %s", giro.Numero, c.Numero))
			d.UpdatedAt = now
		}
		return nil
	})
	if err != nil {
		logger.Warn(ctx, "giro rejected", "cargo_id", cargoID, "error", err)
		return nil, err
	}

	logger.Info(ctx, "giro issued", "cargo_id", cargoID, "giro", giro.Numero)
	cp := *giro
	return buildGiroView(&cp, now), nil
}

// AdvanceClaim applies an operator decision to a reclamo
func (s *CaseService) AdvanceClaim(ctx context.Context, aduana, reclamoID string, decision workflow.Decision, resolucion, user string) (view *ReclamoView, err error) {
	defer func() {
		s.observer.ObserveAction("avanzar_reclamo", outcomeOf(err))
	}()

	now := s.now()
	var snapshot model.Reclamo
	err = s.store.Update(func(tx *Tx) error {
		r := tx.Reclamo(reclamoID)
		if r == nil || r.Aduana != aduana {
			return fmt.Errorf("reclamo %s: %w", reclamoID, ErrNotFound)
		}
		next, ok := workflow.NextClaimStatus(r.Tipo, r.Status, decision)
		if !ok {
			return fmt.Errorf("%s with claim status %q: %w", decision, r.Status, ErrActionNotAllowed)
		}
		before := r.Status
		r.Status = next
		if next.IsTerminal() {
			r.Resolucion = strings.TrimSpace(resolucion)
		}
		r.UpdatedAt = now
		if d := tx.Denuncia(r.DenunciaID); d != nil {
			d.AddEvento(now, "avanzar_reclamo", user, fmt.Sprintf("Reclamo %s: %s → %s", r.Numero, before, next))
			d.UpdatedAt = now
		}
		snapshot = *r
		return nil
	})
	if err != nil {
		logger.Warn(ctx, "claim decision rejected", "reclamo_id", reclamoID, "decision", decision, "error", err)
		return nil, err
	}

	logger.Info(ctx, "claim advanced", "reclamo_id", reclamoID, "status", snapshot.Status)
	return buildReclamoView(&snapshot, now), nil
}

// ListCargos returns the cargos of an aduana, optionally for one denuncia
func (s *CaseService) ListCargos(ctx context.Context, aduana, denunciaID string) []*CargoView {
	now := s.now()
	var views []*CargoView
	for _, c := range s.store.CargosByAduana(aduana) {
		if denunciaID != "" && c.DenunciaID != denunciaID {
			continue
		}
		views = append(views, buildCargoView(c, now))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Numero < views[j].Numero })
	return views
}

func (s *CaseService) GetCargo(ctx context.Context, aduana, id string) (*CargoView, error) {
	c := s.store.GetCargo(id)
	if c == nil || c.Aduana != aduana {
		return nil, fmt.Errorf("cargo %s: %w", id, ErrNotFound)
	}
	return buildCargoView(c, s.now()), nil
}

// ListGiros returns the giros of an aduana, optionally for one cargo
func (s *CaseService) ListGiros(ctx context.Context, aduana, cargoID string) []*GiroView {
	now := s.now()
	var views []*GiroView
	for _, g := range s.store.GirosByAduana(aduana) {
		if cargoID != "" && g.CargoID != cargoID {
			continue
		}
		views = append(views, buildGiroView(g, now))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Numero < views[j].Numero })
	return views
}

func (s *CaseService) GetGiro(ctx context.Context, aduana, id string) (*GiroView, error) {
	g := s.store.GetGiro(id)
	if g == nil || g.Aduana != aduana {
		return nil, fmt.Errorf("giro %s: %w", id, ErrNotFound)
	}
	return buildGiroView(g, s.now()), nil
}

// ListReclamos returns the reclamos of an aduana, optionally for one denuncia
func (s *CaseService) ListReclamos(ctx context.Context, aduana, denunciaID string) []*ReclamoView {
	now := s.now()
	var views []*ReclamoView
	for _, r := range s.store.ReclamosByAduana(aduana) {
		if denunciaID != "" && r.DenunciaID != denunciaID {
			continue
		}
		views = append(views, buildReclamoView(r, now))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Numero < views[j].Numero })
	return views
}

func (s *CaseService) GetReclamo(ctx context.Context, aduana, id string) (*ReclamoView, error) {
	r := s.store.GetReclamo(id)
	if r == nil || r.Aduana != aduana {
		return nil, fmt.Errorf("reclamo %s: %w", id, ErrNotFound)
	}
	return buildReclamoView(r, s.now()), nil
}
