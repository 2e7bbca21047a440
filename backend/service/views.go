package service

import (
	"time"

	"github.com/JoseManuelPR/aduanas-app-sub001/backend/model"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/workflow"
)

// Step states of the stepper
const (
	StepCompleted = "completed"
	StepCurrent   = "current"
	StepPending   = "pending"
)

// StepView is one step of the workflow stepper
type StepView struct {
	workflow.StageInfo
	State string `json:"state"`
}

// CaseView is a denuncia with everything derived from its status. It is
// rebuilt on every read and never stored.
type CaseView struct {
	*model.Denuncia
	Stage       workflow.StageInfo       `json:"stage"`
	Stepper     []StepView               `json:"stepper"`
	Permissions workflow.PermissionSet   `json:"permissions"`
	Plazo       *workflow.DeadlineStatus `json:"plazo,omitempty"`
}

// CargoView adds the deadline of an unpaid charge
type CargoView struct {
	*model.Cargo
	Plazo *workflow.DeadlineStatus `json:"plazo,omitempty"`
}

// GiroView adds the deadline of an unpaid payment order
type GiroView struct {
	*model.Giro
	Plazo *workflow.DeadlineStatus `json:"plazo,omitempty"`
}

// ReclamoView adds the claim stage and deadline
type ReclamoView struct {
	*model.Reclamo
	Stage workflow.ClaimStageInfo  `json:"stage"`
	Plazo *workflow.DeadlineStatus `json:"plazo,omitempty"`
	Next  []workflow.Decision      `json:"next_decisions"`
}

// BuildCaseView derives stage, stepper, permissions and deadline for d.
// Closed cases carry no deadline.
func BuildCaseView(d *model.Denuncia, now time.Time) *CaseView {
	stage := d.Status.Stage()
	v := &CaseView{
		Denuncia:    d,
		Stage:       stage.Info(),
		Stepper:     buildStepper(stage),
		Permissions: workflow.PermissionsFor(stage),
	}
	if stage != workflow.StageClosed && !d.FechaVencimiento.IsZero() {
		plazo := workflow.EvaluateDeadline(d.FechaVencimiento, now)
		v.Plazo = &plazo
	}
	return v
}

func buildStepper(current workflow.Stage) []StepView {
	stages := workflow.Stages()
	steps := make([]StepView, len(stages))
	for i, info := range stages {
		state := StepPending
		switch {
		case workflow.Stage(i) < current:
			state = StepCompleted
		case workflow.Stage(i) == current:
			state = StepCurrent
		}
		// the last stage has nothing after it, so reaching it completes it
		if workflow.Stage(i) == current && current == workflow.StageClosed {
			state = StepCompleted
		}
		steps[i] = StepView{StageInfo: info, State: state}
	}
	return steps
}

func buildCargoView(c *model.Cargo, now time.Time) *CargoView {
	v := &CargoView{Cargo: c}
	if c.Status == model.CargoEmitido || c.Status == model.CargoNotificado {
		plazo := workflow.EvaluateDeadline(c.FechaVencimiento, now)
		v.Plazo = &plazo
	}
	return v
}

func buildGiroView(g *model.Giro, now time.Time) *GiroView {
	v := &GiroView{Giro: g}
	if g.Status == model.GiroEmitido {
		plazo := workflow.EvaluateDeadline(g.FechaVencimiento, now)
		v.Plazo = &plazo
	}
	return v
}

var allDecisions = []workflow.Decision{
	workflow.DecisionReview,
	workflow.DecisionAdmit,
	workflow.DecisionAnalyze,
	workflow.DecisionResolve,
	workflow.DecisionRefer,
	workflow.DecisionReject,
}

func buildReclamoView(r *model.Reclamo, now time.Time) *ReclamoView {
	v := &ReclamoView{
		Reclamo: r,
		Stage:   workflow.ResolveClaimStage(string(r.Status)),
		Next:    []workflow.Decision{},
	}
	for _, d := range allDecisions {
		if _, ok := workflow.NextClaimStatus(r.Tipo, r.Status, d); ok {
			v.Next = append(v.Next, d)
		}
	}
	if r.IsOpen() {
		plazo := workflow.EvaluateDeadline(r.FechaVencimiento, now)
		v.Plazo = &plazo
	}
	return v
}
