package service

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/JoseManuelPR/aduanas-app-sub001/backend/config"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/model"
)

// CaseStore is an in-memory store for denuncias and the records hanging off
// them. Nothing is persisted; the business process owning these records is
// mocked by CaseService.
type CaseStore struct {
	denuncias map[string]*model.Denuncia
	cargos    map[string]*model.Cargo
	giros     map[string]*model.Giro
	reclamos  map[string]*model.Reclamo
	counters  map[string]int
	mu        sync.RWMutex
	maxCases  int // Maximum denuncias to keep, 0 = unlimited
}

var (
	globalStore *CaseStore
	storeOnce   sync.Once
)

// NewCaseStore creates a standalone store; the server uses the global one
func NewCaseStore(maxCases int) *CaseStore {
	if maxCases < 0 {
		maxCases = 0
	}
	return &CaseStore{
		denuncias: make(map[string]*model.Denuncia),
		cargos:    make(map[string]*model.Cargo),
		giros:     make(map[string]*model.Giro),
		reclamos:  make(map[string]*model.Reclamo),
		counters:  make(map[string]int),
		maxCases:  maxCases,
	}
}

// InitCaseStore initializes the global case store with configuration
func InitCaseStore(cfg *config.StoreConfig) {
	storeOnce.Do(func() {
		globalStore = NewCaseStore(cfg.MaxCases)
		slog.Info("case store initialized", "max_cases", globalStore.maxCases)
	})
}

// GetCaseStore returns the global case store
func GetCaseStore() *CaseStore {
	storeOnce.Do(func() {
		// Fallback initialization with default settings
		globalStore = NewCaseStore(0)
	})
	return globalStore
}

// Tx gives unlocked access to the store inside Update
type Tx struct {
	s *CaseStore
}

// Update runs fn with the write lock held. Records returned by the Tx
// accessors are live and may be modified in place.
func (s *CaseStore) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{s: s})
}

func (tx *Tx) Denuncia(id string) *model.Denuncia { return tx.s.denuncias[id] }
func (tx *Tx) Cargo(id string) *model.Cargo       { return tx.s.cargos[id] }
func (tx *Tx) Giro(id string) *model.Giro         { return tx.s.giros[id] }
func (tx *Tx) Reclamo(id string) *model.Reclamo   { return tx.s.reclamos[id] }

func (tx *Tx) PutCargo(c *model.Cargo)     { tx.s.cargos[c.ID] = c }
func (tx *Tx) PutGiro(g *model.Giro)       { tx.s.giros[g.ID] = g }
func (tx *Tx) PutReclamo(r *model.Reclamo) { tx.s.reclamos[r.ID] = r }

// CargosFor returns the live cargos of a denuncia
func (tx *Tx) CargosFor(denunciaID string) []*model.Cargo {
	var out []*model.Cargo
	for _, c := range tx.s.cargos {
		if c.DenunciaID == denunciaID {
			out = append(out, c)
		}
	}
	return out
}

// ReclamosFor returns the live reclamos of a denuncia
func (tx *Tx) ReclamosFor(denunciaID string) []*model.Reclamo {
	var out []*model.Reclamo
	for _, r := range tx.s.reclamos {
		if r.DenunciaID == denunciaID {
			out = append(out, r)
		}
	}
	return out
}

// NextNumero returns the next folio for prefix in year, e.g. CAR-2024-00012
func (tx *Tx) NextNumero(prefix string, year int) string {
	key := fmt.Sprintf("%s-%d", prefix, year)
	tx.s.counters[key]++
	return fmt.Sprintf("%s-%05d", key, tx.s.counters[key])
}

// ReserveNumero raises the folio counter so NextNumero never hands out
// numero or anything below it. Numeros must look like PREFIX-YEAR-NNNNN.
func (s *CaseStore) ReserveNumero(numero string) error {
	i := strings.LastIndex(numero, "-")
	if i <= 0 {
		return fmt.Errorf("invalid numero %q", numero)
	}
	seq, err := strconv.Atoi(numero[i+1:])
	if err != nil || seq < 0 {
		return fmt.Errorf("invalid numero %q", numero)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if key := numero[:i]; seq > s.counters[key] {
		s.counters[key] = seq
	}
	return nil
}

func (s *CaseStore) SaveDenuncia(d *model.Denuncia) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.UpdatedAt = time.Now()
	s.denuncias[d.ID] = d

	// Cleanup if exceeds max
	s.cleanupIfNeeded()
}

func (s *CaseStore) SaveCargo(c *model.Cargo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.UpdatedAt = time.Now()
	s.cargos[c.ID] = c
}

func (s *CaseStore) SaveGiro(g *model.Giro) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.UpdatedAt = time.Now()
	s.giros[g.ID] = g
}

func (s *CaseStore) SaveReclamo(r *model.Reclamo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.UpdatedAt = time.Now()
	s.reclamos[r.ID] = r
}

// GetDenuncia returns a copy of the denuncia, or nil
func (s *CaseStore) GetDenuncia(id string) *model.Denuncia {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.denuncias[id].Clone()
}

func (s *CaseStore) GetCargo(id string) *model.Cargo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cargos[id]
	if !ok {
		return nil
	}
	cp := *c
	return &cp
}

func (s *CaseStore) GetGiro(id string) *model.Giro {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.giros[id]
	if !ok {
		return nil
	}
	cp := *g
	return &cp
}

func (s *CaseStore) GetReclamo(id string) *model.Reclamo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reclamos[id]
	if !ok {
		return nil
	}
	cp := *r
	return &cp
}

// Denuncias returns copies of every denuncia, in id order
func (s *CaseStore) Denuncias() []*model.Denuncia {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.Denuncia, 0, len(s.denuncias))
	for _, d := range s.denuncias {
		result = append(result, d.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// DenunciasByAduana returns copies of the denuncias of one customs office
func (s *CaseStore) DenunciasByAduana(aduana string) []*model.Denuncia {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Denuncia
	for _, d := range s.denuncias {
		if d.Aduana == aduana {
			result = append(result, d.Clone())
		}
	}
	return result
}

func (s *CaseStore) CargosByAduana(aduana string) []*model.Cargo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Cargo
	for _, c := range s.cargos {
		if c.Aduana == aduana {
			cp := *c
			result = append(result, &cp)
		}
	}
	return result
}

func (s *CaseStore) GirosByAduana(aduana string) []*model.Giro {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Giro
	for _, g := range s.giros {
		if g.Aduana == aduana {
			cp := *g
			result = append(result, &cp)
		}
	}
	return result
}

func (s *CaseStore) ReclamosByAduana(aduana string) []*model.Reclamo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Reclamo
	for _, r := range s.reclamos {
		if r.Aduana == aduana {
			cp := *r
			result = append(result, &cp)
		}
	}
	return result
}

// DeleteDenuncia removes a denuncia together with its cargos, giros and reclamos
func (s *CaseStore) DeleteDenuncia(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteDenuncia(id)
}

// Must be called with lock held
func (s *CaseStore) deleteDenuncia(id string) {
	delete(s.denuncias, id)
	for cid, c := range s.cargos {
		if c.DenunciaID != id {
			continue
		}
		for gid, g := range s.giros {
			if g.CargoID == cid {
				delete(s.giros, gid)
			}
		}
		delete(s.cargos, cid)
	}
	for rid, r := range s.reclamos {
		if r.DenunciaID == id {
			delete(s.reclamos, rid)
		}
	}
}

// cleanupIfNeeded removes the oldest closed denuncias if the store exceeds
// maxCases. Open cases are never evicted.
// Must be called with lock held
func (s *CaseStore) cleanupIfNeeded() {
	if s.maxCases <= 0 {
		return // Unlimited
	}

	if len(s.denuncias) <= s.maxCases {
		return
	}

	closed := make([]*model.Denuncia, 0, len(s.denuncias))
	for _, d := range s.denuncias {
		if d.Status.IsTerminal() {
			closed = append(closed, d)
		}
	}
	sort.Slice(closed, func(i, j int) bool {
		return closed[i].CreatedAt.Before(closed[j].CreatedAt)
	})

	removeCount := len(s.denuncias) - s.maxCases
	for i := 0; i < removeCount && i < len(closed); i++ {
		slog.Info("auto-cleaning closed denuncia",
			"denuncia_id", closed[i].ID,
			"numero", closed[i].Numero,
			"created_at", closed[i].CreatedAt,
		)
		s.deleteDenuncia(closed[i].ID)
	}
}

// Count returns the number of denuncias in the store
func (s *CaseStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.denuncias)
}
