package plans

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	domainErrors "github.com/lunorise/platform/internal/domain/errors"
	"github.com/lunorise/platform/internal/domain/model"
)

// Catalog holds the investment tiers served to users. The catalog is
// configuration data: a compiled-in default set, optionally replaced
// by a JSON file, never mutated at runtime.
type Catalog struct {
	plans []model.Plan
	byID  map[string]model.Plan
}

type planFile struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	DepositCents        int64  `json:"deposit_cents"`
	PayoutPerCycleCents int64  `json:"payout_per_cycle_cents"`
	CycleCount          int    `json:"cycle_count"`
	TotalReturnCents    int64  `json:"total_return_cents"`
	Locked              bool   `json:"locked"`
	SortOrder           int    `json:"sort_order"`
}

// Default returns the built-in tier catalog.
func Default() *Catalog {
	catalog, err := build([]model.Plan{
		{ID: "starter", Name: "Starter Plan", DepositCents: 500, PayoutPerCycleCents: 50, CycleCount: 30, TotalReturnCents: 1500, SortOrder: 1},
		{ID: "basic", Name: "Basic Plan", DepositCents: 1000, PayoutPerCycleCents: 70, CycleCount: 35, TotalReturnCents: 3450, SortOrder: 2},
		{ID: "bronze", Name: "Bronze Plan", DepositCents: 12000, PayoutPerCycleCents: 1380, CycleCount: 34, TotalReturnCents: 58920, SortOrder: 3},
		{ID: "silver", Name: "Silver Plan", DepositCents: 25000, PayoutPerCycleCents: 2880, CycleCount: 35, TotalReturnCents: 125800, SortOrder: 4},
		{ID: "gold", Name: "Gold Plan", DepositCents: 50000, PayoutPerCycleCents: 6000, CycleCount: 35, TotalReturnCents: 260000, Locked: true, SortOrder: 5},
		{ID: "platinum", Name: "Platinum Plan", DepositCents: 120000, PayoutPerCycleCents: 14400, CycleCount: 35, TotalReturnCents: 624000, Locked: true, SortOrder: 6},
	})
	if err != nil {
		panic(fmt.Sprintf("built-in plan catalog invalid: %v", err))
	}
	return catalog
}

// Load builds the catalog from the file at path, or the built-in
// default when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plans file: %w", err)
	}

	var entries []planFile
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("parse plans file: %w", err)
	}

	plans := make([]model.Plan, 0, len(entries))
	for _, e := range entries {
		plans = append(plans, model.Plan{
			ID:                  e.ID,
			Name:                e.Name,
			DepositCents:        e.DepositCents,
			PayoutPerCycleCents: e.PayoutPerCycleCents,
			CycleCount:          e.CycleCount,
			TotalReturnCents:    e.TotalReturnCents,
			Locked:              e.Locked,
			SortOrder:           e.SortOrder,
		})
	}

	catalog, err := build(plans)
	if err != nil {
		return nil, fmt.Errorf("plans file %s: %w", path, err)
	}
	return catalog, nil
}

func build(plans []model.Plan) (*Catalog, error) {
	if len(plans) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one plan")
	}

	byID := make(map[string]model.Plan, len(plans))
	for _, p := range plans {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("plan id and name are required")
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate plan id %q", p.ID)
		}
		if p.DepositCents <= 0 || p.CycleCount <= 0 {
			return nil, fmt.Errorf("plan %q: deposit and cycle count must be positive", p.ID)
		}
		if p.TotalReturnCents < p.DepositCents {
			return nil, fmt.Errorf("plan %q: total return below deposit", p.ID)
		}
		byID[p.ID] = p
	}

	sorted := make([]model.Plan, len(plans))
	copy(sorted, plans)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SortOrder < sorted[j].SortOrder })

	return &Catalog{plans: sorted, byID: byID}, nil
}

// List returns all plans ordered by sort order.
func (c *Catalog) List() []model.Plan {
	out := make([]model.Plan, len(c.plans))
	copy(out, c.plans)
	return out
}

// Get returns the plan with the given id.
func (c *Catalog) Get(id string) (*model.Plan, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, domainErrors.ErrUnknownPlan
	}
	return &p, nil
}
