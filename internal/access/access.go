// Package access implements plan-based feature gating.
//
// Analytics code never consults this package; gating is applied by the
// presentation layer when it decides which dashboard sections to render.
package access

import (
	"sort"
	"strings"
	"sync"
)

// Resolver answers whether a plan may use a feature.
type Resolver interface {
	CanUse(featureID, planID string) bool
}

// Feature maps a feature id to the plans allowed to use it. An empty
// AllowedPlans list means the feature is locked for everyone.
type Feature struct {
	FeatureID    string
	AllowedPlans []string
}

// Known plan ids.
const (
	PlanFree  = "free"
	PlanPro   = "pro"
	PlanElite = "elite"
)

// Dashboard section feature ids.
const (
	FeatureOverview    = "DASHBOARD_OVERVIEW"
	FeatureWinLossDays = "DASHBOARD_WIN_LOSS_DAYS"
	FeatureStrategy    = "DASHBOARD_RISK_STRATEGY"
	FeatureEntryExit   = "DASHBOARD_ENTRY_EXIT"
	FeatureTiming      = "DASHBOARD_TIMING"
	FeatureQuality     = "DASHBOARD_TRADE_QUALITY"
	FeatureUnderlying  = "DASHBOARD_UNDERLYING"
	FeatureExport      = "JOURNAL_EXPORT"
)

var allPlans = []string{PlanFree, PlanPro, PlanElite}
var paidPlans = []string{PlanPro, PlanElite}

// DefaultFeatures is the built-in registry: the overview is open to every
// plan, the deeper analytics sections and export need a paid plan.
func DefaultFeatures() []Feature {
	return []Feature{
		{FeatureID: FeatureOverview, AllowedPlans: allPlans},
		{FeatureID: FeatureWinLossDays, AllowedPlans: allPlans},
		{FeatureID: FeatureStrategy, AllowedPlans: paidPlans},
		{FeatureID: FeatureEntryExit, AllowedPlans: paidPlans},
		{FeatureID: FeatureTiming, AllowedPlans: paidPlans},
		{FeatureID: FeatureQuality, AllowedPlans: []string{PlanElite}},
		{FeatureID: FeatureUnderlying, AllowedPlans: paidPlans},
		{FeatureID: FeatureExport, AllowedPlans: allPlans},
	}
}

// Registry is an in-memory Resolver over a feature table.
type Registry struct {
	mu       sync.RWMutex
	features map[string][]string
}

// NewRegistry builds a registry from the given features.
func NewRegistry(features []Feature) *Registry {
	r := &Registry{features: make(map[string][]string, len(features))}
	for _, f := range features {
		r.features[f.FeatureID] = append([]string(nil), f.AllowedPlans...)
	}
	return r
}

// CanUse reports whether planID may use featureID. Empty inputs and unknown
// features resolve to false rather than an error.
func (r *Registry) CanUse(featureID, planID string) bool {
	if featureID == "" || planID == "" {
		return false
	}

	r.mu.RLock()
	plans, ok := r.features[featureID]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	for _, p := range plans {
		if p == planID {
			return true
		}
	}
	return false
}

// SetAllowedPlans replaces the plan list for a feature, creating the feature
// if it does not exist. Feature ids are normalized to upper case.
func (r *Registry) SetAllowedPlans(featureID string, planIDs []string) {
	if featureID == "" {
		return
	}
	fid := strings.ToUpper(featureID)

	r.mu.Lock()
	r.features[fid] = append([]string(nil), planIDs...)
	r.mu.Unlock()
}

// Features returns the registry contents sorted by feature id.
func (r *Registry) Features() []Feature {
	r.mu.RLock()
	out := make([]Feature, 0, len(r.features))
	for id, plans := range r.features {
		out = append(out, Feature{FeatureID: id, AllowedPlans: append([]string(nil), plans...)})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].FeatureID < out[j].FeatureID })
	return out
}
