package scenes

import "sort"

// Snapshot is a point-in-time, read-only copy of orchestrator state.
// Element slices inside breakdown entries are shared with the cache and must
// not be mutated by consumers.
type Snapshot struct {
	Scenes      []Summary
	TotalScenes int

	Selected         *Detail
	Nav              *NavContext
	ShowDetailPanel  bool
	ShowSummaryPanel bool

	ListErr      string
	DetailErr    string
	BreakdownErr string

	Breakdowns     map[string]Breakdown
	LoadingScenes  []string
	UpdatingScenes []string

	SearchQuery string
	TypeFilter  string
	SortBy      SortKey
	SortOrder   SortOrder
}

// Snapshot copies the current state for readers.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	scenes := make([]Summary, len(o.scenes))
	copy(scenes, o.scenes)

	breakdowns := make(map[string]Breakdown, len(o.breakdowns))
	for number, entry := range o.breakdowns {
		breakdowns[number] = entry
	}

	return Snapshot{
		Scenes:           scenes,
		TotalScenes:      o.total,
		Selected:         o.selected,
		Nav:              o.nav,
		ShowDetailPanel:  o.showDetailPanel,
		ShowSummaryPanel: o.showSummaryPanel,
		ListErr:          o.listErr,
		DetailErr:        o.detailErr,
		BreakdownErr:     o.breakdownErr,
		Breakdowns:       breakdowns,
		LoadingScenes:    sortedKeys(o.loading),
		UpdatingScenes:   sortedKeys(o.updating),
		SearchQuery:      o.searchQuery,
		TypeFilter:       o.typeFilter,
		SortBy:           o.sortBy,
		SortOrder:        o.sortOrder,
	}
}

// FilteredScenes applies the snapshot's search query and type filter.
func (s Snapshot) FilteredScenes() []Summary {
	return Filter(s.Scenes, s.SearchQuery, s.TypeFilter)
}

// SortedScenes orders the filtered scenes by the snapshot's sort settings.
func (s Snapshot) SortedScenes() []Summary {
	return Sort(s.FilteredScenes(), s.SortBy, s.SortOrder)
}

// BreakdownFor returns the cached breakdown for a scene number. Absence
// means "not yet loaded", not "no data".
func (s Snapshot) BreakdownFor(sceneNumber string) (Breakdown, bool) {
	entry, ok := s.Breakdowns[sceneNumber]
	return entry, ok
}

// IsLoading reports whether a read is in flight for the scene number.
func (s Snapshot) IsLoading(sceneNumber string) bool {
	return containsString(s.LoadingScenes, sceneNumber)
}

// IsUpdating reports whether a write is in flight for the scene number.
func (s Snapshot) IsUpdating(sceneNumber string) bool {
	return containsString(s.UpdatingScenes, sceneNumber)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func containsString(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}
