package scenes

import (
	"context"

	"golang.org/x/sync/errgroup"

	"mythus/internal/services"
)

// LoadBreakdownsForScenes bulk-loads breakdowns for the given scene numbers.
// The element vocabulary is fetched once; each requested scene not already
// cached or in flight is then fetched with bounded parallelism. A scene whose
// fetch fails gets a synthesized empty entry built from the vocabulary, so
// after a successful vocabulary fetch every requested scene number has a
// cache entry and its loading marker is gone, whatever the per-scene
// outcomes were.
func (o *Orchestrator) LoadBreakdownsForScenes(ctx context.Context, sceneNumbers []string) error {
	ctx, done := o.opCtx(ctx)
	defer done()

	o.mu.Lock()
	missing := make([]string, 0, len(sceneNumbers))
	seen := make(map[string]struct{}, len(sceneNumbers))
	for _, number := range sceneNumbers {
		if number == "" {
			continue
		}
		if _, dup := seen[number]; dup {
			continue
		}
		seen[number] = struct{}{}
		if _, cached := o.breakdowns[number]; cached {
			continue
		}
		if _, inFlight := o.loading[number]; inFlight {
			continue
		}
		o.loading[number] = struct{}{}
		missing = append(missing, number)
	}
	o.mu.Unlock()

	if len(missing) == 0 {
		return nil
	}

	vocabulary, err := o.svc.ElementKeys(ctx, o.screenplayID)
	if err != nil {
		o.mu.Lock()
		for _, number := range missing {
			delete(o.loading, number)
		}
		o.breakdownErr = err.Error()
		o.mu.Unlock()
		o.log(ctx).Warn("element vocabulary fetch failed", "error", err)
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(o.bulkParallel)
	for _, number := range missing {
		group.Go(func() error {
			defer func() {
				o.mu.Lock()
				delete(o.loading, number)
				o.mu.Unlock()
			}()

			fetchCtx := services.WithSceneNumber(groupCtx, number)
			entry, fetchErr := o.svc.SceneBreakdown(fetchCtx, o.screenplayID, number)

			var breakdown Breakdown
			if fetchErr != nil || entry == nil {
				breakdown = emptyBreakdown(number, vocabulary)
				if fetchErr != nil {
					o.log(fetchCtx).Warn("breakdown fetch failed, caching empty entry", "error", fetchErr)
				}
			} else {
				breakdown = withVocabulary(*entry, vocabulary)
				breakdown.SceneNumber = number
			}

			o.mu.Lock()
			o.breakdowns[number] = breakdown
			o.mu.Unlock()
			return nil
		})
	}
	// Per-scene failures never abort the batch, so Wait cannot fail.
	_ = group.Wait()

	o.mu.Lock()
	o.breakdownErr = ""
	o.mu.Unlock()
	return nil
}

// GenerateBreakdown runs the automated extraction for one scene, re-fetches
// the vocabulary, and caches the entry built from the proposed values.
// HasBreakdown is set only after a successful generation.
func (o *Orchestrator) GenerateBreakdown(ctx context.Context, sceneNumber string) error {
	ctx, done := o.opCtx(ctx)
	defer done()
	ctx = services.WithSceneNumber(ctx, sceneNumber)

	if !o.beginUpdate(sceneNumber) {
		return nil
	}
	defer o.endUpdate(sceneNumber)

	proposed, err := o.svc.GenerateBreakdown(ctx, o.screenplayID, sceneNumber, true)
	if err != nil {
		o.setBreakdownErr(err)
		o.log(ctx).Warn("breakdown generation failed", "error", err)
		return err
	}

	vocabulary, err := o.svc.ElementKeys(ctx, o.screenplayID)
	if err != nil {
		o.setBreakdownErr(err)
		o.log(ctx).Warn("vocabulary refresh after generation failed", "error", err)
		return err
	}

	entry := emptyBreakdown(sceneNumber, vocabulary)
	for i := range entry.Elements {
		if values, ok := proposed[entry.Elements[i].Key]; ok {
			entry.Elements[i].Values = values
		}
	}
	entry.HasBreakdown = true

	o.mu.Lock()
	o.breakdowns[sceneNumber] = entry
	o.breakdownErr = ""
	o.mu.Unlock()
	return nil
}

// UpdateBreakdown applies an optimistic local update, then pushes a
// merge-upsert restricted to non-empty element values. On failure the cache
// entry is reconciled from the server rather than rolled back in place.
func (o *Orchestrator) UpdateBreakdown(ctx context.Context, sceneNumber string, elements []Element) error {
	ctx, done := o.opCtx(ctx)
	defer done()
	ctx = services.WithSceneNumber(ctx, sceneNumber)

	if !o.beginUpdate(sceneNumber) {
		return nil
	}
	defer o.endUpdate(sceneNumber)

	o.mu.Lock()
	o.breakdowns[sceneNumber] = Breakdown{
		SceneNumber:  sceneNumber,
		Elements:     elements,
		HasBreakdown: true,
	}
	o.mu.Unlock()

	payload := make([]Element, 0, len(elements))
	for _, element := range elements {
		if len(element.Values) > 0 {
			payload = append(payload, element)
		}
	}

	if err := o.svc.UpsertBreakdown(ctx, o.screenplayID, sceneNumber, payload); err != nil {
		o.setBreakdownErr(err)
		o.log(ctx).Warn("breakdown upsert failed, reconciling from server", "error", err)
		if fresh, fetchErr := o.svc.SceneBreakdown(ctx, o.screenplayID, sceneNumber); fetchErr == nil && fresh != nil {
			o.mu.Lock()
			o.breakdowns[sceneNumber] = *fresh
			o.mu.Unlock()
		}
		return err
	}

	o.mu.Lock()
	o.breakdownErr = ""
	o.mu.Unlock()
	return nil
}

// RefreshBreakdown unconditionally re-fetches one scene's breakdown. On
// failure the last-known-good cache entry is retained.
func (o *Orchestrator) RefreshBreakdown(ctx context.Context, sceneNumber string) error {
	ctx, done := o.opCtx(ctx)
	defer done()
	ctx = services.WithSceneNumber(ctx, sceneNumber)

	o.mu.Lock()
	if _, inFlight := o.loading[sceneNumber]; inFlight {
		o.mu.Unlock()
		return nil
	}
	o.loading[sceneNumber] = struct{}{}
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		delete(o.loading, sceneNumber)
		o.mu.Unlock()
	}()

	fresh, err := o.svc.SceneBreakdown(ctx, o.screenplayID, sceneNumber)
	if err != nil {
		o.log(ctx).Warn("breakdown refresh failed, keeping cached entry", "error", err)
		return err
	}
	if fresh == nil {
		return nil
	}

	o.mu.Lock()
	o.breakdowns[sceneNumber] = *fresh
	o.mu.Unlock()
	return nil
}

func (o *Orchestrator) beginUpdate(sceneNumber string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, inFlight := o.updating[sceneNumber]; inFlight {
		return false
	}
	o.updating[sceneNumber] = struct{}{}
	return true
}

func (o *Orchestrator) endUpdate(sceneNumber string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.updating, sceneNumber)
}

func (o *Orchestrator) setBreakdownErr(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.breakdownErr = err.Error()
}

// emptyBreakdown synthesizes a "no breakdown yet" entry from the vocabulary.
func emptyBreakdown(sceneNumber string, vocabulary []ElementKey) Breakdown {
	elements := make([]Element, len(vocabulary))
	for i, key := range vocabulary {
		available := make([]string, len(key.AvailableValues))
		copy(available, key.AvailableValues)
		elements[i] = Element{Key: key.Key, Values: []string{}, AvailableValues: available}
	}
	return Breakdown{SceneNumber: sceneNumber, Elements: elements}
}

// withVocabulary folds vocabulary entries into a fetched breakdown: known
// elements gain the current available values, unseen vocabulary keys are
// appended with empty values.
func withVocabulary(breakdown Breakdown, vocabulary []ElementKey) Breakdown {
	index := make(map[string]int, len(breakdown.Elements))
	elements := make([]Element, len(breakdown.Elements))
	copy(elements, breakdown.Elements)
	for i, element := range elements {
		index[element.Key] = i
	}

	for _, key := range vocabulary {
		available := make([]string, len(key.AvailableValues))
		copy(available, key.AvailableValues)
		if i, ok := index[key.Key]; ok {
			elements[i].AvailableValues = available
			continue
		}
		elements = append(elements, Element{Key: key.Key, Values: []string{}, AvailableValues: available})
	}

	breakdown.Elements = elements
	return breakdown
}
