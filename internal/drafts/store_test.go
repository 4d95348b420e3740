package drafts_test

import (
	"context"
	"errors"
	"testing"

	"mythus/internal/callsheet"
	"mythus/internal/drafts"
	"mythus/internal/services"
	"mythus/internal/sheet"
	"mythus/internal/testsupport"
)

func openStore(t *testing.T) *drafts.Store {
	t.Helper()
	store, err := drafts.Open(testsupport.NewConfig(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveAssignsIDAndRoundTrips(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	doc := callsheet.New()
	doc = callsheet.Reduce(doc, callsheet.SetField{Path: "director", Value: "Ada Lovelace"})

	draft := &drafts.Draft{
		Kind:         drafts.KindCallSheet,
		ScreenplayID: "sp-1",
		Title:        "Day 4 call sheet",
		Document:     doc,
	}
	if err := store.Save(ctx, draft); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if draft.ID == "" {
		t.Fatal("expected generated draft id")
	}
	if draft.CreatedAt.IsZero() || draft.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	loaded, err := store.Get(ctx, draft.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if loaded.Title != "Day 4 call sheet" || loaded.Kind != drafts.KindCallSheet {
		t.Fatalf("unexpected draft: %+v", loaded)
	}
	if got := loaded.Document.StringField("director"); got != "Ada Lovelace" {
		t.Fatalf("document did not round-trip: %v", loaded.Document["director"])
	}
}

func TestSaveUpdatesExistingDraft(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	draft := &drafts.Draft{Kind: drafts.KindDailyReport, Title: "Day 1 report", Document: sheet.Document{}}
	if err := store.Save(ctx, draft); err != nil {
		t.Fatalf("first save: %v", err)
	}
	created := draft.CreatedAt

	draft.Title = "Day 1 report (revised)"
	if err := store.Save(ctx, draft); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := store.Get(ctx, draft.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if loaded.Title != "Day 1 report (revised)" {
		t.Fatalf("update not applied: %q", loaded.Title)
	}
	if !loaded.CreatedAt.Equal(created) {
		t.Fatalf("created_at changed on update: %v vs %v", loaded.CreatedAt, created)
	}

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("update should not create a second row, got %d", len(all))
	}
}

func TestSaveValidation(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	err := store.Save(ctx, &drafts.Draft{Kind: "memo", Title: "x", Document: sheet.Document{}})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for bad kind, got %v", err)
	}
	err = store.Save(ctx, &drafts.Draft{Kind: drafts.KindCallSheet, Title: "  ", Document: sheet.Document{}})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for blank title, got %v", err)
	}
}

func TestListFiltersByKind(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for _, draft := range []*drafts.Draft{
		{Kind: drafts.KindCallSheet, Title: "sheet a", Document: sheet.Document{}},
		{Kind: drafts.KindCallSheet, Title: "sheet b", Document: sheet.Document{}},
		{Kind: drafts.KindDailyReport, Title: "report a", Document: sheet.Document{}},
	} {
		if err := store.Save(ctx, draft); err != nil {
			t.Fatalf("Save %q: %v", draft.Title, err)
		}
	}

	sheets, err := store.List(ctx, drafts.KindCallSheet)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sheets) != 2 {
		t.Fatalf("expected 2 call sheets, got %d", len(sheets))
	}
	for _, draft := range sheets {
		if draft.Kind != drafts.KindCallSheet {
			t.Fatalf("wrong kind in filtered list: %+v", draft)
		}
	}

	if _, err := store.List(ctx, "memo"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for bad kind filter, got %v", err)
	}
}

func TestGetAndDeleteUnknownDraft(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if err := store.Delete(ctx, "missing"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestDeleteRemovesDraft(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	draft := &drafts.Draft{Kind: drafts.KindCallSheet, Title: "scratch", Document: sheet.Document{}}
	if err := store.Save(ctx, draft); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, draft.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, draft.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected draft gone, got %v", err)
	}
}

func TestOpenRefusesSecondWriter(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first, err := drafts.Open(cfg)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	defer first.Close()

	if _, err := drafts.Open(cfg); err == nil {
		t.Fatal("expected second open on the same database to fail")
	}
}
