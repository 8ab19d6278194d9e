package catalog

import (
	"testing"

	"github.com/ccuhub/compscout/app/feed"
)

func TestStoreReplaceAll(t *testing.T) {
	store := NewStore()

	if store.Count() != 0 {
		t.Fatalf("Expected empty store, got %d records", store.Count())
	}
	if store.RefreshedAt() != nil {
		t.Error("Expected nil refresh time before first ingestion")
	}

	store.ReplaceAll([]feed.Competition{
		{ID: "1", Name: "第一屆賽事"},
		{ID: "2", Name: "第二屆賽事"},
	})

	if store.Count() != 2 {
		t.Fatalf("Expected 2 records, got %d", store.Count())
	}
	if store.RefreshedAt() == nil {
		t.Error("Expected refresh time after ingestion")
	}

	record, ok := store.Get("2")
	if !ok {
		t.Fatal("Expected record 2 to exist")
	}
	if record.Name != "第二屆賽事" {
		t.Errorf("Expected name '第二屆賽事', got: %s", record.Name)
	}

	// A second ingestion replaces the whole set
	store.ReplaceAll([]feed.Competition{
		{ID: "1", Name: "改版賽事"},
	})

	if store.Count() != 1 {
		t.Fatalf("Expected 1 record after replacement, got %d", store.Count())
	}
	if _, ok := store.Get("2"); ok {
		t.Error("Expected record 2 to be gone after replacement")
	}
	record, _ = store.Get("1")
	if record.Name != "改版賽事" {
		t.Errorf("Expected replaced name '改版賽事', got: %s", record.Name)
	}
}

func TestStoreAllReturnsCopy(t *testing.T) {
	store := NewStore()
	store.ReplaceAll([]feed.Competition{
		{ID: "1", Name: "原始名稱"},
	})

	records := store.All()
	records[0].Name = "被改掉的名稱"

	inside, _ := store.Get("1")
	if inside.Name != "原始名稱" {
		t.Errorf("Mutating the returned slice must not affect the store, got: %s", inside.Name)
	}
}
