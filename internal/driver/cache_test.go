package driver

import (
	"reflect"
	"testing"

	"sable/internal/diag"
	"sable/internal/project"
	"sable/internal/source"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenCache("sable-test")
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	return cache
}

func TestCacheMissOnAbsentKey(t *testing.T) {
	cache := openTestCache(t)
	var out CachePayload
	ok, err := cache.Get(UnitDigest("absent", project.Features{}), &out)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Fatalf("cold cache reported a hit")
	}
}

func TestCacheDiagnosticsRoundTrip(t *testing.T) {
	cache := openTestCache(t)

	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LowBreakOutsideLoop,
		Message:  "'break' outside of a loop",
		Primary:  source.Span{File: 1, Start: 10, End: 15},
		Notes: []diag.Note{
			{Span: source.Span{File: 1, Start: 2, End: 4}, Msg: "enclosing function starts here"},
		},
		Fixes: []diag.Fix{{
			Title: "remove the break",
			Edits: []diag.FixEdit{{Span: source.Span{File: 1, Start: 10, End: 15}, NewText: ""}},
		}},
	})
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.LowParenArgsCompat,
		Message:  "parenthesized arguments on this path are deprecated",
		Primary:  source.Span{File: 1, Start: 20, End: 30},
	})

	key := UnitDigest("roundtrip", project.Features{Placement: true})
	put := &CachePayload{
		Schema: cacheSchemaVersion,
		Name:   "roundtrip",
		Digest: key,
		Diags:  recordDiagnostics(bag),
		Items:  3,
		Bodies: 2,
		Defs:   5,
	}
	if err := cache.Put(key, put); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var got CachePayload
	ok, err := cache.Get(key, &got)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatalf("stored payload not found")
	}
	if !reflect.DeepEqual(&got, put) {
		t.Fatalf("payload changed across the disk round trip:\n got %+v\nwant %+v", got, *put)
	}
	if !reflect.DeepEqual(got.Bag().Items(), bag.Items()) {
		t.Fatalf("diagnostics changed across the disk round trip")
	}
}

func TestCacheOverwrite(t *testing.T) {
	cache := openTestCache(t)
	key := UnitDigest("twice", project.Features{})

	if err := cache.Put(key, &CachePayload{Schema: cacheSchemaVersion, Name: "twice", Items: 1}); err != nil {
		t.Fatalf("first Put failed: %v", err)
	}
	if err := cache.Put(key, &CachePayload{Schema: cacheSchemaVersion, Name: "twice", Items: 2}); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	var got CachePayload
	if ok, err := cache.Get(key, &got); err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if got.Items != 2 {
		t.Fatalf("cache kept the stale payload")
	}
}

func TestUnitDigestSensitivity(t *testing.T) {
	base := UnitDigest("unit", project.Features{})
	if UnitDigest("unit", project.Features{}) != base {
		t.Fatalf("digest is not deterministic")
	}
	if UnitDigest("other", project.Features{}) == base {
		t.Fatalf("digest ignores the unit name")
	}
	if UnitDigest("unit", project.Features{ImplicitRegions: true}) == base {
		t.Fatalf("digest ignores feature gates")
	}
}

func TestCacheDropAll(t *testing.T) {
	cache := openTestCache(t)
	key := UnitDigest("drop", project.Features{})
	if err := cache.Put(key, &CachePayload{Schema: cacheSchemaVersion, Name: "drop"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll failed: %v", err)
	}
	var out CachePayload
	if ok, _ := cache.Get(key, &out); ok {
		t.Fatalf("dropped cache still reports a hit")
	}
}
