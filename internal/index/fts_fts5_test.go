//go:build sqlite_fts5

package index

import "testing"

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM researchers_fts`).Scan(&count); err != nil {
		t.Fatalf("researchers_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithSnippet(t *testing.T) {
	db := testDB(t)
	if _, err := Sync(db, sampleRecords(), quietLogger()); err != nil {
		t.Fatal(err)
	}
	results, err := db.Search("translation", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Mona Ali" {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Snippet == "" {
		t.Error("expected non-empty snippet")
	}
}

func TestFTS5_DeleteRemovesFromFTS(t *testing.T) {
	db := testDB(t)
	_, _ = Sync(db, sampleRecords(), quietLogger())
	_ = db.DeleteProfile("Amr Hassan")

	results, _ := db.Search("deep", 10)
	for _, r := range results {
		if r.Name == "Amr Hassan" {
			t.Error("deleted profile still in FTS index")
		}
	}
}

func TestFTS5_PrefixTokensOnly(t *testing.T) {
	db := testDB(t)
	if _, err := Sync(db, sampleRecords(), quietLogger()); err != nil {
		t.Fatal(err)
	}
	if results, _ := db.Search("hass", 10); len(results) != 1 || results[0].Name != "Amr Hassan" {
		t.Errorf("prefix search = %+v", results)
	}
	if results, _ := db.Search("assan", 10); len(results) != 0 {
		t.Errorf("infix search = %+v, want none", results)
	}
}
