package db

import "testing"

func TestIsPostgres(t *testing.T) {
	cases := []struct {
		dsn  string
		want bool
	}{
		{"postgres://u:p@localhost:5432/store", true},
		{"postgresql://u@localhost/store", true},
		{"host=localhost user=store dbname=store", true},
		{"stockroom.db", false},
		{"file:test?mode=memory", false},
	}
	for _, tc := range cases {
		if got := IsPostgres(tc.dsn); got != tc.want {
			t.Errorf("IsPostgres(%q) = %v, want %v", tc.dsn, got, tc.want)
		}
	}
}

func TestNormalizePostgresDSNAddsSSLMode(t *testing.T) {
	got := NormalizePostgresDSN("host=localhost  user=store   dbname=store")
	want := "host=localhost user=store dbname=store sslmode=disable"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestNormalizePostgresDSNKeepsURLForm(t *testing.T) {
	dsn := "postgres://u:p@localhost:5432/store?sslmode=disable"
	if got := NormalizePostgresDSN(" \"" + dsn + "\" "); got != dsn {
		t.Fatalf("got %q want %q", got, dsn)
	}
}

func TestSqliteDSNForcesForeignKeys(t *testing.T) {
	if got := sqliteDSN("stockroom.db"); got != "stockroom.db?_fk=1" {
		t.Fatalf("got %q", got)
	}
	if got := sqliteDSN("file:x?mode=memory"); got != "file:x?mode=memory&_fk=1" {
		t.Fatalf("got %q", got)
	}
	if got := sqliteDSN("file:x?_fk=1"); got != "file:x?_fk=1" {
		t.Fatalf("got %q", got)
	}
}
