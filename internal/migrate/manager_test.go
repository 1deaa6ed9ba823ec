package migrate

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCollectSQLOrdersLexically(t *testing.T) {
	files := fstest.MapFS{
		"0002_assets.up.sql":   {Data: []byte("create table assets();")},
		"0001_init.up.sql":     {Data: []byte("create table users();")},
		"0001_init.down.sql":   {Data: []byte("drop table users;")},
		"seeds/0001.seed.sql":  {Data: []byte("insert into users values (1);")},
		"notes.txt":            {Data: []byte("ignored")},
	}

	got, err := collectSQL(files, ".up.sql")
	if err != nil {
		t.Fatalf("collectSQL: %v", err)
	}
	if len(got) != 2 || got[0] != "0001_init.up.sql" || got[1] != "0002_assets.up.sql" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestSplitStatementsRespectsQuotes(t *testing.T) {
	stmts := splitStatements(`insert into t values ('a;b'); update t set x = 1;`)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %v", len(stmts), stmts)
	}
}

func TestUpAppliesPendingOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	files := fstest.MapFS{
		"0001_init.up.sql":   {Data: []byte("create table users();")},
		"0002_assets.up.sql": {Data: []byte("create table assets();")},
	}

	mock.ExpectExec("create table if not exists schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("select name from schema_migrations where kind =").
		WithArgs(kindMigration).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("0001_init.up.sql"))
	mock.ExpectBegin()
	mock.ExpectExec("create table assets").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectExec("insert into schema_migrations").
		WithArgs(kindMigration, "0002_assets.up.sql", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	m := NewManager(db, files)
	if err := m.Up(context.Background()); err != nil {
		t.Fatalf("Up: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
