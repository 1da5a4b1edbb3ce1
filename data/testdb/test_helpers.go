package testdb

import (
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pfenwick/coursedates/data/projectpath"
)

// resets the test database to a clean schema
func SetupTestDb() error {
	testDb := os.Getenv("TEST_DB_CONN")

	m, err := migrate.New("file://"+projectpath.Root+"/migrations", testDb)
	if err != nil {
		return err
	}
	err = m.Down()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	err = m.Up()
	if err != nil {
		return err
	}
	return nil
}
