package migrate

import (
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
)

// CreateSQLMigration scaffolds a new timestamped SQL migration in dir.
func CreateSQLMigration(dir, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("goose create: %w", err)
	}
	return nil
}
