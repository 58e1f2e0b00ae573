package database

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// The status/priority CHECK constraints duplicate the request validation on
// purpose: invalid values that slip past the front door must still be
// rejected by the store.
const createTasksTable = `
CREATE TABLE IF NOT EXISTS tasks (
	id INT AUTO_INCREMENT PRIMARY KEY,
	title VARCHAR(200) NOT NULL,
	description TEXT NULL,
	status VARCHAR(20) NOT NULL CHECK (status IN ('pending', 'in_progress', 'completed')),
	priority VARCHAR(10) NOT NULL CHECK (priority IN ('low', 'medium', 'high')),
	category VARCHAR(100) NOT NULL,
	due_date CHAR(10) NOT NULL,
	created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
	updated_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6)
)`

// The trigger fires on every UPDATE statement against a row, regardless of
// which columns it touches, so updated_at moves even for no-op updates.
const createTouchTrigger = `
CREATE TRIGGER IF NOT EXISTS tasks_touch_updated_at
BEFORE UPDATE ON tasks
FOR EACH ROW
SET NEW.updated_at = CURRENT_TIMESTAMP(6)`

// EnsureSchema creates the tasks table and its updated_at trigger if they
// do not exist yet. It is safe to call on every start and never drops or
// alters existing data. Failures are logged and returned; callers decide
// whether they are fatal.
func EnsureSchema(db *sqlx.DB) error {
	if _, err := db.Exec(createTasksTable); err != nil {
		log.Printf("Failed to create tasks table: %v", err)
		return err
	}
	if _, err := db.Exec(createTouchTrigger); err != nil {
		log.Printf("Failed to create updated_at trigger: %v", err)
		return err
	}
	return nil
}
