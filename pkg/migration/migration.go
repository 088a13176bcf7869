// Package migration tracks and applies schema migrations for Volt projects.
//
// Each migration lives in the project's database/migrations directory and
// self-registers from an init() func:
//
//	func init() { migration.Register("20240101000000_create_posts", &createPosts{}) }
//
//	type createPosts struct{}
//	func (createPosts) Up(db *gorm.DB) error   { return db.AutoMigrate(&models.Post{}) }
//	func (createPosts) Down(db *gorm.DB) error { return db.Migrator().DropTable("posts") }
//
// Applied migrations are recorded in the volt_migrations table with a batch
// number; rollback reverses the most recent batch.
package migration

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"gorm.io/gorm"

	"github.com/voltframework/volt/pkg/logger"
)

// Migration is implemented by every schema migration.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RanAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "volt_migrations" }

type entry struct {
	name string
	m    Migration
}

var registry []entry

// Register adds a migration under a timestamp-prefixed name. Names sort
// lexicographically, which is also chronological for the generated format.
func Register(name string, m Migration) {
	registry = append(registry, entry{name: name, m: m})
}

// Registered returns the names of all registered migrations, sorted.
func Registered() []string {
	names := make([]string, 0, len(registry))
	for _, e := range registry {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names
}

// Runner applies and reverses migrations against one database.
type Runner struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Runner { return &Runner{db: db} }

func (r *Runner) ensureTable() error {
	if err := r.db.AutoMigrate(&record{}); err != nil {
		return fmt.Errorf("migration: ensure tracking table: %w", err)
	}
	return nil
}

func (r *Runner) applied() (map[string]record, error) {
	var ran []record
	if err := r.db.Find(&ran).Error; err != nil {
		return nil, fmt.Errorf("migration: read tracking table: %w", err)
	}
	out := make(map[string]record, len(ran))
	for _, rec := range ran {
		out[rec.Name] = rec
	}
	return out, nil
}

func (r *Runner) pending() ([]entry, error) {
	ran, err := r.applied()
	if err != nil {
		return nil, err
	}

	var out []entry
	for _, e := range registry {
		if _, ok := ran[e.name]; !ok {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out, nil
}

func (r *Runner) lastBatch() int {
	var row struct{ Max int }
	r.db.Model(&record{}).Select("MAX(batch) as max").Scan(&row)
	return row.Max
}

// Run applies every pending migration as one batch.
func (r *Runner) Run() error {
	if err := r.ensureTable(); err != nil {
		return err
	}

	pending, err := r.pending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("Nothing to migrate.")
		return nil
	}

	batch := r.lastBatch() + 1
	for _, e := range pending {
		logger.Info("migrating", "name", e.name, "batch", batch)
		fmt.Printf("  up   %s\n", e.name)

		if err := e.m.Up(r.db); err != nil {
			return fmt.Errorf("migration: %s up: %w", e.name, err)
		}
		if err := r.db.Create(&record{Name: e.name, Batch: batch}).Error; err != nil {
			return fmt.Errorf("migration: record %s: %w", e.name, err)
		}
	}

	fmt.Printf("Migrated %d migration(s) in batch %d.\n", len(pending), batch)
	return nil
}

// Rollback reverses the most recent batch in reverse application order.
func (r *Runner) Rollback() error {
	if err := r.ensureTable(); err != nil {
		return err
	}

	batch := r.lastBatch()
	if batch == 0 {
		fmt.Println("Nothing to roll back.")
		return nil
	}
	return r.rollbackBatch(batch)
}

func (r *Runner) rollbackBatch(batch int) error {
	var records []record
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&records).Error; err != nil {
		return fmt.Errorf("migration: read batch %d: %w", batch, err)
	}

	byName := make(map[string]Migration, len(registry))
	for _, e := range registry {
		byName[e.name] = e.m
	}

	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return fmt.Errorf("migration: %s is recorded but not registered; cannot roll back", rec.Name)
		}

		logger.Info("rolling back", "name", rec.Name, "batch", batch)
		fmt.Printf("  down %s\n", rec.Name)

		if err := m.Down(r.db); err != nil {
			return fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.db.Delete(&rec).Error; err != nil {
			return fmt.Errorf("migration: unrecord %s: %w", rec.Name, err)
		}
	}
	return nil
}

// Reset rolls back every batch, newest first, then re-applies everything.
func (r *Runner) Reset() error {
	if err := r.ensureTable(); err != nil {
		return err
	}

	for batch := r.lastBatch(); batch > 0; batch = r.lastBatch() {
		if err := r.rollbackBatch(batch); err != nil {
			return err
		}
	}
	return r.Run()
}

// Status prints a table of registered migrations and their state.
func (r *Runner) Status() error {
	if err := r.ensureTable(); err != nil {
		return err
	}

	ran, err := r.applied()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "MIGRATION\tSTATUS\tBATCH")
	for _, name := range Registered() {
		if rec, ok := ran[name]; ok {
			fmt.Fprintf(w, "%s\tran\t%d\n", name, rec.Batch)
		} else {
			fmt.Fprintf(w, "%s\tpending\t-\n", name)
		}
	}
	return w.Flush()
}
