package orm

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type ticket struct {
	ID    uint `gorm:"primaryKey"`
	Label string
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	if err := db.AutoMigrate(&ticket{}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 45; i++ {
		db.Create(&ticket{Label: fmt.Sprintf("t%02d", i)})
	}
	return db
}

func TestPaginate(t *testing.T) {
	db := openDB(t)

	var items []ticket
	p, err := Paginate(db, &items, 2, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 20 {
		t.Errorf("page size = %d", len(items))
	}
	if items[0].Label != "t20" {
		t.Errorf("first item on page 2 = %s", items[0].Label)
	}
	if p.Total != 45 || p.TotalPages != 3 {
		t.Errorf("meta = %+v", p)
	}
}

func TestPaginateClamping(t *testing.T) {
	db := openDB(t)

	var items []ticket
	p, err := Paginate(db, &items, 0, -5)
	if err != nil {
		t.Fatal(err)
	}
	if p.Page != 1 || p.PerPage != defaultPerPage {
		t.Errorf("meta = %+v", p)
	}

	if p, _ = Paginate(db, &items, 1, 10_000); p.PerPage != maxPerPage {
		t.Errorf("per_page not capped: %+v", p)
	}
}
