package service

import (
	"context"
	"path/filepath"
	"questionnaire_backend/internal/repository"
	"questionnaire_backend/pkg/database"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestSyncSampleTemplatesAgainstDatabase(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "sync.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := NewTemplateService(repository.NewTemplateRepository(db), nil)
	ctx := context.Background()

	synced, err := svc.SyncSampleTemplates(ctx)
	if err != nil || synced != len(SampleTemplates()) {
		t.Fatalf("first sync = %d (%v), want %d", synced, err, len(SampleTemplates()))
	}
	if err := svc.DeleteTemplate(ctx, SampleVehicleCheckID); err != nil {
		t.Fatalf("DeleteTemplate: %v", err)
	}

	synced, err = svc.SyncSampleTemplates(ctx)
	if err != nil {
		t.Fatalf("sync after deleting a sample: %v", err)
	}
	if synced != 1 {
		t.Fatalf("resync = %d, want 1 restored", synced)
	}
	tpl, err := svc.GetTemplate(ctx, SampleVehicleCheckID)
	if err != nil {
		t.Fatalf("restored sample: %v", err)
	}
	if tpl.Name != "Vehicle Pre-Trip Inspection" || len(tpl.Sections) != 4 {
		t.Fatalf("unexpected restored sample %+v", tpl)
	}

	total, err := svc.CountTemplates(ctx)
	if err != nil || total != int64(len(SampleTemplates())) {
		t.Fatalf("CountTemplates = %d (%v)", total, err)
	}
	if synced, err = svc.SyncSampleTemplates(ctx); err != nil || synced != 0 {
		t.Fatalf("third sync = %d (%v), want 0", synced, err)
	}
}
