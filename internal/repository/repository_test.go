package repository

import (
	"context"
	"errors"
	"path/filepath"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/util"
	"questionnaire_backend/pkg/database"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "questionnaire.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testTemplate(id, name string) *model.Template {
	tpl := &model.Template{
		Name:     name,
		Category: "Safety",
		Tags:     model.StringList{"audit"},
		Version:  1,
		Sections: model.Sections{{ID: "s1", Title: "General", Questions: []model.Question{
			{ID: "q1", Type: model.QuestionText, Label: "Inspector"},
		}}},
	}
	tpl.ID = id
	return tpl
}

func TestTemplateRestoreAfterSoftDelete(t *testing.T) {
	repo := NewTemplateRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testTemplate("tpl-1", "Site audit")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	found, err := repo.LookupIDs(ctx, []string{"tpl-1", "tpl-2"})
	if err != nil {
		t.Fatalf("LookupIDs: %v", err)
	}
	if deleted, ok := found["tpl-1"]; !ok || deleted {
		t.Fatalf("live template lookup = %v", found)
	}
	if _, ok := found["tpl-2"]; ok {
		t.Fatalf("missing template reported as present: %v", found)
	}

	if err := repo.Delete(ctx, "tpl-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, "tpl-1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("soft-deleted template still visible: %v", err)
	}
	if err := repo.Create(ctx, testTemplate("tpl-1", "Site audit")); err == nil {
		t.Fatal("re-creating a soft-deleted id should hit the primary key")
	}

	found, err = repo.LookupIDs(ctx, []string{"tpl-1"})
	if err != nil {
		t.Fatalf("LookupIDs: %v", err)
	}
	if deleted, ok := found["tpl-1"]; !ok || !deleted {
		t.Fatalf("soft-deleted template lookup = %v", found)
	}

	if err := repo.Restore(ctx, testTemplate("tpl-1", "Site audit v2")); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	got, err := repo.FindByID(ctx, "tpl-1")
	if err != nil {
		t.Fatalf("restored template not found: %v", err)
	}
	if got.Name != "Site audit v2" || len(got.Sections) != 1 {
		t.Fatalf("restore did not overwrite content: %+v", got)
	}

	if err := repo.Restore(ctx, testTemplate("tpl-9", "Missing")); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("restoring an unknown id: got %v, want ErrRecordNotFound", err)
	}
}

func newTestResponse(t *testing.T, repo *ResponseRepository) *model.Response {
	t.Helper()
	r := &model.Response{
		TemplateID:      "tpl-1",
		TemplateVersion: 1,
		RespondentID:    "ada",
		Answers:         model.Answers{},
		Status:          model.StatusInProgress,
	}
	r.ID = model.GenerateUUID()
	if err := repo.Create(context.Background(), r); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return r
}

func TestResponseUpdateRejectsStaleRevision(t *testing.T) {
	repo := NewResponseRepository(openTestDB(t))
	ctx := context.Background()
	created := newTestResponse(t, repo)

	first, _ := repo.FindByID(ctx, created.ID)
	second, _ := repo.FindByID(ctx, created.ID)

	first.Answers["q1"] = model.Scalar("Ada")
	if err := repo.Update(ctx, first); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if first.Revision != 1 {
		t.Fatalf("revision=%d, want 1", first.Revision)
	}

	second.Answers["q2"] = model.Scalar("late")
	if err := repo.Update(ctx, second); !errors.Is(err, util.ErrStaleResponse) {
		t.Fatalf("stale update: got %v, want ErrStaleResponse", err)
	}
	if second.Revision != 0 {
		t.Fatalf("failed update must keep the read revision, got %d", second.Revision)
	}

	stored, _ := repo.FindByID(ctx, created.ID)
	if _, late := stored.Answers["q2"]; late || !stored.Answers.Get("q1").Equal(model.Scalar("Ada")) {
		t.Fatalf("unexpected stored answers %v", stored.Answers)
	}
}

func TestResponseUpdateKeepsCompletedResponse(t *testing.T) {
	repo := NewResponseRepository(openTestDB(t))
	ctx := context.Background()
	created := newTestResponse(t, repo)

	done, _ := repo.FindByID(ctx, created.ID)
	completedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	done.Status = model.StatusCompleted
	done.CompletedAt = &completedAt
	done.Score = &model.ScoreResult{Score: 28, MaxScore: 35, Percentage: 80, Category: "Good", Color: "#8bc34a"}
	if err := repo.Update(ctx, done); err != nil {
		t.Fatalf("complete: %v", err)
	}

	again, _ := repo.FindByID(ctx, created.ID)
	again.Status = model.StatusInProgress
	again.Score = nil
	if err := repo.Update(ctx, again); !errors.Is(err, util.ErrStaleResponse) {
		t.Fatalf("updating a completed response: got %v, want ErrStaleResponse", err)
	}

	stored, _ := repo.FindByID(ctx, created.ID)
	if stored.Status != model.StatusCompleted || stored.Score == nil || stored.Score.Category != "Good" {
		t.Fatalf("completed response was modified: %+v", stored)
	}
	avg, err := repo.AverageCompletedPercentage(ctx)
	if err != nil || avg != 80 {
		t.Fatalf("AverageCompletedPercentage = %v (%v), want 80", avg, err)
	}
}

func TestResponseWithoutScoreLoadsNilScore(t *testing.T) {
	repo := NewResponseRepository(openTestDB(t))
	ctx := context.Background()
	created := newTestResponse(t, repo)

	got, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Score != nil {
		t.Fatalf("unscored response loaded with score %+v", got.Score)
	}

	list, _, err := repo.List(ctx, ResponseFilter{Page: 1, Limit: 10})
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %d (%v)", len(list), err)
	}
	if list[0].Score != nil {
		t.Fatalf("listed response has score %+v", list[0].Score)
	}
}
