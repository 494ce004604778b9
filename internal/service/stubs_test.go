package service

import (
	"context"
	"io"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/repository"
	"questionnaire_backend/internal/util"
	"sort"
	"strings"

	"gorm.io/gorm"
)

type templateStubStore struct {
	templates map[string]*model.Template
	deleted   map[string]*model.Template
	revisions []model.TemplateRevision
}

func newTemplateStubStore() *templateStubStore {
	return &templateStubStore{templates: map[string]*model.Template{}, deleted: map[string]*model.Template{}}
}

func copyTemplate(t *model.Template) *model.Template {
	copy := *t
	copy.Sections, _ = cloneSections(t.Sections)
	copy.Tags = append(model.StringList(nil), t.Tags...)
	return &copy
}

func (s *templateStubStore) Create(ctx context.Context, t *model.Template) error {
	if _, ok := s.templates[t.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	if _, ok := s.deleted[t.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	s.templates[t.ID] = copyTemplate(t)
	return nil
}

func (s *templateStubStore) FindByID(ctx context.Context, id string) (*model.Template, error) {
	if t, ok := s.templates[id]; ok {
		return copyTemplate(t), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *templateStubStore) LookupIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, id := range ids {
		if _, ok := s.templates[id]; ok {
			out[id] = false
		}
		if _, ok := s.deleted[id]; ok {
			out[id] = true
		}
	}
	return out, nil
}

func (s *templateStubStore) Restore(ctx context.Context, t *model.Template) error {
	if _, ok := s.deleted[t.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.deleted, t.ID)
	s.templates[t.ID] = copyTemplate(t)
	return nil
}

func (s *templateStubStore) List(ctx context.Context, f repository.TemplateFilter) ([]model.Template, int64, error) {
	var matched []model.Template
	q := strings.ToLower(f.Query)
	for _, t := range s.templates {
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.Name+" "+t.Description+" "+strings.Join(t.Tags, " ")), q) {
			continue
		}
		matched = append(matched, *copyTemplate(t))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *templateStubStore) Update(ctx context.Context, t *model.Template, rev *model.TemplateRevision) error {
	if _, ok := s.templates[t.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.templates[t.ID] = copyTemplate(t)
	if rev != nil {
		s.revisions = append(s.revisions, *rev)
	}
	return nil
}

func (s *templateStubStore) Delete(ctx context.Context, id string) error {
	t, ok := s.templates[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.deleted[id] = t
	delete(s.templates, id)
	return nil
}

func (s *templateStubStore) ListRevisions(ctx context.Context, templateID string) ([]model.TemplateRevision, error) {
	var out []model.TemplateRevision
	for i := len(s.revisions) - 1; i >= 0; i-- {
		if s.revisions[i].TemplateID == templateID {
			out = append(out, s.revisions[i])
		}
	}
	return out, nil
}

func (s *templateStubStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.templates)), nil
}

type responseStubStore struct {
	responses map[string]*model.Response
	average   float64

	// beforeUpdate 在下一次 Update 写入前执行一次，用于模拟并发写入
	beforeUpdate func()
}

func newResponseStubStore() *responseStubStore {
	return &responseStubStore{responses: map[string]*model.Response{}}
}

func copyResponse(r *model.Response) *model.Response {
	copy := *r
	copy.Answers = r.Answers.Clone()
	if r.Score != nil {
		score := *r.Score
		copy.Score = &score
	}
	return &copy
}

func (s *responseStubStore) Create(ctx context.Context, r *model.Response) error {
	s.responses[r.ID] = copyResponse(r)
	return nil
}

func (s *responseStubStore) Update(ctx context.Context, r *model.Response) error {
	if hook := s.beforeUpdate; hook != nil {
		s.beforeUpdate = nil
		hook()
	}
	current, ok := s.responses[r.ID]
	if !ok || current.Revision != r.Revision || current.Status == model.StatusCompleted {
		return util.ErrStaleResponse
	}
	r.Revision++
	s.responses[r.ID] = copyResponse(r)
	return nil
}

func (s *responseStubStore) FindByID(ctx context.Context, id string) (*model.Response, error) {
	if r, ok := s.responses[id]; ok {
		return copyResponse(r), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *responseStubStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.responses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.responses, id)
	return nil
}

func (s *responseStubStore) List(ctx context.Context, f repository.ResponseFilter) ([]model.Response, int64, error) {
	var out []model.Response
	for _, r := range s.responses {
		if f.TemplateID != "" && r.TemplateID != f.TemplateID {
			continue
		}
		if f.RespondentID != "" && r.RespondentID != f.RespondentID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, *copyResponse(r))
	}
	return out, int64(len(out)), nil
}

func (s *responseStubStore) CountByStatus(ctx context.Context) (map[model.ResponseStatus]int64, error) {
	counts := map[model.ResponseStatus]int64{}
	for _, r := range s.responses {
		counts[r.Status]++
	}
	return counts, nil
}

func (s *responseStubStore) AverageCompletedPercentage(ctx context.Context) (float64, error) {
	return s.average, nil
}

type cacheStub struct {
	entries     map[string]*model.Template
	hits        int
	invalidated []string
}

func newCacheStub() *cacheStub {
	return &cacheStub{entries: map[string]*model.Template{}}
}

func (c *cacheStub) Get(ctx context.Context, id string) (*model.Template, bool) {
	t, ok := c.entries[id]
	if ok {
		c.hits++
		return copyTemplate(t), true
	}
	return nil, false
}

func (c *cacheStub) Set(ctx context.Context, t *model.Template) {
	c.entries[t.ID] = copyTemplate(t)
}

func (c *cacheStub) Invalidate(ctx context.Context, id string) {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}

type uploadStub struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (u *uploadStub) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	u.key, u.contentType, u.body = filename, contentType, body
	return "/uploads/" + filename, nil
}
