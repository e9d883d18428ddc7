package handlers

import (
	"context"
	"fmt"

	"jamjournal/internal/models"
	"jamjournal/internal/query"
	"jamjournal/internal/repository"
	"jamjournal/internal/services"
)

type fakePosts struct {
	posts      map[int64]*models.Post
	lastParams query.ListParams
	lastCat    string
	reads      int
	listErr    error
	priority   map[int64]int
	created    *models.CreatePostRequest
}

func newFakePosts(ps ...*models.Post) *fakePosts {
	f := &fakePosts{posts: map[int64]*models.Post{}, priority: map[int64]int{}}
	for _, p := range ps {
		f.posts[p.ID] = p
	}
	return f
}

func (f *fakePosts) List(_ context.Context, params query.ListParams, category string) ([]*models.Post, error) {
	f.lastParams, f.lastCat = params, category
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*models.Post{}
	for _, p := range f.posts {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePosts) Get(_ context.Context, id int64) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePosts) Read(ctx context.Context, id int64) (*models.Post, error) {
	p, err := f.Get(ctx, id)
	if err == nil {
		f.reads++
		p.Views++
	}
	return p, err
}

func (f *fakePosts) Create(_ context.Context, req models.CreatePostRequest) (*models.Post, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", services.ErrValidation)
	}
	f.created = &req
	p := &models.Post{ID: int64(len(f.posts) + 1), Title: req.Title, Categories: req.Categories}
	f.posts[p.ID] = p
	return p, nil
}

func (f *fakePosts) Update(ctx context.Context, id int64, req models.UpdatePostRequest) (*models.Post, error) {
	p, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	return p, nil
}

func (f *fakePosts) UpdatePriority(_ context.Context, id int64, priority int) error {
	if _, ok := f.posts[id]; !ok {
		return repository.ErrNotFound
	}
	f.priority[id] = priority
	return nil
}

func (f *fakePosts) Delete(_ context.Context, id int64) error {
	if _, ok := f.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePosts) Rate(_ context.Context, id int64) error {
	p, ok := f.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Rating++
	return nil
}

func (f *fakePosts) AddMedia(_ context.Context, postID int64, m models.Media) (*models.Media, error) {
	if _, ok := f.posts[postID]; !ok {
		return nil, repository.ErrNotFound
	}
	m.ID, m.PostID = 7, postID
	return &m, nil
}

func (f *fakePosts) DeleteMedia(_ context.Context, id int64) error {
	if id != 7 {
		return repository.ErrNotFound
	}
	return nil
}

type fakeVisits struct {
	calls []string
	err   error
}

func (f *fakeVisits) Record(_ context.Context, ip, ua string) error {
	f.calls = append(f.calls, ip+"|"+ua)
	return f.err
}

type fakeGenres struct{ items map[int64]models.Genre }

func (f *fakeGenres) List(context.Context) ([]models.Genre, error) {
	out := []models.Genre{}
	for _, g := range f.items {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeGenres) Get(_ context.Context, id int64) (*models.Genre, error) {
	g, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &g, nil
}

func (f *fakeGenres) Create(_ context.Context, req models.GenreRequest) (*models.Genre, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", services.ErrValidation)
	}
	g := models.Genre{ID: int64(len(f.items) + 1), Name: req.Name}
	f.items[g.ID] = g
	return &g, nil
}

func (f *fakeGenres) Update(_ context.Context, id int64, req models.GenreRequest) (*models.Genre, error) {
	if _, ok := f.items[id]; !ok {
		return nil, repository.ErrNotFound
	}
	g := models.Genre{ID: id, Name: req.Name}
	f.items[id] = g
	return &g, nil
}

func (f *fakeGenres) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeAnalytics struct {
	out *models.Analytics
	err error
}

func (f *fakeAnalytics) Overview(context.Context) (*models.Analytics, error) { return f.out, f.err }

type fakeSettings struct{ values map[string]string }

func (f *fakeSettings) GetSetting(_ context.Context, key string) (string, bool, error) {
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeSettings) SetSetting(_ context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

type fakeNewsletter struct {
	emails  []string
	sendErr error
	sent    *models.CampaignRequest
}

func (f *fakeNewsletter) Subscribe(_ context.Context, req models.SubscribeRequest) error {
	if req.Email == "" {
		return fmt.Errorf("%w: email is required", services.ErrValidation)
	}
	f.emails = append(f.emails, req.Email)
	return nil
}

func (f *fakeNewsletter) Unsubscribe(_ context.Context, req models.SubscribeRequest) error {
	if req.Email == "" {
		return fmt.Errorf("%w: email is required", services.ErrValidation)
	}
	return nil
}

func (f *fakeNewsletter) Subscribers(context.Context) ([]models.Subscriber, error) {
	out := []models.Subscriber{}
	for i, e := range f.emails {
		out = append(out, models.Subscriber{ID: int64(i + 1), Email: e, Status: models.SubscriberActive})
	}
	return out, nil
}

func (f *fakeNewsletter) Campaigns(context.Context) ([]models.Campaign, error) {
	return []models.Campaign{}, nil
}

func (f *fakeNewsletter) Send(_ context.Context, req models.CampaignRequest) (*models.CampaignResult, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = &req
	return &models.CampaignResult{CampaignID: 4, Sent: len(f.emails)}, nil
}
