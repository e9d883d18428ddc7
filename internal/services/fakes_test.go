package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"jamjournal/internal/models"
	"jamjournal/internal/query"
	"jamjournal/internal/repository"
)

// Мок-хранилище постов в памяти. Дочерние строки пишет в общие фейки
// категорий и медиа; childErr имитирует сбой дочерней вставки с откатом.
type fakePostRepo struct {
	posts      map[int64]*models.Post
	nextID     int64
	lastParams query.ListParams
	listErr    error
	createErr  error
	childErr   error

	cats  *fakeCategories
	media *fakeMedia
}

func newFakePostRepo(cats *fakeCategories, media *fakeMedia) *fakePostRepo {
	return &fakePostRepo{posts: map[int64]*models.Post{}, nextID: 1, cats: cats, media: media}
}

func (f *fakePostRepo) writeChildren(id int64, rel models.PostRelations) {
	f.cats.byPost[id] = append([]string{}, rel.Categories...)
	f.media.byPost[id] = nil
	for _, m := range rel.Media {
		_, _ = f.media.AddMedia(context.Background(), id, m)
	}
}

func (f *fakePostRepo) Create(_ context.Context, p *models.Post, rel models.PostRelations) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	if f.childErr != nil {
		return 0, f.childErr
	}
	cp := *p
	cp.ID = f.nextID
	f.nextID++
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	cp.UpdatedAt = cp.CreatedAt
	f.posts[cp.ID] = &cp
	f.writeChildren(cp.ID, rel)
	return cp.ID, nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id int64) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) List(_ context.Context, params query.ListParams) ([]*models.Post, error) {
	f.lastParams = params
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*models.Post{}
	for id := int64(1); id < f.nextID; id++ {
		if p, ok := f.posts[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePostRepo) Update(_ context.Context, id int64, patch models.PostPatch, rel models.PostRelations) (bool, error) {
	p, ok := f.posts[id]
	if !ok {
		return false, nil
	}
	if f.childErr != nil {
		return false, f.childErr
	}
	f.writeChildren(id, rel)
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Excerpt != nil {
		p.Excerpt = *patch.Excerpt
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	if patch.Priority != nil {
		p.Priority = *patch.Priority
	}
	if patch.Rating != nil {
		p.Rating = *patch.Rating
	}
	if patch.CreatedAt != nil {
		p.CreatedAt = *patch.CreatedAt
	}
	p.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (f *fakePostRepo) UpdatePriority(_ context.Context, id int64, priority int) (bool, error) {
	p, ok := f.posts[id]
	if !ok {
		return false, nil
	}
	p.Priority = priority
	return true, nil
}

func (f *fakePostRepo) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := f.posts[id]
	delete(f.posts, id)
	return ok, nil
}

func (f *fakePostRepo) IncrementViews(_ context.Context, id int64) (bool, error) {
	p, ok := f.posts[id]
	if ok {
		p.Views++
	}
	return ok, nil
}

func (f *fakePostRepo) IncrementRating(_ context.Context, id int64) (bool, error) {
	p, ok := f.posts[id]
	if ok {
		p.Rating++
	}
	return ok, nil
}

type fakeMedia struct {
	byPost map[int64][]models.Media
	nextID int64
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{byPost: map[int64][]models.Media{}, nextID: 1}
}

func (f *fakeMedia) AddMedia(_ context.Context, postID int64, m models.Media) (int64, error) {
	m = m.WithDefaults()
	m.ID, m.PostID = f.nextID, postID
	f.nextID++
	f.byPost[postID] = append(f.byPost[postID], m)
	return m.ID, nil
}

func (f *fakeMedia) GetMediaByPost(_ context.Context, postID int64) ([]models.Media, error) {
	return append([]models.Media{}, f.byPost[postID]...), nil
}

func (f *fakeMedia) DeleteMedia(_ context.Context, id int64) (bool, error) {
	for pid, list := range f.byPost {
		for i, m := range list {
			if m.ID == id {
				f.byPost[pid] = append(list[:i], list[i+1:]...)
				return true, nil
			}
		}
	}
	return false, nil
}

type fakeCategories struct {
	byPost     map[int64][]string
	batchCalls int
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{byPost: map[int64][]string{}}
}

func (f *fakeCategories) GetCategories(_ context.Context, postID int64) ([]string, error) {
	return append([]string{}, f.byPost[postID]...), nil
}

func (f *fakeCategories) GetCategoriesForPosts(_ context.Context, ids []int64) (map[int64][]string, error) {
	f.batchCalls++
	out := map[int64][]string{}
	for _, id := range ids {
		if l, ok := f.byPost[id]; ok && len(l) > 0 {
			out[id] = l
		}
	}
	return out, nil
}

func (f *fakeCategories) GetPostsByCategory(_ context.Context, label string, limit int) ([]*models.Post, error) {
	return []*models.Post{{ID: 99, Title: label}}, nil
}

type recordedEvent struct{ postID int64 }

type fakeEvents struct{ got []recordedEvent }

func (f *fakeEvents) PostCreated(_ context.Context, p *models.Post) {
	f.got = append(f.got, recordedEvent{postID: p.ID})
}

// таблица IP → страна; считает обращения
type fakeGeo struct {
	mu    sync.Mutex
	table map[string]string
	calls map[string]int
}

func newFakeGeo(table map[string]string) *fakeGeo {
	return &fakeGeo{table: table, calls: map[string]int{}}
}

func (f *fakeGeo) Country(ip string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[ip]++
	c, ok := f.table[ip]
	if !ok {
		return "", errors.New("no record")
	}
	return c, nil
}

type fakeDevices map[string]models.DeviceClass

func (f fakeDevices) Classify(ua string) models.DeviceClass {
	if d, ok := f[ua]; ok {
		return d
	}
	return models.DeviceDesktop
}

type fakeTallier struct {
	tallies []models.VisitTally
	err     error
}

func (f fakeTallier) Tally(context.Context) ([]models.VisitTally, error) {
	return f.tallies, f.err
}

func (f fakeTallier) Count(context.Context) (int64, error) {
	var n int64
	for _, t := range f.tallies {
		n += t.Hits
	}
	return n, f.err
}

type fakeSettings map[string]string

func (f fakeSettings) GetSetting(_ context.Context, key string) (string, bool, error) {
	v, ok := f[key]
	return v, ok, nil
}

type fakeQueue struct {
	msgs   []models.EmailMessage
	reject bool
}

func (f *fakeQueue) Enqueue(m models.EmailMessage) bool {
	if f.reject {
		return false
	}
	f.msgs = append(f.msgs, m)
	return true
}

type fakeSubscriptions struct {
	status    map[string]string
	order     []string
	campaigns []models.Campaign
	err       error
}

func newFakeSubscriptions(active ...string) *fakeSubscriptions {
	f := &fakeSubscriptions{status: map[string]string{}}
	for _, e := range active {
		_ = f.Subscribe(context.Background(), e)
	}
	return f
}

func (f *fakeSubscriptions) Subscribe(_ context.Context, email string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.status[email]; !ok {
		f.order = append(f.order, email)
	}
	f.status[email] = models.SubscriberActive
	return nil
}

func (f *fakeSubscriptions) Unsubscribe(_ context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.status[email]; !ok {
		return false, nil
	}
	f.status[email] = models.SubscriberUnsubscribed
	return true, nil
}

func (f *fakeSubscriptions) GetAllSubscribedEmails(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []string{}
	for _, e := range f.order {
		if f.status[e] == models.SubscriberActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeSubscriptions) GetActiveSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	emails, err := f.GetAllSubscribedEmails(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Subscriber, 0, len(emails))
	for i, e := range emails {
		out = append(out, models.Subscriber{ID: int64(i + 1), Email: e, Status: models.SubscriberActive})
	}
	return out, nil
}

func (f *fakeSubscriptions) AddCampaign(_ context.Context, c models.Campaign) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	c.ID = int64(len(f.campaigns) + 1)
	f.campaigns = append(f.campaigns, c)
	return c.ID, nil
}

func (f *fakeSubscriptions) GetCampaigns(context.Context) ([]models.Campaign, error) {
	return f.campaigns, f.err
}
