package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog_backend/internal/feature/blog/domain/entity"
	"blog_backend/internal/feature/blog/usecase"
)

// mockBlogRepository はテスト用のBlogRepositoryモック実装です。
type mockBlogRepository struct {
	createFn   func(ctx context.Context, blog *entity.Blog) (uint, error)
	listFn     func(ctx context.Context) ([]entity.Blog, error)
	findByIDFn func(ctx context.Context, id string) (*entity.Blog, error)
	updateFn   func(ctx context.Context, id string, blog *entity.Blog) error
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockBlogRepository) Create(ctx context.Context, blog *entity.Blog) (uint, error) {
	if m.createFn != nil {
		return m.createFn(ctx, blog)
	}
	return 1, nil
}

func (m *mockBlogRepository) List(ctx context.Context) ([]entity.Blog, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockBlogRepository) FindByID(ctx context.Context, id string) (*entity.Blog, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, usecase.ErrBlogNotFound
}

func (m *mockBlogRepository) Update(ctx context.Context, id string, blog *entity.Blog) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, blog)
	}
	return nil
}

func (m *mockBlogRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// TestNewCachingBlogRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingBlogRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", 5 * time.Minute, "blogs"},
		{"negative ttl uses default", -time.Minute, "", 5 * time.Minute, "blogs"},
		{"custom values preserved", 10 * time.Minute, "custom", 10 * time.Minute, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingBlogRepository(nil, tt.ttl, &mockBlogRepository{}, tt.namespace)

			assert.Equal(t, tt.expectedTTL, repo.ttl)
			assert.Equal(t, tt.expectedNamespace, repo.namespace)
		})
	}
}

// TestCachingBlogRepository_NilRedis はRedis未設定時に内部リポジトリへ委譲されることを検証します。
func TestCachingBlogRepository_NilRedis(t *testing.T) {
	t.Parallel()

	calls := map[string]int{}
	inner := &mockBlogRepository{
		createFn: func(ctx context.Context, blog *entity.Blog) (uint, error) { calls["create"]++; return 3, nil },
		listFn: func(ctx context.Context) ([]entity.Blog, error) {
			calls["list"]++
			return []entity.Blog{{ID: 3}}, nil
		},
		findByIDFn: func(ctx context.Context, id string) (*entity.Blog, error) {
			calls["find"]++
			return &entity.Blog{ID: 3}, nil
		},
		updateFn: func(ctx context.Context, id string, blog *entity.Blog) error { calls["update"]++; return nil },
		deleteFn: func(ctx context.Context, id string) error { calls["delete"]++; return nil },
	}
	repo := NewCachingBlogRepository(nil, time.Minute, inner, "")
	ctx := context.Background()

	id, err := repo.Create(ctx, &entity.Blog{})
	require.NoError(t, err)
	assert.Equal(t, uint(3), id)
	_, err = repo.List(ctx)
	require.NoError(t, err)
	_, err = repo.List(ctx)
	require.NoError(t, err)
	_, err = repo.FindByID(ctx, "3")
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, "3", &entity.Blog{}))
	require.NoError(t, repo.Delete(ctx, "3"))

	assert.Equal(t, map[string]int{"create": 1, "list": 2, "find": 1, "update": 1, "delete": 1}, calls)
}

// TestCachingBlogRepository_List_CacheHit はキャッシュヒット時に内部リポジトリが呼ばれないことを検証します。
func TestCachingBlogRepository_List_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedBlogs := []entity.Blog{{ID: 1, Title: "cached"}}
	cachedJSON, _ := json.Marshal(cachedBlogs)
	mock.ExpectGet("blogs:all").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockBlogRepository{
		listFn: func(ctx context.Context) ([]entity.Blog, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingBlogRepository(rdb, 5*time.Minute, inner, "blogs")
	blogs, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.False(t, innerCalled, "inner repository should not be called on cache hit")
	assert.Equal(t, cachedBlogs, blogs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingBlogRepository_List_CacheMiss はキャッシュミス時にDBから取得し、キャッシュに保存することを検証します。
func TestCachingBlogRepository_List_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := []entity.Blog{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("blogs:all").RedisNil()
	mock.ExpectSet("blogs:all", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockBlogRepository{
		listFn: func(ctx context.Context) ([]entity.Blog, error) { return expected, nil },
	}

	repo := NewCachingBlogRepository(rdb, 5*time.Minute, inner, "blogs")
	blogs, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, expected, blogs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingBlogRepository_List_InnerError は内部リポジトリのエラーが伝播され、キャッシュされないことを検証します。
func TestCachingBlogRepository_List_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")
	mock.ExpectGet("blogs:all").RedisNil()

	inner := &mockBlogRepository{
		listFn: func(ctx context.Context) ([]entity.Blog, error) { return nil, expectedErr },
	}

	repo := NewCachingBlogRepository(rdb, 5*time.Minute, inner, "blogs")
	blogs, err := repo.List(context.Background())

	assert.ErrorIs(t, err, expectedErr)
	assert.Nil(t, blogs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingBlogRepository_List_RedisError はRedis障害時もDBから結果を返すことを検証します。
func TestCachingBlogRepository_List_RedisError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := []entity.Blog{{ID: 1}}
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("blogs:all").SetErr(errors.New("connection refused"))
	mock.ExpectSet("blogs:all", expectedJSON, 5*time.Minute).SetErr(errors.New("connection refused"))

	inner := &mockBlogRepository{
		listFn: func(ctx context.Context) ([]entity.Blog, error) { return expected, nil },
	}

	repo := NewCachingBlogRepository(rdb, 5*time.Minute, inner, "blogs")
	blogs, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, expected, blogs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingBlogRepository_FindByID_CorruptedCache は破損したキャッシュを削除してDBから再取得することを検証します。
func TestCachingBlogRepository_FindByID_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := &entity.Blog{ID: 4, Title: "fresh"}
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("blogs:id:4").SetVal("invalid json")
	mock.ExpectDel("blogs:id:4").SetVal(1)
	mock.ExpectSet("blogs:id:4", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockBlogRepository{
		findByIDFn: func(ctx context.Context, id string) (*entity.Blog, error) { return expected, nil },
	}

	repo := NewCachingBlogRepository(rdb, 5*time.Minute, inner, "blogs")
	blog, err := repo.FindByID(context.Background(), "4")

	require.NoError(t, err)
	assert.Equal(t, expected, blog)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingBlogRepository_FindByID_NotFoundNotCached は存在しないIDの結果がキャッシュされないことを検証します。
func TestCachingBlogRepository_FindByID_NotFoundNotCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("blogs:id:404").RedisNil()

	repo := NewCachingBlogRepository(rdb, 5*time.Minute, &mockBlogRepository{}, "blogs")
	blog, err := repo.FindByID(context.Background(), "404")

	assert.ErrorIs(t, err, usecase.ErrBlogNotFound)
	assert.Nil(t, blog)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingBlogRepository_Writes_Invalidate は書き込み成功後にnamespace配下のキーが削除されることを検証します。
func TestCachingBlogRepository_Writes_Invalidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		write func(repo *CachingBlogRepository) error
	}{
		{"create", func(repo *CachingBlogRepository) error {
			_, err := repo.Create(context.Background(), &entity.Blog{Title: "T"})
			return err
		}},
		{"update", func(repo *CachingBlogRepository) error {
			return repo.Update(context.Background(), "1", &entity.Blog{Title: "T", Category: "C", Date: "D"})
		}},
		{"delete", func(repo *CachingBlogRepository) error {
			return repo.Delete(context.Background(), "1")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rdb, mock := redismock.NewClientMock()
			defer func() { _ = rdb.Close() }()

			// Expect cache invalidation via SCAN and DEL
			mock.ExpectScan(0, "blogs:*", 200).SetVal([]string{"blogs:all", "blogs:id:1"}, 0)
			mock.ExpectDel("blogs:all", "blogs:id:1").SetVal(2)

			repo := NewCachingBlogRepository(rdb, 5*time.Minute, &mockBlogRepository{}, "blogs")

			require.NoError(t, tt.write(repo))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestCachingBlogRepository_Writes_InnerError は書き込み失敗時にキャッシュへ触れないことを検証します。
func TestCachingBlogRepository_Writes_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockBlogRepository{
		updateFn: func(ctx context.Context, id string, blog *entity.Blog) error { return usecase.ErrBlogNotFound },
		deleteFn: func(ctx context.Context, id string) error { return errors.New("database error") },
	}
	repo := NewCachingBlogRepository(rdb, 5*time.Minute, inner, "blogs")

	err := repo.Update(context.Background(), "1", &entity.Blog{})
	assert.ErrorIs(t, err, usecase.ErrBlogNotFound)
	err = repo.Delete(context.Background(), "1")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// memoryBlogRepository はminiredisを使った結合テスト用の簡易インメモリ実装です。
type memoryBlogRepository struct {
	rows  map[uint]entity.Blog
	reads int
}

func (m *memoryBlogRepository) Create(ctx context.Context, blog *entity.Blog) (uint, error) {
	id := uint(len(m.rows) + 1)
	b := *blog
	b.ID = id
	m.rows[id] = b
	return id, nil
}

func (m *memoryBlogRepository) List(ctx context.Context) ([]entity.Blog, error) {
	m.reads++
	out := make([]entity.Blog, 0, len(m.rows))
	for _, b := range m.rows {
		out = append(out, b)
	}
	return out, nil
}

// lookup mimics the store's numeric coercion, so "01" addresses row 1.
func (m *memoryBlogRepository) lookup(id string) (uint, bool) {
	var n uint
	for _, r := range id {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + uint(r-'0')
	}
	_, ok := m.rows[n]
	return n, ok
}

func (m *memoryBlogRepository) FindByID(ctx context.Context, id string) (*entity.Blog, error) {
	m.reads++
	n, ok := m.lookup(id)
	if !ok {
		return nil, usecase.ErrBlogNotFound
	}
	b := m.rows[n]
	return &b, nil
}

func (m *memoryBlogRepository) Update(ctx context.Context, id string, blog *entity.Blog) error {
	n, ok := m.lookup(id)
	if !ok {
		return usecase.ErrBlogNotFound
	}
	b := *blog
	b.ID = n
	m.rows[n] = b
	return nil
}

func (m *memoryBlogRepository) Delete(ctx context.Context, id string) error {
	n, ok := m.lookup(id)
	if !ok {
		return usecase.ErrBlogNotFound
	}
	delete(m.rows, n)
	return nil
}

// TestCachingBlogRepository_NoStaleReadsAcrossIDAliases は別表記のIDで更新しても古いキャッシュが返らないことを検証します。
func TestCachingBlogRepository_NoStaleReadsAcrossIDAliases(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	inner := &memoryBlogRepository{rows: map[uint]entity.Blog{}}
	repo := NewCachingBlogRepository(rdb, time.Minute, inner, "blogs")
	ctx := context.Background()

	id, err := repo.Create(ctx, &entity.Blog{Title: "v1", Category: "C", Date: "D"})
	require.NoError(t, err)
	require.Equal(t, uint(1), id)

	first, err := repo.FindByID(ctx, "01")
	require.NoError(t, err)
	assert.Equal(t, "v1", first.Title)
	assert.True(t, mr.Exists("blogs:id:01"), "read should populate the cache")

	_, err = repo.FindByID(ctx, "01")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.reads, "second read should be served from cache")

	require.NoError(t, repo.Update(ctx, "1", &entity.Blog{Title: "v2", Category: "C", Date: "D"}))
	assert.False(t, mr.Exists("blogs:id:01"), "update must drop aliased keys too")

	second, err := repo.FindByID(ctx, "01")
	require.NoError(t, err)
	assert.Equal(t, "v2", second.Title)

	require.NoError(t, repo.Delete(ctx, "1"))
	_, err = repo.FindByID(ctx, "01")
	assert.ErrorIs(t, err, usecase.ErrBlogNotFound)
}

func TestSafe(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a%20b%3Ac", safe("a b:c"))
	assert.Equal(t, "12", safe("12"))
	assert.Equal(t, "a%2520b", safe("a%20b"))

	// distinct ids must never share a cache key
	ids := []string{"a b", "a_b", "a%20b", "a:b", "a%3Ab"}
	seen := make(map[string]string, len(ids))
	for _, id := range ids {
		key := safe(id)
		if prev, ok := seen[key]; ok {
			t.Fatalf("ids %q and %q collide on key %q", prev, id, key)
		}
		seen[key] = id
	}
}
