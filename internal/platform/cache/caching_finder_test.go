package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"leadfinder/internal/feature/research/domain/entity"
	"leadfinder/internal/feature/research/usecase"
)

// mockFinder はテスト用のFinderモック実装です。
type mockFinder struct {
	findFn func(ctx context.Context, q usecase.Query) ([]entity.CandidateCompany, error)
}

func (m *mockFinder) FindCompanies(ctx context.Context, q usecase.Query) ([]entity.CandidateCompany, error) {
	if m.findFn != nil {
		return m.findFn(ctx, q)
	}
	return nil, nil
}

func testQuery() usecase.Query {
	return usecase.Query{
		ProductName:    "CreditLens",
		CompanyName:    "Moody's",
		MarketAnalysis: "- Mid-market banks",
		Location:       "US Midwest",
	}
}

var testCompanies = []entity.CandidateCompany{
	{Name: "Acme Lending", MatchReasons: []string{"Growing loan portfolio"}},
}

// TestNewCachingFinder_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingFinder_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       30 * time.Minute,
			expectedNamespace: "research",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := NewCachingFinder(nil, tt.ttl, &mockFinder{}, tt.namespace)

			if f.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, f.ttl)
			}
			if f.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, f.namespace)
			}
		})
	}
}

// TestCachingFinder_NilRedis はRedisがnilの場合にキャッシュをバイパスすることを検証します。
func TestCachingFinder_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockFinder{
		findFn: func(ctx context.Context, q usecase.Query) ([]entity.CandidateCompany, error) {
			return testCompanies, nil
		},
	}
	f := NewCachingFinder(nil, 30*time.Minute, inner, "research")

	got, err := f.FindCompanies(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 company, got %d", len(got))
	}
}

// TestCachingFinder_CacheHit はキャッシュヒット時に内部Finderを呼ばないことを検証します。
func TestCachingFinder_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedJSON, _ := json.Marshal(testCompanies)

	innerCalled := false
	inner := &mockFinder{
		findFn: func(ctx context.Context, q usecase.Query) ([]entity.CandidateCompany, error) {
			innerCalled = true
			return nil, nil
		},
	}
	f := NewCachingFinder(rdb, 30*time.Minute, inner, "research")
	mock.ExpectGet(f.cacheKey(testQuery())).SetVal(string(cachedJSON))

	got, err := f.FindCompanies(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner finder should not be called on cache hit")
	}
	if len(got) != 1 || got[0].Name != "Acme Lending" {
		t.Errorf("unexpected companies: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingFinder_CacheMiss はキャッシュミス時に結果を保存することを検証します。
func TestCachingFinder_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedJSON, _ := json.Marshal(testCompanies)

	inner := &mockFinder{
		findFn: func(ctx context.Context, q usecase.Query) ([]entity.CandidateCompany, error) {
			return testCompanies, nil
		},
	}
	f := NewCachingFinder(rdb, 30*time.Minute, inner, "research")

	key := f.cacheKey(testQuery())
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, expectedJSON, 30*time.Minute).SetVal("OK")

	got, err := f.FindCompanies(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 company, got %d", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingFinder_CorruptedCache は破損エントリの削除と再計算を検証します。
func TestCachingFinder_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockFinder{
		findFn: func(ctx context.Context, q usecase.Query) ([]entity.CandidateCompany, error) {
			return testCompanies, nil
		},
	}
	f := NewCachingFinder(rdb, 30*time.Minute, inner, "research")

	key := f.cacheKey(testQuery())
	expectedJSON, _ := json.Marshal(testCompanies)

	mock.ExpectGet(key).SetVal("{not-json")
	mock.ExpectDel(key).SetVal(1)
	mock.ExpectSet(key, expectedJSON, 30*time.Minute).SetVal("OK")

	got, err := f.FindCompanies(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 company, got %d", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingFinder_InnerError は内部Finderのエラーが伝播し、キャッシュされないことを検証します。
func TestCachingFinder_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("research error")

	inner := &mockFinder{
		findFn: func(ctx context.Context, q usecase.Query) ([]entity.CandidateCompany, error) {
			return nil, expectedErr
		},
	}
	f := NewCachingFinder(rdb, 30*time.Minute, inner, "research")
	mock.ExpectGet(f.cacheKey(testQuery())).RedisNil()

	if _, err := f.FindCompanies(context.Background(), testQuery()); !errors.Is(err, expectedErr) {
		t.Fatalf("expected inner error, got %v", err)
	}
}

// TestCachingFinder_KeyDiffersByAnalysis は分析テキストの違いがキーに反映されることを検証します。
func TestCachingFinder_KeyDiffersByAnalysis(t *testing.T) {
	t.Parallel()

	f := NewCachingFinder(nil, 0, &mockFinder{}, "")

	q1 := testQuery()
	q2 := testQuery()
	q2.MarketAnalysis = "- Enterprise SaaS"

	if f.cacheKey(q1) == f.cacheKey(q2) {
		t.Error("expected different keys for different analyses")
	}
}

// TestCachingFinder_KeyDiffersByWebsite は提供元サイトURLの違いがキーに反映されることを検証します。
func TestCachingFinder_KeyDiffersByWebsite(t *testing.T) {
	t.Parallel()

	f := NewCachingFinder(nil, 0, &mockFinder{}, "")

	q1 := testQuery()
	q2 := testQuery()
	q2.CompanyWebsite = "https://moodys.example.com"

	if f.cacheKey(q1) == f.cacheKey(q2) {
		t.Error("expected different keys for different websites")
	}
}
