package redis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/mapvista/internal/db"
)

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRequireSearch_ModuleMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT._LIST")).
		Return(mock.Result(mock.RedisError("ERR unknown command 'FT._LIST', with args beginning with:")))

	s := NewStoreForTest(c)
	err := s.RequireSearch(context.Background())
	if !errors.Is(err, db.ErrSearchUnavailable) {
		t.Fatalf("expected ErrSearchUnavailable, got %v", err)
	}
}

func TestWaitForReady_ChecksSearchModule(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	gomock.InOrder(
		c.EXPECT().
			Do(gomock.Any(), mock.Match("PING")).
			Return(mock.Result(mock.RedisString("PONG"))),
		c.EXPECT().
			Do(gomock.Any(), mock.Match("FT._LIST")).
			Return(mock.Result(mock.RedisArray())),
	)

	s := NewStoreForTest(c)
	if err := s.WaitForReady(context.Background(), time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaitForReady_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(errors.New("connection refused"))).
		AnyTimes()

	s := NewStoreForTest(c)
	if err := s.WaitForReady(context.Background(), 250*time.Millisecond); err == nil {
		t.Fatal("expected timeout error")
	}
}

// --- hash.go tests ---

func TestHSetMulti_KeepsFieldOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(),
			mock.Match("HSET", "user-locations:user_001", "id", "user_001", "name", "John Doe", "latitude", "40.7128"),
			mock.Match("HSET", "user-locations:user_002", "id", "user_002"),
		).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisInt64(3)),
			mock.Result(mock.RedisInt64(1)),
		})

	s := NewStoreForTest(c)
	err := s.HSetMulti(context.Background(), []db.HashSetItem{
		{Key: "user-locations:user_001", Fields: []db.Field{
			{Name: "id", Value: "user_001"},
			{Name: "name", Value: "John Doe"},
			{Name: "latitude", Value: "40.7128"},
		}},
		{Key: "user-locations:user_002", Fields: []db.Field{{Name: "id", Value: "user_002"}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHSetMulti_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{mock.ErrorResult(context.DeadlineExceeded)})

	s := NewStoreForTest(c)
	err := s.HSetMulti(context.Background(), []db.HashSetItem{
		{Key: "k1", Fields: []db.Field{{Name: "f", Value: "v"}}},
	})
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestHSetMulti_EmptyFieldsRejected(t *testing.T) {
	s := NewStoreForTest(nil)
	err := s.HSetMulti(context.Background(), []db.HashSetItem{{Key: "k"}})
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestHSetMulti_Empty(t *testing.T) {
	s := NewStoreForTest(nil)
	if err := s.HSetMulti(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHGetAllMulti_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
				"category": mock.RedisString("Users"),
			})),
			mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{})),
		})

	s := NewStoreForTest(c)
	results, err := s.HGetAllMulti(context.Background(), []string{"meta:a", "meta:b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0]["category"] != "Users" || len(results[1]) != 0 {
		t.Errorf("unexpected results: %v", results)
	}
}

func TestHGetAllMulti_Empty(t *testing.T) {
	s := NewStoreForTest(nil) // client not called
	results, err := s.HGetAllMulti(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil, got %v", results)
	}
}

// --- index.go tests ---

func TestCreateIndex_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match(
			"FT.CREATE", "stores", "ON", "HASH", "PREFIX", "1", "stores:",
			"SCHEMA", "revenue", "NUMERIC", "SORTABLE", "status", "TAG", "storeName", "TEXT",
		)).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	def, err := db.NewIndex("stores").Prefix("stores:").Numeric("revenue").Tag("status").Text("storeName").Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := s.CreateIndex(context.Background(), def); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateIndex_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.CREATE"
		})).
		Return(mock.Result(mock.RedisError("Index already exists")))

	s := NewStoreForTest(c)
	idx := &db.IndexDefinition{
		Name:   "test:idx",
		Fields: []db.IndexField{{Name: "f", Type: db.IndexFieldTag}},
	}
	err := s.CreateIndex(context.Background(), idx)
	if !errors.Is(err, db.ErrIndexExists) {
		t.Errorf("expected ErrIndexExists, got %v", err)
	}
}

func TestCreateIndex_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.CREATE"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	idx := &db.IndexDefinition{
		Name:   "test:idx",
		Fields: []db.IndexField{{Name: "f", Type: db.IndexFieldTag}},
	}
	if err := s.CreateIndex(context.Background(), idx); !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestDropIndex_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.DROPINDEX", "test:idx")).
		Return(mock.Result(mock.RedisError("Unknown Index name")))

	s := NewStoreForTest(c)
	err := s.DropIndex(context.Background(), "test:idx")
	if !errors.Is(err, db.ErrIndexNotFound) {
		t.Errorf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestIndexExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	gomock.InOrder(
		c.EXPECT().
			Do(gomock.Any(), mock.Match("FT.INFO", "a")).
			Return(mock.Result(mock.RedisArray(mock.RedisString("index_name"), mock.RedisString("a")))),
		c.EXPECT().
			Do(gomock.Any(), mock.Match("FT.INFO", "b")).
			Return(mock.Result(mock.RedisError("Unknown Index name"))),
	)

	s := NewStoreForTest(c)
	if ok, err := s.IndexExists(context.Background(), "a"); err != nil || !ok {
		t.Errorf("IndexExists(a) = %v, %v", ok, err)
	}
	if ok, err := s.IndexExists(context.Background(), "b"); err != nil || ok {
		t.Errorf("IndexExists(b) = %v, %v", ok, err)
	}
}

func TestListIndexes(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT._LIST")).
		Return(mock.Result(mock.RedisArray(
			mock.RedisString("user-locations"),
			mock.RedisString("store-analytics"),
		)))

	s := NewStoreForTest(c)
	names, err := s.ListIndexes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "user-locations" || names[1] != "store-analytics" {
		t.Errorf("names = %v", names)
	}
}

func TestListIndexes_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT._LIST")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if _, err := s.ListIndexes(context.Background()); !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestIndexInfo_Parse(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", "stores")).
		Return(mock.Result(mock.RedisArray(
			mock.RedisString("index_name"), mock.RedisString("stores"),
			mock.RedisString("index_definition"), mock.RedisArray(
				mock.RedisString("key_type"), mock.RedisString("HASH"),
				mock.RedisString("prefixes"), mock.RedisArray(mock.RedisString("stores:")),
			),
			mock.RedisString("attributes"), mock.RedisArray(
				mock.RedisArray(
					mock.RedisString("identifier"), mock.RedisString("revenue"),
					mock.RedisString("attribute"), mock.RedisString("revenue"),
					mock.RedisString("type"), mock.RedisString("NUMERIC"),
				),
				mock.RedisArray(
					mock.RedisString("identifier"), mock.RedisString("status"),
					mock.RedisString("attribute"), mock.RedisString("status"),
					mock.RedisString("type"), mock.RedisString("TAG"),
				),
			),
			mock.RedisString("num_docs"), mock.RedisString("3"),
			mock.RedisString("inverted_sz_mb"), mock.RedisString("0.5"),
			mock.RedisString("doc_table_size_mb"), mock.RedisString("0.25"),
		)))

	s := NewStoreForTest(c)
	info, err := s.IndexInfo(context.Background(), "stores")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "stores" || info.NumDocs != 3 {
		t.Errorf("info = %+v", info)
	}
	if info.SizeMB != 0.75 {
		t.Errorf("size = %v, want 0.75", info.SizeMB)
	}
	if len(info.Prefixes) != 1 || info.Prefixes[0] != "stores:" {
		t.Errorf("prefixes = %v", info.Prefixes)
	}
	numeric := info.NumericAttributes()
	if !numeric["revenue"] || numeric["status"] {
		t.Errorf("numeric attributes = %v", numeric)
	}
}

func TestIndexInfo_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", "nope")).
		Return(mock.Result(mock.RedisError("Unknown index name")))

	s := NewStoreForTest(c)
	if _, err := s.IndexInfo(context.Background(), "nope"); !errors.Is(err, db.ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestBuildCreateArgs_Validation(t *testing.T) {
	_, err := buildCreateArgs(&db.IndexDefinition{Name: "", Fields: []db.IndexField{{Name: "f", Type: db.IndexFieldTag}}})
	if err == nil {
		t.Error("expected error for empty name")
	}

	_, err = buildCreateArgs(&db.IndexDefinition{Name: "test"})
	if err == nil {
		t.Error("expected error for empty fields")
	}
}

func TestBuildFieldArgs_Options(t *testing.T) {
	args, err := buildFieldArgs(&db.IndexField{
		Name: "tags", Alias: "t", Type: db.IndexFieldTag, TagSeparator: ",", TagCaseSensitive: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"tags", "AS", "t", "TAG", "SEPARATOR", ",", "CASESENSITIVE"}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("args = %v, want %v", args, want)
		}
	}

	if _, err := buildFieldArgs(&db.IndexField{Name: "f", Type: db.IndexFieldUnknown}); err == nil {
		t.Error("expected error for unsupported type")
	}
}

// --- search.go tests ---

func TestSearch_KeepsFieldOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.SEARCH", "stores", "*", "LIMIT", "0", "100")).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(2),
			mock.RedisString("stores:store_001"),
			mock.RedisArray(
				mock.RedisString("storeName"), mock.RedisString("Downtown Coffee Hub"),
				mock.RedisString("revenue"), mock.RedisString("15420.5"),
			),
			mock.RedisString("stores:store_002"),
			mock.RedisArray(mock.RedisString("storeName"), mock.RedisString("Mall Electronics")),
		)))

	s := NewStoreForTest(c)
	result, err := s.Search(context.Background(), db.SearchQuery{Index: "stores", Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 2 || len(result.Entries) != 2 {
		t.Fatalf("result = %+v", result)
	}
	first := result.Entries[0]
	if first.Key != "stores:store_001" || len(first.Fields) != 2 {
		t.Fatalf("first = %+v", first)
	}
	if first.Fields[0].Name != "storeName" || first.Fields[1].Name != "revenue" {
		t.Errorf("field order = %+v", first.Fields)
	}
}

func TestSearch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "FT.SEARCH" })).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	s := NewStoreForTest(c)
	result, err := s.Search(context.Background(), db.SearchQuery{Index: "idx", Query: "*", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 0 || len(result.Entries) != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestSearch_ReturnFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.SEARCH", "idx", "*", "RETURN", "1", "name", "LIMIT", "0", "5")).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	s := NewStoreForTest(c)
	if _, err := s.Search(context.Background(), db.SearchQuery{Index: "idx", Limit: 5, Return: []string{"name"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearch_SortBy(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.SEARCH", "user-locations", "@status:{active}", "SORTBY", "lastSeen", "DESC", "LIMIT", "10", "20")).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	s := NewStoreForTest(c)
	_, err := s.Search(context.Background(), db.SearchQuery{
		Index: "user-locations", Query: "@status:{active}",
		Offset: 10, Limit: 20, SortBy: "lastSeen", Desc: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearchArgs_Validation(t *testing.T) {
	if _, err := searchArgs(db.SearchQuery{Index: "idx", Limit: -1}); err == nil {
		t.Error("expected error for negative limit")
	}
	args, err := searchArgs(db.SearchQuery{Index: "idx", Limit: 3, SortBy: "date"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "idx * SORTBY date ASC LIMIT 0 3"
	if got := strings.Join(args, " "); got != want {
		t.Errorf("args = %q, want %q", got, want)
	}
}

func TestSearch_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "FT.SEARCH" })).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if _, err := s.Search(context.Background(), db.SearchQuery{Index: "idx", Query: "*", Limit: 10}); !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
	if _, err := s.Search(context.Background(), db.SearchQuery{Limit: 10}); err == nil {
		t.Fatal("expected error for empty index")
	}
}

// --- helpers ---

// isDBError is a test helper for checking wrapped db.Error.
func isDBError(err error) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr)
}
