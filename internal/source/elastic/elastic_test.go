package elastic

import (
	"context"
	"errors"
	"testing"

	"github.com/h2non/gock"

	"github.com/kailas-cloud/mapvista/internal/domain"
	"github.com/kailas-cloud/mapvista/internal/domain/catalog"
	"github.com/kailas-cloud/mapvista/internal/domain/value"
)

const testBase = "http://search.local"

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: testBase + "/api/", Size: 50})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error for empty base url")
	}
	if _, err := New(Config{BaseURL: "ftp://x"}); err == nil {
		t.Error("expected error for non-http scheme")
	}
}

func TestFetchIndexes(t *testing.T) {
	defer gock.Off()

	gock.New(testBase).
		Get("/api/_cat/indices").
		MatchParam("format", "json").
		Reply(200).
		BodyString(`[
			{"health":"green","status":"open","index":"user-locations","uuid":"u1","docs.count":"15420","store.size":"2.1gb"},
			{"health":"yellow","status":"open","index":"store-analytics","uuid":"u2","docs.count":"25680","store.size":"3.8gb"},
			{"health":"green","status":"open","index":".kibana","uuid":"u3","docs.count":"1","store.size":"1kb"}
		]`)

	got, err := newTestClient(t).FetchIndexes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("indexes = %d, want 2 (hidden skipped)", len(got))
	}
	if got[0].ID() != "user-locations" || got[0].DocumentCount() != 15420 || got[0].SizeLabel() != "2.1gb" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Health() != catalog.HealthYellow {
		t.Errorf("health = %s, want yellow", got[1].Health())
	}
	if !gock.IsDone() {
		t.Error("pending mocks")
	}
}

func TestFetchIndexes_ServerError(t *testing.T) {
	defer gock.Off()

	gock.New(testBase).
		Get("/api/_cat/indices").
		Reply(503).
		BodyString(`{"error":"cluster unavailable"}`)

	_, err := newTestClient(t).FetchIndexes(context.Background())
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestFetchIndexes_TransportError(t *testing.T) {
	defer gock.Off()

	gock.New(testBase).
		Get("/api/_cat/indices").
		ReplyError(errors.New("connection refused"))

	_, err := newTestClient(t).FetchIndexes(context.Background())
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestFetchRecords(t *testing.T) {
	defer gock.Off()

	gock.New(testBase).
		Get("/api/user-locations/_search").
		MatchParam("size", "50").
		Reply(200).
		BodyString(`{"took":1,"hits":{"total":{"value":2},"hits":[
			{"_index":"user-locations","_id":"user_001","_score":1,"_source":{
				"name":"John Doe","latitude":40.7128,"longitude":-74.006,"lastSeen":"2024-01-20T10:30:00Z","active":true,"tags":["a","b"],"note":null}},
			{"_index":"user-locations","_id":"user_002","_score":1,"_source":{"id":"custom","name":"Jane"}}
		]}}`)

	rs, err := newTestClient(t).FetchRecords(context.Background(), "user-locations")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rs.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(rs.Records))
	}

	r := rs.Records[0]
	keys := r.Keys()
	want := []string{"id", "name", "latitude", "longitude", "lastSeen", "active", "tags", "note"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
	if r.ID() != "user_001" {
		t.Errorf("id = %q", r.ID())
	}
	if lat, lng, ok := r.Coordinates("latitude", "longitude"); !ok || lat != 40.7128 || lng != -74.006 {
		t.Errorf("coordinates = %v %v %v", lat, lng, ok)
	}
	if r.Get("lastSeen").Kind() != value.Date || r.Get("active").Kind() != value.Bool || r.Get("note").Kind() != value.Null {
		t.Errorf("kinds: %v %v %v", r.Get("lastSeen").Kind(), r.Get("active").Kind(), r.Get("note").Kind())
	}
	if r.Get("tags").String() != `["a","b"]` {
		t.Errorf("tags = %q", r.Get("tags").String())
	}

	second := rs.Records[1]
	if second.ID() != "custom" || second.Keys()[0] != "id" {
		t.Errorf("source id should replace _id in place: %v %v", second.ID(), second.Keys())
	}
}

func TestFetchRecords_NotFound(t *testing.T) {
	defer gock.Off()

	gock.New(testBase).
		Get("/api/missing/_search").
		Reply(404).
		BodyString(`{"error":{"type":"index_not_found_exception"}}`)

	_, err := newTestClient(t).FetchRecords(context.Background(), "missing")
	if !errors.Is(err, domain.ErrIndexNotFound) {
		t.Fatalf("err = %v, want ErrIndexNotFound", err)
	}
}

func TestFetchRecords_RejectsPathInIndex(t *testing.T) {
	_, err := newTestClient(t).FetchRecords(context.Background(), "a/b")
	if !errors.Is(err, domain.ErrIndexNotFound) {
		t.Fatalf("err = %v, want ErrIndexNotFound", err)
	}
}

func TestPing(t *testing.T) {
	defer gock.Off()

	gock.New(testBase).
		Get("/api/_cat/indices").
		MatchParam("h", "index").
		Reply(200).
		BodyString(`[]`)

	if err := newTestClient(t).Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseHits_Empty(t *testing.T) {
	got, err := ParseHits([]byte(`{"hits":{"hits":[]}}`))
	if err != nil || len(got) != 0 {
		t.Fatalf("ParseHits = %v, %v", got, err)
	}

	got, err = ParseHits([]byte(`{"took":3}`))
	if err != nil || got != nil {
		t.Fatalf("ParseHits(no hits) = %v, %v", got, err)
	}
}

func TestParseHits_MissingID(t *testing.T) {
	if _, err := ParseHits([]byte(`{"hits":{"hits":[{"_source":{"a":1}}]}}`)); err == nil {
		t.Fatal("expected error for hit without _id")
	}
}
