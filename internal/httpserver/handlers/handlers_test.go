package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/clippings/internal/browser"
	"github.com/MrSnakeDoc/clippings/internal/domain"
	"github.com/MrSnakeDoc/clippings/internal/httpserver/deps"
	"github.com/MrSnakeDoc/clippings/internal/index"
	"github.com/MrSnakeDoc/clippings/internal/logger"
	"github.com/MrSnakeDoc/clippings/internal/store"
	"github.com/MrSnakeDoc/clippings/internal/store/file"
	redisstore "github.com/MrSnakeDoc/clippings/internal/store/redis"
)

const seed = `[
  {"id":1,"title":"Wind farm","date":"2024-03-05","category":"Projects","description":"","url":""},
  {"id":2,"title":"Safety week","date":"2024-01-10","category":"Safety","description":"drill","url":""},
  {"id":3,"title":"Hiring","date":"2023-11-20","category":"HR","description":"","url":""}
]`

func newDeps(t *testing.T, seedJSON string) deps.Deps {
	t.Helper()
	dir := t.TempDir()
	log := logger.NewNop()

	dataFile := filepath.Join(dir, "clippings.json")
	if seedJSON != "" {
		if err := os.WriteFile(dataFile, []byte(seedJSON), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	svc := store.NewService(file.NewRecords(dataFile, log), index.NewMemoryIndex(), nil, log)
	if _, err := svc.Reload(t.Context(), true); err != nil {
		t.Fatal(err)
	}
	uploads, err := file.NewUploads(filepath.Join(dir, "data"), 1024, log)
	if err != nil {
		t.Fatal(err)
	}

	return deps.Deps{
		Logger:         log,
		StartTime:      time.Now(),
		TimeNow:        func() time.Time { return time.Date(2024, time.March, 28, 9, 0, 0, 0, time.UTC) },
		Store:          svc,
		Uploads:        uploads,
		Categories:     domain.Categories(domain.DefaultCategories),
		MaxUploadBytes: 1024,
		ReloadTrigger:  make(chan struct{}, 1),
	}
}

func do(t *testing.T, h http.HandlerFunc, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) domain.StatusResponse {
	t.Helper()
	var s domain.StatusResponse
	if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return s
}

func TestGetClippings(t *testing.T) {
	rec := do(t, GetClippings(newDeps(t, seed)), http.MethodGet, "/api/clippings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got domain.Collection
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil || len(got) != 3 {
		t.Errorf("got %v, %v", got, err)
	}

	rec = do(t, GetClippings(newDeps(t, "")), http.MethodGet, "/api/clippings", nil)
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("empty store body = %q, want []", body)
	}
}

func TestPutClippings(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"valid", `[{"id":5,"title":"A","date":"2024-05-01","category":"CSR","description":"","url":""}]`, http.StatusOK, "Clippings saved successfully (1 items)"},
		{"empty array", `[]`, http.StatusOK, "Clippings saved successfully (0 items)"},
		{"object", `{"id":1}`, http.StatusBadRequest, ""},
		{"null", `null`, http.StatusBadRequest, ""},
		{"broken", `[{`, http.StatusBadRequest, ""},
		{"duplicate ids", `[{"id":1,"title":"A","date":"2024-05-01"},{"id":1,"title":"B","date":"2024-05-02"}]`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps(t, seed)
			rec := do(t, PutClippings(d), http.MethodPut, "/api/clippings", []byte(tt.body))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			s := decodeStatus(t, rec)
			if s.Success != (tt.wantStatus == http.StatusOK) {
				t.Errorf("success = %v", s.Success)
			}
			if tt.wantMsg != "" && s.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", s.Message, tt.wantMsg)
			}
			if tt.wantStatus != http.StatusOK && d.Store.Index().Count() != 3 {
				t.Error("a rejected PUT must not touch the collection")
			}
		})
	}
}

func multipartBody(t *testing.T, field, name, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = part.Write(content)
	}
	_ = mw.WriteField("note", "ignored")
	_ = mw.Close()
	return buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		filename    string
		contentType string
		size        int
		wantStatus  int
		wantMsg     string
	}{
		{"pdf", "file", "Annual report.pdf", "application/pdf", 100, http.StatusOK, "File uploaded successfully"},
		{"not a pdf", "file", "notes.txt", "text/plain", 10, http.StatusBadRequest, "Only PDF files are allowed"},
		{"no file", "", "", "", 0, http.StatusBadRequest, "No file uploaded"},
		{"wrong field", "document", "a.pdf", "application/pdf", 10, http.StatusBadRequest, "No file uploaded"},
		{"too large", "file", "big.pdf", "application/pdf", 2048, http.StatusRequestEntityTooLarge, "File too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps(t, "")
			body, ct := multipartBody(t, tt.field, tt.filename, tt.contentType, bytes.Repeat([]byte("x"), tt.size))
			req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
			req.Header.Set("Content-Type", ct)
			rec := httptest.NewRecorder()
			Upload(d)(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var res domain.UploadResult
			if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
				t.Fatal(err)
			}
			if res.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", res.Message, tt.wantMsg)
			}
			files, _ := d.Uploads.List()
			if tt.wantStatus != http.StatusOK {
				if len(files) != 0 {
					t.Errorf("rejected upload left files: %v", files)
				}
				return
			}
			if !res.Success || res.OriginalName != tt.filename || res.Size != int64(tt.size) {
				t.Errorf("result = %+v", res)
			}
			if !strings.HasSuffix(res.Filename, "_Annual_report.pdf") {
				t.Errorf("filename = %q", res.Filename)
			}
			if len(files) != 1 || files[0].Filename != res.Filename {
				t.Errorf("stored files = %v", files)
			}
		})
	}
}

func TestUploadNotMultipart(t *testing.T) {
	rec := do(t, Upload(newDeps(t, "")), http.MethodPost, "/api/upload", []byte("plain"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestFilesAndServe(t *testing.T) {
	d := newDeps(t, "")
	stored, err := d.Uploads.Save("scan.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatal(err)
	}

	rec := do(t, ListFiles(d), http.MethodGet, "/api/files", nil)
	var files []domain.StoredFile
	if err := json.NewDecoder(rec.Body).Decode(&files); err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Path != "/data/"+stored.Filename {
		t.Errorf("files = %+v", files)
	}

	r := chi.NewRouter()
	r.Get("/data/{filename}", ServeFile(d))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data/"+stored.Filename, nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "%PDF-1.4" {
		t.Errorf("serve = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data/.hidden", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("dotfile status = %d", rec.Code)
	}
}

func TestTestEndpoint(t *testing.T) {
	d := newDeps(t, "")
	rec := do(t, Test(d), http.MethodGet, "/api/test", nil)

	var got testResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Message != "Server is running" || !filepath.IsAbs(got.DataDirectory) {
		t.Errorf("got %+v", got)
	}
	if got.Timestamp != "2024-03-28T09:00:00.000Z" {
		t.Errorf("timestamp = %q", got.Timestamp)
	}
}

func TestSearch(t *testing.T) {
	d := newDeps(t, seed)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantIDs    []int
	}{
		{"all", "", http.StatusOK, []int{1, 2, 3}},
		{"search description", "?search=DRILL", http.StatusOK, []int{2}},
		{"category", "?category=HR", http.StatusOK, []int{3}},
		{"date range", "?from=2024-01-01&to=2024-02-01", http.StatusOK, []int{2}},
		{"bad date", "?from=yesterday", http.StatusBadRequest, nil},
		{"bad page", "?page=x", http.StatusBadRequest, nil},
		{"page out of range", "?page=2", http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, Search(d), http.MethodGet, "/api/clippings/search"+tt.query, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var v browser.ListView
			if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
				t.Fatal(err)
			}
			if got := viewIDs(v.Items); !equal(got, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func TestSearchUsesQueryCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	d := newDeps(t, seed)
	d.QueryCache = redisstore.NewStore(client)
	d.QueryCacheTTL = time.Minute

	first := do(t, Search(d), http.MethodGet, "/api/clippings/search?category=HR", nil)
	if first.Header().Get("X-Cache") != "MISS" {
		t.Errorf("first X-Cache = %q", first.Header().Get("X-Cache"))
	}
	second := do(t, Search(d), http.MethodGet, "/api/clippings/search?category=HR", nil)
	if second.Header().Get("X-Cache") != "HIT" || second.Body.String() != first.Body.String() {
		t.Errorf("second X-Cache = %q", second.Header().Get("X-Cache"))
	}

	// A write bumps the index version, so the old entry is no longer addressed.
	if err := d.Store.Replace(t.Context(), domain.Collection{}); err != nil {
		t.Fatal(err)
	}
	third := do(t, Search(d), http.MethodGet, "/api/clippings/search?category=HR", nil)
	if third.Header().Get("X-Cache") != "MISS" {
		t.Errorf("after write X-Cache = %q", third.Header().Get("X-Cache"))
	}
}

func TestBrowse(t *testing.T) {
	d := newDeps(t, seed)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantIDs    []int
	}{
		{"default selection", "", http.StatusOK, []int{1}},
		{"year and month", "?year=2024&month=0", http.StatusOK, []int{2}},
		{"category filter", "?year=2023&category=HR", http.StatusOK, []int{3}},
		{"unknown year", "?year=1999", http.StatusBadRequest, nil},
		{"month too big", "?month=12", http.StatusBadRequest, nil},
		{"bad year", "?year=abc", http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, Browse(d), http.MethodGet, "/api/clippings/browse"+tt.query, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var v browser.BrowseView
			if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
				t.Fatal(err)
			}
			if got := viewIDs(v.Items); !equal(got, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func TestStatsAndCategories(t *testing.T) {
	d := newDeps(t, seed)

	var stats browser.Stats
	rec := do(t, Stats(d), http.MethodGet, "/api/stats", nil)
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats != (browser.Stats{Total: 3, Categories: 12, ThisMonth: 1}) {
		t.Errorf("stats = %+v", stats)
	}

	var cats []string
	rec = do(t, Categories(d), http.MethodGet, "/api/categories", nil)
	if err := json.NewDecoder(rec.Body).Decode(&cats); err != nil || len(cats) != 12 || cats[0] != "Financial" {
		t.Errorf("categories = %v, %v", cats, err)
	}
}

func TestReadyz(t *testing.T) {
	rec := do(t, Readyz(newDeps(t, seed)), http.MethodGet, "/readyz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("loaded status = %d", rec.Code)
	}

	d := newDeps(t, "")
	d.Store = store.NewService(file.NewRecords(filepath.Join(t.TempDir(), "x.json"), d.Logger), index.NewMemoryIndex(), nil, d.Logger)
	rec = do(t, Readyz(d), http.MethodGet, "/readyz", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("unloaded status = %d", rec.Code)
	}
}

func TestInfra(t *testing.T) {
	rec := do(t, Infra(newDeps(t, seed)), http.MethodGet, "/infra", nil)
	var got infraResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Mode != "optimal" {
		t.Errorf("mode = %q", got.Mode)
	}
	if r := got.Components["records"]; r.Count == nil || *r.Count != 3 || r.Source != store.SourceFile {
		t.Errorf("records = %+v", r)
	}
	if got.Components["redis"].Mode != "disabled" {
		t.Errorf("redis = %+v", got.Components["redis"])
	}
}

func TestInfraRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	d := newDeps(t, seed)
	d.RedisClient = client
	rec := do(t, Infra(d), http.MethodGet, "/infra", nil)
	var got infraResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Mode != "degraded" || got.Components["redis"].OK {
		t.Errorf("got %+v", got)
	}
}

func TestReload(t *testing.T) {
	d := newDeps(t, "")
	if rec := do(t, Reload(d), http.MethodPost, "/reload", nil); rec.Code != http.StatusAccepted {
		t.Errorf("first reload = %d", rec.Code)
	}
	if rec := do(t, Reload(d), http.MethodPost, "/reload", nil); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second reload = %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	d := newDeps(t, "")
	d.Version = "1.2.3"
	rec := do(t, Healthz(d), http.MethodGet, "/healthz", nil)
	var got healthzResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Status != "ok" || got.Build.Version != "1.2.3" || got.Mirror {
		t.Errorf("got %+v", got)
	}
	if got.Records != d.Store.Index().Count() {
		t.Errorf("records = %d, want %d", got.Records, d.Store.Index().Count())
	}
}

func viewIDs(c domain.Collection) []int {
	out := make([]int, 0, len(c))
	for _, x := range c {
		out = append(out, x.ID)
	}
	return out
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
