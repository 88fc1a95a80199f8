package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outbound-metrics/internal/config"
	"github.com/sells-group/outbound-metrics/internal/metrics"
	"github.com/sells-group/outbound-metrics/internal/model"
	"github.com/sells-group/outbound-metrics/internal/store"
)

// memStore is an in-memory Store stub for handler tests.
type memStore struct {
	accounts []model.Account
	events   []model.EngagementEvent
	empty    bool
	failWith error
}

func (m *memStore) SaveSnapshot(ctx context.Context, accounts []model.Account, events []model.EngagementEvent) (*model.Snapshot, error) {
	m.accounts, m.events = accounts, events
	return &model.Snapshot{ID: "mem", AccountCount: len(accounts), EventCount: len(events), CreatedAt: time.Now()}, nil
}

func (m *memStore) LoadLatest(ctx context.Context) ([]model.Account, []model.EngagementEvent, *model.Snapshot, error) {
	if m.failWith != nil {
		return nil, nil, nil, m.failWith
	}
	if m.empty {
		return nil, nil, nil, store.ErrNoSnapshot
	}
	return m.accounts, m.events, &model.Snapshot{ID: "mem"}, nil
}

func (m *memStore) ListSnapshots(ctx context.Context, limit int) ([]model.Snapshot, error) {
	return nil, nil
}

func (m *memStore) Migrate(ctx context.Context) error { return nil }
func (m *memStore) Close() error                      { return nil }

func fp(v float64) *float64 { return &v }

func testServer(st store.Store, cfg config.ServerConfig) *httptest.Server {
	engine := metrics.NewEngine(metrics.DefaultTables(), metrics.DefaultThresholds())
	return httptest.NewServer(New(st, engine, cfg).Router())
}

func seededStore() *memStore {
	return &memStore{
		accounts: []model.Account{
			{Domain: "a.com", EmployeeCount: fp(5), ARR: fp(1000), Industry: "Software & Technology", Region: "Europe"},
			{Domain: "b.com", EmployeeCount: fp(15), ARR: fp(5000), Industry: "Healthcare", Region: "Asia"},
		},
		events: []model.EngagementEvent{
			{CompanyDomain: "a.com", Opened: true},
		},
	}
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv := testServer(seededStore(), config.ServerConfig{})
	defer srv.Close()

	var body map[string]string
	status := getJSON(t, srv.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestCoverageEndpoint(t *testing.T) {
	srv := testServer(seededStore(), config.ServerConfig{})
	defer srv.Close()

	var rep model.CoverageReport
	status := getJSON(t, srv.URL+"/api/metrics/coverage", &rep)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, rep.TotalAccounts)
	assert.Equal(t, 1, rep.TouchedCount)
	assert.Equal(t, 50.0, rep.CoveragePct)
}

func TestEmployeeARREndpoint(t *testing.T) {
	srv := testServer(seededStore(), config.ServerConfig{})
	defer srv.Close()

	var rep model.EmployeeBucketReport
	status := getJSON(t, srv.URL+"/api/metrics/employee-arr", &rep)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, rep.Rows, 12)
	assert.Equal(t, "1–10", rep.Rows[0].Bucket)
}

func TestIndustryEndpoint_Filter(t *testing.T) {
	srv := testServer(seededStore(), config.ServerConfig{})
	defer srv.Close()

	var rep model.IndustryReport
	status := getJSON(t, srv.URL+"/api/metrics/industry?region=Asia", &rep)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, rep.IndustryStats, 1)
	assert.Equal(t, "Healthcare", rep.IndustryStats[0].Industry)
	assert.ElementsMatch(t, []string{"Asia", "Europe"}, rep.Regions)
}

func TestAllEndpoint(t *testing.T) {
	srv := testServer(seededStore(), config.ServerConfig{})
	defer srv.Close()

	var bundle model.MetricsBundle
	status := getJSON(t, srv.URL+"/api/metrics/all", &bundle)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, bundle.Coverage.TotalAccounts)
	assert.Len(t, bundle.ARRBands.Rows, 21)
}

func TestNoSnapshot_ServiceUnavailable(t *testing.T) {
	srv := testServer(&memStore{empty: true}, config.ServerConfig{})
	defer srv.Close()

	status := getJSON(t, srv.URL+"/api/metrics/coverage", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestStoreFailure_InternalError(t *testing.T) {
	srv := testServer(&memStore{failWith: eris.New("boom")}, config.ServerConfig{})
	defer srv.Close()

	status := getJSON(t, srv.URL+"/api/metrics/engagement", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestRateLimit(t *testing.T) {
	srv := testServer(seededStore(), config.ServerConfig{RateLimit: 1, RateBurst: 1})
	defer srv.Close()

	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/health", nil))

	// Burst exhausted; the next immediate request is throttled.
	assert.Equal(t, http.StatusTooManyRequests, getJSON(t, srv.URL+"/health", nil))
}
