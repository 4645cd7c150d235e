package roster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/guardia-api/pkg/errors"
)

type memCache struct {
	values map[string][]byte
	sets   int
}

func (m *memCache) Get(ctx context.Context, key string, dest interface{}) error {
	return appErrors.ErrCacheMiss
}

func (m *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.sets++
	return nil
}

func TestTeachersOnDuty(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"teachers":[{"email":"ana@school.test","full_name":"Ana"},{"email":"bea@school.test","full_name":"Bea"}]}`)) //nolint:errcheck
	}))
	defer server.Close()

	cache := &memCache{}
	client := NewClient(Options{BaseURL: server.URL, Cache: cache})

	teachers, err := client.TeachersOnDuty(context.Background(), 1, 3)
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	assert.Equal(t, "ana@school.test", teachers[0].Email)
	assert.Equal(t, "/teachers-on-duty?weekday=1&hour=3", gotPath)
	assert.Equal(t, 1, cache.sets)
}

func TestTeachersOnDutyUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL})

	_, err := client.TeachersOnDuty(context.Background(), 1, 3)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstreamUnavailable.Code, appErrors.FromError(err).Code)
}

func TestTeachersOnDutyTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, Timeout: 20 * time.Millisecond})

	_, err := client.TeachersOnDuty(context.Background(), 1, 3)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstreamUnavailable.Code, appErrors.FromError(err).Code)
}

func TestIsProblematicGroup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3B", r.URL.Query().Get("groupId"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"problematic":true}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL})

	problematic, err := client.IsProblematicGroup(context.Background(), "3B")
	require.NoError(t, err)
	assert.True(t, problematic)
}
