package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newCatalogStub(t *testing.T, services map[int64]Service) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id int64
		if _, err := fmt.Sscanf(r.URL.Path, "/internal/services/%d", &id); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		service, ok := services[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(service)
	}))
}

func price(v float64) *float64 {
	return &v
}

func TestGetServices(t *testing.T) {
	srv := newCatalogStub(t, map[int64]Service{
		1: {ID: 1, Name: "Oil Change", Price: price(49.99), EstimatedDurationMinutes: 60, IsActive: true},
		2: {ID: 2, Name: "Tire Rotation", Price: price(29.99), EstimatedDurationMinutes: 30, IsActive: true},
	})
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, nopLogger{})

	services, err := client.GetServices(context.Background(), []int64{1, 2})
	require.NoError(t, err)

	require.Len(t, services, 2)
	assert.Equal(t, "Oil Change", services[0].Name)
	assert.Equal(t, 30, services[1].EstimatedDurationMinutes)
}

func TestGetServicesMissingService(t *testing.T) {
	srv := newCatalogStub(t, map[int64]Service{
		1: {ID: 1, Name: "Oil Change", EstimatedDurationMinutes: 60, IsActive: true},
	})
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, nopLogger{})

	_, err := client.GetServices(context.Background(), []int64{1, 99})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetServicesInactiveService(t *testing.T) {
	// Снятая с каталога услуга неотличима от отсутствующей для бронирования
	srv := newCatalogStub(t, map[int64]Service{
		1: {ID: 1, Name: "Oil Change", EstimatedDurationMinutes: 60, IsActive: true},
		2: {ID: 2, Name: "Engine Flush", EstimatedDurationMinutes: 45, IsActive: false},
	})
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, nopLogger{})

	_, err := client.GetServices(context.Background(), []int64{1, 2})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
