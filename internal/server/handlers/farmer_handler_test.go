package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/farmreg/internal/domain/models"
	"github.com/mamadbah2/farmreg/internal/repository/mongodb"
	"github.com/mamadbah2/farmreg/internal/service/registry"
)

// fakeClient is a minimal in-memory CollectionClient for handler tests.
type fakeClient struct {
	mu     sync.Mutex
	docs   map[string]models.Farmer
	order  []string
	nextID int
}

func newFakeClient() *fakeClient {
	return &fakeClient{docs: make(map[string]models.Farmer)}
}

func (f *fakeClient) snapshotLocked() []models.Farmer {
	out := make([]models.Farmer, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.docs[id])
	}
	return out
}

func (f *fakeClient) Subscribe(context.Context, mongodb.Filter) (*mongodb.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sub *mongodb.Subscription
	sub = mongodb.NewSubscription(func() { sub.Finish() })
	sub.Push(f.snapshotLocked())
	return sub, nil
}

func (f *fakeClient) GetOnce(context.Context, mongodb.Filter) ([]models.Farmer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked(), nil
}

func (f *fakeClient) GetByID(_ context.Context, id string) (models.Farmer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return models.Farmer{}, fmt.Errorf("farmer %s: %w", id, models.ErrNotFound)
	}
	return doc, nil
}

func (f *fakeClient) Create(_ context.Context, farmer models.Farmer) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	farmer.ID = fmt.Sprintf("doc-%d", f.nextID)
	f.docs[farmer.ID] = farmer
	f.order = append(f.order, farmer.ID)
	return farmer.ID, nil
}

func (f *fakeClient) UpdateMerge(_ context.Context, id string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return fmt.Errorf("farmer %s: %w", id, models.ErrNotFound)
	}
	for key, value := range fields {
		switch key {
		case "state":
			doc.State = value.(string)
		case "phone":
			doc.Phone = value.(string)
		case "waterDetails":
			water := value.(models.WaterProfile)
			doc.WaterDetails = &water
		default:
			return fmt.Errorf("fake merge does not model field %q", key)
		}
	}
	f.docs[id] = doc
	return nil
}

func (f *fakeClient) Replace(_ context.Context, id string, farmer models.Farmer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[id]; !ok {
		return fmt.Errorf("farmer %s: %w", id, models.ErrNotFound)
	}
	farmer.ID = id
	f.docs[id] = farmer
	return nil
}

func (f *fakeClient) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[id]; !ok {
		return fmt.Errorf("farmer %s: %w", id, models.ErrNotFound)
	}
	delete(f.docs, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func newTestRouter(t *testing.T, client *fakeClient) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := registry.NewService(client, "CCSA", nil)
	handler := NewFarmerHandler(svc, nil, nil)

	r := gin.New()
	r.POST("/api/farmers", handler.Register)
	r.GET("/api/farmers", handler.List)
	r.GET("/api/farmers/:id", handler.Get)
	r.PUT("/api/farmers/:id", handler.Edit)
	r.DELETE("/api/farmers/:id", handler.Delete)
	r.PUT("/api/farmers/:id/water-details", handler.UpdateWaterDetails)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)
	return recorder
}

func TestRegisterEndpoint(t *testing.T) {
	client := newFakeClient()
	r := newTestRouter(t, client)

	resp := doJSON(t, r, http.MethodPost, "/api/farmers", map[string]string{
		"firstname": "Amina",
		"lastname":  "Bello",
		"phone":     "08031234567",
		"state":     "Kaduna",
	})

	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created models.Farmer
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Regexp(t, `^[A-Za-z]+-\d+$`, created.FarmerID)
}

func TestRegisterEndpoint_InvalidPhoneBlocked(t *testing.T) {
	client := newFakeClient()
	r := newTestRouter(t, client)

	resp := doJSON(t, r, http.MethodPost, "/api/farmers", map[string]string{
		"firstname": "Amina",
		"lastname":  "Bello",
		"phone":     "12a",
	})

	require.Equal(t, http.StatusBadRequest, resp.Code)

	var payload struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.Contains(t, payload.Fields, "phone")
	assert.Empty(t, client.docs, "no remote call may be issued for a blocked submission")
}

func TestListEndpoint_FiltersAndPaginates(t *testing.T) {
	client := newFakeClient()
	r := newTestRouter(t, client)

	for i := 0; i < 8; i++ {
		state := "Kaduna"
		if i >= 5 {
			state = "Abuja"
		}
		resp := doJSON(t, r, http.MethodPost, "/api/farmers", map[string]string{
			"firstname": fmt.Sprintf("Farmer%d", i),
			"lastname":  "Musa",
			"phone":     "08031234567",
			"state":     state,
		})
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := doJSON(t, r, http.MethodGet, "/api/farmers?state=Kaduna&pageSize=3&page=2", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var result registry.SearchResult
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 2, result.TotalPages)
	assert.Len(t, result.Farmers, 2)
}

func TestWaterDetailsEndpoint_MergePreservesSiblings(t *testing.T) {
	client := newFakeClient()
	r := newTestRouter(t, client)

	resp := doJSON(t, r, http.MethodPost, "/api/farmers", map[string]string{
		"firstname": "Amina",
		"lastname":  "Bello",
		"phone":     "08031234567",
		"state":     "Kaduna",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	var created models.Farmer
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))

	resp = doJSON(t, r, http.MethodPut, "/api/farmers/"+created.ID+"/water-details", map[string]string{
		"ph":       "6.8",
		"salinity": "low",
	})
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = doJSON(t, r, http.MethodGet, "/api/farmers/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var fetched models.Farmer
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fetched))
	require.NotNil(t, fetched.WaterDetails)
	assert.Equal(t, "6.8", fetched.WaterDetails.PH)
	assert.Equal(t, "Kaduna", fetched.State, "sibling fields stay untouched")
	assert.Equal(t, "08031234567", fetched.Phone)
}

func TestDeleteEndpoint_SecondDeleteIsNoContent(t *testing.T) {
	client := newFakeClient()
	r := newTestRouter(t, client)

	resp := doJSON(t, r, http.MethodPost, "/api/farmers", map[string]string{
		"firstname": "Amina",
		"lastname":  "Bello",
		"phone":     "08031234567",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	var created models.Farmer
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))

	resp = doJSON(t, r, http.MethodDelete, "/api/farmers/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = doJSON(t, r, http.MethodDelete, "/api/farmers/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestGetEndpoint_UnknownFarmerIs404(t *testing.T) {
	r := newTestRouter(t, newFakeClient())

	resp := doJSON(t, r, http.MethodGet, "/api/farmers/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
