package config

import (
	"Leaf-Love-Backend/domain"
	"Leaf-Love-Backend/entities"
	"Leaf-Love-Backend/internal/utils"
	"Leaf-Love-Backend/pkg/plant"
	"Leaf-Love-Backend/pkg/vision"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pothosReply = "```json\n" +
	`{"name":"Pothos","description":"...","difficult":"easy","water":["lunes","jueves"],"temperature":22,"humidity":60,"light":"medium"}` +
	"\n```"

type memoryRepository struct {
	mu     sync.Mutex
	seq    int
	plants map[string]entities.Plant
	order  []string
	err    error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{plants: map[string]entities.Plant{}}
}

func (r *memoryRepository) AddPlant(_ context.Context, p *entities.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.seq++
	p.ID = fmt.Sprintf("%024x", r.seq)
	r.plants[p.ID] = *p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *memoryRepository) GetPlants(context.Context) ([]entities.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	plants := []entities.Plant{}
	for _, id := range r.order {
		if p, ok := r.plants[id]; ok {
			plants = append(plants, p)
		}
	}
	return plants, nil
}

func (r *memoryRepository) GetPlantByID(_ context.Context, id string) (*entities.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if len(id) != 24 {
		return nil, domain.ErrInvalidPlantID
	}
	p, ok := r.plants[id]
	if !ok {
		return nil, domain.ErrPlantNotFound
	}
	return &p, nil
}

func (r *memoryRepository) DeletePlant(_ context.Context, id string) (*entities.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.plants[id]
	if !ok {
		return nil, domain.ErrPlantNotFound
	}
	delete(r.plants, id)
	return &p, nil
}

type stubIdentifier struct {
	reply string
	err   error
}

func (s stubIdentifier) IdentifyPlant(context.Context, string) (string, error) {
	return s.reply, s.err
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type testApp struct {
	app  *fiber.App
	repo *memoryRepository
}

func newTestApp(t *testing.T, identifier vision.Identifier, configCheck func() error) testApp {
	t.Helper()
	if configCheck == nil {
		configCheck = func() error { return nil }
	}
	repo := newMemoryRepository()
	cfg := utils.Config{BodyLimitMB: 10, CORSAllowOrigins: "*"}
	app := newApp(cfg, AppDeps{
		Repositories: plant.StaticProvider(repo),
		Health:       stubPinger{},
		Identifier:   identifier,
		LogOutput:    io.Discard,
		ConfigCheck:  configCheck,
	})
	return testApp{app: app, repo: repo}
}

func (a testApp) do(t *testing.T, method, target, body string) (int, string) {
	t.Helper()
	contentType := ""
	if body != "" {
		contentType = fiber.MIMEApplicationJSON
	}
	return a.doWithContentType(t, method, target, body, contentType)
}

func (a testApp) doWithContentType(t *testing.T, method, target, body, contentType string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestCreatePlant(t *testing.T) {
	a := newTestApp(t, stubIdentifier{reply: pothosReply}, nil)

	status, body := a.do(t, fiber.MethodPost, "/plants", `{"image":"https://x/leaf.jpg"}`)
	require.Equal(t, http.StatusCreated, status, body)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.NotEmpty(t, got["_id"])
	assert.Equal(t, "Pothos", got["name"])
	assert.Equal(t, "easy", got["difficulty"])
	assert.Equal(t, []any{"lunes", "jueves"}, got["wateringDays"])
	assert.Equal(t, 22.0, got["temperature"])
	assert.Equal(t, 60.0, got["humidity"])
	assert.Equal(t, "medium", got["light"])
	assert.Equal(t, "https://x/leaf.jpg", got["image"])
	assert.NotEmpty(t, got["createdAt"])
	assert.NotContains(t, got, "imageUrl")
	assert.Len(t, a.repo.plants, 1)
}

func TestCreatePlantOnAPIPrefix(t *testing.T) {
	a := newTestApp(t, stubIdentifier{reply: pothosReply}, nil)

	status, _ := a.do(t, fiber.MethodPost, "/api/plants", `{"image":"https://x/leaf.jpg"}`)
	assert.Equal(t, http.StatusCreated, status)

	status, body := a.do(t, fiber.MethodGet, "/api/plants", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Pothos")
}

func TestCreatePlantErrors(t *testing.T) {
	missingKey := func() error { return &domain.ConfigError{Message: "OpenAI API key is not defined"} }
	missingURI := func() error { return &domain.ConfigError{Message: "MongoDB URI is not defined"} }

	tests := []struct {
		name        string
		identifier  vision.Identifier
		configCheck func() error
		body        string
		wantStatus  int
		wantBody    string
	}{
		{"missing image", stubIdentifier{reply: pothosReply}, nil, `{}`, 400, `{"error":"Image is required"}`},
		{"empty image", stubIdentifier{reply: pothosReply}, nil, `{"image":""}`, 400, `{"error":"Image is required"}`},
		{"invalid body", stubIdentifier{reply: pothosReply}, nil, `{"image":`, 400, `{"error":"Invalid request body"}`},
		{"missing api key", stubIdentifier{reply: pothosReply}, missingKey, `{"image":"https://x/leaf.jpg"}`, 400, `{"error":"OpenAI API key is not defined"}`},
		{"missing api key before body", stubIdentifier{reply: pothosReply}, missingKey, `{"image":`, 400, `{"error":"OpenAI API key is not defined"}`},
		{"missing database uri", stubIdentifier{reply: pothosReply}, missingURI, `{}`, 400, `{"error":"MongoDB URI is not defined"}`},
		{"no identifier", nil, nil, `{"image":"https://x/leaf.jpg"}`, 400, `{"error":"OpenAI API key is not defined"}`},
		{"empty AI reply", stubIdentifier{err: vision.ErrEmptyResponse}, nil, `{"image":"https://x/leaf.jpg"}`, 500, `{"error":"No response from AI service"}`},
		{"AI unreachable", stubIdentifier{err: errors.New("dial tcp: i/o timeout")}, nil, `{"image":"https://x/leaf.jpg"}`, 502, `{"error":"Error contacting AI service"}`},
		{"unparseable reply", stubIdentifier{reply: "Looks like a fern to me"}, nil, `{"image":"https://x/leaf.jpg"}`, 500, `{"error":"Error parsing AI response"}`},
		{"bad enum", stubIdentifier{reply: `{"name":"Fern","difficult":"easy","light":"blinding"}`}, nil, `{"image":"https://x/leaf.jpg"}`, 500, `{"error":"Invalid plant data from AI service"}`},
		{"unsupported image", stubIdentifier{err: vision.ErrUnsupportedImage}, nil, `{"image":"ftp://x/leaf.jpg"}`, 400, `{"error":"Image must be an http(s) URL or an image data URI"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, tt.identifier, tt.configCheck)

			status, body := a.do(t, fiber.MethodPost, "/plants", tt.body)
			assert.Equal(t, tt.wantStatus, status)
			assert.JSONEq(t, tt.wantBody, body)
			assert.Empty(t, a.repo.plants)
		})
	}
}

func TestCreatePlantReadsJSONWhateverTheContentType(t *testing.T) {
	for _, contentType := range []string{
		"",
		"text/plain;charset=UTF-8",
		fiber.MIMEApplicationForm,
		fiber.MIMEApplicationJSONCharsetUTF8,
	} {
		t.Run(contentType, func(t *testing.T) {
			a := newTestApp(t, stubIdentifier{reply: pothosReply}, nil)

			status, body := a.doWithContentType(t, fiber.MethodPost, "/plants", `{"image":"https://x/leaf.jpg"}`, contentType)
			require.Equal(t, http.StatusCreated, status, body)
			assert.Contains(t, body, `"image":"https://x/leaf.jpg"`)
			assert.Len(t, a.repo.plants, 1)
		})
	}
}

func TestCreatePlantSaveFailure(t *testing.T) {
	a := newTestApp(t, stubIdentifier{reply: pothosReply}, nil)
	a.repo.err = errors.New("not primary")

	status, body := a.do(t, fiber.MethodPost, "/plants", `{"image":"https://x/leaf.jpg"}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error":"Error saving plant to database"}`, body)
}

func TestGetPlants(t *testing.T) {
	a := newTestApp(t, stubIdentifier{reply: pothosReply}, nil)

	status, body := a.do(t, fiber.MethodGet, "/plants", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, body)

	_, created := a.do(t, fiber.MethodPost, "/plants", `{"image":"https://x/leaf.jpg"}`)
	var record entities.Plant
	require.NoError(t, json.Unmarshal([]byte(created), &record))

	status, body = a.do(t, fiber.MethodGet, "/plants", "")
	assert.Equal(t, http.StatusOK, status)
	var list []entities.Plant
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list, 1)
	assert.Equal(t, record.ID, list[0].ID)

	status, body = a.do(t, fiber.MethodGet, "/plants?id="+record.ID, "")
	assert.Equal(t, http.StatusOK, status)
	var single entities.Plant
	require.NoError(t, json.Unmarshal([]byte(body), &single))
	assert.Equal(t, record.ID, single.ID)
	assert.Equal(t, "Pothos", single.Name)
}

func TestGetPlantNotFound(t *testing.T) {
	a := newTestApp(t, stubIdentifier{reply: pothosReply}, nil)

	status, body := a.do(t, fiber.MethodGet, "/plants?id=000000000000000000000099", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"Plant not found"}`, body)
}

func TestGetPlantStoreFaults(t *testing.T) {
	a := newTestApp(t, stubIdentifier{reply: pothosReply}, nil)

	status, body := a.do(t, fiber.MethodGet, "/plants?id=not-an-id", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error":"Error fetching plants"}`, body)

	a.repo.err = errors.New("connection reset")
	status, body = a.do(t, fiber.MethodGet, "/plants", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error":"Error fetching plants"}`, body)
}

func TestDeletePlant(t *testing.T) {
	a := newTestApp(t, stubIdentifier{reply: pothosReply}, nil)

	_, created := a.do(t, fiber.MethodPost, "/plants", `{"image":"https://x/leaf.jpg"}`)
	var record entities.Plant
	require.NoError(t, json.Unmarshal([]byte(created), &record))

	status, body := a.do(t, fiber.MethodDelete, "/plants?id="+record.ID, "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Plant deleted successfully"}`, body)

	status, body = a.do(t, fiber.MethodGet, "/plants?id="+record.ID, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"Plant not found"}`, body)

	status, body = a.do(t, fiber.MethodDelete, "/plants?id="+record.ID, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"Plant not found"}`, body)
}

func TestDeletePlantErrors(t *testing.T) {
	a := newTestApp(t, stubIdentifier{reply: pothosReply}, nil)

	status, body := a.do(t, fiber.MethodDelete, "/plants", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"ID is required"}`, body)

	a.repo.err = errors.New("connection reset")
	status, body = a.do(t, fiber.MethodDelete, "/plants?id=000000000000000000000001", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error":"Error deleting plant"}`, body)
}

func TestPingAndHealth(t *testing.T) {
	a := newTestApp(t, nil, nil)

	status, body := a.do(t, fiber.MethodGet, "/api/ping", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"pong"}`, body)

	status, body = a.do(t, fiber.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestHealthReportsUnavailableStore(t *testing.T) {
	app := newApp(utils.Config{BodyLimitMB: 10}, AppDeps{
		Repositories: plant.StaticProvider(newMemoryRepository()),
		Health:       stubPinger{err: errors.New("server selection timeout")},
		LogOutput:    io.Discard,
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Database unavailable"}`, string(raw))
}

func TestUnknownRoute(t *testing.T) {
	a := newTestApp(t, nil, nil)

	status, body := a.do(t, fiber.MethodGet, "/gardens", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"Route not found"}`, body)
}

func TestNewIdentifierWithoutCredentials(t *testing.T) {
	identifier, err := NewIdentifier(context.Background(), utils.Config{AIProvider: utils.ProviderOpenAI, MongoDBURI: "mongodb://localhost"})
	require.NoError(t, err)
	assert.Nil(t, identifier)
}

func TestNewIdentifierOpenAI(t *testing.T) {
	identifier, err := NewIdentifier(context.Background(), utils.Config{
		AIProvider:   utils.ProviderOpenAI,
		OpenAIAPIKey: "sk-test",
		MongoDBURI:   "mongodb://localhost",
		AIMaxRetries: 3,
	})
	require.NoError(t, err)
	assert.IsType(t, &vision.RetryingIdentifier{}, identifier)
}
