package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"preben-prepper/entities"
	"preben-prepper/internal/testutil"
	"preben-prepper/internal/utils"
	"preben-prepper/internal/utils/mailing"
	"preben-prepper/internal/utils/storage"
	"preben-prepper/pkg/events"
	"preben-prepper/pkg/jwt"
	"preben-prepper/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return nil
}

type recordingMailer struct {
	to []string
}

func (m *recordingMailer) SendMail(toEmail, _, _ string) error {
	m.to = append(m.to, toEmail)
	return nil
}

type apiClient struct {
	t   *testing.T
	app *fiber.App
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (a apiClient) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	if len(raw) > 0 {
		require.NoError(a.t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func (a apiClient) register(name, email string) (uint, string) {
	a.t.Helper()
	status, env := a.do("POST", "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret1",
	})
	require.Equal(a.t, fiber.StatusCreated, status, env.Error)

	var res struct {
		User struct {
			ID uint `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &res))
	return res.User.ID, res.Token
}

func newTestApp(t *testing.T) (apiClient, *gorm.DB, *recordingPublisher, *recordingMailer) {
	utils.SetConfig("BCRYPT_COST", "4")
	utils.SetConfig("LOG_FILE", "")
	utils.SetConfig("RATE_LIMIT_ENABLED", "false")

	db := testutil.NewDB(t)
	publisher := &recordingPublisher{}
	mailer := &recordingMailer{}

	app, err := NewAppWith(db, logger.Discard(), Dependencies{
		JWTService: jwt.NewJWTService("test-secret", time.Hour),
		S3:         storage.NewAwsS3(logger.Discard()),
		Mailer:     mailer,
		Publisher:  publisher,
	})
	require.NoError(t, err)
	return apiClient{t: t, app: app}, db, publisher, mailer
}

func TestHealthAndNotFound(t *testing.T) {
	api, _, _, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := api.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health["status"])
	assert.Contains(t, health, "uptime")

	status, env := api.do("GET", "/api/nope", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Route /api/nope not found", env.Message)

	resp, err = api.app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthFlow(t *testing.T) {
	api, _, _, _ := newTestApp(t)

	_, token := api.register("Kari", "kari@example.com")

	status, _ := api.do("POST", "/api/auth/register", "", map[string]string{
		"name": "Kari", "email": "kari@example.com", "password": "secret1",
	})
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = api.do("POST", "/api/auth/register", "", map[string]string{
		"name": "Short", "email": "short@example.com", "password": "123",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = api.do("POST", "/api/auth/login", "", map[string]string{"email": "kari@example.com", "password": "nope"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, env := api.do("GET", "/api/auth/me", token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.NotContains(t, string(env.Data), "password")

	status, _ = api.do("GET", "/api/auth/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = api.do("POST", "/api/auth/refresh", token, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestHomeAccessAndInventoryFlow(t *testing.T) {
	api, db, publisher, mailer := newTestApp(t)

	_, ownerToken := api.register("Olga", "olga@example.com")
	memberID, memberToken := api.register("Mats", "mats@example.com")

	status, env := api.do("POST", "/api/homes", ownerToken, map[string]any{"name": "Cabin"})
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	var created struct {
		ID             uint `json:"id"`
		NumberOfAdults int  `json:"number_of_adults"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 2, created.NumberOfAdults)

	inventoryPath := fmt.Sprintf("/api/home/%d/inventory", created.ID)

	status, _ = api.do("GET", inventoryPath, memberToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = api.do("GET", fmt.Sprintf("/api/homes/%d", created.ID), memberToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	grantPath := fmt.Sprintf("/api/homes/%d/access", created.ID)
	status, env = api.do("POST", grantPath, ownerToken, map[string]any{"user_id": memberID, "role": "MEMBER"})
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	assert.Equal(t, []string{"mats@example.com"}, mailer.to)

	status, _ = api.do("POST", grantPath, ownerToken, map[string]any{"user_id": memberID})
	assert.Equal(t, fiber.StatusConflict, status)

	status, env = api.do("POST", inventoryPath, memberToken, map[string]any{
		"name": "Water (per person)", "quantity": 2, "expiration_date": time.Now().AddDate(0, 0, 10).Format("2006-01-02"),
	})
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	var item struct {
		ID               uint   `json:"id"`
		ExpirationStatus string `json:"expiration_status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.Equal(t, "ExpiringSoon", item.ExpirationStatus)

	status, _ = api.do("POST", inventoryPath, memberToken, map[string]any{"name": "Bad", "quantity": -1})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = api.do("GET", inventoryPath+"/expiring", ownerToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(env.Data), "Water (per person)")

	status, env = api.do("GET", inventoryPath+"/stats", ownerToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(env.Data), `"total_items":1`)

	water := &entities.RecommendedInventoryItem{Name: "water (PER person) ", Description: "9 liters", Quantity: 14, ExpiresIn: 365}
	require.NoError(t, db.Create(water).Error)

	status, env = api.do("GET", fmt.Sprintf("/api/recommended-inventory/coverage?homeId=%d", created.ID), memberToken, nil)
	require.Equal(t, fiber.StatusOK, status, env.Error)
	var coverage struct {
		Followed   []struct{ ID uint } `json:"followed"`
		Unfollowed []struct{ ID uint } `json:"unfollowed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &coverage))
	require.Len(t, coverage.Followed, 1)
	assert.Equal(t, water.ID, coverage.Followed[0].ID)

	status, env = api.do("GET", fmt.Sprintf("/api/recommended-inventory/coverage?homeId=%d", created.ID), "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(env.Data), `"followed":[]`)

	status, _ = api.do("POST", fmt.Sprintf("/api/recommended-inventory/%d/create-inventory", water.ID), memberToken, map[string]any{"home_id": created.ID})
	assert.Equal(t, fiber.StatusCreated, status)

	status, _ = api.do("DELETE", fmt.Sprintf("%s/%d", inventoryPath, item.ID), memberToken, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = api.do("DELETE", fmt.Sprintf("/api/homes/%d/access/%d", created.ID, memberID), memberToken, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = api.do("GET", inventoryPath, memberToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	assert.Equal(t, []string{
		events.HomeAccessGranted,
		events.InventoryItemCreated,
		events.InventoryItemCreated,
		events.InventoryItemDeleted,
	}, publisher.keys)
}

func TestAdminCatalogRequiresAdminRole(t *testing.T) {
	api, db, _, _ := newTestApp(t)

	userID, userToken := api.register("Kari", "kari@example.com")
	status, _ := api.do("GET", "/api/admin/recommended-inventory", userToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	require.NoError(t, db.Model(&entities.User{}).Where("id = ?", userID).Update("role", "admin").Error)
	status, env := api.do("POST", "/api/auth/login", "", map[string]string{"email": "kari@example.com", "password": "secret1"})
	require.Equal(t, fiber.StatusOK, status)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))

	status, env = api.do("POST", "/api/admin/recommended-inventory", login.Token, map[string]any{
		"name": "Candles", "description": "Light", "expires_in": 1000, "quantity": 10,
	})
	require.Equal(t, fiber.StatusCreated, status, env.Error)

	status, _ = api.do("POST", "/api/admin/recommended-inventory", login.Token, map[string]any{
		"name": "Bad", "description": "x", "expires_in": 0, "quantity": 1,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = api.do("GET", "/api/recommended-inventory?includeOptional=false", userToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(env.Data), "Candles")
}

func TestDefaultDependenciesRequiresSecret(t *testing.T) {
	utils.SetConfig("JWT_SECRET", "")
	_, err := DefaultDependencies(logger.Discard())
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

var _ mailing.Mailer = (*recordingMailer)(nil)
