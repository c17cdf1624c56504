package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/client-followup/internal/config"
	"github.com/BruksfildServices01/client-followup/internal/models"
	"github.com/BruksfildServices01/client-followup/internal/password"
	"github.com/BruksfildServices01/client-followup/internal/testutil"
	ucAuth "github.com/BruksfildServices01/client-followup/internal/usecase/auth"
)

type apiClient struct {
	t     *testing.T
	r     *gin.Engine
	token string
}

func setup(t *testing.T) (*apiClient, *gorm.DB, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	cfg := &config.Config{JWTSecret: "test-secret", JWTTTL: time.Hour, Timezone: "UTC"}

	r := gin.New()
	RegisterRoutes(r, db, cfg, nil, nil)

	u := testutil.CreateUser(t, db, "Ana", "ana@example.com")
	now := time.Now()
	token, err := ucAuth.IssueToken([]byte(cfg.JWTSecret), u.ID, now, now.Add(time.Hour))
	require.NoError(t, err)

	return &apiClient{t: t, r: r, token: token}, db, u
}

func (a *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"error_code"`
	}
	decode(t, w, &body)
	return body.Code
}

func TestLoginAndMe(t *testing.T) {
	api, db, u := setup(t)

	hash, err := password.Hash("correct horse")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Account{
		UserID:     u.ID,
		ProviderID: models.ProviderCredential,
		Password:   hash,
	}).Error)

	anon := &apiClient{t: t, r: api.r}

	w := anon.do(http.MethodPost, "/api/auth/login", gin.H{"email": "ana@example.com", "password": "wrong password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", errorCode(t, w))

	w = anon.do(http.MethodPost, "/api/auth/login", gin.H{"email": "ana@example.com", "password": "correct horse"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	decode(t, w, &login)
	require.NotEmpty(t, login.Token)

	w = anon.do(http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	authed := &apiClient{t: t, r: api.r, token: login.Token}
	w = authed.do(http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decode(t, w, &me)
	assert.Equal(t, u.ID, me.User.ID)
}

func TestClientFollowUpFlow(t *testing.T) {
	api, db, u := setup(t)
	company := testutil.CreateField(t, db, models.ClientField{Name: "Empresa", Type: models.FieldTypeText, Active: true})
	first := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)

	// --------------------------------------------------
	// create
	// --------------------------------------------------
	w := api.do(http.MethodPost, "/api/clients", gin.H{
		"whatsapp":     "11987654321",
		"assigned_to":  u.ID,
		"scheduled_at": first,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPost, "/api/clients", gin.H{
		"whatsapp":     "+5511987654321",
		"assigned_to":  u.ID,
		"scheduled_at": first,
		"field_values": []gin.H{{"field_id": company.ID, "value": "Acme Ltda"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Client struct {
			ID                string     `json:"id"`
			WhatsappLink      string     `json:"whatsapp_link"`
			NextAppointmentAt *time.Time `json:"next_appointment_at"`
		} `json:"client"`
		Appointment struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"appointment"`
	}
	decode(t, w, &created)
	assert.Equal(t, "https://wa.me/5511987654321", created.Client.WhatsappLink)
	assert.Equal(t, "OPEN", created.Appointment.Status)
	require.NotNil(t, created.Client.NextAppointmentAt)

	clientID := created.Client.ID
	apID := created.Appointment.ID

	// --------------------------------------------------
	// list + update
	// --------------------------------------------------
	w = api.do(http.MethodGet, "/api/clients?search=acme", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	decode(t, w, &list)
	assert.Equal(t, int64(1), list.Total)

	w = api.do(http.MethodPatch, "/api/clients/"+clientID, gin.H{"assigned_to": u.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "immutable_field", errorCode(t, w))

	w = api.do(http.MethodPatch, "/api/clients/"+clientID, gin.H{"notes": "prefers mornings"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// --------------------------------------------------
	// appointment lifecycle
	// --------------------------------------------------
	w = api.do(http.MethodPost, "/api/appointments", gin.H{"client_id": clientID, "scheduled_at": first.Add(time.Hour)})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(http.MethodGet, "/api/appointments?date="+first.Format("2006-01-02"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	assert.Equal(t, int64(1), list.Total)

	w = api.do(http.MethodPost, "/api/appointments/"+apID+"/finalize", gin.H{
		"started_at":            time.Now().Add(-30 * time.Minute).UTC(),
		"summary":               "Talked about renewal",
		"outcome":               "interested",
		"next_appointment_date": first.Add(7 * 24 * time.Hour),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var fin struct {
		NextAppointment struct {
			ID string `json:"id"`
		} `json:"next_appointment"`
	}
	decode(t, w, &fin)
	require.NotEmpty(t, fin.NextAppointment.ID)

	w = api.do(http.MethodPatch, "/api/appointments/"+apID+"/reschedule", gin.H{"scheduled_at": first.Add(2 * time.Hour)})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(http.MethodPatch, "/api/appointments/"+fin.NextAppointment.ID+"/cancel", gin.H{"reason": "client travelling"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodGet, "/api/clients/"+clientID+"/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	assert.Equal(t, int64(1), list.Total)

	// --------------------------------------------------
	// deactivate
	// --------------------------------------------------
	w = api.do(http.MethodDelete, "/api/clients/"+clientID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/api/clients/"+clientID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/api/clients/"+clientID+"/history", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClientFieldTypeIsImmutable(t *testing.T) {
	api, _, _ := setup(t)

	w := api.do(http.MethodPost, "/api/client-fields", gin.H{"name": "Empresa", "type": "TEXT"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var f struct {
		ID string `json:"id"`
	}
	decode(t, w, &f)

	w = api.do(http.MethodPatch, "/api/client-fields/"+f.ID, gin.H{"type": "NUMBER"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "immutable_field", errorCode(t, w))

	w = api.do(http.MethodPatch, "/api/client-fields/"+f.ID, gin.H{"required": true})
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/api/client-fields", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fields struct {
		Total int `json:"total"`
	}
	decode(t, w, &fields)
	assert.Equal(t, 1, fields.Total)
}

func TestTagLinking(t *testing.T) {
	api, db, u := setup(t)
	client := testutil.CreateClient(t, db, "+5511987654321", &u.ID)

	w := api.do(http.MethodPost, "/api/tags", gin.H{"name": "VIP", "color": "#ffcc00"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var tag struct {
		ID string `json:"id"`
	}
	decode(t, w, &tag)

	w = api.do(http.MethodPost, "/api/tags/"+tag.ID+"/clients/"+client.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodGet, "/api/clients?tag_ids="+tag.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Total int64 `json:"total"`
	}
	decode(t, w, &list)
	assert.Equal(t, int64(1), list.Total)

	w = api.do(http.MethodDelete, "/api/tags/"+tag.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodDelete, "/api/tags/"+tag.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserDeactivation(t *testing.T) {
	api, db, u := setup(t)
	other := testutil.CreateUser(t, db, "Bruno", "bruno@example.com")

	w := api.do(http.MethodPost, "/api/users/"+u.ID+"/deactivate", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "self_deactivation", errorCode(t, w))

	w = api.do(http.MethodPost, "/api/users/"+other.ID+"/deactivate", gin.H{"reason": "left the team"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Banned bool `json:"banned"`
	}
	decode(t, w, &out)
	assert.True(t, out.Banned)

	w = api.do(http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users struct {
		Total int `json:"total"`
	}
	decode(t, w, &users)
	assert.Equal(t, 2, users.Total)

	w = api.do(http.MethodGet, "/api/audit-logs", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
