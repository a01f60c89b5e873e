package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tomdewit/bartab-app/controllers"
	"github.com/tomdewit/bartab-app/database"
	"github.com/tomdewit/bartab-app/models"
	"github.com/tomdewit/bartab-app/services"
	"github.com/tomdewit/bartab-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// setupTestDB opens a fresh named in-memory sqlite database and migrates it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// setupSessionRouter wires the session routes without auth middleware.
func setupSessionRouter(db *gorm.DB) (*gin.Engine, *services.BarService) {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	barService := services.NewBarService(db)
	sessionCtrl := controllers.NewSessionController(services.NewSessionService(barService))

	router.GET("/bars/:bar_id/sessions", sessionCtrl.GetAllSessions)
	router.POST("/bars/:bar_id/sessions", sessionCtrl.CreateSession)
	router.GET("/bars/:bar_id/active-session", sessionCtrl.GetActiveSession)
	router.POST("/bars/:bar_id/sessions/:session_id/lock", sessionCtrl.LockSession)
	router.POST("/bars/:bar_id/sessions/:session_id/end", sessionCtrl.EndSession)
	return router, barService
}

func postJSON(t *testing.T, router *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateSessionEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router, bars := setupSessionRouter(db)

	bar, err := bars.CreateBar("De Kroeg", uuid.New())
	require.NoError(t, err)

	w := postJSON(t, router, "/bars/"+bar.ID.String()+"/sessions", map[string]string{"name": "Friday night"})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Session created", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, string(models.SessionOpen), data["status"])

	// A second open session is refused with a conflict.
	w = postJSON(t, router, "/bars/"+bar.ID.String()+"/sessions", map[string]string{"name": "Saturday night"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateSessionUnknownBar(t *testing.T) {
	db := setupTestDB(t)
	router, _ := setupSessionRouter(db)

	w := postJSON(t, router, "/bars/"+uuid.NewString()+"/sessions", map[string]string{"name": "Friday night"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionLifecycleEndpoints(t *testing.T) {
	db := setupTestDB(t)
	router, bars := setupSessionRouter(db)

	bar, err := bars.CreateBar("De Kroeg", uuid.New())
	require.NoError(t, err)

	w := postJSON(t, router, "/bars/"+bar.ID.String()+"/sessions", map[string]string{"name": "Friday night"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	sessionID := created["data"].(map[string]interface{})["id"].(string)

	base := "/bars/" + bar.ID.String() + "/sessions/" + sessionID

	w = postJSON(t, router, base+"/lock", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var locked map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &locked))
	assert.Equal(t, string(models.SessionLocked), locked["data"].(map[string]interface{})["status"])

	w = postJSON(t, router, base+"/end", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var ended map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ended))
	endedData := ended["data"].(map[string]interface{})
	assert.Equal(t, string(models.SessionEnded), endedData["status"])
	assert.NotNil(t, endedData["ended_at"])

	// Locking an ended session is an invalid state transition.
	w = postJSON(t, router, base+"/lock", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// With the window ended there is no active session anymore.
	req, err := http.NewRequest("GET", "/bars/"+bar.ID.String()+"/active-session", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
