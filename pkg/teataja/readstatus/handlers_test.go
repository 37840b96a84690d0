package readstatus

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/martlaas/teataja/pkg/teataja/auth"
	"github.com/martlaas/teataja/pkg/teataja/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.Role) models.User {
	user := models.User{Name: "Test User " + email, Email: email, Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func createTestNotification(t *testing.T, db *gorm.DB, creator models.User, title string) models.Notification {
	notification := models.Notification{Title: title, Content: "Sisu", CreatedByID: creator.ID}
	if err := db.Create(&notification).Error; err != nil {
		t.Fatalf("Failed to create test notification: %v", err)
	}
	return notification
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)

	api := r.Group("/api")
	handler.RegisterRoutes(api.Group("", auth.AuthMiddleware()))

	return r
}

func doRequest(router *gin.Engine, method, path string, user models.User) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	token, _ := auth.GenerateToken(user.ID, user.Email, string(user.Role))
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestMarkReadIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	manager := createTestUser(t, db, "juht@example.com", models.RoleProgramManager)
	student := createTestUser(t, db, "tudeng@example.com", models.RoleStudent)
	notification := createTestNotification(t, db, manager, "Eksam")

	path := fmt.Sprintf("/api/notifications/%d/read", notification.ID)
	for i := 0; i < 2; i++ {
		resp := doRequest(router, "POST", path, student)
		if resp.Code != http.StatusOK {
			t.Fatalf("Mark read call %d failed: %d %s", i+1, resp.Code, resp.Body.String())
		}
	}

	// Exactly one row, read=true
	var statuses []models.ReadStatus
	db.Where("user_id = ? AND notification_id = ?", student.ID, notification.ID).Find(&statuses)
	if len(statuses) != 1 {
		t.Fatalf("Expected exactly 1 read-status row, got %d", len(statuses))
	}
	if !statuses[0].Read {
		t.Error("Expected read=true")
	}
}

func TestMarkReadUpgradesExistingRow(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	manager := createTestUser(t, db, "juht@example.com", models.RoleProgramManager)
	student := createTestUser(t, db, "tudeng@example.com", models.RoleStudent)
	notification := createTestNotification(t, db, manager, "Eksam")

	db.Create(&models.ReadStatus{UserID: student.ID, NotificationID: notification.ID, Read: false})

	resp := doRequest(router, "POST", fmt.Sprintf("/api/notifications/%d/read", notification.ID), student)
	if resp.Code != http.StatusOK {
		t.Fatalf("Mark read failed: %d", resp.Code)
	}

	var statuses []models.ReadStatus
	db.Where("user_id = ? AND notification_id = ?", student.ID, notification.ID).Find(&statuses)
	if len(statuses) != 1 || !statuses[0].Read {
		t.Errorf("Expected the existing row upgraded to read=true, got %v", statuses)
	}
}

func TestListMine(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	manager := createTestUser(t, db, "juht@example.com", models.RoleProgramManager)
	student := createTestUser(t, db, "tudeng@example.com", models.RoleStudent)
	first := createTestNotification(t, db, manager, "Esimene")
	second := createTestNotification(t, db, manager, "Teine")

	doRequest(router, "POST", fmt.Sprintf("/api/notifications/%d/read", first.ID), student)
	doRequest(router, "POST", fmt.Sprintf("/api/notifications/%d/read", second.ID), student)

	resp := doRequest(router, "GET", "/api/read-status", student)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.Code)
	}
	var statuses []StatusResponse
	json.Unmarshal(resp.Body.Bytes(), &statuses)
	if len(statuses) != 2 {
		t.Errorf("Expected 2 rows, got %d", len(statuses))
	}
}

func TestListForNotificationCreatorOnly(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	creator := createTestUser(t, db, "juht@example.com", models.RoleProgramManager)
	otherManager := createTestUser(t, db, "teine@example.com", models.RoleProgramManager)
	student := createTestUser(t, db, "tudeng@example.com", models.RoleStudent)
	notification := createTestNotification(t, db, creator, "Eksam")

	doRequest(router, "POST", fmt.Sprintf("/api/notifications/%d/read", notification.ID), student)

	// Existence check precedes ownership: missing id is 404
	resp := doRequest(router, "GET", "/api/notifications/9999/read-status", creator)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing notification, got %d", resp.Code)
	}

	// Non-creator, even a program manager, gets 403
	resp = doRequest(router, "GET", fmt.Sprintf("/api/notifications/%d/read-status", notification.ID), otherManager)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-creator, got %d", resp.Code)
	}

	// Creator sees joined reader name and role
	resp = doRequest(router, "GET", fmt.Sprintf("/api/notifications/%d/read-status", notification.ID), creator)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200 for creator, got %d", resp.Code)
	}
	var statuses []StatusResponse
	json.Unmarshal(resp.Body.Bytes(), &statuses)
	if len(statuses) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(statuses))
	}
	if statuses[0].ReaderName == "" || statuses[0].ReaderRole != string(models.RoleStudent) {
		t.Errorf("Expected joined reader name and role, got %+v", statuses[0])
	}
}

func TestListUnreadLeftJoinSemantics(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	manager := createTestUser(t, db, "juht@example.com", models.RoleProgramManager)
	student := createTestUser(t, db, "tudeng@example.com", models.RoleStudent)

	noRow := createTestNotification(t, db, manager, "Lugemata, rida puudub")
	unreadRow := createTestNotification(t, db, manager, "Lugemata, rida olemas")
	readRow := createTestNotification(t, db, manager, "Loetud")

	db.Create(&models.ReadStatus{UserID: student.ID, NotificationID: unreadRow.ID, Read: false})
	db.Create(&models.ReadStatus{UserID: student.ID, NotificationID: readRow.ID, Read: true})

	resp := doRequest(router, "GET", "/api/notifications/unread", student)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var unread []models.Notification
	json.Unmarshal(resp.Body.Bytes(), &unread)

	ids := make(map[uint]bool)
	for _, n := range unread {
		ids[n.ID] = true
	}
	if !ids[noRow.ID] {
		t.Error("Expected notification with no read-status row to be unread")
	}
	if !ids[unreadRow.ID] {
		t.Error("Expected notification with read=false to be unread")
	}
	if ids[readRow.ID] {
		t.Error("Expected read notification to be excluded")
	}
}

func TestListUnreadRespectsVisibility(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	manager := createTestUser(t, db, "juht@example.com", models.RoleProgramManager)
	student := createTestUser(t, db, "tudeng@example.com", models.RoleStudent)

	group := models.Group{Name: "Kursus 7"}
	db.Create(&group)
	restricted := createTestNotification(t, db, manager, "Kinnine")
	db.Create(&models.NotificationGroup{NotificationID: restricted.ID, GroupID: group.ID})
	public := createTestNotification(t, db, manager, "Avalik")

	resp := doRequest(router, "GET", "/api/notifications/unread", student)
	var unread []models.Notification
	json.Unmarshal(resp.Body.Bytes(), &unread)

	if len(unread) != 1 || unread[0].ID != public.ID {
		t.Errorf("Expected only the public notification in unread, got %d entries", len(unread))
	}
}

// Another user marking the same notification read must not leak into this
// user's row count.
func TestReadStatusIsPerUser(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	manager := createTestUser(t, db, "juht@example.com", models.RoleProgramManager)
	first := createTestUser(t, db, "a@example.com", models.RoleStudent)
	second := createTestUser(t, db, "b@example.com", models.RoleStudent)
	notification := createTestNotification(t, db, manager, "Eksam")

	doRequest(router, "POST", fmt.Sprintf("/api/notifications/%d/read", notification.ID), first)
	doRequest(router, "POST", fmt.Sprintf("/api/notifications/%d/read", notification.ID), second)

	var count int64
	db.Model(&models.ReadStatus{}).Where("notification_id = ?", notification.ID).Count(&count)
	if count != 2 {
		t.Errorf("Expected one row per user, got %d total", count)
	}

	resp := doRequest(router, "GET", "/api/read-status", first)
	var statuses []StatusResponse
	json.Unmarshal(resp.Body.Bytes(), &statuses)
	if len(statuses) != 1 {
		t.Errorf("Expected 1 row for first user, got %d", len(statuses))
	}
}
