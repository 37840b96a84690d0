package groups

import (
	"bytes"
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

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)

	api := r.Group("/api")
	handler.RegisterRoutes(api.Group("", auth.AuthMiddleware()))
	handler.RegisterManagerRoutes(api.Group("", auth.AuthMiddleware(), auth.RequireProgramManager()))

	return r
}

func doRequest(router *gin.Engine, method, path string, body interface{}, user models.User) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		buf = bytes.NewBuffer(jsonBody)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	token, _ := auth.GenerateToken(user.ID, user.Email, string(user.Role))
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestListGroups(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	student := createTestUser(t, db, "tudeng@example.com", models.RoleStudent)

	db.Create(&models.Group{Name: "Kursus 7"})
	db.Create(&models.Group{Name: "Tudengid", IsRoleGroup: true, Role: models.RoleStudent})

	resp := doRequest(router, "GET", "/api/groups", nil, student)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.Code)
	}
	var groups []GroupResponse
	json.Unmarshal(resp.Body.Bytes(), &groups)
	if len(groups) != 2 {
		t.Errorf("Expected 2 groups, got %d", len(groups))
	}
}

func TestCreateGroupManagerOnly(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	manager := createTestUser(t, db, "juht@example.com", models.RoleProgramManager)
	student := createTestUser(t, db, "tudeng@example.com", models.RoleStudent)

	resp := doRequest(router, "POST", "/api/groups", CreateGroupRequest{Name: "Kursus 7"}, student)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for student, got %d", resp.Code)
	}

	resp = doRequest(router, "POST", "/api/groups", CreateGroupRequest{Name: "Kursus 7"}, manager)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created GroupResponse
	json.Unmarshal(resp.Body.Bytes(), &created)
	if created.IsRoleGroup {
		t.Error("Expected a regular group, got a role group")
	}
}

func TestJoinAndLeaveGroup(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	student := createTestUser(t, db, "tudeng@example.com", models.RoleStudent)

	group := models.Group{Name: "Kursus 7"}
	db.Create(&group)

	// Join twice: idempotent, one membership row
	for i := 0; i < 2; i++ {
		resp := doRequest(router, "POST", fmt.Sprintf("/api/groups/%d/join", group.ID), nil, student)
		if resp.Code != http.StatusOK {
			t.Fatalf("Join call %d failed: %d", i+1, resp.Code)
		}
	}
	var count int64
	db.Model(&models.UserGroup{}).Where("user_id = ? AND group_id = ?", student.ID, group.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 membership row, got %d", count)
	}

	resp := doRequest(router, "GET", "/api/groups/mine", nil, student)
	var mine []GroupResponse
	json.Unmarshal(resp.Body.Bytes(), &mine)
	if len(mine) != 1 || mine[0].ID != group.ID {
		t.Errorf("Expected the joined group in /groups/mine, got %v", mine)
	}

	resp = doRequest(router, "DELETE", fmt.Sprintf("/api/groups/%d/leave", group.ID), nil, student)
	if resp.Code != http.StatusOK {
		t.Fatalf("Leave failed: %d", resp.Code)
	}
	db.Model(&models.UserGroup{}).Where("user_id = ?", student.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected no membership rows after leave, got %d", count)
	}
}

func TestRoleGroupMembershipIsAutomatic(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	student := createTestUser(t, db, "tudeng@example.com", models.RoleStudent)

	roleGroup := models.Group{Name: "Tudengid", IsRoleGroup: true, Role: models.RoleStudent}
	db.Create(&roleGroup)

	resp := doRequest(router, "POST", fmt.Sprintf("/api/groups/%d/join", roleGroup.ID), nil, student)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 joining a role group, got %d", resp.Code)
	}
	resp = doRequest(router, "DELETE", fmt.Sprintf("/api/groups/%d/leave", roleGroup.ID), nil, student)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 leaving a role group, got %d", resp.Code)
	}
}

func TestJoinMissingGroupIs404(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	student := createTestUser(t, db, "tudeng@example.com", models.RoleStudent)

	resp := doRequest(router, "POST", "/api/groups/9999/join", nil, student)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.Code)
	}
}
