package visibility

import (
	"testing"

	"github.com/martlaas/teataja/pkg/teataja/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestCreatorAlwaysSeesOwnNotification(t *testing.T) {
	if !Visible(1, models.RoleStudent, 1, []uint{99}, nil) {
		t.Error("Expected creator to see own restricted notification")
	}
}

func TestPublicNotificationVisibleToEveryone(t *testing.T) {
	if !Visible(2, models.RoleStudent, 1, nil, nil) {
		t.Error("Expected student with no groups to see public notification")
	}
	if !Visible(3, models.RoleProgramManager, 1, []uint{}, []uint{5}) {
		t.Error("Expected program manager to see public notification")
	}
}

func TestProgramManagerBypassesTargeting(t *testing.T) {
	if !Visible(2, models.RoleProgramManager, 1, []uint{7}, nil) {
		t.Error("Expected program manager to see restricted notification without membership")
	}
}

func TestStudentNeedsOverlappingGroup(t *testing.T) {
	if !Visible(2, models.RoleStudent, 1, []uint{7, 8}, []uint{3, 8}) {
		t.Error("Expected student in a targeted group to see notification")
	}
	if Visible(2, models.RoleStudent, 1, []uint{7, 8}, []uint{3, 4}) {
		t.Error("Expected student outside all targeted groups to be denied")
	}
}

func TestStudentWithNoGroupsSeesOnlyPublic(t *testing.T) {
	if Visible(2, models.RoleStudent, 1, []uint{7}, nil) {
		t.Error("Expected groupless student to be denied a restricted notification")
	}
	if !Visible(2, models.RoleStudent, 1, nil, nil) {
		t.Error("Expected groupless student to see a public notification")
	}
}

func TestTargetGroupOrderIrrelevant(t *testing.T) {
	a := Visible(2, models.RoleStudent, 1, []uint{7, 8, 9}, []uint{9})
	b := Visible(2, models.RoleStudent, 1, []uint{9, 8, 7}, []uint{9})
	if a != b || !a {
		t.Errorf("Expected identical outcome regardless of target order, got %v and %v", a, b)
	}
}

func TestEmptyMemberGroupStillRestricts(t *testing.T) {
	// Targeting a group nobody belongs to keeps the notification restricted,
	// it does not silently become public
	if Visible(2, models.RoleStudent, 1, []uint{42}, []uint{3}) {
		t.Error("Expected notification targeted at an empty group to stay hidden")
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func TestFilterVisible(t *testing.T) {
	db := setupTestDB(t)

	manager := models.User{Name: "Juht", Email: "juht@example.com", Role: models.RoleProgramManager}
	student := models.User{Name: "Tudeng", Email: "tudeng@example.com", Role: models.RoleStudent}
	db.Create(&manager)
	db.Create(&student)

	group := models.Group{Name: "Kursus 7"}
	db.Create(&group)
	db.Create(&models.UserGroup{UserID: student.ID, GroupID: group.ID})

	public := models.Notification{Title: "Public", Content: "x", CreatedByID: manager.ID}
	targeted := models.Notification{Title: "Targeted", Content: "x", CreatedByID: manager.ID}
	hidden := models.Notification{Title: "Hidden", Content: "x", CreatedByID: manager.ID}
	db.Create(&public)
	db.Create(&targeted)
	db.Create(&hidden)
	db.Create(&models.NotificationGroup{NotificationID: targeted.ID, GroupID: group.ID})

	other := models.Group{Name: "Kursus 8"}
	db.Create(&other)
	db.Create(&models.NotificationGroup{NotificationID: hidden.ID, GroupID: other.ID})

	all := []models.Notification{public, targeted, hidden}

	visible, err := FilterVisible(db, student.ID, models.RoleStudent, all)
	if err != nil {
		t.Fatalf("FilterVisible failed: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("Expected student to see 2 notifications, got %d", len(visible))
	}
	for _, n := range visible {
		if n.ID == hidden.ID {
			t.Error("Expected hidden notification to be filtered out")
		}
	}

	// Program managers bypass targeting entirely
	visible, err = FilterVisible(db, manager.ID+1000, models.RoleProgramManager, all)
	if err != nil {
		t.Fatalf("FilterVisible failed: %v", err)
	}
	if len(visible) != 3 {
		t.Errorf("Expected program manager to see all 3 notifications, got %d", len(visible))
	}
}

func TestCanSeeMatchesFilterVisible(t *testing.T) {
	db := setupTestDB(t)

	manager := models.User{Name: "Juht", Email: "juht@example.com", Role: models.RoleProgramManager}
	student := models.User{Name: "Tudeng", Email: "tudeng@example.com", Role: models.RoleStudent}
	db.Create(&manager)
	db.Create(&student)

	group := models.Group{Name: "Kursus 7"}
	db.Create(&group)

	restricted := models.Notification{Title: "Restricted", Content: "x", CreatedByID: manager.ID}
	db.Create(&restricted)
	db.Create(&models.NotificationGroup{NotificationID: restricted.ID, GroupID: group.ID})

	ok, err := CanSee(db, student.ID, models.RoleStudent, restricted)
	if err != nil {
		t.Fatalf("CanSee failed: %v", err)
	}
	filtered, err := FilterVisible(db, student.ID, models.RoleStudent, []models.Notification{restricted})
	if err != nil {
		t.Fatalf("FilterVisible failed: %v", err)
	}
	if ok != (len(filtered) == 1) {
		t.Errorf("Expected CanSee (%v) and FilterVisible (%d results) to agree", ok, len(filtered))
	}

	db.Create(&models.UserGroup{UserID: student.ID, GroupID: group.ID})

	ok, _ = CanSee(db, student.ID, models.RoleStudent, restricted)
	filtered, _ = FilterVisible(db, student.ID, models.RoleStudent, []models.Notification{restricted})
	if !ok || len(filtered) != 1 {
		t.Error("Expected both paths to grant access after the student joined the targeted group")
	}
}
