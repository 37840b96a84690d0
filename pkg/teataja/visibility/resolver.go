// Package visibility holds the single access predicate deciding which
// notifications a user can see. List, get-by-id, search and the unread view
// all go through it so the same (user, notification) pair resolves the same
// way on every read path.
package visibility

import (
	"github.com/martlaas/teataja/pkg/teataja/models"
	"gorm.io/gorm"
)

// Visible decides whether a notification is visible to a user.
//
// Rules, in order:
//  1. the creator always sees their own notifications
//  2. a notification with no target groups is public
//  3. program managers see every notification regardless of targeting
//  4. a student sees a restricted notification iff they belong to at least
//     one targeted group
//
// Set semantics over the group ids: order and duplicates are irrelevant.
func Visible(userID uint, role models.Role, creatorID uint, targetGroupIDs, userGroupIDs []uint) bool {
	if creatorID == userID {
		return true
	}
	if len(targetGroupIDs) == 0 {
		return true
	}
	if role == models.RoleProgramManager {
		return true
	}

	targets := make(map[uint]struct{}, len(targetGroupIDs))
	for _, id := range targetGroupIDs {
		targets[id] = struct{}{}
	}
	for _, id := range userGroupIDs {
		if _, ok := targets[id]; ok {
			return true
		}
	}
	return false
}

// UserGroupIDs returns the ids of all groups the user belongs to
func UserGroupIDs(db *gorm.DB, userID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.UserGroup{}).Where("user_id = ?", userID).Pluck("group_id", &ids).Error
	return ids, err
}

// TargetGroupIDs returns the ids of the groups a notification is targeted at.
// An empty result means the notification is public.
func TargetGroupIDs(db *gorm.DB, notificationID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.NotificationGroup{}).
		Where("notification_id = ?", notificationID).
		Pluck("group_id", &ids).Error
	return ids, err
}

// TargetGroupSets returns the target group ids for a batch of notifications,
// keyed by notification id. Notifications absent from the map are public.
func TargetGroupSets(db *gorm.DB, notificationIDs []uint) (map[uint][]uint, error) {
	sets := make(map[uint][]uint)
	if len(notificationIDs) == 0 {
		return sets, nil
	}

	var rows []models.NotificationGroup
	if err := db.Where("notification_id IN ?", notificationIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		sets[row.NotificationID] = append(sets[row.NotificationID], row.GroupID)
	}
	return sets, nil
}

// FilterVisible narrows a candidate slice down to the notifications the user
// may see, resolving the user's memberships once and the targeting rows in a
// single batched query.
func FilterVisible(db *gorm.DB, userID uint, role models.Role, candidates []models.Notification) ([]models.Notification, error) {
	userGroups, err := UserGroupIDs(db, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(candidates))
	for i, n := range candidates {
		ids[i] = n.ID
	}
	targetSets, err := TargetGroupSets(db, ids)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Notification, 0, len(candidates))
	for _, n := range candidates {
		if Visible(userID, role, n.CreatedByID, targetSets[n.ID], userGroups) {
			visible = append(visible, n)
		}
	}
	return visible, nil
}

// CanSee resolves visibility of a single notification for direct detail
// access
func CanSee(db *gorm.DB, userID uint, role models.Role, n models.Notification) (bool, error) {
	targets, err := TargetGroupIDs(db, n.ID)
	if err != nil {
		return false, err
	}
	userGroups, err := UserGroupIDs(db, userID)
	if err != nil {
		return false, err
	}
	return Visible(userID, role, n.CreatedByID, targets, userGroups), nil
}
