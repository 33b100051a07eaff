package auth

import "serwis-blogowy/internal/models"

// Dostęp do panelu admina ma tylko ta stała lista identyfikatorów.
var adminIDs = map[int64]bool{
	1: true,
}

// IsAdmin reports whether the actor is on the fixed admin allow-list.
// A nil actor is anonymous and never an admin.
func IsAdmin(actor *models.User) bool {
	return actor != nil && adminIDs[actor.ID]
}

// CanModifyPost reports whether the actor may edit or delete the post.
// Admins may modify any post; otherwise only the author may. Posts whose
// author account was deleted have no owner and are admin-only.
func CanModifyPost(actor *models.User, post *models.Post) bool {
	if actor == nil || post == nil {
		return false
	}
	if IsAdmin(actor) {
		return true
	}
	return post.AuthorID != nil && *post.AuthorID == actor.ID
}

// CanModifyProfile reports whether the actor may edit the given profile.
// Only the owner may; admin deletion of accounts is decided by the handler
// with IsAdmin on top of this.
func CanModifyProfile(actor, profile *models.User) bool {
	if actor == nil || profile == nil {
		return false
	}
	return actor.ID == profile.ID
}
