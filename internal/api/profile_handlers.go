package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"serwis-blogowy/internal/auth"
	"serwis-blogowy/internal/database"
	"serwis-blogowy/internal/models"
)

type ProfileResponse struct {
	User  *models.User  `json:"user"`
	Posts []models.Post `json:"posts"`
}

// @Summary      View a profile
// @Description  Public profile page: the user plus their posts, newest first.
// @Tags         profiles
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  ViewModel
// @Failure      404       {object}  ViewModel
// @Router       /profile/{username} [get]
func (s *Server) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := s.store.GetUserByUsername(r.Context(), username)
	if err != nil {
		logrus.Errorf("Nie można pobrać profilu %s: %v", username, err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not load the profile")
		return
	}
	if user == nil {
		renderNotFound(w, "User not found")
		return
	}

	limit, offset := parsePagination(r)
	posts, err := s.store.ListPostsByAuthor(r.Context(), user.ID, limit, offset)
	if err != nil {
		logrus.Errorf("Nie można pobrać postów użytkownika %d: %v", user.ID, err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not load the profile")
		return
	}

	renderView(w, http.StatusOK, ViewModel{Data: ProfileResponse{User: user, Posts: posts}})
}

// @Summary      Edit own profile
// @Description  GET returns the populated form; POST applies the change. Self only.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        username         path      string           true  "Username"
// @Param        profileEditForm  body      ProfileEditForm  true  "Profile fields"
// @Success      200              {object}  ViewModel
// @Failure      401              {object}  ViewModel
// @Failure      403              {object}  ViewModel
// @Failure      404              {object}  ViewModel
// @Failure      409              {object}  ViewModel "Username or email taken"
// @Router       /profile/{username}/edit [post]
func (s *Server) EditProfileHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	username := chi.URLParam(r, "username")

	profile, err := s.store.GetUserByUsername(r.Context(), username)
	if err != nil {
		logrus.Errorf("Nie można pobrać profilu %s: %v", username, err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not load the profile")
		return
	}
	if profile == nil {
		renderNotFound(w, "User not found")
		return
	}
	if !auth.CanModifyProfile(actor, profile) {
		renderForbidden(w)
		return
	}

	if r.Method == http.MethodGet {
		form := ProfileEditForm{Username: profile.Username, Email: profile.Email}
		if profile.AboutMyself != nil {
			form.AboutMyself = *profile.AboutMyself
		}
		if profile.ProfilePicture != nil {
			form.ProfilePicture = *profile.ProfilePicture
		}
		renderView(w, http.StatusOK, ViewModel{Form: form.Values()})
		return
	}

	var form ProfileEditForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderFlash(w, http.StatusBadRequest, FlashDanger, "Invalid request body")
		return
	}

	if errs := form.Validate(); len(errs) > 0 {
		renderFormErrors(w, http.StatusBadRequest, form.Values(), errs, "Please correct the highlighted fields")
		return
	}

	params := database.UpdateUserProfileParams{
		ID:       profile.ID,
		Username: form.Username,
		Email:    form.Email,
	}
	if form.AboutMyself != "" {
		params.AboutMyself = &form.AboutMyself
	}
	if form.ProfilePicture != "" {
		params.ProfilePicture = &form.ProfilePicture
	}

	updated, err := s.store.UpdateUserProfile(r.Context(), params)
	if err != nil {
		if errors.Is(err, database.ErrUsernameTaken) {
			renderFormErrors(w, http.StatusConflict, form.Values(),
				map[string]string{"username": "This username is already taken"}, "This username is already taken")
			return
		}
		if errors.Is(err, database.ErrEmailTaken) {
			renderFormErrors(w, http.StatusConflict, form.Values(),
				map[string]string{"email": "This email is already registered"}, "This email is already registered")
			return
		}
		logrus.Errorf("Nie można zaktualizować profilu %d: %v", profile.ID, err)
		renderFormErrors(w, http.StatusInternalServerError, form.Values(), nil, "Could not save the profile, please try again")
		return
	}
	if updated == nil {
		renderNotFound(w, "User not found")
		return
	}

	renderView(w, http.StatusOK, ViewModel{
		Data:     updated,
		Flash:    &Flash{Text: "Profile updated", Category: FlashSuccess},
		Redirect: "/profile/" + updated.Username,
	})
}

// @Summary      Delete an account
// @Description  Permanently removes the account and its sessions. Self or admin; the user's posts stay, with authorship cleared.
// @Tags         profiles
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  ViewModel
// @Failure      401       {object}  ViewModel
// @Failure      403       {object}  ViewModel
// @Failure      404       {object}  ViewModel
// @Router       /profile/{username}/delete [get]
func (s *Server) DeleteProfileHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	username := chi.URLParam(r, "username")

	profile, err := s.store.GetUserByUsername(r.Context(), username)
	if err != nil {
		logrus.Errorf("Nie można pobrać profilu %s: %v", username, err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not load the profile")
		return
	}
	if profile == nil {
		renderNotFound(w, "User not found")
		return
	}
	if !auth.CanModifyProfile(actor, profile) && !auth.IsAdmin(actor) {
		renderForbidden(w)
		return
	}

	deleted, err := s.store.DeleteUser(r.Context(), profile.ID)
	if err != nil {
		logrus.Errorf("Nie można usunąć użytkownika %d: %v", profile.ID, err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not delete the account, please try again")
		return
	}
	if !deleted {
		renderNotFound(w, "User not found")
		return
	}

	s.store.RecordEvent(r.Context(), actor.ID, "user_deleted", map[string]interface{}{
		"user_id":  profile.ID,
		"username": profile.Username,
	})

	// Deleting your own account also ends the session in the browser;
	// the session rows were already removed by the FK cascade.
	if actor.ID == profile.ID {
		s.clearSessionCookie(w)
	}

	renderView(w, http.StatusOK, ViewModel{
		Flash:    &Flash{Text: "Account deleted", Category: FlashSuccess},
		Redirect: "/",
	})
}
