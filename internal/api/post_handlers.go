package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"serwis-blogowy/internal/auth"
	"serwis-blogowy/internal/database"
)

const postsPerPage = 50

func parsePagination(r *http.Request) (limit int, offset int) {
	limit = postsPerPage
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= postsPerPage {
		limit = l
	}
	if o, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && o > 0 {
		offset = o
	}
	return limit, offset
}

func (s *Server) postFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		renderNotFound(w, "Post not found")
		return 0, false
	}
	return postID, true
}

// @Summary      List posts
// @Description  Returns posts for the front page, newest first.
// @Tags         posts
// @Produce      json
// @Success      200  {object}  ViewModel
// @Router       / [get]
func (s *Server) ListPostsHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	posts, err := s.store.ListPosts(r.Context(), limit, offset)
	if err != nil {
		logrus.Errorf("Nie można pobrać postów: %v", err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not load posts")
		return
	}

	renderView(w, http.StatusOK, ViewModel{Data: posts})
}

// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        postID  path      int  true  "Post id"
// @Success      200     {object}  ViewModel
// @Failure      404     {object}  ViewModel
// @Router       /posts/{postID} [get]
func (s *Server) GetPostHandler(w http.ResponseWriter, r *http.Request) {
	postID, ok := s.postFromURL(w, r)
	if !ok {
		return
	}

	post, err := s.store.GetPostByID(r.Context(), postID)
	if err != nil {
		logrus.Errorf("Nie można pobrać posta %d: %v", postID, err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not load the post")
		return
	}
	if post == nil {
		renderNotFound(w, "Post not found")
		return
	}

	renderView(w, http.StatusOK, ViewModel{Data: post})
}

// @Summary      Create a post
// @Description  GET returns the empty form; POST validates and publishes.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        postForm  body      PostForm  true  "Post fields"
// @Success      201       {object}  ViewModel
// @Failure      400       {object}  ViewModel "Validation errors"
// @Failure      401       {object}  ViewModel
// @Router       /create/post [post]
func (s *Server) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	if r.Method == http.MethodGet {
		renderView(w, http.StatusOK, ViewModel{Form: (&PostForm{}).Values()})
		return
	}

	var form PostForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderFlash(w, http.StatusBadRequest, FlashDanger, "Invalid request body")
		return
	}

	if errs := form.Validate(); len(errs) > 0 {
		renderFormErrors(w, http.StatusBadRequest, form.Values(), errs, "Please correct the highlighted fields")
		return
	}

	post, err := s.store.CreatePost(r.Context(), database.CreatePostParams{
		AuthorID: actor.ID,
		Title:    form.Title,
		Text:     form.Text,
	})
	if err != nil {
		logrus.Errorf("Nie można utworzyć posta dla użytkownika %d: %v", actor.ID, err)
		renderFormErrors(w, http.StatusInternalServerError, form.Values(), nil, "Could not save the post, please try again")
		return
	}

	postsCreated.Inc()
	s.store.RecordEvent(r.Context(), actor.ID, "post_created", map[string]interface{}{
		"post_id": post.ID,
		"title":   post.Title,
		"author":  actor.Username,
	})

	renderView(w, http.StatusCreated, ViewModel{
		Data:     post,
		Flash:    &Flash{Text: "Post created", Category: FlashSuccess},
		Redirect: "/posts/" + strconv.FormatInt(post.ID, 10),
	})
}

// @Summary      Edit a post
// @Description  GET returns the populated form; POST applies the change. Author only (admins included).
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        postID    path      int       true  "Post id"
// @Param        postForm  body      PostForm  true  "Post fields"
// @Success      200       {object}  ViewModel
// @Failure      401       {object}  ViewModel
// @Failure      403       {object}  ViewModel
// @Failure      404       {object}  ViewModel
// @Router       /posts/{postID}/edit [post]
func (s *Server) EditPostHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	postID, ok := s.postFromURL(w, r)
	if !ok {
		return
	}

	post, err := s.store.GetPostByID(r.Context(), postID)
	if err != nil {
		logrus.Errorf("Nie można pobrać posta %d: %v", postID, err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not load the post")
		return
	}
	if post == nil {
		renderNotFound(w, "Post not found")
		return
	}
	if !auth.CanModifyPost(actor, post) {
		renderForbidden(w)
		return
	}

	if r.Method == http.MethodGet {
		form := PostForm{Title: post.Title, Text: post.Text}
		renderView(w, http.StatusOK, ViewModel{Data: post, Form: form.Values()})
		return
	}

	var form PostForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderFlash(w, http.StatusBadRequest, FlashDanger, "Invalid request body")
		return
	}

	if errs := form.Validate(); len(errs) > 0 {
		renderFormErrors(w, http.StatusBadRequest, form.Values(), errs, "Please correct the highlighted fields")
		return
	}

	updated, err := s.store.UpdatePost(r.Context(), postID, form.Title, form.Text)
	if err != nil {
		logrus.Errorf("Nie można zaktualizować posta %d: %v", postID, err)
		renderFormErrors(w, http.StatusInternalServerError, form.Values(), nil, "Could not save the post, please try again")
		return
	}
	if updated == nil {
		renderNotFound(w, "Post not found")
		return
	}

	renderView(w, http.StatusOK, ViewModel{
		Data:     updated,
		Flash:    &Flash{Text: "Post updated", Category: FlashSuccess},
		Redirect: "/posts/" + strconv.FormatInt(updated.ID, 10),
	})
}

// @Summary      Delete a post
// @Description  Permanently removes the post. Author only (admins included).
// @Tags         posts
// @Produce      json
// @Param        postID  path      int  true  "Post id"
// @Success      200     {object}  ViewModel
// @Failure      401     {object}  ViewModel
// @Failure      403     {object}  ViewModel
// @Failure      404     {object}  ViewModel
// @Router       /posts/{postID}/delete [get]
func (s *Server) DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	postID, ok := s.postFromURL(w, r)
	if !ok {
		return
	}

	post, err := s.store.GetPostByID(r.Context(), postID)
	if err != nil {
		logrus.Errorf("Nie można pobrać posta %d: %v", postID, err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not load the post")
		return
	}
	if post == nil {
		renderNotFound(w, "Post not found")
		return
	}
	if !auth.CanModifyPost(actor, post) {
		renderForbidden(w)
		return
	}

	deleted, err := s.store.DeletePost(r.Context(), postID)
	if err != nil {
		logrus.Errorf("Nie można usunąć posta %d: %v", postID, err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not delete the post, please try again")
		return
	}
	if !deleted {
		renderNotFound(w, "Post not found")
		return
	}

	s.store.RecordEvent(r.Context(), actor.ID, "post_deleted", map[string]interface{}{
		"post_id": postID,
		"title":   post.Title,
	})

	renderView(w, http.StatusOK, ViewModel{
		Flash:    &Flash{Text: "Post deleted", Category: FlashSuccess},
		Redirect: "/",
	})
}

// @Summary      Search posts
// @Description  Case-insensitive substring search over post text, newest first. An empty query returns all posts.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        searchForm  body      SearchForm  true  "Search query"
// @Success      200         {object}  ViewModel
// @Router       /search [post]
func (s *Server) SearchPostsHandler(w http.ResponseWriter, r *http.Request) {
	var form SearchForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderFlash(w, http.StatusBadRequest, FlashDanger, "Invalid request body")
		return
	}

	limit, offset := parsePagination(r)
	posts, err := s.store.SearchPosts(r.Context(), form.Searched, limit, offset)
	if err != nil {
		logrus.Errorf("Wyszukiwanie nie powiodło się: %v", err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Search failed, please try again")
		return
	}

	vm := ViewModel{Data: posts, Form: map[string]string{"searched": form.Searched}}
	if len(posts) == 0 {
		// No matches is a normal outcome, not an error.
		vm.Flash = &Flash{Text: "No posts matched your search", Category: FlashWarning}
	}
	renderView(w, http.StatusOK, vm)
}
