package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"serwis-blogowy/internal/auth"
	"serwis-blogowy/internal/database"
	"serwis-blogowy/internal/models"
)

func (s *Server) sessionTTL() time.Duration {
	return time.Duration(s.config.Session.TTLHours) * time.Hour
}

func (s *Server) newSessionParams(r *http.Request, userID int64, token string) database.CreateSessionParams {
	return database.CreateSessionParams{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		UserAgent: r.UserAgent(),
		ClientIP:  r.RemoteAddr,
		ExpiresAt: time.Now().Add(s.sessionTTL()),
	}
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.Session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionTTL().Seconds()),
		HttpOnly: true,
		Secure:   s.config.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// establishSession creates a session row and sets the cookie.
func (s *Server) establishSession(w http.ResponseWriter, r *http.Request, user *models.User) error {
	token, err := auth.NewSessionToken()
	if err != nil {
		return err
	}
	if err := s.store.CreateSession(r.Context(), s.newSessionParams(r, user.ID, token)); err != nil {
		return err
	}
	s.setSessionCookie(w, token)
	return nil
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// @Summary      Register a new user
// @Description  Creates an account and logs the new user in. GET returns the empty registration form.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registrationForm  body      RegistrationForm  true  "Registration fields"
// @Success      201               {object}  ViewModel
// @Failure      400               {object}  ViewModel "Validation errors"
// @Failure      409               {object}  ViewModel "Username or email taken"
// @Router       /registration [post]
func (s *Server) RegistrationHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderView(w, http.StatusOK, ViewModel{Form: (&RegistrationForm{}).Values()})
		return
	}

	var form RegistrationForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderFlash(w, http.StatusBadRequest, FlashDanger, "Invalid request body")
		return
	}

	if errs := form.Validate(); len(errs) > 0 {
		renderFormErrors(w, http.StatusBadRequest, form.Values(), errs, "Please correct the highlighted fields")
		return
	}

	// Fast-path pre-checks for friendly field errors. The unique
	// constraints on users remain the authoritative guard.
	if existing, err := s.store.GetUserByUsername(r.Context(), form.Username); err != nil {
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not save your registration, please try again")
		return
	} else if existing != nil {
		renderFormErrors(w, http.StatusConflict, form.Values(),
			map[string]string{"username": "This username is already taken"}, "This username is already taken")
		return
	}
	if existing, err := s.store.GetUserByEmail(r.Context(), form.Email); err != nil {
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not save your registration, please try again")
		return
	} else if existing != nil {
		renderFormErrors(w, http.StatusConflict, form.Values(),
			map[string]string{"email": "This email is already registered"}, "This email is already registered")
		return
	}

	hashedPassword, err := auth.HashPassword(form.Password)
	if err != nil {
		logrus.Errorf("Nie można zahashować hasła: %v", err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not save your registration, please try again")
		return
	}

	params := database.CreateUserParams{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: hashedPassword,
	}
	if form.AboutMyself != "" {
		params.AboutMyself = &form.AboutMyself
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		logrus.Errorf("Nie można wygenerować tokena sesji: %v", err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not save your registration, please try again")
		return
	}

	// The account and its first session commit together or not at all.
	var user *models.User
	err = s.store.ExecTx(r.Context(), func(q *database.Queries) error {
		created, txErr := q.CreateUser(r.Context(), params)
		if txErr != nil {
			return txErr
		}
		user = created
		return q.CreateSession(r.Context(), s.newSessionParams(r, created.ID, token))
	})
	if err != nil {
		// Lost the pre-check race; the constraint turned it into a conflict.
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
		logrus.Errorf("Nie można zarejestrować użytkownika: %v", err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not save your registration, please try again")
		return
	}
	s.setSessionCookie(w, token)

	registerSuccess.Inc()
	s.store.RecordEvent(r.Context(), user.ID, "user_registered", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})

	renderView(w, http.StatusCreated, ViewModel{
		Data:     user,
		Flash:    &Flash{Text: "Welcome, " + user.Username + "!", Category: FlashSuccess},
		Redirect: "/",
	})
}

// @Summary      Log in
// @Description  Verifies credentials and establishes a cookie session. The failure message never reveals whether the username exists.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginForm  body      LoginForm  true  "Login credentials"
// @Success      200        {object}  ViewModel
// @Failure      401        {object}  ViewModel "Invalid username or password"
// @Router       /login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderView(w, http.StatusOK, ViewModel{Form: (&LoginForm{}).Values()})
		return
	}

	var form LoginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		renderFlash(w, http.StatusBadRequest, FlashDanger, "Invalid request body")
		return
	}

	if errs := form.Validate(); len(errs) > 0 {
		renderFormErrors(w, http.StatusBadRequest, form.Values(), errs, "Please correct the highlighted fields")
		return
	}

	user, err := s.store.GetUserByUsername(r.Context(), form.Username)
	if err != nil {
		logrus.Errorf("Błąd bazy przy logowaniu: %v", err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not log you in, please try again")
		return
	}

	// A single generic message on both paths so usernames cannot be
	// enumerated; the metric label keeps the distinction for operators.
	if user == nil {
		loginFailure.WithLabelValues("unknown_user").Inc()
		renderFormErrors(w, http.StatusUnauthorized, form.Values(), nil, "Invalid username or password")
		return
	}
	if !auth.CheckPasswordHash(form.Password, user.PasswordHash) {
		loginFailure.WithLabelValues("wrong_password").Inc()
		renderFormErrors(w, http.StatusUnauthorized, form.Values(), nil, "Invalid username or password")
		return
	}

	if err := s.establishSession(w, r, user); err != nil {
		logrus.Errorf("Nie można utworzyć sesji dla użytkownika %d: %v", user.ID, err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not log you in, please try again")
		return
	}

	loginSuccess.Inc()
	renderView(w, http.StatusOK, ViewModel{
		Data:     user,
		Flash:    &Flash{Text: "Logged in as " + user.Username, Category: FlashSuccess},
		Redirect: "/",
	})
}

// @Summary      Log out
// @Description  Destroys the current session and clears the cookie. Idempotent.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  ViewModel
// @Router       /logout [post]
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.config.Session.CookieName); err == nil && cookie.Value != "" {
		if err := s.store.DeleteSessionByToken(r.Context(), cookie.Value); err != nil {
			logrus.Errorf("Nie można usunąć sesji: %v", err)
		}
	}
	s.clearSessionCookie(w)

	renderView(w, http.StatusOK, ViewModel{
		Flash:    &Flash{Text: "You have been logged out", Category: FlashSuccess},
		Redirect: "/login",
	})
}

// @Summary      Current actor
// @Description  Returns the user bound to the current session.
// @Tags         users
// @Produce      json
// @Success      200  {object}  ViewModel
// @Failure      401  {object}  ViewModel
// @Router       /me [get]
func (s *Server) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	renderView(w, http.StatusOK, ViewModel{Data: ActorFromContext(r.Context())})
}
