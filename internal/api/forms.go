package api

import "strings"

// Form validation is deliberately explicit: each form type validates itself
// and returns a map of field -> message, empty on success. Values() returns
// the re-population map for the presentation layer (passwords excluded).

const maxTitleLength = 200

type RegistrationForm struct {
	Username    string `json:"username" example:"alice"`
	Email       string `json:"email" example:"alice@example.com"`
	AboutMyself string `json:"about_myself,omitempty"`
	Password    string `json:"password"`
	Password2   string `json:"password2"`
}

func (f *RegistrationForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Username) == "" {
		errs["username"] = "Username is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	} else if !strings.Contains(f.Email, "@") {
		errs["email"] = "Email must be a valid address"
	}
	if f.Password == "" {
		errs["password"] = "Password is required"
	}
	if f.Password2 == "" {
		errs["password2"] = "Password confirmation is required"
	} else if f.Password != "" && f.Password != f.Password2 {
		errs["password2"] = "Passwords must match"
	}
	return errs
}

func (f *RegistrationForm) Values() map[string]string {
	return map[string]string{
		"username":     f.Username,
		"email":        f.Email,
		"about_myself": f.AboutMyself,
	}
}

type LoginForm struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password"`
}

func (f *LoginForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Username) == "" {
		errs["username"] = "Username is required"
	}
	if f.Password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}

func (f *LoginForm) Values() map[string]string {
	return map[string]string{"username": f.Username}
}

type PostForm struct {
	Title string `json:"title" example:"Hello"`
	Text  string `json:"text" example:"World"`
}

func (f *PostForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Title is required"
	} else if len(f.Title) > maxTitleLength {
		errs["title"] = "Title is too long"
	}
	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = "Text is required"
	}
	return errs
}

func (f *PostForm) Values() map[string]string {
	return map[string]string{
		"title": f.Title,
		"text":  f.Text,
	}
}

type ProfileEditForm struct {
	Username       string `json:"username" example:"alice"`
	Email          string `json:"email" example:"alice@example.com"`
	AboutMyself    string `json:"about_myself,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

func (f *ProfileEditForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Username) == "" {
		errs["username"] = "Username is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	} else if !strings.Contains(f.Email, "@") {
		errs["email"] = "Email must be a valid address"
	}
	return errs
}

func (f *ProfileEditForm) Values() map[string]string {
	return map[string]string{
		"username":        f.Username,
		"email":           f.Email,
		"about_myself":    f.AboutMyself,
		"profile_picture": f.ProfilePicture,
	}
}

// SearchForm accepts an empty query: it means "list everything".
type SearchForm struct {
	Searched string `json:"searched" example:"world"`
}
