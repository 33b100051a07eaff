package api

import (
	"encoding/json"
	"net/http"
)

// Flash message categories consumed by the presentation layer.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashWarning = "warning"
)

type Flash struct {
	Text     string `json:"text" example:"Post created"`
	Category string `json:"category" example:"success"`
}

// ViewModel is what every handler hands to the presentation collaborator:
// entity data, an optional flash message, form re-population values with
// per-field errors, and an optional redirect target.
type ViewModel struct {
	Data     interface{}       `json:"data,omitempty"`
	Flash    *Flash            `json:"flash,omitempty"`
	Form     map[string]string `json:"form,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

func renderView(w http.ResponseWriter, status int, vm ViewModel) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(vm)
}

func renderFlash(w http.ResponseWriter, status int, category, text string) {
	renderView(w, status, ViewModel{Flash: &Flash{Text: text, Category: category}})
}

// renderFormErrors re-displays the submitted form with the still-valid
// values preserved and the failing fields annotated.
func renderFormErrors(w http.ResponseWriter, status int, form map[string]string, errors map[string]string, text string) {
	renderView(w, status, ViewModel{
		Flash:  &Flash{Text: text, Category: FlashDanger},
		Form:   form,
		Errors: errors,
	})
}

func renderNotFound(w http.ResponseWriter, text string) {
	renderFlash(w, http.StatusNotFound, FlashWarning, text)
}

func renderForbidden(w http.ResponseWriter) {
	renderFlash(w, http.StatusForbidden, FlashDanger, "You are not allowed to do that")
}
