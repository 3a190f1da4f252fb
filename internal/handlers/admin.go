// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"platepress/internal/category"
)

// Admin groups the administrative category endpoints. Authentication is
// the fronting layer's responsibility.
type Admin struct {
	categories *category.Service
}

// NewAdmin creates the admin handler group.
func NewAdmin(categories *category.Service) *Admin {
	return &Admin{categories: categories}
}

// categoryForm is the JSON body for category create and update.
type categoryForm struct {
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Color       string     `json:"color"`
	SortOrder   int        `json:"sort_order"`
	IsActive    bool       `json:"is_active"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

// CategoryCreate handles POST /admin/categories.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var form categoryForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := validateCategoryInput(form.Name, form.Slug, form.Description); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.categories.Create(r.Context(), category.CreateInput{
		Name:        form.Name,
		Slug:        form.Slug,
		Description: form.Description,
		Icon:        form.Icon,
		Color:       form.Color,
		ParentID:    form.ParentID,
		IsActive:    form.IsActive,
	})
	if err != nil {
		writeCategoryError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// CategoryUpdate handles PUT /admin/categories/{id}.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	var form categoryForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := validateCategoryInput(form.Name, form.Slug, form.Description); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := a.categories.Update(r.Context(), id, category.UpdateInput{
		Name:        form.Name,
		Slug:        form.Slug,
		Description: form.Description,
		Icon:        form.Icon,
		Color:       form.Color,
		SortOrder:   form.SortOrder,
		IsActive:    form.IsActive,
	})
	if err != nil {
		writeCategoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// CategoryReparent handles PUT /admin/categories/{id}/parent. A null
// parent_id moves the category to the root level.
func (a *Admin) CategoryReparent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	var body struct {
		ParentID *uuid.UUID `json:"parent_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := a.categories.Reparent(r.Context(), id, body.ParentID); err != nil {
		writeCategoryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CategoryDelete handles DELETE /admin/categories/{id}. The subtree goes
// with it.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	if err := a.categories.Delete(r.Context(), id); err != nil {
		writeCategoryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeCategoryError maps the category validation taxonomy onto HTTP
// statuses, surfacing the validation message verbatim.
func writeCategoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, category.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, category.ErrDuplicateSlug):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, category.ErrCyclicReference), errors.Is(err, category.ErrHierarchyTooDeep):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("category operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "category operation failed")
	}
}
