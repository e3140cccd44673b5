package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"puna.nz/compliance/middleware"
	"puna.nz/compliance/models"
)

// AuthHandler serves registration, login and the profile endpoint.
type AuthHandler struct {
	db   *gorm.DB
	auth *middleware.Auth
}

func NewAuthHandler(db *gorm.DB, auth *middleware.Auth) *AuthHandler {
	return &AuthHandler{db: db, auth: auth}
}

type registerReq struct {
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"password"`
	OrganizationID uuid.UUID `json:"organizationId"`
	Role           string    `json:"role"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" || req.OrganizationID == uuid.Nil {
		http.Error(w, "email, password and organizationId are required", http.StatusBadRequest)
		return
	}

	var org models.Organization
	if err := h.db.First(&org, "id = ?", req.OrganizationID).Error; err != nil {
		http.Error(w, "unknown organization", http.StatusNotFound)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "error hashing password", http.StatusInternalServerError)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleViewer
	}
	u := models.User{
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   string(hash),
		OrganizationID: req.OrganizationID,
		Role:           role,
	}
	if err := h.db.Create(&u).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			http.Error(w, "email already registered", http.StatusConflict)
		} else {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var u models.User
	if err := h.db.Where("email = ? AND is_active = true", req.Email).First(&u).Error; err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.auth.GenerateToken(u.ID.String(), u.OrganizationID.String(), u.Role, u.Name, u.Email)
	if err != nil {
		http.Error(w, "couldn't create token", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	h.db.Model(&u).Update("last_login_at", now)

	u.PasswordHash = ""
	writeJSON(w, http.StatusOK, loginResp{Token: token, User: u})
}

// Profile returns the authenticated user with their organization.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var u models.User
	if err := h.db.Preload("Organization").First(&u, "id = ?", userID).Error; err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	u.PasswordHash = ""
	writeJSON(w, http.StatusOK, u)
}
