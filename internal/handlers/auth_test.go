package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/contractdesk/contract-management-api/internal/constants"
	"github.com/contractdesk/contract-management-api/internal/database"
	"github.com/contractdesk/contract-management-api/internal/dto"
	"github.com/contractdesk/contract-management-api/internal/middleware"
	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/repository"
	"github.com/contractdesk/contract-management-api/internal/services"
)

type authTestEnv struct {
	db                *gorm.DB
	handler           *AuthHandler
	authService       *services.AuthService
	membershipService *services.MembershipService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.BranchOffice{},
		&models.OrganizationMember{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	authService := services.NewAuthService(userRepo)
	membershipService := services.NewMembershipService(orgRepo)
	handler := NewAuthHandler(authService, membershipService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:                db,
		handler:           handler,
		authService:       authService,
		membershipService: membershipService,
	}
}

func newAuthRouter(t *testing.T, env authTestEnv) *gin.Engine {
	t.Helper()

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/signup", env.handler.Signup)
	r.POST("/api/auth/login", env.handler.Login)
	r.GET("/api/auth/me", middleware.RequireAuth(), env.handler.GetCurrentUser)
	return r
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(t, env)

	payload := map[string]string{
		"email":             "founder@acme.test",
		"password":          "supersecret",
		"full_name":         "Ada Founder",
		"organization_name": "Acme Legal",
		"billing_plan":      "business",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "founder@acme.test", response.Email)

	// Signup creates the organization and the admin membership in one go.
	var org models.Organization
	require.NoError(t, env.db.Where("owner_user_id = ?", response.ID).First(&org).Error)
	require.Equal(t, "Acme Legal", org.Name)
	require.Equal(t, models.PlanBusiness, org.BillingPlan)

	var member models.OrganizationMember
	require.NoError(t, env.db.Where("user_id = ?", response.ID).First(&member).Error)
	require.Equal(t, models.RoleOrgAdmin, member.Role)
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(t, env)

	payload := map[string]string{
		"email":             "founder@acme.test",
		"password":          "supersecret",
		"organization_name": "Acme Legal",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(t, env)

	_, err := env.authService.Signup(services.SignupInput{
		Email:            "founder@acme.test",
		Password:         "supersecret",
		OrganizationName: "Acme Legal",
	})
	require.NoError(t, err)

	payload := map[string]string{
		"email":    "founder@acme.test",
		"password": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Result().Cookies())

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "founder@acme.test", response.Email)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(t, env)

	_, err := env.authService.Signup(services.SignupInput{
		Email:            "founder@acme.test",
		Password:         "supersecret",
		OrganizationName: "Acme Legal",
	})
	require.NoError(t, err)

	payload := map[string]string{
		"email":    "founder@acme.test",
		"password": "wrong-password",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(t, env)

	_, err := env.authService.Signup(services.SignupInput{
		Email:            "founder@acme.test",
		Password:         "supersecret",
		OrganizationName: "Acme Legal",
	})
	require.NoError(t, err)

	// Unauthenticated request is rejected.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Log in to capture the session cookie.
	body, err := json.Marshal(map[string]string{
		"email":    "founder@acme.test",
		"password": "supersecret",
	})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		User       dto.UserDTO        `json:"user"`
		Membership *dto.MembershipDTO `json:"membership"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "founder@acme.test", response.User.Email)
	require.NotNil(t, response.Membership)
	require.True(t, response.Membership.IsOrgAdmin)
	require.Equal(t, "Acme Legal", response.Membership.Organization.Name)
}
