package Controllers_test

import (
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mi-restaurante/backend/controllers"
	"github.com/mi-restaurante/backend/middlewares"
	"github.com/mi-restaurante/backend/repository"
	"github.com/mi-restaurante/backend/services"
	"github.com/mi-restaurante/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserRouter(t *testing.T, google services.GoogleVerifier) (*gin.Engine, *utils.TokenManager) {
	tm := newTokens()
	users := repository.NewFileUserRepository(filepath.Join(t.TempDir(), "users.json"))
	userCtrl := controllers.NewUserController(services.NewAuthService(users, tm, google))

	router := gin.New()
	router.POST("/api/auth/register", userCtrl.Register)
	router.POST("/api/auth/login", userCtrl.Login)
	router.POST("/api/auth/google", userCtrl.GoogleLogin)
	router.GET("/api/auth/profile", middlewares.AuthMiddleware(tm), userCtrl.Profile)
	return router, tm
}

func TestRegisterLoginProfile(t *testing.T) {
	router, tm := setupUserRouter(t, &fakeGoogle{})

	w := doJSON(router, http.MethodPost, "/api/auth/register", map[string]string{
		"nombre": "Ana", "email": "ana@example.com", "password": "clave123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reg := decodeObject(t, w)
	assert.Equal(t, "Usuario registrado", reg["mensaje"])
	usuario := reg["usuario"].(map[string]interface{})
	assert.Equal(t, "Ana", usuario["nombre"])
	assert.Equal(t, "ana@example.com", usuario["email"])
	assert.NotContains(t, usuario, "passwordHash")

	claims, err := tm.ParseToken(reg["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, usuario["id"], claims.ID)

	w = doJSON(router, http.MethodPost, "/api/auth/register", map[string]string{
		"nombre": "Ana", "email": "ana@example.com", "password": "otra",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Ese correo ya está registrado", decodeObject(t, w)["mensaje"])

	w = doJSON(router, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "ana@example.com", "password": "clave123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	login := decodeObject(t, w)
	assert.Equal(t, "Login exitoso", login["mensaje"])

	w = doJSON(router, http.MethodGet, "/api/auth/profile", nil, login["token"].(string))
	require.Equal(t, http.StatusOK, w.Code)
	profile := decodeObject(t, w)
	assert.Equal(t, "Perfil", profile["mensaje"])
	assert.Equal(t, "ana@example.com", profile["usuario"].(map[string]interface{})["email"])
	assert.Equal(t, "Ana", profile["usuario"].(map[string]interface{})["nombre"])

	w = doJSON(router, http.MethodGet, "/api/auth/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterMissingFields(t *testing.T) {
	router, _ := setupUserRouter(t, &fakeGoogle{})

	for _, body := range []interface{}{
		map[string]string{"email": "a@b.c", "password": "x"},
		map[string]string{"nombre": "A", "password": "x"},
		map[string]string{"nombre": "A", "email": "a@b.c"},
		`not json`,
	} {
		w := doJSON(router, http.MethodPost, "/api/auth/register", body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Faltan campos", decodeObject(t, w)["mensaje"])
	}
}

func TestLoginFailures(t *testing.T) {
	router, _ := setupUserRouter(t, &fakeGoogle{})
	w := doJSON(router, http.MethodPost, "/api/auth/register", map[string]string{
		"nombre": "Ana", "email": "ana@example.com", "password": "clave123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	for _, body := range []map[string]string{
		{"email": "ana@example.com", "password": "mala"},
		{"email": "nadie@example.com", "password": "clave123"},
		{},
	} {
		w := doJSON(router, http.MethodPost, "/api/auth/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Correo o contraseña incorrectos", decodeObject(t, w)["mensaje"])
	}
}

func TestGoogleLogin(t *testing.T) {
	google := &fakeGoogle{identity: &services.GoogleIdentity{Subject: "777", Email: "beto@gmail.com", Name: "Beto"}}
	router, _ := setupUserRouter(t, google)

	w := doJSON(router, http.MethodPost, "/api/auth/google", map[string]string{"credential": "id-token"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decodeObject(t, w)
	assert.Equal(t, "Login con Google exitoso", res["mensaje"])
	usuario := res["usuario"].(map[string]interface{})
	assert.Equal(t, "google-777", usuario["id"])
	assert.Equal(t, true, usuario["viaGoogle"])
	assert.NotEmpty(t, res["token"])

	// No password exists for this account.
	w = doJSON(router, http.MethodPost, "/api/auth/login", map[string]string{"email": "beto@gmail.com", "password": ""}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGoogleLoginErrors(t *testing.T) {
	router, _ := setupUserRouter(t, &fakeGoogle{})
	w := doJSON(router, http.MethodPost, "/api/auth/google", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Falta credential de Google", decodeObject(t, w)["mensaje"])

	router, _ = setupUserRouter(t, &fakeGoogle{identity: &services.GoogleIdentity{Subject: "1"}})
	w = doJSON(router, http.MethodPost, "/api/auth/google", map[string]string{"credential": "x"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Google no entregó email válido", decodeObject(t, w)["mensaje"])

	router, _ = setupUserRouter(t, &fakeGoogle{err: errors.New("token expired")})
	w = doJSON(router, http.MethodPost, "/api/auth/google", map[string]string{"credential": "x"}, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error validando token con Google", decodeObject(t, w)["mensaje"])
}
