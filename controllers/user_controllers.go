package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mi-restaurante/backend/middlewares"
	"github.com/mi-restaurante/backend/services"
	"github.com/mi-restaurante/backend/utils"
)

type UserController struct {
	Auth *services.AuthService
}

func NewUserController(auth *services.AuthService) *UserController {
	return &UserController{Auth: auth}
}

func (uc *UserController) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"nombre"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondMessage(c, http.StatusBadRequest, "Faltan campos")
		return
	}

	res, err := uc.Auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			utils.RespondMessage(c, http.StatusBadRequest, "Faltan campos")
		case errors.Is(err, services.ErrEmailTaken):
			utils.RespondMessage(c, http.StatusConflict, "Ese correo ya está registrado")
		default:
			utils.RespondError(c, http.StatusInternalServerError, "Error en el servidor", err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusCreated, gin.H{
		"mensaje": "Usuario registrado",
		"token":   res.Token,
		"usuario": res.User.Public(),
	})
}

func (uc *UserController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondMessage(c, http.StatusUnauthorized, "Correo o contraseña incorrectos")
		return
	}

	res, err := uc.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondMessage(c, http.StatusUnauthorized, "Correo o contraseña incorrectos")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Error en el servidor", err)
		return
	}

	utils.InfoLogger.Printf("User logged in: %s", res.User.Email)
	utils.RespondJSON(c, http.StatusOK, gin.H{
		"mensaje": "Login exitoso",
		"token":   res.Token,
		"usuario": res.User.Public(),
	})
}

// GoogleLogin exchanges a Google Identity Services credential for a session.
func (uc *UserController) GoogleLogin(c *gin.Context) {
	var req struct {
		Credential string `json:"credential"`
	}
	_ = c.ShouldBindJSON(&req)

	res, err := uc.Auth.GoogleLogin(c.Request.Context(), req.Credential)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingCredential):
			utils.RespondMessage(c, http.StatusBadRequest, "Falta credential de Google")
		case errors.Is(err, services.ErrGoogleNoEmail):
			utils.RespondMessage(c, http.StatusBadRequest, "Google no entregó email válido")
		default:
			utils.RespondError(c, http.StatusInternalServerError, "Error validando token con Google", err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusOK, gin.H{
		"mensaje": "Login con Google exitoso",
		"token":   res.Token,
		"usuario": res.User.Public(),
	})
}

// Profile echoes the session claims.
func (uc *UserController) Profile(c *gin.Context) {
	claims, ok := middlewares.CurrentClaims(c)
	if !ok {
		utils.RespondMessage(c, http.StatusUnauthorized, "No se envió token")
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{
		"mensaje": "Perfil",
		"usuario": claims,
	})
}
