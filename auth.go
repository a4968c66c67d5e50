package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func GenerateToken(userID uint, matricule string, isAdmin bool) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "defaultsecret"
	}

	claims := jwt.MapClaims{
		"user_id":   userID,
		"matricule": matricule,
		"is_admin":  isAdmin,
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ========================
// LOGIN HANDLER
// ========================

type LoginRequest struct {
	Login      string `json:"login" binding:"required"`
	MotDePasse string `json:"motDePasse" binding:"required"`
}

// Login checks the built-in admin pair first, then falls back to the
// user directory with a bcrypt compare.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	adminLogin := os.Getenv("ADMIN_LOGIN")
	if adminLogin == "" {
		adminLogin = "Admin"
	}
	adminPass := os.Getenv("ADMIN_PASSWORD")
	if adminPass == "" {
		adminPass = "Admin"
	}

	if req.Login == adminLogin && req.MotDePasse == adminPass {
		token, err := GenerateToken(0, "ADMIN-001", true)
		if err != nil {
			internalError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"access_token": token,
			"user": gin.H{
				"id":        0,
				"login":     adminLogin,
				"matricule": "ADMIN-001",
				"nom":       "Admin",
				"prenom":    "Super",
				"isAdmin":   true,
			},
		})
		return
	}

	var user User
	if err := DB.Where("login = ?", req.Login).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			jsonError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		internalError(c, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.MotDePasse), []byte(req.MotDePasse)) != nil {
		jsonError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := GenerateToken(user.ID, user.Matricule, false)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user": gin.H{
			"id":                      user.ID,
			"login":                   user.Login,
			"matricule":               user.Matricule,
			"nom":                     user.Nom,
			"prenom":                  user.Prenom,
			"email":                   user.Email,
			"telephone":               user.Telephone,
			"residenceAdministrative": user.ResidenceAdministrative,
			"isAdmin":                 false,
		},
	})
}

// Profile echoes the claims attached by AuthMiddleware.
func Profile(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	matricule, _ := c.Get("matricule")
	c.JSON(http.StatusOK, gin.H{
		"user_id":   userID,
		"matricule": matricule,
		"is_admin":  isAdminFromContext(c),
	})
}
