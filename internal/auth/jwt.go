package auth

import (
	"time"

	"negocio-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type JWTCustomClaims struct {
	UsuarioID uint   `json:"usuario_id"`
	Username  string `json:"username"`
	Rol       string `json:"rol"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, usuario *models.Usuario) (string, error) {
	claims := &JWTCustomClaims{
		UsuarioID: usuario.ID,
		Username:  usuario.Username,
		Rol:       usuario.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
