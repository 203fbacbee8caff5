package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const roleAdmin = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid admin password")
	ErrInvalidToken       = errors.New("invalid or expired capability")
)

// Authenticator проверяет пароль администратора и выдаёт capability-токены,
// привязанные к конкретному соединению (sid).
type Authenticator struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

// NewAuthenticator принимает либо готовый bcrypt-хеш, либо пароль открытым текстом.
// Пустой secret заменяется случайным: токены живут не дольше процесса.
func NewAuthenticator(password, passwordHash, secret string, ttl time.Duration) (*Authenticator, error) {
	hash := []byte(passwordHash)
	if len(hash) == 0 {
		if password == "" {
			return nil, errors.New("admin password is not configured")
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("хеширование пароля: %w", err)
		}
	}

	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("генерация секрета: %w", err)
		}
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Authenticator{passwordHash: hash, secret: key, ttl: ttl, now: time.Now}, nil
}

// Login сверяет пароль и выдаёт токен для сессии sessionID.
func (a *Authenticator) Login(password, sessionID string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	expires := a.now().Add(a.ttl)
	token, err := a.generateToken(sessionID, expires)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("генерация токена: %w", err)
	}
	return token, expires, nil
}

// Verify проверяет подпись, срок действия и привязку токена к sessionID.
func (a *Authenticator) Verify(tokenString, sessionID string) error {
	if tokenString == "" {
		return ErrInvalidToken
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}
	if sid, _ := claims["sid"].(string); sid != sessionID {
		return ErrInvalidToken
	}
	if role, _ := claims["role"].(string); role != roleAdmin {
		return ErrInvalidToken
	}
	return nil
}

func (a *Authenticator) generateToken(sessionID string, expires time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid":  sessionID,
		"role": roleAdmin,
		"exp":  expires.Unix(),
		"iat":  a.now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}
