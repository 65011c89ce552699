// Package crypto содержит криптографические примитивы сервера.
//
// В частности, пакет отвечает за:
//   - генерацию, подпись и проверку JWT access-токенов (HS256);
//   - хэширование и проверку паролей (bcrypt, argon2id).
package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTTL — срок жизни access-токена, если в конфиге не задан.
const DefaultAccessTTL = time.Hour

// ErrEmptySigningKey возвращается, если ключ подписи не задан.
var ErrEmptySigningKey = errors.New("empty signing key")

// Claims — полезная нагрузка access-токена.
//
// UserID и Email — данные пользователя, остальное — стандартные RegisteredClaims
// (sub = UserID, iat, exp, опционально iss и aud).
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTConfig описывает параметры генерации и проверки JWT access-токена.
type JWTConfig struct {
	// Issuer — значение поля iss (кто выдал токен), опционально.
	Issuer string
	// Audience — значение поля aud (для кого предназначен токен), опционально.
	Audience string
	// SigningKey — общий секрет для подписи токена (HS256).
	SigningKey string
	// AccessTTL — срок жизни access-токена.
	AccessTTL time.Duration
}

// TokenIssuer выпускает access-токены с фиксированными параметрами.
type TokenIssuer struct {
	cfg JWTConfig
	now func() time.Time
}

// NewTokenIssuer создаёт TokenIssuer. Нулевой AccessTTL заменяется на час.
func NewTokenIssuer(cfg JWTConfig) *TokenIssuer {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	return &TokenIssuer{cfg: cfg, now: time.Now}
}

// WithClock подменяет источник времени (нужно тестам для проверки истечения).
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	i.now = now
	return i
}

// Issue создаёт и подписывает access-токен для пользователя.
func (i *TokenIssuer) Issue(userID, email string) (string, error) {
	return NewAccessToken(userID, email, i.cfg, i.now())
}

// NewAccessToken создаёт и подписывает JWT access-токен.
//
// Токен содержит id и email пользователя, а также:
//   - sub (userID)
//   - iat (now)
//   - exp (now + AccessTTL)
//   - iss/aud, если заданы
//
// Используется алгоритм подписи HS256.
func NewAccessToken(userID, email string, cfg JWTConfig, now time.Time) (string, error) {
	if cfg.SigningKey == "" {
		return "", ErrEmptySigningKey
	}

	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTTL)),
		},
	}
	if cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Audience}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

// ParseAccessToken проверяет подпись, срок действия, issuer и audience токена
// и возвращает его claims.
//
// Принимается только HS256, поле exp обязательно.
// Пустые issuer/audience не проверяются.
func ParseAccessToken(tokenStr string, cfg JWTConfig) (*Claims, error) {
	if cfg.SigningKey == "" {
		return nil, ErrEmptySigningKey
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	claims := &Claims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
