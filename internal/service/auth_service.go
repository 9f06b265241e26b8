package services

import (
	"fmt"
	"time"

	"forum-app/post-service/internal/domain"
	"forum-app/post-service/internal/repository"
	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// AuthService verifies the bearer tokens the auth service issues. Token
// issuing is exposed too, for the seed tool and tests; the HTTP surface of
// this service never signs anything.
type AuthService interface {
	VerifyAccessToken(tokenString string) (*domain.AccessDetails, error)
	IssueAccessToken(userID string, ttl time.Duration) (string, error)
}

type AuthServiceImpl struct {
	keyRepository repository.KeyRepository
}

func NewAuthService(keyRepo repository.KeyRepository) AuthService {
	return &AuthServiceImpl{
		keyRepository: keyRepo,
	}
}

func (s *AuthServiceImpl) VerifyAccessToken(tokenString string) (*domain.AccessDetails, error) {
	accessKey, err := s.keyRepository.GetCurrentKey()
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		//Make sure that the token method conform to "SigningMethodHMAC"
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(accessKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid access token")
	}

	accessUuid, ok := claims["access_uuid"].(string)
	if !ok {
		return nil, fmt.Errorf("access_uuid claim missing")
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("user_id claim missing")
	}

	return &domain.AccessDetails{
		AccessUuid: accessUuid,
		UserID:     userID,
	}, nil
}

func (s *AuthServiceImpl) IssueAccessToken(userID string, ttl time.Duration) (string, error) {
	accessKey, err := s.keyRepository.GetCurrentKey()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["access_uuid"] = uuid.New().String()
	claims["user_id"] = userID
	claims["exp"] = time.Now().Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(accessKey))
}
