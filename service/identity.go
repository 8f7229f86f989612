package service

import (
	"context"
	"errors"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/api/option"
)

// Verifier checks a bearer token against the identity provider and returns
// the verified email.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// FirebaseVerifier verifies Firebase ID tokens using the service-account
// credentials the deployment ships base64-encoded in the environment.
type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(ctx context.Context, serviceAccountJSON []byte) (*FirebaseVerifier, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(serviceAccountJSON))
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}
	email, _ := decoded.Claims["email"].(string)
	if email == "" {
		return "", errors.New("token has no email claim")
	}
	return email, nil
}

// DevVerifier accepts locally signed HS256 tokens carrying an email claim.
// Used when FB_SERVICE_KEY is unset so the API can run without Firebase
// credentials in development.
type DevVerifier struct {
	Secret []byte
}

type devClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (v *DevVerifier) VerifyToken(_ context.Context, token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &devClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.Secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*devClaims)
	if !ok || !parsed.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Email == "" {
		return "", errors.New("token has no email claim")
	}
	return claims.Email, nil
}
