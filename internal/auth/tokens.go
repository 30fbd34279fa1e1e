package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Token kinds. Rater tokens let an invited evaluator submit; subject tokens
// let the person under review attach their self-rating and read their
// private reflections.
const (
	KindRater   = "rater"
	KindSubject = "subject"
)

// InviteClaims are the JWT claims carried by an invite link. The token is the
// only credential an evaluator ever holds; there are no accounts.
type InviteClaims struct {
	EvaluationID string `json:"evaluation_id"`
	RaterID      string `json:"rater_id,omitempty"`
	Kind         string `json:"kind"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies invite tokens with an HMAC secret.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer creates a token issuer.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// IssueRaterToken creates a token for one invited evaluator, expiring at the
// evaluation deadline so stale links stop working on their own.
func (t *TokenIssuer) IssueRaterToken(evaluationID, raterID string, deadline time.Time) (string, error) {
	return t.issue(InviteClaims{
		EvaluationID: evaluationID,
		RaterID:      raterID,
		Kind:         KindRater,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(deadline),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// IssueSubjectToken creates a token for the evaluation subject.
func (t *TokenIssuer) IssueSubjectToken(evaluationID string, deadline time.Time) (string, error) {
	return t.issue(InviteClaims{
		EvaluationID: evaluationID,
		Kind:         KindSubject,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(deadline),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

func (t *TokenIssuer) issue(claims InviteClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates an invite token.
func (t *TokenIssuer) Verify(tokenString string) (*InviteClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &InviteClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*InviteClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.EvaluationID == "" {
		return nil, fmt.Errorf("token missing evaluation id")
	}
	return claims, nil
}

// Middleware extracts and verifies the Bearer token, putting the claims in
// context for handlers and the rater rate limiter.
func (t *TokenIssuer) Middleware(requiredKind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing invite token"})
			c.Abort()
			return
		}

		claims, err := t.Verify(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired invite token"})
			c.Abort()
			return
		}

		if requiredKind != "" && claims.Kind != requiredKind {
			c.JSON(http.StatusForbidden, gin.H{"error": "token not valid for this operation"})
			c.Abort()
			return
		}

		c.Set("evaluation_id", claims.EvaluationID)
		c.Set("rater_id", claims.RaterID)
		c.Set("token_kind", claims.Kind)
		c.Next()
	}
}
