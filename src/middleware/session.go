package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionCookie carries the signed principal for browser dashboards.
	SessionCookie = "credchain_session"

	audienceAdmin      = "admin"
	audienceSuperAdmin = "super-admin"
)

// SessionClaims is the signed cookie payload. It carries ids only: every
// request re-fetches the backing rows, so revocation and status changes take
// effect immediately.
type SessionClaims struct {
	UniversityId int `json:"university_id,omitempty"`
	AdminId      int `json:"admin_id,omitempty"`
	SuperAdminId int `json:"super_admin_id,omitempty"`
	jwt.RegisteredClaims
}

type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionIssuer(secret string, ttl time.Duration) *SessionIssuer {
	return &SessionIssuer{secret: []byte(secret), ttl: ttl}
}

// IssueAdmin sets the session cookie for a university admin.
func (s *SessionIssuer) IssueAdmin(c *gin.Context, adminId, universityId int) error {
	return s.issue(c, SessionClaims{
		UniversityId: universityId,
		AdminId:      adminId,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{audienceAdmin},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// IssueSuperAdmin sets the session cookie for the approval console.
func (s *SessionIssuer) IssueSuperAdmin(c *gin.Context, superAdminId int) error {
	return s.issue(c, SessionClaims{
		SuperAdminId: superAdminId,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{audienceSuperAdmin},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

func (s *SessionIssuer) issue(c *gin.Context, claims SessionClaims) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("signing session token: %w", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, signed, int(s.ttl.Seconds()), "/", "", false, true)
	return nil
}

// Clear expires the session cookie.
func (s *SessionIssuer) Clear(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

func (s *SessionIssuer) parse(c *gin.Context, audience string) (*SessionClaims, error) {
	raw, err := c.Cookie(SessionCookie)
	if err != nil {
		return nil, fmt.Errorf("no session cookie")
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithAudience(audience))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}
