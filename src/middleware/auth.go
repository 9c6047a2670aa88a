package middleware

import (
	"errors"

	"credchain/src/apperrors"
	"credchain/src/logger"
	"credchain/src/model"
	"credchain/src/rest"
	"credchain/src/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	// APITokenHeader carries the raw bearer secret on machine calls.
	APITokenHeader = "x-api-token"

	universityKey = "university"
	adminIdKey    = "admin_id"
	superAdminKey = "super_admin_id"
)

// RequireAdminSession authenticates dashboard requests: valid session cookie,
// university still present, status approved. The resolved University is
// attached to the context.
func RequireAdminSession(db *gorm.DB, sessions *SessionIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := sessions.parse(c, audienceAdmin)
		if err != nil || claims.UniversityId == 0 {
			rest.Abort(c, apperrors.ErrNotAuthenticated)
			return
		}

		university, err := resolveUniversity(db.Where("id = ?", claims.UniversityId))
		if err != nil {
			rest.Abort(c, err)
			return
		}

		c.Set(universityKey, university)
		c.Set(adminIdKey, claims.AdminId)
		c.Next()
	}
}

// RequireAPIToken authenticates machine calls by the x-api-token header. The
// header always carries the raw secret; lookup is by its SHA-256 hash.
func RequireAPIToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken := c.GetHeader(APITokenHeader)
		if rawToken == "" {
			rest.Abort(c, apperrors.Unauthenticated("missing x-api-token header"))
			return
		}

		hash := token.Hash(rawToken)
		university, err := resolveUniversity(db.
			Joins("JOIN api_tokens ON api_tokens.university_id = universities.id").
			Where("api_tokens.token_hash = ?", hash))
		if err != nil {
			if errors.Is(err, apperrors.ErrUniversityNotFound) {
				err = apperrors.ErrInvalidToken
			}
			rest.Abort(c, err)
			return
		}

		c.Set(universityKey, university)
		c.Next()
	}
}

// RequireSuperAdminSession guards the approval console.
func RequireSuperAdminSession(db *gorm.DB, sessions *SessionIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := sessions.parse(c, audienceSuperAdmin)
		if err != nil || claims.SuperAdminId == 0 {
			rest.Abort(c, apperrors.ErrNotAuthenticated)
			return
		}

		var count int64
		if err := db.Model(&model.SuperAdmin{}).Where("id = ?", claims.SuperAdminId).Count(&count).Error; err != nil {
			rest.Abort(c, apperrors.Internal("authentication failed"))
			return
		}
		if count == 0 {
			rest.Abort(c, apperrors.ErrNotAuthenticated)
			return
		}

		c.Set(superAdminKey, claims.SuperAdminId)
		c.Next()
	}
}

// RequireInternal guards service-to-service endpoints with a shared secret.
func RequireInternal(internalToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			rest.Abort(c, apperrors.Unauthenticated("no authorization header provided"))
			return
		}
		if header != "Bearer "+internalToken {
			rest.Abort(c, apperrors.Unauthenticated("wrong internal token"))
			return
		}
		c.Next()
	}
}

// resolveUniversity is the shared principal-resolution core behind both the
// session and the bearer-token middleware: fetch the row, then gate on status.
func resolveUniversity(query *gorm.DB) (*model.University, error) {
	var university model.University
	err := query.Model(&model.University{}).Select("universities.*").First(&university).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUniversityNotFound
	}
	if err != nil {
		logger.Default().Error(err, "Failed to resolve university")
		return nil, apperrors.Internal("authentication failed")
	}

	if university.Status != model.StatusApproved {
		return nil, apperrors.ErrNotApproved
	}
	return &university, nil
}

// UniversityFromContext returns the University attached by an auth middleware.
func UniversityFromContext(c *gin.Context) (*model.University, bool) {
	value, exists := c.Get(universityKey)
	if !exists {
		return nil, false
	}
	university, ok := value.(*model.University)
	return university, ok
}

// AdminIdFromContext returns the admin id behind an admin session.
func AdminIdFromContext(c *gin.Context) (int, bool) {
	value, exists := c.Get(adminIdKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(int)
	return id, ok
}
