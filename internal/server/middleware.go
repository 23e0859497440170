package server

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	businessdomain "github.com/smallharvest/herbport/internal/business/domain"
	"github.com/smallharvest/herbport/internal/identity"
	"github.com/smallharvest/herbport/internal/ownerctx"
)

const contextBusinessIDKey = "business_id"

// BearerRequired authenticates the request with the identity provider's
// bearer token and loads the backing business. Suspended accounts are
// turned away here, not in each handler.
func (s *Server) BearerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			AbortWithError(c, err)
			return
		}

		claims, err := s.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		owner, err := s.businessSvc.ResolveActive(c.Request.Context(), claims.Subject.Int64())
		if err != nil {
			// A valid token for a business we do not know is an auth
			// failure, not a lookup miss.
			if errors.Is(err, businessdomain.ErrNotFound) {
				err = ErrUnauthorized
			}
			AbortWithError(c, err)
			return
		}

		c.Set(contextBusinessIDKey, claims.Subject.String())
		ctx := ownerctx.WithOwnerID(c.Request.Context(), owner.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", identity.ErrMissingToken
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", identity.ErrInvalidToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", identity.ErrMissingToken
	}
	return token, nil
}
