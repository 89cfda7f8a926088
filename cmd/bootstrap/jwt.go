package bootstrap

import (
	"time"

	"tablekeeper/internal/handler/middleware"
	"tablekeeper/internal/pkg/config"
	"tablekeeper/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		fx.Annotate(
			NewJWTService,
			fx.As(new(middleware.TokenVerifier)),
		),
	),
)

// Tokens are minted by the staff auth service; the duration only matters for tooling.
func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, 12*time.Hour)
}
