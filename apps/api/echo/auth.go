package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/matrusri/standup/core"
)

// appJWTConfig is the default JWT auth middleware config.
var appJWTConfig = middleware.JWTConfig{
	SigningKey:    []byte(core.Conf.SecretKey),
	SigningMethod: middleware.AlgorithmHS256,
	ContextKey:    "roleToken",
	Claims:        new(Claims),
}

// Claims represents the authorization claims transmitted via a JWT.
// There is no user database: knowing a role's secret grants that role,
// and the token only carries the role it was issued for.
type Claims struct {
	jwt.StandardClaims
	Role core.Role `json:"role,omitempty"`
}

func GetRoleClaims(role core.Role) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    core.Conf.AppName,
			Subject:   string(role),
			ExpiresAt: now.Add(core.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Role: role,
	}
}

// GenerateToken generates a signed JWT token string representing the role Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// roleMiddleware requires the context role to be `role` exactly, or
// admin (which implies every other role).
func roleMiddleware(role core.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.Role == role || claims.Role == core.RoleAdmin {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

type authApi struct{}

func registerAuthAPI(g *echo.Group) {
	api := authApi{}
	g.POST("/auth/login", api.login)
}

// login exchanges a (role, secret) pair for a signed token. Secrets are
// compared by plain string equality against configuration; there are no
// accounts.
func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	role := core.Role(data.Role)
	if !core.Authorize(core.Conf.RoleSecrets(), role, data.Secret) {
		return errAuthenticationFailed
	}

	token, err := GenerateToken(GetRoleClaims(role))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

type (
	LoginRequest struct {
		Role   string `json:"role" validate:"required,oneof=admin techlead"`
		Secret string `json:"secret" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Role = core.CleanString(lr.Role, true /* lower */)
	return core.Validate.Struct(lr)
}
