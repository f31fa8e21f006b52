package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
	"github.com/projuktisheba/stockledger-backend/internal/middleware"
)

// authHandler handles registration and login.
type authHandler struct {
	userService portssvc.UserSvcFacade
}

func newAuthHandler(us portssvc.UserSvcFacade) *authHandler {
	return &authHandler{userService: us}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.User)

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed to register user")
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID), slog.String("username", user.Username))
	c.JSON(http.StatusCreated, dto.OK(dto.ToUserResponse(user)))
}

func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed to login")
		return
	}

	logger.Info("User logged in", slog.String("username", req.Username))
	c.JSON(http.StatusOK, dto.OK(resp))
}
