package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/toolhub/internal/auth"
	"github.com/geocoder89/toolhub/internal/domain/user"
	"github.com/geocoder89/toolhub/internal/http/middlewares"
	"github.com/geocoder89/toolhub/internal/security"
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Create(ctx context.Context, u user.User) (user.User, error)
}

type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

type AuthHandler struct {
	users UserStore
	jwt   TokenIssuer
}

func NewAuthHandler(users UserStore, jwt TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	User  user.Public `json:"user"`
	Token string      `json:"token"`
}

func (h *AuthHandler) issueFor(u user.User) (string, error) {
	return h.jwt.Issue(auth.Identity{Subject: u.Email, UserID: u.ID, IsAdmin: u.IsAdmin})
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := opContext(ctx, writeTimeout)
	defer cancel()

	// pre-check gives a clean error in the common case; the unique index
	// still decides when two registrations race.
	_, err := h.users.GetByEmail(cctx, req.Email)
	switch {
	case err == nil:
		RespondBadRequestCode(ctx, "email_taken", "Email already registered")
		return
	case !errors.Is(err, user.ErrNotFound):
		RespondInternal(ctx, "Could not create user")
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	u, err := h.users.Create(cctx, user.New(req.Name, req.Email, hash, false))
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondBadRequestCode(ctx, "email_taken", "Email already registered")
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	token, err := h.issueFor(u)
	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	slog.Default().InfoContext(cctx, "user registered", "user_id", u.ID)

	ctx.JSON(http.StatusCreated, authResponse{User: u.Public(), Token: token})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := opContext(ctx, readTimeout)
	defer cancel()

	found, err := h.users.GetByEmail(cctx, req.Email)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			RespondInternal(ctx, "Could not log in")
			return
		}
		RespondUnAuthorized(ctx, "invalid_credentials", "Invalid email or password")
		return
	}

	if !security.VerifyPassword(req.Password, found.PasswordHash) {
		RespondUnAuthorized(ctx, "invalid_credentials", "Invalid email or password")
		return
	}

	token, err := h.issueFor(found)
	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	ctx.JSON(http.StatusOK, authResponse{User: found.Public(), Token: token})
}

// Me returns the caller's live record. RequireAuth has already resolved it
// once; the second read picks up the display name.
func (h *AuthHandler) Me(ctx *gin.Context) {
	p, ok := middlewares.PrincipalFromContext(ctx)
	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing, invalid or expired access token")
		return
	}

	cctx, cancel := opContext(ctx, readTimeout)
	defer cancel()

	u, err := h.users.GetByEmail(cctx, p.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not load user")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": u.Public()})
}
