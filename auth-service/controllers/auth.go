package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/sigap/sigap-server/auth-service/config"
	"github.com/sigap/sigap-server/models/userdata"
	"github.com/sigap/sigap-server/repos"
	"github.com/sigap/sigap-server/utils-go"
	"go.uber.org/fx"
)

const invalidCredentials = "Invalid email or password"

type MemberStore interface {
	GetMember(ctx context.Context, id int64) (*userdata.Member, error)
	GetMemberByEmail(ctx context.Context, email string) (*userdata.Member, error)
	UpdateProfile(ctx context.Context, id int64, patch repos.MemberPatch) (*userdata.Member, error)
	SetPassword(ctx context.Context, id int64, hash string) error
}

type TokenStore interface {
	MarkUsed(ctx context.Context, jti string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, jti string) error
}

type ResetMailer interface {
	SendPasswordReset(ctx context.Context, member *userdata.Member, link string) error
}

type AuthController struct {
	fx.In

	Repo   MemberStore
	Tokens TokenStore
	Mailer ResetMailer
	Keys   *utils.JwtKeys
	Config *config.Config
}

type loginRequest struct {
	ClientUrl string `json:"client_url"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
}

type loginResponse struct {
	*userdata.Member
	Token         string `json:"token"`
	ClientUrl     string `json:"client_url"`
	AuthorizedUrl string `json:"authorized_url"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	ResetToken  string `json:"resetToken" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=4,max=72"`
}

type profileRequest struct {
	FirstName   *string `json:"firstName" validate:"omitempty,max=255"`
	LastName    *string `json:"lastName" validate:"omitempty,max=255"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=32"`
	HomeAddress *string `json:"homeAddress"`
}

func RegisterAuthController(r *utils.Router, c AuthController) {
	auth := r.Group("/auth")

	auth.Post("/login", c.login)
	auth.Post("/logout", c.logout)
	auth.Get("/me", r.Session, c.me)
	auth.Put("/profile", r.Session, c.updateProfile)
	auth.Post("/forgot-password", c.forgotPassword)
	auth.Post("/reset-password", c.resetPassword)
}

func parseBody(c *fiber.Ctx, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, utils.StandardCouldNotParse(c)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return false, utils.RespondBadRequest(c, "Invalid parameters", errs)
	}
	return true, nil
}

func (r *AuthController) login(c *fiber.Ctx) error {
	req := new(loginRequest)
	if ok, err := parseBody(c, req); !ok {
		return err
	}

	member, err := r.Repo.GetMemberByEmail(c.UserContext(), req.Email)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return respondInvalidCredentials(c)
		}
		return utils.StandardInternalError(c, "Error during login", err)
	}

	if !utils.VerifyHash(req.Password, member.Password) {
		return respondInvalidCredentials(c)
	}

	token, err := utils.CreateJwt(utils.JwtConfig{
		Member:   member.Id,
		Email:    member.Email,
		Subject:  utils.SubjectAccess,
		ExpireIn: r.Config.SessionTtl,
		Keys:     r.Keys,
	})
	if err != nil {
		return utils.StandardInternalError(c, "Error during login", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     utils.AccessCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(r.Config.SessionTtl),
		Secure:   r.Config.IsProduction,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	member.Sanitize()
	return utils.RespondOK(c, "Login successful", loginResponse{
		Member:        member,
		Token:         token,
		ClientUrl:     req.ClientUrl,
		AuthorizedUrl: fmt.Sprintf("http://%s/%s", req.ClientUrl, token),
	})
}

func (r *AuthController) logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     utils.AccessCookie,
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		Secure:   r.Config.IsProduction,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return utils.RespondOK(c, "Logout successful", nil)
}

func (r *AuthController) me(c *fiber.Ctx) error {
	claims, ok := utils.GetClaims(c)
	if !ok {
		return utils.RespondUnauthenticated(c)
	}

	member, err := r.Repo.GetMember(c.UserContext(), claims.Id)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return utils.RespondNotFound(c, "User not found")
		}
		return utils.StandardInternalError(c, "Error retrieving current user", err)
	}

	member.Sanitize()
	return utils.RespondOK(c, "Current user retrieved successfully", member)
}

func (r *AuthController) updateProfile(c *fiber.Ctx) error {
	claims, ok := utils.GetClaims(c)
	if !ok {
		return utils.RespondUnauthenticated(c)
	}

	req := new(profileRequest)
	if ok, err := parseBody(c, req); !ok {
		return err
	}

	member, err := r.Repo.UpdateProfile(c.UserContext(), claims.Id, repos.MemberPatch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		HomeAddress: req.HomeAddress,
	})
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return utils.RespondNotFound(c, "User not found")
		}
		return utils.StandardInternalError(c, "Error updating profile", err)
	}

	member.Sanitize()
	return utils.RespondOK(c, "Profile updated successfully", member)
}

func (r *AuthController) forgotPassword(c *fiber.Ctx) error {
	req := new(forgotPasswordRequest)
	if ok, err := parseBody(c, req); !ok {
		return err
	}

	member, err := r.Repo.GetMemberByEmail(c.UserContext(), req.Email)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return utils.RespondNotFound(c, "Member not found")
		}
		return utils.StandardInternalError(c, "Error generating or sending reset token", err)
	}

	token, err := utils.CreateJwt(utils.JwtConfig{
		Member:   member.Id,
		Email:    member.Email,
		Subject:  utils.SubjectReset,
		ExpireIn: r.Config.ResetTtl,
		Keys:     r.Keys,
	})
	if err != nil {
		return utils.StandardInternalError(c, "Error generating or sending reset token", err)
	}

	link := strings.TrimRight(r.Config.BaseUrl, "/") + "/reset-password?token=" + url.QueryEscape(token)
	if err := r.Mailer.SendPasswordReset(c.UserContext(), member, link); err != nil {
		return utils.StandardInternalError(c, "Error generating or sending reset token", err)
	}

	return utils.RespondOK(c, "Password reset link has been sent to your email", nil)
}

func (r *AuthController) resetPassword(c *fiber.Ctx) error {
	req := new(resetPasswordRequest)
	if ok, err := parseBody(c, req); !ok {
		return err
	}

	claims, err := utils.ParseJwt(req.ResetToken, utils.SubjectReset, r.Keys.Public)
	if err != nil {
		log.Debug().Err(err).Msg("Rejected reset token")
		return utils.RespondUnauthenticated(c)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	first, err := r.Tokens.MarkUsed(c.UserContext(), claims.ID, ttl)
	if err != nil {
		return utils.StandardInternalError(c, "Error resetting password", err)
	}
	if !first {
		return utils.RespondUnauthenticated(c)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		r.releaseToken(c, claims.ID)
		return utils.StandardInternalError(c, "Error resetting password", err)
	}

	if err := r.Repo.SetPassword(c.UserContext(), claims.Id, hash); err != nil {
		r.releaseToken(c, claims.ID)
		if errors.Is(err, repos.ErrNotFound) {
			return utils.RespondNotFound(c, "Member not found")
		}
		return utils.StandardInternalError(c, "Error resetting password", err)
	}

	return utils.RespondOK(c, "Password reset successfully", nil)
}

// releaseToken lets a reset token be retried when the password was not stored.
func (r *AuthController) releaseToken(c *fiber.Ctx, jti string) {
	if err := r.Tokens.Release(c.UserContext(), jti); err != nil {
		log.Warn().Err(err).Str("jti", jti).Msg("Could not release reset token")
	}
}

func respondInvalidCredentials(c *fiber.Ctx) error {
	return utils.Respond(c, fiber.StatusUnauthorized, utils.Envelope{Message: invalidCredentials})
}
