package web

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/xetrr/catalog-admin/internal/auth"
	"github.com/xetrr/catalog-admin/internal/forms"
	"github.com/xetrr/catalog-admin/internal/model"
	"github.com/xetrr/catalog-admin/internal/store"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Log In", Flash: PopFlash(w, r)})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	renderError := func(message string) {
		s.Templates.Render(w, "login.html", &PageData{
			Title:  "Log In",
			Errors: []string{message},
		})
	}

	if username == "" || password == "" {
		renderError("Enter a username and password.")
		return
	}

	member, err := store.GetMemberByUsername(r.Context(), s.DB, username)
	if err != nil || member == nil {
		renderError("Wrong username or password.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login failed", "username", username, "remote", r.RemoteAddr)
		renderError("Wrong username or password.")
		return
	}

	if member.Status != model.StatusApproved {
		renderError("Your registration has not been approved yet.")
		return
	}

	if !member.Group.IsAdmin() {
		renderError("This account has no back-office access.")
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, member.ID, member.Username, member.Group)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		renderError("Login failed, try again.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry / time.Second),
	})

	slog.Info("admin logged in", "user", member.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout. The token's JTI is revoked so the cookie can't
// be replayed.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if claims, err := auth.ValidateToken(s.JWTSecret, cookie.Value); err == nil && claims.ID != "" {
			if err := store.RevokeToken(r.Context(), s.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
				slog.Error("failed to revoke token", "error", err)
			}
		}
	}

	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// RegisterPage handles GET /register (public self-registration).
func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "register.html", &PageData{Title: "Register", Flash: PopFlash(w, r)})
}

// RegisterSubmit handles POST /register. New accounts start pending and can't
// log in until an admin approves them.
func (s *Server) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	errs := forms.Validate(r.Form, []forms.Rule{
		forms.Required("username", "Username"),
		forms.Required("email", "Email"),
		forms.Required("password", "Password"),
	})
	username := r.FormValue("username")
	password := r.FormValue("password")

	if len(errs) == 0 {
		if err := model.ValidatePassword(password); err != nil {
			errs = append(errs, "Password must be at least 8 characters")
		}
	}

	if len(errs) == 0 {
		taken, err := store.Exists(r.Context(), s.DB, store.MemberByUsername, username)
		if err != nil {
			slog.Error("failed to check username", "error", err)
			errs = append(errs, "Registration failed, try again.")
		} else if taken > 0 {
			errs = append(errs, "This username is already taken")
		}
	}

	if len(errs) > 0 {
		s.Templates.Render(w, "register.html", &PageData{Title: "Register", Errors: errs})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		s.Templates.Render(w, "register.html", &PageData{
			Title:  "Register",
			Errors: []string{"Registration failed, try again."},
		})
		return
	}

	_, err = store.CreateMember(r.Context(), s.DB, username, r.FormValue("email"), string(hash), model.StatusPending, model.GroupMember)
	if err != nil {
		slog.Error("failed to create member", "error", err)
		s.Templates.Render(w, "register.html", &PageData{
			Title:  "Register",
			Errors: []string{"Registration failed, try again."},
		})
		return
	}

	slog.Info("member registered", "username", username)
	SetFlash(w, "Registration received. An admin will review your account.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
