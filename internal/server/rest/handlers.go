package rest

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"

	"github.com/gorilla/mux"

	"memberportal/internal/apperrors"
	"memberportal/internal/model"
	"memberportal/pkg/logger"
)

// memberImages is the fixed set the members page picks from.
var memberImages = [...]string{"img1.jpg", "img2.jpg", "img3.jpg"}

func sessionFromContext(ctx context.Context) *model.Session {
	sess, _ := ctx.Value(contextKeySession).(*model.Session)
	return sess
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Current(r.Context(), r)
	s.render(w, http.StatusOK, "home", homeData{
		Username: sess.Username,
	})
}

func (s *Server) handleSignupForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "signup", formData{})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "signup", formData{Message: "Invalid form submission"})
		return
	}

	user, err := s.userService.RegisterUser(
		r.Context(),
		r.PostFormValue("username"),
		r.PostFormValue("email"),
		r.PostFormValue("password"),
	)
	if err != nil {
		switch apperrors.KindOf(err) {
		case apperrors.KindValidation, apperrors.KindDuplicate:
			s.render(w, http.StatusBadRequest, "signup", formData{Message: err.Error()})
		default:
			logger.Errorf("Failed to register user: %s", err)
			s.renderError(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	if _, err := s.sessions.Issue(r.Context(), w, user); err != nil {
		logger.Errorf("Failed to issue session: %s", err)
		s.renderError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	http.Redirect(w, r, "/members", http.StatusFound)
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "login", formData{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "login", formData{Message: "Invalid form submission"})
		return
	}

	user, err := s.userService.LoginUser(
		r.Context(),
		r.PostFormValue("email"),
		r.PostFormValue("password"),
	)
	if err != nil {
		switch apperrors.KindOf(err) {
		case apperrors.KindValidation:
			s.render(w, http.StatusBadRequest, "login", formData{Message: err.Error()})
		case apperrors.KindAuth:
			// Same page and message whether the email was unknown or the
			// password was wrong.
			s.render(w, http.StatusUnauthorized, "login", formData{Message: "Invalid email or password"})
		default:
			logger.Errorf("Failed to log user in: %s", err)
			s.renderError(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	if _, err := s.sessions.Issue(r.Context(), w, user); err != nil {
		logger.Errorf("Failed to issue session: %s", err)
		s.renderError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	http.Redirect(w, r, "/members", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Destroy(r.Context(), w, r); err != nil {
		logger.Errorf("Failed to destroy session: %s", err)
		s.renderError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	s.render(w, http.StatusOK, "members", membersData{
		Username: sess.Username,
		Image:    memberImages[rand.IntN(len(memberImages))],
	})
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	users, err := s.userService.ListUsers(r.Context())
	if err != nil {
		logger.Errorf("Failed to list users: %s", err)
		s.renderError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	s.render(w, http.StatusOK, "admin", adminData{Users: users})
}

func (s *Server) handlePromote(w http.ResponseWriter, r *http.Request) {
	s.setRole(w, r, s.userService.PromoteUser)
}

func (s *Server) handleDemote(w http.ResponseWriter, r *http.Request) {
	s.setRole(w, r, s.userService.DemoteUser)
}

func (s *Server) setRole(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id string) error) {
	id := mux.Vars(r)["id"]

	if err := op(r.Context(), id); err != nil {
		// An unknown id is a no-op; anything else is a storage failure.
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			logger.Errorf("Failed to set user role: %s", err)
			s.renderError(w, http.StatusInternalServerError, "Something went wrong")
			return
		}
	}

	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (s *Server) handleLookupDemo(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("user")
	if raw == "" {
		s.render(w, http.StatusOK, "lookup", lookupData{})
		return
	}

	users, err := s.userService.LookupByUsername(r.Context(), raw)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindValidation {
			s.render(w, http.StatusBadRequest, "lookup", lookupData{Message: err.Error()})
			return
		}

		logger.Errorf("Failed to look up users: %s", err)
		s.renderError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	s.render(w, http.StatusOK, "lookup", lookupData{Query: raw, Users: users})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if s.healthCheck != nil {
		if err := s.healthCheck(r.Context()); err != nil {
			logger.Errorf("Health check failed: %s", err)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Errorf("Failed to respond: %s", err)
	}
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, http.StatusNotFound, "Page not found")
}
