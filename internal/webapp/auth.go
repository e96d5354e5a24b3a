package webapp

import (
	"errors"
	"net/http"

	"github.com/dracarys/library/internal/client"
	"github.com/dracarys/library/internal/localstore"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// msgEmptyLogin is shown without calling the API at all
const msgEmptyLogin = "Both email and password are required!"

// Landing renders the landing page
func (s *Server) Landing(c *gin.Context) {
	c.HTML(http.StatusOK, "landing.tmpl", gin.H{
		"Page": s.page(),
	})
}

// LoginPage renders the login form
func (s *Server) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", gin.H{
		"Page":  s.page(),
		"Email": "",
	})
}

// LoginSubmit handles the login form. Empty fields short-circuit before
// any request is made; a successful login lands on an interstitial that
// refreshes to the catalog after two seconds.
func (s *Server) LoginSubmit(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	if email == "" || password == "" {
		c.HTML(http.StatusBadRequest, "login.tmpl", gin.H{
			"Page":  s.page(),
			"Error": msgEmptyLogin,
			"Email": email,
		})
		return
	}

	resp, err := s.api.Login(c.Request.Context(), email, password)
	if err != nil {
		c.HTML(http.StatusOK, "login.tmpl", gin.H{
			"Page":  s.page(),
			"Error": loginErrorMessage(err),
			"Email": email,
		})
		return
	}

	if err := s.store.Put(localstore.UserInfoKey, resp); err != nil {
		s.logger.Error("failed to persist session", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "login.tmpl", gin.H{
			"Page":  s.page(),
			"Error": "Something went wrong, please try again",
			"Email": email,
		})
		return
	}

	c.HTML(http.StatusOK, "login_success.tmpl", gin.H{
		"Page":     s.page(),
		"Username": resp.Username,
	})
}

// Logout clears the session and the cart
func (s *Server) Logout(c *gin.Context) {
	if err := s.store.Delete(localstore.UserInfoKey); err != nil {
		s.logger.Warn("failed to clear session", zap.Error(err))
	}
	if err := s.store.Delete(localstore.CartKey); err != nil {
		s.logger.Warn("failed to clear cart", zap.Error(err))
	}
	c.Redirect(http.StatusFound, "/login")
}

// loginErrorMessage passes backend detail messages through and hides
// transport errors behind a generic line
func loginErrorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return "Login failed"
}
