package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/EzekielClervo/instagram/internal/auth"
	"github.com/EzekielClervo/instagram/internal/automation"
	"github.com/EzekielClervo/instagram/internal/domain"
	"github.com/EzekielClervo/instagram/internal/repository"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username, email and password are required"})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		s.internalError(c, err)
		return
	}
	user, err := s.store.CreateUser(c.Request.Context(), &domain.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
	})
	if errors.Is(err, repository.ErrUsernameTaken) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}

	if err := auth.SetSessionUser(c, user.ID, user.IsAdmin); err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := s.store.GetUserByUsername(c.Request.Context(), req.Username)
	if errors.Is(err, repository.ErrUserNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}

	ok, err := auth.VerifyPassword(req.Password, user.Password)
	if err != nil {
		s.internalError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}

	if err := auth.SetSessionUser(c, user.ID, user.IsAdmin); err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleLogout(c *gin.Context) {
	if err := auth.ClearSession(c); err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (s *Server) handleCurrentUser(c *gin.Context) {
	userID, ok := auth.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	user, err := s.store.GetUser(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		// Session outlived the user row.
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleListAccounts(c *gin.Context) {
	userID, _ := auth.SessionUserID(c)
	accounts, err := s.store.GetAccountsByUser(c.Request.Context(), userID)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (s *Server) handleCreateAccount(c *gin.Context) {
	userID, _ := auth.SessionUserID(c)

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.Username == "" {
		// Fall back to the email local part as the account name.
		req.Username, _, _ = strings.Cut(req.Email, "@")
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		return
	}

	account, err := s.store.CreateAccount(c.Request.Context(), &domain.Account{
		UserID:   userID,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Active:   true,
	})
	if err != nil {
		s.internalError(c, err)
		return
	}

	// Best effort: log in with the stored credentials and keep the session
	// cookies. The account stays usable without them, cookies can still be
	// added by hand.
	if req.Email != "" {
		if cookieStr, err := s.ig.Login(c.Request.Context(), req.Email, req.Password); err != nil {
			log.Printf("server: cookie fetch for account %d: %v", account.ID, err)
		} else if _, err := s.store.CreateCookie(c.Request.Context(), &domain.Cookie{
			AccountID: account.ID,
			Value:     cookieStr,
			Active:    true,
		}); err != nil {
			s.internalError(c, err)
			return
		}
	}
	c.JSON(http.StatusCreated, account)
}

// ownedAccount loads an account and verifies it belongs to the session
// user. Accounts owned by someone else read as not found.
func (s *Server) ownedAccount(c *gin.Context, accountID int64) (*domain.Account, bool) {
	userID, _ := auth.SessionUserID(c)
	account, err := s.store.GetAccount(c.Request.Context(), accountID)
	if errors.Is(err, repository.ErrAccountNotFound) || (err == nil && account.UserID != userID) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
		return nil, false
	}
	if err != nil {
		s.internalError(c, err)
		return nil, false
	}
	return account, true
}

func (s *Server) handleDeleteAccount(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	if _, ok := s.ownedAccount(c, id); !ok {
		return
	}
	if err := s.store.DeleteAccount(c.Request.Context(), id); err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

func (s *Server) handleListCookies(c *gin.Context) {
	userID, _ := auth.SessionUserID(c)
	cookies, err := s.store.CookiesForUser(c.Request.Context(), userID)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, cookies)
}

func (s *Server) handleCreateCookie(c *gin.Context) {
	var req struct {
		AccountID int64  `json:"accountId"`
		Value     string `json:"cookieValue"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.Value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cookie value is required"})
		return
	}
	if _, ok := s.ownedAccount(c, req.AccountID); !ok {
		return
	}

	ck, err := s.store.CreateCookie(c.Request.Context(), &domain.Cookie{
		AccountID: req.AccountID,
		Value:     req.Value,
		Active:    true,
	})
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ck)
}

// ownedCookie loads a cookie and verifies the session user owns the account
// it belongs to.
func (s *Server) ownedCookie(c *gin.Context, cookieID int64) (*domain.Cookie, bool) {
	ck, err := s.store.GetCookie(c.Request.Context(), cookieID)
	if errors.Is(err, repository.ErrCookieNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cookie not found"})
		return nil, false
	}
	if err != nil {
		s.internalError(c, err)
		return nil, false
	}
	userID, _ := auth.SessionUserID(c)
	account, err := s.store.GetAccount(c.Request.Context(), ck.AccountID)
	if err != nil || account.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cookie not found"})
		return nil, false
	}
	return ck, true
}

func (s *Server) handleDeleteCookie(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	if _, ok := s.ownedCookie(c, id); !ok {
		return
	}
	if err := s.store.DeleteCookie(c.Request.Context(), id); err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cookie deleted"})
}

func (s *Server) handleCheckCookie(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	ck, ok := s.ownedCookie(c, id)
	if !ok {
		return
	}
	valid := s.ig.IsLoggedIn(c.Request.Context(), ck.Value)
	c.JSON(http.StatusOK, gin.H{"id": ck.ID, "valid": valid})
}

func (s *Server) handleActivityLogs(c *gin.Context) {
	userID, _ := auth.SessionUserID(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid limit"})
			return
		}
		limit = n
	}

	logs, err := s.store.ListActivityLogs(c.Request.Context(), userID, limit)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (s *Server) handleRunAutomation(c *gin.Context) {
	userID, _ := auth.SessionUserID(c)

	var req automation.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	out, err := s.runner.Dispatch(c.Request.Context(), userID, req)
	if automation.IsClientError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.store.ListUsers(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	target, err := s.store.GetUser(c.Request.Context(), id)
	if errors.Is(err, repository.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	if target.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Cannot delete admin users"})
		return
	}
	if err := s.store.DeleteUser(c.Request.Context(), id); err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func (s *Server) internalError(c *gin.Context, err error) {
	log.Printf("server: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
