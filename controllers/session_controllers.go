package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomdewit/bartab-app/services"
	"github.com/tomdewit/bartab-app/utils"
)

type SessionController struct {
	Sessions *services.SessionService
}

func NewSessionController(sessions *services.SessionService) *SessionController {
	return &SessionController{Sessions: sessions}
}

// GetAllSessions lists the bar's session history, oldest first.
func (sc *SessionController) GetAllSessions(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	sessions, err := sc.Sessions.GetSessions(barID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of sessions", sessions)
}

// CreateSession opens a new serving window; 409 while one is still open.
func (sc *SessionController) CreateSession(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	session, err := sc.Sessions.CreateSession(barID, body.Name)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.InfoLogger.Printf("Session %s opened for bar %s", session.ID, barID)
	utils.RespondJSON(c, http.StatusCreated, "Session created", session)
}

// GetActiveSession returns the currently open session of the bar.
func (sc *SessionController) GetActiveSession(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	session, err := sc.Sessions.GetActiveSession(barID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active session", session)
}

// GetSessionByID returns one session with its bills.
func (sc *SessionController) GetSessionByID(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	sessionID, err := parseID(c, "session_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	session, err := sc.Sessions.GetSession(barID, sessionID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session detail", session)
}

// UpdateSession renames the session.
func (sc *SessionController) UpdateSession(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	sessionID, err := parseID(c, "session_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	session, err := sc.Sessions.RenameSession(barID, sessionID, body.Name)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session updated", session)
}

// LockSession stops new bills and orders while allowing settlement.
func (sc *SessionController) LockSession(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	sessionID, err := parseID(c, "session_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	session, err := sc.Sessions.LockSession(barID, sessionID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session locked", session)
}

// EndSession terminates the serving window.
func (sc *SessionController) EndSession(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	sessionID, err := parseID(c, "session_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	session, err := sc.Sessions.EndSession(barID, sessionID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.InfoLogger.Printf("Session %s ended for bar %s", sessionID, barID)
	utils.RespondJSON(c, http.StatusOK, "Session ended", session)
}

// DeleteSession removes the session with its bills and orders.
func (sc *SessionController) DeleteSession(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	sessionID, err := parseID(c, "session_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	if err := sc.Sessions.DeleteSession(barID, sessionID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session deleted", gin.H{"session_id": sessionID})
}
