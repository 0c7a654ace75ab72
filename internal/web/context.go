package web

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"shoplite/internal/models"
)

// ViewData is the payload handed to templates.
type ViewData map[string]any

// Session keys for the authenticated admin.
const (
	sessionUserID   = "admin_id"
	sessionUsername = "admin_username"
	sessionRole     = "admin_role"
)

// sessionAdmin is the identity carried by the session payload.
type sessionAdmin struct {
	ID       uint
	Username string
	Role     models.Role
}

// currentAdmin pulls the authenticated admin out of the session, if any.
func currentAdmin(c *gin.Context) (sessionAdmin, bool) {
	sess := sessions.Default(c)
	id, ok := sess.Get(sessionUserID).(uint)
	if !ok {
		return sessionAdmin{}, false
	}
	username, _ := sess.Get(sessionUsername).(string)
	role, _ := sess.Get(sessionRole).(string)
	return sessionAdmin{ID: id, Username: username, Role: models.Role(role)}, true
}

func flashSuccess(c *gin.Context, msg string) { addFlash(c, "success", msg) }
func flashError(c *gin.Context, msg string)   { addFlash(c, "error", msg) }

func addFlash(c *gin.Context, kind, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg, kind)
	_ = sess.Save()
}

// popFlashes moves pending flash messages from the session into data.
// Reading a flash consumes it, so the session must be saved afterwards.
// Several messages of the same kind are shown together, not one at a time.
func popFlashes(c *gin.Context, data ViewData) {
	sess := sessions.Default(c)
	if msg := joinFlashes(sess.Flashes("success")); msg != "" {
		data["SuccessMsg"] = msg
	}
	if msg := joinFlashes(sess.Flashes("error")); msg != "" {
		data["ErrorMsg"] = msg
	}
	_ = sess.Save()
}

func joinFlashes(msgs []interface{}) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if s, ok := m.(string); ok && s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
