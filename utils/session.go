package utils

import (
	"errors"

	"etkinlik.link/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Locals anahtarları
const (
	SessionStoreLocalsKey = "session_store"
	IdentityLocalsKey     = "identity"
)

// Session anahtarları. Değerler gob ile kodlandığı için sadece temel tipler saklanır.
const (
	sessionMemberIDKey    = "member_id"
	sessionMemberNameKey  = "member_name"
	sessionMemberEmailKey = "member_email"
	sessionMemberRoleKey  = "member_role"
)

var ErrSessionStoreMissing = errors.New("session store bulunamadı")

// SessionStart istek için session'ı getirir veya yeni bir tane başlatır.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals(SessionStoreLocalsKey).(*session.Store)
	if !ok || store == nil {
		return nil, ErrSessionStoreMissing
	}
	return store.Get(c)
}

// SetIdentity giriş yapan üyenin kimliğini session'a yazar. Kaydetmek çağırana aittir.
func SetIdentity(sess *session.Session, identity models.Identity) {
	sess.Set(sessionMemberIDKey, identity.MemberID)
	sess.Set(sessionMemberNameKey, identity.FullName)
	sess.Set(sessionMemberEmailKey, identity.Email)
	sess.Set(sessionMemberRoleKey, string(identity.Role))
}

// IdentityFromSession session'daki kimliği okur. Üye kimliği yoksa false döner.
func IdentityFromSession(sess *session.Session) (models.Identity, bool) {
	memberID, ok := sess.Get(sessionMemberIDKey).(uint)
	if !ok || memberID == 0 {
		return models.Identity{}, false
	}
	name, _ := sess.Get(sessionMemberNameKey).(string)
	email, _ := sess.Get(sessionMemberEmailKey).(string)
	role, _ := sess.Get(sessionMemberRoleKey).(string)

	return models.Identity{
		MemberID: memberID,
		FullName: name,
		Email:    email,
		Role:     models.Role(role),
	}, true
}

// CurrentIdentity middleware'in istek için çözdüğü kimliği döndürür; misafir için nil.
func CurrentIdentity(c *fiber.Ctx) *models.Identity {
	identity, ok := c.Locals(IdentityLocalsKey).(*models.Identity)
	if !ok {
		return nil
	}
	return identity
}
