// Package flashmessages bir sonraki isteğe taşınan tek seferlik mesajları yönetir.
package flashmessages

import (
	"etkinlik.link/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	FlashSuccessKey = "flash_success"
	FlashErrorKey   = "flash_error"
)

// FlashMessages okunan mesajlardır.
type FlashMessages struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SetFlashMessage mesajı session'a yazar ve kaydeder.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// SetOnSession mesajı zaten açık olan session'a yazar; kaydetmek çağırana aittir.
// Session id'si aynı istekte yenilendiğinde (ör. girişte) bu kullanılmalıdır.
func SetOnSession(sess *session.Session, key, message string) {
	sess.Set(key, message)
}

// GetFlashMessages mesajları okur ve session'dan siler.
func GetFlashMessages(c *fiber.Ctx) (FlashMessages, error) {
	var flash FlashMessages

	sess, err := utils.SessionStart(c)
	if err != nil {
		return flash, err
	}

	flash.Success, _ = sess.Get(FlashSuccessKey).(string)
	flash.Error, _ = sess.Get(FlashErrorKey).(string)
	if flash.Success == "" && flash.Error == "" {
		return flash, nil
	}

	sess.Delete(FlashSuccessKey)
	sess.Delete(FlashErrorKey)
	return flash, sess.Save()
}
