// Package renderer ekran verilerini JSON görünüm modeli olarak döndürür.
// Her yanıt {"view": "<ekran adı>", "data": {...}} biçimindedir.
package renderer

import (
	"etkinlik.link/configs/configslog"
	"etkinlik.link/pkg/flashmessages"
	"etkinlik.link/pkg/formvalidation"
	"etkinlik.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// View verisindeki flash anahtarları
const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

// SetFlashMessages okunan flash mesajlarını view verisine ekler.
func SetFlashMessages(data fiber.Map, flash flashmessages.FlashMessages) {
	if flash.Success != "" {
		data[FlashSuccessKeyView] = flash.Success
	}
	if flash.Error != "" {
		data[FlashErrorKeyView] = flash.Error
	}
}

// Render görünüm modelini döndürür. Bekleyen flash mesajları, CSRF anahtarı ve
// oturumdaki üye bilgisi otomatik eklenir.
func Render(c *fiber.Ctx, view string, data fiber.Map, statusCode ...int) error {
	status := fiber.StatusOK
	if len(statusCode) > 0 {
		status = statusCode[0]
	}
	if data == nil {
		data = fiber.Map{}
	}

	if flash, err := flashmessages.GetFlashMessages(c); err != nil {
		configslog.Log.Warn("Flash mesajları okunamadı", zap.String("view", view), zap.Error(err))
	} else {
		SetFlashMessages(data, flash)
	}

	if token := c.Locals("csrf"); token != nil {
		data["CsrfToken"] = token
	}
	if identity := utils.CurrentIdentity(c); identity != nil {
		data["CurrentMember"] = identity
	}

	return c.Status(status).JSON(fiber.Map{
		"view": view,
		"data": data,
	})
}

// RenderForm başarısız bir form gönderimini girilen veriler ve alan hatalarıyla geri döndürür.
func RenderForm(c *fiber.Ctx, view string, form interface{}, errs formvalidation.ValidationErrors, statusCode int, extra fiber.Map) error {
	data := fiber.Map{
		"Form":   form,
		"Errors": errs,
	}
	for k, v := range extra {
		data[k] = v
	}
	return Render(c, view, data, statusCode)
}

// NotFound 404 ekranını döndürür.
func NotFound(c *fiber.Ctx, message string) error {
	return Render(c, "errors/404", fiber.Map{
		"Title":   "Sayfa Bulunamadı",
		"Message": message,
	}, fiber.StatusNotFound)
}

// ServerError beklenmeyen hatalar için genel bir mesaj döndürür.
func ServerError(c *fiber.Ctx, message string) error {
	return Render(c, "errors/500", fiber.Map{
		"Title":   "Bir Hata Oluştu",
		"Message": message,
	}, fiber.StatusInternalServerError)
}

// FormErrorKey belirli bir alana ait olmayan form hatalarının anahtarıdır.
const FormErrorKey = "form"

// InvalidBody istek gövdesi ayrıştırılamadığında formu genel bir hatayla döndürür.
func InvalidBody(c *fiber.Ctx, view string, form interface{}, extra fiber.Map) error {
	errs := formvalidation.ValidationErrors{FormErrorKey: "Geçersiz form verisi."}
	return RenderForm(c, view, form, errs, fiber.StatusBadRequest, extra)
}
