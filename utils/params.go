package utils

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ParseID kimlik değerini ayrıştırır; geçersiz veya boş değerler için 0 döner.
func ParseID(raw string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// ParamID yol parametresindeki kimliği okur.
func ParamID(c *fiber.Ctx, name string) uint {
	return ParseID(c.Params(name))
}
