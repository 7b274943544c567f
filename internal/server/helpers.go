package server

import (
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"miniblog/internal/middleware"
	"miniblog/internal/models"
	"miniblog/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// respondError maps an error onto the response envelope. Known application
// errors keep their status and message; anything else is logged in full and
// surfaced as a generic internal error.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		appErr = models.NewInternalError(err)
	}

	if appErr.Code == models.CodeInternal {
		middleware.Logger.ErrorContext(c.UserContext(), "internal error",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.String("error", appErr.Error()),
		)
	}

	resp := models.Response{
		Message: appErr.Message,
		Errors:  appErr.Fields,
	}
	if appErr.Err != nil && !s.config.IsProduction() {
		resp.Details = appErr.Err.Error()
	}
	return c.Status(appErr.Status).JSON(resp)
}

func (s *Server) respondOK(c *fiber.Ctx, message string, data any) error {
	return c.JSON(models.Response{Success: true, Message: message, Data: data})
}

func (s *Server) respondCreated(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(models.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (s *Server) respondPage(c *fiber.Ctx, message string, data any, meta pagination.Meta) error {
	return c.JSON(models.Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: &meta,
	})
}

// parsePageParams normalizes the shared page/limit/sortBy/sortOrder query
// parameters for list endpoints.
func parsePageParams(c *fiber.Ctx) pagination.Params {
	return pagination.New(
		c.QueryInt("page", pagination.DefaultPage),
		c.QueryInt("limit", pagination.DefaultLimit),
		c.Query("sortBy"),
		c.Query("sortOrder"),
	)
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = s.respondError(c, models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "postId" -> "post ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// currentUserID reads the authenticated user id set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}
