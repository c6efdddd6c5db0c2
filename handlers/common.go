package handlers

import (
	"errors"
	"math"

	"github.com/adityavk98/consult_connect/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var validate = validator.New()

func currentUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	return userID
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Unknown errors are logged by the Fiber error handler, not leaked.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *services.AppError
	if !errors.As(err, &appErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case services.CodeValidation:
		status = fiber.StatusBadRequest
	case services.CodeNotFound:
		status = fiber.StatusNotFound
	case services.CodeUnauthorized, services.CodeNotBookable:
		status = fiber.StatusForbidden
	case services.CodeConflict:
		status = fiber.StatusConflict
	case services.CodeInvalidState, services.CodePolicyViolation:
		status = fiber.StatusUnprocessableEntity
	}

	return c.Status(status).JSON(fiber.Map{"error": appErr.Message, "code": appErr.Code})
}

type paginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

func pagination(c *fiber.Ctx) paginationParams {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", 20)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return paginationParams{Page: page, PageSize: pageSize, Offset: (page - 1) * pageSize}
}

func paginatedResponse(items interface{}, total int64, p paginationParams) fiber.Map {
	return fiber.Map{
		"items":       items,
		"total":       total,
		"page":        p.Page,
		"page_size":   p.PageSize,
		"total_pages": int(math.Ceil(float64(total) / float64(p.PageSize))),
	}
}
