// FILE: internal/transport/http/validator.go
package http

import (
	"fmt"
	"reflect"
	"strings"

	"chessrules/internal/board"
	"chessrules/internal/core"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const localValidatedBody = "validatedBody"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// square: algebraic board coordinate, "a1".."h8"
	v.RegisterValidation("square", func(fl validator.FieldLevel) bool {
		_, err := board.ParseSquare(fl.Field().String())
		return err == nil
	})
	return v
}

// validationMiddleware parses and validates POST bodies, storing the result
// under localValidatedBody
func validationMiddleware(c *fiber.Ctx) error {
	method := c.Method()
	if method != fiber.MethodPost {
		return c.Next()
	}

	path := c.Path()
	var requestType interface{}

	switch {
	case strings.HasSuffix(path, "/games"):
		requestType = &core.CreateGameRequest{}
	case strings.HasSuffix(path, "/moves"):
		requestType = &core.MoveRequest{}
	default:
		return c.Next()
	}

	// An empty create body means defaults
	if len(c.Body()) > 0 {
		if err := c.BodyParser(requestType); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
				Error:   "invalid request body",
				Code:    core.ErrInvalidRequest,
				Details: err.Error(),
			})
		}
	}

	if errs := validate.Struct(requestType); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "validation failed",
			Code:    core.ErrInvalidRequest,
			Details: describeValidation(errs),
		})
	}

	c.Locals(localValidatedBody, requestType)
	return c.Next()
}

func describeValidation(errs error) string {
	verrs, ok := errs.(validator.ValidationErrors)
	if !ok {
		return errs.Error()
	}

	var details strings.Builder
	for _, err := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch err.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", err.Field()))
		case "len":
			details.WriteString(fmt.Sprintf("%s must be %s characters", err.Field(), err.Param()))
		case "max":
			if err.Type().Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at most %s", err.Field(), err.Param()))
			}
		case "square":
			details.WriteString(fmt.Sprintf("%s must be a square a1-h8", err.Field()))
		case "printascii":
			details.WriteString(fmt.Sprintf("%s must be printable ASCII", err.Field()))
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", err.Field(), err.Tag()))
		}
	}
	return details.String()
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
