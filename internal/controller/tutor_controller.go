// FILE: internal/controller/tutor_controller.go
package controller

import (
	"errors"
	"io"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lecturelama-be/internal/dto"
	"lecturelama-be/internal/service"
	"lecturelama-be/pkg/pages"
	"lecturelama-be/pkg/tutor"
)

type ITutorController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Page(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type tutorController struct {
	service  service.ITutorService
	validate *validator.Validate
}

func NewTutorController(service service.ITutorService) ITutorController {
	return &tutorController{
		service:  service,
		validate: validator.New(),
	}
}

func (c *tutorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tutor", JwtProtected())
	h.Post("/upload", c.Upload)
	h.Get("/pages/:index", c.Page)
	h.Post("/ask", c.Ask)
	h.Get("/history", c.History)
	h.Post("/clear", c.Clear)
}

// kindOf maps the declared upload MIME type to a document kind. Anything
// outside {jpeg, png, pdf} is rejected here, before the extractor runs.
func kindOf(contentType string) (pages.Kind, bool) {
	switch contentType {
	case "image/jpeg", "image/png":
		return pages.KindImage, true
	case "application/pdf":
		return pages.KindPDF, true
	default:
		return "", false
	}
}

func (c *tutorController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "please attach a file",
		})
	}

	kind, ok := kindOf(fileHeader.Header.Get("Content-Type"))
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "only jpeg, png and pdf uploads are supported",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	res, err := c.service.Upload(ctx.Context(), SessionID(ctx), pages.Document{Kind: kind, Data: data})
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Converted " + strconv.Itoa(res.Pages) + " pages",
		"data":    res,
	})
}

func (c *tutorController) Page(ctx *fiber.Ctx) error {
	index, err := strconv.Atoi(ctx.Params("index"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "invalid page index",
		})
	}

	page, err := c.service.Page(ctx.Context(), SessionID(ctx), index)
	if err != nil {
		return errorResponse(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, "image/png")
	return ctx.Send(page.PNG)
}

func (c *tutorController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": service.ErrNoQuestion.Error(),
		})
	}

	res, err := c.service.Ask(ctx.Context(), SessionID(ctx), &req)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Answer generated",
		"data":    res,
	})
}

func (c *tutorController) History(ctx *fiber.Ctx) error {
	res, err := c.service.History(ctx.Context(), SessionID(ctx))
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "ok",
		"data":    res,
	})
}

func (c *tutorController) Clear(ctx *fiber.Ctx) error {
	if err := c.service.Clear(ctx.Context(), SessionID(ctx)); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Chat history cleared",
		"data":    nil,
	})
}

// errorResponse maps service and pipeline errors onto the response envelope.
// Everything recoverable stays a JSON message; nothing propagates to crash
// the session.
func errorResponse(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var decodeErr *pages.DecodeError
	var genErr *tutor.GenerationError
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		code = fiber.StatusUnauthorized
	case errors.Is(err, service.ErrBusy):
		code = fiber.StatusConflict
	case errors.Is(err, service.ErrNoQuestion),
		errors.Is(err, service.ErrNoPages),
		errors.Is(err, service.ErrNoSuchPage),
		errors.Is(err, pages.ErrUnsupportedFormat):
		code = fiber.StatusBadRequest
	case errors.As(err, &decodeErr):
		code = fiber.StatusBadRequest
	case errors.As(err, &genErr):
		code = fiber.StatusBadGateway
	}

	return ctx.Status(code).JSON(fiber.Map{
		"success": false,
		"code":    code,
		"message": err.Error(),
	})
}
