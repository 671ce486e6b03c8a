package handler

import (
	"marketing-fee-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	usecase *usecase.UserUsecase
}

func NewUserHandler(u *usecase.UserUsecase) *UserHandler {
	return &UserHandler{usecase: u}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input usecase.RegisterInput
	if err := bindBody(c, &input); err != nil {
		return respondError(c, err)
	}

	user, err := h.usecase.Register(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User berhasil terdaftar",
		"data":    user,
	})
}

func (h *UserHandler) Profile(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.usecase.Profile(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Berhasil mengambil profil", user)
}
