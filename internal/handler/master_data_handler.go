package handler

import (
	"marketing-fee-backend/internal/repository"
	"marketing-fee-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// MasterDataHandler melayani data referensi (read-only) untuk form.
type MasterDataHandler struct {
	poins     repository.PoinRepository
	hierarchy *usecase.HierarchyUsecase
	users     *usecase.UserUsecase
}

func NewMasterDataHandler(poins repository.PoinRepository, hierarchy *usecase.HierarchyUsecase, users *usecase.UserUsecase) *MasterDataHandler {
	return &MasterDataHandler{poins: poins, hierarchy: hierarchy, users: users}
}

func (h *MasterDataHandler) GetPoinTypes(c *fiber.Ctx) error {
	list, err := h.poins.GetAll(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil kategori poin"})
	}
	return respondOK(c, "Berhasil mengambil kategori poin", list)
}

func (h *MasterDataHandler) GetRoles(c *fiber.Ctx) error {
	list, err := h.users.Roles(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Berhasil mengambil role", list)
}

func (h *MasterDataHandler) GetAreas(c *fiber.Ctx) error {
	list, err := h.hierarchy.Areas(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Berhasil mengambil area", list)
}

func (h *MasterDataHandler) GetRegions(c *fiber.Ctx) error {
	id, err := paramID(c, "area_id")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.hierarchy.Regions(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Berhasil mengambil region", list)
}

func (h *MasterDataHandler) GetBranches(c *fiber.Ctx) error {
	id, err := paramID(c, "region_id")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.hierarchy.Branches(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Berhasil mengambil branch", list)
}

func (h *MasterDataHandler) GetClusters(c *fiber.Ctx) error {
	id, err := paramID(c, "branch_id")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.hierarchy.Clusters(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Berhasil mengambil cluster", list)
}
