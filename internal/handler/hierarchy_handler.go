package handler

import (
	"marketing-fee-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type HierarchyHandler struct {
	uc *usecase.HierarchyUsecase
}

func NewHierarchyHandler(uc *usecase.HierarchyUsecase) *HierarchyHandler {
	return &HierarchyHandler{uc: uc}
}

// GetChildren menampilkan node satu level di bawah scope admin.
func (h *HierarchyHandler) GetChildren(c *fiber.Ctx) error {
	adminID, err := paramID(c, "admin_id")
	if err != nil {
		return respondError(c, err)
	}
	scope, nodes, err := h.uc.ChildrenOf(c.UserContext(), adminID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Berhasil mengambil turunan",
		"scope":    scope,
		"children": nodes,
	})
}

func (h *HierarchyHandler) GetClusterUser(c *fiber.Ctx) error {
	clusterID, err := paramID(c, "cluster_id")
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.uc.ClusterUser(c.UserContext(), clusterID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Berhasil mengambil user cluster", fiber.Map{
		"id_user":  user.ID,
		"username": user.Username,
		"telp":     user.Telp,
	})
}

func (h *HierarchyHandler) CheckClusterAccess(c *fiber.Ctx) error {
	branchID, err := paramID(c, "branch_id")
	if err != nil {
		return respondError(c, err)
	}
	clusterID, err := paramID(c, "cluster_id")
	if err != nil {
		return respondError(c, err)
	}
	ok, err := h.uc.CheckClusterAccess(c.UserContext(), branchID, clusterID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"has_access": ok})
}
