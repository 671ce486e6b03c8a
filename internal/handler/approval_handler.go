package handler

import (
	"marketing-fee-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type ApprovalHandler struct {
	uc *usecase.ApprovalUsecase
}

func NewApprovalHandler(uc *usecase.ApprovalUsecase) *ApprovalHandler {
	return &ApprovalHandler{uc: uc}
}

type approveRequest struct {
	UserID uint        `json:"user_id" validate:"required"`
	Month  looseString `json:"month"`
	Year   looseString `json:"year"`
}

// Approve menyetujui semua laporan pending satu user dalam satu bulan.
// Bulan dan tahun wajib diisi, tidak ada fallback ke bulan berjalan.
func (h *ApprovalHandler) Approve(c *fiber.Ctx) error {
	var req approveRequest
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err)
	}
	p, err := strictPeriod(req.Month, req.Year)
	if err != nil {
		return respondError(c, err)
	}

	res, err := h.uc.ApprovePending(c.UserContext(), req.UserID, p.Year, int(p.Month))
	if err != nil {
		return respondError(c, err)
	}
	msg := "Tidak ada laporan pending untuk disetujui"
	if res.ApprovedCount > 0 {
		msg = "Laporan berhasil disetujui"
	}
	return respondOK(c, msg, res)
}
