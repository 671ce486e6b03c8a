package handler

import (
	"mime/multipart"
	"strconv"

	"marketing-fee-backend/internal/apperror"
	"marketing-fee-backend/internal/middleware"
	"marketing-fee-backend/internal/model"
	"marketing-fee-backend/internal/period"
	"marketing-fee-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	uc      *usecase.ReportUsecase
	periods *period.Resolver
}

func NewReportHandler(uc *usecase.ReportUsecase, periods *period.Resolver) *ReportHandler {
	return &ReportHandler{uc: uc, periods: periods}
}

// formUint membaca field angka pertama yang terisi dari keys.
func formUint(c *fiber.Ctx, keys ...string) (uint, error) {
	for _, key := range keys {
		raw := c.FormValue(key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, apperror.Validation("Field %s tidak valid", key)
		}
		return uint(v), nil
	}
	return 0, nil
}

// evidenceFile mengambil file bukti dari field "image", atau "file" untuk klien lama.
func evidenceFile(c *fiber.Ctx) (*multipart.FileHeader, bool) {
	for _, key := range []string{"image", "file"} {
		if fh, err := c.FormFile(key); err == nil {
			return fh, true
		}
	}
	return nil, false
}

// CreateReport menerima multipart form: user_id (id_user), poin_id (id_poin),
// description, amount_used, time dan bukti di field "image" (atau "file").
func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	userID, err := formUint(c, "user_id", "id_user")
	if err != nil {
		return respondError(c, err)
	}
	if userID == 0 {
		userID = middleware.UserID(c)
	}
	if middleware.RoleID(c) == model.RoleEndUser && userID != middleware.UserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak: hanya data milik sendiri"})
	}
	poinID, err := formUint(c, "poin_id", "id_poin")
	if err != nil {
		return respondError(c, err)
	}
	amount, err := strconv.ParseFloat(c.FormValue("amount_used"), 64)
	if err != nil {
		return respondError(c, apperror.Validation("Field amount_used tidak valid"))
	}

	in := usecase.CreateReportInput{
		UserID:      userID,
		PoinID:      poinID,
		Description: c.FormValue("description"),
		AmountUsed:  amount,
		Time:        c.FormValue("time"),
	}

	var evidence *usecase.Evidence
	if fh, ok := evidenceFile(c); ok {
		f, err := fh.Open()
		if err != nil {
			return respondError(c, apperror.Validation("File bukti tidak dapat dibaca"))
		}
		defer f.Close()
		evidence = &usecase.Evidence{Filename: fh.Filename, Size: fh.Size, Content: f}
	}

	report, err := h.uc.Create(c.UserContext(), in, evidence)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Laporan berhasil dibuat",
		"data":    report,
	})
}

func (h *ReportHandler) DeleteReport(c *fiber.Ctx) error {
	id, err := paramID(c, "report_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Laporan berhasil dihapus"})
}

func (h *ReportHandler) GetUserReports(c *fiber.Ctx) error {
	userID, err := paramID(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	p, err := queryPeriod(c, h.periods)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.ListForUser(c.UserContext(), userID, p)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Berhasil mengambil laporan "+p.Label(), list)
}
