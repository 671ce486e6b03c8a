package handler

import (
	"marketing-fee-backend/internal/apperror"
	"marketing-fee-backend/internal/model"
	"marketing-fee-backend/internal/period"
	"marketing-fee-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type UsageHandler struct {
	usage   *usecase.UsageUsecase
	quota   *usecase.QuotaUsecase
	periods *period.Resolver
}

func NewUsageHandler(usage *usecase.UsageUsecase, quota *usecase.QuotaUsecase, periods *period.Resolver) *UsageHandler {
	return &UsageHandler{usage: usage, quota: quota, periods: periods}
}

func scopeParams(c *fiber.Ctx) (usecase.Scope, error) {
	level, ok := model.ParseLevel(c.Params("level"))
	if !ok {
		return usecase.Scope{}, apperror.Validation("Level %q tidak dikenal", c.Params("level"))
	}
	id, err := paramID(c, "id")
	if err != nil {
		return usecase.Scope{}, err
	}
	return usecase.Scope{Level: level, ID: id}, nil
}

// GetUsage: rekap per kategori, kategori kosong tetap muncul.
func (h *UsageHandler) GetUsage(c *fiber.Ctx) error {
	scope, err := scopeParams(c)
	if err != nil {
		return respondError(c, err)
	}
	p, err := queryPeriod(c, h.periods)
	if err != nil {
		return respondError(c, err)
	}
	agg, err := h.usage.AggregateUsage(c.UserContext(), scope, p)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Berhasil mengambil penggunaan "+p.Label(), agg)
}

func (h *UsageHandler) GetUsageSparse(c *fiber.Ctx) error {
	scope, err := scopeParams(c)
	if err != nil {
		return respondError(c, err)
	}
	p, err := queryPeriod(c, h.periods)
	if err != nil {
		return respondError(c, err)
	}
	agg, err := h.usage.AggregateUsageSparse(c.UserContext(), scope, p)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Berhasil mengambil penggunaan "+p.Label(), agg)
}

func (h *UsageHandler) GetUsageTree(c *fiber.Ctx) error {
	scope, err := scopeParams(c)
	if err != nil {
		return respondError(c, err)
	}
	p, err := queryPeriod(c, h.periods)
	if err != nil {
		return respondError(c, err)
	}
	tree, err := h.usage.AggregateTree(c.UserContext(), scope, p)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Berhasil mengambil rekap "+p.Label(), tree)
}

func (h *UsageHandler) GetUserEvidence(c *fiber.Ctx) error {
	userID, err := paramID(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	poinID, err := paramID(c, "poin_id")
	if err != nil {
		return respondError(c, err)
	}
	p, err := queryPeriod(c, h.periods)
	if err != nil {
		return respondError(c, err)
	}
	ev, err := h.usage.CategoryEvidence(c.UserContext(), userID, poinID, p)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Berhasil mengambil bukti", ev)
}

// GetMonthUsage: total pemakaian user sebulan dibanding marketing fee.
func (h *UsageHandler) GetMonthUsage(c *fiber.Ctx) error {
	userID, err := paramID(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	p, err := queryPeriod(c, h.periods)
	if err != nil {
		return respondError(c, err)
	}
	fu, err := h.usage.FeeUtilization(c.UserContext(), usecase.Scope{Level: model.LevelUser, ID: userID}, p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"user_id":          userID,
		"month":            period.MonthName(p.Month),
		"year":             p.Year,
		"total_amount":     fu.TotalUsage,
		"marketing_fee":    fu.MarketingFee,
		"usage_percentage": fu.UsagePercentage,
	})
}

func (h *UsageHandler) GetDailyUsage(c *fiber.Ctx) error {
	userID, err := paramID(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	p, err := queryPeriod(c, h.periods)
	if err != nil {
		return respondError(c, err)
	}
	points, err := h.usage.DailySeries(c.UserContext(), usecase.Scope{Level: model.LevelUser, ID: userID}, p)
	if err != nil {
		return respondError(c, err)
	}
	fee, err := h.quota.MarketingFeeFor(c.UserContext(), userID, p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"user_id":       userID,
		"period":        p.Label(),
		"marketing_fee": fee,
		"daily":         points,
	})
}
