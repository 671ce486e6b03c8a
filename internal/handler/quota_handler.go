package handler

import (
	"marketing-fee-backend/internal/period"
	"marketing-fee-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type QuotaHandler struct {
	uc      *usecase.QuotaUsecase
	periods *period.Resolver
}

func NewQuotaHandler(uc *usecase.QuotaUsecase, periods *period.Resolver) *QuotaHandler {
	return &QuotaHandler{uc: uc, periods: periods}
}

type marketingFeeRequest struct {
	UserID    uint        `json:"user_id"`
	ClusterID uint        `json:"cluster_id"`
	Month     looseString `json:"month"`
	Year      looseString `json:"year"`
	Amount    float64     `json:"amount" validate:"gte=0"`
}

type recommendationRequest struct {
	UserID    uint        `json:"user_id"`
	ClusterID uint        `json:"cluster_id"`
	PoinID    uint        `json:"poin_id" validate:"required"`
	Month     looseString `json:"month"`
	Year      looseString `json:"year"`
	Recommend float64     `json:"recommend" validate:"gte=0"`
}

type bulkRecommendationRequest struct {
	Month looseString                  `json:"month"`
	Year  looseString                  `json:"year"`
	Items []usecase.RecommendationItem `json:"recommendations" validate:"required,min=1,dive"`
}

func (h *QuotaHandler) SubmitMarketingFee(c *fiber.Ctx) error {
	var req marketingFeeRequest
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err)
	}
	p, err := h.periods.Resolve(req.Month.String(), req.Year.String())
	if err != nil {
		return respondError(c, err)
	}
	fee, err := h.uc.UpsertMarketingFee(c.UserContext(), usecase.Target{UserID: req.UserID, ClusterID: req.ClusterID}, p, req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Marketing fee "+p.Label()+" tersimpan", fee)
}

func (h *QuotaHandler) CreateRecommendation(c *fiber.Ctx) error {
	var req recommendationRequest
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err)
	}
	p, err := h.periods.Resolve(req.Month.String(), req.Year.String())
	if err != nil {
		return respondError(c, err)
	}
	rec, err := h.uc.UpsertRecommendation(c.UserContext(), usecase.Target{UserID: req.UserID, ClusterID: req.ClusterID}, req.PoinID, p, req.Recommend)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Rekomendasi "+p.Label()+" tersimpan", rec)
}

func (h *QuotaHandler) ReplaceRecommendations(c *fiber.Ctx) error {
	userID, err := paramID(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	var req bulkRecommendationRequest
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err)
	}
	p, err := h.periods.Resolve(req.Month.String(), req.Year.String())
	if err != nil {
		return respondError(c, err)
	}
	recs, err := h.uc.ReplaceRecommendations(c.UserContext(), userID, p, req.Items)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Rekomendasi "+p.Label()+" tersimpan", recs)
}

func (h *QuotaHandler) GetRecommendation(c *fiber.Ctx) error {
	clusterID, err := paramID(c, "cluster_id")
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
	rec, err := h.uc.GetRecommendation(c.UserContext(), usecase.Target{ClusterID: clusterID}, poinID, p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"cluster_id": clusterID,
		"poin_id":    poinID,
		"month":      int(p.Month),
		"year":       p.Year,
		"recommend":  rec,
	})
}

func (h *QuotaHandler) GetMarketingFeeHistory(c *fiber.Ctx) error {
	userID, err := paramID(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.MarketingFeeHistory(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Berhasil mengambil riwayat marketing fee", list)
}
