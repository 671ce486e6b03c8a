package handler

import (
	"context"

	"marketing-fee-backend/internal/model"
	"marketing-fee-backend/internal/period"
	"marketing-fee-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

const pendingPreview = 10

type DashboardHandler struct {
	scopes  *usecase.HierarchyUsecase
	users   *usecase.UserUsecase
	usage   *usecase.UsageUsecase
	reports *usecase.ReportUsecase
	periods *period.Resolver
}

func NewDashboardHandler(scopes *usecase.HierarchyUsecase, users *usecase.UserUsecase, usage *usecase.UsageUsecase, reports *usecase.ReportUsecase, periods *period.Resolver) *DashboardHandler {
	return &DashboardHandler{scopes: scopes, users: users, usage: usage, reports: reports, periods: periods}
}

type chartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

type chartData struct {
	Labels   []string       `json:"labels"`
	Datasets []chartDataset `json:"datasets"`
}

func toChart(label string, points []usecase.SeriesPoint) chartData {
	chart := chartData{Labels: make([]string, len(points)), Datasets: []chartDataset{{Label: label, Data: make([]float64, len(points))}}}
	for i, p := range points {
		chart.Labels[i] = p.Label
		chart.Datasets[0].Data[i] = p.Amount
	}
	return chart
}

func (h *DashboardHandler) userDashboard(ctx context.Context, user *model.User, p period.Period) (fiber.Map, error) {
	scope := usecase.Scope{Level: model.LevelUser, ID: user.ID}
	agg, err := h.usage.AggregateUsage(ctx, scope, p)
	if err != nil {
		return nil, err
	}
	fu, err := h.usage.FeeUtilization(ctx, scope, p)
	if err != nil {
		return nil, err
	}
	series, err := h.usage.MonthlySeries(ctx, scope, p.Year)
	if err != nil {
		return nil, err
	}
	reports, err := h.reports.ListForUser(ctx, user.ID, p)
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"period": p.Label(),
		"overview": fiber.Map{
			"total_reports":    agg.Count,
			"total_amount":     agg.TotalAmount,
			"marketing_fee":    fu.MarketingFee,
			"usage_percentage": fu.UsagePercentage,
			"user_data": fiber.Map{
				"id_user":  user.ID,
				"username": user.Username,
				"telp":     user.Telp,
			},
		},
		"monthly_data":  toChart("Penggunaan", series),
		"usage_details": agg.Categories,
		"reports":       reports,
	}, nil
}

func (h *DashboardHandler) GetUserDashboard(c *fiber.Ctx) error {
	userID, err := paramID(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	p, err := queryPeriod(c, h.periods)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.users.Profile(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.userDashboard(c.UserContext(), user, p)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Berhasil mengambil dashboard", data)
}

// GetClusterDashboard: dashboard user milik end-user cluster.
func (h *DashboardHandler) GetClusterDashboard(c *fiber.Ctx) error {
	clusterID, err := paramID(c, "cluster_id")
	if err != nil {
		return respondError(c, err)
	}
	p, err := queryPeriod(c, h.periods)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.scopes.ClusterUser(c.UserContext(), clusterID)
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.userDashboard(c.UserContext(), user, p)
	if err != nil {
		return respondError(c, err)
	}
	data["id_cluster"] = clusterID
	return respondOK(c, "Berhasil mengambil dashboard cluster", data)
}

func (h *DashboardHandler) rollup(ctx context.Context, scope usecase.Scope, p period.Period) (fiber.Map, error) {
	tree, err := h.usage.AggregateTree(ctx, scope, p)
	if err != nil {
		return nil, err
	}
	fu, err := h.usage.FeeUtilization(ctx, scope, p)
	if err != nil {
		return nil, err
	}
	pending, err := h.reports.PendingForScope(ctx, scope, pendingPreview)
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"name":   tree.Name,
		"period": p.Label(),
		"overview": fiber.Map{
			"total_amount":     tree.TotalAmount,
			"total_reports":    tree.Count,
			"marketing_fee":    fu.MarketingFee,
			"usage_percentage": fu.UsagePercentage,
			"pending_reports":  pending.Total,
		},
		"children":        tree.Children,
		"pending_reports": pending.Reports,
	}, nil
}

func (h *DashboardHandler) scopeDashboard(level model.Level, param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, param)
		if err != nil {
			return respondError(c, err)
		}
		p, err := queryPeriod(c, h.periods)
		if err != nil {
			return respondError(c, err)
		}
		data, err := h.rollup(c.UserContext(), usecase.Scope{Level: level, ID: id}, p)
		if err != nil {
			return respondError(c, err)
		}
		return respondOK(c, "Berhasil mengambil dashboard "+string(level), data)
	}
}

func (h *DashboardHandler) GetBranchDashboard(c *fiber.Ctx) error {
	return h.scopeDashboard(model.LevelBranch, "branch_id")(c)
}

func (h *DashboardHandler) GetRegionDashboard(c *fiber.Ctx) error {
	return h.scopeDashboard(model.LevelRegion, "region_id")(c)
}

// GetAreaDashboard menyusun region, branch dan cluster di bawah ringkasan area.
func (h *DashboardHandler) GetAreaDashboard(c *fiber.Ctx) error {
	areaID, err := paramID(c, "area_id")
	if err != nil {
		return respondError(c, err)
	}
	p, err := queryPeriod(c, h.periods)
	if err != nil {
		return respondError(c, err)
	}
	ctx := c.UserContext()
	scope := usecase.Scope{Level: model.LevelArea, ID: areaID}

	data, err := h.rollup(ctx, scope, p)
	if err != nil {
		return respondError(c, err)
	}
	regions, _ := data["children"].([]usecase.ChildUsage)
	regionData := make([]fiber.Map, 0, len(regions))
	for _, region := range regions {
		regionTree, err := h.usage.AggregateTree(ctx, usecase.Scope{Level: model.LevelRegion, ID: region.ID}, p)
		if err != nil {
			return respondError(c, err)
		}
		branchData := make([]fiber.Map, 0, len(regionTree.Children))
		for _, branch := range regionTree.Children {
			branchTree, err := h.usage.AggregateTree(ctx, usecase.Scope{Level: model.LevelBranch, ID: branch.ID}, p)
			if err != nil {
				return respondError(c, err)
			}
			branchData = append(branchData, fiber.Map{
				"id_branch":    branch.ID,
				"name":         branch.Name,
				"total_amount": branch.TotalAmount,
				"percentage":   branch.PercentageOfParent,
				"clusters":     branchTree.Children,
			})
		}
		regionData = append(regionData, fiber.Map{
			"id_region":    region.ID,
			"name":         region.Name,
			"total_amount": region.TotalAmount,
			"percentage":   region.PercentageOfParent,
			"branches":     branchData,
		})
	}
	data["children"] = regionData
	return respondOK(c, "Berhasil mengambil dashboard area", data)
}
