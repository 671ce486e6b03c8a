package routes

import (
	"time"

	"marketing-fee-backend/internal/cache"
	"marketing-fee-backend/internal/period"
	"marketing-fee-backend/internal/repository"
	"marketing-fee-backend/internal/storage"
	"marketing-fee-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps berisi semua kebutuhan layer HTTP dari main.
type Deps struct {
	DB        *gorm.DB
	Storage   storage.EvidenceStorage
	Cache     cache.Cache
	Periods   *period.Resolver
	Location  *time.Location
	JWTSecret string
	MaxUpload int64
}

// Services menampung repository dan usecase yang dipakai semua grup route.
type Services struct {
	Poins     repository.PoinRepository
	Hierarchy *usecase.HierarchyUsecase
	Usage     *usecase.UsageUsecase
	Approval  *usecase.ApprovalUsecase
	Reports   *usecase.ReportUsecase
	Quota     *usecase.QuotaUsecase
	Users     *usecase.UserUsecase
	Periods   *period.Resolver
	JWTSecret string
}

func NewServices(d Deps) *Services {
	var (
		hierRepo   = repository.NewHierarchyRepository(d.DB)
		userRepo   = repository.NewUserRepository(d.DB)
		roleRepo   = repository.NewRoleRepository(d.DB)
		poinRepo   = repository.NewPoinRepository(d.DB)
		reportRepo = repository.NewReportRepository(d.DB)
		usageRepo  = repository.NewUsageRepository(d.DB)
		recRepo    = repository.NewRecommendationRepository(d.DB)
		feeRepo    = repository.NewMarketingFeeRepository(d.DB)
	)
	hierarchy := usecase.NewHierarchyUsecase(hierRepo, userRepo)
	return &Services{
		Poins:     poinRepo,
		Hierarchy: hierarchy,
		Usage:     usecase.NewUsageUsecase(hierarchy, usageRepo, reportRepo, recRepo, feeRepo, poinRepo, d.Cache, d.Location),
		Approval:  usecase.NewApprovalUsecase(reportRepo, hierarchy, d.Cache, d.Location),
		Reports:   usecase.NewReportUsecase(reportRepo, poinRepo, userRepo, d.Storage, hierarchy, d.Cache, d.Location, d.MaxUpload),
		Quota:     usecase.NewQuotaUsecase(recRepo, feeRepo, poinRepo, userRepo, hierarchy, d.Cache, d.Location),
		Users:     usecase.NewUserUsecase(userRepo, roleRepo, hierRepo),
		Periods:   d.Periods,
		JWTSecret: d.JWTSecret,
	}
}

// Setup mendaftarkan semua grup route ke app.
func Setup(app *fiber.App, svc *Services) {
	SetupMasterDataRoutes(app, svc)
	SetupUserRoutes(app, svc)
	SetupHierarchyRoutes(app, svc)
	SetupUsageRoutes(app, svc)
	SetupDashboardRoutes(app, svc)
	SetupReportRoutes(app, svc)
	SetupApprovalRoutes(app, svc)
	SetupQuotaRoutes(app, svc)
}
