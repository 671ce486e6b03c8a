package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"marketing-fee-backend/internal/apperror"
	"marketing-fee-backend/internal/cache"
	"marketing-fee-backend/internal/model"
	"marketing-fee-backend/internal/period"
	"marketing-fee-backend/internal/repository"
	"marketing-fee-backend/internal/storage"

	"gorm.io/gorm"
)

var evidenceExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".pdf": true}

var reportTimeLayouts = []string{"2006-01-02 15:04:05-0700", time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

type CreateReportInput struct {
	UserID      uint
	PoinID      uint
	Description string
	AmountUsed  float64
	Time        string
}

// Evidence is the uploaded proof attached to a report.
type Evidence struct {
	Filename string
	Size     int64
	Content  io.Reader
}

type PendingReports struct {
	Total   int64          `json:"total"`
	Reports []model.Report `json:"reports"`
}

type ReportUsecase struct {
	reports  repository.ReportRepository
	poins    repository.PoinRepository
	users    repository.UserRepository
	storage  storage.EvidenceStorage
	scopes   *HierarchyUsecase
	cache    cache.Cache
	loc      *time.Location
	maxBytes int64
	now      func() time.Time
}

func NewReportUsecase(
	reports repository.ReportRepository,
	poins repository.PoinRepository,
	users repository.UserRepository,
	store storage.EvidenceStorage,
	scopes *HierarchyUsecase,
	c cache.Cache,
	loc *time.Location,
	maxBytes int64,
) *ReportUsecase {
	if c == nil {
		c = cache.NoopCache{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ReportUsecase{
		reports: reports, poins: poins, users: users, storage: store, scopes: scopes,
		cache: c, loc: loc, maxBytes: maxBytes, now: time.Now,
	}
}

func (u *ReportUsecase) parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return u.now().In(u.loc), nil
	}
	for _, layout := range reportTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, u.loc); err == nil {
			return t.In(u.loc), nil
		}
	}
	return time.Time{}, apperror.Validation("Format waktu %q tidak valid", raw)
}

func (u *ReportUsecase) validateEvidence(file *Evidence) (string, error) {
	if file == nil || file.Content == nil {
		return "", apperror.Validation("File bukti wajib diunggah")
	}
	if u.maxBytes > 0 && file.Size > u.maxBytes {
		return "", apperror.Validation("Ukuran file maksimal %d KB", u.maxBytes/1024)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !evidenceExtensions[ext] {
		return "", apperror.Validation("Format file %q tidak didukung", ext)
	}
	return ext, nil
}

// Create validates the input, stores the evidence and inserts a pending
// report. The stored file is removed again when the insert fails.
func (u *ReportUsecase) Create(ctx context.Context, in CreateReportInput, file *Evidence) (*model.Report, error) {
	if in.UserID == 0 || in.PoinID == 0 {
		return nil, apperror.Validation("user_id dan poin_id wajib diisi")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, apperror.Validation("Deskripsi wajib diisi")
	}
	if in.AmountUsed < 0 {
		return nil, apperror.Validation("Jumlah tidak boleh negatif")
	}
	at, err := u.parseTime(in.Time)
	if err != nil {
		return nil, err
	}
	ext, err := u.validateEvidence(file)
	if err != nil {
		return nil, err
	}

	user, err := u.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, notFoundOr(err, "User %d tidak ditemukan", in.UserID)
	}
	if user.RoleID != model.RoleEndUser {
		return nil, apperror.Validation("User %d bukan pengguna lapangan", in.UserID)
	}
	if _, err := u.poins.GetByID(ctx, in.PoinID); err != nil {
		return nil, notFoundOr(err, "Poin %d tidak ditemukan", in.PoinID)
	}

	url, err := u.storage.Save(ctx, ext, file.Content)
	if err != nil {
		return nil, apperror.Internal(err, "simpan bukti laporan")
	}

	report := &model.Report{
		UserID:      in.UserID,
		PoinID:      in.PoinID,
		Description: strings.TrimSpace(in.Description),
		AmountUsed:  in.AmountUsed,
		ImageURL:    url,
		Time:        at,
		Status:      false,
	}
	if err := u.reports.Create(ctx, report); err != nil {
		if derr := u.storage.Delete(ctx, url); derr != nil {
			log.Printf("[ERROR] bukti %s tertinggal setelah insert gagal: %v", url, derr)
		}
		return nil, apperror.Internal(err, "simpan laporan")
	}

	t := at.In(u.loc)
	u.cache.InvalidatePeriod(ctx, period.Period{Year: t.Year(), Month: t.Month()})
	return report, nil
}

// Delete removes a report in any state together with its evidence file.
// If the file cannot be removed the row stays.
func (u *ReportUsecase) Delete(ctx context.Context, reportID uint) error {
	var removed model.Report
	err := u.reports.Delete(ctx, reportID, func(r *model.Report) error {
		removed = *r
		if r.ImageURL == "" {
			return nil
		}
		return u.storage.Delete(ctx, r.ImageURL)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("Laporan %d tidak ditemukan", reportID)
	}
	if err != nil {
		return apperror.Internal(err, "hapus laporan %d", reportID)
	}

	t := removed.Time.In(u.loc)
	u.cache.InvalidatePeriod(ctx, period.Period{Year: t.Year(), Month: t.Month()})
	return nil
}

func (u *ReportUsecase) ListForUser(ctx context.Context, userID uint, p period.Period) ([]model.Report, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if _, err := u.scopes.ScopeName(ctx, Scope{Level: model.LevelUser, ID: userID}); err != nil {
		return nil, err
	}
	list, err := u.reports.List(ctx, repository.ReportFilter{UserIDs: []uint{userID}, Start: p.Start(u.loc), End: p.End(u.loc)})
	if err != nil {
		return nil, apperror.Internal(err, "ambil laporan user %d", userID)
	}
	return list, nil
}

// PendingForScope returns the pending count of the scope closure and the
// newest limit pending reports.
func (u *ReportUsecase) PendingForScope(ctx context.Context, scope Scope, limit int) (*PendingReports, error) {
	users, err := u.scopes.ScopeClosure(ctx, scope)
	if err != nil {
		return nil, err
	}
	total, err := u.reports.CountPending(ctx, users)
	if err != nil {
		return nil, apperror.Internal(err, "hitung laporan pending")
	}
	list, err := u.reports.Pending(ctx, users, limit)
	if err != nil {
		return nil, apperror.Internal(err, "ambil laporan pending")
	}
	return &PendingReports{Total: total, Reports: list}, nil
}
