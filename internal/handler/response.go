package handler

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"marketing-fee-backend/internal/apperror"
	"marketing-fee-backend/internal/period"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// respondError memetakan jenis apperror ke status HTTP. Penyebab error
// internal dicatat di log dan diganti pesan umum.
func respondError(c *fiber.Ctx, err error) error {
	status := apperror.StatusCode(err)
	if status >= fiber.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": apperror.PublicMessage(err)})
}

func respondOK(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{"message": message, "data": data})
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation("Parameter %s tidak valid", name)
	}
	return uint(id), nil
}

// bindBody parsing body JSON ke dst lalu menjalankan tag validate.
func bindBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return apperror.Validation("Format data tidak valid")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apperror.Validation("Field %s tidak valid (%s)", fe.Field(), fe.Tag())
		}
		return apperror.Validation("Data tidak valid")
	}
	return nil
}

// queryPeriod membaca ?month= dan ?year= lewat resolver.
func queryPeriod(c *fiber.Ctx, r *period.Resolver) (period.Period, error) {
	return r.Resolve(c.Query("month"), c.Query("year"))
}

// looseString menerima string atau angka JSON, jadi klien boleh mengirim
// "month": 6, "month": "6" maupun "month": "Juni".
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
	case len(b) > 0 && b[0] == '"':
		v, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		*s = looseString(v)
	default:
		if _, err := strconv.ParseFloat(string(b), 64); err != nil {
			return fmt.Errorf("nilai %s bukan string atau angka", b)
		}
		*s = looseString(b)
	}
	return nil
}

func (s looseString) String() string { return strings.TrimSpace(string(s)) }

// strictPeriod parsing bulan dan tahun tanpa fallback ke waktu sekarang.
func strictPeriod(month, year looseString) (period.Period, error) {
	m, ok := period.LookupMonth(month.String())
	if !ok {
		return period.Period{}, apperror.Validation("Bulan %q tidak valid", month.String())
	}
	y, err := strconv.Atoi(year.String())
	if err != nil {
		return period.Period{}, apperror.Validation("Tahun %q tidak valid", year.String())
	}
	return period.New(y, int(m))
}
