package query

import (
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"overlayapi/internal/configuration"
	apierrors "overlayapi/internal/errors"
	"overlayapi/internal/models"

	"github.com/go-playground/validator/v10"
)

var txidPattern = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

// dateLayouts are tried in order. Values without a zone are taken as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

var fieldErrorCodes = map[string]string{
	"Txid":      apierrors.ErrInvalidTxid,
	"Limit":     apierrors.ErrInvalidLimit,
	"Skip":      apierrors.ErrInvalidSkip,
	"StartDate": apierrors.ErrInvalidDate,
	"EndDate":   apierrors.ErrInvalidDate,
	"SortOrder": apierrors.ErrInvalidSortOrder,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("txid", func(fl validator.FieldLevel) bool {
		return txidPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// ParseDate parses an ISO 8601 date or date-time.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("invalid date")
}

func bindParams(values url.Values) models.RecordsQueryParams {
	return models.RecordsQueryParams{
		Txid:      values.Get("txid"),
		Limit:     values.Get("limit"),
		Skip:      values.Get("skip"),
		StartDate: values.Get("startDate"),
		EndDate:   values.Get("endDate"),
		SortOrder: values.Get("sortOrder"),
	}
}

// ParseQuerySpec validates untrusted query parameters into a QuerySpec. Errors are
// *apierrors.APIError values carrying one of the INVALID_* codes.
func ParseQuerySpec(values url.Values) (QuerySpec, error) {
	params := bindParams(values)

	if err := validate.Struct(params); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			if code, ok := fieldErrorCodes[validationErrors[0].StructField()]; ok {
				return QuerySpec{}, apierrors.NewValidationError(code)
			}
		}
		return QuerySpec{}, err
	}

	spec := defaultQuerySpec()

	if params.Txid != "" {
		txid := params.Txid
		spec.txid = &txid
	}

	if params.Limit != "" {
		limit, err := strconv.Atoi(params.Limit)
		switch {
		case errors.Is(err, strconv.ErrRange):
			limit = configuration.MaxQueryLimit
		case err != nil:
			return QuerySpec{}, apierrors.NewValidationError(apierrors.ErrInvalidLimit)
		}
		spec.limit = clampLimit(limit)
	}

	if params.Skip != "" {
		skip, err := strconv.Atoi(params.Skip)
		if err != nil || skip < 0 {
			return QuerySpec{}, apierrors.NewValidationError(apierrors.ErrInvalidSkip)
		}
		spec.skip = skip
	}

	if params.StartDate != "" {
		start, err := ParseDate(params.StartDate)
		if err != nil {
			return QuerySpec{}, apierrors.NewValidationError(apierrors.ErrInvalidDate)
		}
		spec.startDate = &start
	}

	if params.EndDate != "" {
		end, err := ParseDate(params.EndDate)
		if err != nil {
			return QuerySpec{}, apierrors.NewValidationError(apierrors.ErrInvalidDate)
		}
		spec.endDate = &end
	}

	if params.SortOrder != "" {
		spec.sortOrder = models.SortOrder(params.SortOrder)
	}

	if spec.startDate != nil && spec.endDate != nil && spec.startDate.After(*spec.endDate) {
		return QuerySpec{}, apierrors.NewValidationError(apierrors.ErrInvalidDateRange)
	}

	return spec, nil
}

// clampLimit bounds limit into [MinQueryLimit, MaxQueryLimit]; out-of-range values are
// not an error.
func clampLimit(limit int) int {
	if limit < configuration.MinQueryLimit {
		return configuration.MinQueryLimit
	}
	if limit > configuration.MaxQueryLimit {
		return configuration.MaxQueryLimit
	}
	return limit
}
