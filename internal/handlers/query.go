package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tuanvy6922/caketeaadmin/internal/middleware"
	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/services"
)

// parseListQuery builds a listing request from query parameters. get returns
// "" for a missing parameter.
func parseListQuery(get func(string) string, loc *time.Location) (*services.ListOrdersRequest, error) {
	criteria := models.DefaultCriteria()
	criteria.Query = strings.TrimSpace(get("query"))

	if status := get("status"); status != "" {
		criteria.Status = status
	}
	if staff := get("staff"); staff != "" {
		criteria.Staff = staff
	}
	if preset := get("date"); preset != "" {
		criteria.Preset = models.DatePreset(preset)
	}

	for _, side := range []struct {
		param string
		dst   **time.Time
	}{
		{"start", &criteria.Range.Start},
		{"end", &criteria.Range.End},
	} {
		value := get(side.param)
		if value == "" {
			continue
		}
		day, err := middleware.ParseDay(value, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid %s parameter: %q", side.param, value)
		}
		*side.dst = &day
	}

	page, err := optionalInt(get("page"), "page")
	if err != nil {
		return nil, err
	}
	pageSize, err := optionalInt(get("page_size"), "page_size")
	if err != nil {
		return nil, err
	}

	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	return &services.ListOrdersRequest{
		Criteria: criteria,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func optionalInt(value, name string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s parameter: must be a non-negative integer", name)
	}
	return n, nil
}

// paging reads the optional page and page_size query parameters
func paging(get func(string) string) (int, int, error) {
	page, err := optionalInt(get("page"), "page")
	if err != nil {
		return 0, 0, err
	}
	pageSize, err := optionalInt(get("page_size"), "page_size")
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}
