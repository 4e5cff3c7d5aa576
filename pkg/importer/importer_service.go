package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"mealplanner/domain"
	"mealplanner/internal/logger"
	"mealplanner/internal/utils"
)

const (
	fetchTimeout = 15 * time.Second
	maxBodyBytes = 5 << 20

	// Some recipe sites refuse default Go client UAs outright.
	defaultUserAgent = "Mozilla/5.0 (compatible; mealplanner/1.0)"
)

type (
	ImporterService interface {
		ImportFromURL(ctx context.Context, url string) (domain.ImportedRecipe, error)
	}

	importerService struct {
		client    *http.Client
		userAgent string
	}
)

func NewImporterService() ImporterService {
	ua := utils.GetConfig("IMPORT_USER_AGENT")
	if ua == "" {
		ua = defaultUserAgent
	}
	return &importerService{
		client:    &http.Client{Timeout: fetchTimeout},
		userAgent: ua,
	}
}

// ImportFromURL fetches a page and extracts its structured recipe data.
func (s *importerService) ImportFromURL(ctx context.Context, url string) (domain.ImportedRecipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.ImportedRecipe{}, fmt.Errorf("%s: %w", domain.MessageFailedImportRecipe, err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.ImportedRecipe{}, fmt.Errorf("%s: %w", domain.MessageFailedImportRecipe, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ImportedRecipe{}, fmt.Errorf("%s: unexpected status %d", domain.MessageFailedImportRecipe, resp.StatusCode)
	}

	imported, err := Extract(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.ImportedRecipe{}, err
	}
	imported.SourceURL = url

	logger.Info("recipe extracted",
		"url", url,
		"name", imported.Name,
		"lines", len(imported.IngredientLines),
	)
	return imported, nil
}
