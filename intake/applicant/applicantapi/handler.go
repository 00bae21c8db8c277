package applicantapi

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/talentops/funnel/intake/applicant"
	"github.com/talentops/funnel/intake/applicant/applicantsrv"
	"github.com/talentops/funnel/pkg/kernel"
)

// Handlers provides HTTP handlers for applicant intake operations
type Handlers struct {
	service *applicantsrv.IntakeService
}

// NewHandlers creates a new applicant handlers instance
func NewHandlers(service *applicantsrv.IntakeService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// SyncSheet pulls and processes every row of an application sheet
// POST /api/intake/sync/:sheetId
func (h *Handlers) SyncSheet(c *fiber.Ctx) error {
	sheetID := kernel.SheetID(c.Params("sheetId"))
	if sheetID.IsEmpty() {
		return applicant.ErrInvalidRequest().WithDetail("sheet_id", "missing or empty")
	}

	result, err := h.service.SyncSheet(c.Context(), sheetID)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// EnqueueSync queues a sheet for background processing
// POST /api/intake/enqueue/:sheetId
func (h *Handlers) EnqueueSync(c *fiber.Ctx) error {
	sheetID := kernel.SheetID(c.Params("sheetId"))
	if sheetID.IsEmpty() {
		return applicant.ErrInvalidRequest().WithDetail("sheet_id", "missing or empty")
	}

	job, err := h.service.EnqueueSync(c.Context(), sheetID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(job)
}

// ListApplicants retrieves all applicants with pagination
// GET /api/applicants
func (h *Handlers) ListApplicants(c *fiber.Ctx) error {
	pagination := parsePaginationOptions(c)

	applicants, err := h.service.ListApplicants(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(applicants)
}

// GetApplicant retrieves one applicant by sheet and email
// GET /api/applicants/:sheetId/:email
func (h *Handlers) GetApplicant(c *fiber.Ctx) error {
	sheetID := kernel.SheetID(c.Params("sheetId"))
	if sheetID.IsEmpty() {
		return applicant.ErrInvalidRequest().WithDetail("sheet_id", "missing or empty")
	}

	email, err := decodeEmailParam(c.Params("email"))
	if err != nil {
		return applicant.ErrInvalidRequest().WithDetail("email", "malformed")
	}

	record, err := h.service.GetApplicant(c.Context(), sheetID, email)
	if err != nil {
		return err
	}

	return c.JSON(record)
}

// SearchApplicants runs a similarity search over candidate materials
// GET /api/applicants/search?q=...&limit=...
func (h *Handlers) SearchApplicants(c *fiber.Ctx) error {
	query := c.Query("q")
	limit := c.QueryInt("limit", 10)

	results, err := h.service.SearchApplicants(c.Context(), query, limit)
	if err != nil {
		return err
	}

	return c.JSON(results)
}

// decodeEmailParam unescapes the email path segment; addresses contain
// characters fiber keeps percent-encoded in params.
func decodeEmailParam(raw string) (kernel.Email, error) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", err
	}
	return kernel.Email(decoded), nil
}

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	// Ensure valid values
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return kernel.PaginationOptions{
		Page:     page,
		PageSize: pageSize,
	}
}

// RegisterRoutes registers all applicant intake routes
func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	intake := app.Group("/api/intake")
	intake.Post("/sync/:sheetId", handlers.SyncSheet)
	intake.Post("/enqueue/:sheetId", handlers.EnqueueSync)

	applicants := app.Group("/api/applicants")
	applicants.Get("/", handlers.ListApplicants)
	applicants.Get("/search", handlers.SearchApplicants)
	applicants.Get("/:sheetId/:email", handlers.GetApplicant)
}
