package applicantinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/talentops/funnel/intake/applicant"
	"github.com/talentops/funnel/pkg/kernel"
)

// PostgresApplicantRepository implements applicant.Repository using PostgreSQL.
// Applicants are keyed by (sheet_id, email); re-syncing a sheet overwrites
// the stored record in place.
type PostgresApplicantRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicantRepository creates a new PostgreSQL applicant repository.
func NewPostgresApplicantRepository(db *sqlx.DB) *PostgresApplicantRepository {
	return &PostgresApplicantRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

type applicantModel struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Role        string    `db:"role"`
	SheetID     string    `db:"sheet_id"`
	Status      string    `db:"status"`
	SubmittedAt time.Time `db:"submitted_at"`
	Email       string    `db:"email"`

	Phone       string `db:"phone"`
	CountryCode string `db:"country_code"`
	Location    string `db:"location"`

	GitHub    string `db:"github"`
	GitLab    string `db:"gitlab"`
	LinkedIn  string `db:"linkedin"`
	Portfolio string `db:"portfolio"`
	Website   string `db:"website"`

	Resume            string `db:"resume"`
	Materials         string `db:"materials"`
	SentEmailReceived bool   `db:"sent_email_received"`

	ValueReflected  string         `db:"value_reflected"`
	ValueViolated   string         `db:"value_violated"`
	ValuesInTension pq.StringArray `db:"values_in_tension"`

	ResumeContents    string `db:"resume_contents"`
	MaterialsContents string `db:"materials_contents"`

	WorkSamples         string `db:"work_samples"`
	WritingSamples      string `db:"writing_samples"`
	AnalysisSamples     string `db:"analysis_samples"`
	PresentationSamples string `db:"presentation_samples"`
	ExploratorySamples  string `db:"exploratory_samples"`

	QuestionTechnicallyChallenging string `db:"question_technically_challenging"`
	QuestionProudOf                string `db:"question_proud_of"`
	QuestionHappiest               string `db:"question_happiest"`
	QuestionUnhappiest             string `db:"question_unhappiest"`
	QuestionValueReflected         string `db:"question_value_reflected"`
	QuestionValueViolated          string `db:"question_value_violated"`
	QuestionValuesInTension        string `db:"question_values_in_tension"`
	QuestionWhyUs                  string `db:"question_why_us"`

	MaterialsEmbedding *pgvector.Vector `db:"materials_embedding"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// applicantSearchModel carries a similarity score alongside the record.
type applicantSearchModel struct {
	applicantModel
	Score float64 `db:"score"`
}

// toEntity converts database model to domain entity.
func (m *applicantModel) toEntity() *applicant.Applicant {
	a := &applicant.Applicant{
		ID:          kernel.ApplicantID(m.ID),
		Name:        m.Name,
		Role:        m.Role,
		SheetID:     kernel.SheetID(m.SheetID),
		Status:      m.Status,
		SubmittedAt: m.SubmittedAt,
		Email:       kernel.Email(m.Email),

		Phone:       m.Phone,
		CountryCode: kernel.CountryCode(m.CountryCode),
		Location:    m.Location,

		GitHub:    m.GitHub,
		GitLab:    m.GitLab,
		LinkedIn:  m.LinkedIn,
		Portfolio: m.Portfolio,
		Website:   m.Website,

		Resume:            m.Resume,
		Materials:         m.Materials,
		SentEmailReceived: m.SentEmailReceived,

		ValueReflected:  m.ValueReflected,
		ValueViolated:   m.ValueViolated,
		ValuesInTension: []string(m.ValuesInTension),

		ResumeContents:    m.ResumeContents,
		MaterialsContents: m.MaterialsContents,

		WorkSamples:         m.WorkSamples,
		WritingSamples:      m.WritingSamples,
		AnalysisSamples:     m.AnalysisSamples,
		PresentationSamples: m.PresentationSamples,
		ExploratorySamples:  m.ExploratorySamples,

		QuestionTechnicallyChallenging: m.QuestionTechnicallyChallenging,
		QuestionProudOf:                m.QuestionProudOf,
		QuestionHappiest:               m.QuestionHappiest,
		QuestionUnhappiest:             m.QuestionUnhappiest,
		QuestionValueReflected:         m.QuestionValueReflected,
		QuestionValueViolated:          m.QuestionValueViolated,
		QuestionValuesInTension:        m.QuestionValuesInTension,
		QuestionWhyUs:                  m.QuestionWhyUs,
	}

	if m.MaterialsEmbedding != nil {
		a.MaterialsEmbedding = m.MaterialsEmbedding.Slice()
	}

	return a
}

// fromEntity converts domain entity to database model.
func fromEntity(a *applicant.Applicant) *applicantModel {
	m := &applicantModel{
		ID:          string(a.ID),
		Name:        a.Name,
		Role:        a.Role,
		SheetID:     string(a.SheetID),
		Status:      a.Status,
		SubmittedAt: a.SubmittedAt,
		Email:       string(a.Email),

		Phone:       a.Phone,
		CountryCode: string(a.CountryCode),
		Location:    a.Location,

		GitHub:    a.GitHub,
		GitLab:    a.GitLab,
		LinkedIn:  a.LinkedIn,
		Portfolio: a.Portfolio,
		Website:   a.Website,

		Resume:            a.Resume,
		Materials:         a.Materials,
		SentEmailReceived: a.SentEmailReceived,

		ValueReflected:  a.ValueReflected,
		ValueViolated:   a.ValueViolated,
		ValuesInTension: pq.StringArray(a.ValuesInTension),

		ResumeContents:    a.ResumeContents,
		MaterialsContents: a.MaterialsContents,

		WorkSamples:         a.WorkSamples,
		WritingSamples:      a.WritingSamples,
		AnalysisSamples:     a.AnalysisSamples,
		PresentationSamples: a.PresentationSamples,
		ExploratorySamples:  a.ExploratorySamples,

		QuestionTechnicallyChallenging: a.QuestionTechnicallyChallenging,
		QuestionProudOf:                a.QuestionProudOf,
		QuestionHappiest:               a.QuestionHappiest,
		QuestionUnhappiest:             a.QuestionUnhappiest,
		QuestionValueReflected:         a.QuestionValueReflected,
		QuestionValueViolated:          a.QuestionValueViolated,
		QuestionValuesInTension:        a.QuestionValuesInTension,
		QuestionWhyUs:                  a.QuestionWhyUs,
	}

	if len(a.MaterialsEmbedding) > 0 {
		v := pgvector.NewVector(a.MaterialsEmbedding)
		m.MaterialsEmbedding = &v
	}

	return m
}

const applicantColumns = `
	id, name, role, sheet_id, status, submitted_at, email,
	phone, country_code, location,
	github, gitlab, linkedin, portfolio, website,
	resume, materials, sent_email_received,
	value_reflected, value_violated, values_in_tension,
	resume_contents, materials_contents,
	work_samples, writing_samples, analysis_samples,
	presentation_samples, exploratory_samples,
	question_technically_challenging, question_proud_of,
	question_happiest, question_unhappiest,
	question_value_reflected, question_value_violated,
	question_values_in_tension, question_why_us,
	materials_embedding, created_at, updated_at
`

// ============================================================================
// Repository Implementation
// ============================================================================

// Upsert inserts the applicant or, if the (sheet_id, email) pair already
// exists, overwrites the stored record with the freshly assembled one.
func (r *PostgresApplicantRepository) Upsert(ctx context.Context, a *applicant.Applicant) error {
	model := fromEntity(a)

	if model.ID == "" {
		model.ID = uuid.NewString()
	}
	now := time.Now()
	model.CreatedAt = now
	model.UpdatedAt = now

	query := `
		INSERT INTO applicants (
			id, name, role, sheet_id, status, submitted_at, email,
			phone, country_code, location,
			github, gitlab, linkedin, portfolio, website,
			resume, materials, sent_email_received,
			value_reflected, value_violated, values_in_tension,
			resume_contents, materials_contents,
			work_samples, writing_samples, analysis_samples,
			presentation_samples, exploratory_samples,
			question_technically_challenging, question_proud_of,
			question_happiest, question_unhappiest,
			question_value_reflected, question_value_violated,
			question_values_in_tension, question_why_us,
			materials_embedding, created_at, updated_at
		) VALUES (
			:id, :name, :role, :sheet_id, :status, :submitted_at, :email,
			:phone, :country_code, :location,
			:github, :gitlab, :linkedin, :portfolio, :website,
			:resume, :materials, :sent_email_received,
			:value_reflected, :value_violated, :values_in_tension,
			:resume_contents, :materials_contents,
			:work_samples, :writing_samples, :analysis_samples,
			:presentation_samples, :exploratory_samples,
			:question_technically_challenging, :question_proud_of,
			:question_happiest, :question_unhappiest,
			:question_value_reflected, :question_value_violated,
			:question_values_in_tension, :question_why_us,
			:materials_embedding, :created_at, :updated_at
		)
		ON CONFLICT (sheet_id, email) DO UPDATE SET
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			status = EXCLUDED.status,
			submitted_at = EXCLUDED.submitted_at,
			phone = EXCLUDED.phone,
			country_code = EXCLUDED.country_code,
			location = EXCLUDED.location,
			github = EXCLUDED.github,
			gitlab = EXCLUDED.gitlab,
			linkedin = EXCLUDED.linkedin,
			portfolio = EXCLUDED.portfolio,
			website = EXCLUDED.website,
			resume = EXCLUDED.resume,
			materials = EXCLUDED.materials,
			sent_email_received = EXCLUDED.sent_email_received,
			value_reflected = EXCLUDED.value_reflected,
			value_violated = EXCLUDED.value_violated,
			values_in_tension = EXCLUDED.values_in_tension,
			resume_contents = EXCLUDED.resume_contents,
			materials_contents = EXCLUDED.materials_contents,
			work_samples = EXCLUDED.work_samples,
			writing_samples = EXCLUDED.writing_samples,
			analysis_samples = EXCLUDED.analysis_samples,
			presentation_samples = EXCLUDED.presentation_samples,
			exploratory_samples = EXCLUDED.exploratory_samples,
			question_technically_challenging = EXCLUDED.question_technically_challenging,
			question_proud_of = EXCLUDED.question_proud_of,
			question_happiest = EXCLUDED.question_happiest,
			question_unhappiest = EXCLUDED.question_unhappiest,
			question_value_reflected = EXCLUDED.question_value_reflected,
			question_value_violated = EXCLUDED.question_value_violated,
			question_values_in_tension = EXCLUDED.question_values_in_tension,
			question_why_us = EXCLUDED.question_why_us,
			materials_embedding = COALESCE(EXCLUDED.materials_embedding, applicants.materials_embedding),
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" { // check_violation
			return fmt.Errorf("applicant violates a table constraint: %w", err)
		}
		return fmt.Errorf("failed to upsert applicant: %w", err)
	}

	return nil
}

// GetByEmail retrieves one applicant by sheet and email.
func (r *PostgresApplicantRepository) GetByEmail(ctx context.Context, sheetID kernel.SheetID, email kernel.Email) (*applicant.Applicant, error) {
	query := `
		SELECT ` + applicantColumns + `
		FROM applicants
		WHERE sheet_id = $1 AND email = $2
	`

	var model applicantModel
	err := r.db.GetContext(ctx, &model, query, string(sheetID), string(email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, applicant.ErrApplicantNotFound()
		}
		return nil, fmt.Errorf("failed to get applicant by email: %w", err)
	}

	return model.toEntity(), nil
}

// List retrieves applicants ordered by submission time, newest first.
func (r *PostgresApplicantRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[applicant.Applicant], error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM applicants`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, fmt.Errorf("failed to count applicants: %w", err)
	}

	query := `
		SELECT ` + applicantColumns + `
		FROM applicants
		ORDER BY submitted_at DESC
		LIMIT $1 OFFSET $2
	`

	var models []applicantModel
	err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}

	entities := make([]applicant.Applicant, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

// SearchBySimilarity runs a cosine-distance search over the materials
// embeddings; records without an embedding are excluded.
func (r *PostgresApplicantRepository) SearchBySimilarity(ctx context.Context, embedding []float32, limit int) ([]applicant.SearchResult, error) {
	query := `
		SELECT ` + applicantColumns + `,
			1 - (materials_embedding <=> $1) AS score
		FROM applicants
		WHERE materials_embedding IS NOT NULL
		ORDER BY materials_embedding <=> $1
		LIMIT $2
	`

	var models []applicantSearchModel
	err := r.db.SelectContext(ctx, &models, query, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search applicants by similarity: %w", err)
	}

	results := make([]applicant.SearchResult, 0, len(models))
	for _, model := range models {
		results = append(results, applicant.SearchResult{
			Applicant: *model.toEntity(),
			Score:     model.Score,
		})
	}

	return results, nil
}
