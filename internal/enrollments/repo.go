package enrollments

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/prelaunchhq/enrollment-backend/pkg/db/models"
	"github.com/prelaunchhq/enrollment-backend/pkg/pagination"
)

// Repository exposes enrollment persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an enrollments repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new enrollment. The caller supplies the fully-populated model.
func (r *Repository) Create(ctx context.Context, e *models.Enrollment) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(e).Error
}

// FindByID loads an enrollment by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Enrollment, error) {
	var e models.Enrollment
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByCode loads an enrollment by its member code.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.Enrollment, error) {
	var e models.Enrollment
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByEmail retrieves the enrollment matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Enrollment, error) {
	var e models.Enrollment
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// MaxCodeNumber returns the highest allocated code suffix, zero when empty.
func (r *Repository) MaxCodeNumber(ctx context.Context) (int64, error) {
	var max *int64
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Select("MAX(code_number)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// FindByName matches enrollments on a case-insensitive first/last name pair.
// At most two rows come back so the caller can tell one match from many.
func (r *Repository) FindByName(ctx context.Context, firstName, lastName string) ([]models.Enrollment, error) {
	var matches []models.Enrollment
	err := r.db.WithContext(ctx).
		Where("LOWER(first_name) = ? AND LOWER(last_name) = ?",
			strings.ToLower(firstName), strings.ToLower(lastName)).
		Limit(2).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// List returns a cursor page of enrollments, newest first.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Enrollment, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Enrollment
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListBySponsorID returns the direct downline of the given member code.
func (r *Repository) ListBySponsorID(ctx context.Context, sponsorCode string) ([]models.Enrollment, error) {
	var rows []models.Enrollment
	err := r.db.WithContext(ctx).
		Where("sponsor_id = ?", sponsorCode).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update persists the provided column map against an enrollment.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	if len(columns) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateVolumes sets team and sales volume in a single statement.
func (r *Repository) UpdateVolumes(ctx context.Context, id uuid.UUID, team, sales decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"team_volume":  team,
			"sales_volume": sales,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePasswordHash replaces the stored password hash.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("id = ?", id).
		UpdateColumn("password_hash", hash).Error
}

// Delete removes the enrollment permanently.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Enrollment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// WithTx returns a repository bound to the provided transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}
