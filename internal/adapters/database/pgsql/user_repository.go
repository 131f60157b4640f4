package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nagorik/citizen-registry/internal/apperrors"
	"github.com/nagorik/citizen-registry/internal/core/domain"
	portsrepo "github.com/nagorik/citizen-registry/internal/core/ports/repositories"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements the facade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `
	u.id, u.username, u.email, u.phone, u.password_hash, u.first_name, u.last_name,
	u.parent_id, u.add_by_id,
	u.email_verified, u.phone_verified, u.email_code, u.phone_code,
	u.email_code_sent_at, u.phone_code_sent_at,
	u.payment_status,
	u.approved, u.approved_by_id, u.approved_at,
	u.rejected, u.rejected_by_id, u.rejected_at,
	u.postponed, u.created_at, u.updated_at,
	r.id, r.name, r.label`

const userFromClause = ` FROM users u JOIN roles r ON r.id = u.role_id `

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID, &u.Username, &u.Email, &u.Phone, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.ParentID, &u.AddByID,
		&u.EmailVerified, &u.PhoneVerified, &u.EmailCode, &u.PhoneCode,
		&u.EmailCodeSentAt, &u.PhoneCodeSentAt,
		&u.PaymentStatus,
		&u.Approved, &u.ApprovedByID, &u.ApprovedAt,
		&u.Rejected, &u.RejectedByID, &u.RejectedAt,
		&u.Postponed, &u.CreatedAt, &u.UpdatedAt,
		&u.Role.RoleID, &u.Role.Name, &u.Role.Label,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT` + userColumns + userFromClause + `WHERE u.id = $1;`
	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %d: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByContactAndRole(ctx context.Context, contact string, role domain.RoleName) (*domain.User, error) {
	query := `SELECT` + userColumns + userFromClause + `
		WHERE (u.email = $1 OR u.phone = $1) AND r.name = $2
		ORDER BY u.id
		LIMIT 1;`
	user, err := scanUser(r.db.QueryRow(ctx, query, contact, role))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by contact and role %s: %w", role, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindSubUsersByParentContact(ctx context.Context, contact string) ([]domain.User, error) {
	query := `SELECT` + userColumns + `
		FROM users u
		JOIN roles r ON r.id = u.role_id
		JOIN users p ON p.id = u.parent_id
		WHERE (p.email = $1 OR p.phone = $1) AND r.name = $2
		ORDER BY u.id;`
	rows, err := r.db.Query(ctx, query, contact, domain.RoleSubUser)
	if err != nil {
		return nil, fmt.Errorf("failed to query sub-users by parent contact: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sub-user row: %w", err)
		}
		users = append(users, *user)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating sub-user rows: %w", rows.Err())
	}
	return users, nil
}

func (r *PgxUserRepository) TopLevelContactExists(ctx context.Context, channel domain.ContactChannel, contact string) (bool, error) {
	column := "email"
	if channel == domain.ChannelPhone {
		column = "phone"
	}
	query := fmt.Sprintf(`SELECT EXISTS (
		SELECT 1 FROM users WHERE parent_id IS NULL AND %s = $1
	);`, column)
	var exists bool
	if err := r.db.QueryRow(ctx, query, contact).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check top-level %s uniqueness: %w", column, err)
	}
	return exists, nil
}

func (r *PgxUserRepository) FindUsersByAddBy(ctx context.Context, addByID int64, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT` + userColumns + userFromClause + `
		WHERE u.add_by_id = $1 AND u.parent_id IS NULL
		ORDER BY u.created_at DESC
		LIMIT $2 OFFSET $3;`
	rows, err := r.db.Query(ctx, query, addByID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by registrar: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *user)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}
	return users, nil
}

const insertUserQuery = `
	INSERT INTO users (
		username, email, phone, password_hash, first_name, last_name,
		role_id, parent_id, add_by_id, payment_status
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id, created_at, updated_at;`

func insertUser(ctx context.Context, q interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}, user *domain.User) error {
	err := q.QueryRow(ctx, insertUserQuery,
		user.Username,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Role.RoleID,
		user.ParentID,
		user.AddByID,
		user.PaymentStatus,
	).Scan(&user.UserID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PgxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if err := insertUser(ctx, r.db, user); err != nil {
		return fmt.Errorf("user creation failed: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) CreateUserWithProfile(ctx context.Context, user *domain.User, profile *domain.UserProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertUser(ctx, tx, user); err != nil {
		return fmt.Errorf("user creation failed: %w", err)
	}

	profile.UserID = user.UserID
	err = tx.QueryRow(ctx, `
		INSERT INTO user_profiles (
			user_id, name_en, name_bn, phone, email, nid, guardian_nid,
			guardian_phone, guardian_email, relationship,
			father_name_en, father_name_bn, mother_name_en, mother_name_bn,
			spouse_name_en, spouse_name_bn, occupation, blood_group, date_of_birth
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at, updated_at;`,
		profile.UserID, profile.NameEn, profile.NameBn, profile.Phone, profile.Email,
		profile.NID, profile.GuardianNID, profile.GuardianPhone, profile.GuardianEmail,
		profile.Relationship,
		profile.FatherNameEn, profile.FatherNameBn, profile.MotherNameEn, profile.MotherNameBn,
		profile.SpouseNameEn, profile.SpouseNameBn, profile.Occupation, profile.BloodGroup,
		profile.DateOfBirth,
	).Scan(&profile.ProfileID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("user profile creation failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit user with profile: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) SetChannelCode(ctx context.Context, userID int64, channel domain.ContactChannel, code string, sentAt time.Time) error {
	query := `UPDATE users SET email_code = $1, email_code_sent_at = $2, updated_at = now() WHERE id = $3;`
	if channel == domain.ChannelPhone {
		query = `UPDATE users SET phone_code = $1, phone_code_sent_at = $2, updated_at = now() WHERE id = $3;`
	}
	cmdTag, err := r.db.Exec(ctx, query, code, sentAt, userID)
	if err != nil {
		return fmt.Errorf("failed to store %s code: %w", channel, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) MarkChannelVerified(ctx context.Context, userID int64, channel domain.ContactChannel) error {
	query := `UPDATE users
		SET email_verified = TRUE, email_code = NULL, email_code_sent_at = NULL, updated_at = now()
		WHERE id = $1;`
	if channel == domain.ChannelPhone {
		query = `UPDATE users
			SET phone_verified = TRUE, phone_code = NULL, phone_code_sent_at = NULL, updated_at = now()
			WHERE id = $1;`
	}
	cmdTag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to mark %s verified: %w", channel, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetApproval writes the approved/rejected pair together so the two flags
// can never both end up true.
func (r *PgxUserRepository) SetApproval(ctx context.Context, userID int64, approved bool, actorID int64, at time.Time) error {
	var cmdTag pgconn.CommandTag
	var err error
	if approved {
		cmdTag, err = r.db.Exec(ctx, `
			UPDATE users
			SET approved = TRUE, rejected = FALSE, approved_by_id = $1, approved_at = $2, updated_at = now()
			WHERE id = $3;`, actorID, at, userID)
	} else {
		cmdTag, err = r.db.Exec(ctx, `
			UPDATE users
			SET rejected = TRUE, approved = FALSE, rejected_by_id = $1, rejected_at = $2, updated_at = now()
			WHERE id = $3;`, actorID, at, userID)
	}
	if err != nil {
		return fmt.Errorf("failed to record approval state: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) SetPostponed(ctx context.Context, userID int64, postponed bool) error {
	// The eligibility guards live in the WHERE clause so a concurrent
	// rejection or payment reversal cannot slip between check and write.
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users SET postponed = $1, updated_at = now()
		WHERE id = $2
		  AND approved AND NOT rejected
		  AND (email_verified OR phone_verified)
		  AND payment_status = $3;`, postponed, userID, domain.PaymentPaid)
	if err != nil {
		return fmt.Errorf("failed to set postponed flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1);`, userID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check user existence: %w", err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrConflict
	}
	return nil
}

func (r *PgxUserRepository) UpdateNames(ctx context.Context, userID int64, firstName, lastName, nameBn string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE users SET first_name = $1, last_name = $2, updated_at = now() WHERE id = $3;`,
		firstName, lastName, userID)
	if err != nil {
		return fmt.Errorf("failed to update user names: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	// Accounts without a profile (data collectors) legitimately match zero rows.
	_, err = tx.Exec(ctx, `
		UPDATE user_profiles SET name_en = $1, name_bn = $2, updated_at = now() WHERE user_id = $3;`,
		firstName+" "+lastName, nameBn, userID)
	if err != nil {
		return fmt.Errorf("failed to update profile names: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit name update: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2;`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID int64) error {
	// Sub-accounts cascade through the parent_id foreign key.
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) FindProfileByUserID(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	var p domain.UserProfile
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name_en, name_bn, phone, email, nid, guardian_nid,
		       guardian_phone, guardian_email, relationship,
		       father_name_en, father_name_bn, mother_name_en, mother_name_bn,
		       spouse_name_en, spouse_name_bn, occupation, blood_group, date_of_birth,
		       created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1;`, userID).Scan(
		&p.ProfileID, &p.UserID, &p.NameEn, &p.NameBn, &p.Phone, &p.Email, &p.NID, &p.GuardianNID,
		&p.GuardianPhone, &p.GuardianEmail, &p.Relationship,
		&p.FatherNameEn, &p.FatherNameBn, &p.MotherNameEn, &p.MotherNameBn,
		&p.SpouseNameEn, &p.SpouseNameBn, &p.Occupation, &p.BloodGroup, &p.DateOfBirth,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile for user %d: %w", userID, err)
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
