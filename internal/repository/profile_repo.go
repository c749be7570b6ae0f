package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"nutriguide/internal/domain"
)

// ProfileRepository persists interview profiles. Not-found surfaces as
// pgx.ErrNoRows, which callers treat as "interview still required".
type ProfileRepository interface {
	Save(ctx context.Context, profile domain.Profile) error
	Get(ctx context.Context, userID string) (domain.Profile, error)
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

func (r *PgProfileRepository) Save(ctx context.Context, profile domain.Profile) error {
	const query = `
		INSERT INTO profiles (user_id, age, gender, weight, height, goals, allergies, activity_level, additional_info, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			weight = EXCLUDED.weight,
			height = EXCLUDED.height,
			goals = EXCLUDED.goals,
			allergies = EXCLUDED.allergies,
			activity_level = EXCLUDED.activity_level,
			additional_info = EXCLUDED.additional_info,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		profile.UserID,
		profile.Age,
		genderValue(profile.Gender),
		profile.Weight,
		profile.Height,
		goalStrings(profile.Goals),
		allergyStrings(profile.Allergies),
		profile.ActivityLevel,
		profile.AdditionalInfo,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return err
}

func (r *PgProfileRepository) Get(ctx context.Context, userID string) (domain.Profile, error) {
	const query = `
		SELECT user_id, age, gender, weight, height, goals, allergies, activity_level, additional_info, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	var (
		profile   domain.Profile
		gender    *string
		goals     []string
		allergies []string
	)
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Age,
		&gender,
		&profile.Weight,
		&profile.Height,
		&goals,
		&allergies,
		&profile.ActivityLevel,
		&profile.AdditionalInfo,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return domain.Profile{}, err
	}
	if gender != nil {
		g := domain.Gender(*gender)
		profile.Gender = &g
	}
	if goals != nil {
		profile.Goals = make([]domain.GoalTag, len(goals))
		for i, g := range goals {
			profile.Goals[i] = domain.GoalTag(g)
		}
	}
	if allergies != nil {
		profile.Allergies = make([]domain.AllergyTag, len(allergies))
		for i, a := range allergies {
			profile.Allergies[i] = domain.AllergyTag(a)
		}
	}
	return profile, nil
}

func genderValue(g *domain.Gender) *string {
	if g == nil {
		return nil
	}
	s := string(*g)
	return &s
}

func goalStrings(goals []domain.GoalTag) []string {
	if goals == nil {
		return nil
	}
	out := make([]string, len(goals))
	for i, g := range goals {
		out[i] = string(g)
	}
	return out
}

func allergyStrings(allergies []domain.AllergyTag) []string {
	if allergies == nil {
		return nil
	}
	out := make([]string, len(allergies))
	for i, a := range allergies {
		out[i] = string(a)
	}
	return out
}
