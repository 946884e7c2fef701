package main

import (
	"context"
	"time"

	"clinicbook/config"
	"clinicbook/infras/postgres"
	"clinicbook/shared/constant"
	"clinicbook/shared/logger"
	"clinicbook/shared/timezone"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedActor    = "seed"
	seedPassword = "password123"

	doctorCount  = 20
	patientCount = 200
)

var specializations = []string{
	"Cardiology",
	"Dermatology",
	"Endocrinology",
	"General Practice",
	"Neurology",
	"Orthopedics",
	"Pediatrics",
	"Psychiatry",
}

var divisions = map[string]map[string][]string{
	"Dhaka": {
		"Dhaka":     {"Dhanmondi", "Gulshan", "Mirpur", "Uttara"},
		"Gazipur":   {"Gazipur Sadar", "Tongi"},
		"Narayanganj": {"Narayanganj Sadar", "Fatullah"},
	},
	"Chattogram": {
		"Chattogram":  {"Kotwali", "Pahartali", "Panchlaish"},
		"Cox's Bazar": {"Cox's Bazar Sadar", "Teknaf"},
	},
	"Sylhet": {
		"Sylhet":      {"Sylhet Sadar", "Beanibazar"},
		"Moulvibazar": {"Moulvibazar Sadar", "Sreemangal"},
	},
}

// Seeds the administrative geography, an admin account, doctors with
// profiles and weekly time slots, and a batch of patients. Safe to run
// against an empty database only.
func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	db := postgres.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	gofakeit.Seed(time.Now().UnixNano())

	thanaIDs, err := seedRegions(ctx, db.Write)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed regions")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash seed password")
	}

	if err := seedAdmin(ctx, db.Write, string(hash)); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin")
	}

	specializationIDs, err := seedSpecializations(ctx, db.Write)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed specializations")
	}

	if err := seedDoctors(ctx, db.Write, string(hash), specializationIDs, thanaIDs); err != nil {
		log.Fatal().Err(err).Msg("failed to seed doctors")
	}

	if err := seedPatients(ctx, db.Write, string(hash), thanaIDs); err != nil {
		log.Fatal().Err(err).Msg("failed to seed patients")
	}

	log.Info().Msg("Seed complete.")
}

type thanaRef struct {
	ID         string
	DistrictID string
	DivisionID string
}

func seedRegions(ctx context.Context, db *sqlx.DB) ([]thanaRef, error) {
	var refs []thanaRef

	for divisionName, districts := range divisions {
		divisionID := uuid.NewString()

		if err := insertRegion(ctx, db, "divisions", divisionID, divisionName); err != nil {
			return nil, err
		}

		for districtName, thanas := range districts {
			districtID := uuid.NewString()

			if err := insertRegionWithParent(ctx, db, "districts", "division_id", divisionID, districtID, districtName); err != nil {
				return nil, err
			}

			for _, thanaName := range thanas {
				thanaID := uuid.NewString()

				if err := insertRegionWithParent(ctx, db, "thanas", "district_id", districtID, thanaID, thanaName); err != nil {
					return nil, err
				}

				refs = append(refs, thanaRef{ID: thanaID, DistrictID: districtID, DivisionID: divisionID})
			}
		}
	}

	log.Info().Int("thanas", len(refs)).Msg("regions seeded")

	return refs, nil
}

func insertRegion(ctx context.Context, db *sqlx.DB, table, id, name string) error {
	query := `INSERT INTO ` + table + ` (id, name, created_at, created_by, modified_at, modified_by)
		VALUES ($1, $2, $3, $4, $3, $4)`

	_, err := db.ExecContext(ctx, query, id, name, timezone.Now(), seedActor)

	return err
}

func insertRegionWithParent(ctx context.Context, db *sqlx.DB, table, parentColumn, parentID, id, name string) error {
	query := `INSERT INTO ` + table + ` (id, ` + parentColumn + `, name, created_at, created_by, modified_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $4, $5)`

	_, err := db.ExecContext(ctx, query, id, parentID, name, timezone.Now(), seedActor)

	return err
}

func seedAdmin(ctx context.Context, db *sqlx.DB, passwordHash string) error {
	query := `INSERT INTO users (id, name, email, mobile, password, role, active, created_at, created_by, modified_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $8, $7, $8)`

	_, err := db.ExecContext(ctx, query,
		uuid.NewString(), "Administrator", "admin@clinicbook.local", "+8801700000000",
		passwordHash, constant.RoleAdmin, timezone.Now(), seedActor)

	return err
}

func seedSpecializations(ctx context.Context, db *sqlx.DB) ([]string, error) {
	ids := make([]string, 0, len(specializations))

	query := `INSERT INTO specializations (id, name, created_at, created_by, modified_at, modified_by)
		VALUES ($1, $2, $3, $4, $3, $4)`

	for _, name := range specializations {
		id := uuid.NewString()

		if _, err := db.ExecContext(ctx, query, id, name, timezone.Now(), seedActor); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func seedDoctors(ctx context.Context, db *sqlx.DB, passwordHash string, specializationIDs []string, thanaIDs []thanaRef) error {
	userQuery := `INSERT INTO users (id, name, email, mobile, password, role, division_id, district_id, thana_id, active, created_at, created_by, modified_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, $10, $11, $10, $11)`

	profileQuery := `INSERT INTO doctor_profiles (id, user_id, specialization_id, consultation_fee, experience_years, bio, created_at, created_by, modified_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $7, $8)`

	slotQuery := `INSERT INTO time_slots (id, doctor_id, weekday, start_time, end_time, created_at, created_by, modified_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $6, $7)`

	windows := [][2]string{{"09:00", "12:00"}, {"14:00", "17:00"}}

	for i := 0; i < doctorCount; i++ {
		userID := uuid.NewString()
		thana := thanaIDs[gofakeit.Number(0, len(thanaIDs)-1)]

		_, err := db.ExecContext(ctx, userQuery,
			userID, "Dr. "+gofakeit.Name(), gofakeit.Email(), gofakeit.Phone(),
			passwordHash, constant.RoleDoctor, thana.DivisionID, thana.DistrictID, thana.ID,
			timezone.Now(), seedActor)
		if err != nil {
			return err
		}

		profileID := uuid.NewString()

		_, err = db.ExecContext(ctx, profileQuery,
			profileID, userID, specializationIDs[gofakeit.Number(0, len(specializationIDs)-1)],
			float64(gofakeit.Number(500, 3000)), gofakeit.Number(1, 30), gofakeit.Sentence(12),
			timezone.Now(), seedActor)
		if err != nil {
			return err
		}

		// Monday through Friday, two windows each.
		for weekday := 1; weekday <= 5; weekday++ {
			for _, window := range windows {
				_, err := db.ExecContext(ctx, slotQuery,
					uuid.NewString(), profileID, weekday, window[0], window[1],
					timezone.Now(), seedActor)
				if err != nil {
					return err
				}
			}
		}
	}

	log.Info().Int("doctors", doctorCount).Msg("doctors seeded")

	return nil
}

func seedPatients(ctx context.Context, db *sqlx.DB, passwordHash string, thanaIDs []thanaRef) error {
	query := `INSERT INTO users (id, name, email, mobile, password, role, division_id, district_id, thana_id, active, created_at, created_by, modified_at, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, $10, $11, $10, $11)`

	for i := 0; i < patientCount; i++ {
		thana := thanaIDs[gofakeit.Number(0, len(thanaIDs)-1)]

		_, err := db.ExecContext(ctx, query,
			uuid.NewString(), gofakeit.Name(), gofakeit.Email(), gofakeit.Phone(),
			passwordHash, constant.RolePatient, thana.DivisionID, thana.DistrictID, thana.ID,
			timezone.Now(), seedActor)
		if err != nil {
			return err
		}
	}

	log.Info().Int("patients", patientCount).Msg("patients seeded")

	return nil
}
