package auth

import (
	"context"
	"fmt"
	"pulsecheck-service/internal/app/config"
	"pulsecheck-service/internal/app/contracts"
	"pulsecheck-service/internal/app/models"
	"pulsecheck-service/internal/pkg/dto/requests"
	"pulsecheck-service/internal/pkg/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memClinicianRepo struct {
	clinicians map[string]*models.Clinician
	nextID     int
}

func newMemClinicianRepo() *memClinicianRepo {
	return &memClinicianRepo{clinicians: map[string]*models.Clinician{}}
}

func (r *memClinicianRepo) CreateClinician(_ context.Context, clinician *models.Clinician) (string, error) {
	r.nextID++
	id := fmt.Sprintf("clinician-%d", r.nextID)
	stored := *clinician
	stored.ID = id
	r.clinicians[id] = &stored
	return id, nil
}

func (r *memClinicianRepo) FindByEmail(_ context.Context, email string) (*models.Clinician, error) {
	for _, c := range r.clinicians {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memClinicianRepo) FindByID(_ context.Context, clinicianID string) (*models.Clinician, error) {
	return r.clinicians[clinicianID], nil
}

func newAuthFixture() (AuthUsecase, *memClinicianRepo) {
	repo := newMemClinicianRepo()
	internalConfig := &config.InternalConfig{
		JWT: config.JWT{Secret: "test-secret", ExpTimeInHour: 1},
	}
	return NewAuthUsecase(repo, internalConfig, zap.NewNop()), repo
}

func registerRequest() *requests.RegisterClinician {
	return &requests.RegisterClinician{
		Name:     "Dr. Test",
		Email:    "doctor@clinic.test",
		Password: "s3cret-pass",
	}
}

func TestAuthUsecase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a hashed password", func(t *testing.T) {
		usecase, repo := newAuthFixture()

		result, err := usecase.Register(ctx, registerRequest())
		require.NoError(t, err)
		assert.NotEmpty(t, result.ClinicianID)

		stored := repo.clinicians[result.ClinicianID]
		require.NotNil(t, stored)
		assert.NotEqual(t, "s3cret-pass", stored.Password)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		usecase, _ := newAuthFixture()

		_, err := usecase.Register(ctx, registerRequest())
		require.NoError(t, err)

		_, err = usecase.Register(ctx, registerRequest())
		require.Error(t, err)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		usecase, _ := newAuthFixture()

		request := registerRequest()
		request.Password = "short"
		_, err := usecase.Register(ctx, request)
		require.Error(t, err)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials yield a parseable token", func(t *testing.T) {
		usecase, _ := newAuthFixture()

		registered, err := usecase.Register(ctx, registerRequest())
		require.NoError(t, err)

		result, err := usecase.Login(ctx, &requests.LoginClinician{
			Email:    "doctor@clinic.test",
			Password: "s3cret-pass",
		})
		require.NoError(t, err)

		clinicianID, err := utils.ParseClinicianJWT(result.Token, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, registered.ClinicianID, clinicianID)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		usecase, _ := newAuthFixture()

		_, err := usecase.Register(ctx, registerRequest())
		require.NoError(t, err)

		_, err = usecase.Login(ctx, &requests.LoginClinician{
			Email:    "doctor@clinic.test",
			Password: "wrong-pass",
		})
		require.Error(t, err)
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		usecase, _ := newAuthFixture()

		_, err := usecase.Login(ctx, &requests.LoginClinician{
			Email:    "nobody@clinic.test",
			Password: "whatever-pass",
		})
		require.Error(t, err)
	})
}

var _ contracts.ClinicianRepository = (*memClinicianRepo)(nil)
