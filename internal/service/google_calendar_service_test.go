package service

import (
	"context"
	"testing"

	"clinic-management-api/config"
	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCredentialRepo struct {
	credentials map[uuid.UUID]*entity.CalendarCredential
}

func (f *fakeCredentialRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.CalendarCredential, error) {
	return f.credentials[userID], nil
}

func (f *fakeCredentialRepo) Save(ctx context.Context, db *gorm.DB, credential *entity.CalendarCredential) error {
	f.credentials[credential.UserID] = credential
	return nil
}

func connectedCredential(userID uuid.UUID, email string) *entity.CalendarCredential {
	active := true
	return &entity.CalendarCredential{
		UserID:        userID,
		Provider:      "google",
		RefreshToken:  "refresh-token",
		CalendarEmail: email,
		IsActive:      &active,
	}
}

func newResolverUnderTest(admin *entity.User, credentials map[uuid.UUID]*entity.CalendarCredential) CalendarService {
	return NewGoogleCalendarService(
		nil,
		testLogger(),
		config.GoogleConfig{Timezone: "America/Mexico_City"},
		&fakeUserRepo{admin: admin},
		&fakeCredentialRepo{credentials: credentials},
	)
}

func TestResolveOwner_AdminOwnsProviderAttends(t *testing.T) {
	admin := &entity.User{ID: uuid.New()}
	providerID := uuid.New()

	svc := newResolverUnderTest(admin, map[uuid.UUID]*entity.CalendarCredential{
		admin.ID:   connectedCredential(admin.ID, "admin@clinic.test"),
		providerID: connectedCredential(providerID, "provider@clinic.test"),
	})

	owner, err := svc.ResolveOwner(context.Background(), providerID, uuid.New())
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, admin.ID, owner.OwnerID)
	assert.Equal(t, []string{"provider@clinic.test"}, owner.AttendeeEmails)
}

func TestResolveOwner_AdminOwnsAloneWhenProviderUnconnected(t *testing.T) {
	admin := &entity.User{ID: uuid.New()}

	svc := newResolverUnderTest(admin, map[uuid.UUID]*entity.CalendarCredential{
		admin.ID: connectedCredential(admin.ID, "admin@clinic.test"),
	})

	owner, err := svc.ResolveOwner(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, admin.ID, owner.OwnerID)
	assert.Empty(t, owner.AttendeeEmails)
}

func TestResolveOwner_ProviderOwnsWhenAdminUnconnected(t *testing.T) {
	admin := &entity.User{ID: uuid.New()}
	providerID := uuid.New()

	svc := newResolverUnderTest(admin, map[uuid.UUID]*entity.CalendarCredential{
		providerID: connectedCredential(providerID, "provider@clinic.test"),
	})

	owner, err := svc.ResolveOwner(context.Background(), providerID, uuid.New())
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, providerID, owner.OwnerID)
	assert.Empty(t, owner.AttendeeEmails)
}

func TestResolveOwner_NobodyConnectedMeansSkip(t *testing.T) {
	svc := newResolverUnderTest(&entity.User{ID: uuid.New()}, map[uuid.UUID]*entity.CalendarCredential{})

	owner, err := svc.ResolveOwner(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, owner)
}

func TestResolveOwner_InactiveCredentialIsNotConnected(t *testing.T) {
	admin := &entity.User{ID: uuid.New()}
	providerID := uuid.New()

	disabled := connectedCredential(admin.ID, "admin@clinic.test")
	inactive := false
	disabled.IsActive = &inactive

	svc := newResolverUnderTest(admin, map[uuid.UUID]*entity.CalendarCredential{
		admin.ID:   disabled,
		providerID: connectedCredential(providerID, "provider@clinic.test"),
	})

	owner, err := svc.ResolveOwner(context.Background(), providerID, uuid.New())
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, providerID, owner.OwnerID)
}
