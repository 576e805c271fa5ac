package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopfeed/backend/internal/domain/identity"
	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/shopfeed/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return translate(conn(ctx, r.db).Create(model).Error, "A user with this email already exists")
}

// Update updates an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	result := updateAll(ctx, r.db, model)
	if result.Error != nil {
		return translate(result.Error, "A user with this email already exists")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, "")
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	if err := conn(ctx, r.db).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&model).Error; err != nil {
		return nil, translate(err, "")
	}
	return model.ToDomain(), nil
}

// GormConfirmationRepository implements ConfirmationRepository using GORM
type GormConfirmationRepository struct {
	db *gorm.DB
}

// NewGormConfirmationRepository creates a new GormConfirmationRepository
func NewGormConfirmationRepository(db *gorm.DB) *GormConfirmationRepository {
	return &GormConfirmationRepository{db: db}
}

// GetOrCreate returns the pending confirmation of the user, creating it when absent
func (r *GormConfirmationRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*identity.EmailConfirmation, error) {
	var model models.EmailConfirmationModel
	err := conn(ctx, r.db).Where("user_id = ?", userID).First(&model).Error
	if err == nil {
		return model.ToDomain(), nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	confirmation, err := identity.NewEmailConfirmation(userID)
	if err != nil {
		return nil, err
	}
	if err := insertGuarded(ctx, r.db, models.EmailConfirmationModelFromDomain(confirmation)); err != nil {
		if isDuplicate(err) {
			// lost a race with a concurrent registration event
			if err := conn(ctx, r.db).Where("user_id = ?", userID).First(&model).Error; err != nil {
				return nil, translate(err, "")
			}
			return model.ToDomain(), nil
		}
		return nil, err
	}
	return confirmation, nil
}

// FindByEmailAndToken finds a pending confirmation by the owner's email and token
func (r *GormConfirmationRepository) FindByEmailAndToken(ctx context.Context, email, token string) (*identity.EmailConfirmation, error) {
	var model models.EmailConfirmationModel
	err := conn(ctx, r.db).
		Joins("JOIN users ON users.id = email_confirmations.user_id").
		Where("users.email = ? AND email_confirmations.token = ?", strings.ToLower(strings.TrimSpace(email)), token).
		First(&model).Error
	if err != nil {
		return nil, translate(err, "")
	}
	return model.ToDomain(), nil
}

// Delete removes a confirmation
func (r *GormConfirmationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.EmailConfirmationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Create stores a new contact
func (r *GormContactRepository) Create(ctx context.Context, contact *identity.Contact) error {
	return translate(conn(ctx, r.db).Create(models.ContactModelFromDomain(contact)).Error, "Contact already exists")
}

// Update saves a contact
func (r *GormContactRepository) Update(ctx context.Context, contact *identity.Contact) error {
	result := updateAll(ctx, r.db, models.ContactModelFromDomain(contact))
	if result.Error != nil {
		return translate(result.Error, "Contact already exists")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes the contact when it belongs to the user
func (r *GormContactRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.ContactModel{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByIDForUser finds a contact owned by the user
func (r *GormContactRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*identity.Contact, error) {
	var model models.ContactModel
	if err := conn(ctx, r.db).First(&model, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, translate(err, "")
	}
	return model.ToDomain(), nil
}

// FindByUser lists the user's contacts
func (r *GormContactRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]identity.Contact, error) {
	var contactModels []models.ContactModel
	if err := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&contactModels).Error; err != nil {
		return nil, err
	}
	contacts := make([]identity.Contact, len(contactModels))
	for i := range contactModels {
		contacts[i] = *contactModels[i].ToDomain()
	}
	return contacts, nil
}
