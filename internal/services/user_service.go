package services

import (
	"log"
	"strconv"
	"strings"

	"freight-backend/internal/auth"
	"freight-backend/internal/models"
	"freight-backend/internal/notify"
	"freight-backend/internal/store"
	"freight-backend/internal/timeutil"
)

// UserService owns the users collection and login.
type UserService struct {
	Store store.Store
	JWT   *auth.JWTManager
	Hub   *notify.Hub
}

func NewUserService(s store.Store, jwtManager *auth.JWTManager, hub *notify.Hub) *UserService {
	return &UserService{Store: s, JWT: jwtManager, Hub: hub}
}

// Bootstrap seeds the default admin account when the users collection is
// empty, so a fresh deployment is always reachable.
func (s *UserService) Bootstrap() error {
	users, err := s.load()
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	admin := models.User{
		ID:        strconv.FormatInt(nextStamp(), 10),
		Username:  models.DefaultAdminUsername,
		Password:  models.DefaultAdminPassword,
		Role:      models.RoleAdmin,
		CreatedAt: timeutil.Now(),
	}
	if err := s.Store.Save(store.CollectionUsers, []models.User{admin}); err != nil {
		return err
	}
	log.Printf("[Users] Seeded default admin account %q", admin.Username)
	return nil
}

// Login checks username and password and issues a JWT on success.
func (s *UserService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	users, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Username != req.Username || users[i].Password != req.Password {
			continue
		}
		token, err := s.JWT.GenerateToken(&users[i])
		if err != nil {
			return nil, err
		}
		user := users[i].Redacted()
		return &models.AuthResponse{Token: token, User: &user}, nil
	}
	return nil, models.NewValidationError("credentials", "invalid username or password")
}

// Create adds a new account. Usernames are unique.
func (s *UserService) Create(req *models.CreateUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, models.NewValidationError("username", "username is required")
	}
	if len(req.Password) < 4 {
		return nil, models.NewValidationError("password", "password must be at least 4 characters")
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		return nil, models.NewValidationError("role", "unknown role")
	}

	users, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, req.Username) {
			return nil, models.NewValidationError("username", "username is already taken")
		}
	}

	user := models.User{
		ID:        strconv.FormatInt(nextStamp(), 10),
		Username:  strings.TrimSpace(req.Username),
		Password:  req.Password,
		Role:      role,
		CreatedAt: timeutil.Now(),
	}
	users = append(users, user)
	if err := s.Store.Save(store.CollectionUsers, users); err != nil {
		return nil, err
	}

	s.Hub.Publish(store.CollectionUsers, timeutil.Now())
	return &user, nil
}

// Delete removes an account. A user cannot delete themselves.
func (s *UserService) Delete(id, requesterID string) error {
	if id == requesterID {
		return models.NewValidationError("id", "cannot delete your own account")
	}

	users, err := s.load()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID != id {
			continue
		}
		users = append(users[:i], users[i+1:]...)
		if err := s.Store.Save(store.CollectionUsers, users); err != nil {
			return err
		}
		s.Hub.Publish(store.CollectionUsers, timeutil.Now())
		return nil
	}
	return models.NewNotFoundError("user", id)
}

// List returns all accounts. Passwords never serialize (json tag on the model).
func (s *UserService) List() ([]models.User, error) {
	return s.load()
}

func (s *UserService) load() ([]models.User, error) {
	var users []models.User
	if err := s.Store.Load(store.CollectionUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}
