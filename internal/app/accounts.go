package app

import (
	"context"
	"fmt"
	"time"

	"quizhub/internal/domain"
)

// AccountService covers registration, login and password flows for both
// users (quiz authors) and players.
type AccountService struct {
	users   UserRepository
	players PlayerRepository
	hasher  PasswordHasher
}

func NewAccountService(users UserRepository, players PlayerRepository, hasher PasswordHasher) *AccountService {
	return &AccountService{users: users, players: players, hasher: hasher}
}

func (s *AccountService) RegisterUser(ctx context.Context, username, email, password string, dob time.Time) (int64, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	return s.users.Create(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		DateOfBirth:  dob,
	})
}

func (s *AccountService) User(ctx context.Context, id int64) (domain.User, bool, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AccountService) UserByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	return s.users.GetByEmail(ctx, email)
}

func (s *AccountService) UpdateUser(ctx context.Context, user domain.User) (int64, error) {
	return s.users.Update(ctx, user)
}

func (s *AccountService) DeleteUser(ctx context.Context, id int64) (int64, error) {
	return s.users.Delete(ctx, id)
}

func (s *AccountService) UserUsernames(ctx context.Context) ([]string, error) {
	return s.users.ListUsernames(ctx)
}

// UserLogin returns the account on a matching email/password pair. Unknown
// email and wrong password collapse into the same error on purpose.
func (s *AccountService) UserLogin(ctx context.Context, email, password string) (domain.User, error) {
	user, ok, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AccountService) ChangeUserPassword(ctx context.Context, email, newPassword string) (int64, error) {
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePasswordByEmail(ctx, email, hash)
}

// RegisterPlayer pre-checks username/email uniqueness before inserting, so a
// duplicate registration yields ErrPlayerExists rather than a storage error.
// The check and the insert are two statements; concurrent duplicates are
// caught by the unique constraints and surface as a storage error instead.
func (s *AccountService) RegisterPlayer(ctx context.Context, username, email, password string, dob time.Time) (int64, error) {
	exists, err := s.players.CheckExisting(ctx, username, email, 0)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, domain.ErrPlayerExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	return s.players.Create(ctx, domain.Player{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		DateOfBirth:  dob,
	})
}

func (s *AccountService) Player(ctx context.Context, id int64) (domain.Player, bool, error) {
	return s.players.GetByID(ctx, id)
}

func (s *AccountService) PlayerByEmail(ctx context.Context, email string) (domain.Player, bool, error) {
	return s.players.GetByEmail(ctx, email)
}

func (s *AccountService) Players(ctx context.Context) ([]domain.Player, error) {
	return s.players.List(ctx)
}

func (s *AccountService) PlayerUsernames(ctx context.Context) ([]string, error) {
	return s.players.ListUsernames(ctx)
}

// UpdatePlayer re-runs the uniqueness pre-check excluding the player itself.
func (s *AccountService) UpdatePlayer(ctx context.Context, player domain.Player) (int64, error) {
	exists, err := s.players.CheckExisting(ctx, player.Username, player.Email, player.ID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, domain.ErrPlayerExists
	}
	return s.players.Update(ctx, player)
}

func (s *AccountService) DeletePlayer(ctx context.Context, id int64) (int64, error) {
	return s.players.Delete(ctx, id)
}

func (s *AccountService) PlayerLogin(ctx context.Context, email, password string) (domain.Player, error) {
	player, ok, err := s.players.GetByEmail(ctx, email)
	if err != nil {
		return domain.Player{}, err
	}
	if !ok {
		return domain.Player{}, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(player.PasswordHash, password); err != nil {
		return domain.Player{}, domain.ErrInvalidCredentials
	}
	return player, nil
}

func (s *AccountService) ChangePlayerPassword(ctx context.Context, playerID int64, newPassword string) (int64, error) {
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	return s.players.UpdatePassword(ctx, playerID, hash)
}
