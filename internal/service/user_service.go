package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tienda/shophub/internal/model"
	"tienda/shophub/internal/repository"
	"tienda/shophub/internal/validate"
	"tienda/shophub/pkg/crypto"
)

// UserPatch is a partial update. Nil fields are left untouched.
type UserPatch struct {
	ID       *uint   `json:"id"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"is_active"`
	Role     *string `json:"role"`
}

type UserService interface {
	GetMe(ctx context.Context, caller *model.User) (*model.User, error)
	GetUser(ctx context.Context, caller *model.User, targetID uint) (*model.User, error)
	ListUsers(ctx context.Context, caller *model.User) ([]model.User, error)
	// Update applies the patch. The returned bool is true when the patch
	// deactivated the account, which callers report as a logout.
	Update(ctx context.Context, caller *model.User, targetID uint, patch UserPatch) (*model.User, bool, error)
	ChangeRole(ctx context.Context, caller *model.User, targetID uint, roleLabel string) (*model.User, error)
	Delete(ctx context.Context, caller *model.User, targetID uint) error
}

type userService struct {
	userRepo repository.UserRepository
	roles    model.RoleMapping
}

func NewUserService(userRepo repository.UserRepository, roles model.RoleMapping) UserService {
	return &userService{userRepo: userRepo, roles: roles}
}

func (s *userService) GetMe(ctx context.Context, caller *model.User) (*model.User, error) {
	return s.getUser(ctx, caller.ID)
}

func (s *userService) GetUser(ctx context.Context, caller *model.User, targetID uint) (*model.User, error) {
	if !RequireSelfOrRole(caller, targetID, model.RoleAdmin) {
		return nil, ErrForbidden
	}
	return s.getUser(ctx, targetID)
}

func (s *userService) ListUsers(ctx context.Context, caller *model.User) ([]model.User, error) {
	if !RequireRole(caller, model.RoleAdmin) {
		return nil, ErrForbidden
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, caller *model.User, targetID uint, patch UserPatch) (*model.User, bool, error) {
	if !RequireSelfOrRole(caller, targetID, model.RoleAdmin) {
		return nil, false, ErrForbidden
	}

	// The id is never mutable; the role only moves through ChangeRole.
	if patch.ID != nil && *patch.ID != targetID {
		return nil, false, ErrForbidden
	}
	if patch.Role != nil && !RequireRole(caller, model.RoleAdmin) {
		return nil, false, ErrForbidden
	}
	if patch.Role != nil && IsProtectedSuperAdmin(targetID) {
		return nil, false, ErrForbidden
	}

	user, err := s.getUser(ctx, targetID)
	if err != nil {
		return nil, false, err
	}

	// Deactivation short-circuits: the flag is flipped and nothing else in
	// the patch is applied, so the caller can report the logout.
	if patch.IsActive != nil && !*patch.IsActive {
		user.IsActive = false
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, false, fmt.Errorf("deactivate user: %w", err)
		}
		return user, true, nil
	}

	if err := s.applyPatch(ctx, user, patch); err != nil {
		return nil, false, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, false, fmt.Errorf("update user: %w", err)
	}
	return user, false, nil
}

func (s *userService) applyPatch(ctx context.Context, user *model.User, patch UserPatch) error {
	ve := &ValidationError{}
	if patch.Email != nil && !validate.Email(*patch.Email) {
		ve.add("email", "email address is not valid")
	}
	if patch.Phone != nil && *patch.Phone != "" && !validate.Phone(*patch.Phone) {
		ve.add("phone", "phone number is not valid")
	}
	if patch.Password != nil {
		if msgs := validate.Password(*patch.Password); len(msgs) > 0 {
			ve.add("password", msgs...)
		}
	}
	if patch.Username != nil && *patch.Username == "" {
		ve.add("username", "username is required")
	}
	if ve.any() {
		return ve
	}

	if patch.Username != nil && *patch.Username != user.Username {
		if _, err := s.userRepo.GetByUsername(ctx, *patch.Username); err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check username: %w", err)
		}
		user.Username = *patch.Username
	}
	if patch.Email != nil && *patch.Email != user.Email {
		if _, err := s.userRepo.GetByEmail(ctx, *patch.Email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check email: %w", err)
		}
		user.Email = *patch.Email
	}
	if patch.Password != nil {
		hash, err := crypto.HashPassword(*patch.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.Password = hash
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Address != nil {
		user.Address = *patch.Address
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}
	if patch.Role != nil {
		role, ok := s.roles.Parse(*patch.Role)
		if !ok {
			ve.add("role", "unknown role")
			return ve
		}
		user.Role = role
	}
	return nil
}

func (s *userService) ChangeRole(ctx context.Context, caller *model.User, targetID uint, roleLabel string) (*model.User, error) {
	if !RequireRole(caller, model.RoleAdmin) {
		return nil, ErrForbidden
	}
	if IsProtectedSuperAdmin(targetID) {
		return nil, ErrForbidden
	}

	role, ok := s.roles.Parse(roleLabel)
	if !ok {
		ve := &ValidationError{}
		ve.add("role", "unknown role")
		return nil, ve
	}

	user, err := s.getUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("change role: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, caller *model.User, targetID uint) error {
	if IsProtectedSuperAdmin(targetID) {
		return ErrForbidden
	}
	if !RequireSelfOrRole(caller, targetID, model.RoleAdmin) {
		return ErrForbidden
	}

	if _, err := s.getUser(ctx, targetID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *userService) getUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

var _ UserService = (*userService)(nil)
