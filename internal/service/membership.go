package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/lib/logger/sl"
)

type MembershipService struct {
	log     *slog.Logger
	members MembershipProvider
	users   UserFinder
}

type MembershipChecker interface {
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
}

type MembershipProvider interface {
	MembershipChecker
	AddMember(ctx context.Context, projectID, userID string) error
}

type UserFinder interface {
	UserByEmail(ctx context.Context, email string) (models.User, error)
}

func NewMembershipService(
	log *slog.Logger,
	members MembershipProvider,
	users UserFinder) *MembershipService {
	return &MembershipService{
		log:     log,
		members: members,
		users:   users,
	}
}

// IsMember reports false for ids that cannot name a project.
func (s *MembershipService) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	const op = "service.membership.IsMember"

	if !isProjectID(projectID) || userID == "" {
		return false, nil
	}

	ok, err := s.members.IsMember(ctx, projectID, userID)
	if err != nil {
		s.log.Error("failed to check membership", slog.String("op", op), sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return ok, nil
}

func (s *MembershipService) AddMember(ctx context.Context, projectID, inviterID, inviteeEmail string) error {
	const op = "service.membership.AddMember"

	inviteeEmail = strings.ToLower(strings.TrimSpace(inviteeEmail))

	log := s.log.With(
		slog.String("op", op),
		slog.String("project_id", projectID),
		slog.String("inviter_id", inviterID),
		slog.String("invitee_email", inviteeEmail),
	)

	log.Info("adding project member")

	ok, err := s.IsMember(ctx, projectID, inviterID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		log.Warn("inviter is not a member")
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotProjectMember)
	}

	invitee, err := s.users.UserByEmail(ctx, inviteeEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Warn("invitee not registered")
			return fmt.Errorf("%s: %w", op, apperrors.ErrInviteeNotFound)
		}
		log.Error("failed to look up invitee", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.members.AddMember(ctx, projectID, invitee.ID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			log.Warn("invitee already a member")
		} else {
			log.Error("failed to add member", sl.Err(err))
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("member added", slog.String("user_id", invitee.ID))

	return nil
}

func isProjectID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
