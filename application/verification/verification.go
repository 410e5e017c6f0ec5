package verification

import (
	"context"

	"go.uber.org/zap"

	"github.com/cargomarket/backend/constant"
	"github.com/cargomarket/backend/model"
	activityrepo "github.com/cargomarket/backend/repository/activitylog"
	verificationrepo "github.com/cargomarket/backend/repository/verification"
	"github.com/cargomarket/backend/utils/errors"
	"github.com/cargomarket/backend/utils/logger"
)

// VerificationApp covers both sides of identity verification: users submit
// documents and poll their status, admins review and decide.
type VerificationApp interface {
	Submit(ctx context.Context, userID uint64, req *model.VerificationSubmitRequest) error
	Status(ctx context.Context, userID uint64) (*model.VerificationStatusResponse, error)
	MarkNotificationShown(ctx context.Context, userID uint64) error

	ListPending(ctx context.Context, filter *model.VerificationListFilter) (*model.PageResponse[*model.VerificationEntity], error)
	Approve(ctx context.Context, adminID, verificationID uint64) error
	Reject(ctx context.Context, adminID, verificationID uint64, req *model.VerificationRejectRequest) error
}

type verificationAppImpl struct {
	verificationRepo verificationrepo.VerificationRepository
	activityRepo     activityrepo.ActivityLogRepository
}

func NewVerificationApp(verificationRepo verificationrepo.VerificationRepository, activityRepo activityrepo.ActivityLogRepository) VerificationApp {
	return &verificationAppImpl{verificationRepo: verificationRepo, activityRepo: activityRepo}
}

// Submit files (or re-files) a verification request. Allowed only when the
// user has no request yet or the previous one was rejected; a pending or
// approved request cannot be replaced.
func (s *verificationAppImpl) Submit(ctx context.Context, userID uint64, req *model.VerificationSubmitRequest) error {
	existing, err := s.verificationRepo.GetByUserID(ctx, userID)
	if err != nil {
		logger.Error("[Submit] err verificationRepo.GetByUserID", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if existing != nil && existing.State != constant.VerificationStateRejected {
		return errors.SetCustomError(constant.ErrVerificationPending)
	}

	_, err = s.verificationRepo.Insert(ctx, &model.VerificationEntity{
		UserID:       userID,
		State:        constant.VerificationStatePending,
		DocumentType: req.DocumentType,
		DocumentID:   req.DocumentID,
		CompanyName:  req.CompanyName,
	})
	if err != nil {
		logger.Error("[Submit] err verificationRepo.Insert", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *verificationAppImpl) Status(ctx context.Context, userID uint64) (*model.VerificationStatusResponse, error) {
	entity, err := s.verificationRepo.GetByUserID(ctx, userID)
	if err != nil {
		logger.Error("[Status] err verificationRepo.GetByUserID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return &model.VerificationStatusResponse{State: constant.VerificationStateNone}, nil
	}

	return &model.VerificationStatusResponse{
		State:          entity.State,
		Notes:          entity.Notes,
		HasNewDecision: entity.DecidedAt != nil && entity.NotifiedAt == nil,
	}, nil
}

// MarkNotificationShown acknowledges a decision so the profile page stops
// surfacing it as new.
func (s *verificationAppImpl) MarkNotificationShown(ctx context.Context, userID uint64) error {
	if err := s.verificationRepo.MarkNotified(ctx, userID); err != nil {
		logger.Error("[MarkNotificationShown] err verificationRepo.MarkNotified", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *verificationAppImpl) ListPending(ctx context.Context, filter *model.VerificationListFilter) (*model.PageResponse[*model.VerificationEntity], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}

	items, total, err := s.verificationRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListPending] err verificationRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.PageResponse[*model.VerificationEntity]{
		Items: items, TotalCount: total, Page: filter.Page, PerPage: filter.Limit,
	}, nil
}

func (s *verificationAppImpl) Approve(ctx context.Context, adminID, verificationID uint64) error {
	return s.decide(ctx, adminID, verificationID, constant.VerificationStateApproved, "", "admin.verification.approve")
}

func (s *verificationAppImpl) Reject(ctx context.Context, adminID, verificationID uint64, req *model.VerificationRejectRequest) error {
	return s.decide(ctx, adminID, verificationID, constant.VerificationStateRejected, req.Notes, "admin.verification.reject")
}

// decide moves a pending request to its terminal state and resets the
// notification flag so the owner sees the outcome once.
func (s *verificationAppImpl) decide(ctx context.Context, adminID, verificationID uint64, state constant.VerificationState, notes, action string) error {
	entity, err := s.verificationRepo.GetByID(ctx, verificationID)
	if err != nil {
		logger.Error("[decide] err verificationRepo.GetByID", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if entity.State != constant.VerificationStatePending {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	if err := s.verificationRepo.Decide(ctx, verificationID, state, notes); err != nil {
		logger.Error("[decide] err verificationRepo.Decide", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	entry := &model.ActivityLog{UserID: adminID, Action: action, Entity: "verification", EntityID: verificationID}
	if err := s.activityRepo.Insert(ctx, entry); err != nil {
		logger.Error("[decide] err activityRepo.Insert", zap.String("error", err.Error()))
	}
	return nil
}
