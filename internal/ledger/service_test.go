package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iconnecthq/iconnect/internal/auth"
	"github.com/iconnecthq/iconnect/internal/fault"
	"github.com/iconnecthq/iconnect/internal/ledger"
	"github.com/iconnecthq/iconnect/internal/request"
)

func adminCtx(uid uuid.UUID) context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{
		UID:   uid.String(),
		Email: "admin@example.com",
		Admin: true,
	})
}

func userCtx(uid uuid.UUID) context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{
		UID:   uid.String(),
		Email: "user@example.com",
	})
}

func TestService_ApproveRequest(t *testing.T) {
	adminID := uuid.New()
	requestID := uuid.New()

	type testCase struct {
		name      string
		ctx       context.Context
		setupMock func(repo *ledger.MockRepository, reqs *ledger.MockTransitioner)
		wantKind  fault.Kind
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			ctx:  adminCtx(adminID),
			setupMock: func(repo *ledger.MockRepository, reqs *ledger.MockTransitioner) {
				reqs.EXPECT().
					Transition(gomock.Any(), requestID, request.StatusApproved).
					Return(&request.Request{ID: requestID, Status: request.StatusApproved}, nil)
				repo.EXPECT().
					AppendEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entry *ledger.Entry) error {
						assert.Equal(t, ledger.ActionApproveRequest, entry.Action)
						assert.Equal(t, adminID, entry.ActorID)
						assert.Equal(t, requestID, entry.SubjectID)
						assert.Nil(t, entry.Amount)
						entry.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:     "NonAdminDenied",
			ctx:      userCtx(uuid.New()),
			wantErr:  true,
			wantKind: fault.PermissionDenied,
		},
		{
			name:     "AnonymousDenied",
			ctx:      context.Background(),
			wantErr:  true,
			wantKind: fault.PermissionDenied,
		},
		{
			name: "RequestNotFound",
			ctx:  adminCtx(adminID),
			setupMock: func(repo *ledger.MockRepository, reqs *ledger.MockTransitioner) {
				reqs.EXPECT().
					Transition(gomock.Any(), requestID, request.StatusApproved).
					Return(nil, fault.New(fault.NotFound, "Request %s not found.", requestID))
			},
			wantErr:  true,
			wantKind: fault.NotFound,
		},
		{
			name: "AlreadyApproved",
			ctx:  adminCtx(adminID),
			setupMock: func(repo *ledger.MockRepository, reqs *ledger.MockTransitioner) {
				reqs.EXPECT().
					Transition(gomock.Any(), requestID, request.StatusApproved).
					Return(nil, fault.New(fault.FailedPrecondition, "request is approved"))
			},
			wantErr:  true,
			wantKind: fault.FailedPrecondition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			reqs := ledger.NewMockTransitioner(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo, reqs)
			}

			svc := ledger.NewService(repo, reqs)
			result, err := svc.ApproveRequest(tt.ctx, requestID)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, fault.IsKind(err, tt.wantKind), "got kind %v", fault.KindOf(err))
				assert.Empty(t, result)

				return
			}

			require.NoError(t, err)
			assert.Contains(t, result, requestID.String())
			assert.Contains(t, result, "approved")
		})
	}
}

func TestService_RejectRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adminID := uuid.New()
	requestID := uuid.New()

	repo := ledger.NewMockRepository(ctrl)
	reqs := ledger.NewMockTransitioner(ctrl)

	reqs.EXPECT().
		Transition(gomock.Any(), requestID, request.StatusRejected).
		Return(&request.Request{ID: requestID, Status: request.StatusRejected}, nil)
	repo.EXPECT().
		AppendEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *ledger.Entry) error {
			assert.Equal(t, ledger.ActionRejectRequest, entry.Action)
			return nil
		})

	svc := ledger.NewService(repo, reqs)
	result, err := svc.RejectRequest(adminCtx(adminID), requestID)

	require.NoError(t, err)
	assert.Contains(t, result, "rejected")
}

func TestService_AdjustCredits(t *testing.T) {
	adminID := uuid.New()
	userID := uuid.New()

	type args struct {
		amount int64
	}

	type testCase struct {
		name       string
		ctx        context.Context
		args       args
		setupMock  func(repo *ledger.MockRepository)
		wantKind   fault.Kind
		wantErr    bool
		wantResult string
	}

	tests := []testCase{
		{
			name: "Grant",
			ctx:  adminCtx(adminID),
			args: args{amount: 10},
			setupMock: func(repo *ledger.MockRepository) {
				repo.EXPECT().
					AdjustCredits(gomock.Any(), userID, int64(10)).
					Return(int64(15), nil)
				repo.EXPECT().
					AppendEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entry *ledger.Entry) error {
						assert.Equal(t, ledger.ActionAdjustCredits, entry.Action)
						require.NotNil(t, entry.Amount)
						assert.Equal(t, int64(10), *entry.Amount)
						return nil
					})
			},
			wantResult: fmt.Sprintf("User %s credits adjusted to 15.", userID),
		},
		{
			// Deducting below zero is permitted: 4 - 10 = -6.
			name: "DeductBelowZero",
			ctx:  adminCtx(adminID),
			args: args{amount: -10},
			setupMock: func(repo *ledger.MockRepository) {
				repo.EXPECT().
					AdjustCredits(gomock.Any(), userID, int64(-10)).
					Return(int64(-6), nil)
				repo.EXPECT().
					AppendEntry(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantResult: fmt.Sprintf("User %s credits adjusted to -6.", userID),
		},
		{
			name: "UserNotFound",
			ctx:  adminCtx(adminID),
			args: args{amount: 5},
			setupMock: func(repo *ledger.MockRepository) {
				repo.EXPECT().
					AdjustCredits(gomock.Any(), userID, int64(5)).
					Return(int64(0), fault.New(fault.NotFound, "User %s not found.", userID))
			},
			wantErr:  true,
			wantKind: fault.NotFound,
		},
		{
			name:     "NonAdminDenied",
			ctx:      userCtx(uuid.New()),
			args:     args{amount: 5},
			wantErr:  true,
			wantKind: fault.PermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo, ledger.NewMockTransitioner(ctrl))
			result, err := svc.AdjustCredits(tt.ctx, userID, tt.args.amount)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, fault.IsKind(err, tt.wantKind), "got kind %v", fault.KindOf(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantResult, result)
		})
	}
}

func TestService_PurchaseLead(t *testing.T) {
	buyerID := uuid.New()
	leadID := uuid.New()

	type testCase struct {
		name      string
		ctx       context.Context
		setupMock func(repo *ledger.MockRepository, ptx *ledger.MockPurchaseTx)
		wantKind  fault.Kind
		wantErr   bool
	}

	tests := []testCase{
		{
			// Lead costs 3, buyer holds 5: debit exactly 3 and record the buyer.
			name: "SufficientCredits",
			ctx:  userCtx(buyerID),
			setupMock: func(repo *ledger.MockRepository, ptx *ledger.MockPurchaseTx) {
				repo.EXPECT().BeginPurchase(gomock.Any()).Return(ptx, nil)
				ptx.EXPECT().LeadCost(gomock.Any(), leadID).Return(int64(3), nil)
				ptx.EXPECT().BalanceForUpdate(gomock.Any(), buyerID).Return(int64(5), nil)
				ptx.EXPECT().Debit(gomock.Any(), buyerID, int64(3)).Return(nil)
				ptx.EXPECT().AddBuyer(gomock.Any(), leadID, buyerID).Return(nil)
				ptx.EXPECT().
					AppendEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entry *ledger.Entry) error {
						assert.Equal(t, ledger.ActionPurchaseLead, entry.Action)
						assert.Equal(t, buyerID, entry.ActorID)
						assert.Equal(t, leadID, entry.SubjectID)
						require.NotNil(t, entry.Amount)
						assert.Equal(t, int64(3), *entry.Amount)
						return nil
					})
				ptx.EXPECT().Commit().Return(nil)
				ptx.EXPECT().Rollback().Return(nil).AnyTimes()
			},
		},
		{
			// Lead costs 3, buyer holds 2: nothing is written.
			name: "InsufficientCredits",
			ctx:  userCtx(buyerID),
			setupMock: func(repo *ledger.MockRepository, ptx *ledger.MockPurchaseTx) {
				repo.EXPECT().BeginPurchase(gomock.Any()).Return(ptx, nil)
				ptx.EXPECT().LeadCost(gomock.Any(), leadID).Return(int64(3), nil)
				ptx.EXPECT().BalanceForUpdate(gomock.Any(), buyerID).Return(int64(2), nil)
				ptx.EXPECT().Rollback().Return(nil)
			},
			wantErr:  true,
			wantKind: fault.FailedPrecondition,
		},
		{
			name: "LeadNotFound",
			ctx:  userCtx(buyerID),
			setupMock: func(repo *ledger.MockRepository, ptx *ledger.MockPurchaseTx) {
				repo.EXPECT().BeginPurchase(gomock.Any()).Return(ptx, nil)
				ptx.EXPECT().
					LeadCost(gomock.Any(), leadID).
					Return(int64(0), fault.New(fault.NotFound, "Lead %s not found.", leadID))
				ptx.EXPECT().Rollback().Return(nil)
			},
			wantErr:  true,
			wantKind: fault.NotFound,
		},
		{
			name: "BuyerAccountNotFound",
			ctx:  userCtx(buyerID),
			setupMock: func(repo *ledger.MockRepository, ptx *ledger.MockPurchaseTx) {
				repo.EXPECT().BeginPurchase(gomock.Any()).Return(ptx, nil)
				ptx.EXPECT().LeadCost(gomock.Any(), leadID).Return(int64(3), nil)
				ptx.EXPECT().
					BalanceForUpdate(gomock.Any(), buyerID).
					Return(int64(0), fault.New(fault.NotFound, "User %s not found.", buyerID))
				ptx.EXPECT().Rollback().Return(nil)
			},
			wantErr:  true,
			wantKind: fault.NotFound,
		},
		{
			name:     "Unauthenticated",
			ctx:      context.Background(),
			wantErr:  true,
			wantKind: fault.Unauthenticated,
		},
		{
			name: "CommitError",
			ctx:  userCtx(buyerID),
			setupMock: func(repo *ledger.MockRepository, ptx *ledger.MockPurchaseTx) {
				repo.EXPECT().BeginPurchase(gomock.Any()).Return(ptx, nil)
				ptx.EXPECT().LeadCost(gomock.Any(), leadID).Return(int64(1), nil)
				ptx.EXPECT().BalanceForUpdate(gomock.Any(), buyerID).Return(int64(1), nil)
				ptx.EXPECT().Debit(gomock.Any(), buyerID, int64(1)).Return(nil)
				ptx.EXPECT().AddBuyer(gomock.Any(), leadID, buyerID).Return(nil)
				ptx.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).Return(nil)
				ptx.EXPECT().Commit().Return(errors.New("connection lost"))
				ptx.EXPECT().Rollback().Return(nil)
			},
			wantErr:  true,
			wantKind: fault.Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			ptx := ledger.NewMockPurchaseTx(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo, ptx)
			}

			svc := ledger.NewService(repo, ledger.NewMockTransitioner(ctrl))
			result, err := svc.PurchaseLead(tt.ctx, leadID)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, fault.KindOf(err))
				assert.Empty(t, result)

				return
			}

			require.NoError(t, err)
			assert.Contains(t, result, "purchased successfully")
		})
	}
}

func TestService_ListEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo, ledger.NewMockTransitioner(ctrl))

	t.Run("AdminSeesEntries", func(t *testing.T) {
		repo.EXPECT().
			ListEntries(gomock.Any(), ledger.EntryFilter{Limit: 50}).
			Return([]*ledger.Entry{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

		entries, err := svc.ListEntries(adminCtx(uuid.New()), ledger.EntryFilter{Limit: 50})

		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("NonAdminDenied", func(t *testing.T) {
		entries, err := svc.ListEntries(userCtx(uuid.New()), ledger.EntryFilter{})

		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.PermissionDenied))
		assert.Nil(t, entries)
	})
}
