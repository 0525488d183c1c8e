package request_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iconnecthq/iconnect/internal/fault"
	"github.com/iconnecthq/iconnect/internal/request"
)

func TestService_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := request.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateRequest(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *request.Request) error {
			assert.Equal(t, request.StatusPending, req.Status)
			assert.Equal(t, "Unassigned", req.ProviderName)
			req.ID = uuid.New()
			req.CreatedAt = time.Now()
			return nil
		})

	svc := request.NewService(repo, nil)
	req, err := svc.Submit(context.Background(), request.CreateParams{
		CustomerName:  "Jane Smith",
		CustomerEmail: "jane.smith@example.com",
		ServiceName:   "Plumbing",
		ScheduledAt:   time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, request.StatusPending, req.Status)
}

func TestService_Transition(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name       string
		from       request.Status
		to         request.Status
		setupMock  func(repo *request.MockRepository, notifier *request.MockNotifier)
		wantKind   fault.Kind
		wantErr    bool
		wantNotify bool
	}

	tests := []testCase{
		{
			name: "PendingToApproved",
			from: request.StatusPending,
			to:   request.StatusApproved,
			setupMock: func(repo *request.MockRepository, notifier *request.MockNotifier) {
				repo.EXPECT().
					GetRequest(gomock.Any(), id).
					Return(&request.Request{ID: id, Status: request.StatusPending, CustomerEmail: "c@example.com"}, nil)
				repo.EXPECT().
					UpdateStatus(gomock.Any(), id, request.StatusApproved).
					Return(nil)
				notifier.EXPECT().
					StatusChanged(gomock.Any(), gomock.Any(), request.StatusPending)
			},
		},
		{
			name: "PendingToClosed",
			from: request.StatusPending,
			to:   request.StatusClosed,
			setupMock: func(repo *request.MockRepository, notifier *request.MockNotifier) {
				repo.EXPECT().
					GetRequest(gomock.Any(), id).
					Return(&request.Request{ID: id, Status: request.StatusPending}, nil)
				repo.EXPECT().
					UpdateStatus(gomock.Any(), id, request.StatusClosed).
					Return(nil)
				notifier.EXPECT().
					StatusChanged(gomock.Any(), gomock.Any(), request.StatusPending)
			},
		},
		{
			// Terminal states are sinks: re-approving an approved request fails.
			name: "ApprovedToApproved",
			from: request.StatusApproved,
			to:   request.StatusApproved,
			setupMock: func(repo *request.MockRepository, notifier *request.MockNotifier) {
				repo.EXPECT().
					GetRequest(gomock.Any(), id).
					Return(&request.Request{ID: id, Status: request.StatusApproved}, nil)
			},
			wantErr:  true,
			wantKind: fault.FailedPrecondition,
		},
		{
			name: "RejectedToApproved",
			from: request.StatusRejected,
			to:   request.StatusApproved,
			setupMock: func(repo *request.MockRepository, notifier *request.MockNotifier) {
				repo.EXPECT().
					GetRequest(gomock.Any(), id).
					Return(&request.Request{ID: id, Status: request.StatusRejected}, nil)
			},
			wantErr:  true,
			wantKind: fault.FailedPrecondition,
		},
		{
			name:     "UnknownStatus",
			from:     request.StatusPending,
			to:       request.Status("archived"),
			wantErr:  true,
			wantKind: fault.InvalidArgument,
		},
		{
			name: "NotFound",
			from: request.StatusPending,
			to:   request.StatusApproved,
			setupMock: func(repo *request.MockRepository, notifier *request.MockNotifier) {
				repo.EXPECT().
					GetRequest(gomock.Any(), id).
					Return(nil, fault.New(fault.NotFound, "Request %s not found.", id))
			},
			wantErr:  true,
			wantKind: fault.NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := request.NewMockRepository(ctrl)
			notifier := request.NewMockNotifier(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo, notifier)
			}

			svc := request.NewService(repo, notifier)
			req, err := svc.Transition(context.Background(), id, tt.to)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, fault.IsKind(err, tt.wantKind), "got kind %v", fault.KindOf(err))
				assert.Nil(t, req)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, req.Status)
		})
	}
}

func TestService_Transition_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := request.NewMockRepository(ctrl)
	notifier := request.NewMockNotifier(ctrl)

	repo.EXPECT().
		GetRequest(gomock.Any(), id).
		Return(&request.Request{ID: id, Status: request.StatusPending}, nil)
	repo.EXPECT().
		UpdateStatus(gomock.Any(), id, request.StatusApproved).
		Return(errors.New("db error"))

	// The notifier must not fire when the write failed.
	svc := request.NewService(repo, notifier)
	_, err := svc.Transition(context.Background(), id, request.StatusApproved)

	require.Error(t, err)
}

func TestService_RecordProviderResponse(t *testing.T) {
	id := uuid.New()

	t.Run("BelowThreshold", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := request.NewMockRepository(ctrl)
		notifier := request.NewMockNotifier(ctrl)

		repo.EXPECT().
			IncrementResponses(gomock.Any(), id).
			Return(&request.Request{ID: id, Status: request.StatusPending, ProviderResponses: 3},
				request.StatusPending, nil)

		svc := request.NewService(repo, notifier)
		req, err := svc.RecordProviderResponse(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, request.StatusPending, req.Status)
		assert.Equal(t, 3, req.ProviderResponses)
	})

	t.Run("FifthResponseCloses", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := request.NewMockRepository(ctrl)
		notifier := request.NewMockNotifier(ctrl)

		repo.EXPECT().
			IncrementResponses(gomock.Any(), id).
			Return(&request.Request{ID: id, Status: request.StatusClosed, ProviderResponses: 5},
				request.StatusPending, nil)
		notifier.EXPECT().
			StatusChanged(gomock.Any(), gomock.Any(), request.StatusPending)

		svc := request.NewService(repo, notifier)
		req, err := svc.RecordProviderResponse(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, request.StatusClosed, req.Status)
	})

	t.Run("TerminalRequestStaysPut", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := request.NewMockRepository(ctrl)
		notifier := request.NewMockNotifier(ctrl)

		// Responses keep counting but the status does not change, so the
		// notifier stays quiet.
		repo.EXPECT().
			IncrementResponses(gomock.Any(), id).
			Return(&request.Request{ID: id, Status: request.StatusApproved, ProviderResponses: 7},
				request.StatusApproved, nil)

		svc := request.NewService(repo, notifier)
		req, err := svc.RecordProviderResponse(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, request.StatusApproved, req.Status)
	})
}

func TestStatus_CanTransition(t *testing.T) {
	assert.True(t, request.StatusPending.CanTransition(request.StatusApproved))
	assert.True(t, request.StatusPending.CanTransition(request.StatusRejected))
	assert.True(t, request.StatusPending.CanTransition(request.StatusClosed))

	assert.False(t, request.StatusPending.CanTransition(request.StatusPending))
	assert.False(t, request.StatusApproved.CanTransition(request.StatusRejected))
	assert.False(t, request.StatusClosed.CanTransition(request.StatusApproved))
	assert.False(t, request.StatusRejected.CanTransition(request.StatusClosed))
}
