package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "tracker/internal/adapters/in/http"
	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/component"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/status"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type MockCreate struct{ mock.Mock }

func (m *MockCreate) Handle(ctx context.Context, cmd commands.CreateComponentCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockChange struct{ mock.Mock }

func (m *MockChange) Handle(ctx context.Context, cmd commands.ChangeComponentStatusCommand) (services.StatusChange, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(services.StatusChange), args.Error(1)
}

type MockAssign struct{ mock.Mock }

func (m *MockAssign) Handle(ctx context.Context, cmd commands.AssignTreatmentsCommand) (*component.Component, error) {
	args := m.Called(ctx, cmd)
	c, _ := args.Get(0).(*component.Component)
	return c, args.Error(1)
}

type MockGet struct{ mock.Mock }

func (m *MockGet) Handle(ctx context.Context, query queries.GetComponentQuery) (*queries.GetComponentQueryResponse, error) {
	args := m.Called(ctx, query)
	r, _ := args.Get(0).(*queries.GetComponentQueryResponse)
	return r, args.Error(1)
}

type MockWorkOrder struct{ mock.Mock }

func (m *MockWorkOrder) Handle(ctx context.Context, query queries.GetWorkOrderComponentsQuery) ([]queries.ComponentSummary, error) {
	args := m.Called(ctx, query)
	r, _ := args.Get(0).([]queries.ComponentSummary)
	return r, args.Error(1)
}

type fixture struct {
	create    *MockCreate
	change    *MockChange
	assign    *MockAssign
	get       *MockGet
	workOrder *MockWorkOrder
	router    *echo.Echo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		create:    &MockCreate{},
		change:    &MockChange{},
		assign:    &MockAssign{},
		get:       &MockGet{},
		workOrder: &MockWorkOrder{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpin.NewServer(f.create, f.change, f.assign, f.get, f.workOrder, logger)
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("tracker_transitions_total 0\n"))
	})
	f.router = httpin.NewRouter(server, metrics, logger)
	t.Cleanup(func() {
		f.create.AssertExpectations(t)
		f.change.AssertExpectations(t)
		f.assign.AssertExpectations(t)
		f.get.AssertExpectations(t)
		f.workOrder.AssertExpectations(t)
	})
	return f
}

func (f *fixture) do(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func newComponent(t *testing.T, treatments ...string) *component.Component {
	t.Helper()
	c, err := component.NewComponent(kernel.NewUUID(), "TAV-0042", "WO-2025-118", treatments)
	require.NoError(t, err)
	return c
}

func engine() services.LifecycleEngine {
	return services.NewLifecycleEngine(kernel.NewFixedClock(at), services.NewNotificationRules("https://tracker.local", nil))
}

func TestRouter_Health(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tracker_transitions_total")
}

func TestServer_CreateComponent(t *testing.T) {
	t.Run("should create component", func(t *testing.T) {
		f := newFixture(t)
		id := "1b4e28ba-2fa1-11d2-883f-0016d3cca427"
		f.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateComponentCommand) bool {
			return cmd.ComponentID().String() == id &&
				cmd.Code() == "TAV-0042" &&
				cmd.WorkOrder() == "WO-2025-118" &&
				assert.ObjectsAreEqual([]string{"zinc", "paint"}, cmd.Treatments())
		})).Return(nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/components",
			`{"id":"`+id+`","code":"TAV-0042","workOrder":"WO-2025-118","treatments":[" Zinc ","paint","zinc"]}`, nil)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "/api/v1/components/"+id, rec.Header().Get(echo.HeaderLocation))
		assert.Equal(t, id, decode[map[string]string](t, rec)["id"])
	})

	t.Run("should generate id when omitted", func(t *testing.T) {
		f := newFixture(t)
		f.create.On("Handle", mock.Anything, mock.Anything).Return(nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/components", `{"code":"TAV-1","workOrder":"WO-1"}`, nil)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NotEmpty(t, decode[map[string]string](t, rec)["id"])
	})

	t.Run("should reject malformed body", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/components", `{"code":`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject missing fields", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/components", `{"workOrder":"WO-1"}`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[httpin.Error](t, rec).Message, "code")
	})

	t.Run("should map duplicate code to bad request", func(t *testing.T) {
		f := newFixture(t)
		f.create.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewValueIsInvalidError("code")).Once()

		rec := f.do(http.MethodPost, "/api/v1/components", `{"code":"TAV-1","workOrder":"WO-1"}`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_GetComponent(t *testing.T) {
	t.Run("should return component", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		number := "DDT-7"
		f.get.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetComponentQuery) bool {
			return q.ComponentID().IsEqual(id)
		})).Return(&queries.GetComponentQueryResponse{
			ID:              id,
			Code:            "TAV-0042",
			WorkOrder:       "WO-2025-118",
			Status:          queries.ViewOf(status.Shipped),
			AllowedStatuses: queries.ViewsOf([]status.Status{status.New, status.Shipped}),
			History: []queries.TransitionView{{
				From:           queries.ViewOf(status.ReadyForDelivery),
				To:             queries.ViewOf(status.Shipped),
				At:             at,
				Actor:          "mrossi",
				DocumentNumber: &number,
				DocumentDate:   &at,
			}},
			Version: 4,
		}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/components/"+id.String(), "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[httpin.Component](t, rec)
		assert.Equal(t, "SHIPPED", body.Status.Code)
		assert.Equal(t, "6 - Spedito", body.Status.Label)
		assert.Empty(t, body.Treatments)
		assert.NotNil(t, body.Treatments)
		require.Len(t, body.History, 1)
		require.NotNil(t, body.History[0].Document)
		assert.Equal(t, httpin.Document{Number: "DDT-7", Date: "2025-03-14"}, *body.History[0].Document)
		assert.Equal(t, 4, body.Version)
	})

	t.Run("should return not found", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		f.get.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("component", id)).Once()

		rec := f.do(http.MethodGet, "/api/v1/components/"+id.String(), "", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should reject malformed id", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/api/v1/components/not-a-uuid", "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should hide internal errors", func(t *testing.T) {
		f := newFixture(t)
		f.get.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errors.New("connection reset by peer")).Once()

		rec := f.do(http.MethodGet, "/api/v1/components/"+kernel.NewUUID().String(), "", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", decode[httpin.Error](t, rec).Message)
	})
}

func TestServer_ChangeStatus(t *testing.T) {
	t.Run("should return change with notifications", func(t *testing.T) {
		f := newFixture(t)
		c := newComponent(t, "zinc")
		change, err := engine().ChangeStatus(c, status.Built, "mrossi", "", nil)
		require.NoError(t, err)
		f.change.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ChangeComponentStatusCommand) bool {
			return cmd.ComponentID().IsEqual(c.ID()) &&
				cmd.Target() == status.Built &&
				cmd.Actor() == "mrossi" &&
				cmd.Note() == "done" &&
				cmd.Document() == nil
		})).Return(change, nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/components/"+c.ID().String()+"/status",
			`{"status":"BUILT","actor":"mrossi","note":"done"}`, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[httpin.StatusChangeResponse](t, rec)
		assert.Equal(t, "BUILT", body.Component.Status.Code)
		require.Len(t, body.Transitions, 1)
		assert.Equal(t, "NEW", body.Transitions[0].From.Code)
		assert.False(t, body.AutoTransitioned)
		require.Len(t, body.Notifications, 1)
		assert.Equal(t, []string{"office", "treatments"}, body.Notifications[0].Roles)
		assert.Equal(t, "high", body.Notifications[0].Priority)
		assert.Equal(t, "https://tracker.local/components/"+c.ID().String(), body.Notifications[0].Link)
	})

	t.Run("should read actor from header and parse document", func(t *testing.T) {
		f := newFixture(t)
		c := newComponent(t)
		doc, err := component.NewDocument("DDT-118", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		ready, err := engine().ChangeStatus(c, status.ReadyForDelivery, "mrossi", "", nil)
		require.NoError(t, err)
		shipped, err := engine().ChangeStatus(ready.Component, status.Shipped, "header-user", "", &doc)
		require.NoError(t, err)
		f.change.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ChangeComponentStatusCommand) bool {
			d := cmd.Document()
			return cmd.Actor() == "header-user" &&
				cmd.Target() == status.Shipped &&
				d != nil && d.Number() == "DDT-118" && d.Date().Equal(doc.Date())
		})).Return(shipped, nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/components/"+c.ID().String()+"/status",
			`{"status":"SHIPPED","document":{"number":"DDT-118","date":"2025-03-14"}}`,
			map[string]string{httpin.ActorHeader: "header-user"})

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[httpin.StatusChangeResponse](t, rec)
		require.NotNil(t, body.Transitions[0].Document)
		assert.Equal(t, "DDT-118", body.Transitions[0].Document.Number)
	})

	t.Run("should report auto transition", func(t *testing.T) {
		f := newFixture(t)
		c := newComponent(t, "zinc")
		doc, err := component.NewDocument("DDT-9", at)
		require.NoError(t, err)
		var change services.StatusChange
		current := c
		for _, phase := range status.Phases() {
			target, err := status.Treatment("zinc", phase)
			require.NoError(t, err)
			change, err = engine().ChangeStatus(current, target, "mrossi", "", &doc)
			require.NoError(t, err)
			current = change.Component
		}
		require.True(t, change.AutoTransitioned)
		f.change.On("Handle", mock.Anything, mock.Anything).Return(change, nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/components/"+c.ID().String()+"/status",
			`{"status":"4:zinc:ARRIVED","actor":"mrossi","document":{"number":"DDT-9","date":"2025-03-14T09:30:00Z"}}`, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[httpin.StatusChangeResponse](t, rec)
		assert.True(t, body.AutoTransitioned)
		require.Len(t, body.Transitions, 2)
		assert.True(t, body.Transitions[1].Automatic)
		assert.Equal(t, "READY_FOR_DELIVERY", body.Component.Status.Code)
	})

	t.Run("should reject invalid transition with allowed statuses", func(t *testing.T) {
		f := newFixture(t)
		f.change.On("Handle", mock.Anything, mock.Anything).Return(services.StatusChange{}, &component.InvalidTransitionError{
			Target:  status.Parse("4:paint:PREP"),
			Allowed: []status.Status{status.New, status.Built},
		}).Once()

		rec := f.do(http.MethodPost, "/api/v1/components/"+kernel.NewUUID().String()+"/status",
			`{"status":"4:paint:PREP","actor":"mrossi"}`, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decode[httpin.Error](t, rec)
		assert.Equal(t, `Status "4 - Preparazione paint" is not allowed for this component`, body.Message)
		assert.NotContains(t, body.Message, "4:paint:PREP")
		assert.Equal(t, []httpin.Status{
			{Code: "NEW", Label: "1 - Nuovo"},
			{Code: "BUILT", Label: "3 - Costruito"},
		}, body.Allowed)
	})

	t.Run("should reject missing document", func(t *testing.T) {
		f := newFixture(t)
		f.change.On("Handle", mock.Anything, mock.Anything).
			Return(services.StatusChange{}, &component.MissingDocumentError{Target: status.Shipped}).Once()

		rec := f.do(http.MethodPost, "/api/v1/components/"+kernel.NewUUID().String()+"/status",
			`{"status":"SHIPPED","actor":"mrossi"}`, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decode[httpin.Error](t, rec)
		assert.Empty(t, body.Allowed)
		assert.Equal(t, `Status "6 - Spedito" requires a transport document number and date`, body.Message)
	})

	t.Run("should map conflicts", func(t *testing.T) {
		for name, err := range map[string]error{
			"version": errs.NewVersionIsInvalidError("version"),
			"lock":    ports.ErrComponentIsLocked,
		} {
			t.Run(name, func(t *testing.T) {
				f := newFixture(t)
				f.change.On("Handle", mock.Anything, mock.Anything).Return(services.StatusChange{}, err).Once()

				rec := f.do(http.MethodPost, "/api/v1/components/"+kernel.NewUUID().String()+"/status",
					`{"status":"BUILT","actor":"mrossi"}`, nil)

				assert.Equal(t, http.StatusConflict, rec.Code)
			})
		}
	})

	t.Run("should require actor", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/components/"+kernel.NewUUID().String()+"/status",
			`{"status":"BUILT"}`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[httpin.Error](t, rec).Message, "actor")
	})

	t.Run("should reject malformed document date", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/components/"+kernel.NewUUID().String()+"/status",
			`{"status":"SHIPPED","actor":"mrossi","document":{"number":"DDT-1","date":"14/03/2025"}}`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_AssignTreatments(t *testing.T) {
	f := newFixture(t)
	c := newComponent(t)
	updated, err := c.WithTreatments([]string{"zinc"})
	require.NoError(t, err)
	f.assign.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AssignTreatmentsCommand) bool {
		return cmd.ComponentID().IsEqual(c.ID()) && assert.ObjectsAreEqual([]string{"zinc"}, cmd.Treatments())
	})).Return(updated, nil).Once()

	rec := f.do(http.MethodPut, "/api/v1/components/"+c.ID().String()+"/treatments", `{"treatments":["zinc"]}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[httpin.Component](t, rec)
	assert.Equal(t, []string{"zinc"}, body.Treatments)
	prep, err := status.Treatment("zinc", status.PhasePrep)
	require.NoError(t, err)
	assert.Contains(t, body.AllowedStatuses, httpin.Status{Code: "4:zinc:PREP", Label: prep.Label()})
}

func TestServer_GetWorkOrderComponents(t *testing.T) {
	f := newFixture(t)
	id := kernel.NewUUID()
	f.workOrder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetWorkOrderComponentsQuery) bool {
		return q.WorkOrder() == "WO-2025-118"
	})).Return([]queries.ComponentSummary{
		{ID: id, Code: "TAV-0042", Status: queries.ViewOf(status.Built)},
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/work-orders/WO-2025-118/components", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[[]httpin.ComponentSummary](t, rec)
	require.Len(t, body, 1)
	assert.Equal(t, id.String(), body[0].ID.String())
	assert.Equal(t, "BUILT", body[0].Status.Code)
}
